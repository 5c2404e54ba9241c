package api

import (
	"bytes"
	"strings"
)

const (
	// ContentTypeHeader is set on every response.
	ContentTypeHeader = "Content-Type"

	// DefaultContentType is used for listings, errors and objects stored without a content type.
	DefaultContentType = "text/plain; charset=utf-8"
)

// FormatListing renders collection children one per line, each newline-terminated.
func FormatListing(names []string) []byte {
	var buf bytes.Buffer
	for _, name := range names {
		buf.WriteString(name)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// ParseListing is the inverse of FormatListing. Blank lines are skipped.
func ParseListing(body []byte) []string {
	names := []string{}
	for _, line := range strings.Split(string(body), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	return names
}
