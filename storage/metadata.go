package storage

import (
	"bufio"
	"bytes"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/ruteri/silo/interfaces"
)

const (
	// ContentTypeHeader is the only header stored unconditionally and the only one replayed on read.
	ContentTypeHeader = "content-type"

	// DefaultMetadataPrefix is the vendor header prefix stored alongside content-type.
	DefaultMetadataPrefix = "X-SecondLife-"

	maxMetadataLine = 1 << 20
)

// StoredHeaders filters request headers down to what is persisted with an object:
// content-type plus every header starting with vendorPrefix (case-insensitive).
// An empty prefix stores content-type only. Multiple values are joined with ", ".
func StoredHeaders(h http.Header, vendorPrefix string) interfaces.Metadata {
	prefix := strings.ToLower(vendorPrefix)
	md := make(interfaces.Metadata)
	for name, values := range h {
		lname := strings.ToLower(name)
		if lname != ContentTypeHeader && (prefix == "" || !strings.HasPrefix(lname, prefix)) {
			continue
		}
		if len(values) == 0 {
			continue
		}
		md[lname] = sanitizeValue(strings.Join(values, ", "))
	}
	return md
}

// ReplayedHeaders returns the subset of stored metadata echoed back on read.
func ReplayedHeaders(md interfaces.Metadata) http.Header {
	h := make(http.Header)
	if ct, ok := md[ContentTypeHeader]; ok {
		h.Set(ContentTypeHeader, ct)
	}
	return h
}

// EncodeMetadata serializes metadata as newline-terminated "name: value" lines,
// sorted by name.
func EncodeMetadata(md interfaces.Metadata) []byte {
	names := make([]string, 0, len(md))
	for name := range md {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	for _, name := range names {
		buf.WriteString(strings.ToLower(name))
		buf.WriteString(": ")
		buf.WriteString(sanitizeValue(md[name]))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// DecodeMetadata parses a metadata record. Lines that are not "name: value"
// are skipped. A later line for the same name wins.
func DecodeMetadata(r io.Reader) (interfaces.Metadata, error) {
	md := make(interfaces.Metadata)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxMetadataLine)
	for scanner.Scan() {
		line := scanner.Text()
		idx := strings.IndexByte(line, ':')
		if idx <= 0 {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(line[:idx]))
		if name == "" || strings.ContainsAny(name, " \t") {
			continue
		}
		md[name] = strings.TrimSpace(line[idx+1:])
	}
	return md, scanner.Err()
}

// sanitizeValue keeps a value on a single line of the record.
func sanitizeValue(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
