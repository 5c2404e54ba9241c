package interfaces

import (
	"net/http"
	"strings"
)

// MaxSegments is the deepest key the store accepts: the first segment plus ten more.
const MaxSegments = 11

// Key is a validated, lowercased request path.
type Key struct {
	// First is the leading segment. It is the only segment that gets sharded.
	First string

	// Rest holds the remaining segments in order (at most MaxSegments-1).
	Rest []string

	// IsCollection is set when the path ended with a slash.
	IsCollection bool
}

// Segments returns all path segments, first included.
func (k Key) Segments() []string {
	segments := make([]string, 0, len(k.Rest)+1)
	segments = append(segments, k.First)
	return append(segments, k.Rest...)
}

// String returns the canonical request path for the key.
func (k Key) String() string {
	s := "/" + strings.Join(k.Segments(), "/")
	if k.IsCollection {
		s += "/"
	}
	return s
}

// Metadata maps lowercased header names to their stored value.
type Metadata map[string]string

// Header converts metadata into an http.Header with canonical header names.
func (m Metadata) Header() http.Header {
	h := make(http.Header, len(m))
	for name, value := range m {
		h.Set(name, value)
	}
	return h
}

// PutResult reports whether a put created a new object or replaced an existing one.
type PutResult int

const (
	// Updated means an object already existed at the key and was overwritten.
	Updated PutResult = iota
	// Created means the object did not exist before the put.
	Created
)

// String returns the result name.
func (r PutResult) String() string {
	switch r {
	case Created:
		return "created"
	case Updated:
		return "updated"
	default:
		return "unknown"
	}
}

// Status returns the externally visible status tag for the result.
func (r PutResult) Status() Status {
	if r == Created {
		return StatusCreated
	}
	return StatusOK
}

// Status is the result tag handed to the transport layer.
type Status int

const (
	StatusOK Status = iota
	StatusCreated
	StatusNotFound
	StatusForbidden
	StatusMalformedPath
	StatusMethodNotAllowed
	// StatusInternal covers failures outside the store's error taxonomy.
	StatusInternal
)

// String returns the status tag name.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusCreated:
		return "created"
	case StatusNotFound:
		return "not_found"
	case StatusForbidden:
		return "forbidden"
	case StatusMalformedPath:
		return "malformed_path"
	case StatusMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "internal"
	}
}

// HTTPStatus maps the status tag onto an HTTP status code.
func (s Status) HTTPStatus() int {
	switch s {
	case StatusOK:
		return http.StatusOK
	case StatusCreated:
		return http.StatusCreated
	case StatusNotFound:
		return http.StatusNotFound
	case StatusForbidden:
		return http.StatusForbidden
	case StatusMalformedPath:
		return http.StatusBadRequest
	case StatusMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}
