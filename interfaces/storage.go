package interfaces

import (
	"context"
	"errors"
	"io"
	"net/http"
)

var (
	// ErrMalformedPath is returned when a request path does not match the key grammar.
	ErrMalformedPath = errors.New("malformed path")

	// ErrNotFound is returned when there is no data behind a read or list target.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when a write or delete could not reach its postcondition,
	// either because of filesystem permissions or because of a partial failure.
	ErrForbidden = errors.New("forbidden")

	// ErrMethodNotAllowed is returned when a verb is not valid for the kind of key.
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// StatusFromError maps an error from the store onto a status tag.
func StatusFromError(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrMalformedPath):
		return StatusMalformedPath
	case errors.Is(err, ErrNotFound):
		return StatusNotFound
	case errors.Is(err, ErrForbidden):
		return StatusForbidden
	case errors.Is(err, ErrMethodNotAllowed):
		return StatusMethodNotAllowed
	default:
		return StatusInternal
	}
}

// ErrorFromHTTPStatus is the inverse of StatusFromError for clients reading responses.
// It returns nil for any 2xx code.
func ErrorFromHTTPStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusBadRequest:
		return ErrMalformedPath
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusForbidden:
		return ErrForbidden
	case code == http.StatusMethodNotAllowed:
		return ErrMethodNotAllowed
	default:
		return errors.New(http.StatusText(code))
	}
}

// ObjectStore reads and writes single objects. Every method takes the translated
// stem; the data and metadata files are derived from it.
type ObjectStore interface {
	// Get opens the object's data and decodes its metadata.
	// A missing metadata record yields empty metadata, not an error.
	Get(ctx context.Context, stem string) (io.ReadCloser, Metadata, error)

	// Put replaces the object's data with body and its metadata with the
	// allow-listed subset of headers.
	Put(ctx context.Context, stem string, body io.Reader, headers http.Header) (PutResult, error)

	// Delete removes the object. Deleting an absent object succeeds.
	Delete(ctx context.Context, stem string) error
}

// CollectionStore lists and removes collections.
type CollectionStore interface {
	// List returns the sorted, deduplicated names of the collection's immediate children.
	List(ctx context.Context, dir string) ([]string, error)

	// DeleteRecursive removes everything beneath dir and dir itself.
	// Deleting an absent collection succeeds.
	DeleteRecursive(ctx context.Context, dir string) error
}

// Store is the full storage engine behind the dispatcher.
type Store interface {
	ObjectStore
	CollectionStore

	// Locate translates a key into its physical location: the directory for a
	// collection key, the stem for an object key.
	Locate(key Key) string

	// Available checks if the backing storage is reachable.
	Available(ctx context.Context) bool

	// Name returns a short identifier for logs.
	Name() string
}
