package httpserver

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ruteri/silo/api"
	"github.com/ruteri/silo/common"
	"github.com/ruteri/silo/interfaces"
	"github.com/ruteri/silo/keys"
	"github.com/ruteri/silo/metrics"
	"github.com/ruteri/silo/storage"
)

// Diagnostic details written in front of the request path in error responses.
const (
	detailPattern    = "pattern failure in"
	detailNoData     = "no data for"
	detailNoDir      = "no data at"
	detailCantModify = "can't modify"
	detailCantRead   = "can't read"
	detailDefault    = "while processing"
)

// Operation labels used in logs and metrics.
const (
	opMalformed        = "malformed"
	opGetObject        = "get_object"
	opPutObject        = "put_object"
	opDeleteObject     = "delete_object"
	opListCollection   = "list_collection"
	opDeleteCollection = "delete_collection"
	opUnsupported      = "unsupported"
)

// HandlerConfig tunes the dispatcher.
type HandlerConfig struct {
	// MaxBodyBytes caps PUT bodies. Zero means unlimited.
	MaxBodyBytes int64

	// Metrics receives per-request observations. A private registry is used if nil.
	Metrics *metrics.Metrics
}

// Handler dispatches every request path to the store: the verb and the kind
// of key (object or collection) select exactly one storage operation.
// The caller is assumed to be authorized already.
type Handler struct {
	store        interfaces.Store
	metrics      *metrics.Metrics
	maxBodyBytes int64
	log          *slog.Logger
}

// NewHandler creates a dispatcher in front of store.
func NewHandler(store interfaces.Store, cfg HandlerConfig, log *slog.Logger) *Handler {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New(common.PackageName)
	}
	return &Handler{
		store:        store,
		metrics:      cfg.Metrics,
		maxBodyBytes: cfg.MaxBodyBytes,
		log:          log,
	}
}

// ServeHTTP validates the request path and runs the matching storage operation.
// The raw (still escaped) path is used, so percent-escapes are never decoded
// into path separators.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := strings.ToLower(r.URL.EscapedPath())

	op, status := opMalformed, interfaces.StatusMalformedPath
	defer func() {
		h.metrics.ObserveRequest(op, status.String(), time.Since(start))
	}()

	key, err := keys.Parse(path)
	if err != nil {
		h.log.Debug("Rejected request path", "err", err)
		h.writeError(w, status, detailPattern, path)
		return
	}

	// Stays internal if the operation panics.
	op, status = operation(key, r.Method), interfaces.StatusInternal
	location := h.store.Locate(key)

	switch op {
	case opGetObject:
		status = h.getObject(w, r, location, path)
	case opPutObject:
		status = h.putObject(w, r, location, path)
	case opDeleteObject:
		status = h.deleteObject(w, r, location, path)
	case opListCollection:
		status = h.listCollection(w, r, location, path)
	case opDeleteCollection:
		status = h.deleteCollection(w, r, location, path)
	default:
		status = h.writeError(w, interfaces.StatusMethodNotAllowed, detailDefault, path)
	}
}

// operation maps a verb and the kind of key onto a storage operation.
func operation(key interfaces.Key, method string) string {
	switch {
	case key.IsCollection && method == http.MethodGet:
		return opListCollection
	case key.IsCollection && method == http.MethodDelete:
		return opDeleteCollection
	case key.IsCollection:
		return opUnsupported
	case method == http.MethodGet:
		return opGetObject
	case method == http.MethodPut:
		return opPutObject
	case method == http.MethodDelete:
		return opDeleteObject
	default:
		return opUnsupported
	}
}

func (h *Handler) getObject(w http.ResponseWriter, r *http.Request, stem, path string) interfaces.Status {
	data, md, err := h.store.Get(r.Context(), stem)
	if err != nil {
		return h.writeError(w, interfaces.StatusFromError(err), detailNoData, path)
	}
	defer data.Close()

	w.Header().Set(api.ContentTypeHeader, api.DefaultContentType)
	for name, values := range storage.ReplayedHeaders(md) {
		for _, value := range values {
			w.Header().Set(name, value)
		}
	}
	w.WriteHeader(http.StatusOK)

	n, err := io.Copy(w, data)
	h.metrics.AddBytesOut(n)
	if err != nil {
		h.log.Warn("Failed to stream object", "err", err, slog.String("path", path))
	}
	return interfaces.StatusOK
}

func (h *Handler) putObject(w http.ResponseWriter, r *http.Request, stem, path string) interfaces.Status {
	var body io.Reader = r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	counter := &countingReader{r: body}

	result, err := h.store.Put(r.Context(), stem, counter, r.Header)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.log.Warn("Request body too large", slog.String("path", path), slog.Int64("limit", maxBytesErr.Limit))
		} else {
			h.log.Warn("Failed to store object", "err", err, slog.String("path", path))
		}
		return h.writeError(w, interfaces.StatusFromError(err), detailCantModify, path)
	}
	h.metrics.AddBytesIn(counter.n)

	status := result.Status()
	w.Header().Set(api.ContentTypeHeader, api.DefaultContentType)
	w.WriteHeader(status.HTTPStatus())
	return status
}

func (h *Handler) deleteObject(w http.ResponseWriter, r *http.Request, stem, path string) interfaces.Status {
	if err := h.store.Delete(r.Context(), stem); err != nil {
		h.log.Warn("Failed to delete object", "err", err, slog.String("path", path))
		return h.writeError(w, interfaces.StatusFromError(err), detailCantModify, path)
	}
	return h.writeOK(w)
}

func (h *Handler) listCollection(w http.ResponseWriter, r *http.Request, dir, path string) interfaces.Status {
	names, err := h.store.List(r.Context(), dir)
	if err != nil {
		detail := detailNoDir
		if errors.Is(err, interfaces.ErrForbidden) {
			detail = detailCantRead
		}
		return h.writeError(w, interfaces.StatusFromError(err), detail, path)
	}

	w.Header().Set(api.ContentTypeHeader, api.DefaultContentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(api.FormatListing(names)); err != nil {
		h.log.Warn("Failed to write listing", "err", err, slog.String("path", path))
	}
	return interfaces.StatusOK
}

func (h *Handler) deleteCollection(w http.ResponseWriter, r *http.Request, dir, path string) interfaces.Status {
	if err := h.store.DeleteRecursive(r.Context(), dir); err != nil {
		h.log.Warn("Failed to delete collection", "err", err, slog.String("path", path))
		return h.writeError(w, interfaces.StatusFromError(err), detailCantModify, path)
	}
	return h.writeOK(w)
}

func (h *Handler) writeOK(w http.ResponseWriter) interfaces.Status {
	w.Header().Set(api.ContentTypeHeader, api.DefaultContentType)
	w.WriteHeader(http.StatusOK)
	return interfaces.StatusOK
}

// writeError sends "<detail>: <path>\n". Failures outside the store's error
// taxonomy get the generic detail so nothing internal leaks.
func (h *Handler) writeError(w http.ResponseWriter, status interfaces.Status, detail, path string) interfaces.Status {
	if status == interfaces.StatusInternal {
		detail = detailDefault
	}
	w.Header().Set(api.ContentTypeHeader, api.DefaultContentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status.HTTPStatus())
	fmt.Fprintf(w, "%s: %s\n", detail, path)
	return status
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
