package clients

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ruteri/silo/api"
	"github.com/ruteri/silo/interfaces"
)

// maxErrorBody bounds how much of an error response is kept for diagnostics.
const maxErrorBody = 4 << 10

// StatusError is returned for any non-2xx response.
type StatusError struct {
	// Method and Path identify the failed request.
	Method string
	Path   string

	// Code is the HTTP status code.
	Code int

	// Body is the server's diagnostic text, trimmed.
	Body string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s %s returned %d: %s", e.Method, e.Path, e.Code, e.Body)
	}
	return fmt.Sprintf("%s %s returned %d", e.Method, e.Path, e.Code)
}

// Unwrap returns the interfaces sentinel matching Code.
func (e *StatusError) Unwrap() error {
	return interfaces.ErrorFromHTTPStatus(e.Code)
}

// Object is a fetched object.
type Object struct {
	Data        []byte
	ContentType string
}

// SiloClient talks to an object store server.
type SiloClient struct {
	// ServerAddr is the base URL of the server, without a trailing slash.
	ServerAddr string

	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// NewSiloClient creates a client with its own http.Client.
func NewSiloClient(serverAddr string, timeout time.Duration) *SiloClient {
	return &SiloClient{
		ServerAddr: strings.TrimSuffix(serverAddr, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Get fetches the object at key.
func (c *SiloClient) Get(ctx context.Context, key string) (*Object, error) {
	resp, err := c.do(ctx, http.MethodGet, objectPath(key), nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read object: %w", err)
	}
	return &Object{Data: data, ContentType: resp.Header.Get(api.ContentTypeHeader)}, nil
}

// Put stores body at key. Headers in meta are sent as-is; the server keeps
// only those carrying its vendor prefix. Reports whether the object was created.
func (c *SiloClient) Put(ctx context.Context, key string, body io.Reader, contentType string, meta map[string]string) (bool, error) {
	headers := make(http.Header)
	if contentType != "" {
		headers.Set(api.ContentTypeHeader, contentType)
	}
	for name, value := range meta {
		headers.Set(name, value)
	}

	resp, err := c.do(ctx, http.MethodPut, objectPath(key), body, headers)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusCreated, nil
}

// Delete removes the object at key. Removing an absent object succeeds.
func (c *SiloClient) Delete(ctx context.Context, key string) error {
	return c.discard(ctx, http.MethodDelete, objectPath(key))
}

// List returns the names of the collection's immediate children.
func (c *SiloClient) List(ctx context.Context, collection string) ([]string, error) {
	resp, err := c.do(ctx, http.MethodGet, collectionPath(collection), nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read listing: %w", err)
	}
	return api.ParseListing(body), nil
}

// DeleteCollection removes a collection and everything below it.
func (c *SiloClient) DeleteCollection(ctx context.Context, collection string) error {
	return c.discard(ctx, http.MethodDelete, collectionPath(collection))
}

func (c *SiloClient) discard(ctx context.Context, method, path string) error {
	resp, err := c.do(ctx, method, path, nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// do sends a request and converts non-2xx responses into a *StatusError.
func (c *SiloClient) do(ctx context.Context, method, path string, body io.Reader, headers http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.ServerAddr+path, body)
	if err != nil {
		return nil, err
	}
	for name, values := range headers {
		req.Header[name] = values
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not request %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			Method: method,
			Path:   path,
			Code:   resp.StatusCode,
			Body:   string(bytes.TrimSpace(msg)),
		}
	}
	return resp, nil
}

func objectPath(key string) string {
	if !strings.HasPrefix(key, "/") {
		key = "/" + key
	}
	return key
}

func collectionPath(collection string) string {
	collection = objectPath(collection)
	if !strings.HasSuffix(collection, "/") {
		collection += "/"
	}
	return collection
}
