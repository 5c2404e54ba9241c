package interfaces

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey_String(t *testing.T) {
	tests := []struct {
		name     string
		key      Key
		expected string
	}{
		{
			name:     "single segment object",
			key:      Key{First: "abcdef"},
			expected: "/abcdef",
		},
		{
			name:     "nested object",
			key:      Key{First: "abcdef", Rest: []string{"g1", "h2"}},
			expected: "/abcdef/g1/h2",
		},
		{
			name:     "collection",
			key:      Key{First: "abcdef", Rest: []string{"g1"}, IsCollection: true},
			expected: "/abcdef/g1/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.key.String())
		})
	}
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err      error
		expected Status
		code     int
	}{
		{nil, StatusOK, http.StatusOK},
		{fmt.Errorf("%w: /x.y", ErrMalformedPath), StatusMalformedPath, http.StatusBadRequest},
		{fmt.Errorf("no data for stem: %w", ErrNotFound), StatusNotFound, http.StatusNotFound},
		{fmt.Errorf("can't modify: %w", ErrForbidden), StatusForbidden, http.StatusForbidden},
		{ErrMethodNotAllowed, StatusMethodNotAllowed, http.StatusMethodNotAllowed},
		{errors.New("disk on fire"), StatusInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.expected.String(), func(t *testing.T) {
			status := StatusFromError(tt.err)
			assert.Equal(t, tt.expected, status)
			assert.Equal(t, tt.code, status.HTTPStatus())
		})
	}
}

func TestErrorFromHTTPStatus(t *testing.T) {
	assert.NoError(t, ErrorFromHTTPStatus(http.StatusOK))
	assert.NoError(t, ErrorFromHTTPStatus(http.StatusCreated))
	assert.ErrorIs(t, ErrorFromHTTPStatus(http.StatusNotFound), ErrNotFound)
	assert.ErrorIs(t, ErrorFromHTTPStatus(http.StatusForbidden), ErrForbidden)
	assert.ErrorIs(t, ErrorFromHTTPStatus(http.StatusBadRequest), ErrMalformedPath)
	assert.ErrorIs(t, ErrorFromHTTPStatus(http.StatusMethodNotAllowed), ErrMethodNotAllowed)
	assert.EqualError(t, ErrorFromHTTPStatus(http.StatusBadGateway), "Bad Gateway")
}

func TestPutResult_Status(t *testing.T) {
	assert.Equal(t, StatusCreated, Created.Status())
	assert.Equal(t, StatusOK, Updated.Status())
	assert.Equal(t, "created", Created.String())
	assert.Equal(t, "updated", Updated.String())
}

func TestMetadata_Header(t *testing.T) {
	md := Metadata{"content-type": "text/plain", "x-secondlife-owner-key": "abc"}
	h := md.Header()
	assert.Equal(t, "text/plain", h.Get("Content-Type"))
	assert.Equal(t, "abc", h.Get("X-Secondlife-Owner-Key"))
}
