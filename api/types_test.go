package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatListing(t *testing.T) {
	assert.Equal(t, "one\nthree\ntwo\n", string(FormatListing([]string{"one", "three", "two"})))
	assert.Empty(t, FormatListing(nil))
}

func TestParseListing(t *testing.T) {
	assert.Equal(t, []string{"one", "three", "two"}, ParseListing([]byte("one\nthree\ntwo\n")))
	assert.Equal(t, []string{"a", "b"}, ParseListing([]byte("a\r\n\nb")))
	assert.Equal(t, []string{}, ParseListing(nil))
}
