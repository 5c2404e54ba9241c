package common

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := SetupLogger(&LoggingOpts{
		JSON:    true,
		Service: "silo",
		Version: "v1.2.3",
		Output:  &buf,
	})

	log.Info("Stored object", "path", "/abcdef/g1")
	log.Debug("hidden at info level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "Stored object", entry["msg"])
	assert.Equal(t, "silo", entry["service"])
	assert.Equal(t, "v1.2.3", entry["version"])
	assert.Equal(t, "/abcdef/g1", entry["path"])
}

func TestSetupLogger_Debug(t *testing.T) {
	var buf bytes.Buffer
	log := SetupLogger(&LoggingOpts{Debug: true, Output: &buf})

	log.Debug("Listed collection")
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "Listed collection")
	assert.NotContains(t, buf.String(), "service=")
}
