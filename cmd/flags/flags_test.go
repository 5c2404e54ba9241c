package flags

import (
	"os"
	"testing"
	"time"

	"github.com/ruteri/silo/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    os.FileMode
		wantErr bool
	}{
		{"0755", 0o755, false},
		{"644", 0o644, false},
		{"0700", 0o700, false},
		{"999", 0, true},
		{"rwx", 0, true},
		{"10000", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func runWithFlags(t *testing.T, args []string, action cli.ActionFunc) error {
	t.Helper()
	app := &cli.App{
		Name:   "test",
		Flags:  append(append([]cli.Flag{}, ServerFlags...), LogFlags...),
		Action: action,
	}
	return app.Run(append([]string{"test"}, args...))
}

func TestConfigureStorage(t *testing.T) {
	var cfg storage.FileBackendConfig
	err := runWithFlags(t, []string{"--data-dir", "/srv/silo", "--dir-mode", "0700", "--file-mode", "0600"}, func(cCtx *cli.Context) error {
		var err error
		cfg, err = ConfigureStorage(cCtx)
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, "/srv/silo", cfg.BaseDir)
	assert.Equal(t, storage.DefaultMetadataPrefix, cfg.MetadataPrefix)
	assert.Equal(t, os.FileMode(0o700), cfg.DirMode)
	assert.Equal(t, os.FileMode(0o600), cfg.FileMode)
}

func TestConfigureStorage_InvalidMode(t *testing.T) {
	err := runWithFlags(t, []string{"--dir-mode", "rwx"}, func(cCtx *cli.Context) error {
		_, err := ConfigureStorage(cCtx)
		return err
	})
	assert.ErrorContains(t, err, "invalid --dir-mode")
}

func TestConfigureServer_EnvVars(t *testing.T) {
	t.Setenv("SILO_LISTEN_ADDR", "0.0.0.0:9000")
	t.Setenv("SILO_DRAIN_SECONDS", "3")

	err := runWithFlags(t, []string{"--pprof"}, func(cCtx *cli.Context) error {
		cfg := ConfigureServer(cCtx, SetupLogger(cCtx))
		assert.Equal(t, "0.0.0.0:9000", cfg.ListenAddr)
		assert.Equal(t, "127.0.0.1:8090", cfg.MetricsAddr)
		assert.Equal(t, 3*time.Second, cfg.DrainDuration)
		assert.True(t, cfg.EnablePprof)
		assert.NotNil(t, cfg.Log)
		return nil
	})
	require.NoError(t, err)
}
