package flags

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/ruteri/silo/api"
	"github.com/ruteri/silo/common"
	"github.com/ruteri/silo/storage"
	"github.com/urfave/cli/v2"
)

func SetupLogger(cCtx *cli.Context) (log *slog.Logger) {
	logJSON := cCtx.Bool(LogJsonFlag.Name)
	logDebug := cCtx.Bool(LogDebugFlag.Name)
	logUID := cCtx.Bool(LogUidFlag.Name)
	logService := cCtx.String(LogServiceFlag.Name)

	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   logDebug,
		JSON:    logJSON,
		Service: logService,
		Version: common.Version,
	})

	if logUID {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

func ConfigureServer(cCtx *cli.Context, logger *slog.Logger) *api.HTTPServerConfig {
	drainDuration := time.Duration(cCtx.Int64(DrainSecondsFlag.Name)) * time.Second

	return &api.HTTPServerConfig{
		ListenAddr:               cCtx.String(ListenAddrFlag.Name),
		MetricsAddr:              cCtx.String(MetricsAddrFlag.Name),
		Log:                      logger,
		EnablePprof:              cCtx.Bool(PprofFlag.Name),
		DrainDuration:            drainDuration,
		GracefulShutdownDuration: 30 * time.Second,
		ReadTimeout:              60 * time.Second,
		WriteTimeout:             30 * time.Second,
	}
}

func ConfigureStorage(cCtx *cli.Context) (storage.FileBackendConfig, error) {
	dirMode, err := parseMode(cCtx.String(DirModeFlag.Name))
	if err != nil {
		return storage.FileBackendConfig{}, fmt.Errorf("invalid --%s: %w", DirModeFlag.Name, err)
	}
	fileMode, err := parseMode(cCtx.String(FileModeFlag.Name))
	if err != nil {
		return storage.FileBackendConfig{}, fmt.Errorf("invalid --%s: %w", FileModeFlag.Name, err)
	}

	return storage.FileBackendConfig{
		BaseDir:        cCtx.String(DataDirFlag.Name),
		MetadataPrefix: cCtx.String(MetadataPrefixFlag.Name),
		DirMode:        dirMode,
		FileMode:       fileMode,
	}, nil
}

// parseMode reads an octal permission string such as "0755" or "644".
func parseMode(s string) (os.FileMode, error) {
	mode, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, err
	}
	if mode&^uint64(os.ModePerm) != 0 {
		return 0, fmt.Errorf("%q is not a permission mode", s)
	}
	return os.FileMode(mode), nil
}

var ListenAddrFlag = &cli.StringFlag{
	Name:    "listen-addr",
	Value:   "127.0.0.1:8080",
	Usage:   "address to listen on for the object store API",
	EnvVars: []string{"SILO_LISTEN_ADDR"},
}

var ServerAddrFlag = &cli.StringFlag{
	Name:    "server-addr",
	Value:   "http://127.0.0.1:8080",
	Usage:   "object store server to talk to",
	EnvVars: []string{"SILO_SERVER_ADDR"},
}

var DataDirFlag = &cli.StringFlag{
	Name:    "data-dir",
	Value:   "./data",
	Usage:   "storage root directory",
	EnvVars: []string{"SILO_DATA_DIR"},
}

var MetadataPrefixFlag = &cli.StringFlag{
	Name:    "metadata-prefix",
	Value:   storage.DefaultMetadataPrefix,
	Usage:   "request headers with this prefix are stored with each object",
	EnvVars: []string{"SILO_METADATA_PREFIX"},
}

var MaxBodyBytesFlag = &cli.Int64Flag{
	Name:    "max-body-bytes",
	Value:   0,
	Usage:   "reject object bodies larger than this, 0 for no limit",
	EnvVars: []string{"SILO_MAX_BODY_BYTES"},
}

var DirModeFlag = &cli.StringFlag{
	Name:    "dir-mode",
	Value:   "0755",
	Usage:   "permission bits for created directories (octal)",
	EnvVars: []string{"SILO_DIR_MODE"},
}

var FileModeFlag = &cli.StringFlag{
	Name:    "file-mode",
	Value:   "0644",
	Usage:   "permission bits for object files (octal)",
	EnvVars: []string{"SILO_FILE_MODE"},
}

var LogJsonFlag = &cli.BoolFlag{
	Name:    "log-json",
	Value:   false,
	Usage:   "log in JSON format",
	EnvVars: []string{"SILO_LOG_JSON"},
}
var LogDebugFlag = &cli.BoolFlag{
	Name:    "log-debug",
	Value:   false,
	Usage:   "log debug messages",
	EnvVars: []string{"SILO_LOG_DEBUG"},
}
var LogUidFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}
var LogServiceFlag = &cli.StringFlag{
	Name:  "log-service",
	Value: common.PackageName,
	Usage: "add 'service' tag to logs",
}

var PprofFlag = &cli.BoolFlag{
	Name:  "pprof",
	Value: false,
	Usage: "enable pprof debug endpoint on the metrics listener",
}
var DrainSecondsFlag = &cli.Int64Flag{
	Name:    "drain-seconds",
	Value:   45,
	Usage:   "seconds to stay unready before shutting down",
	EnvVars: []string{"SILO_DRAIN_SECONDS"},
}
var MetricsAddrFlag = &cli.StringFlag{
	Name:    "metrics-addr",
	Value:   "127.0.0.1:8090",
	Usage:   "address to listen on for Prometheus metrics, health and drain endpoints",
	EnvVars: []string{"SILO_METRICS_ADDR"},
}

var LogFlags = []cli.Flag{
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
	LogServiceFlag,
}

var ServerFlags = []cli.Flag{
	ListenAddrFlag,
	MetricsAddrFlag,
	PprofFlag,
	DrainSecondsFlag,
	DataDirFlag,
	MetadataPrefixFlag,
	MaxBodyBytesFlag,
	DirModeFlag,
	FileModeFlag,
}
