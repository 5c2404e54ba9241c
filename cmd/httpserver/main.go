package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ruteri/silo/cmd/flags"
	"github.com/ruteri/silo/common"
	"github.com/ruteri/silo/httpserver"
	"github.com/ruteri/silo/metrics"
	"github.com/ruteri/silo/storage"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:    "silo-server",
		Usage:   "Serve a path-addressed object store backed by a local directory",
		Version: common.Version,
		Flags:   append(append([]cli.Flag{}, flags.ServerFlags...), flags.LogFlags...),
		Action: func(cCtx *cli.Context) error {
			logger := flags.SetupLogger(cCtx)

			storageCfg, err := flags.ConfigureStorage(cCtx)
			if err != nil {
				logger.Error("Invalid storage configuration", "err", err)
				return err
			}

			backend, err := storage.NewFileBackend(storageCfg, logger)
			if err != nil {
				logger.Error("Failed to create storage backend", "err", err)
				return err
			}
			logger.Info("Storage ready", "location", backend.LocationURI())

			m := metrics.New(common.PackageName)
			handler := httpserver.NewHandler(backend, httpserver.HandlerConfig{
				MaxBodyBytes: cCtx.Int64(flags.MaxBodyBytesFlag.Name),
				Metrics:      m,
			}, logger)

			server, err := httpserver.New(flags.ConfigureServer(cCtx, logger), handler, m)
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return err
			}

			server.RunInBackground()

			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
			<-exit
			logger.Info("Shutdown signal received")

			if err := server.Shutdown(); err != nil {
				return err
			}
			logger.Info("Server shutdown complete")
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
