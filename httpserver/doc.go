/*
Package httpserver serves an object store over HTTP.

Handler is the dispatcher. It validates the raw request path, decides
whether it names an object or a collection, and runs one storage operation:

	verb    object          collection
	GET     read object     list children
	PUT     write object    405
	DELETE  delete object   delete recursively
	other   405             405

Responses carry the status from the storage layer. Error bodies are
"<detail>: <path>\n".

Server wraps a Handler in a chi router with request logging and panic
recovery. Health, drain, metrics and pprof endpoints live on a separate
admin listener (MetricsAddr):

  - GET /livez - Liveness check
  - GET /readyz - Readiness check, fails while draining or when storage is unavailable
  - GET /drain - Mark server as not ready
  - GET /undrain - Mark server as ready
  - GET /metrics - Prometheus metrics
  - /debug/... - pprof, if enabled

# Example Usage

	backend, err := storage.NewFileBackend(storage.FileBackendConfig{BaseDir: "./data"}, logger)
	if err != nil {
		return err
	}

	m := metrics.New(common.PackageName)
	handler := httpserver.NewHandler(backend, httpserver.HandlerConfig{Metrics: m}, logger)

	srv, err := httpserver.New(&api.HTTPServerConfig{
		ListenAddr:               ":8080",
		MetricsAddr:              ":8090",
		Log:                      logger,
		GracefulShutdownDuration: 30 * time.Second,
	}, handler, m)
	if err != nil {
		return err
	}
	srv.RunInBackground()
*/
package httpserver
