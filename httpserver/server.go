package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/flashbots/go-utils/httplogger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-multierror"
	"github.com/ruteri/silo/api"
	"github.com/ruteri/silo/metrics"
	"go.uber.org/atomic"
)

// Server runs the object store listener and, when configured, a separate
// admin listener for metrics, health, drain and pprof endpoints. Keeping
// those routes off the data listener leaves every path there addressable
// as a key.
type Server struct {
	cfg     *api.HTTPServerConfig
	isReady atomic.Bool
	log     *slog.Logger

	srv      *http.Server
	adminSrv *http.Server
	handler  *Handler
	metrics  *metrics.Metrics
}

func New(cfg *api.HTTPServerConfig, handler *Handler, m *metrics.Metrics) (srv *Server, err error) {
	if handler == nil {
		return nil, errors.New("no object store handler")
	}
	if m == nil {
		m = handler.metrics
	}

	srv = &Server{
		cfg:     cfg,
		log:     cfg.Log,
		handler: handler,
		metrics: m,
	}
	srv.isReady.Store(true)

	srv.srv = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      srv.getRouter(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if cfg.MetricsAddr != "" {
		srv.adminSrv = &http.Server{
			Addr:         cfg.MetricsAddr,
			Handler:      srv.getAdminRouter(),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		}
	}

	return srv, nil
}

// getRouter sends every path and verb to the dispatcher, which does its
// own validation and answers 400/405 itself.
func (srv *Server) getRouter() http.Handler {
	mux := chi.NewRouter()
	mux.Use(srv.httpLogger)
	mux.Use(middleware.Recoverer)

	mux.Handle("/*", srv.handler)
	mux.NotFound(srv.handler.ServeHTTP)
	mux.MethodNotAllowed(srv.handler.ServeHTTP)
	return mux
}

func (srv *Server) getAdminRouter() http.Handler {
	mux := chi.NewRouter()

	mux.Handle("/metrics", srv.metrics.Handler())
	mux.With(srv.httpLogger).Get("/livez", srv.handleLivenessCheck)
	mux.With(srv.httpLogger).Get("/readyz", srv.handleReadinessCheck)
	mux.With(srv.httpLogger).Get("/drain", srv.handleDrain)
	mux.With(srv.httpLogger).Get("/undrain", srv.handleUndrain)

	if srv.cfg.EnablePprof {
		srv.log.Info("pprof API enabled")
		mux.Mount("/debug", middleware.Profiler())
	}
	return mux
}

func (srv *Server) httpLogger(next http.Handler) http.Handler {
	return httplogger.LoggingMiddlewareSlog(srv.log, next)
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write([]byte(`{"status":"` + status + `"}`))
}

func (srv *Server) handleLivenessCheck(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, http.StatusOK, "alive")
}

func (srv *Server) handleReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if !srv.isReady.Load() {
		writeStatus(w, http.StatusServiceUnavailable, "not ready")
		return
	}
	if !srv.handler.store.Available(r.Context()) {
		writeStatus(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	writeStatus(w, http.StatusOK, "ready")
}

func (srv *Server) handleDrain(w http.ResponseWriter, r *http.Request) {
	if !srv.isReady.Swap(false) {
		writeStatus(w, http.StatusOK, "already draining")
		return
	}

	srv.log.Info("Server marked as not ready")
	writeStatus(w, http.StatusOK, "draining")
}

func (srv *Server) handleUndrain(w http.ResponseWriter, r *http.Request) {
	if srv.isReady.Swap(true) {
		writeStatus(w, http.StatusOK, "already ready")
		return
	}

	srv.log.Info("Server marked as ready")
	writeStatus(w, http.StatusOK, "ready")
}

// IsReady reports whether the server is accepting traffic from load balancers.
func (srv *Server) IsReady() bool {
	return srv.isReady.Load()
}

func (srv *Server) RunInBackground() {
	// admin
	if srv.adminSrv != nil {
		go func() {
			srv.log.With("metricsAddress", srv.cfg.MetricsAddr).Info("Starting admin server")
			err := srv.adminSrv.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				srv.log.Error("Admin server failed", "err", err)
			}
		}()
	}

	// api
	go func() {
		srv.log.Info("Starting HTTP server", "listenAddress", srv.cfg.ListenAddr)
		if err := srv.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.log.Error("HTTP server failed", "err", err)
		}
	}()
}

// Shutdown marks the server not ready, waits out the drain period so load
// balancers notice, then stops both listeners.
func (srv *Server) Shutdown() error {
	if srv.isReady.Swap(false) && srv.cfg.DrainDuration > 0 {
		srv.log.Info("Draining before shutdown", "duration", srv.cfg.DrainDuration)
		time.Sleep(srv.cfg.DrainDuration)
	}

	var result *multierror.Error

	// api
	ctx, cancel := context.WithTimeout(context.Background(), srv.cfg.GracefulShutdownDuration)
	defer cancel()
	if err := srv.srv.Shutdown(ctx); err != nil {
		srv.log.Error("Graceful HTTP server shutdown failed", "err", err)
		result = multierror.Append(result, err)
	} else {
		srv.log.Info("HTTP server gracefully stopped")
	}

	// admin
	if srv.adminSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), srv.cfg.GracefulShutdownDuration)
		defer cancel()

		if err := srv.adminSrv.Shutdown(ctx); err != nil {
			srv.log.Error("Graceful admin server shutdown failed", "err", err)
			result = multierror.Append(result, err)
		} else {
			srv.log.Info("Admin server gracefully stopped")
		}
	}

	return result.ErrorOrNil()
}
