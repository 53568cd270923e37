package main

import (
	"crypto/tls"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	logs "github.com/sirupsen/logrus"
	stdlib "github.com/ulule/limiter/v3/drivers/middleware/stdlib"

	"github.com/vkuznet/memserve/assets"
)

// Server serves a pre-loaded asset store over HTTP
type Server struct {
	// request counters, updated atomically
	TotalGetRequests  uint64
	TotalHeadRequests uint64
	TotalHits         uint64
	TotalMisses       uint64

	config   *Configuration
	store    *assets.Store
	metrics  metrics
	registry *prometheus.Registry
	limiter  *stdlib.Middleware
	started  time.Time
}

// NewServer creates server for given configuration and asset store
func NewServer(config *Configuration, store *assets.Store) (*Server, error) {
	srv := &Server{
		config:  config,
		store:   store,
		metrics: newMetrics(),
		started: time.Now(),
	}
	srv.registry = newMetricsRegistry(srv.metrics)
	srv.metrics.LoadedFiles.Set(float64(store.Len()))
	srv.metrics.LoadedBytes.Set(float64(store.Size()))
	if config.Limiter != "" {
		lm, err := newLimiter(config.Limiter)
		if err != nil {
			return nil, err
		}
		logs.WithFields(logs.Fields{"Rate": config.Limiter}).Debug("limiter")
		srv.limiter = lm
	}
	return srv, nil
}

// helper function to strip trailing slashes from base path
func (srv *Server) base() string {
	return strings.TrimRight(srv.config.Base, "/")
}

func (srv *Server) handlers() *mux.Router {
	router := mux.NewRouter()

	// admin routes go first so they win over files with the same name
	if srv.config.StatusPath != "" {
		router.HandleFunc(srv.config.StatusPath, srv.StatusHandler).Methods("GET")
	}
	if srv.config.MetricsPath != "" {
		router.Handle(srv.config.MetricsPath, promhttp.HandlerFor(srv.registry, promhttp.HandlerOpts{})).Methods("GET")
	}
	router.PathPrefix(srv.base() + "/").HandlerFunc(srv.AssetHandler).Methods("GET", "HEAD")
	return router
}

// handler wraps the router with limiter and request logging, the logger is
// outermost so every request is logged, including 404, 405 and 429 replies
func (srv *Server) handler() http.Handler {
	var h http.Handler = srv.handlers()
	if srv.limiter != nil {
		h = srv.limiter.Handler(h)
	}
	if !srv.config.Quiet {
		h = loggingMiddleware(h)
	}
	return h
}

// ListenAndServe starts HTTP or HTTPs server, HTTPs is used when both
// server key and certificate files exist
func (srv *Server) ListenAndServe() error {
	addr := srv.config.Addr()
	server := &http.Server{
		Addr:              addr,
		Handler:           srv.handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	_, e1 := os.Stat(srv.config.ServerCrt)
	_, e2 := os.Stat(srv.config.ServerKey)
	if srv.config.ServerCrt != "" && e1 == nil && e2 == nil {
		server.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		logs.WithFields(logs.Fields{"Addr": addr}).Info("Starting HTTPs server")
		return server.ListenAndServeTLS(srv.config.ServerCrt, srv.config.ServerKey)
	}
	logs.WithFields(logs.Fields{"Addr": addr}).Info("Starting HTTP server")
	return server.ListenAndServe()
}
