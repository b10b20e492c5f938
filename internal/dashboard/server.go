// Package dashboard serves the read-only analytics dashboard: a tabbed HTML
// page, chart PNGs, the summary as JSON, workbook and report downloads, and
// Prometheus metrics.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"kakao/internal/analysis"
	"kakao/internal/cache"
	"kakao/internal/dataset"
)

// ErrServerClosed is returned by Start after Stop.
var ErrServerClosed = errors.New("dashboard: server closed")

// Config holds HTTP server configuration.
type Config struct {
	// Addr to listen on (default: localhost:8080)
	Addr string
	// ReadTimeout for requests
	ReadTimeout time.Duration
	// WriteTimeout for responses; chart rendering and workbook export are
	// the slow paths
	WriteTimeout time.Duration
	// ShutdownTimeout bounds graceful shutdown in Run
	ShutdownTimeout time.Duration
	// TopN limits ranked charts
	TopN int
	// CacheSize is the number of summaries memoized
	CacheSize int
}

// DefaultConfig returns default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:            "localhost:8080",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		TopN:            5,
		CacheSize:       cache.DefaultSize,
	}
}

// Server is the dashboard HTTP server.
type Server struct {
	config    *Config
	table     dataset.Table
	summaries *cache.Summaries
	logger    *slog.Logger
	registry  *prometheus.Registry
	metrics   *metrics

	httpServer *http.Server
	listener   net.Listener

	closed  atomic.Bool
	started time.Time
}

// New creates a server presenting table. The table must not be modified
// afterwards.
func New(table dataset.Table, config *Config, logger *slog.Logger) (*Server, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		config:   config,
		table:    table,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		started:  time.Now(),
	}

	m, err := newMetrics(s.registry)
	if err != nil {
		return nil, err
	}
	s.metrics = m

	s.summaries, err = cache.New(config.CacheSize, s.timedSummarize, logger)
	if err != nil {
		return nil, err
	}
	if err := m.registerCache(s.registry, s.summaries.Stats); err != nil {
		return nil, err
	}

	return s, nil
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.buildRouter()
}

// Start begins listening for HTTP connections. It returns once the listener
// is bound; serving continues in the background until Stop.
func (s *Server) Start() error {
	if s.closed.Load() {
		return ErrServerClosed
	}

	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler:      s.buildRouter(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("dashboard server stopped", slog.Any("error", err))
		}
	}()

	s.logger.Info("dashboard listening", slog.String("addr", s.Addr()))
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// Run starts the server and blocks until ctx is cancelled, then shuts down
// within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()

	s.logger.Info("dashboard shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return s.Stop(shutdownCtx)
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

// CacheStats exposes summary cache effectiveness.
func (s *Server) CacheStats() cache.Stats {
	return s.summaries.Stats()
}

func (s *Server) summary() (*analysis.Summary, error) {
	return s.summaries.Get(s.table)
}

func (s *Server) timedSummarize(t dataset.Table) (*analysis.Summary, error) {
	timer := prometheus.NewTimer(s.metrics.summarize)
	defer timer.ObserveDuration()
	return analysis.Summarize(t)
}
