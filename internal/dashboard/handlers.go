package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kakao/internal/chart"
	"kakao/internal/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) buildRouter() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /charts/{file}", s.handleChart)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/tables", s.handleTables)
	mux.HandleFunc("GET /export.xlsx", s.handleWorkbook)
	mux.HandleFunc("GET /report.md", s.handleReport)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return s.loggingMiddleware(s.metricsMiddleware(s.recoveryMiddleware(mux)))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sum, err := s.summary()
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "summarize", err)
		return
	}

	var buf bytes.Buffer
	if err := renderIndex(&buf, sum); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "render page", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(r.PathValue("file"), ".png")
	if !ok || !chart.Exists(name) {
		s.writeError(w, r, http.StatusNotFound, "unknown chart", chart.ErrUnknownChart)
		return
	}

	sum, err := s.summary()
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "summarize", err)
		return
	}

	opts := chart.DefaultOptions()
	opts.TopN = s.config.TopN

	// render fully before writing so a failure still yields a clean 500
	var buf bytes.Buffer
	if err := chart.Render(&buf, name, chart.Data{Table: s.table, Summary: sum}, opts); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "render chart", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	buf.WriteTo(w)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.summary()
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "summarize", err)
		return
	}
	s.writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	sum, err := s.summary()
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "summarize", err)
		return
	}
	s.writeJSON(w, http.StatusOK, report.Tables(sum))
}

func (s *Server) handleWorkbook(w http.ResponseWriter, r *http.Request) {
	sum, err := s.summary()
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "summarize", err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteWorkbook(&buf, sum); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "export workbook", err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.WorkbookFile))
	buf.WriteTo(w)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	sum, err := s.summary()
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "summarize", err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteMarkdown(&buf, sum, s.config.TopN, time.Now()); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "write report", err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.ReportFile))
	buf.WriteTo(w)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"records": s.table.Len(),
		"uptime":  time.Since(s.started).Round(time.Second).String(),
	})
}

// Middleware

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		// health checks and scrapes are noise
		if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
			return
		}
		s.logger.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", wrapped.status),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		// the mux records the matched pattern on r, keeping label cardinality bounded
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		s.metrics.requests.WithLabelValues(route, strconv.Itoa(wrapped.status)).Inc()
		s.metrics.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				buf := make([]byte, 4096)
				n := runtime.Stack(buf, false)
				s.logger.Error("panic in handler",
					slog.Any("panic", rec),
					slog.String("stack", string(buf[:n])),
				)
				s.writeError(w, r, http.StatusInternalServerError, "internal server error", errors.New("panic"))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// JSON helpers

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode response", slog.Any("error", err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	s.logger.Log(r.Context(), level, message,
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)

	s.writeJSON(w, status, map[string]any{
		"error":   true,
		"message": message,
		"code":    status,
	})
}
