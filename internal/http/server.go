// Package http exposes the record store and the derived views over a
// JSON REST API.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/log"
	"fintrack/internal/query"
	"fintrack/internal/store"
)

// EventPublisher announces successful mutations. A nil publisher
// disables change events without disabling the API.
type EventPublisher interface {
	PublishRecordChange(ctx context.Context, collection, id, op string) error
}

type Server struct {
	http.Server

	store     store.RecordStore
	queries   *query.Client
	publisher EventPublisher
	logger    *log.Logger

	rateLimiter  *rateLimiter
	cleanup      *cache.Manager
	shutdownOnce sync.Once
}

func NewServer(addr string, rs store.RecordStore, qc *query.Client, pub EventPublisher, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:       rs,
		queries:     qc,
		publisher:   pub,
		logger:      logger.WithComponent(log.ComponentHTTP),
		rateLimiter: newRateLimiter(),
		cleanup:     cache.NewManager(),
	}

	s.cleanup.Register(s.rateLimiter)
	s.cleanup.StartCleanup(5 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/transaction", s.trace(s.handleCreateTransaction))
	mux.HandleFunc("GET /api/transaction", s.trace(s.handleListTransactions))
	mux.HandleFunc("GET /api/transaction/{id}", s.trace(s.handleGetTransaction))
	mux.HandleFunc("DELETE /api/transaction/{id}", s.trace(s.handleDeleteTransaction))

	mux.HandleFunc("POST /api/category", s.trace(s.handleCreateCategory))
	mux.HandleFunc("GET /api/category", s.trace(s.handleListCategories))
	mux.HandleFunc("PUT /api/category/{id}", s.trace(s.handleUpdateCategory))
	mux.HandleFunc("DELETE /api/category/{id}", s.trace(s.handleDeleteCategory))

	mux.HandleFunc("POST /api/budget", s.trace(s.handleCreateBudget))
	mux.HandleFunc("GET /api/budget", s.trace(s.handleListBudgets))
	mux.HandleFunc("PUT /api/budget/{id}", s.trace(s.handleUpdateBudget))
	mux.HandleFunc("DELETE /api/budget/{id}", s.trace(s.handleDeleteBudget))

	mux.HandleFunc("GET /api/view/dashboard", s.trace(s.handleDashboardView))
	mux.HandleFunc("GET /api/view/history", s.trace(s.handleHistoryView))
	mux.HandleFunc("GET /api/view/reports", s.trace(s.handleReportView))
	mux.HandleFunc("GET /api/view/budgets", s.trace(s.handleBudgetView))

	return s
}

// trace wraps a handler with request logging, rate limiting on writes,
// and the standard response headers.
func (s *Server) trace(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		reqLogger := s.logger.With(log.FieldRequestID, requestID)
		ctx := log.IntoContext(r.Context(), reqLogger)
		r = r.WithContext(ctx)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			reqLogger.WithComponent(log.ComponentRateLimit).WarnContext(ctx, "rate limit exceeded",
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		reqLogger.InfoContext(ctx, "request completed",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, time.Since(start).Milliseconds(),
			log.FieldClientIP, clientIP)
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// publishChange sends a change event and invalidates the snapshot
// cache. Event publishing is best effort: a broken broker must never
// fail a mutation that already committed.
func (s *Server) publishChange(ctx context.Context, collection, id, op string) {
	s.queries.Invalidate(collection)

	if s.publisher == nil {
		s.logger.Debug("event publisher not configured, skipping change event",
			log.FieldCollection, collection, log.FieldOperation, op)
		return
	}
	if err := s.publisher.PublishRecordChange(ctx, collection, id, op); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish change event",
			log.FieldError, err.Error(),
			log.FieldCollection, collection,
			log.FieldRecordID, id,
			log.FieldOperation, op)
	}
}

// Shutdown stops the listener and the cleanup loop.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cleanup.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
