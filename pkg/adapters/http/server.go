package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/csdlgen"
	"github.com/aretw0/csdlgen/internal/logging"
	"github.com/aretw0/csdlgen/pkg/annotation"
	"github.com/aretw0/csdlgen/pkg/ports"
)

// Options configures the handler.
type Options struct {
	Emitter *csdlgen.Emitter
	Source  ports.ProgramSource
	// Store, when set, serves previously emitted documents under /documents.
	Store ports.DocumentStore
	// Gatherer backs /metrics. Defaults to the prometheus default registry.
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Server serves the rendered metadata document.
type Server struct {
	emitter *csdlgen.Emitter
	source  ports.ProgramSource
	store   ports.DocumentStore
	logger  *slog.Logger
}

// SchemasResponse is the body of GET /$metadata/schemas.
type SchemasResponse struct {
	Schemas     []csdlgen.SchemaInfo   `json:"schemas"`
	Diagnostics annotation.Diagnostics `json:"diagnostics"`
}

// NewHandler creates the HTTP handler.
func NewHandler(opts Options) http.Handler {
	s := &Server{
		emitter: opts.Emitter,
		source:  opts.Source,
		store:   opts.Store,
		logger:  opts.Logger,
	}
	if s.emitter == nil {
		s.emitter = csdlgen.New()
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(enableCORS)

	r.Get("/$metadata", s.GetMetadata)
	r.Get("/$metadata/schemas", s.GetSchemas)
	r.Get("/healthz", s.GetHealth)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	if s.store != nil {
		r.Get("/documents", s.ListDocuments)
		r.Get("/documents/{name}", s.GetDocument)
	}

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, If-None-Match")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) (*csdlgen.Result, bool) {
	if s.source == nil {
		http.Error(w, "No program configured", http.StatusServiceUnavailable)
		return nil, false
	}
	prog, err := s.source(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Failed to load program", "error", err)
		return nil, false
	}
	return s.emitter.Render(prog), true
}

// GetMetadata handles GET /$metadata.
func (s *Server) GetMetadata(w http.ResponseWriter, r *http.Request) {
	res, ok := s.render(w, r)
	if !ok {
		return
	}

	etag := documentETag(res.Document)
	w.Header().Set("ETag", etag)
	w.Header().Set("OData-Version", "4.0")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	if _, err := w.Write(res.Document); err != nil {
		s.logger.Error("Metadata write failed", "error", err)
	}
}

// GetSchemas handles GET /$metadata/schemas.
func (s *Server) GetSchemas(w http.ResponseWriter, r *http.Request) {
	res, ok := s.render(w, r)
	if !ok {
		return
	}

	resp := SchemasResponse{Schemas: res.Schemas, Diagnostics: res.Diagnostics}
	if resp.Diagnostics == nil {
		resp.Diagnostics = annotation.Diagnostics{}
	}
	writeJSON(w, s.logger, resp)
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string]string{
		"status":  "ok",
		"version": csdlgen.Version,
	})
}

// ListDocuments handles GET /documents.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.logger.Error("List documents failed", "error", err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, s.logger, names)
}

// GetDocument handles GET /documents/{name}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	data, err := s.store.Load(r.Context(), name)
	switch {
	case errors.Is(err, ports.ErrDocumentNotFound):
		http.Error(w, "Document not found", http.StatusNotFound)
		return
	case errors.Is(err, ports.ErrInvalidName):
		http.Error(w, "Invalid document name", http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Load document failed", "name", name, "error", err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Response encode failed", "error", err)
	}
}

func documentETag(doc []byte) string {
	h := fnv.New64a()
	h.Write(doc)
	return fmt.Sprintf(`"%016x"`, h.Sum64())
}

// ListenAndServe serves handler on addr until ctx is cancelled, then shuts down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewNop()
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Metadata server listening", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logger.Info("Shutdown signal received, shutting down server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}
