// Package server exposes the card workflow over HTTP/JSON for the browser UI.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/time/rate"

	"github.com/cardexhq/cardex/internal/common"
	"github.com/cardexhq/cardex/internal/entity"
	"github.com/cardexhq/cardex/internal/export"
	"github.com/cardexhq/cardex/internal/pipeline"
	"github.com/cardexhq/cardex/internal/preview"
	"github.com/cardexhq/cardex/internal/repository"
)

type Server struct {
	cfg       common.ServerConfig
	processor *pipeline.Processor
	previews  preview.Store
	cardRepo  repository.CardRepository
	exporter  *export.Service
	schema    *jsonschema.Schema
	limiter   *rate.Limiter
	logger    *slog.Logger
}

func NewServer(
	cfg common.ServerConfig,
	processor *pipeline.Processor,
	previews preview.Store,
	cardRepo repository.CardRepository,
	exporter *export.Service,
	logger *slog.Logger,
) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	schema, err := entity.CompileCardSchema()
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:       cfg,
		processor: processor,
		previews:  previews,
		cardRepo:  cardRepo,
		exporter:  exporter,
		schema:    schema,
		limiter:   rate.NewLimiter(rate.Limit(cfg.UploadRPS), cfg.UploadBurst),
		logger:    logger,
	}, nil
}

// Routes wires every endpoint behind the shared middleware stack.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/cards", func(r chi.Router) {
		r.With(s.uploadLimit).Post("/extract", s.handleExtract)
		r.Post("/", s.handleConfirm)
		r.Get("/", s.handleListHolders)
		r.Get("/export", s.handleExport)
		r.Get("/{holder}", s.handleGetCard)
		r.Put("/{holder}", s.handleUpdateCard)
		r.Delete("/{holder}", s.handleDeleteCard)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// writeError maps domain errors onto HTTP statuses. Everything unrecognized
// is an opaque 500; the detail stays in the logs.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"

	var appErr *common.AppError
	switch {
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
		msg = "not found"
	case errors.Is(err, common.ErrInvalidInput), errors.Is(err, common.ErrValidation):
		status = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, common.ErrExtraction):
		status = http.StatusUnprocessableEntity
		msg = "could not extract text from image"
	case errors.As(err, &appErr) && appErr.Code == "EXTRACTION_FAILED":
		status = http.StatusUnprocessableEntity
		msg = "could not extract text from image"
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"request_id", common.RequestIDFromContext(r.Context()),
			"path", r.URL.Path, "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": msg})
}
