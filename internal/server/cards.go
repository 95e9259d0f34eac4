package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cardexhq/cardex/constants"
	"github.com/cardexhq/cardex/internal/common"
	"github.com/cardexhq/cardex/internal/entity"
)

// handleExtract accepts a multipart card image, runs the OCR pipeline and
// returns the classified preview with its confirmation token.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	file, header, err := r.FormFile("card")
	if err != nil {
		s.writeError(w, r, common.NewAppError("UPLOAD_ERROR", "card image file is required", common.ErrInvalidInput))
		return
	}
	defer file.Close()

	if !constants.IsAllowedExt(filepath.Ext(header.Filename)) {
		s.writeError(w, r, common.NewAppError("UPLOAD_ERROR",
			fmt.Sprintf("unsupported file type %q", filepath.Ext(header.Filename)), common.ErrInvalidInput))
		return
	}

	image, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("read upload: %w", err))
		return
	}

	pv, err := s.processor.Process(r.Context(), image)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pv)
}

type confirmRequest struct {
	Token string          `json:"token"`
	Card  json.RawMessage `json:"card,omitempty"`
}

// handleConfirm redeems a preview token and appends the record. The client
// may send an edited card alongside the token; it replaces the classified one
// after schema validation.
func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, common.NewAppError("BAD_REQUEST", "invalid JSON body", common.ErrInvalidInput))
		return
	}
	if strings.TrimSpace(req.Token) == "" {
		s.writeError(w, r, common.NewAppError("BAD_REQUEST", "token is required", common.ErrInvalidInput))
		return
	}

	pv, err := s.previews.Get(r.Context(), req.Token)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	card := pv.Card
	if len(req.Card) > 0 {
		edited, err := s.decodeCard(req.Card)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		card = *edited
	}
	if strings.TrimSpace(card.CardHolder) == "" {
		s.writeError(w, r, common.NewAppError("BAD_REQUEST", "card_holder is required", common.ErrInvalidInput))
		return
	}

	if err := s.cardRepo.Append(r.Context(), &card); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.previews.Delete(r.Context(), req.Token); err != nil {
		s.logger.Warn("failed to discard redeemed preview", "token", req.Token, "error", err)
	}
	s.writeJSON(w, http.StatusCreated, card)
}

func (s *Server) handleListHolders(w http.ResponseWriter, r *http.Request) {
	holders, err := s.cardRepo.ListHolders(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if holders == nil {
		holders = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"holders": holders})
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	holder := chi.URLParam(r, "holder")
	card, err := s.cardRepo.Get(r.Context(), holder)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, card)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	holder := chi.URLParam(r, "holder")

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("read body: %w", err))
		return
	}
	card, err := s.decodeCard(raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.cardRepo.Update(r.Context(), holder, card); err != nil {
		s.writeError(w, r, err)
		return
	}
	updated, err := s.cardRepo.Get(r.Context(), holder)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	holder := chi.URLParam(r, "holder")
	if err := s.cardRepo.Delete(r.Context(), holder); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	buf, err := s.exporter.Workbook(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="cards.xlsx"`)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Error("failed to stream export", "error", err)
	}
}

// decodeCard validates a JSON card payload against the column schema before
// binding it, so over-long or unknown fields never reach the database.
func (s *Server) decodeCard(raw []byte) (*entity.Card, error) {
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, common.NewAppError("BAD_REQUEST", "invalid JSON body", common.ErrInvalidInput)
	}
	if err := s.schema.Validate(generic); err != nil {
		return nil, common.NewAppError("VALIDATION_ERROR", err.Error(), common.ErrValidation)
	}
	var card entity.Card
	if err := json.Unmarshal(raw, &card); err != nil {
		return nil, common.NewAppError("BAD_REQUEST", "invalid card payload", common.ErrInvalidInput)
	}
	return &card, nil
}
