// Package pipeline chains extraction, classification and preview staging for
// one uploaded card image.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cardexhq/cardex/internal/classify"
	"github.com/cardexhq/cardex/internal/common"
	"github.com/cardexhq/cardex/internal/extract"
	"github.com/cardexhq/cardex/internal/preview"
)

type Processor struct {
	extractor extract.FragmentExtractor
	previews  preview.Store
	logger    *slog.Logger
}

func NewProcessor(extractor extract.FragmentExtractor, previews preview.Store, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{extractor: extractor, previews: previews, logger: logger}
}

// Process runs OCR on the image, classifies the fragments into a card record
// and stages the result as a pending preview. Nothing touches the record
// store until the preview is confirmed.
func (p *Processor) Process(ctx context.Context, image []byte) (*preview.Preview, error) {
	start := time.Now()

	res, err := p.extractor.Extract(ctx, image)
	if err != nil {
		p.logger.Error("extraction failed", "error", err)
		return nil, common.NewAppError("EXTRACTION_FAILED", "failed to extract text from image", err)
	}
	if len(res.Fragments) == 0 {
		return nil, common.NewAppError("EXTRACTION_EMPTY", "no text detected in image", common.ErrExtraction)
	}

	card := classify.Classify(res.Texts()).Flatten()

	pv := &preview.Preview{
		Token:     uuid.NewString(),
		Card:      card,
		Fragments: res.Fragments,
		Warnings:  res.Warnings,
		CreatedAt: time.Now(),
	}
	if err := p.previews.Put(ctx, pv); err != nil {
		return nil, fmt.Errorf("stage preview: %w", err)
	}

	p.logger.Info("card image processed",
		"request_id", common.RequestIDFromContext(ctx),
		"method", res.Method,
		"fragments", len(res.Fragments),
		"card_holder", card.CardHolder,
		"duration_ms", time.Since(start).Milliseconds())
	return pv, nil
}
