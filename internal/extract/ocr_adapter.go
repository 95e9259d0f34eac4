package extract

import (
	"context"
	"log/slog"

	"github.com/cardexhq/cardex/constants"
	"github.com/cardexhq/cardex/internal/ocr"
)

// OCRAdapter adapts the tesseract extractor to the FragmentExtractor contract.
type OCRAdapter struct {
	e *ocr.Extractor
}

func NewOCRAdapter(e *ocr.Extractor, _ *slog.Logger) *OCRAdapter {
	return &OCRAdapter{e: e}
}

func (a *OCRAdapter) Extract(ctx context.Context, image []byte) (Result, error) {
	r, err := a.e.Extract(ctx, image)
	out := Result{
		Fragments: make([]Fragment, len(r.Fragments)),
		Language:  r.Language,
		Method:    string(constants.MethodTesseract),
		Duration:  r.Duration,
		Warnings:  r.Warnings,
	}
	for i, f := range r.Fragments {
		out.Fragments[i] = Fragment{
			Index:      f.Index,
			Text:       f.Text,
			Box:        quadFromOCR(f.Box),
			Confidence: f.Confidence,
		}
	}
	return out, err
}

func quadFromOCR(q ocr.Quad) Quad {
	var out Quad
	for i, p := range q {
		out[i] = Point{X: p.X, Y: p.Y}
	}
	return out
}
