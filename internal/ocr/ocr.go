// Package ocr runs the tesseract CLI over a card image and regroups its
// word-level TSV output into ordered line fragments. The bounding geometry is
// carried along for visual overlay only; classification consumes just the
// fragment texts.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Language string // single language tag, default "eng"

	TessdataDir string

	PSM int // e.g., 6 is good for uniform block of text
	OEM int // 1 = LSTM; leave 0 to use default
}

// Point is one corner of a fragment's bounding quadrilateral in pixel space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Quad is the four corners of a detected text region, clockwise from top-left.
type Quad [4]Point

// Fragment is one recognized text region in detection order.
type Fragment struct {
	Index      int     `json:"index"`
	Text       string  `json:"text"`
	Box        Quad    `json:"box"`
	Confidence float32 `json:"confidence"`
}

type Result struct {
	Fragments []Fragment
	Language  string
	Duration  time.Duration
	Warnings  []string
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Extract writes the image to a temp file, runs tesseract in TSV mode and
// returns the grouped fragments. The temp file is removed on every exit path.
func (e *Extractor) Extract(ctx context.Context, image []byte) (Result, error) {
	start := time.Now()

	tmpDir, err := os.MkdirTemp("", "cardex-ocr-*")
	if err != nil {
		return Result{}, fmt.Errorf("ocr tempdir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	path := filepath.Join(tmpDir, "card.png")
	if err := os.WriteFile(path, image, 0o600); err != nil {
		return Result{}, fmt.Errorf("ocr tempfile: %w", err)
	}

	args := []string{path, "stdout", "-l", e.cfg.Language}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", fmt.Sprintf("%d", e.cfg.PSM))
	}
	if e.cfg.OEM > 0 {
		args = append(args, "--oem", fmt.Sprintf("%d", e.cfg.OEM))
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	args = append(args, "tsv")

	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return Result{Warnings: []string{string(errb)}}, fmt.Errorf("tesseract: %w", err)
	}

	frags, warns := parseTSV(out)
	res := Result{
		Fragments: frags,
		Language:  e.cfg.Language,
		Duration:  time.Since(start),
		Warnings:  warns,
	}
	e.logger.Debug("ocr extraction done",
		"fragments", len(frags), "duration_ms", res.Duration.Milliseconds())
	return res, nil
}
