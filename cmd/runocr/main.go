// runocr runs extraction and classification on a single card image and
// prints the classified record, without touching the database.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/cardexhq/cardex/internal/classify"
	"github.com/cardexhq/cardex/internal/common"
	"github.com/cardexhq/cardex/internal/extract"
	"github.com/cardexhq/cardex/internal/ocr"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "runocr <image-path>")
		os.Exit(2)
	}

	image, err := os.ReadFile(os.Args[1])
	if err != nil {
		logger.Error("reading image", "path", os.Args[1], "error", err)
		os.Exit(1)
	}

	cfg := common.LoadConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ocrx := ocr.NewExtractor(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		Language:    cfg.OCR.Language,
		TessdataDir: cfg.OCR.TessdataDir,
		PSM:         cfg.OCR.PSM,
		OEM:         cfg.OCR.OEM,
	}, logger)
	extractor := extract.NewOCRAdapter(ocrx, logger)

	start := time.Now()
	res, err := extractor.Extract(ctx, image)
	if err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}
	logger.Info("extraction complete",
		"fragments", len(res.Fragments),
		"warnings", len(res.Warnings),
		"duration_ms", time.Since(start).Milliseconds())

	card := classify.Classify(res.Texts()).Flatten()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(card); err != nil {
		logger.Error("encoding record", "error", err)
		os.Exit(1)
	}
}
