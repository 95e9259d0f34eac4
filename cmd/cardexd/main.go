package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"

	"github.com/cardexhq/cardex/internal/common"
	"github.com/cardexhq/cardex/internal/export"
	"github.com/cardexhq/cardex/internal/extract"
	"github.com/cardexhq/cardex/internal/ocr"
	"github.com/cardexhq/cardex/internal/pipeline"
	"github.com/cardexhq/cardex/internal/preview"
	"github.com/cardexhq/cardex/internal/repository"
	"github.com/cardexhq/cardex/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		logger.Info("loaded environment from .env")
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{DSN: cfg.Sentry.DSN}); err != nil {
			logger.Error("sentry init failed", "error", err)
			os.Exit(1)
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, driver, err := repository.Open(repository.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer repository.Close(db, logger)

	if err := repository.HealthCheck(ctx, db, cfg.Database.PingTimeout, logger); err != nil {
		logger.Error("database health check failed", "error", err)
		os.Exit(1)
	}

	cardRepo := repository.NewCardRepository(db, driver, logger)
	if err := cardRepo.EnsureSchema(ctx); err != nil {
		logger.Error("ensuring schema", "error", err)
		os.Exit(1)
	}

	extractor, cleanup, err := buildExtractor(ctx, cfg.OCR, logger)
	if err != nil {
		logger.Error("building extractor", "backend", cfg.OCR.Backend, "error", err)
		os.Exit(1)
	}
	defer cleanup()

	previews := buildPreviewStore(cfg.Preview, logger)
	processor := pipeline.NewProcessor(extractor, previews, logger)
	exporter := export.NewService(cardRepo, logger)

	srv, err := server.NewServer(cfg.Server, processor, previews, cardRepo, exporter, logger)
	if err != nil {
		logger.Error("building server", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr, "ocr_backend", cfg.OCR.Backend, "db_driver", driver)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("stopped")
}

func buildExtractor(ctx context.Context, cfg common.OCRConfig, logger *slog.Logger) (extract.FragmentExtractor, func(), error) {
	if cfg.Backend == "vision" {
		v, err := extract.NewVisionExtractor(ctx, cfg.Language, logger)
		if err != nil {
			return nil, nil, err
		}
		return v, func() {
			if err := v.Close(); err != nil {
				logger.Error("closing vision client", "error", err)
			}
		}, nil
	}

	ocrx := ocr.NewExtractor(ocr.Config{
		Tesseract:   cfg.Tesseract,
		Language:    cfg.Language,
		TessdataDir: cfg.TessdataDir,
		PSM:         cfg.PSM,
		OEM:         cfg.OEM,
	}, logger)
	return extract.NewOCRAdapter(ocrx, logger), func() {}, nil
}

func buildPreviewStore(cfg common.PreviewConfig, logger *slog.Logger) preview.Store {
	if cfg.RedisAddr != "" {
		logger.Info("using redis preview store", "addr", cfg.RedisAddr)
		return preview.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.TTL)
	}
	return preview.NewMemoryStore(cfg.TTL)
}
