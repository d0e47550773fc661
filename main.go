package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	logger, err := NewLogger(gin.Mode())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	doc, err := LoadDocument(cfg.ContentPath)
	if err != nil {
		logger.Fatalw("loading content failed", "path", cfg.ContentPath, "error", err)
	}

	tr, err := NewTranslator(cfg.DefaultLang, logger)
	if err != nil {
		logger.Fatalw("loading translations failed", "error", err)
	}

	store, err := OpenStore(cfg.DatabasePath)
	if err != nil {
		logger.Fatalw("opening database failed", "path", cfg.DatabasePath, "error", err)
	}
	defer store.Close()

	srv, err := NewServer(cfg, doc, tr, store, logger)
	if err != nil {
		logger.Fatalw("building server failed", "error", err)
	}

	go srv.CleanupOldVisitors(context.Background())

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router("templates/*"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infow("listening", "addr", httpServer.Addr, "default_lang", cfg.DefaultLang)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("server stopped", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("graceful shutdown failed", "error", err)
	}
}
