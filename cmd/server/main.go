package main

import (
	"GophSign/internal/config"
	"GophSign/internal/handlers"
	"GophSign/internal/middleware"
	"GophSign/internal/pdf"
	"GophSign/internal/repo"
	"GophSign/internal/service"
	"GophSign/internal/storage"
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	store, err := storage.NewFileStore(cfg.UploadDir)
	if err != nil {
		sugar.Fatalw("failed to initialize upload storage", "dir", cfg.UploadDir, "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	accountRepo := repo.NewAccountRepository(gormDB)
	documentRepo := repo.NewDocumentRepository(gormDB)

	userService := service.NewUserService(userRepo, accountRepo)
	documentService := service.NewDocumentService(documentRepo, userRepo, store, pdf.NewPageCounter(), sugar)

	h := handlers.NewHandler(userService, documentService, sugar, cfg)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"ServerURL", cfg.ServerURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"UploadDir", cfg.UploadDir,
		"UploadMaxSizeMB", cfg.UploadMaxSizeMB,
		"SessionTTL", cfg.SessionTTL,
	)

	srv := &http.Server{
		Addr:              cfg.BaseURL,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sugar.Infow("Starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Infow("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Graceful shutdown failed", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
