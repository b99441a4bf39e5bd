package main

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	pg "open-baby-backend/internal/adapters/storage/postgres"
	"open-baby-backend/internal/platform/config"
	"open-baby-backend/internal/platform/logger"
	"open-baby-backend/internal/router"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, cfg.AppName)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	opts := router.Options{Logger: log}
	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Fatal("failed to open database", zap.Error(err))
		}
		opts.DB = db

		if cfg.DBDSNReadOnly != "" {
			ro, err := pg.Open(cfg.DBDSNReadOnly)
			if err != nil {
				log.Fatal("failed to open read-only database", zap.Error(err))
			}
			opts.ReadDB = ro
		}
	}

	r := router.NewRouter(opts)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", zap.String("addr", cfg.Addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server error", zap.Error(err))
	}
}
