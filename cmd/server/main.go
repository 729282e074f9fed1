package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ozgurkara/gunluk-kelime/internal/config"
	"github.com/ozgurkara/gunluk-kelime/internal/delivery/httpapi"
	"github.com/ozgurkara/gunluk-kelime/internal/infra/postgres"
	"github.com/ozgurkara/gunluk-kelime/internal/logger"
	"github.com/ozgurkara/gunluk-kelime/internal/repository"
	"github.com/ozgurkara/gunluk-kelime/internal/repository/memory"
	"github.com/ozgurkara/gunluk-kelime/internal/seed"
	"github.com/ozgurkara/gunluk-kelime/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize repositories over the configured storage backend.
	var (
		wordRepo  service.WordRepository
		dailyRepo service.DailyWordRepository
		storyRepo service.StoryRepository
	)

	switch cfg.Storage {
	case config.StorageMemory:
		store := memory.NewStore()
		wordRepo = store.Words()
		dailyRepo = store.DailyWords()
		storyRepo = store.Stories()

		if err := seed.Run(ctx, zl, store.Words(), store.DailyWords(), store.Stories(), cfg.Assets.WordsPath, cfg.Assets.StoriesPath); err != nil {
			zl.Fatal("failed to seed memory store", zap.Error(err))
		}
	case config.StoragePostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			zl.Fatal("database URL is not configured", zap.Error(err))
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			zl.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer pool.Close()

		if err := postgres.Bootstrap(ctx, pool); err != nil {
			zl.Fatal("failed to bootstrap schema", zap.Error(err))
		}

		wordRepo = repository.NewWordRepository(pool)
		dailyRepo = repository.NewDailyWordRepository(pool)
		storyRepo = repository.NewStoryRepository(pool)

		// Seed inside a single transaction so a half-loaded catalog never
		// becomes visible.
		transactor := postgres.NewTransactor(pool)
		err = transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
			return seed.Run(
				ctx,
				zl,
				repository.NewWordRepository(tx),
				repository.NewDailyWordRepository(tx),
				repository.NewStoryRepository(tx),
				cfg.Assets.WordsPath,
				cfg.Assets.StoriesPath,
			)
		})
		if err != nil {
			zl.Fatal("failed to seed database", zap.Error(err))
		}
	default:
		zl.Fatal("unknown storage backend", zap.String("storage", cfg.Storage))
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	wordService := service.NewWordService(wordRepo)
	dailyService := service.NewDailyWordService(dailyRepo, wordRepo, rng)
	storyService := service.NewStoryService(storyRepo, wordRepo)

	handler := httpapi.NewHandler(wordService, dailyService, storyService, zl)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: handler.Router(),
	}

	go func() {
		zl.Info("starting HTTP server", zap.String("port", cfg.HTTP.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
