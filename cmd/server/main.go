package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tripplanner/internal/agent"
	"tripplanner/internal/api"
	"tripplanner/internal/config"
	"tripplanner/internal/kb"
	"tripplanner/internal/llm"
	"tripplanner/internal/logger"
	"tripplanner/internal/ratelimit"
	"tripplanner/internal/session"
	"tripplanner/internal/tools"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server exited with error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logger); err != nil {
		return err
	}
	log := logger.Logger

	ctx := context.Background()

	store, err := kb.NewStore(cfg.USDToAUD)
	if err != nil {
		return fmt.Errorf("loading knowledge base: %w", err)
	}
	log.Info().Int("destinations", len(store.All())).Msg("knowledge base loaded")

	registry, err := tools.NewRegistry(store)
	if err != nil {
		return fmt.Errorf("building tool registry: %w", err)
	}

	chatModel, err := llm.NewChatModel(ctx, cfg.Model)
	if err != nil {
		return fmt.Errorf("building chat model: %w", err)
	}
	log.Info().Str("provider", cfg.Model.Provider).Str("model", cfg.Model.Model).Msg("chat model ready")

	planner, err := agent.New(ctx, chatModel, registry, log.With().Str("component", "agent").Logger())
	if err != nil {
		return err
	}

	var sessions session.Store
	if cfg.RedisURL != "" {
		redisStore, err := session.NewRedisStore(ctx, cfg.RedisURL, time.Duration(cfg.SessionTTLSeconds)*time.Second)
		if err != nil {
			return fmt.Errorf("connecting session store: %w", err)
		}
		defer func() { _ = redisStore.Close() }()
		sessions = redisStore
		log.Info().Msg("using redis session store")
	} else {
		sessions = session.NewMemoryStore()
		log.Warn().Msg("REDIS_URL not set, sessions are in-memory only")
	}

	limiter, err := ratelimit.NewLimiter(cfg.MaxDailyRequests, cfg.MaxMonthlyRequests, nil)
	if err != nil {
		return err
	}

	handlers := api.NewHandlers(planner, sessions, limiter, log.With().Str("component", "api").Logger())
	router := api.NewRouter(handlers, cfg.AllowedOrigins, cfg.RequestsPerMinute)

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// Streaming responses can legitimately run for minutes.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listening: %w", err)
		}
	}()

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info().Msg("server shut down cleanly")
	return nil
}
