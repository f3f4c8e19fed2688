package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "breakthrough/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"breakthrough/internal/auth"
	"breakthrough/internal/cache"
	"breakthrough/internal/config"
	"breakthrough/internal/db"
	"breakthrough/internal/handler"
	"breakthrough/internal/logging"
	"breakthrough/internal/repository"
	"breakthrough/internal/router"
	"breakthrough/internal/service"
	"breakthrough/internal/validation"
)

const shutdownTimeout = 10 * time.Second

// @title Breakthrough Journal API
// @version 1.0
// @description Registration, login and ordered journal messages.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	debug := strings.EqualFold(cfg.LogLevel, "debug")
	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, log, debug)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			log.Warn("close database", "error", err)
		}
	}()

	if cfg.ResetDB {
		log.Warn("RESET_DB=true detected, dropping all tables")
		db.Reset(gormDB, log)
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	// A zero TTL disables caching and redis is never dialed
	var store cache.Store
	if cfg.CacheTTL > 0 {
		cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer cacheClient.Close()
		if err := cacheClient.Ping(context.Background()); err != nil {
			log.Warn("redis unavailable, serving without cache", "addr", cfg.RedisAddr, "error", err)
		}
		store = cacheClient
	}

	hasher, err := auth.NewHasher(auth.Options{
		Algorithm:  cfg.PasswordHasher,
		LegacySalt: cfg.LegacyPasswordSalt,
		BcryptCost: cfg.BcryptCost,
		Argon2:     auth.DefaultArgon2Params,
	})
	if err != nil {
		return err
	}

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(gormDB)

	// Initialize services
	authService := service.NewAuthService(accountRepo, hasher, validation.New(), log)
	messageService := service.NewMessageService(accountRepo, store, cfg.CacheTTL, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	messageHandler := handler.NewMessageHandler(messageService)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.RequestID())

	router.Register(e, cfg, log, authHandler, messageHandler)

	log.Info("swagger documentation available", "url", swaggerURL(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.ServerPort
		log.Info("server listening", "addr", addr, "hasher", cfg.PasswordHasher, "db_driver", cfg.DBDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return strings.TrimSuffix(host, "/") + "/swagger/index.html"
}
