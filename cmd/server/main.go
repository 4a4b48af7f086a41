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

	_ "blogapp/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"blogapp/internal/auth"
	"blogapp/internal/cache"
	"blogapp/internal/config"
	"blogapp/internal/db"
	"blogapp/internal/handler"
	"blogapp/internal/logger"
	"blogapp/internal/repository"
	"blogapp/internal/router"
	"blogapp/internal/service"
	"blogapp/internal/view"
)

// @title Blog API
// @version 1.0
// @description Server-rendered blog with accounts, posts and comments.
// @host localhost:3333
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()

	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		fatal("database init", err)
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		fatal("migrate", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(context.Background()); err != nil {
		slog.Warn("redis unreachable, logins will fail until it is back", "addr", cfg.RedisAddr, "err", err)
	}

	// Initialize repositories
	userRepo := repository.NewCachedUserRepository(repository.NewUserRepository(gormDB), cacheClient)
	postRepo := repository.NewPostRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	// Initialize auth components
	sessions := auth.NewRedisSessionStore(cacheClient, cfg.SessionTTL)
	signer := auth.NewCookieSigner(cfg.SessionSecret, cfg.SessionCookie, cfg.SessionTTL, cfg.CookieSecure)
	hasher := auth.NewPasswordHasher(cfg.PasswordHashing)

	// Initialize services
	accountService := service.NewAccountService(userRepo, hasher, sessions)
	postService := service.NewPostService(userRepo, postRepo, commentRepo)

	renderer, err := view.New()
	if err != nil {
		fatal("templates", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer

	// Register routes
	router.Register(
		e,
		cfg,
		log,
		signer,
		sessions,
		handler.NewPageHandler(),
		handler.NewAccountHandler(accountService, signer, log),
		handler.NewPostHandler(postService, log),
	)

	slog.Info("swagger documentation available", "url", swaggerURL(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		slog.Info("server starting", "addr", addr, "env", cfg.Env, "db", cfg.DBDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("server start", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "err", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
