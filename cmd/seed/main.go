package main

import (
	"context"
	"log/slog"
	"os"

	"blogapp/internal/auth"
	"blogapp/internal/cache"
	"blogapp/internal/config"
	"blogapp/internal/db"
	"blogapp/internal/logger"
	"blogapp/internal/repository"
	"blogapp/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting seed script")

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		fatal("connect to database", err)
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		fatal("run migrations", err)
	}
	log.Info("database ready", "driver", cfg.DBDriver)

	source := os.Getenv("SEED_FILE")
	fx, err := loadFixture(source)
	if err != nil {
		fatal("load fixture", err)
	}
	log.Info("fixture loaded", "source", sourceName(source), "users", len(fx.Users))

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	// Seeding never logs anyone in, so the session store is never touched.
	sessions := auth.NewRedisSessionStore(cacheClient, cfg.SessionTTL)
	s := &seeder{
		users:    userRepo,
		accounts: service.NewAccountService(userRepo, auth.NewPasswordHasher(cfg.PasswordHashing), sessions),
		posts:    service.NewPostService(userRepo, postRepo, commentRepo),
		log:      log,
	}

	st, err := s.run(context.Background(), fx)
	if err != nil {
		fatal("seed", err)
	}
	log.Info("seed completed",
		"users_created", st.Users,
		"users_skipped", st.SkippedUsers,
		"posts_created", st.Posts,
		"comments_created", st.Comments,
	)
}

func sourceName(source string) string {
	if source == "" {
		return "embedded"
	}
	return source
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
