// @title Webinars API
// @version 1.0
// @description Seat booking for webinars.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"webinars/config"
	_ "webinars/docs"
	"webinars/internal/adapters/auth"
	"webinars/internal/adapters/email"
	"webinars/internal/cache"
	httpdelivery "webinars/internal/delivery/http"
	"webinars/internal/delivery/http/controllers"
	"webinars/internal/delivery/http/middleware"
	"webinars/internal/domain"
	"webinars/internal/repository/memory"
	"webinars/internal/repository/postgres"
	"webinars/internal/services"
	"webinars/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

type repositories struct {
	users          domain.UserRepository
	webinars       domain.WebinarRepository
	participations domain.ParticipationRepository
	db             *sql.DB
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)

	repos, err := openRepositories(ctx, cfg, hasher, logger)
	if err != nil {
		return err
	}
	checks := map[string]controllers.Pinger{}
	if repos.db != nil {
		defer repos.db.Close()
		checks["postgres"] = repos.db
	}

	if cfg.RedisURL != "" {
		client, err := cache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer client.Close()
		repos.webinars = cache.NewWebinarRepository(repos.webinars, client, cfg.CacheTTL, logger)
		checks["redis"] = controllers.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
		logger.Info("webinar cache enabled", "ttl", cfg.CacheTTL)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mail.Provider,
		FromAddress: cfg.Mail.FromAddress,
		FromName:    cfg.Mail.FromName,
		SES: email.SESConfig{
			Region:             cfg.Mail.SESRegion,
			AccessKeyID:        cfg.Mail.SESAccessKeyID,
			SecretAccessKey:    cfg.Mail.SESSecretAccessKey,
			InsecureSkipVerify: cfg.Mail.SESInsecureSkipTLS,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}

	notifier := services.NewEmailNotificationService(repos.users, mailer, email.NewTemplateRenderer(), logger)
	bookSeat := usecase.NewBookSeatUseCase(repos.participations, repos.webinars, notifier, logger, cfg.UseCaseTimeout)

	jwt := auth.NewJWT(cfg.JWTSecret)
	authService := services.NewAuthService(repos.users, hasher, jwt, cfg.JWTExpiry)

	router := httpdelivery.NewRouter(
		controllers.NewParticipationController(logger, bookSeat, repos.users),
		controllers.NewAuthController(logger, authService),
		controllers.NewHealthController(checks),
		middleware.RequireAuth(jwt, logger),
	)

	var handler http.Handler = router
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "port", cfg.Port, "env", cfg.Environment, "storage", cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func openRepositories(ctx context.Context, cfg *config.Config, hasher domain.PasswordHasher, logger *slog.Logger) (*repositories, error) {
	switch cfg.Storage {
	case "postgres":
		if err := postgres.RunMigrations(cfg.DBUrl, logger); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		db, err := postgres.Open(ctx, cfg.DBUrl)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		logger.Info("connected to database")
		return &repositories{
			users:          postgres.NewUserRepository(db),
			webinars:       postgres.NewWebinarRepository(db),
			participations: postgres.NewParticipationRepository(db),
			db:             db,
		}, nil
	default:
		var (
			users    []*domain.User
			webinars []*domain.Webinar
		)
		if cfg.SeedFile != "" {
			f, err := os.Open(cfg.SeedFile)
			if err != nil {
				return nil, fmt.Errorf("open seed file: %w", err)
			}
			defer f.Close()
			users, webinars, err = memory.LoadSeed(f, hasher)
			if err != nil {
				return nil, err
			}
			logger.Info("loaded seed", "users", len(users), "webinars", len(webinars))
		}
		return &repositories{
			users:          memory.NewUserRepository(users...),
			webinars:       memory.NewWebinarRepository(webinars...),
			participations: memory.NewParticipationRepository(),
		}, nil
	}
}
