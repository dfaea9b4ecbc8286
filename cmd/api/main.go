// Command api runs the Boothly HTTP API.
//
//go:generate swag init -g cmd/api/main.go -d ../../ -o ../../docs
package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"

	"boothly/config"
	_ "boothly/docs"
	"boothly/internal/adapters/auth"
	"boothly/internal/adapters/broker"
	"boothly/internal/adapters/email"
	"boothly/internal/adapters/ical"
	"boothly/internal/adapters/qr"
	"boothly/internal/adapters/session"
	"boothly/internal/adapters/storage"
	delivery "boothly/internal/delivery/http"
	"boothly/internal/delivery/http/controllers"
	"boothly/internal/delivery/http/middleware"
	"boothly/internal/repository/postgres"
	"boothly/internal/repository/postgres/migrations"
	"boothly/internal/services"
)

// @title Boothly API
// @version 1.0
// @description Events calendar, organizer submissions and maker profiles.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("api stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return err
	}
	if cfg.MigrateOnStart {
		if err := migrations.Up(db, logger); err != nil {
			return err
		}
	}

	redisClient, err := session.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	store, err := storage.New(cfg.Storage.Provider, storage.S3Config{
		Region:          cfg.Storage.Region,
		Endpoint:        cfg.Storage.Endpoint,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		ForcePathStyle:  cfg.Storage.ForcePathStyle,
		PublicBaseURL:   cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		return err
	}
	var files http.Handler
	if mem, ok := store.(*storage.MemoryStore); ok {
		files = mem
	}

	mailer := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.Region,
			AccessKeyID:        cfg.Email.AccessKeyID,
			SecretAccessKey:    cfg.Email.SecretAccessKey,
			InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
		},
	}, logger)

	notifier := broker.NewNotifier(broker.Config{
		Provider: cfg.Broker.Provider,
		Brokers:  cfg.Broker.Brokers,
		Topics: broker.Topics{
			Sessions: cfg.Broker.SessionsTopic,
			Events:   cfg.Broker.EventsTopic,
			Profiles: cfg.Broker.ProfilesTopic,
		},
	}, logger)
	defer func() {
		if err := notifier.Close(); err != nil {
			logger.Warn("close notifier", "err", err)
		}
	}()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	profileRepo := postgres.NewProfileRepository(db)

	// Services
	revocations := session.NewRedisRevocationStore(redisClient)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	authService := services.NewAuthService(
		userRepo,
		auth.NewBcryptHasher(0),
		auth.NewJWTIssuer(cfg.JWTSecret),
		revocations,
		emailService,
		notifier,
		logger,
		cfg.JWTExpiry,
		cfg.ServiceTimeout,
	)
	profileService := services.NewProfileService(profileRepo, store, cfg.Storage.UploadsBucket, notifier, logger, cfg.ServiceTimeout)
	eventService := services.NewEventService(eventRepo, store, cfg.Storage.FlyersBucket, notifier, logger, cfg.Timezone, cfg.ServiceTimeout)
	calendarService := services.NewCalendarService(eventRepo, cfg.Timezone, cfg.ServiceTimeout)

	router := delivery.NewRouter(delivery.Routes{
		Auth:     controllers.NewAuthController(logger, authService),
		Profile:  controllers.NewProfileController(logger, profileService, cfg.MaxUploadBytes),
		Event:    controllers.NewEventController(logger, eventService, qr.NewPNGEncoder(256), cfg.MaxUploadBytes),
		Calendar: controllers.NewCalendarController(logger, calendarService, ical.NewEncoder("Boothly events")),
		Health: controllers.NewHealthController(logger, map[string]controllers.HealthCheck{
			"postgres": db.PingContext,
			"redis":    redisPing(redisClient),
		}, 2*time.Second),
		RequireAuth: middleware.RequireAuth(auth.NewJWTVerifier(cfg.JWTSecret), revocations, logger),
		Files:       files,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, router)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "env", cfg.Environment, "storage", cfg.Storage.Provider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func redisPing(client *redis.Client) controllers.HealthCheck {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
