package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/gutscas/santo-dashboard/internal/core/port"
	"github.com/gutscas/santo-dashboard/internal/infra/config"
	"github.com/gutscas/santo-dashboard/internal/infra/database"
	kafkainfra "github.com/gutscas/santo-dashboard/internal/infra/kafka"
	"github.com/gutscas/santo-dashboard/internal/infra/logger"
	"github.com/gutscas/santo-dashboard/internal/infra/mail"
	redisinfra "github.com/gutscas/santo-dashboard/internal/infra/redis"
	"github.com/gutscas/santo-dashboard/internal/infra/security"
	"github.com/gutscas/santo-dashboard/internal/infra/storage"
	"github.com/gutscas/santo-dashboard/internal/infra/telemetry"
	postgresrepo "github.com/gutscas/santo-dashboard/internal/repository/postgres"
	redisrepo "github.com/gutscas/santo-dashboard/internal/repository/redis"
	"github.com/gutscas/santo-dashboard/internal/transport/http/middleware"
	"github.com/gutscas/santo-dashboard/internal/transport/http/routes"
	"github.com/gutscas/santo-dashboard/internal/usecase"
)

type Application struct {
	cfg    *config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	pool   *pgxpool.Pool
	redis  *redisinfra.Client
	tracer *telemetry.TracerProvider
}

func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	if _, err := telemetry.Attach(ctx, cfg); err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	var tracer *telemetry.TracerProvider
	if cfg.Telemetry.OTLPEndpoint != "" {
		tracer, err = telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
		if err != nil {
			return nil, fmt.Errorf("init tracing: %w", err)
		}
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	argonCfg := security.Argon2Config{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  cfg.Argon2.SaltLength,
		KeyLength:   cfg.Argon2.KeyLength,
	}
	if err := security.ConfigureArgon2(argonCfg); err != nil {
		return nil, fmt.Errorf("configure argon2: %w", err)
	}

	jwtManager, err := security.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer)
	if err != nil {
		return nil, fmt.Errorf("init jwt manager: %w", err)
	}

	var (
		redisClient *redisinfra.Client
		rateLimiter *middleware.RateLimiter
		cache       routes.CacheChecker
	)
	if cfg.Redis.Host != "" {
		redisClient, err = redisinfra.NewClient(cfg.Redis, log)
		if err != nil {
			return nil, fmt.Errorf("init redis: %w", err)
		}

		rateLimitWindow := cfg.RateLimit.WindowDuration
		if rateLimitWindow <= 0 {
			rateLimitWindow = time.Minute
		}
		rateLimitStore := redisrepo.NewRateLimitRepository(redisClient.Client(), redisrepo.SlidingWindowConfig{
			KeyPrefix: "accounts:rate-limit",
			TTL:       rateLimitWindow * 2,
		})
		rateLimiter = middleware.NewRateLimiter(rateLimitStore, log)
		cache = redisClient
	} else {
		log.Info("redis not configured, rate limiting disabled")
	}

	var eventPublisher port.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer, err := kafkainfra.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Warn("failed to init kafka producer, using stub publisher", zap.Error(err))
			eventPublisher = kafkainfra.NewStubPublisher(log)
		} else {
			eventPublisher = kafkainfra.NewEventPublisher(kafkaProducer, cfg.App, log)
			log.Info("kafka event publisher initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
		}
	} else {
		log.Info("kafka brokers not configured, using stub publisher")
		eventPublisher = kafkainfra.NewStubPublisher(log)
	}

	var mailer port.Mailer
	if cfg.SMTP.Host != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTP)
	} else {
		log.Info("smtp not configured, reset codes will be logged instead of mailed")
		mailer = mail.NewLoggingMailer(log)
	}

	var fileStore port.FileStore
	if cfg.S3.Bucket != "" {
		s3Store, err := storage.NewS3Store(ctx, cfg.S3, log)
		if err != nil {
			return nil, fmt.Errorf("init s3 storage: %w", err)
		}
		fileStore = s3Store
	} else {
		log.Info("s3 bucket not configured, profile attachments disabled")
	}

	metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{})
	if err != nil {
		return nil, fmt.Errorf("init http metrics: %w", err)
	}

	repos := postgresrepo.NewRepositories(pool)

	authService := usecase.NewAuthService(cfg, repos.Accounts, repos.Tokens, jwtManager, log)
	registrationService := usecase.NewRegistrationService(repos.Accounts, eventPublisher, log)
	profileService := usecase.NewProfileService(repos.Profiles, fileStore, log)
	passwordResetService := usecase.NewPasswordResetService(repos.Accounts, repos.ResetCodes, mailer, eventPublisher, log)
	postService := usecase.NewPostService(repos.Posts)

	engine := routes.Register(routes.Dependencies{
		Config:      cfg,
		Logger:      log,
		RateLimiter: rateLimiter,
		Metrics:     metrics,
		Database:    pool,
		Cache:       cache,
		Services: routes.ServiceSet{
			Auth:          authService,
			Registration:  registrationService,
			Profiles:      profileService,
			PasswordReset: passwordResetService,
			Posts:         postService,
		},
	})

	return &Application{
		cfg:    cfg,
		engine: engine,
		logger: log,
		pool:   pool,
		redis:  redisClient,
		tracer: tracer,
	}, nil
}

func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer func() {
		if a.pool != nil {
			a.pool.Close()
		}
	}()
	defer func() {
		if a.redis != nil {
			_ = a.redis.Close()
		}
	}()
	defer func() {
		if a.tracer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := a.tracer.Shutdown(shutdownCtx); err != nil {
				a.logger.Warn("tracer shutdown failed", zap.Error(err))
			}
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting accounts API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}
