package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gutscas/santo-dashboard/internal/infra/config"
	"github.com/gutscas/santo-dashboard/internal/transport/http/handlers"
	"github.com/gutscas/santo-dashboard/internal/transport/http/middleware"
	"github.com/gutscas/santo-dashboard/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Auth          *usecase.AuthService
	Registration  *usecase.RegistrationService
	Profiles      *usecase.ProfileService
	PasswordReset *usecase.PasswordResetService
	Posts         *usecase.PostService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config      *config.AppConfig
	Logger      *zap.Logger
	RateLimiter *middleware.RateLimiter
	Metrics     *middleware.HTTPMetrics
	Services    ServiceSet
	Database    DatabaseChecker
	Cache       CacheChecker
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker exposes readiness behaviour for cache backends.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(deps.Config.App.AllowedOrigins))

	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	authMiddleware := middleware.RequireAuth(deps.Services.Auth)

	healthOptions := make([]handlers.HealthOption, 0, 2)

	if deps.Database != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("database", deps.Database.Ping))
	}

	if deps.Cache != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("redis", deps.Cache.HealthCheck))
	}

	healthHandler := handlers.NewHealthHandler(healthOptions...)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	registrationHandler := handlers.NewRegistrationHandler(deps.Services.Registration)
	authHandler := handlers.NewAuthHandler(deps.Services.Auth)
	profileHandler := handlers.NewProfileHandler(deps.Services.Profiles)
	passwordHandler := handlers.NewPasswordHandler(deps.Services.PasswordReset)
	postHandler := handlers.NewPostHandler(deps.Services.Posts)

	r.POST("/register/", registrationHandler.Register)

	loginHandlers := append(buildLoginMiddlewares(deps), authHandler.Login)
	r.POST("/login/", loginHandlers...)
	r.POST("/token/refresh/", authHandler.Refresh)

	me := r.Group("/profile/me", authMiddleware)
	me.GET("/", profileHandler.Me)
	me.POST("/", profileHandler.CreateMe)
	me.PATCH("/", profileHandler.UpdateMe)

	profiles := r.Group("/profiles", authMiddleware)
	profiles.POST("/", profileHandler.Create)
	profiles.GET("/", profileHandler.MissingID)
	profiles.PATCH("/", profileHandler.MissingID)
	profiles.PUT("/", profileHandler.MissingID)
	profiles.DELETE("/", profileHandler.MissingID)
	profiles.GET("/all/", profileHandler.ListAll)
	profiles.GET("/:id/", profileHandler.Get)
	profiles.PATCH("/:id/", profileHandler.Update)
	profiles.PUT("/:id/", profileHandler.Update)
	profiles.DELETE("/:id/", profileHandler.Delete)

	posts := r.Group("/posts")
	posts.GET("/", postHandler.List)
	posts.POST("/", postHandler.Create)
	posts.GET("/:id/", postHandler.Get)
	posts.PUT("/:id/", postHandler.Update)
	posts.PATCH("/:id/", postHandler.Update)
	posts.DELETE("/:id/", postHandler.Delete)

	forgotHandlers := append(buildPasswordResetMiddlewares(deps), passwordHandler.ForgotPassword)
	r.POST("/forgot-password/", forgotHandlers...)
	r.POST("/verify-otp/", passwordHandler.VerifyOTP)
	r.POST("/reset-password/", passwordHandler.ResetPassword)

	return r
}

func buildLoginMiddlewares(deps Dependencies) []gin.HandlerFunc {
	if deps.RateLimiter == nil || deps.Config == nil {
		return nil
	}

	limit := deps.Config.RateLimit.LoginMaxAttempts
	if limit <= 0 {
		return nil
	}

	window := deps.Config.RateLimit.WindowDuration
	if window <= 0 {
		window = time.Minute
	}

	rule := middleware.RateLimitRule{
		Name:       "auth_login_ip",
		Limit:      limit,
		Window:     window,
		Identifier: middleware.ClientIPIdentifier(),
	}

	return []gin.HandlerFunc{deps.RateLimiter.RateLimit(rule)}
}

func buildPasswordResetMiddlewares(deps Dependencies) []gin.HandlerFunc {
	if deps.RateLimiter == nil || deps.Config == nil {
		return nil
	}

	limit := deps.Config.RateLimit.PasswordResetMaxAttempts
	if limit <= 0 {
		return nil
	}

	window := deps.Config.RateLimit.WindowDuration
	if window <= 0 {
		window = time.Hour
	}

	rule := middleware.RateLimitRule{
		Name:       "password_reset_ip",
		Limit:      limit,
		Window:     window,
		Identifier: middleware.ClientIPIdentifier(),
	}

	return []gin.HandlerFunc{deps.RateLimiter.RateLimit(rule)}
}
