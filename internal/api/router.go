package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	redisclient "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Akhilesh53/authcore/internal/api/handler"
	"github.com/Akhilesh53/authcore/internal/api/middleware"
	"github.com/Akhilesh53/authcore/internal/core/ports"
	"github.com/Akhilesh53/authcore/internal/core/service"
	"github.com/Akhilesh53/authcore/internal/infrastructure/config"
	mongodb "github.com/Akhilesh53/authcore/internal/infrastructure/db/mongo"
	redisdb "github.com/Akhilesh53/authcore/internal/infrastructure/db/redis"
	"github.com/Akhilesh53/authcore/internal/infrastructure/http/handlers"
	"github.com/Akhilesh53/authcore/internal/pkg/password"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The notifier is injected so the caller decides between direct SMTP and the
// async dispatcher.
func NewRouter(db *mongo.Database, rdb *redisclient.Client, notifier ports.Notifier, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	hasher := password.NewBcryptHasher(cfg.Auth.BcryptCost)
	sessions := redisdb.NewSessionStore(rdb, cfg.Auth.SessionTTL)
	authService := service.NewAuthService(userRepo, hasher, sessions, notifier, service.Config{
		ResetTokenTTL:          cfg.Auth.ResetTokenTTL,
		ResetURLBase:           cfg.Auth.ResetURLBase,
		RequireCurrentPassword: cfg.Auth.RequireCurrentPassword,
	}, log)
	authHandler := handler.NewAuthHandler(authService, log)
	guard := middleware.Session(sessions)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.POST("/auth/forgot", authHandler.ForgotPassword)
	e.POST("/auth/reset", authHandler.ResetPassword)
	e.POST("/auth/password/change", authHandler.ChangePassword, guard)
	e.GET("/auth/me", authHandler.Me, guard)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
