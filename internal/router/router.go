package router

import (
	"fmt"
	"log/slog"

	"github.com/anonto42/nano-social/backend/internal/handlers"
	"github.com/anonto42/nano-social/backend/internal/middleware"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/anonto42/nano-social/backend/pkg/config"
	"github.com/anonto42/nano-social/backend/validators"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Dependencies are the external resources the HTTP API is built on
type Dependencies struct {
	DB         *gorm.DB
	Activities repositories.ActivityRepository // nil disables the journal
	Publisher  services.Publisher              // nil disables realtime delivery
	Logger     *slog.Logger

	AuthProvider     string
	JWTSecret        string
	FirebaseVerifier middleware.IDTokenVerifier
}

// New builds a ready-to-serve echo instance
func New(deps Dependencies) (*echo.Echo, error) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.ErrorHandler(deps.Logger)
	config.SetupMiddleware(e, deps.Logger)

	if err := SetupRoutes(e, deps); err != nil {
		return nil, err
	}
	return e, nil
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) error {
	logger := deps.Logger
	store := repositories.NewStore(deps.DB)
	svc := services.New(store, deps.Activities, deps.Publisher, logger)

	authMiddleware, err := authenticator(deps, svc.Users)
	if err != nil {
		return err
	}

	// Health check - always accessible
	e.GET("/health", handlers.NewHealthHandler(deps.DB).HealthCheck)

	// Authentication is optional at this layer: anonymous requests reach the
	// services, which reject them where an identity is required.
	api := e.Group("/api/v1")
	api.Use(authMiddleware)
	logger.Info("authentication middleware applied to /api/v1 group", slog.String("provider", deps.AuthProvider))

	handlers.NewUserHandler(svc.Users).RegisterUserRoutes(api)
	handlers.NewFollowHandler(svc.Relationships).RegisterFollowRoutes(api)
	handlers.NewPostHandler(svc.Content).RegisterPostRoutes(api)
	handlers.NewCommentHandler(svc.Content).RegisterCommentRoutes(api)
	handlers.NewLikeHandler(svc.Content).RegisterLikeRoutes(api)
	handlers.NewFeedHandler(svc.Feed).RegisterFeedRoutes(api)
	handlers.NewNotificationHandler(svc.Notifications).RegisterNotificationRoutes(api)

	logger.Info("all routes configured", slog.Int("count", len(e.Routes())))
	return nil
}

func authenticator(deps Dependencies, users *services.UserService) (echo.MiddlewareFunc, error) {
	switch deps.AuthProvider {
	case "", config.AuthProviderJWT:
		return middleware.JWTAuthMiddleware(deps.JWTSecret), nil
	case config.AuthProviderFirebase:
		if deps.FirebaseVerifier == nil {
			return nil, fmt.Errorf("firebase auth selected but no verifier configured")
		}
		return middleware.FirebaseAuthMiddleware(deps.FirebaseVerifier, users.ResolveFirebaseUID), nil
	default:
		return nil, fmt.Errorf("unknown auth provider %q", deps.AuthProvider)
	}
}
