package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/learnhub/lesson-api/docs"
	"github.com/learnhub/lesson-api/internal/api/handler"
	"github.com/learnhub/lesson-api/internal/api/middleware"
	"github.com/learnhub/lesson-api/internal/core/ports"
)

// Deps are the collaborators the HTTP layer needs. Everything is built by
// the caller and injected; the router holds no globals.
type Deps struct {
	Log zerolog.Logger
	Dev bool

	Tokens     ports.TokenVerifier
	Auth       ports.AuthService
	Prompts    ports.PromptService
	Users      ports.UserService
	Admin      ports.AdminService
	Categories ports.CategoryService

	APILimiter   middleware.Limiter
	LoginLimiter middleware.Limiter

	// Readiness lists the dependencies probed by /health/ready.
	Readiness map[string]handler.Pinger

	// Registerer and Gatherer default to the prometheus globals.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, d.Dev)

	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "lessons",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit("1M"))

	// --- Operational endpoints (no auth required) ---
	health := handler.NewHealthHandler(d.Readiness)
	e.GET("/health", health.Liveness)        // liveness
	e.GET("/health/ready", health.Readiness) // readiness: mongodb, redis
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API ---
	p := middleware.NewPipeline(d.Tokens)
	authH := handler.NewAuthHandler(d.Auth)
	promptH := handler.NewPromptHandler(d.Prompts)
	userH := handler.NewUserHandler(d.Users)
	adminH := handler.NewAdminHandler(d.Admin)
	categoryH := handler.NewCategoryHandler(d.Categories)

	apiGroup := e.Group("/api", middleware.RateLimit("api", d.APILimiter, d.Log))

	auth := apiGroup.Group("/auth", middleware.RateLimit("login", d.LoginLimiter, d.Log))
	auth.POST("/register", p.Public(middleware.PublicBody(authH.Register)))
	auth.POST("/login", p.Public(middleware.PublicBody(authH.Login)))

	apiGroup.GET("/categories", p.Public(categoryH.List))
	apiGroup.GET("/categories/:id/sub-categories", p.Public(categoryH.ListSubCategories))

	apiGroup.POST("/prompts", p.Protected(middleware.WithBody(promptH.Create)))
	apiGroup.GET("/users/:id/prompts", p.Protected(promptH.ListForUser))
	apiGroup.PATCH("/users/me", p.Protected(middleware.WithBody(userH.UpdateMe)))

	admin := apiGroup.Group("/admin")
	admin.GET("/users", p.Admin(adminH.ListUsers))
	admin.GET("/users/:id/prompts", p.Admin(adminH.ListUserPrompts))
	admin.PATCH("/users/:id", p.Admin(middleware.WithBody(adminH.UpdateUser)))
	admin.DELETE("/users/:id", p.Admin(adminH.DeleteUser))

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
