// Package main is the entrypoint for the Owely API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/owely/owely/internal/auth"
	"github.com/owely/owely/internal/cache"
	"github.com/owely/owely/internal/config"
	"github.com/owely/owely/internal/handler"
	"github.com/owely/owely/internal/metrics"
	"github.com/owely/owely/internal/middleware"
	"github.com/owely/owely/internal/repository"
	"github.com/owely/owely/internal/server"
	"github.com/owely/owely/internal/service"
)

func main() {
	// Initialize context
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	// Initialize services
	metricsRecorder := metrics.NewInMemory()
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	authService := service.NewAuthService(repo, cacheClient, tokens, metricsRecorder)
	debtService := service.NewDebtService(repo, metricsRecorder)
	userService := service.NewUserService(repo, cacheClient)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	metricsHandler := handler.NewMetricsHandler(metricsRecorder)
	authHandler := handler.NewAuthHandler(authService, cacheClient, logger)
	debtHandler := handler.NewDebtHandler(debtService, logger)
	userHandler := handler.NewUserHandler(userService, debtService, logger)

	// Setup router
	r := setupRouter(routerDeps{
		root:    h,
		health:  healthHandler,
		metrics: metricsHandler,
		auth:    authHandler,
		debts:   debtHandler,
		users:   userHandler,
		tokens:  tokens,
		repo:    repo,
		cache:   cacheClient,
		cfg:     cfg,
		logger:  logger,
	})

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routerDeps struct {
	root    *handler.Handler
	health  *handler.HealthHandler
	metrics *handler.MetricsHandler
	auth    *handler.AuthHandler
	debts   *handler.DebtHandler
	users   *handler.UserHandler
	tokens  *auth.TokenIssuer
	repo    *repository.Repository
	cache   *cache.Cache
	cfg     *config.Config
	logger  *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(middleware.Security(middleware.DefaultSecurityConfig()))
	r.Use(middleware.MaxBodySize(deps.cfg.MaxRequestBodySize))

	if origins := deps.cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsCfg := middleware.DefaultCORSConfig()
		corsCfg.AllowedOrigins = origins
		r.Use(middleware.CORS(corsCfg))
	}

	// Health endpoints (no auth required)
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)
	r.Get("/debug/metrics", deps.metrics.Snapshot)

	// Root info endpoint
	r.Get("/", deps.root.Hello)

	// Auth middleware configuration
	authCfg := middleware.AuthConfig{
		Logger:     deps.logger,
		Tokens:     deps.tokens,
		Repository: deps.repo,
		Cache:      deps.cache,
	}

	// Rate limit middleware configuration
	rateLimitCfg := middleware.RateLimitConfig{
		Logger:             deps.logger,
		Cache:              deps.cache,
		APIEnabled:         deps.cfg.RateLimitAPIEnabled,
		APIRequestsPerMin:  deps.cfg.RateLimitAPIPerMin,
		APIBurst:           deps.cfg.RateLimitAPIBurst,
		AuthEnabled:        deps.cfg.RateLimitAuthEnabled,
		AuthRequestsPerMin: deps.cfg.RateLimitAuthPerMin,
		AuthBurst:          deps.cfg.RateLimitAuthBurst,
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Pre-auth endpoints, rate limited per IP
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitIP(rateLimitCfg))
			r.Post("/auth/register", deps.auth.Register)
			r.Post("/auth/login", deps.auth.Login)
		})

		// Authenticated endpoints, rate limited per user
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))
			r.Use(middleware.RateLimitAPI(rateLimitCfg))

			r.Route("/auth", func(r chi.Router) {
				r.Get("/me", deps.auth.Me)
				r.Get("/validate", deps.auth.Validate)
				r.Post("/refresh", deps.auth.Refresh)
				r.Post("/logout", deps.auth.Logout)
				r.Post("/change-password", deps.auth.ChangePassword)
			})

			r.Route("/debts", func(r chi.Router) {
				r.Get("/", deps.debts.List)
				r.Post("/", deps.debts.Create)
				r.Get("/statistics", deps.debts.Aggregations)
				r.Get("/export", deps.debts.Export)
				r.Get("/recent", deps.debts.Recent)
				r.Get("/summary", deps.debts.Summary)
				r.Get("/{id}", deps.debts.Get)
				r.Patch("/{id}", deps.debts.Update)
				r.Post("/{id}/pay", deps.debts.Pay)
				r.Delete("/{id}", deps.debts.Delete)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", deps.users.List)
				r.Get("/profile", deps.users.Profile)
				r.Patch("/profile", deps.users.UpdateProfile)
				r.Get("/statistics", deps.users.Statistics)
				r.Delete("/account", deps.users.DeleteAccount)
			})
		})
	})

	// 404 and 405 handlers
	r.NotFound(deps.root.NotFound)
	r.MethodNotAllowed(deps.root.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
