package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"student-records/internal/auth"
	"student-records/internal/config"
	"student-records/internal/db"
	"student-records/internal/health"
	"student-records/internal/httputil"
	"student-records/internal/logger"
	"student-records/internal/messaging"
	"student-records/internal/metrics"
	"student-records/internal/middleware"
	"student-records/internal/profile"
	"student-records/internal/student"
	"student-records/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
)

type App struct {
	config   *config.Config
	router   chi.Router
	server   *http.Server
	database *bun.DB
	producer messaging.Producer
	logger   *slog.Logger
}

func New() *App {
	slogLogger := logger.NewWithServiceContext(ServiceName, Version)

	// Set as default logger so slog.Info() uses the same handler
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env)

	app := &App{
		config: cfg,
		router: chi.NewRouter(),
		logger: slogLogger,
	}

	app.database = db.New(cfg.Database)

	ctx := context.Background()
	if err := db.RunMigrations(ctx, app.database, (*user.User)(nil), (*student.Student)(nil)); err != nil {
		log.Fatal("failed to run migrations:", err)
	}

	m, err := metrics.New(otel.Meter(ServiceName))
	if err != nil {
		slogLogger.Warn("failed to initialize metrics", "error", err)
		m = metrics.NewMock()
	}

	// Apply CORS middleware globally
	app.router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	// Health endpoints (no auth required)
	healthHandler := health.NewHandler()
	healthHandler.RegisterRoutes(app.router)

	// NATS producer setup (optional - the app runs without it)
	natsProducer, err := messaging.NewProducer(cfg.NATS.URL, cfg.NATS.Subject, slogLogger)
	if err != nil {
		slogLogger.Warn("failed to initialize NATS producer", "error", err)
		natsProducer = nil
	} else {
		slogLogger.Info("NATS producer initialized successfully")
	}
	app.producer = natsProducer

	// Stores and services
	userRepo := user.NewRepository(app.database)
	studentRepo := student.NewRepository(app.database)

	tokenTTL := time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute
	authService := auth.NewService(userRepo, cfg.Auth.Secret, tokenTTL)
	authHandler := auth.NewHandler(authService, slogLogger, m)

	studentService := student.NewService(studentRepo, natsProducer, slogLogger)
	studentHandler := student.NewHandler(studentService, slogLogger, m)

	profileService := profile.NewService(userRepo, studentService)
	profileHandler := profile.NewHandler(profileService, slogLogger, m)

	app.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondWithJSON(w, http.StatusOK, map[string]string{"msg": "Server is running!"})
	})

	app.router.Route("/api", func(r chi.Router) {
		// Public endpoints
		authHandler.RegisterRoutes(r)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(cfg.Auth.Secret, slogLogger))

			r.Get("/auth", authHandler.WhoAmI)
			profileHandler.RegisterRoutes(r)

			// Admin-only roster endpoints
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(user.RoleAdmin, slogLogger))
				studentHandler.RegisterRoutes(r)
			})
		})
	})

	slogLogger.Info("application initialized successfully")

	return app
}

func (a *App) Run() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.config.Server.IdleTimeout) * time.Second,
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")
	if a.producer != nil {
		a.producer.Close()
	}
	defer db.Close(a.database)
	return a.server.Shutdown(ctx)
}
