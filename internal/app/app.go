package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"student-records-service/internal/config"
	"student-records-service/internal/db"
	"student-records-service/internal/health"
	"student-records-service/internal/logger"
	"student-records-service/internal/messaging"
	"student-records-service/internal/metrics"
	"student-records-service/internal/middleware"
	"student-records-service/internal/student"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
)

type App struct {
	config    *config.Config
	router    chi.Router
	server    *http.Server
	database  *bun.DB
	publisher student.Publisher
	logger    *slog.Logger
}

func New() *App {
	slogLogger := logger.NewWithServiceContext(ServiceName, Version)

	// Set as default logger so slog.Info() uses JSON format
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
	if err := db.RunMigrations(ctx, app.database, (*student.Student)(nil)); err != nil {
		log.Fatal("failed to run migrations:", err)
	}

	m, err := metrics.New(otel.Meter(ServiceName))
	if err != nil {
		slogLogger.Warn("failed to initialize metrics", "error", err)
		m = metrics.NewMock()
	}

	app.publisher = newPublisher(cfg.Events, slogLogger)

	app.router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	healthHandler := health.NewHandler()
	healthHandler.RegisterRoutes(app.router)

	studentRepo := student.NewRepository(app.database)
	studentService := student.NewService(studentRepo, app.publisher, slogLogger)
	studentHandler := student.NewHandler(studentService, slogLogger, m)

	app.router.Route("/api", func(r chi.Router) {
		studentHandler.RegisterRoutes(r)
	})

	slogLogger.Info("application initialized successfully")

	return app
}

// newPublisher picks the lifecycle-event backend from config. Events are
// optional: a missing backend or a failed connection disables publishing.
func newPublisher(cfg config.EventsConfig, logger *slog.Logger) student.Publisher {
	switch cfg.Backend {
	case "nats":
		publisher, err := messaging.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.Subject, logger)
		if err != nil {
			logger.Warn("failed to initialize NATS publisher, events disabled", "error", err)
			return nil
		}
		return publisher
	case "kafka":
		publisher, err := messaging.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		if err != nil {
			logger.Warn("failed to initialize kafka publisher, events disabled", "error", err)
			return nil
		}
		return publisher
	default:
		logger.Info("event publishing disabled")
		return nil
	}
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

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error("failed to close event publisher", "error", err)
		}
	}

	db.Close(a.database)

	return a.server.Shutdown(ctx)
}
