package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"audiosummarizer/internal/ai"
	"audiosummarizer/internal/auth"
	"audiosummarizer/internal/config"
	"audiosummarizer/internal/database"
	"audiosummarizer/internal/database/migration"
	handlers "audiosummarizer/internal/http/handler"
	"audiosummarizer/internal/http/middleware"
	"audiosummarizer/internal/otel"
	"audiosummarizer/internal/report"
	"audiosummarizer/internal/repository/postgres"
	"audiosummarizer/internal/service"
	"audiosummarizer/internal/storage"
)

func main() {
	ctx := context.Background()

	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Tracing is optional; a broken collector must not block startup
	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	genaiClient, err := ai.NewClient(ctx, cfg.GenAI)
	if err != nil {
		log.Fatalf("failed to initialize generation client: %v", err)
	}

	verifier := auth.NewHTTPVerifier(cfg.Auth)

	// Assemble the summarization flow
	jobRepo := postgres.NewJobPostgres(db)
	transfer := service.NewTransfer(objStore, cfg.MinIO.Bucket)
	pipeline := service.NewPipeline(genaiClient, genaiClient, report.NewFiller())
	reportSvc := service.NewReportService(transfer, pipeline, jobRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    1 * 1024 * 1024, // requests carry locators, never file content
	})

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.FrontendURL,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected service
	handlers.RegisterRoutes(app, db, reportSvc, verifier)

	addr := cfg.Host + ":" + cfg.Port
	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
