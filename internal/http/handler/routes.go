package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"audiosummarizer/internal/auth"
	"audiosummarizer/internal/http/middleware"
	"audiosummarizer/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal; business logic lives in the service layer.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.ReportService, verifier auth.TokenVerifier) {
	// Probes stay outside /api: they are for orchestrators, not clients.
	app.Get("/healthz", LivenessProbe())
	app.Get("/readyz", ReadinessCheck(db))

	api := app.Group("/api")

	// Public status endpoint; registered before the auth guard.
	api.Get("/health", HealthCheck())

	protected := app.Group("/api", middleware.Authenticate(verifier))
	protected.Post("/summarize", SummarizeAudio(svc))
	protected.Get("/jobs", ListJobs(svc))
	protected.Get("/jobs/:id", GetJob(svc))
}
