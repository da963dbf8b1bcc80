package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"audiosummarizer/internal/http/middleware"
	"audiosummarizer/internal/service"
	"audiosummarizer/internal/storage"
)

// summarizeRequest is the POST /api/summarize body. Both locators reference
// objects in the configured bucket, e.g. s3://bucket/audio/intro.mp3.
type summarizeRequest struct {
	AudioFileLocator    string `json:"audio_file_locator"`
	TemplateFileLocator string `json:"template_file_locator"`
}

// summarizeResponse is the POST /api/summarize reply. Processing failures
// still answer 200 with success=false; the job row records the details.
type summarizeResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	ReportFileLocator string `json:"report_file_locator,omitempty"`
}

// HealthCheck reports service availability without touching dependencies.
func HealthCheck() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"message": "Audio summarizer service is running",
		})
	}
}

// LivenessProbe is the bare liveness endpoint for orchestrators.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ReadinessCheck verifies database connectivity before reporting ready.
func ReadinessCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ready"})
	}
}

// SummarizeAudio runs the full summarization flow for the authenticated user.
func SummarizeAudio(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req summarizeRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		}
		if req.AudioFileLocator == "" || req.TemplateFileLocator == "" {
			return writeError(c, fiber.StatusBadRequest, "LOCATOR_REQUIRED", "audio_file_locator and template_file_locator are required")
		}

		userID := middleware.UserIDFromCtx(c)
		job, err := svc.Summarize(c.UserContext(), userID, req.AudioFileLocator, req.TemplateFileLocator)
		if err != nil {
			if errors.Is(err, service.ErrLocatorRequired) {
				return writeError(c, fiber.StatusBadRequest, "LOCATOR_REQUIRED", "audio_file_locator and template_file_locator are required")
			}
			// Processing failures answer 200 with success=false so clients
			// can distinguish "your request never ran" from "it ran and broke".
			return c.Status(fiber.StatusOK).JSON(summarizeResponse{
				Success: false,
				Message: failureMessage(err),
			})
		}

		return c.Status(fiber.StatusOK).JSON(summarizeResponse{
			Success:           true,
			Message:           "Report generated successfully",
			ReportFileLocator: job.ReportLocator,
		})
	}
}

// failureMessage maps internal errors to client-safe descriptions.
func failureMessage(err error) string {
	var stageErr *service.StageError
	switch {
	case errors.Is(err, storage.ErrLocatorFormat):
		return "invalid file locator"
	case errors.Is(err, service.ErrLocatorNotFound):
		return "referenced file does not exist"
	case errors.As(err, &stageErr):
		return fmt.Sprintf("audio processing failed at the %s stage", stageErr.Stage)
	default:
		return "internal processing error"
	}
}

// ListJobs returns the authenticated user's summarization jobs, newest first.
func ListJobs(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "20"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		userID := middleware.UserIDFromCtx(c)
		res, err := svc.ListJobs(c.UserContext(), userID, limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		return c.JSON(fiber.Map{
			"data":  res.Items,
			"total": res.Total,
		})
	}
}

// GetJob returns one of the authenticated user's jobs by id.
func GetJob(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		userID := middleware.UserIDFromCtx(c)
		job, err := svc.GetJob(c.UserContext(), userID, id)
		if err != nil {
			if errors.Is(err, service.ErrJobNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "job not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		return c.JSON(job)
	}
}
