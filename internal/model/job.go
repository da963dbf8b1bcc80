package model

import "time"

// Job statuses. A job moves processing -> completed | failed; there is no
// partial state in between because report generation is all-or-nothing.
const (
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// Job records one summarization request: which remote objects were involved,
// who asked, and how it ended. The report bytes themselves live in object
// storage; the row only carries locators.
// This is a pure domain model with no database-specific dependencies or tags.
type Job struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	AudioLocator    string    `json:"audio_file_locator"`
	TemplateLocator string    `json:"template_file_locator"`
	ReportLocator   string    `json:"report_file_locator,omitempty"`
	Status          string    `json:"status"`
	Error           string    `json:"error,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
