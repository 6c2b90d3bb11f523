// Package processinglogs implements the pipeline audit trail for CottonFlow.
// Each pipeline stage appends an entry tied to the email log it worked on,
// giving reviewers a per-email history of what happened and why.
package processinglogs

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Pipeline stages that produce audit entries.
const (
	StageEmailReception = "email_reception"
	StageDataExtraction = "data_extraction"
)

// Entry statuses.
const (
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusError   = "error"
)

// Entry is one audit record for a pipeline stage.
type Entry struct {
	ID              uuid.UUID       `json:"id"`
	EmailLogID      uuid.UUID       `json:"email_log_id"`
	ProcessingStage string          `json:"processing_stage"`
	Status          string          `json:"status"`
	Message         string          `json:"message"`
	Details         json.RawMessage `json:"details"`
	CreatedAt       time.Time       `json:"created_at"`
}

// AppendCommand carries the data for a new audit entry. Details may be any
// JSON-serializable value; nil stores NULL.
type AppendCommand struct {
	EmailLogID      uuid.UUID
	ProcessingStage string
	Status          string
	Message         string
	Details         any
}
