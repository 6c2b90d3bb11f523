package processinglogs

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/riddhisiddhi/cottonflow/pkg/query"
	"github.com/riddhisiddhi/cottonflow/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "processing_logs", "p").
	Project("id", "ID").
	Project("email_log_id", "EmailLogID").
	Project("processing_stage", "ProcessingStage").
	Project("status", "Status").
	Project("message", "Message").
	Project("details", "Details").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for processing log queries.
type Filters struct {
	EmailLogID      *uuid.UUID `json:"email_log_id,omitempty"`
	ProcessingStage *string    `json:"processing_stage,omitempty"`
	Status          *string    `json:"status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("EmailLogID", f.EmailLogID).
		WhereEquals("ProcessingStage", f.ProcessingStage).
		WhereEquals("Status", f.Status)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if el := values.Get("email_log_id"); el != "" {
		if id, err := uuid.Parse(el); err == nil {
			f.EmailLogID = &id
		}
	}

	if ps := values.Get("processing_stage"); ps != "" {
		f.ProcessingStage = &ps
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	return f
}

func scanEntry(s repository.Scanner) (Entry, error) {
	var e Entry
	err := s.Scan(
		&e.ID,
		&e.EmailLogID,
		&e.ProcessingStage,
		&e.Status,
		&e.Message,
		&e.Details,
		&e.CreatedAt,
	)
	return e, err
}
