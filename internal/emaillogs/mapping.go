package emaillogs

import (
	"net/url"

	"github.com/riddhisiddhi/cottonflow/pkg/query"
	"github.com/riddhisiddhi/cottonflow/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "email_logs", "e").
	Project("id", "ID").
	Project("email_subject", "EmailSubject").
	Project("sender_email", "SenderEmail").
	Project("received_at", "ReceivedAt").
	Project("has_pdf", "HasPDF").
	Project("pdf_filename", "PDFFilename").
	Project("pdf_url", "PDFURL").
	Project("processing_status", "ProcessingStatus").
	Project("parsing_confidence", "ParsingConfidence").
	Project("error_message", "ErrorMessage").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "ReceivedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for email log queries.
// ProcessingStatus matches exactly; SenderEmail uses case-insensitive
// contains matching, mirroring the dashboard's sender search box.
type Filters struct {
	ProcessingStatus *string `json:"processing_status,omitempty"`
	SenderEmail      *string `json:"sender_email,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("ProcessingStatus", f.ProcessingStatus).
		WhereContains("SenderEmail", f.SenderEmail)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// A status of "all" means no status filter.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" && s != "all" {
		f.ProcessingStatus = &s
	}

	if se := values.Get("sender_email"); se != "" {
		f.SenderEmail = &se
	}

	return f
}

func scanEmailLog(s repository.Scanner) (EmailLog, error) {
	var e EmailLog
	err := s.Scan(
		&e.ID,
		&e.EmailSubject,
		&e.SenderEmail,
		&e.ReceivedAt,
		&e.HasPDF,
		&e.PDFFilename,
		&e.PDFURL,
		&e.ProcessingStatus,
		&e.ParsingConfidence,
		&e.ErrorMessage,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}
