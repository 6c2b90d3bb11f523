// Package emaillogs implements the email log domain for CottonFlow.
// Every inbound allocation email gets one log row recording what arrived
// and how far through the pipeline it made it.
package emaillogs

import (
	"time"

	"github.com/google/uuid"
)

// Processing statuses an email log moves through.
const (
	StatusReceived      = "received"
	StatusProcessed     = "processed"
	StatusPendingReview = "pending_review"
	StatusFailed        = "failed"
)

// EmailLog records a single inbound email and its processing outcome.
type EmailLog struct {
	ID                uuid.UUID `json:"id"`
	EmailSubject      string    `json:"email_subject"`
	SenderEmail       string    `json:"sender_email"`
	ReceivedAt        time.Time `json:"received_at"`
	HasPDF            bool      `json:"has_pdf"`
	PDFFilename       *string   `json:"pdf_filename"`
	PDFURL            *string   `json:"pdf_url"`
	ProcessingStatus  string    `json:"processing_status"`
	ParsingConfidence *float64  `json:"parsing_confidence"`
	ErrorMessage      *string   `json:"error_message"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to record a newly received email.
type CreateCommand struct {
	EmailSubject     string
	SenderEmail      string
	ReceivedAt       time.Time
	HasPDF           bool
	PDFFilename      *string
	PDFURL           *string
	ProcessingStatus string
	ErrorMessage     *string
}

// ParsingUpdate carries the outcome of a parse attempt for an existing log.
type ParsingUpdate struct {
	ProcessingStatus  string
	ParsingConfidence *float64
	ErrorMessage      *string
}

// Stats summarizes email logs by processing status.
type Stats struct {
	Total         int `json:"total"`
	Received      int `json:"received"`
	Processed     int `json:"processed"`
	PendingReview int `json:"pending_review"`
	Failed        int `json:"failed"`
}
