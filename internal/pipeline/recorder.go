package pipeline

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/riddhisiddhi/cottonflow/internal/allocations"
	"github.com/riddhisiddhi/cottonflow/internal/emaillogs"
	"github.com/riddhisiddhi/cottonflow/internal/extraction"
	"github.com/riddhisiddhi/cottonflow/internal/processinglogs"
)

// Reception describes one inbound email the pipeline is about to process.
type Reception struct {
	Subject      string
	Sender       string
	ReceivedAt   time.Time
	HasPDF       bool
	PDFFilename  *string
	PDFURL       *string
	ErrorMessage *string
}

// Recorder persists pipeline outcomes: email logs, audit entries, and
// extracted allocations.
type Recorder struct {
	emailLogs      emaillogs.System
	processingLogs processinglogs.System
	allocations    allocations.System
	logger         *slog.Logger
}

// NewRecorder creates a Recorder over the three persistence domains.
func NewRecorder(
	emailLogs emaillogs.System,
	processingLogs processinglogs.System,
	allocs allocations.System,
	logger *slog.Logger,
) *Recorder {
	return &Recorder{
		emailLogs:      emailLogs,
		processingLogs: processingLogs,
		allocations:    allocs,
		logger:         logger.With("system", "recorder"),
	}
}

// LogReception records an email's arrival: one email log row plus one
// email_reception audit entry. A reception without a PDF is recorded as
// failed with an error entry.
func (r *Recorder) LogReception(ctx context.Context, rec Reception) (*emaillogs.EmailLog, error) {
	status := emaillogs.StatusReceived
	if !rec.HasPDF {
		status = emaillogs.StatusFailed
	}

	log, err := r.emailLogs.Create(ctx, emaillogs.CreateCommand{
		EmailSubject:     rec.Subject,
		SenderEmail:      rec.Sender,
		ReceivedAt:       rec.ReceivedAt,
		HasPDF:           rec.HasPDF,
		PDFFilename:      rec.PDFFilename,
		PDFURL:           rec.PDFURL,
		ProcessingStatus: status,
		ErrorMessage:     rec.ErrorMessage,
	})
	if err != nil {
		return nil, err
	}

	entryStatus := processinglogs.StatusSuccess
	message := "Email received and logged"
	if !rec.HasPDF {
		entryStatus = processinglogs.StatusError
		if rec.ErrorMessage != nil {
			message = *rec.ErrorMessage
		}
	}

	if _, err := r.processingLogs.Append(ctx, processinglogs.AppendCommand{
		EmailLogID:      log.ID,
		ProcessingStage: processinglogs.StageEmailReception,
		Status:          entryStatus,
		Message:         message,
	}); err != nil {
		return nil, err
	}

	return log, nil
}

// SaveAllocation persists an extraction result against its email log. The
// allocation is written on both confidence branches; the audit entry carries
// the extracted fields and any coercion diagnostics, and the email log is
// advanced to processed or pending_review.
func (r *Recorder) SaveAllocation(
	ctx context.Context,
	emailLogID uuid.UUID,
	result extraction.Result,
	confidence float64,
	pdfFilename string,
	pdfURL string,
) (*allocations.Allocation, error) {
	alloc, err := r.allocations.Create(ctx, allocations.CreateCommand{
		Fields:      result.Fields,
		Confidence:  confidence,
		PDFFilename: pdfFilename,
		PDFURL:      pdfURL,
		EmailLogID:  emailLogID,
	})
	if err != nil {
		return nil, err
	}

	entryStatus := processinglogs.StatusWarning
	if alloc.Status == allocations.StatusApproved {
		entryStatus = processinglogs.StatusSuccess
	}

	details := map[string]any{"fields": result.Fields}
	if len(result.Diagnostics) > 0 {
		details["diagnostics"] = result.Diagnostics
	}

	if _, err := r.processingLogs.Append(ctx, processinglogs.AppendCommand{
		EmailLogID:      emailLogID,
		ProcessingStage: processinglogs.StageDataExtraction,
		Status:          entryStatus,
		Message:         "Data extracted with " + strconv.FormatFloat(confidence, 'f', -1, 64) + "% confidence",
		Details:         details,
	}); err != nil {
		return nil, err
	}

	logStatus := emaillogs.StatusPendingReview
	if alloc.Status == allocations.StatusApproved {
		logStatus = emaillogs.StatusProcessed
	}

	if _, err := r.emailLogs.UpdateParsing(ctx, emailLogID, emaillogs.ParsingUpdate{
		ProcessingStatus:  logStatus,
		ParsingConfidence: &confidence,
	}); err != nil {
		return nil, err
	}

	return alloc, nil
}

// MarkFailed records a parse failure against an existing email log: the log
// moves to failed with the error message and an error audit entry is appended.
func (r *Recorder) MarkFailed(ctx context.Context, emailLogID uuid.UUID, stage, message string) error {
	if _, err := r.emailLogs.UpdateParsing(ctx, emailLogID, emaillogs.ParsingUpdate{
		ProcessingStatus: emaillogs.StatusFailed,
		ErrorMessage:     &message,
	}); err != nil {
		return err
	}

	_, err := r.processingLogs.Append(ctx, processinglogs.AppendCommand{
		EmailLogID:      emailLogID,
		ProcessingStage: stage,
		Status:          processinglogs.StatusError,
		Message:         message,
	})
	return err
}
