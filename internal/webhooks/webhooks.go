// Package webhooks exposes the ingestion pipeline to external automations.
//
// The two endpoints mirror the pipeline's own stages: email-received records
// an email reception performed elsewhere, and pdf-parsed accepts extraction
// results produced by an external OCR flow and runs the confidence-gated
// persistence step over them.
package webhooks

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/riddhisiddhi/cottonflow/internal/extraction"
	"github.com/riddhisiddhi/cottonflow/internal/pipeline"
	"github.com/riddhisiddhi/cottonflow/internal/processinglogs"
	"github.com/riddhisiddhi/cottonflow/pkg/handlers"
	"github.com/riddhisiddhi/cottonflow/pkg/routes"
)

// Domain errors for webhook requests.
var (
	ErrInvalidBody    = errors.New("invalid request body")
	ErrInvalidSubject = errors.New("only emails with subject \"" + pipeline.ExpectedSubject + "\" are processed")
)

// EmailReceivedRequest is the payload for the email-received webhook.
type EmailReceivedRequest struct {
	Subject     string    `json:"subject"`
	Sender      string    `json:"sender"`
	ReceivedAt  time.Time `json:"receivedAt"`
	HasPDF      bool      `json:"hasPdf"`
	PDFFilename *string   `json:"pdfFilename"`
	PDFURL      *string   `json:"pdfUrl"`
}

// EmailReceivedResponse acknowledges a recorded reception.
type EmailReceivedResponse struct {
	Success    bool      `json:"success"`
	EmailLogID uuid.UUID `json:"emailLogId"`
	Message    string    `json:"message"`
}

// PDFParsedRequest is the payload for the pdf-parsed webhook. ExtractedData
// uses the same snake_case field names the extractor emits.
type PDFParsedRequest struct {
	EmailLogID        uuid.UUID         `json:"emailLogId"`
	ParsingConfidence float64           `json:"parsingConfidence"`
	ExtractedData     extraction.Fields `json:"extractedData"`
	ParseSuccess      bool              `json:"parseSuccess"`
	PDFFilename       string            `json:"pdfFilename"`
	PDFURL            string            `json:"pdfUrl"`
}

// PDFParsedResponse acknowledges processed parsing results.
type PDFParsedResponse struct {
	Success      bool       `json:"success"`
	AllocationID *uuid.UUID `json:"allocationId,omitempty"`
	Status       *string    `json:"status,omitempty"`
	Message      string     `json:"message"`
}

// Handler provides the webhook HTTP endpoints.
type Handler struct {
	recorder *pipeline.Recorder
	logger   *slog.Logger
}

// NewHandler creates a webhook Handler over the pipeline recorder.
func NewHandler(recorder *pipeline.Recorder, logger *slog.Logger) *Handler {
	return &Handler{
		recorder: recorder,
		logger:   logger.With("handler", "webhooks"),
	}
}

// Routes returns the route group definition for webhook endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/webhooks",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/email-received", Handler: h.EmailReceived},
			{Method: "POST", Pattern: "/pdf-parsed", Handler: h.PDFParsed},
		},
	}
}

// EmailReceived records an email reception reported by an external watcher.
// Subjects other than the allocation subject are rejected.
func (h *Handler) EmailReceived(w http.ResponseWriter, r *http.Request) {
	var req EmailReceivedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	if req.Subject != pipeline.ExpectedSubject {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidSubject)
		return
	}

	rec := pipeline.Reception{
		Subject:     req.Subject,
		Sender:      req.Sender,
		ReceivedAt:  req.ReceivedAt,
		HasPDF:      req.HasPDF,
		PDFFilename: req.PDFFilename,
		PDFURL:      req.PDFURL,
	}
	if !req.HasPDF {
		errMsg := pipeline.NoPDFMessage
		rec.ErrorMessage = &errMsg
	}

	log, err := h.recorder.LogReception(r.Context(), rec)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, EmailReceivedResponse{
		Success:    true,
		EmailLogID: log.ID,
		Message:    "Email processed successfully",
	})
}

// PDFParsed accepts extraction results from an external OCR flow and runs
// the persistence stage: the allocation is stored on both confidence
// branches, and a failed parse marks the email log failed without storing
// anything.
func (h *Handler) PDFParsed(w http.ResponseWriter, r *http.Request) {
	var req PDFParsedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	if req.EmailLogID == uuid.Nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	if !req.ParseSuccess {
		if err := h.recorder.MarkFailed(r.Context(), req.EmailLogID, processinglogs.StageDataExtraction, "PDF parsing failed"); err != nil {
			handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, PDFParsedResponse{
			Success: true,
			Message: "Parsing failure recorded",
		})
		return
	}

	result := extraction.Result{Fields: req.ExtractedData}
	alloc, err := h.recorder.SaveAllocation(
		r.Context(),
		req.EmailLogID,
		result,
		req.ParsingConfidence,
		req.PDFFilename,
		req.PDFURL,
	)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, PDFParsedResponse{
		Success:      true,
		AllocationID: &alloc.ID,
		Status:       &alloc.Status,
		Message:      "PDF parsing results processed successfully",
	})
}
