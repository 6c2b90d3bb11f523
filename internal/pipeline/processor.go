// Package pipeline orchestrates the allocation ingestion flow: fetch unseen
// mail, stage PDF attachments, OCR the first page, extract labeled fields,
// score confidence, and persist the outcome.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riddhisiddhi/cottonflow/internal/extraction"
	"github.com/riddhisiddhi/cottonflow/internal/mailbox"
	"github.com/riddhisiddhi/cottonflow/internal/processinglogs"
)

// ExpectedSubject is the exact subject line of government allocation mail.
// Anything else is skipped without a trace.
const ExpectedSubject = "Sale Confirmation of FP Bales"

// NoPDFMessage is recorded when a matching email carries no PDF attachment.
const NoPDFMessage = "No PDF attachment found"

// TextExtractor lifts text off the first page of a PDF on disk.
type TextExtractor interface {
	ExtractFirstPage(ctx context.Context, path string) (string, error)
}

// Processor runs the ingestion pipeline over a mailbox.
type Processor struct {
	source       mailbox.Source
	materializer *Materializer
	ocr          TextExtractor
	recorder     *Recorder
	logger       *slog.Logger
}

// NewProcessor wires a Processor from its stages.
func NewProcessor(
	source mailbox.Source,
	materializer *Materializer,
	ocr TextExtractor,
	recorder *Recorder,
	logger *slog.Logger,
) *Processor {
	return &Processor{
		source:       source,
		materializer: materializer,
		ocr:          ocr,
		recorder:     recorder,
		logger:       logger.With("system", "pipeline"),
	}
}

// Run fetches unseen messages and processes them sequentially. A message or
// attachment failure is recorded and does not stop the rest of the batch;
// only a mailbox fetch failure aborts the run.
func (p *Processor) Run(ctx context.Context) error {
	messages, err := p.source.FetchUnseen()
	if err != nil {
		return fmt.Errorf("fetch mailbox: %w", err)
	}

	for _, msg := range messages {
		p.processMessage(ctx, msg)
	}

	p.logger.Info("pipeline run complete", "messages", len(messages))
	return nil
}

func (p *Processor) processMessage(ctx context.Context, msg mailbox.Message) {
	if msg.Subject != ExpectedSubject {
		p.logger.Info("subject mismatch, skipping", "subject", msg.Subject)
		return
	}

	var pdfs []mailbox.Attachment
	for _, att := range msg.Attachments {
		if att.ContentType == "application/pdf" {
			pdfs = append(pdfs, att)
		}
	}

	if len(pdfs) == 0 {
		p.logger.Warn("no pdf attachment", "sender", msg.Sender)
		errMsg := NoPDFMessage
		if _, err := p.recorder.LogReception(ctx, Reception{
			Subject:      msg.Subject,
			Sender:       msg.Sender,
			ReceivedAt:   msg.ReceivedAt,
			HasPDF:       false,
			ErrorMessage: &errMsg,
		}); err != nil {
			p.logger.Error("reception log failed", "error", err)
		}
		return
	}

	for _, att := range pdfs {
		if err := p.processAttachment(ctx, msg, att); err != nil {
			p.logger.Error("attachment processing failed",
				"filename", att.Filename,
				"error", err)

			errMsg := err.Error()
			if _, lerr := p.recorder.LogReception(ctx, Reception{
				Subject:      msg.Subject,
				Sender:       msg.Sender,
				ReceivedAt:   msg.ReceivedAt,
				HasPDF:       false,
				ErrorMessage: &errMsg,
			}); lerr != nil {
				p.logger.Error("reception log failed", "error", lerr)
			}
		}
	}
}

// processAttachment runs one attachment through the full pipeline. Errors
// before an email log exists are returned to the caller; once a log exists,
// failures are recorded against it and nil is returned so siblings continue.
func (p *Processor) processAttachment(ctx context.Context, msg mailbox.Message, att mailbox.Attachment) error {
	mat, err := p.materializer.Materialize(ctx, att.Data)
	if err != nil {
		return err
	}
	defer p.materializer.Cleanup(mat)

	log, err := p.recorder.LogReception(ctx, Reception{
		Subject:     msg.Subject,
		Sender:      msg.Sender,
		ReceivedAt:  msg.ReceivedAt,
		HasPDF:      true,
		PDFFilename: &mat.Filename,
		PDFURL:      &mat.URL,
	})
	if err != nil {
		return err
	}

	text, err := p.ocr.ExtractFirstPage(ctx, mat.ScratchPath)
	if err != nil {
		if mfErr := p.recorder.MarkFailed(ctx, log.ID, processinglogs.StageDataExtraction, err.Error()); mfErr != nil {
			p.logger.Error("failure record failed", "email_log_id", log.ID, "error", mfErr)
		}
		return nil
	}

	result := extraction.Extract(text)
	confidence := extraction.Confidence(result.Fields)

	alloc, err := p.recorder.SaveAllocation(ctx, log.ID, result, confidence, mat.Filename, mat.URL)
	if err != nil {
		if mfErr := p.recorder.MarkFailed(ctx, log.ID, processinglogs.StageDataExtraction, err.Error()); mfErr != nil {
			p.logger.Error("failure record failed", "email_log_id", log.ID, "error", mfErr)
		}
		return nil
	}

	p.logger.Info("allocation processed",
		"email_log_id", log.ID,
		"allocation_id", alloc.ID,
		"confidence", confidence,
		"status", alloc.Status)
	return nil
}
