package emaillogs

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/riddhisiddhi/cottonflow/pkg/pagination"
	"github.com/riddhisiddhi/cottonflow/pkg/query"
	"github.com/riddhisiddhi/cottonflow/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an email log repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "emaillogs"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[EmailLog], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "EmailSubject", "SenderEmail")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count email logs: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	logs, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEmailLog)
	if err != nil {
		return nil, fmt.Errorf("query email logs: %w", err)
	}

	result := pagination.NewPageResult(logs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*EmailLog, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	e, err := repository.QueryOne(ctx, r.db, q, args, scanEmailLog)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*EmailLog, error) {
	status := cmd.ProcessingStatus
	if status == "" {
		status = StatusReceived
	}

	q := `
		INSERT INTO email_logs(id, email_subject, sender_email, received_at, has_pdf, pdf_filename, pdf_url, processing_status, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, email_subject, sender_email, received_at, has_pdf, pdf_filename, pdf_url, processing_status, parsing_confidence, error_message, created_at, updated_at`

	insertArgs := []any{
		uuid.New(),
		cmd.EmailSubject,
		cmd.SenderEmail,
		cmd.ReceivedAt,
		cmd.HasPDF,
		cmd.PDFFilename,
		cmd.PDFURL,
		status,
		cmd.ErrorMessage,
	}

	e, err := repository.QueryOne(ctx, r.db, q, insertArgs, scanEmailLog)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("email log created",
		"id", e.ID,
		"subject", e.EmailSubject,
		"status", e.ProcessingStatus)
	return &e, nil
}

func (r *repo) UpdateParsing(ctx context.Context, id uuid.UUID, update ParsingUpdate) (*EmailLog, error) {
	q := `
		UPDATE email_logs
		SET processing_status = $2,
			parsing_confidence = $3,
			error_message = $4,
			updated_at = now()
		WHERE id = $1
		RETURNING id, email_subject, sender_email, received_at, has_pdf, pdf_filename, pdf_url, processing_status, parsing_confidence, error_message, created_at, updated_at`

	args := []any{id, update.ProcessingStatus, update.ParsingConfidence, update.ErrorMessage}

	e, err := repository.QueryOne(ctx, r.db, q, args, scanEmailLog)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("email log updated",
		"id", e.ID,
		"status", e.ProcessingStatus)
	return &e, nil
}

func (r *repo) Summary(ctx context.Context) (*Stats, error) {
	q := `
		SELECT
			count(*),
			count(*) FILTER (WHERE processing_status = 'received'),
			count(*) FILTER (WHERE processing_status = 'processed'),
			count(*) FILTER (WHERE processing_status = 'pending_review'),
			count(*) FILTER (WHERE processing_status = 'failed')
		FROM email_logs`

	var s Stats
	err := r.db.QueryRowContext(ctx, q).Scan(
		&s.Total,
		&s.Received,
		&s.Processed,
		&s.PendingReview,
		&s.Failed,
	)
	if err != nil {
		return nil, fmt.Errorf("email log summary: %w", err)
	}
	return &s, nil
}
