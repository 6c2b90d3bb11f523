package processinglogs

import (
	"context"
	"database/sql"
	"encoding/json"
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

// New creates a processing log repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "processinglogs"),
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
) (*pagination.PageResult[Entry], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Message")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count processing logs: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	entries, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("query processing logs: %w", err)
	}

	result := pagination.NewPageResult(entries, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Entry, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	e, err := repository.QueryOne(ctx, r.db, q, args, scanEntry)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

// History returns every entry for an email log, oldest first, so a reviewer
// can read the pipeline's steps in order.
func (r *repo) History(ctx context.Context, emailLogID uuid.UUID) ([]Entry, error) {
	q := fmt.Sprintf(
		"SELECT %s FROM %s WHERE p.email_log_id = $1 ORDER BY p.created_at ASC",
		projection.Columns(),
		projection.From(),
	)

	entries, err := repository.QueryMany(ctx, r.db, q, []any{emailLogID}, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("query email history: %w", err)
	}
	return entries, nil
}

func (r *repo) Append(ctx context.Context, cmd AppendCommand) (*Entry, error) {
	var details any
	if cmd.Details != nil {
		encoded, err := json.Marshal(cmd.Details)
		if err != nil {
			return nil, fmt.Errorf("encode details: %w", err)
		}
		details = encoded
	}

	q := `
		INSERT INTO processing_logs(id, email_log_id, processing_stage, status, message, details)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, email_log_id, processing_stage, status, message, details, created_at`

	insertArgs := []any{
		uuid.New(),
		cmd.EmailLogID,
		cmd.ProcessingStage,
		cmd.Status,
		cmd.Message,
		details,
	}

	e, err := repository.QueryOne(ctx, r.db, q, insertArgs, scanEntry)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("processing log appended",
		"email_log_id", e.EmailLogID,
		"stage", e.ProcessingStage,
		"status", e.Status)
	return &e, nil
}
