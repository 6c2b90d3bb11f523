package allocations

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

// New creates an allocation repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "allocations"),
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
) (*pagination.PageResult[Allocation], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "IndentNumber", "BuyerName", "FirmName")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count allocations: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	allocs, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAllocation)
	if err != nil {
		return nil, fmt.Errorf("query allocations: %w", err)
	}

	result := pagination.NewPageResult(allocs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) FindByIndent(ctx context.Context, indentNumber string) (*Allocation, error) {
	q, args := query.NewBuilder(projection).BuildSingle("IndentNumber", indentNumber)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAllocation)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Allocation, error) {
	status := DeriveStatus(cmd.Confidence)
	f := cmd.Fields

	q := `
		INSERT INTO allocations AS a(
			id, indent_number, buyer_type, buyer_name, center_name, branch,
			date_of_allocation, firm_name, variety, bales_quantity, crop_year,
			offer_price, bid_price, lifting_period, fibre_length,
			cotton_fibre_specification, ccl_discount, parsing_confidence,
			status, created_by, pdf_filename, pdf_url, email_log_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING ` + projection.Columns() + `
		`

	insertArgs := []any{
		uuid.New(),
		f.IndentNumber,
		f.BuyerType,
		f.BuyerName,
		f.CenterName,
		f.Branch,
		f.DateOfAllocation,
		f.FirmName,
		f.Variety,
		f.BalesQuantity,
		f.CropYear,
		f.OfferPrice,
		f.BidPrice,
		f.LiftingPeriod,
		f.FibreLength,
		f.CottonFibreSpecification,
		f.CCLDiscount,
		cmd.Confidence,
		status,
		"system",
		cmd.PDFFilename,
		cmd.PDFURL,
		cmd.EmailLogID,
	}

	a, err := repository.QueryOne(ctx, r.db, q, insertArgs, scanAllocation)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("allocation created",
		"id", a.ID,
		"status", a.Status,
		"confidence", a.ParsingConfidence)
	return &a, nil
}
