package emaillogs

import (
	"context"

	"github.com/google/uuid"

	"github.com/riddhisiddhi/cottonflow/pkg/pagination"
)

// System defines the public contract for email log domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[EmailLog], error)

	Find(ctx context.Context, id uuid.UUID) (*EmailLog, error)
	Create(ctx context.Context, cmd CreateCommand) (*EmailLog, error)
	UpdateParsing(ctx context.Context, id uuid.UUID, update ParsingUpdate) (*EmailLog, error)
	Summary(ctx context.Context) (*Stats, error)
}
