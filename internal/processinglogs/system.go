package processinglogs

import (
	"context"

	"github.com/google/uuid"

	"github.com/riddhisiddhi/cottonflow/pkg/pagination"
)

// System defines the public contract for processing log operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Entry], error)

	Find(ctx context.Context, id uuid.UUID) (*Entry, error)
	History(ctx context.Context, emailLogID uuid.UUID) ([]Entry, error)
	Append(ctx context.Context, cmd AppendCommand) (*Entry, error)
}
