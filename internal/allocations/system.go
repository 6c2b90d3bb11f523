package allocations

import (
	"context"

	"github.com/riddhisiddhi/cottonflow/pkg/pagination"
)

// System defines the public contract for allocation domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Allocation], error)

	FindByIndent(ctx context.Context, indentNumber string) (*Allocation, error)
	Create(ctx context.Context, cmd CreateCommand) (*Allocation, error)
}
