package allocations

import (
	"log/slog"
	"net/http"

	"github.com/riddhisiddhi/cottonflow/pkg/handlers"
	"github.com/riddhisiddhi/cottonflow/pkg/pagination"
	"github.com/riddhisiddhi/cottonflow/pkg/routes"
)

// Handler provides HTTP endpoints for allocation operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "allocations"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for allocation endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/allocations",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{indentNumber}", Handler: h.FindByIndent},
		},
	}
}

// List returns a paginated list of allocations with optional status,
// buyer type, and crop year filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// FindByIndent returns a single allocation by its indent number.
func (h *Handler) FindByIndent(w http.ResponseWriter, r *http.Request) {
	alloc, err := h.sys.FindByIndent(r.Context(), r.PathValue("indentNumber"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, alloc)
}
