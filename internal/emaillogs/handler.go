package emaillogs

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/riddhisiddhi/cottonflow/pkg/handlers"
	"github.com/riddhisiddhi/cottonflow/pkg/pagination"
	"github.com/riddhisiddhi/cottonflow/pkg/routes"
)

// Handler provides HTTP endpoints for email log operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "emaillogs"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for email log endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/email-logs",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/stats/summary", Handler: h.Summary},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
		},
	}
}

// List returns a paginated list of email logs with optional status and
// sender filters.
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

// Find returns a single email log by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	log, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, log)
}

// Summary returns counts of email logs grouped by processing status.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	stats, err := h.sys.Summary(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, stats)
}
