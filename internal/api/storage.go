package api

import (
	"io"
	"log/slog"
	"net/http"
	"path"

	"github.com/riddhisiddhi/cottonflow/pkg/handlers"
	"github.com/riddhisiddhi/cottonflow/pkg/routes"
	"github.com/riddhisiddhi/cottonflow/pkg/storage"
)

// storageHandler streams stored allocation PDFs so the dashboard can show
// the source document next to its extracted fields.
type storageHandler struct {
	store  storage.System
	logger *slog.Logger
}

func newStorageHandler(store storage.System, logger *slog.Logger) *storageHandler {
	return &storageHandler{
		store:  store,
		logger: logger.With("handler", "storage"),
	}
}

func (h *storageHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/storage",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/download/{key...}", Handler: h.download},
		},
	}
}

func (h *storageHandler) download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	reader, err := h.store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+path.Base(key)+`"`)
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Warn("download stream interrupted", "key", key, "error", err)
	}
}
