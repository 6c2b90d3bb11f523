package api

import (
	"net/http"

	"github.com/riddhisiddhi/cottonflow/internal/webhooks"
	"github.com/riddhisiddhi/cottonflow/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	runtime *Runtime,
) {
	routes.Register(
		mux,
		domain.EmailLogs.Handler().Routes(),
		domain.ProcessingLogs.Handler().Routes(),
		domain.Allocations.Handler().Routes(),
		webhooks.NewHandler(domain.Recorder, runtime.Logger).Routes(),
		newStorageHandler(runtime.Storage, runtime.Logger).routes(),
	)
}
