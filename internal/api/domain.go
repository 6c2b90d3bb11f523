package api

import (
	"github.com/riddhisiddhi/cottonflow/internal/allocations"
	"github.com/riddhisiddhi/cottonflow/internal/emaillogs"
	"github.com/riddhisiddhi/cottonflow/internal/pipeline"
	"github.com/riddhisiddhi/cottonflow/internal/processinglogs"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	EmailLogs      emaillogs.System
	ProcessingLogs processinglogs.System
	Allocations    allocations.System
	Recorder       *pipeline.Recorder
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	emailLogsSystem := emaillogs.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	processingLogsSystem := processinglogs.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	allocationsSystem := allocations.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	recorder := pipeline.NewRecorder(
		emailLogsSystem,
		processingLogsSystem,
		allocationsSystem,
		runtime.Logger,
	)

	return &Domain{
		EmailLogs:      emailLogsSystem,
		ProcessingLogs: processingLogsSystem,
		Allocations:    allocationsSystem,
		Recorder:       recorder,
	}
}
