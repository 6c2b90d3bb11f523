package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/riddhisiddhi/cottonflow/internal/config"
	"github.com/riddhisiddhi/cottonflow/pkg/storage"
)

// Materialized describes a PDF attachment written to scratch space and
// uploaded to blob storage.
type Materialized struct {
	Filename    string
	URL         string
	ScratchPath string
	PageCount   int
}

// Materializer stages PDF attachments: it writes the bytes to a unique
// scratch path for OCR and uploads them to blob storage under the canonical
// allocation filename. Uploads are last-write-wins, so reprocessing the same
// day's mail overwrites the prior blob instead of accumulating copies.
type Materializer struct {
	storage storage.System
	cfg     *config.PipelineConfig
	logger  *slog.Logger
	now     func() time.Time
}

// NewMaterializer creates a Materializer backed by the given blob storage.
func NewMaterializer(store storage.System, cfg *config.PipelineConfig, logger *slog.Logger) *Materializer {
	return &Materializer{
		storage: store,
		cfg:     cfg,
		logger:  logger.With("system", "materializer"),
		now:     time.Now,
	}
}

// AllocationFilename returns the canonical blob name for an allocation PDF
// received at time t.
func AllocationFilename(t time.Time) string {
	return fmt.Sprintf("%d_Cotton_Sale_%s_Allocation_A.pdf", t.Year(), t.Format("20060102"))
}

// Materialize writes the attachment bytes to a fresh scratch path and uploads
// them to blob storage. The caller owns the scratch file and should remove it
// via Cleanup when OCR is done.
func (m *Materializer) Materialize(ctx context.Context, data []byte) (*Materialized, error) {
	filename := AllocationFilename(m.now())

	if err := os.MkdirAll(m.cfg.ScratchDir, 0o755); err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}

	scratch := filepath.Join(m.cfg.ScratchDir, fmt.Sprintf("%s-%s", uuid.New(), filename))
	if err := os.WriteFile(scratch, data, 0o644); err != nil {
		return nil, fmt.Errorf("write scratch pdf: %w", err)
	}

	pages, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		m.logger.Warn("page count failed", "filename", filename, "error", err)
		pages = 0
	}
	if pages > 1 {
		m.logger.Warn("multi-page allocation PDF, only page one is read",
			"filename", filename,
			"pages", pages)
	}

	if err := m.storage.Upload(ctx, filename, bytes.NewReader(data), "application/pdf"); err != nil {
		os.Remove(scratch)
		return nil, fmt.Errorf("upload allocation pdf: %w", err)
	}

	url := m.storage.PublicURL(filename)
	m.logger.Info("attachment materialized",
		"filename", filename,
		"bytes", len(data),
		"pages", pages)

	return &Materialized{
		Filename:    filename,
		URL:         url,
		ScratchPath: scratch,
		PageCount:   pages,
	}, nil
}

// Cleanup removes the scratch file for a materialized attachment.
func (m *Materializer) Cleanup(mat *Materialized) {
	if mat == nil || mat.ScratchPath == "" {
		return
	}
	if err := os.Remove(mat.ScratchPath); err != nil && !os.IsNotExist(err) {
		m.logger.Warn("scratch cleanup failed", "path", mat.ScratchPath, "error", err)
	}
}
