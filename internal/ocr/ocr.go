// Package ocr lifts text off the first page of an allocation PDF.
//
// Government allocation documents put every labeled field on page one, so the
// extractor rasterizes only that page with pdftoppm and feeds the image to
// tesseract. Both tools run as external processes behind a Runner so tests can
// stub them.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/riddhisiddhi/cottonflow/internal/config"
)

// Extractor converts the first page of a PDF to text.
type Extractor struct {
	cfg    *config.OCRConfig
	runner Runner
	logger *slog.Logger
}

// New creates an Extractor running the configured pdftoppm and tesseract
// binaries.
func New(cfg *config.OCRConfig, logger *slog.Logger) *Extractor {
	log := logger.With("system", "ocr")
	return &Extractor{
		cfg:    cfg,
		runner: execRunner{logger: log},
		logger: log,
	}
}

// NewWithRunner creates an Extractor with an injected Runner.
func NewWithRunner(cfg *config.OCRConfig, runner Runner, logger *slog.Logger) *Extractor {
	return &Extractor{
		cfg:    cfg,
		runner: runner,
		logger: logger.With("system", "ocr"),
	}
}

// ExtractFirstPage rasterizes page one of the PDF at path and OCRs the
// resulting image. Intermediate images are written to a fresh temp directory
// and removed before returning.
func (e *Extractor) ExtractFirstPage(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.ExecTimeoutDuration())
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "cottonflow-ocr-*")
	if err != nil {
		return "", fmt.Errorf("create scratch dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			e.logger.Warn("scratch dir cleanup failed", "dir", tmpDir, "error", err)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -f 1 -l 1 -r 300 -scale-to-x 2480 -scale-to-y 3508 -png <in.pdf> <prefix>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm,
		"-f", "1", "-l", "1",
		"-r", fmt.Sprintf("%d", e.cfg.DPI),
		"-scale-to-x", fmt.Sprintf("%d", e.cfg.Width),
		"-scale-to-y", fmt.Sprintf("%d", e.cfg.Height),
		"-png", path, prefix)
	if err != nil {
		return "", fmt.Errorf("pdftoppm: %w: %s", err, truncate(string(errb), 1<<10))
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return "", fmt.Errorf("pdftoppm produced no image for %s", path)
	}

	// tesseract <img> stdout -l eng
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, matches[0], "stdout", "-l", e.cfg.Lang)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, truncate(string(errb), 1<<10))
	}

	text := strings.TrimSpace(string(out))
	e.logger.Debug("page extracted", "pdf", path, "chars", len(text))
	return text, nil
}
