package ocr

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/riddhisiddhi/cottonflow/internal/config"
)

type fakeRunner struct {
	calls     [][]string
	onPoppler func(args []string) error
	ocrText   string
	ocrErr    error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	call := append([]string{name}, args...)
	f.calls = append(f.calls, call)

	if strings.Contains(name, "pdftoppm") {
		if f.onPoppler != nil {
			if err := f.onPoppler(args); err != nil {
				return nil, []byte("render error"), err
			}
		}
		// honor the output prefix the extractor passed
		prefix := args[len(args)-1]
		if err := os.WriteFile(prefix+"-1.png", []byte("png"), 0o644); err != nil {
			return nil, nil, err
		}
		return nil, nil, nil
	}
	return []byte(f.ocrText), nil, f.ocrErr
}

func testConfig() *config.OCRConfig {
	cfg := &config.OCRConfig{Pdftoppm: "pdftoppm", Tesseract: "tesseract"}
	if err := cfg.Finalize(); err != nil {
		panic(err)
	}
	return cfg
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExtractFirstPageArguments(t *testing.T) {
	runner := &fakeRunner{ocrText: "Indent Number: X-1\n"}
	e := NewWithRunner(testConfig(), runner, discard())

	text, err := e.ExtractFirstPage(context.Background(), "/tmp/in.pdf")
	if err != nil {
		t.Fatalf("ExtractFirstPage: %v", err)
	}
	if text != "Indent Number: X-1" {
		t.Errorf("text = %q", text)
	}
	if len(runner.calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(runner.calls))
	}

	poppler := runner.calls[0]
	for _, want := range []string{"-f", "1", "-l", "-r", "300", "-scale-to-x", "2480", "-scale-to-y", "3508", "-png", "/tmp/in.pdf"} {
		found := false
		for _, arg := range poppler {
			if arg == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("pdftoppm args %v missing %q", poppler, want)
		}
	}

	tess := runner.calls[1]
	if tess[0] != "tesseract" || tess[2] != "stdout" || tess[4] != "eng" {
		t.Errorf("tesseract args = %v", tess)
	}
	if filepath.Ext(tess[1]) != ".png" {
		t.Errorf("tesseract input = %q, want a png", tess[1])
	}
}

func TestExtractFirstPageRenderFailure(t *testing.T) {
	wantErr := errors.New("broken pdf")
	runner := &fakeRunner{onPoppler: func([]string) error { return wantErr }}
	e := NewWithRunner(testConfig(), runner, discard())

	if _, err := e.ExtractFirstPage(context.Background(), "/tmp/in.pdf"); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want wrapped %v", err, wantErr)
	}
}

func TestExtractFirstPageOCRFailure(t *testing.T) {
	wantErr := errors.New("tesseract crashed")
	runner := &fakeRunner{ocrErr: wantErr}
	e := NewWithRunner(testConfig(), runner, discard())

	if _, err := e.ExtractFirstPage(context.Background(), "/tmp/in.pdf"); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want wrapped %v", err, wantErr)
	}
}
