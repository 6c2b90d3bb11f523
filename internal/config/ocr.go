package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvOCRPdftoppm    = "COTTONFLOW_OCR_PDFTOPPM"
	EnvOCRTesseract   = "COTTONFLOW_OCR_TESSERACT"
	EnvOCRLang        = "COTTONFLOW_OCR_LANG"
	EnvOCRDPI         = "COTTONFLOW_OCR_DPI"
	EnvOCRExecTimeout = "COTTONFLOW_OCR_EXEC_TIMEOUT"
)

// OCRConfig holds the external tool paths and rasterization parameters
// used to lift text off allocation PDFs.
type OCRConfig struct {
	Pdftoppm    string `toml:"pdftoppm"`
	Tesseract   string `toml:"tesseract"`
	Lang        string `toml:"lang"`
	DPI         int    `toml:"dpi"`
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	ExecTimeout string `toml:"exec_timeout"`
}

// ExecTimeoutDuration returns ExecTimeout as a time.Duration.
func (c *OCRConfig) ExecTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ExecTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *OCRConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *OCRConfig) Merge(overlay *OCRConfig) {
	if overlay.Pdftoppm != "" {
		c.Pdftoppm = overlay.Pdftoppm
	}
	if overlay.Tesseract != "" {
		c.Tesseract = overlay.Tesseract
	}
	if overlay.Lang != "" {
		c.Lang = overlay.Lang
	}
	if overlay.DPI != 0 {
		c.DPI = overlay.DPI
	}
	if overlay.Width != 0 {
		c.Width = overlay.Width
	}
	if overlay.Height != 0 {
		c.Height = overlay.Height
	}
	if overlay.ExecTimeout != "" {
		c.ExecTimeout = overlay.ExecTimeout
	}
}

func (c *OCRConfig) loadDefaults() {
	if c.Pdftoppm == "" {
		c.Pdftoppm = "pdftoppm"
	}
	if c.Tesseract == "" {
		c.Tesseract = "tesseract"
	}
	if c.Lang == "" {
		c.Lang = "eng"
	}
	if c.DPI == 0 {
		c.DPI = 300
	}
	if c.Width == 0 {
		c.Width = 2480
	}
	if c.Height == 0 {
		c.Height = 3508
	}
	if c.ExecTimeout == "" {
		c.ExecTimeout = "2m"
	}
}

func (c *OCRConfig) loadEnv() {
	if v := os.Getenv(EnvOCRPdftoppm); v != "" {
		c.Pdftoppm = v
	}
	if v := os.Getenv(EnvOCRTesseract); v != "" {
		c.Tesseract = v
	}
	if v := os.Getenv(EnvOCRLang); v != "" {
		c.Lang = v
	}
	if v := os.Getenv(EnvOCRDPI); v != "" {
		if dpi, err := strconv.Atoi(v); err == nil {
			c.DPI = dpi
		}
	}
	if v := os.Getenv(EnvOCRExecTimeout); v != "" {
		c.ExecTimeout = v
	}
}

func (c *OCRConfig) validate() error {
	if c.DPI < 1 {
		return fmt.Errorf("invalid dpi: %d", c.DPI)
	}
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("invalid raster dimensions: %dx%d", c.Width, c.Height)
	}
	if _, err := time.ParseDuration(c.ExecTimeout); err != nil {
		return fmt.Errorf("invalid exec_timeout: %w", err)
	}
	return nil
}
