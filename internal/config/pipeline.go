package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvPipelineScratchDir = "COTTONFLOW_PIPELINE_SCRATCH_DIR"
	EnvPipelineRunTimeout = "COTTONFLOW_PIPELINE_RUN_TIMEOUT"
)

// PipelineConfig holds settings for the ingestion pipeline run.
type PipelineConfig struct {
	ScratchDir string `toml:"scratch_dir"`
	RunTimeout string `toml:"run_timeout"`
}

// RunTimeoutDuration returns RunTimeout as a time.Duration.
func (c *PipelineConfig) RunTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RunTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *PipelineConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *PipelineConfig) Merge(overlay *PipelineConfig) {
	if overlay.ScratchDir != "" {
		c.ScratchDir = overlay.ScratchDir
	}
	if overlay.RunTimeout != "" {
		c.RunTimeout = overlay.RunTimeout
	}
}

func (c *PipelineConfig) loadDefaults() {
	if c.ScratchDir == "" {
		c.ScratchDir = os.TempDir()
	}
	if c.RunTimeout == "" {
		c.RunTimeout = "10m"
	}
}

func (c *PipelineConfig) loadEnv() {
	if v := os.Getenv(EnvPipelineScratchDir); v != "" {
		c.ScratchDir = v
	}
	if v := os.Getenv(EnvPipelineRunTimeout); v != "" {
		c.RunTimeout = v
	}
}

func (c *PipelineConfig) validate() error {
	if _, err := time.ParseDuration(c.RunTimeout); err != nil {
		return fmt.Errorf("invalid run_timeout: %w", err)
	}
	return nil
}
