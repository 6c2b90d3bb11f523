package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/riddhisiddhi/cottonflow/pkg/formatting"
)

const (
	EnvMailboxUser        = "EMAIL_USER"
	EnvMailboxPassword    = "EMAIL_PASSWORD"
	EnvMailboxHost        = "EMAIL_HOST"
	EnvMailboxPort        = "EMAIL_PORT"
	EnvMailboxSender      = "GOVERNMENT_EMAIL"
	EnvMailboxDialTimeout = "COTTONFLOW_MAILBOX_DIAL_TIMEOUT"
	EnvMailboxIOTimeout   = "COTTONFLOW_MAILBOX_IO_TIMEOUT"
)

// MailboxConfig holds IMAP connection parameters for the monitored inbox.
type MailboxConfig struct {
	User              string `toml:"user"`
	Password          string `toml:"password"`
	Host              string `toml:"host"`
	Port              int    `toml:"port"`
	Sender            string `toml:"sender"`
	AllowInsecureTLS  bool   `toml:"allow_insecure_tls"`
	DialTimeout       string `toml:"dial_timeout"`
	IOTimeout         string `toml:"io_timeout"`
	MaxAttachmentSize string `toml:"max_attachment_size"`
}

// Addr returns the host:port IMAP dial address.
func (c *MailboxConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DialTimeoutDuration returns DialTimeout as a time.Duration.
func (c *MailboxConfig) DialTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.DialTimeout)
	return d
}

// IOTimeoutDuration returns IOTimeout as a time.Duration.
func (c *MailboxConfig) IOTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.IOTimeout)
	return d
}

// MaxAttachmentSizeBytes returns MaxAttachmentSize in bytes.
func (c *MailboxConfig) MaxAttachmentSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxAttachmentSize)
	if err != nil {
		return 25 * 1024 * 1024
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *MailboxConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *MailboxConfig) Merge(overlay *MailboxConfig) {
	if overlay.User != "" {
		c.User = overlay.User
	}
	if overlay.Password != "" {
		c.Password = overlay.Password
	}
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	if overlay.Sender != "" {
		c.Sender = overlay.Sender
	}
	if overlay.AllowInsecureTLS {
		c.AllowInsecureTLS = true
	}
	if overlay.DialTimeout != "" {
		c.DialTimeout = overlay.DialTimeout
	}
	if overlay.IOTimeout != "" {
		c.IOTimeout = overlay.IOTimeout
	}
	if overlay.MaxAttachmentSize != "" {
		c.MaxAttachmentSize = overlay.MaxAttachmentSize
	}
}

func (c *MailboxConfig) loadDefaults() {
	if c.Host == "" {
		c.Host = "imap.gmail.com"
	}
	if c.Port == 0 {
		c.Port = 993
	}
	if c.Sender == "" {
		c.Sender = "sgid@icf.gov.in"
	}
	if c.DialTimeout == "" {
		c.DialTimeout = "30s"
	}
	if c.IOTimeout == "" {
		c.IOTimeout = "2m"
	}
	if c.MaxAttachmentSize == "" {
		c.MaxAttachmentSize = "25MB"
	}
}

func (c *MailboxConfig) loadEnv() {
	if v := os.Getenv(EnvMailboxUser); v != "" {
		c.User = v
	}
	if v := os.Getenv(EnvMailboxPassword); v != "" {
		c.Password = v
	}
	if v := os.Getenv(EnvMailboxHost); v != "" {
		c.Host = v
	}
	if v := os.Getenv(EnvMailboxPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv(EnvMailboxSender); v != "" {
		c.Sender = v
	}
	if v := os.Getenv(EnvMailboxDialTimeout); v != "" {
		c.DialTimeout = v
	}
	if v := os.Getenv(EnvMailboxIOTimeout); v != "" {
		c.IOTimeout = v
	}
}

func (c *MailboxConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if _, err := time.ParseDuration(c.DialTimeout); err != nil {
		return fmt.Errorf("invalid dial_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.IOTimeout); err != nil {
		return fmt.Errorf("invalid io_timeout: %w", err)
	}
	if _, err := formatting.ParseBytes(c.MaxAttachmentSize); err != nil {
		return fmt.Errorf("invalid max_attachment_size: %w", err)
	}
	return nil
}
