// Package mailbox reads allocation mail from the monitored IMAP inbox.
//
// The client authenticates against the configured IMAP server, searches the
// inbox for unseen messages from the government sender address, and downloads
// each matching message with its attachments. Fetching a message body marks
// it seen on the server, so a message is only handed to the pipeline once.
package mailbox

import (
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"

	"github.com/riddhisiddhi/cottonflow/internal/config"
)

// Attachment is a single file attached to an inbox message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is a downloaded inbox message with its attachments.
type Message struct {
	Subject     string
	Sender      string
	ReceivedAt  time.Time
	Attachments []Attachment
}

// Source produces the batch of messages a pipeline run should process.
type Source interface {
	FetchUnseen() ([]Message, error)
}

// Client is an IMAP-backed Source.
type Client struct {
	cfg    *config.MailboxConfig
	logger *slog.Logger
}

// New creates a Client for the configured mailbox.
func New(cfg *config.MailboxConfig, logger *slog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		logger: logger.With("system", "mailbox"),
	}
}

// FetchUnseen connects to the IMAP server, downloads every unseen message from
// the configured sender, and logs out. It returns an empty slice when the
// inbox holds nothing new.
func (c *Client) FetchUnseen() ([]Message, error) {
	tlsConfig := &tls.Config{ServerName: c.cfg.Host}
	if c.cfg.AllowInsecureTLS {
		tlsConfig.InsecureSkipVerify = true
	}

	dialer := &net.Dialer{Timeout: c.cfg.DialTimeoutDuration()}
	conn, err := client.DialWithDialerTLS(dialer, c.cfg.Addr(), tlsConfig)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", c.cfg.Addr(), err)
	}
	defer conn.Logout()
	conn.Timeout = c.cfg.IOTimeoutDuration()

	if err := conn.Login(c.cfg.User, c.cfg.Password); err != nil {
		return nil, fmt.Errorf("login %s: %w", c.cfg.User, err)
	}

	if _, err := conn.Select("INBOX", false); err != nil {
		return nil, fmt.Errorf("select inbox: %w", err)
	}

	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}
	criteria.Header.Add("From", c.cfg.Sender)

	uids, err := conn.UidSearch(criteria)
	if err != nil {
		return nil, fmt.Errorf("search inbox: %w", err)
	}
	if len(uids) == 0 {
		c.logger.Info("no unseen messages", "sender", c.cfg.Sender)
		return []Message{}, nil
	}

	c.logger.Info("fetching messages", "count", len(uids), "sender", c.cfg.Sender)

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uids...)

	section := &imap.BodySectionName{}
	items := []imap.FetchItem{section.FetchItem()}

	fetched := make(chan *imap.Message, len(uids))
	done := make(chan error, 1)
	go func() {
		done <- conn.UidFetch(seqSet, items, fetched)
	}()

	messages := make([]Message, 0, len(uids))
	for raw := range fetched {
		body := raw.GetBody(section)
		if body == nil {
			c.logger.Warn("message fetched without body", "uid", raw.Uid)
			continue
		}

		msg, err := c.parse(body)
		if err != nil {
			c.logger.Warn("message parse failed", "uid", raw.Uid, "error", err)
			continue
		}
		messages = append(messages, msg)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("fetch inbox: %w", err)
	}

	return messages, nil
}

func (c *Client) parse(body io.Reader) (Message, error) {
	mr, err := mail.CreateReader(body)
	if err != nil {
		return Message{}, fmt.Errorf("create mail reader: %w", err)
	}

	var msg Message
	msg.Subject, _ = mr.Header.Subject()
	msg.ReceivedAt, _ = mr.Header.Date()
	if addrs, err := mr.Header.AddressList("From"); err == nil && len(addrs) > 0 {
		msg.Sender = addrs[0].Address
	}

	maxSize := c.cfg.MaxAttachmentSizeBytes()
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Message{}, fmt.Errorf("read mail part: %w", err)
		}

		header, ok := part.Header.(*mail.AttachmentHeader)
		if !ok {
			continue
		}

		filename, err := header.Filename()
		if err != nil || filename == "" {
			continue
		}
		contentType, _, _ := header.ContentType()

		data, err := io.ReadAll(io.LimitReader(part.Body, maxSize+1))
		if err != nil {
			return Message{}, fmt.Errorf("read attachment %s: %w", filename, err)
		}
		if int64(len(data)) > maxSize {
			c.logger.Warn("attachment exceeds size limit",
				"filename", filename,
				"limit", maxSize)
			continue
		}

		msg.Attachments = append(msg.Attachments, Attachment{
			Filename:    filename,
			ContentType: contentType,
			Data:        data,
		})
	}

	return msg, nil
}
