package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/riddhisiddhi/cottonflow/internal/allocations"
	"github.com/riddhisiddhi/cottonflow/internal/emaillogs"
	"github.com/riddhisiddhi/cottonflow/internal/mailbox"
	"github.com/riddhisiddhi/cottonflow/internal/processinglogs"
	"github.com/riddhisiddhi/cottonflow/pkg/lifecycle"
	"github.com/riddhisiddhi/cottonflow/pkg/pagination"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeSource struct {
	messages []mailbox.Message
	err      error
}

func (f *fakeSource) FetchUnseen() ([]mailbox.Message, error) {
	return f.messages, f.err
}

type fakeStorage struct {
	uploads map[string][]byte
	err     error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: make(map[string][]byte)}
}

func (f *fakeStorage) Start(*lifecycle.Coordinator) error { return nil }

func (f *fakeStorage) Upload(_ context.Context, key string, reader io.Reader, _ string) error {
	if f.err != nil {
		return f.err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.uploads[key] = data
	return nil
}

func (f *fakeStorage) Download(context.Context, string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	delete(f.uploads, key)
	return nil
}

func (f *fakeStorage) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.uploads[key]
	return ok, nil
}

func (f *fakeStorage) PublicURL(key string) string {
	return "https://blobs.example.com/allocation-pdfs/" + key
}

type fakeEmailLogs struct {
	created []emaillogs.CreateCommand
	updated map[uuid.UUID]emaillogs.ParsingUpdate
	createErr error
}

func newFakeEmailLogs() *fakeEmailLogs {
	return &fakeEmailLogs{updated: make(map[uuid.UUID]emaillogs.ParsingUpdate)}
}

func (f *fakeEmailLogs) Handler() *emaillogs.Handler { return nil }

func (f *fakeEmailLogs) List(context.Context, pagination.PageRequest, emaillogs.Filters) (*pagination.PageResult[emaillogs.EmailLog], error) {
	return nil, errors.New("not implemented")
}

func (f *fakeEmailLogs) Find(context.Context, uuid.UUID) (*emaillogs.EmailLog, error) {
	return nil, emaillogs.ErrNotFound
}

func (f *fakeEmailLogs) Create(_ context.Context, cmd emaillogs.CreateCommand) (*emaillogs.EmailLog, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, cmd)
	return &emaillogs.EmailLog{
		ID:               uuid.New(),
		EmailSubject:     cmd.EmailSubject,
		SenderEmail:      cmd.SenderEmail,
		ReceivedAt:       cmd.ReceivedAt,
		HasPDF:           cmd.HasPDF,
		PDFFilename:      cmd.PDFFilename,
		PDFURL:           cmd.PDFURL,
		ProcessingStatus: cmd.ProcessingStatus,
		ErrorMessage:     cmd.ErrorMessage,
	}, nil
}

func (f *fakeEmailLogs) UpdateParsing(_ context.Context, id uuid.UUID, update emaillogs.ParsingUpdate) (*emaillogs.EmailLog, error) {
	f.updated[id] = update
	return &emaillogs.EmailLog{ID: id, ProcessingStatus: update.ProcessingStatus}, nil
}

func (f *fakeEmailLogs) Summary(context.Context) (*emaillogs.Stats, error) {
	return &emaillogs.Stats{}, nil
}

type fakeProcessingLogs struct {
	entries []processinglogs.AppendCommand
}

func (f *fakeProcessingLogs) Handler() *processinglogs.Handler { return nil }

func (f *fakeProcessingLogs) List(context.Context, pagination.PageRequest, processinglogs.Filters) (*pagination.PageResult[processinglogs.Entry], error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProcessingLogs) Find(context.Context, uuid.UUID) (*processinglogs.Entry, error) {
	return nil, processinglogs.ErrNotFound
}

func (f *fakeProcessingLogs) History(context.Context, uuid.UUID) ([]processinglogs.Entry, error) {
	return nil, nil
}

func (f *fakeProcessingLogs) Append(_ context.Context, cmd processinglogs.AppendCommand) (*processinglogs.Entry, error) {
	f.entries = append(f.entries, cmd)
	return &processinglogs.Entry{
		ID:              uuid.New(),
		EmailLogID:      cmd.EmailLogID,
		ProcessingStage: cmd.ProcessingStage,
		Status:          cmd.Status,
		Message:         cmd.Message,
	}, nil
}

type fakeAllocations struct {
	created   []allocations.CreateCommand
	createErr error
}

func (f *fakeAllocations) Handler() *allocations.Handler { return nil }

func (f *fakeAllocations) List(context.Context, pagination.PageRequest, allocations.Filters) (*pagination.PageResult[allocations.Allocation], error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAllocations) FindByIndent(context.Context, string) (*allocations.Allocation, error) {
	return nil, allocations.ErrNotFound
}

func (f *fakeAllocations) Create(_ context.Context, cmd allocations.CreateCommand) (*allocations.Allocation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, cmd)
	return &allocations.Allocation{
		ID:                uuid.New(),
		ParsingConfidence: cmd.Confidence,
		Status:            allocations.DeriveStatus(cmd.Confidence),
		EmailLogID:        &cmd.EmailLogID,
	}, nil
}

type ocrResult struct {
	text string
	err  error
}

type fakeOCR struct {
	text  string
	err   error
	queue []ocrResult
	paths []string
}

func (f *fakeOCR) ExtractFirstPage(_ context.Context, path string) (string, error) {
	f.paths = append(f.paths, path)
	if len(f.queue) > 0 {
		next := f.queue[0]
		f.queue = f.queue[1:]
		return next.text, next.err
	}
	return f.text, f.err
}

func govMessage(subject string, attachments ...mailbox.Attachment) mailbox.Message {
	return mailbox.Message{
		Subject:     subject,
		Sender:      "sgid@icf.gov.in",
		ReceivedAt:  time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC),
		Attachments: attachments,
	}
}

func pdfAttachment(data string) mailbox.Attachment {
	return mailbox.Attachment{
		Filename:    "allocation.pdf",
		ContentType: "application/pdf",
		Data:        []byte(data),
	}
}
