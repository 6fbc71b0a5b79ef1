package chatlog

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/do"
	"github.com/samber/oops"
)

var logFilePath = filepath.Join("data", "conversations.jsonl")

const bufferSize = 64

var _ do.Shutdownable = (*Service)(nil)

// Service persists conversation exchanges to a JSONL file. Append is
// fire-and-forget: entries go through a buffered channel and a write
// failure is logged, never propagated to the user-visible reply.
type Service struct {
	queue chan Entry
}

func New(_ *do.Injector) (*Service, error) {
	if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
		return nil, oops.Wrapf(err, "failed to create data dir")
	}

	return &Service{
		queue: make(chan Entry, bufferSize),
	}, nil
}

// Append enqueues an entry without blocking the chat turn.
func (s *Service) Append(entry Entry) {
	defer func() {
		if r := recover(); r != nil {

		}
	}()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	select {
	case s.queue <- entry:
	default:
		slog.Warn("conversation log queue is full")
	}
}

// Run drains the queue until the context is cancelled.
func (s *Service) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-s.queue:
			if !ok {
				return
			}

			s.write(entry)
		}
	}
}

func (s *Service) write(entry Entry) {
	data, err := json.Marshal(entry)
	if err != nil {
		slog.Error("Failed to marshal log entry", "error", err)
		return
	}

	file, err := os.OpenFile(logFilePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		slog.Error("Failed to open conversation log", "error", err)
		return
	}
	defer file.Close()

	if _, err := file.Write(append(data, '\n')); err != nil {
		slog.Error("Failed to write conversation log", "error", err)
	}
}

func (s *Service) Shutdown() error {
	close(s.queue)

	return nil
}
