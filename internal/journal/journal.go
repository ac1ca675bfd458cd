package journal

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/crgw/rates-inquiry/internal/schema"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelError Level = "ERROR"
)

type Entry struct {
	ID      string
	Time    time.Time
	Level   Level
	Message string
}

// Sink stores entries. Implementations must append atomically.
type Sink interface {
	Append(ctx context.Context, entry Entry) error
}

// CurrentTimeFunc Current time. Can be mocked for testing.
var CurrentTimeFunc = time.Now

// Journal is the process-wide append-only log of proxy requests and responses.
// Writing to it never fails from the caller's point of view: sink errors are
// reported to the service logger and dropped.
type Journal struct {
	sinks []Sink
	log   *zerolog.Logger
}

func New(log *zerolog.Logger, sinks ...Sink) *Journal {
	return &Journal{
		sinks: sinks,
		log:   log,
	}
}

func (j *Journal) Debug(ctx context.Context, message string) {
	j.Append(ctx, LevelDebug, message)
}

func (j *Journal) Info(ctx context.Context, message string) {
	j.Append(ctx, LevelInfo, message)
}

func (j *Journal) Error(ctx context.Context, message string) {
	j.Append(ctx, LevelError, message)
}

func (j *Journal) Append(ctx context.Context, level Level, message string) {
	if j == nil || len(j.sinks) == 0 {
		return
	}

	entry := Entry{
		ID:      uuid.New().String(),
		Time:    CurrentTimeFunc(),
		Level:   level,
		Message: message,
	}

	for _, sink := range j.sinks {
		if err := sink.Append(ctx, entry); err != nil {
			j.log.Warn().
				Err(err).
				Str("label", "journal").
				Str("level", string(level)).
				Msg("Unable to append journal entry")
		}
	}
}

// RecordExchange journals a summary of every outbound call.
func (j *Journal) RecordExchange(exchange schema.Exchange) {
	j.Debug(context.Background(), fmt.Sprintf(
		"Outbound %s %s %s -> %d in %dms",
		exchange.Name,
		exchange.Method,
		exchange.Url,
		exchange.StatusCode,
		exchange.Duration.Milliseconds(),
	))
}
