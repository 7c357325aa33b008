package redmine

import (
	"io"
	"log/slog"
)

// CallEvent records metadata about a single HTTP call to the server.
type CallEvent struct {
	Op        string
	IssueID   int
	Status    int
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about server calls for logging.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events as structured log lines.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	attrs := []any{
		"op", event.Op,
		"latency_ms", event.LatencyMs,
		"status", event.Status,
	}
	if event.IssueID != 0 {
		attrs = append(attrs, "issue", event.IssueID)
	}
	if !event.Success {
		attrs = append(attrs, "error_code", event.ErrorCode)
		o.logger.Error("redmine_call", attrs...)
		return
	}
	o.logger.Info("redmine_call", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
