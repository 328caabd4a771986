package nemo

import (
	"io"
	"log/slog"
)

// Stages of a document retrieval.
const (
	StageLookup = "lookup"
	StageAuth   = "auth"
	StageQuery  = "query"
)

// CallEvent records one stage of a remote retrieval.
type CallEvent struct {
	Stage     string
	Target    string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about remote calls for logging.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes remote call events through slog.
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
		"stage", event.Stage,
		"target", event.Target,
		"latency_ms", event.LatencyMs,
	}
	if !event.Success {
		o.logger.Warn("remote_call", append(attrs, "error", event.ErrorCode)...)
		return
	}
	o.logger.Info("remote_call", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
