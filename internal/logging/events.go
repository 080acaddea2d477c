package logging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Entry is a rendered log record delivered to the TUI event panel.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// EventHandler is a slog.Handler that forwards records into a channel
// without ever blocking the logging caller. Entries are dropped when the
// consumer lags; the log file remains the authoritative record.
type EventHandler struct {
	ch    chan<- Entry
	level slog.Level
	attrs []slog.Attr
}

// NewEventHandler creates an EventHandler emitting records at or above the
// given level into ch.
func NewEventHandler(ch chan<- Entry, level slog.Level) *EventHandler {
	return &EventHandler{ch: ch, level: level}
}

func (h *EventHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *EventHandler) Handle(_ context.Context, record slog.Record) error {
	var sb strings.Builder
	sb.WriteString(record.Message)
	appendAttr := func(a slog.Attr) {
		sb.WriteByte(' ')
		sb.WriteString(a.Key)
		sb.WriteByte('=')
		sb.WriteString(fmt.Sprint(a.Value.Any()))
	}
	for _, a := range h.attrs {
		appendAttr(a)
	}
	record.Attrs(func(a slog.Attr) bool {
		appendAttr(a)
		return true
	})

	select {
	case h.ch <- Entry{Time: record.Time, Level: record.Level, Message: sb.String()}:
	default:
	}
	return nil
}

func (h *EventHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &EventHandler{ch: h.ch, level: h.level, attrs: merged}
}

func (h *EventHandler) WithGroup(_ string) slog.Handler {
	// Groups are flattened; the event panel shows a single line per record.
	return h
}
