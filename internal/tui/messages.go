package tui

import (
	"time"

	"github.com/dm/regprobe/internal/logging"
	"github.com/dm/regprobe/internal/probe"
)

// EventMsg delivers a probe runner event to the TUI.
type EventMsg struct{ Event probe.Event }

// LogMsg delivers a captured log entry to the event panel.
type LogMsg struct{ Entry logging.Entry }

// TickMsg drives the once-per-second trend sampling and clock refresh.
type TickMsg time.Time
