package tui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dm/regprobe/internal/logging"
)

// renderEventLog renders the recent log entries, newest last, colored by
// severity.
func renderEventLog(app *App) string {
	if len(app.recent) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(StyleDim.Render("Recent events"))
	for _, e := range app.recent {
		sb.WriteByte('\n')
		sb.WriteString(StyleDim.Render(e.Time.Format("15:04:05")))
		sb.WriteByte(' ')
		sb.WriteString(entryStyle(e).Render(e.Message))
	}
	return sb.String()
}

// entryStyle maps a log level onto the event panel style.
func entryStyle(e logging.Entry) lipgloss.Style {
	switch {
	case e.Level >= slog.LevelError:
		return StyleEventError
	case e.Level >= slog.LevelWarn:
		return StyleEventWarn
	default:
		return StyleEventInfo
	}
}
