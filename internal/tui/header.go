package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dm/regprobe/internal/model"
)

// renderHeader renders the top header bar.
//
// Layout:
//   left:   target base URL
//   center: colored "● STATUS" health indicator (or "waiting for snapshot")
//   right:  "elapsed / total" run clock, or "RUN COMPLETE"
func renderHeader(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}

	left := app.target
	center := StyleDim.Render("waiting for snapshot")
	if app.current != nil {
		center = statusStyle(app.current.Health).Render("● "+strings.ToUpper(string(app.current.Health))) +
			StyleDim.Render(fmt.Sprintf("  updated %s", app.current.FetchedAt.Format("15:04:05")))
	}

	var right string
	if app.report != nil {
		right = StyleSummary.Render("RUN COMPLETE")
	} else {
		elapsed := time.Since(app.start).Round(time.Second)
		if elapsed > app.duration {
			elapsed = app.duration
		}
		right = fmt.Sprintf("%s / %s", elapsed, app.duration)
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right) - 4
	if gap < 2 {
		gap = 2
	}
	line := left + strings.Repeat(" ", gap/2) + center + strings.Repeat(" ", gap-gap/2) + right
	return StyleHeader.Width(width).Render(line)
}

// statusStyle maps a health status onto its indicator style.
func statusStyle(s model.HealthStatus) lipgloss.Style {
	switch s {
	case model.HealthHealthy:
		return StyleStatusHealthy
	case model.HealthDegraded:
		return StyleStatusDegraded
	case model.HealthUnhealthy:
		return StyleStatusBad
	default:
		return StyleStatusUnknown
	}
}
