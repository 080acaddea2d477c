package tui

import (
	"strings"

	"github.com/dm/regprobe/internal/format"
)

// renderSummary renders the completion banner once the run finishes.
func renderSummary(app *App) string {
	if app.report == nil {
		return ""
	}

	r := app.report
	lines := []string{
		StyleSummary.Render("=== torture test summary ==="),
		"operations: " + format.FormatNumber(r.Operations) +
			"  errors: " + format.FormatNumber(r.Failures) +
			"  success: " + format.FormatPercent(r.SuccessRate),
		"snapshots: " + format.FormatNumber(int64(r.Snapshots)),
	}
	if r.Snapshots > 0 {
		lines = append(lines,
			"initial: "+r.First.Digest(),
			"final:   "+r.Last.Digest())
	}
	if n := len(r.Anomalies); n > 0 {
		lines = append(lines, StyleEventWarn.Render(
			"anomalies: "+format.FormatNumber(int64(n))))
	}
	return strings.Join(lines, "\n")
}

// renderFooter renders the key binding help footer at full terminal width.
// When app.showHelp is true, shows all key bindings; otherwise a brief hint.
func renderFooter(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}
	text := "? for help"
	if app.showHelp {
		text = helpText
	}
	return StyleDim.Width(width).Render(text)
}
