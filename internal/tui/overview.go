package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dm/regprobe/internal/format"
)

// renderOverview renders the 7-stat overview bar: registry counters on the
// left, harness counters on the right. Narrow terminals (< 80 cols) stack
// the cards in rows of 2. Returns empty string before the first snapshot
// when no operations have been recorded either.
func renderOverview(app *App) string {
	if app.current == nil && app.attempts == 0 {
		return ""
	}

	width := app.width
	if width <= 0 {
		width = 80
	}

	repoCount, manifestCount, blobCount := "-", "-", "-"
	if app.current != nil {
		repoCount = format.FormatNumber(int64(app.current.Repositories))
		manifestCount = format.FormatNumber(int64(app.current.Manifests))
		blobCount = format.FormatNumber(int64(app.current.Blobs))
	}

	cards := []struct {
		label string
		value string
	}{
		{"Repos", repoCount},
		{"Manifests", manifestCount},
		{"Blobs", blobCount},
		{"Sessions", format.FormatNumber(int64(app.sessions))},
		{"Ops", format.FormatNumber(app.attempts)},
		{"Errors", format.FormatNumber(app.failures)},
		{"Success", format.FormatPercent(app.successRate)},
	}

	narrowMode := width < 80
	var cardWidth int
	if narrowMode {
		cardWidth = (width - 4) / 2
		if cardWidth < 10 {
			cardWidth = 10
		}
	} else {
		cardWidth = (width - 14) / 7
		if cardWidth < 8 {
			cardWidth = 8
		}
	}

	rendered := make([]string, len(cards))
	for i, c := range cards {
		body := StyleDim.Render(c.label) + "\n" + c.value
		rendered[i] = StyleOverviewCard.Width(cardWidth).Render(body)
	}

	if !narrowMode {
		return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	}

	var rows []string
	for i := 0; i < len(rendered); i += 2 {
		end := i + 2
		if end > len(rendered) {
			end = len(rendered)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered[i:end]...))
	}
	return strings.Join(rows, "\n")
}
