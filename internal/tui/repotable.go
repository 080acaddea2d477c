package tui

import (
	"fmt"
	"strings"
)

// maxRepoRows bounds the repository panel; a registry under test rarely has
// more than a handful of repositories, and the dashboard is not a browser.
const maxRepoRows = 10

// renderRepoTable renders the per-repository summary from the latest
// snapshot: name and tag count, truncated at maxRepoRows.
func renderRepoTable(app *App) string {
	if app.current == nil || len(app.current.RepoSummaries) == 0 {
		return ""
	}

	nameWidth := len("REPOSITORY")
	for _, r := range app.current.RepoSummaries {
		if len(r.Name) > nameWidth {
			nameWidth = len(r.Name)
		}
	}

	var sb strings.Builder
	sb.WriteString(StyleTableHeader.Render(fmt.Sprintf("%-*s  %s", nameWidth, "REPOSITORY", "TAGS")))

	rows := app.current.RepoSummaries
	truncated := 0
	if len(rows) > maxRepoRows {
		truncated = len(rows) - maxRepoRows
		rows = rows[:maxRepoRows]
	}

	for _, r := range rows {
		sb.WriteByte('\n')
		sb.WriteString(StyleTableRow.Render(fmt.Sprintf("%-*s  %d", nameWidth, r.Name, r.TagCount)))
	}
	if truncated > 0 {
		sb.WriteByte('\n')
		sb.WriteString(StyleDim.Render(fmt.Sprintf("… and %d more", truncated)))
	}
	return sb.String()
}
