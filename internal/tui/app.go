package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dm/regprobe/internal/logging"
	"github.com/dm/regprobe/internal/model"
	"github.com/dm/regprobe/internal/probe"
)

// maxRecentEntries bounds the event panel backlog.
const maxRecentEntries = 8

// App is the root Bubble Tea model for the live dashboard. It consumes the
// runner's event feed and the captured log stream; it never touches the
// shared tally or history itself.
type App struct {
	target   string
	duration time.Duration
	events   <-chan probe.Event
	logs     <-chan logging.Entry

	start       time.Time
	current     *model.Snapshot
	attempts    int64
	failures    int64
	successRate float64
	sessions    int
	trend       *model.TrendHistory
	recent      []logging.Entry
	report      *probe.Report

	// Layout
	width, height int

	// UI state
	showHelp bool
}

// NewApp creates an App wired to the given feeds.
func NewApp(target string, duration time.Duration, events <-chan probe.Event, logs <-chan logging.Entry) *App {
	return &App{
		target:   target,
		duration: duration,
		events:   events,
		logs:     logs,
		start:    time.Now(),
		trend:    model.NewTrendHistory(0),
	}
}

// Init implements tea.Model.
func (app *App) Init() tea.Cmd {
	return tea.Batch(
		waitForEvent(app.events),
		waitForLog(app.logs),
		tickCmd(),
	)
}

// Update implements tea.Model — the single state-mutation entry point.
func (app *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		app.width = msg.Width
		app.height = msg.Height

	case EventMsg:
		switch ev := msg.Event.(type) {
		case probe.SnapshotEvent:
			snap := ev.Snapshot
			app.current = &snap
			app.sessions = snap.ActiveSessions
		case probe.TallyEvent:
			app.attempts = ev.Attempts
			app.failures = ev.Failures
			app.successRate = ev.SuccessRate
		case probe.SessionsEvent:
			app.sessions = ev.Total
		case probe.DoneEvent:
			app.report = ev.Report
			return app, nil
		}
		return app, waitForEvent(app.events)

	case LogMsg:
		app.recent = append(app.recent, msg.Entry)
		if len(app.recent) > maxRecentEntries {
			app.recent = app.recent[len(app.recent)-maxRecentEntries:]
		}
		return app, waitForLog(app.logs)

	case TickMsg:
		if app.report == nil {
			app.trend.Push(model.TrendPoint{
				Timestamp:   time.Time(msg),
				SuccessRate: app.successRate,
				Operations:  float64(app.attempts),
				Failures:    float64(app.failures),
				Sessions:    float64(app.sessions),
			})
			return app, tickCmd()
		}
		return app, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return app, tea.Quit
		case key.Matches(msg, keys.Help):
			app.showHelp = !app.showHelp
		}
	}

	return app, nil
}

// View implements tea.Model. Renders the full dashboard.
func (app *App) View() string {
	var parts []string

	if h := renderHeader(app); h != "" {
		parts = append(parts, h)
	}
	if o := renderOverview(app); o != "" {
		parts = append(parts, o)
	}
	if tr := renderTrends(app); tr != "" {
		parts = append(parts, tr)
	}
	if rt := renderRepoTable(app); rt != "" {
		parts = append(parts, rt)
	}
	if ev := renderEventLog(app); ev != "" {
		parts = append(parts, ev)
	}
	if s := renderSummary(app); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts, renderFooter(app))

	return strings.Join(parts, "\n")
}

// waitForEvent blocks on the runner event feed.
func waitForEvent(ch <-chan probe.Event) tea.Cmd {
	return func() tea.Msg {
		return EventMsg{Event: <-ch}
	}
}

// waitForLog blocks on the captured log stream.
func waitForLog(ch <-chan logging.Entry) tea.Cmd {
	return func() tea.Msg {
		return LogMsg{Entry: <-ch}
	}
}

// tickCmd schedules the next trend sample.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
