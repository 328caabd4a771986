package cli

import (
	"time"

	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/alexanderramin/orthoplan/internal/playback"
	tea "github.com/charmbracelet/bubbletea"
)

// planLoadedMsg carries a freshly ingested plan. The appModel installs it
// and resets the view stack to the plan view.
type planLoadedMsg struct {
	plan      *domain.Plan
	source    domain.Source
	origin    string
	libraryID string
}

// loadFailedMsg reports an ingestion failure to the view that started it.
// The current plan is left untouched.
type loadFailedMsg struct {
	err error
}

// planEditMsg asks the appModel to apply edit to the current plan. Edits
// are applied inside the event loop so they always see the latest plan.
type planEditMsg struct {
	edit   func(p *domain.Plan) *domain.Plan
	notice string
}

// playbackTickMsg advances playback for one tick schedule.
type playbackTickMsg struct {
	gen uint64
}

// statusMsg sets the status line.
type statusMsg struct {
	text string
	err  error
}

// fileReloadedMsg and fileWatchErrorMsg are sent by the file watcher from
// outside the event loop through Program.Send.
type fileReloadedMsg struct {
	plan *domain.Plan
}

type fileWatchErrorMsg struct {
	err error
}

// tickCmd schedules the next playback tick for gen.
func tickCmd(gen uint64) tea.Cmd {
	return tea.Tick(playback.Interval, func(time.Time) tea.Msg {
		return playbackTickMsg{gen: gen}
	})
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg { return statusMsg{err: err} }
}
