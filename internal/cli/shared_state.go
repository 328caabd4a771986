package cli

import (
	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/alexanderramin/orthoplan/internal/playback"
)

// SharedState holds context shared across all views via pointer.
// Only the appModel and views running inside the event loop touch it.
type SharedState struct {
	App *App

	// Player owns the plan and the current step. Nil until a plan is loaded.
	Player *playback.Controller

	// Where the current plan came from.
	Source    domain.Source
	Origin    string
	LibraryID string
	Watching  string

	// Selected is the tooth highlighted on the map, or "".
	Selected string

	// Status is a one-line notice shown above the key hints until the next key.
	Status    string
	StatusErr bool

	// Terminal dimensions
	Width  int
	Height int
}

// Plan returns the plan being viewed, or nil.
func (s *SharedState) Plan() *domain.Plan {
	if s.Player == nil {
		return nil
	}
	return s.Player.Plan()
}

// Load installs a newly ingested plan: playback restarts from step 0 and the
// selection is cleared.
func (s *SharedState) Load(msg planLoadedMsg) {
	if s.Player == nil {
		s.Player = playback.New(msg.plan)
	} else {
		s.Player.Replace(msg.plan)
	}
	s.Source = msg.source
	s.Origin = msg.origin
	s.LibraryID = msg.libraryID
	s.Selected = ""
}

// Notify sets the status line.
func (s *SharedState) Notify(text string) {
	s.Status = text
	s.StatusErr = false
}

// NotifyErr sets the status line to an error.
func (s *SharedState) NotifyErr(err error) {
	s.Status = err.Error()
	s.StatusErr = true
}

// ClearStatus removes the status line.
func (s *SharedState) ClearStatus() {
	s.Status = ""
	s.StatusErr = false
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (3 lines: separator + notice + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}
