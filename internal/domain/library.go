package domain

import "time"

// Source records how a plan entered the workspace.
type Source string

const (
	SourcePaste  Source = "paste"
	SourceFile   Source = "file"
	SourceRemote Source = "remote"
	SourceSample Source = "sample"
)

// LibraryEntry is a saved snapshot of a plan. Saving again under the same id
// replaces the snapshot and keeps SavedAt.
type LibraryEntry struct {
	ID        string
	Label     string
	Source    Source
	Plan      *Plan
	SavedAt   time.Time
	UpdatedAt time.Time
}

// ShortID is the display form of the entry id.
func (e *LibraryEntry) ShortID() string {
	if e.Plan != nil {
		return e.Plan.DisplayID()
	}
	return (&Plan{ID: e.ID}).DisplayID()
}
