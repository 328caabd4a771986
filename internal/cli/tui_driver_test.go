package cli

import (
	"testing"

	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/alexanderramin/orthoplan/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
)

// TestDriver wraps teatest.Driver with orthoplan-specific inspection methods.
// It provides access to appModel internals (view stack, shared state, player)
// that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver from a test App. With initial set the
// model opens on the plan view, otherwise on the load screen.
func NewTestDriver(t *testing.T, app *App, initial *planLoadedMsg) *TestDriver {
	t.Helper()

	m := newAppModel(app, initial)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// NewSampleDriver opens the viewer on the built-in sample plan.
func NewSampleDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()
	return NewTestDriver(t, app, &planLoadedMsg{
		plan:   app.Plans.Sample(t.Context()),
		source: domain.SourceSample,
		origin: "sample",
	})
}

// ── High-level helpers ───────────────────────────────────────────────────────

// Confirm answers yes on an open confirm form.
func (d *TestDriver) Confirm() {
	d.T.Helper()
	d.Press(tea.KeyLeft)
	d.PressEnter()
}

// ── orthoplan-specific inspection ────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ActiveViewTitle returns the Title() of the top view on the stack.
func (d *TestDriver) ActiveViewTitle() string {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ""
	}
	return v.Title()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// Plan returns the plan currently being viewed.
func (d *TestDriver) Plan() *domain.Plan {
	return d.State().Plan()
}

// Step returns the current playback step.
func (d *TestDriver) Step() int {
	return d.State().Player.Step()
}

// IsQuitting returns whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}
