package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/alexanderramin/orthoplan/internal/testutil"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubView struct {
	id         ViewID
	title      string
	viewText   string
	shortHelp  []key.Binding
	initCmd    tea.Cmd
	updateCmd  tea.Cmd
	updateSeen []tea.Msg
}

func (v *stubView) Init() tea.Cmd { return v.initCmd }

func (v *stubView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	v.updateSeen = append(v.updateSeen, msg)
	return v, v.updateCmd
}

func (v *stubView) View() string             { return v.viewText }
func (v *stubView) ID() ViewID               { return v.id }
func (v *stubView) ShortHelp() []key.Binding { return v.shortHelp }
func (v *stubView) Title() string            { return v.title }
func newStubView(id ViewID, title, text string) *stubView {
	return &stubView{id: id, title: title, viewText: text}
}

func newTestAppModel(t *testing.T, initial *planLoadedMsg) appModel {
	t.Helper()
	app, _ := testApp(t)
	return newAppModel(app, initial)
}

func testPlanMsg() *planLoadedMsg {
	return &planLoadedMsg{plan: testutil.NewTestPlan(), source: domain.SourceFile, origin: "plan.json"}
}

func TestNewAppModel_StartsOnLoadView(t *testing.T) {
	m := newTestAppModel(t, nil)

	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewLoad, m.activeView().ID())
	assert.Nil(t, m.state.Player)
}

func TestNewAppModel_StartsOnPlanView(t *testing.T) {
	msg := testPlanMsg()
	m := newTestAppModel(t, msg)

	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewPlan, m.activeView().ID())
	assert.Same(t, msg.plan, m.state.Plan())
	assert.Equal(t, "plan.json", m.state.Origin)
}

func TestAppModel_NavigationMessages(t *testing.T) {
	m := newTestAppModel(t, testPlanMsg())
	v2 := newStubView(ViewTooth, "Tooth 16", "tooth view")

	model, cmd := m.Update(pushViewMsg{view: v2})
	m = model.(appModel)
	require.Nil(t, cmd)
	require.Len(t, m.viewStack, 2)
	assert.Equal(t, v2, m.activeView())

	model, cmd = m.Update(popViewMsg{})
	m = model.(appModel)
	require.Nil(t, cmd)
	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewPlan, m.activeView().ID())

	// The root view is never popped.
	model, _ = m.Update(popViewMsg{})
	m = model.(appModel)
	require.Len(t, m.viewStack, 1)
}

func TestAppModel_WindowResizeReachesEveryView(t *testing.T) {
	m := newTestAppModel(t, nil)
	bottom := newStubView(ViewPlan, "Plan", "plan")
	top := newStubView(ViewTooth, "Tooth 11", "tooth")
	m.viewStack = []View{bottom, top}

	model, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = model.(appModel)
	require.Nil(t, cmd)

	assert.Equal(t, 100, m.state.Width)
	assert.Equal(t, 30, m.state.Height)
	for _, v := range []*stubView{bottom, top} {
		require.Len(t, v.updateSeen, 1)
		assert.IsType(t, tea.WindowSizeMsg{}, v.updateSeen[0])
	}
}

func TestAppModel_KeyHandling_GlobalAndCaptured(t *testing.T) {
	t.Run("q quits when active view does not capture input", func(t *testing.T) {
		m := newTestAppModel(t, nil)
		m.viewStack = []View{newStubView(ViewPlan, "Plan", "plan")}

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		m = model.(appModel)
		require.NotNil(t, cmd)
		assert.True(t, m.quitting)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})

	t.Run("capturing view receives q and does not quit", func(t *testing.T) {
		m := newTestAppModel(t, nil)
		v := newStubView(ViewForm, "Label", "form")
		m.viewStack = []View{v}

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		m = model.(appModel)
		require.Nil(t, cmd)
		assert.False(t, m.quitting)
		require.Len(t, v.updateSeen, 1)
		assert.Equal(t, "q", v.updateSeen[0].(tea.KeyMsg).String())
	})

	t.Run("esc pops back stack", func(t *testing.T) {
		m := newTestAppModel(t, nil)
		m.viewStack = []View{
			newStubView(ViewPlan, "Plan", "plan"),
			newStubView(ViewLibrary, "Library", "library"),
		}

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		m = model.(appModel)
		require.Nil(t, cmd)
		require.Len(t, m.viewStack, 1)
	})

	t.Run("esc on the root view is forwarded", func(t *testing.T) {
		m := newTestAppModel(t, nil)
		v := newStubView(ViewPlan, "Plan", "plan")
		m.viewStack = []View{v}

		model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		m = model.(appModel)
		require.Len(t, m.viewStack, 1)
		require.Len(t, v.updateSeen, 1)
	})

	t.Run("any key clears the status line", func(t *testing.T) {
		m := newTestAppModel(t, nil)
		m.viewStack = []View{newStubView(ViewPlan, "Plan", "plan")}
		m.state.Notify("Saved")

		model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
		m = model.(appModel)
		assert.Empty(t, m.state.Status)
	})
}

func TestAppModel_WizardComplete(t *testing.T) {
	m := newTestAppModel(t, nil)
	m.viewStack = []View{
		newStubView(ViewPlan, "Plan", "plan"),
		newStubView(ViewForm, "Save", "wizard"),
	}
	next := func() tea.Msg { return statusMsg{text: "done"} }

	model, cmd := m.Update(wizardCompleteMsg{nextCmd: next})
	m = model.(appModel)
	require.NotNil(t, cmd)
	require.Len(t, m.viewStack, 1)

	model, cmd = m.Update(cmd())
	m = model.(appModel)
	require.Nil(t, cmd)
	assert.Contains(t, m.View(), "✔ done")
}

func TestAppModel_PlanEdit(t *testing.T) {
	m := newTestAppModel(t, testPlanMsg())
	before := m.state.Plan()

	t.Run("no-op edit leaves the plan alone", func(t *testing.T) {
		model, cmd := m.Update(planEditMsg{
			edit:   func(p *domain.Plan) *domain.Plan { return p },
			notice: "changed",
		})
		m = model.(appModel)
		assert.Nil(t, cmd)
		assert.Same(t, before, m.state.Plan())
		assert.Empty(t, m.state.Status)
	})

	t.Run("edit installs the new plan and pauses playback", func(t *testing.T) {
		m.state.Player.Play()
		model, _ := m.Update(planEditMsg{
			edit:   func(p *domain.Plan) *domain.Plan { return domain.ExtendTo(p, 12) },
			notice: "extended",
		})
		m = model.(appModel)
		assert.NotSame(t, before, m.state.Plan())
		assert.Equal(t, 12, m.state.Plan().UpperEndIn)
		assert.False(t, m.state.Player.Playing())
		assert.Equal(t, "extended", m.state.Status)
	})
}

func TestAppModel_EditWithoutPlanIsIgnored(t *testing.T) {
	m := newTestAppModel(t, nil)

	model, cmd := m.Update(planEditMsg{edit: func(p *domain.Plan) *domain.Plan { return p.Clone() }})
	m = model.(appModel)
	assert.Nil(t, cmd)
	assert.Nil(t, m.state.Player)
}

func TestAppModel_StatusMessages(t *testing.T) {
	m := newTestAppModel(t, nil)
	m.viewStack = []View{newStubView(ViewPlan, "Plan", "plan")}

	model, _ := m.Update(statusMsg{err: errors.New("disk full")})
	m = model.(appModel)
	assert.True(t, m.state.StatusErr)
	assert.Contains(t, m.View(), "✖ disk full")
}

func TestAppModel_ViewIsPaddedToHeight(t *testing.T) {
	m := newTestAppModel(t, nil)
	m.viewStack = []View{newStubView(ViewPlan, "Plan", "plan")}
	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = model.(appModel)

	assert.Equal(t, 30, strings.Count(m.View(), "\n")+1)
}

func TestViewCapturesInput(t *testing.T) {
	assert.False(t, viewCapturesInput(nil))
	assert.True(t, viewCapturesInput(newStubView(ViewLoad, "Load", "")))
	assert.True(t, viewCapturesInput(newStubView(ViewForm, "Form", "")))
	assert.False(t, viewCapturesInput(newStubView(ViewPlan, "Plan", "")))
	assert.False(t, viewCapturesInput(newStubView(ViewLibrary, "Library", "")))
}
