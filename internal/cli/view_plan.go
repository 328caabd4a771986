package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/orthoplan/internal/cli/formatter"
	"github.com/alexanderramin/orthoplan/internal/derive"
	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// planFixedHeight is the number of lines above the lower panel: scrubber,
// stats, map, gap list and legend with their spacing.
const planFixedHeight = 17

type planKeyMap struct {
	Play    key.Binding
	Prev    key.Binding
	Next    key.Binding
	First   key.Binding
	Last    key.Binding
	AddStep key.Binding
	Select  key.Binding
	SelPrev key.Binding
	Arch    key.Binding
	Open    key.Binding
	Clear   key.Binding
	Chart   key.Binding
	Export  key.Binding
	Save    key.Binding
	Load    key.Binding
	Library key.Binding
}

func newPlanKeyMap() planKeyMap {
	return planKeyMap{
		Play:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "step")),
		Next:    key.NewBinding(key.WithKeys("right", "l")),
		First:   key.NewBinding(key.WithKeys("home", "g")),
		Last:    key.NewBinding(key.WithKeys("end", "G")),
		AddStep: key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "add step")),
		Select:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "tooth")),
		SelPrev: key.NewBinding(key.WithKeys("shift+tab")),
		Arch:    key.NewBinding(key.WithKeys("up", "down", "k", "j")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit tooth")),
		Clear:   key.NewBinding(key.WithKeys("esc")),
		Chart:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chart")),
		Export:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Save:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Load:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "load")),
		Library: key.NewBinding(key.WithKeys("L")),
	}
}

// planView is the main viewer: scrubber, stats, dentition map and either the
// step breakdown or the IPR timeline chart.
type planView struct {
	state     *SharedState
	keys      planKeyMap
	panel     viewport.Model
	showChart bool

	// Breakdown rows are rebuilt whenever the plan pointer changes.
	rows     []derive.StepRow
	rowsFor  *domain.Plan
	timeline []derive.StepTotal
	summary  derive.Summary
}

func newPlanView(state *SharedState) *planView {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true
	v := &planView{
		state: state,
		keys:  newPlanKeyMap(),
		panel: vp,
	}
	v.sync()
	return v
}

func (v *planView) ID() ViewID    { return ViewPlan }
func (v *planView) Title() string { return "Plan" }

func (v *planView) ShortHelp() []key.Binding {
	return []key.Binding{
		v.keys.Play, v.keys.Prev, v.keys.AddStep, v.keys.Select, v.keys.Open,
		v.keys.Chart, v.keys.Export, v.keys.Save, v.keys.Load,
	}
}

func (v *planView) Init() tea.Cmd { return nil }

func (v *planView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg, refreshViewMsg:
		v.sync()
		return v, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		v.panel, cmd = v.panel.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		cmd := v.handleKey(msg)
		v.sync()
		return v, cmd
	}
	return v, nil
}

func (v *planView) handleKey(msg tea.KeyMsg) tea.Cmd {
	player := v.state.Player
	if player == nil {
		return nil
	}

	switch {
	case key.Matches(msg, v.keys.Play):
		if player.Toggle() {
			return tickCmd(player.Generation())
		}
	case key.Matches(msg, v.keys.Prev):
		player.Prev()
	case key.Matches(msg, v.keys.Next):
		player.Next()
	case key.Matches(msg, v.keys.First):
		player.Seek(0)
	case key.Matches(msg, v.keys.Last):
		player.Seek(player.MaxStep())
	case key.Matches(msg, v.keys.AddStep):
		player.AddStep()
		v.state.Notify(fmt.Sprintf("Added step %d", player.Step()))
	case key.Matches(msg, v.keys.Select):
		v.moveSelection(1)
	case key.Matches(msg, v.keys.SelPrev):
		v.moveSelection(-1)
	case key.Matches(msg, v.keys.Arch):
		v.switchArch()
	case key.Matches(msg, v.keys.Clear):
		v.state.Selected = ""
	case key.Matches(msg, v.keys.Open):
		if v.state.Selected == "" {
			v.moveSelection(1)
		}
		player.Pause()
		return pushView(newToothView(v.state, v.state.Selected))
	case key.Matches(msg, v.keys.Chart):
		v.showChart = !v.showChart
	case key.Matches(msg, v.keys.Export):
		return exportCmd(v.state.App, player.Plan())
	case key.Matches(msg, v.keys.Save):
		return v.startSave()
	case key.Matches(msg, v.keys.Load):
		return pushView(newLoadView(v.state))
	case key.Matches(msg, v.keys.Library):
		return pushView(newLibraryView(v.state))
	default:
		var cmd tea.Cmd
		v.panel, cmd = v.panel.Update(msg)
		return cmd
	}
	return nil
}

// moveSelection steps through the teeth in map order, wrapping around.
func (v *planView) moveSelection(delta int) {
	teeth := domain.AllTeeth()
	i := slices.Index(teeth, v.state.Selected)
	if i < 0 {
		if delta > 0 {
			v.state.Selected = teeth[0]
		} else {
			v.state.Selected = teeth[len(teeth)-1]
		}
		return
	}
	v.state.Selected = teeth[(i+delta+len(teeth))%len(teeth)]
}

// switchArch moves the selection to the facing tooth of the other arch.
func (v *planView) switchArch() {
	teeth := domain.AllTeeth()
	i := slices.Index(teeth, v.state.Selected)
	if i < 0 {
		v.state.Selected = teeth[0]
		return
	}
	half := len(teeth) / 2
	v.state.Selected = teeth[(i+half)%len(teeth)]
}

func (v *planView) startSave() tea.Cmd {
	p := v.state.Player.Plan()
	label := p.SetupName
	form := wizardInputText("Label", planName(p), false, &label)
	source := v.state.Source
	return startWizardCmd(v.state, "Save", form, func() tea.Cmd {
		return saveCmd(v.state, p, source, strings.TrimSpace(label))
	})
}

// sync recomputes derived data after a plan, step or size change and keeps
// the breakdown centred on the current step.
func (v *planView) sync() {
	p := v.state.Plan()
	if p == nil {
		return
	}
	if p != v.rowsFor {
		v.rows = derive.StepTable(p)
		v.timeline = derive.IprTimeline(p)
		v.summary = derive.Summarize(p)
		v.rowsFor = p
	}

	v.panel.Width = max(v.state.Width, 40)
	v.panel.Height = max(v.state.ContentHeight()-planFixedHeight, 3)

	step := v.state.Player.Step()
	if v.showChart {
		v.panel.SetContent(formatter.RenderTimeline(v.timeline, step, v.panel.Width))
		v.panel.GotoTop()
		return
	}

	content, offsets := formatter.RenderBreakdown(v.rows, step, v.panel.Width)
	v.panel.SetContent(content)
	if step < len(offsets) {
		v.panel.SetYOffset(max(offsets[step]-v.panel.Height/2, 0))
	} else {
		v.panel.GotoBottom()
	}
}

func (v *planView) View() string {
	player := v.state.Player
	if player == nil {
		return formatter.Dim("No plan loaded.")
	}
	p := player.Plan()
	step := player.Step()

	var b strings.Builder
	b.WriteString(formatter.RenderScrubber(step, player.MaxStep(), player.Label(), player.Playing(), max(v.state.Width, 40)))
	b.WriteString("\n\n")
	b.WriteString(formatter.RenderStats(v.summary))
	b.WriteString("\n\n")
	b.WriteString(formatter.RenderDentition(p, step, v.state.Selected))
	b.WriteString("\n")
	b.WriteString(formatter.RenderGapList(p, step))
	b.WriteString("\n")
	b.WriteString(formatter.RenderLegend())
	b.WriteString("\n\n")
	if v.showChart {
		b.WriteString(formatter.StyleHeader.Render("IPR TIMELINE"))
	} else {
		b.WriteString(formatter.StyleHeader.Render("STEP BREAKDOWN"))
	}
	b.WriteString("\n")
	b.WriteString(v.panel.View())
	return b.String()
}

// ── plan commands ────────────────────────────────────────────────────────────

func exportCmd(app *App, p *domain.Plan) tea.Cmd {
	return func() tea.Msg {
		path, err := app.Plans.Export(context.Background(), p, "")
		if err != nil {
			return statusMsg{err: fmt.Errorf("export failed: %w", err)}
		}
		return statusMsg{text: "Exported to " + path}
	}
}

func saveCmd(state *SharedState, p *domain.Plan, source domain.Source, label string) tea.Cmd {
	app := state.App
	return func() tea.Msg {
		entry, err := app.Library.Save(context.Background(), p, source, label)
		if err != nil {
			return statusMsg{err: fmt.Errorf("save failed: %w", err)}
		}
		return librarySavedMsg{entry: entry}
	}
}

// librarySavedMsg reports a successful library save.
type librarySavedMsg struct {
	entry *domain.LibraryEntry
}
