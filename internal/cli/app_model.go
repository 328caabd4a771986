package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/orthoplan/internal/cli/formatter"
	"github.com/alexanderramin/orthoplan/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// appModel is the root bubbletea Model for the TUI.
// It owns the view stack and applies every plan change: loads, edits,
// playback ticks and file reloads all pass through Update.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool
}

// newAppModel starts on the plan view when initial is set and on the load
// screen otherwise.
func newAppModel(app *App, initial *planLoadedMsg) appModel {
	state := &SharedState{App: app}
	m := appModel{state: state}

	if initial != nil {
		state.Load(*initial)
		m.viewStack = []View{newPlanView(state)}
	} else {
		m.viewStack = []View{newLoadView(state)}
	}
	return m
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
// If the stack is empty, this is a no-op.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		return m.broadcast(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case refreshViewMsg:
		return m.broadcast(msg)

	case wizardCompleteMsg:
		// Atomically pop the wizard view and execute the follow-up command.
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, msg.nextCmd

	case planLoadedMsg:
		return m.installPlan(msg)

	case fileReloadedMsg:
		model, cmd := m.installPlan(planLoadedMsg{
			plan:   msg.plan,
			source: domain.SourceFile,
			origin: m.state.Watching,
		})
		m.state.Notify("Reloaded " + m.state.Watching)
		return model, cmd

	case fileWatchErrorMsg:
		m.state.NotifyErr(fmt.Errorf("reload failed, keeping current plan: %w", msg.err))
		return m, nil

	case planEditMsg:
		if m.state.Player == nil {
			return m, nil
		}
		cur := m.state.Player.Plan()
		next := msg.edit(cur)
		if next == cur {
			return m, nil
		}
		m.state.Player.Update(next)
		if msg.notice != "" {
			m.state.Notify(msg.notice)
		}
		return m.broadcast(refreshViewMsg{})

	case playbackTickMsg:
		if m.state.Player == nil || !m.state.Player.Tick(msg.gen) {
			return m.broadcast(refreshViewMsg{})
		}
		model, cmd := m.broadcast(refreshViewMsg{})
		return model, tea.Batch(cmd, tickCmd(msg.gen))

	case librarySavedMsg:
		m.state.LibraryID = msg.entry.ID
		m.state.Notify(fmt.Sprintf("Saved to library as %s", msg.entry.ShortID()))
		return m.broadcast(refreshViewMsg{})

	case statusMsg:
		if msg.err != nil {
			m.state.NotifyErr(msg.err)
		} else {
			m.state.Notify(msg.text)
		}
		return m, nil
	}

	// Forward to active view
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

// installPlan loads a new plan and resets navigation to the plan view.
func (m appModel) installPlan(msg planLoadedMsg) (tea.Model, tea.Cmd) {
	m.state.Load(msg)
	m.state.Notify(fmt.Sprintf("Loaded %s (%s)", planName(msg.plan), msg.source))
	v := newPlanView(m.state)
	m.viewStack = []View{v}
	return m, v.Init()
}

// broadcast sends msg to every view on the stack so views underneath the
// active one stay in sync with the plan.
func (m appModel) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for i, v := range m.viewStack {
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	m.state.ClearStatus()

	// If active view captures input (has its own text input), forward directly.
	// This bypasses global keybindings so the paste area and forms can
	// receive all characters including 'q'.
	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch {
	case msg.String() == "q":
		m.quitting = true
		return m, tea.Quit

	case msg.Type == tea.KeyEsc && len(m.viewStack) > 1:
		m.viewStack = m.viewStack[:len(m.viewStack)-1]
		return m, nil
	}

	// Forward to active view
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}
	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("orthoplan")

	// Breadcrumb from view stack
	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	breadcrumb := ""
	if len(crumbs) > 0 {
		breadcrumb = " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	header := title + breadcrumb

	if p := m.state.Plan(); p != nil {
		header += "  " + formatter.Dim("[") + formatter.StyleGreen.Render(p.DisplayID()) + formatter.Dim("]")
		header += " " + formatter.SourceBadge(m.state.Source)
	}
	if m.state.Watching != "" {
		header += "  " + formatter.StyleYellow.Render("● watching")
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string
	if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}
	if len(m.viewStack) > 1 {
		hints = append(hints, formatter.Dim("esc: back"))
	}
	if v := m.activeView(); v == nil || !viewCapturesInput(v) {
		hints = append(hints, formatter.Dim("q: quit"))
	}

	notice := ""
	if m.state.Status != "" {
		if m.state.StatusErr {
			notice = formatter.StyleRed.Render("✖ " + m.state.Status)
		} else {
			notice = formatter.StyleGreen.Render("✔ " + m.state.Status)
		}
	}

	sepStyle := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	sep := sepStyle.Render(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + notice + "\n" + strings.Join(hints, "  ")
}

// viewCapturesInput returns true if the active view has its own text input
// and should receive all key events (bypassing global keybindings like q/Esc).
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	switch v.ID() {
	case ViewLoad, ViewForm:
		return true
	}
	return false
}

func planName(p *domain.Plan) string {
	if p.SetupName != "" {
		return p.SetupName
	}
	if id := p.DisplayID(); id != "" {
		return id
	}
	return "plan"
}
