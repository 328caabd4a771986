package cli

import (
	"fmt"

	"github.com/alexanderramin/orthoplan/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// wizardView hosts one huh.Form on the navigation stack. Completing the form
// pops it and runs done; esc pops it with a "Cancelled." notice.
type wizardView struct {
	state *SharedState
	form  *huh.Form
	title string
	done  func() tea.Cmd
}

func newWizardView(state *SharedState, title string, form *huh.Form, done func() tea.Cmd) *wizardView {
	return &wizardView{state: state, form: form, title: title, done: done}
}

func (v *wizardView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *wizardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		// The form holds its own copy of the values being edited.
		return v, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return v, func() tea.Msg { return wizardCompleteMsg{nextCmd: statusCmd("Cancelled.")} }
		}
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}
	if v.form.State != huh.StateCompleted {
		return v, cmd
	}

	var next tea.Cmd
	if v.done != nil {
		next = v.done()
	}
	return v, func() tea.Msg { return wizardCompleteMsg{nextCmd: next} }
}

// View shows which plan and step the form applies to above the form itself.
func (v *wizardView) View() string {
	ctx := ""
	if p := v.state.Plan(); p != nil {
		ctx = formatter.Dim(fmt.Sprintf("  %s · step %d", planName(p), v.state.Player.Step())) + "\n\n"
	}
	return ctx + v.form.View()
}

func (v *wizardView) ID() ViewID    { return ViewForm }
func (v *wizardView) Title() string { return v.title }
func (v *wizardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// startWizardCmd pushes form as a wizard. A nil form runs done immediately.
func startWizardCmd(state *SharedState, title string, form *huh.Form, done func() tea.Cmd) tea.Cmd {
	if form == nil {
		if done == nil {
			return nil
		}
		return done()
	}
	return pushView(newWizardView(state, title, form, done))
}
