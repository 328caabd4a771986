package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/orthoplan/internal/cli/formatter"
	"github.com/alexanderramin/orthoplan/internal/derive"
	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type toothKeyMap struct {
	Mesial key.Binding
	Distal key.Binding
	Add    key.Binding
	Up     key.Binding
	Down   key.Binding
	Begin  key.Binding
	End    key.Binding
	Delete key.Binding
	Prev   key.Binding
	Next   key.Binding
}

func newToothKeyMap() toothKeyMap {
	return toothKeyMap{
		Mesial: key.NewBinding(key.WithKeys("m"), key.WithHelp("m/d", "mesial/distal IPR")),
		Distal: key.NewBinding(key.WithKeys("d")),
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add attachment")),
		Up:     key.NewBinding(key.WithKeys("up", "k")),
		Down:   key.NewBinding(key.WithKeys("down", "j")),
		Begin:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b/n", "begin/end")),
		End:    key.NewBinding(key.WithKeys("n")),
		Delete: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "step")),
		Next:   key.NewBinding(key.WithKeys("right", "l")),
	}
}

// toothView is the detail editor for one tooth at the current step: its IPR
// at this step, its attachments and its IPR history. Every change is sent
// to the appModel as a planEditMsg.
type toothView struct {
	state  *SharedState
	keys   toothKeyMap
	tooth  string
	cursor int
}

func newToothView(state *SharedState, tooth string) *toothView {
	return &toothView{
		state: state,
		keys:  newToothKeyMap(),
		tooth: tooth,
	}
}

func (v *toothView) ID() ViewID    { return ViewTooth }
func (v *toothView) Title() string { return "Tooth " + v.tooth }

func (v *toothView) ShortHelp() []key.Binding {
	return []key.Binding{v.keys.Mesial, v.keys.Add, v.keys.Begin, v.keys.Delete, v.keys.Prev}
}

func (v *toothView) Init() tea.Cmd { return nil }

func (v *toothView) attachments() []domain.Attachment {
	return derive.AttachmentsOn(v.state.Plan(), v.tooth)
}

func (v *toothView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		v.cursor = min(v.cursor, max(len(v.attachments())-1, 0))
		return v, nil
	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *toothView) handleKey(msg tea.KeyMsg) tea.Cmd {
	player := v.state.Player
	if player == nil {
		return nil
	}
	step := player.Step()
	atts := v.attachments()

	switch {
	case key.Matches(msg, v.keys.Mesial):
		return v.editIpr(step, domain.SurfaceMesial)
	case key.Matches(msg, v.keys.Distal):
		return v.editIpr(step, domain.SurfaceDistal)

	case key.Matches(msg, v.keys.Add):
		tooth, guid := v.tooth, uuid.New().String()
		v.cursor = len(atts)
		return func() tea.Msg {
			return planEditMsg{
				edit:   func(p *domain.Plan) *domain.Plan { return domain.AddAttachment(p, tooth, step, guid) },
				notice: fmt.Sprintf("Attachment added on %s from step %d", tooth, step),
			}
		}

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(atts)-1 {
			v.cursor++
		}

	case key.Matches(msg, v.keys.Begin):
		if v.cursor < len(atts) {
			return v.editWindow(atts[v.cursor], domain.FieldBeginTime)
		}
	case key.Matches(msg, v.keys.End):
		if v.cursor < len(atts) {
			return v.editWindow(atts[v.cursor], domain.FieldEndTime)
		}
	case key.Matches(msg, v.keys.Delete):
		if v.cursor < len(atts) {
			return v.confirmDelete(atts[v.cursor])
		}

	case key.Matches(msg, v.keys.Prev):
		player.Prev()
		return refreshViews
	case key.Matches(msg, v.keys.Next):
		player.Next()
		return refreshViews
	}
	return nil
}

func (v *toothView) editIpr(step int, surface domain.Surface) tea.Cmd {
	current := derive.IprAt(v.state.Plan(), step)[v.tooth]
	amount := current.Mesial
	if surface == domain.SurfaceDistal {
		amount = current.Distal
	}

	var value string
	tooth := v.tooth
	title := fmt.Sprintf("%s IPR on %s at step %d", surfaceName(surface), tooth, step)
	form := wizardInputMillimeters(title, amount, &value)
	return startWizardCmd(v.state, "IPR", form, func() tea.Cmd {
		return func() tea.Msg {
			return planEditMsg{
				edit:   func(p *domain.Plan) *domain.Plan { return domain.SetIpr(p, tooth, step, surface, value) },
				notice: fmt.Sprintf("%s IPR on %s set to %s", surfaceName(surface), tooth, strings.TrimSpace(value)),
			}
		}
	})
}

func (v *toothView) editWindow(a domain.Attachment, field domain.AttachmentField) tea.Cmd {
	current, title := a.BeginTime, "Begin step"
	if field == domain.FieldEndTime {
		current, title = a.EndTime, "End step"
	}

	var value string
	guid := a.GUID
	form := wizardInputStep(title, current, &value)
	return startWizardCmd(v.state, "Attachment", form, func() tea.Cmd {
		return func() tea.Msg {
			return planEditMsg{
				edit: func(p *domain.Plan) *domain.Plan { return domain.EditAttachment(p, guid, field, value) },
			}
		}
	})
}

func (v *toothView) confirmDelete(a domain.Attachment) tea.Cmd {
	var ok bool
	guid := a.GUID
	form := wizardConfirm(fmt.Sprintf("Delete %s on %s (steps %d-%d)?", a.Name, a.Tooth, a.BeginTime, a.EndTime), &ok)
	return startWizardCmd(v.state, "Delete", form, func() tea.Cmd {
		if !ok {
			return nil
		}
		return func() tea.Msg {
			return planEditMsg{
				edit:   func(p *domain.Plan) *domain.Plan { return domain.DeleteAttachment(p, guid) },
				notice: "Attachment deleted",
			}
		}
	})
}

func (v *toothView) View() string {
	p := v.state.Plan()
	if p == nil {
		return ""
	}
	player := v.state.Player
	step := player.Step()
	tv := derive.ToothAt(p, step, v.tooth)
	at := derive.IprAt(p, step)[v.tooth]

	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("TOOTH "+v.tooth) + "  " + formatter.StateIndicator(tv.State))
	b.WriteString("  " + formatter.Dim(fmt.Sprintf("Step %d · %s", step, player.Label())) + "\n\n")

	b.WriteString(formatter.RenderPanel(fmt.Sprintf("IPR at step %d", step),
		fmt.Sprintf("  Mesial %s   Distal %s   %s",
			formatter.Bold(formatter.Millimeters(at.Mesial)),
			formatter.Bold(formatter.Millimeters(at.Distal)),
			formatter.Dim("accumulated "+formatter.Millimeters(tv.Accumulated)+" mm"))))
	b.WriteString("\n\n")

	lines := strings.Split(formatter.FormatToothAttachments(p, v.tooth, step), "\n")
	if len(v.attachments()) > 0 {
		for i := range lines {
			if i == v.cursor {
				lines[i] = formatter.StyleHeader.Render("▸ ") + lines[i]
			} else {
				lines[i] = "  " + lines[i]
			}
		}
	} else {
		lines[0] = "  " + lines[0]
	}
	b.WriteString(formatter.RenderPanel("Attachments", strings.Join(lines, "\n")))
	b.WriteString("\n\n")

	b.WriteString(formatter.RenderPanel("History", formatter.FormatToothHistory(p, v.tooth, step)))
	return b.String()
}

func surfaceName(s domain.Surface) string {
	if s == domain.SurfaceDistal {
		return "Distal"
	}
	return "Mesial"
}
