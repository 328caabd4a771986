package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/orthoplan/internal/cli/formatter"
	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// libraryLoadedMsg signals that the saved plan list has been loaded.
type libraryLoadedMsg struct {
	entries []*domain.LibraryEntry
	err     error
}

// libraryDeletedMsg reports the outcome of removing a saved plan.
type libraryDeletedMsg struct {
	id  string
	err error
}

// libraryView lists saved plans. Opening one installs it as the current plan.
type libraryView struct {
	state   *SharedState
	entries []*domain.LibraryEntry
	cursor  int
	loading bool
	err     error
}

func newLibraryView(state *SharedState) *libraryView {
	return &libraryView{
		state:   state,
		loading: true,
	}
}

func (v *libraryView) ID() ViewID    { return ViewLibrary }
func (v *libraryView) Title() string { return "Library" }

func (v *libraryView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	}
}

func (v *libraryView) Init() tea.Cmd {
	return v.loadEntries()
}

func (v *libraryView) loadEntries() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		entries, err := app.Library.List(context.Background())
		return libraryLoadedMsg{entries: entries, err: err}
	}
}

func (v *libraryView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case libraryLoadedMsg:
		v.loading = false
		v.err = msg.err
		v.entries = msg.entries
		v.cursor = min(v.cursor, max(len(v.entries)-1, 0))
		return v, nil

	case libraryDeletedMsg:
		if msg.err != nil {
			v.state.NotifyErr(fmt.Errorf("delete failed: %w", msg.err))
			return v, nil
		}
		if v.state.LibraryID == msg.id {
			v.state.LibraryID = ""
		}
		v.state.Notify("Deleted " + formatter.TruncID(msg.id))
		return v, v.loadEntries()

	case refreshViewMsg:
		return v, v.loadEntries()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *libraryView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.entries)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(v.entries) {
			e := v.entries[v.cursor]
			return v, func() tea.Msg {
				return planLoadedMsg{
					plan:      e.Plan,
					source:    e.Source,
					origin:    domain.CoalesceStr(e.Label, e.ShortID()),
					libraryID: e.ID,
				}
			}
		}
	case "d":
		if v.cursor < len(v.entries) {
			return v, v.confirmDelete(v.entries[v.cursor])
		}
	}
	return v, nil
}

func (v *libraryView) confirmDelete(e *domain.LibraryEntry) tea.Cmd {
	var ok bool
	app := v.state.App
	id := e.ID
	form := wizardConfirm(fmt.Sprintf("Delete %q from the library?", domain.CoalesceStr(e.Label, e.ShortID())), &ok)
	return startWizardCmd(v.state, "Delete", form, func() tea.Cmd {
		if !ok {
			return nil
		}
		return func() tea.Msg {
			err := app.Library.Delete(context.Background(), id)
			return libraryDeletedMsg{id: id, err: err}
		}
	})
}

func (v *libraryView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading library...")
	}
	if v.err != nil {
		return "\n  " + formatter.ErrorLine(v.err)
	}

	var b strings.Builder
	b.WriteString("\n")
	if len(v.entries) == 0 {
		b.WriteString("  " + formatter.Dim("No saved plans. Press s on a plan to save it.") + "\n")
		return b.String()
	}

	for i, e := range v.entries {
		cursor := "  "
		labelStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			labelStyle = formatter.StyleBold
		}
		current := ""
		if e.ID == v.state.LibraryID {
			current = "  " + formatter.StyleYellow.Render("● open")
		}

		b.WriteString(fmt.Sprintf("%s%s  %s  %s  %s  %s%s\n",
			cursor,
			formatter.TruncID(e.ID),
			labelStyle.Render(padRight(domain.CoalesceStr(e.Label, "(unlabelled)"), 24)),
			padRight(e.Plan.DisplayID(), 12),
			formatter.SourceBadge(e.Source),
			formatter.Dim(formatter.HumanTimestamp(e.UpdatedAt)),
			current,
		))
	}
	return b.String()
}

// padRight pads a string to a minimum width, truncating if needed.
func padRight(s string, width int) string {
	if len([]rune(s)) > width {
		return string([]rune(s)[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len([]rune(s)))
}
