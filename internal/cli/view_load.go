package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/orthoplan/internal/cli/formatter"
	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/alexanderramin/orthoplan/internal/nemo"
	"github.com/alexanderramin/orthoplan/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

type loadKeyMap struct {
	Parse   key.Binding
	Sample  key.Binding
	Remote  key.Binding
	File    key.Binding
	Library key.Binding
	Back    key.Binding
}

func newLoadKeyMap() loadKeyMap {
	return loadKeyMap{
		Parse:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "load pasted")),
		Sample:  key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "sample")),
		Remote:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "remote")),
		File:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "file")),
		Library: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "library")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

// loadView is the ingestion screen: a paste area plus shortcuts to the
// sample, a local file, the remote store and the library. Failures are shown
// inline and never touch the plan being viewed.
type loadView struct {
	state   *SharedState
	keys    loadKeyMap
	input   textarea.Model
	loading string
	err     error
}

func newLoadView(state *SharedState) *loadView {
	ta := textarea.New()
	ta.Placeholder = `{"id": "...", "attachList": [], ...}`
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Focus()

	v := &loadView{
		state: state,
		keys:  newLoadKeyMap(),
		input: ta,
	}
	v.resize()
	return v
}

func (v *loadView) ID() ViewID    { return ViewLoad }
func (v *loadView) Title() string { return "Load" }

func (v *loadView) ShortHelp() []key.Binding {
	return []key.Binding{v.keys.Parse, v.keys.Sample, v.keys.Remote, v.keys.File, v.keys.Library}
}

func (v *loadView) Init() tea.Cmd {
	return textarea.Blink
}

func (v *loadView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.resize()
		return v, nil

	case loadFailedMsg:
		v.loading = ""
		v.err = msg.err
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Back):
			return v, popView()

		case key.Matches(msg, v.keys.Parse):
			text := v.input.Value()
			if strings.TrimSpace(text) == "" {
				return v, nil
			}
			v.err = nil
			v.loading = "Parsing…"
			return v, parsePastedCmd(v.state.App, text)

		case key.Matches(msg, v.keys.Sample):
			app := v.state.App
			return v, func() tea.Msg {
				p := app.Plans.Sample(context.Background())
				return planLoadedMsg{plan: p, source: domain.SourceSample, origin: "sample"}
			}

		case key.Matches(msg, v.keys.Remote):
			return v, v.startRemote()

		case key.Matches(msg, v.keys.File):
			return v, v.startFile()

		case key.Matches(msg, v.keys.Library):
			return v, pushView(newLibraryView(v.state))
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *loadView) startRemote() tea.Cmd {
	values := &remoteFormValues{}
	form := wizardRemoteFetch(values)
	return startWizardCmd(v.state, "Remote", form, func() tea.Cmd {
		v.err = nil
		v.loading = "Fetching document…"
		req := service.RemoteRequest{
			Input:   values.Document,
			Version: parseOptionalVersion(values.Version),
			Overrides: nemo.Overrides{
				Env:        values.Env,
				AuthHeader: strings.TrimSpace(values.AuthHeader),
			},
		}
		return fetchRemoteCmd(v.state.App, req)
	})
}

func (v *loadView) startFile() tea.Cmd {
	var path string
	form := wizardInputText("Plan file", "plan.json", true, &path)
	return startWizardCmd(v.state, "File", form, func() tea.Cmd {
		v.err = nil
		v.loading = "Reading " + path + "…"
		return loadFileCmd(v.state.App, strings.TrimSpace(path))
	})
}

func (v *loadView) resize() {
	w := max(v.state.Width-2, 20)
	h := max(v.state.ContentHeight()-12, 3)
	v.input.SetWidth(w)
	v.input.SetHeight(h)
}

func (v *loadView) View() string {
	var b strings.Builder
	b.WriteString(formatter.FormatWelcome())
	b.WriteString("\n")
	b.WriteString(v.input.View())
	b.WriteString("\n")
	switch {
	case v.loading != "":
		b.WriteString("  " + formatter.Dim(v.loading))
	case v.err != nil:
		b.WriteString("  " + formatter.ErrorLine(v.err))
	}
	return b.String()
}

// ── ingestion commands ───────────────────────────────────────────────────────

func parsePastedCmd(app *App, text string) tea.Cmd {
	return func() tea.Msg {
		p, err := app.Plans.ParsePasted(context.Background(), text)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return planLoadedMsg{plan: p, source: domain.SourcePaste, origin: "pasted"}
	}
}

func loadFileCmd(app *App, path string) tea.Cmd {
	return func() tea.Msg {
		p, err := app.Plans.LoadFile(context.Background(), path)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return planLoadedMsg{plan: p, source: domain.SourceFile, origin: path}
	}
}

func fetchRemoteCmd(app *App, req service.RemoteRequest) tea.Cmd {
	return func() tea.Msg {
		p, err := app.Plans.FetchRemote(context.Background(), req)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return planLoadedMsg{plan: p, source: domain.SourceRemote, origin: p.ID}
	}
}
