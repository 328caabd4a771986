package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/orthoplan/internal/cli/formatter"
	"github.com/alexanderramin/orthoplan/internal/importer"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// orthoplanHuhTheme returns a custom huh theme using the Gruvbox palette.
func orthoplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// remoteFormValues backs the remote fetch form.
type remoteFormValues struct {
	Document   string
	Env        string
	Version    string
	AuthHeader string
}

// wizardRemoteFetch asks for a document id or viewer URL plus the optional
// per-request overrides.
func wizardRemoteFetch(v *remoteFormValues) *huh.Form {
	if v.Env == "" {
		v.Env = "production"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Document").
				Description("Document id, or any URL containing one").
				Value(&v.Document).
				Validate(func(s string) error {
					_, err := importer.ExtractDocumentID(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Environment").
				Options(
					huh.NewOption("Production", "production"),
					huh.NewOption("Preprod", "preprod"),
					huh.NewOption("Development", "development"),
				).
				Value(&v.Env),
			huh.NewInput().
				Title("Version").
				Description("Leave empty for the latest").
				Value(&v.Version).
				Validate(validateNonNegativeInt),
			huh.NewInput().
				Title("Auth header").
				Description("Optional Simse token; configured credentials are used otherwise").
				EchoMode(huh.EchoModePassword).
				Value(&v.AuthHeader),
		),
	).WithTheme(orthoplanHuhTheme()).WithShowHelp(false)
}

// wizardInputText creates a huh form for a single text input.
func wizardInputText(title, placeholder string, required bool, result *string) *huh.Form {
	input := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(result)

	if required {
		input = input.Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", strings.ToLower(title))
			}
			return nil
		})
	}

	return huh.NewForm(
		huh.NewGroup(input),
	).WithTheme(orthoplanHuhTheme()).WithShowHelp(false)
}

// wizardInputStep asks for a step number, pre-filled with current.
func wizardInputStep(title string, current int, result *string) *huh.Form {
	*result = strconv.Itoa(current)
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(result).
				Validate(validateNonNegativeInt),
		),
	).WithTheme(orthoplanHuhTheme()).WithShowHelp(false)
}

// wizardInputMillimeters asks for a reduction amount, pre-filled with current.
// Zero clears the surface.
func wizardInputMillimeters(title string, current float64, result *string) *huh.Form {
	*result = strconv.FormatFloat(current, 'f', -1, 64)
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("Millimeters; 0 clears it").
				Value(result).
				Validate(validateNonNegativeFloat),
		),
	).WithTheme(orthoplanHuhTheme()).WithShowHelp(false)
}

// wizardConfirm creates a huh form for a yes/no confirmation.
func wizardConfirm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(orthoplanHuhTheme()).WithShowHelp(false)
}

// validateNonNegativeInt accepts empty or a non-negative integer.
func validateNonNegativeInt(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative whole number")
	}
	return nil
}

// validateNonNegativeFloat accepts a non-negative decimal number.
func validateNonNegativeFloat(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

// parseOptionalVersion turns the version input into a pointer, nil when empty.
func parseOptionalVersion(s string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return nil
	}
	return &v
}
