package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/orthoplan/internal/derive"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)

	// StyleSelected is layered over a tooth's state style.
	StyleSelected = lipgloss.NewStyle().Bold(true).Underline(true)
)

// ToothStyle returns the map style for a tooth highlight state.
func ToothStyle(state derive.ToothState) lipgloss.Style {
	switch state {
	case derive.StateIprAction:
		return StyleRed.Bold(true)
	case derive.StateAttachmentWithHistory:
		return StylePurple
	case derive.StateAttachment:
		return StyleBlue
	case derive.StateHistory:
		return StyleYellow
	default:
		return StyleFg
	}
}

// ToothGlyph returns the single-character marker drawn next to a tooth in
// the given state, or a space for the default state.
func ToothGlyph(state derive.ToothState) string {
	switch state {
	case derive.StateIprAction:
		return "◆"
	case derive.StateAttachmentWithHistory:
		return "◉"
	case derive.StateAttachment:
		return "●"
	case derive.StateHistory:
		return "○"
	default:
		return " "
	}
}

// StateIndicator returns a colored glyph and label such as "● attachment".
func StateIndicator(state derive.ToothState) string {
	if state == derive.StateDefault {
		return StyleDim.Render("· no activity")
	}
	return ToothStyle(state).Render(ToothGlyph(state) + " " + stateLabel(state))
}

func stateLabel(state derive.ToothState) string {
	switch state {
	case derive.StateIprAction:
		return "IPR this step"
	case derive.StateAttachmentWithHistory:
		return "attachment, IPR so far"
	case derive.StateAttachment:
		return "attachment"
	case derive.StateHistory:
		return "IPR so far"
	default:
		return ""
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Millimeters formats a reduction amount with two decimals.
func Millimeters(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
