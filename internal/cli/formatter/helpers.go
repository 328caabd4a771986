package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/orthoplan/internal/domain"
)

// RenderPanel is a borderless titled section, used where a box would eat
// too much vertical space.
func RenderPanel(title string, content string) string {
	return StyleHeader.Render(strings.ToUpper(title)) + "\n" + content
}

// HumanDate returns a human-friendly absolute date string.
func HumanDate(t time.Time) string {
	now := time.Now()
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()

	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	yesterday := now.AddDate(0, 0, -1)
	y3, m3, d3 := yesterday.Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// HumanTimestamp returns a human-friendly relative timestamp string.
func HumanTimestamp(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	switch {
	case diff < 0:
		return HumanDate(t)
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return HumanDate(t)
	}
}

// SourceBadge returns a colored label for where a library entry came from.
func SourceBadge(source domain.Source) string {
	switch source {
	case domain.SourceRemote:
		return StylePurple.Render("remote")
	case domain.SourceFile:
		return StyleBlue.Render("file")
	case domain.SourcePaste:
		return StyleGreen.Render("paste")
	case domain.SourceSample:
		return StyleYellow.Render("sample")
	default:
		return StyleDim.Render(string(source))
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// ErrorLine renders an inline error message.
func ErrorLine(err error) string {
	if err == nil {
		return ""
	}
	return StyleRed.Render("✖ " + err.Error())
}
