package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/orthoplan/internal/derive"
	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	breakdownIndent = "    "
	breakdownLabel  = 13
)

// RenderBreakdown renders every row of the step table and returns, for each
// row, the line it starts on so a viewport can centre a given step.
func RenderBreakdown(rows []derive.StepRow, current, width int) (string, []int) {
	var b strings.Builder
	offsets := make([]int, len(rows))
	line := 0
	for i, row := range rows {
		offsets[i] = line
		rendered := RenderBreakdownRow(row, row.Step == current, width)
		line += strings.Count(rendered, "\n")
		b.WriteString(rendered)
	}
	return b.String(), offsets
}

// RenderBreakdownRow renders one step: a heading, the active attachments
// tagged where they start or end, and one M:/D: line per IPR event.
func RenderBreakdownRow(row derive.StepRow, current bool, width int) string {
	var b strings.Builder
	if current {
		b.WriteString(StyleHeader.Render(fmt.Sprintf("▶ STEP %d", row.Step)) + "\n")
	} else {
		b.WriteString("  " + Bold(fmt.Sprintf("Step %d", row.Step)) + "\n")
	}

	if len(row.Attachments) == 0 && len(row.Ipr) == 0 {
		b.WriteString(breakdownIndent + Dim("no attachments or IPR") + "\n")
		return b.String()
	}

	if len(row.Attachments) > 0 {
		badges := make([]string, 0, len(row.Attachments))
		for _, a := range row.Attachments {
			badges = append(badges, AttachmentBadge(row, a))
		}
		for i, l := range wrapItems(badges, width-len(breakdownIndent)-breakdownLabel) {
			b.WriteString(breakdownIndent + rowLabel("Attachments", i == 0) + l + "\n")
		}
	}

	for i, e := range row.Ipr {
		b.WriteString(breakdownIndent + rowLabel("IPR", i == 0) + IprLine(e) + "\n")
	}
	return b.String()
}

// AttachmentBadge renders a tooth number tagged with start and/or end when
// the attachment is bonded or removed at the row's step.
func AttachmentBadge(row derive.StepRow, a domain.Attachment) string {
	s := StyleBlue.Render(a.Tooth)
	switch {
	case row.Starts(a) && row.Ends(a):
		s += " " + StyleGreen.Render("start") + Dim("/") + StyleRed.Render("end")
	case row.Starts(a):
		s += " " + StyleGreen.Render("start")
	case row.Ends(a):
		s += " " + StyleRed.Render("end")
	}
	return s
}

// IprLine renders "16  M: 0.20  D: 0.10", omitting a zero surface.
func IprLine(e domain.IprEvent) string {
	s := StyleRed.Render(e.Tooth)
	if e.Mesial > 0 {
		s += "  M: " + Millimeters(e.Mesial)
	}
	if e.Distal > 0 {
		s += "  D: " + Millimeters(e.Distal)
	}
	return s
}

func rowLabel(label string, first bool) string {
	if !first {
		label = ""
	}
	return Dim(fmt.Sprintf("%-*s", breakdownLabel, label))
}

// wrapItems joins items with two spaces, breaking lines before width.
// A non-positive width disables wrapping.
func wrapItems(items []string, width int) []string {
	const sep = "  "
	var lines []string
	var cur strings.Builder
	curWidth := 0
	for _, item := range items {
		w := lipgloss.Width(item)
		if curWidth > 0 && width > 0 && curWidth+len(sep)+w > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curWidth = 0
		}
		if curWidth > 0 {
			cur.WriteString(sep)
			curWidth += len(sep)
		}
		cur.WriteString(item)
		curWidth += w
	}
	if curWidth > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
