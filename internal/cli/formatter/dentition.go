package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/orthoplan/internal/derive"
	"github.com/alexanderramin/orthoplan/internal/domain"
)

// Each tooth occupies a fixed-width cell; contacts between neighbours are a
// single character wide.
const (
	cellWidth     = 4
	halfArchWidth = 8*cellWidth + 7
)

type contact struct{ first, second string }

// RenderDentition draws both arches at step. Upper teeth sit above the
// divider with their state glyphs on top; lower teeth below with glyphs
// underneath. selected may be empty.
func RenderDentition(p *domain.Plan, step int, selected string) string {
	marked := make(map[contact]bool)
	for _, g := range derive.ArchGaps(p, step) {
		marked[contact{g.First, g.Second}] = true
	}

	upperGlyphs, upperTeeth := archRows(p, step, selected, domain.UpperRight, domain.UpperMidline, domain.UpperLeft, marked)
	lowerGlyphs, lowerTeeth := archRows(p, step, selected, domain.LowerRight, domain.LowerMidline, domain.LowerLeft, marked)

	lines := []string{
		quadrantLabels(domain.UpperRight, domain.UpperLeft),
		upperGlyphs,
		upperTeeth,
		StyleDim.Render(strings.Repeat("─", halfArchWidth) + "┼" + strings.Repeat("─", halfArchWidth)),
		lowerTeeth,
		lowerGlyphs,
		quadrantLabels(domain.LowerRight, domain.LowerLeft),
	}
	return strings.Join(lines, "\n")
}

func archRows(p *domain.Plan, step int, selected string, right domain.Quadrant, mid domain.Midline, left domain.Quadrant, marked map[contact]bool) (string, string) {
	var glyphs, teeth strings.Builder

	writeQuadrant := func(q domain.Quadrant) {
		for i, tooth := range q.Teeth {
			if i > 0 {
				glyphs.WriteString(" ")
				teeth.WriteString(contactMark(marked[contact{q.Teeth[i-1], tooth}]))
			}
			state := derive.ToothAt(p, step, tooth).State
			glyphs.WriteString(ToothStyle(state).Render(" " + ToothGlyph(state) + "  "))
			teeth.WriteString(toothCell(tooth, state, tooth == selected))
		}
	}

	writeQuadrant(right)
	glyphs.WriteString(StyleDim.Render("│"))
	teeth.WriteString(midlineMark(marked[contact{mid.Right, mid.Left}]))
	writeQuadrant(left)

	return glyphs.String(), teeth.String()
}

func toothCell(tooth string, state derive.ToothState, selected bool) string {
	style := ToothStyle(state)
	if selected {
		return style.Inherit(StyleSelected).Render("[" + tooth + "]")
	}
	return style.Render(" " + tooth + " ")
}

func contactMark(visible bool) string {
	if visible {
		return StyleRed.Render("¦")
	}
	return " "
}

func midlineMark(visible bool) string {
	if visible {
		return StyleRed.Bold(true).Render("┃")
	}
	return StyleDim.Render("│")
}

func quadrantLabels(right, left domain.Quadrant) string {
	return StyleDim.Render(fmt.Sprintf("%-*s%s", halfArchWidth+1, right.Name, left.Name))
}

// RenderGapList lists every visible interproximal marker at step with its
// amount, in map order.
func RenderGapList(p *domain.Plan, step int) string {
	gaps := derive.ArchGaps(p, step)
	if len(gaps) == 0 {
		return Dim("No IPR between teeth at this step.")
	}
	parts := make([]string, 0, len(gaps))
	for _, g := range gaps {
		label := g.First + "|" + g.Second
		if g.Midline {
			label += " midline"
		}
		parts = append(parts, StyleRed.Render(label)+" "+Millimeters(g.Amount))
	}
	return Dim("IPR between teeth: ") + strings.Join(parts, "  ")
}

// RenderLegend explains the map glyphs.
func RenderLegend() string {
	states := []derive.ToothState{
		derive.StateIprAction,
		derive.StateAttachmentWithHistory,
		derive.StateAttachment,
		derive.StateHistory,
	}
	parts := make([]string, 0, len(states)+2)
	for _, s := range states {
		parts = append(parts, StateIndicator(s))
	}
	parts = append(parts, StyleRed.Render("¦")+Dim(" IPR between teeth"), Bold("[ ]")+Dim(" selected"))
	return strings.Join(parts, "  ")
}
