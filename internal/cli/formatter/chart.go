package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/orthoplan/internal/derive"
)

const (
	chartMinBar = 10
	chartMaxBar = 40
)

// RenderTimeline draws one horizontal bar per step that has IPR, scaled to
// the largest step total. The current step is marked.
func RenderTimeline(totals []derive.StepTotal, current, width int) string {
	peak := 0.0
	for _, t := range totals {
		peak = math.Max(peak, t.Amount)
	}
	if peak == 0 {
		return Dim("No IPR in this plan.")
	}

	barWidth := min(max(width-16, chartMinBar), chartMaxBar)

	var b strings.Builder
	for _, t := range totals {
		if t.Amount == 0 {
			continue
		}
		n := max(int(math.Round(t.Amount/peak*float64(barWidth))), 1)
		style, marker := StyleYellow, "  "
		if t.Step == current {
			style, marker = StyleRed.Bold(true), StyleHeader.Render("▶ ")
		}
		b.WriteString(marker + Dim(fmt.Sprintf("%3d │", t.Step)) + style.Render(strings.Repeat(filledBlock, n)) + " " + Millimeters(t.Amount) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
