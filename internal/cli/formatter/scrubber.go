package formatter

import (
	"fmt"
	"strconv"
	"strings"
)

// RenderScrubber draws the playback status line, the position bar and the
// 0 / middle / last step labels under it.
func RenderScrubber(step, maxStep int, label string, playing bool, width int) string {
	barWidth := max(width-2, 10)
	pct := 0.0
	if maxStep > 0 {
		pct = float64(step) / float64(maxStep)
	}

	icon := Dim("❚❚ paused")
	if playing {
		icon = StyleGreen.Render("▶ playing")
	}
	head := fmt.Sprintf("%s  %s  %s", icon, Bold(fmt.Sprintf("Step %d / %d", step, maxStep)), StyleHeader.Render(label))

	return head + "\n" + RenderCompactBar(pct, barWidth, false) + "\n" + Dim(ScrubberTicks(maxStep, barWidth))
}

// ScrubberTicks places "0", maxStep/2 and maxStep at the start, middle and
// end of a line of the given width.
func ScrubberTicks(maxStep, width int) string {
	lo, mid, hi := "0", strconv.Itoa(maxStep/2), strconv.Itoa(maxStep)
	midPos := width/2 - len(mid)/2
	left := max(midPos-len(lo), 1)
	right := max(width-len(hi)-(len(lo)+left+len(mid)), 1)
	return lo + strings.Repeat(" ", left) + mid + strings.Repeat(" ", right) + hi
}
