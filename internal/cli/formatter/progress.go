package formatter

import "strings"

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderCompactBar renders a bare bar with no brackets or percentage.
// Dimmed bars are used for inactive content.
func RenderCompactBar(pct float64, width int, dim bool) string {
	pct = clampPct(pct)
	if width < 2 {
		width = 2
	}
	bar := blocks(pct, width)
	if dim {
		return StyleDim.Render(bar)
	}
	return StyleBlue.Render(bar)
}

func blocks(pct float64, width int) string {
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}

func clampPct(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}
