package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/orthoplan/internal/derive"
)

// RenderStats renders the one-line plan summary.
func RenderStats(s derive.Summary) string {
	id := s.ShortID
	if id == "" {
		id = "--"
	}
	parts := []string{
		Dim("Aligners ") + Bold(fmt.Sprintf("U %d / L %d", s.UpperAligners, s.LowerAligners)),
		Dim("IPR ") + Bold(Millimeters(s.TotalIpr)+" mm") + Dim(fmt.Sprintf(" on %d teeth", s.IprTeeth)),
		Dim("Attachments ") + Bold(strconv.Itoa(s.Attachments)),
		Dim("Plan ") + StylePurple.Render(id),
	}
	return strings.Join(parts, Dim("  ·  "))
}
