package derive

import (
	"github.com/alexanderramin/orthoplan/internal/domain"
)

// Summary feeds the stats surface.
type Summary struct {
	UpperAligners int
	LowerAligners int
	TotalIpr      float64
	IprTeeth      int
	Attachments   int
	ShortID       string
}

// Summarize computes plan-wide statistics independent of the current step.
func Summarize(p *domain.Plan) Summary {
	s := Summary{
		UpperAligners: p.UpperEndIn,
		LowerAligners: p.LowerEndIn,
		Attachments:   len(p.Attachments),
		ShortID:       p.DisplayID(),
	}
	teeth := make(map[string]bool)
	for _, e := range p.IprEvents {
		s.TotalIpr += e.Total()
		if !e.Zero() {
			teeth[e.Tooth] = true
		}
	}
	s.IprTeeth = len(teeth)
	return s
}
