package importer

import (
	"github.com/alexanderramin/orthoplan/internal/domain"
)

// ZeroBased shifts a plan retrieved with 1-based step numbering to the
// 0-based numbering used everywhere else. Every step-like field is reduced by
// one and floored at zero. The input is not modified.
//
// Apply it exactly once, to remotely retrieved documents only.
func ZeroBased(p *domain.Plan) *domain.Plan {
	next := p.Clone()

	next.UpperEndIn = shift(next.UpperEndIn)
	next.LowerEndIn = shift(next.LowerEndIn)
	next.UpperStartFrom = shift(next.UpperStartFrom)
	next.LowerStartFrom = shift(next.LowerStartFrom)

	for i := range next.Attachments {
		next.Attachments[i].BeginTime = shift(next.Attachments[i].BeginTime)
		next.Attachments[i].EndTime = shift(next.Attachments[i].EndTime)
	}
	for i := range next.PrecisionCuts {
		next.PrecisionCuts[i].BeginTime = shift(next.PrecisionCuts[i].BeginTime)
		next.PrecisionCuts[i].EndTime = shift(next.PrecisionCuts[i].EndTime)
	}
	for i := range next.IprEvents {
		next.IprEvents[i].Step = shift(next.IprEvents[i].Step)
	}
	for i := range next.Extractions {
		next.Extractions[i].Step = shift(next.Extractions[i].Step)
	}
	for i := range next.Positioners.Upper {
		next.Positioners.Upper[i] = shift(next.Positioners.Upper[i])
	}
	for i := range next.Positioners.Lower {
		next.Positioners.Lower[i] = shift(next.Positioners.Lower[i])
	}
	return next
}

func shift(step int) int {
	return max(step-1, 0)
}
