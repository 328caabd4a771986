package derive

import (
	"github.com/alexanderramin/orthoplan/internal/domain"
)

func inRange(p *domain.Plan, step int) bool {
	return step >= 0 && step <= p.MaxBound()
}

// ActiveAttachments returns the attachments on tooth whose inclusive
// [BeginTime, EndTime] window contains step.
func ActiveAttachments(p *domain.Plan, step int, tooth string) []domain.Attachment {
	if !inRange(p, step) {
		return nil
	}
	var out []domain.Attachment
	for _, a := range p.Attachments {
		if a.Tooth == tooth && a.Active(step) {
			out = append(out, a)
		}
	}
	return out
}

// CurrentStepIpr returns the IPR events on tooth that happen exactly at step.
func CurrentStepIpr(p *domain.Plan, step int, tooth string) []domain.IprEvent {
	if !inRange(p, step) {
		return nil
	}
	var out []domain.IprEvent
	for _, e := range p.IprEvents {
		if e.Tooth == tooth && e.Step == step {
			out = append(out, e)
		}
	}
	return out
}

// AccumulatedIpr returns the total reduction on tooth over every event at or
// before step. It is non-decreasing in step; negative steps yield zero.
func AccumulatedIpr(p *domain.Plan, step int, tooth string) float64 {
	var total float64
	for _, e := range p.IprEvents {
		if e.Tooth == tooth && e.Step <= step && e.Step >= 0 {
			total += e.Total()
		}
	}
	return total
}

// History returns every IPR event on tooth ordered by step.
func History(p *domain.Plan, tooth string) []domain.IprEvent {
	var out []domain.IprEvent
	for _, e := range p.IprEvents {
		if e.Tooth == tooth {
			out = append(out, e)
		}
	}
	sortStable(out, func(a, b domain.IprEvent) bool { return a.Step < b.Step })
	return out
}

// AttachmentsOn returns every attachment on tooth regardless of step, in
// plan order.
func AttachmentsOn(p *domain.Plan, tooth string) []domain.Attachment {
	var out []domain.Attachment
	for _, a := range p.Attachments {
		if a.Tooth == tooth {
			out = append(out, a)
		}
	}
	return out
}
