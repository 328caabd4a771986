package derive

import (
	"math"

	"github.com/alexanderramin/orthoplan/internal/domain"
)

// StepRow is one row of the per-step breakdown: attachments active at Step
// and IPR performed exactly at Step, each ordered by tooth number.
type StepRow struct {
	Step        int
	Attachments []domain.Attachment
	Ipr         []domain.IprEvent
}

// Starts reports whether a begins at this row's step.
func (r StepRow) Starts(a domain.Attachment) bool { return a.BeginTime == r.Step }

// Ends reports whether a ends at this row's step.
func (r StepRow) Ends(a domain.Attachment) bool { return a.EndTime == r.Step }

// StepTable returns one row for every step from 0 through the plan's bound.
// It is rebuilt from scratch on every plan change.
func StepTable(p *domain.Plan) []StepRow {
	bound := p.MaxBound()
	rows := make([]StepRow, 0, bound+1)
	for step := 0; step <= bound; step++ {
		rows = append(rows, RowAt(p, step))
	}
	return rows
}

// RowAt returns the breakdown row for a single step.
func RowAt(p *domain.Plan, step int) StepRow {
	row := StepRow{Step: step}
	if !inRange(p, step) {
		return row
	}
	for _, a := range p.Attachments {
		if a.Active(step) {
			row.Attachments = append(row.Attachments, a)
		}
	}
	for _, e := range p.IprEvents {
		if e.Step == step {
			row.Ipr = append(row.Ipr, e)
		}
	}
	sortStable(row.Attachments, byToothAttachment)
	sortStable(row.Ipr, byToothIpr)
	return row
}

// StepTotal is the combined IPR of all teeth at one step.
type StepTotal struct {
	Step   int
	Amount float64
}

// IprTimeline returns total IPR per step from 1 through the larger of the
// arch bounds and the latest IPR step, rounded to hundredths. Events at step
// 0 fall outside the chart. It returns nil when every bucket is zero.
func IprTimeline(p *domain.Plan) []StepTotal {
	bound := max(p.UpperEndIn, p.LowerEndIn)
	for _, e := range p.IprEvents {
		bound = max(bound, e.Step)
	}
	if bound < 1 {
		return nil
	}

	buckets := make([]float64, bound+1)
	for _, e := range p.IprEvents {
		if e.Step >= 1 {
			buckets[e.Step] += e.Total()
		}
	}

	out := make([]StepTotal, 0, bound)
	nonZero := false
	for step := 1; step <= bound; step++ {
		amount := math.Round(buckets[step]*100) / 100
		if amount != 0 {
			nonZero = true
		}
		out = append(out, StepTotal{Step: step, Amount: amount})
	}
	if !nonZero {
		return nil
	}
	return out
}
