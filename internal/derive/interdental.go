package derive

import (
	"github.com/alexanderramin/orthoplan/internal/domain"
)

// MarkerThreshold is the smallest interproximal amount, in millimeters,
// that produces a visible marker. Anything at or below it is float noise.
const MarkerThreshold = 0.01

// Reduction is the mesial and distal IPR of one tooth at one step.
type Reduction struct {
	Mesial float64
	Distal float64
}

// IprAt returns the exact-step reduction of every tooth that has IPR at step.
// Several events for the same tooth and step are summed.
func IprAt(p *domain.Plan, step int) map[string]Reduction {
	out := make(map[string]Reduction)
	if !inRange(p, step) {
		return out
	}
	for _, e := range p.IprEvents {
		if e.Step != step {
			continue
		}
		r := out[e.Tooth]
		r.Mesial += e.Mesial
		r.Distal += e.Distal
		out[e.Tooth] = r
	}
	return out
}

// Between returns the reduction across the contact of two neighbouring teeth
// a and b, listed in display order for a quadrant traversed in orientation o.
// Reading distal-to-mesial the contact is a's mesial face against b's distal
// face; reading mesial-to-distal it is a's distal face against b's mesial face.
func Between(a, b Reduction, o domain.Orientation) float64 {
	if o == domain.DistalToMesial {
		return a.Mesial + b.Distal
	}
	return a.Distal + b.Mesial
}

// AcrossMidline returns the reduction between the two central incisors of an
// arch. Both facing surfaces are mesial.
func AcrossMidline(right, left Reduction) float64 {
	return right.Mesial + left.Mesial
}

// InterdentalIpr returns the exact-step reduction between neighbouring teeth
// a and b of a quadrant traversed in orientation o.
func InterdentalIpr(p *domain.Plan, step int, a, b string, o domain.Orientation) float64 {
	at := IprAt(p, step)
	return Between(at[a], at[b], o)
}

// MidlineIpr returns the exact-step reduction across midline m.
func MidlineIpr(p *domain.Plan, step int, m domain.Midline) float64 {
	at := IprAt(p, step)
	return AcrossMidline(at[m.Right], at[m.Left])
}

// Visible reports whether amount is large enough to draw a marker.
func Visible(amount float64) bool {
	return amount > MarkerThreshold
}

// QuadrantContacts returns the reduction at each of the len(q.Teeth)-1
// contacts of q, unfiltered, in display order.
func QuadrantContacts(at map[string]Reduction, q domain.Quadrant) []float64 {
	if len(q.Teeth) < 2 {
		return nil
	}
	out := make([]float64, len(q.Teeth)-1)
	for i := 0; i < len(q.Teeth)-1; i++ {
		out[i] = Between(at[q.Teeth[i]], at[q.Teeth[i+1]], q.Orientation)
	}
	return out
}

// Gap is a visible interproximal marker between two adjacent teeth.
type Gap struct {
	Arch    domain.Arch
	First   string // left tooth in display order
	Second  string // right tooth in display order
	Amount  float64
	Midline bool
}

// ArchGaps returns every visible marker at step across both arches, in
// display order: upper right, upper midline, upper left, then the same for
// the lower arch.
func ArchGaps(p *domain.Plan, step int) []Gap {
	at := IprAt(p, step)
	var gaps []Gap

	appendQuadrant := func(q domain.Quadrant) {
		for i, amount := range QuadrantContacts(at, q) {
			if Visible(amount) {
				gaps = append(gaps, Gap{Arch: q.Arch, First: q.Teeth[i], Second: q.Teeth[i+1], Amount: amount})
			}
		}
	}
	appendMidline := func(m domain.Midline) {
		if amount := AcrossMidline(at[m.Right], at[m.Left]); Visible(amount) {
			gaps = append(gaps, Gap{Arch: m.Arch, First: m.Right, Second: m.Left, Amount: amount, Midline: true})
		}
	}

	appendQuadrant(domain.UpperRight)
	appendMidline(domain.UpperMidline)
	appendQuadrant(domain.UpperLeft)
	appendQuadrant(domain.LowerRight)
	appendMidline(domain.LowerMidline)
	appendQuadrant(domain.LowerLeft)
	return gaps
}
