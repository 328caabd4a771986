package domain

import "encoding/json"

// Plan is an aligner setup: global step bounds, summary counts and the
// per-tooth attachment, precision-cut, IPR and extraction collections.
// The JSON field names follow the exchanged document schema.
type Plan struct {
	ID             string          `json:"id" validate:"required"`
	SetupName      string          `json:"setupName"`
	UpperEndIn     int             `json:"upperEndIn" validate:"gte=0"`
	LowerEndIn     int             `json:"lowerEndIn" validate:"gte=0"`
	UpperStartFrom int             `json:"upperStartFrom" validate:"gte=0"`
	LowerStartFrom int             `json:"lowerStartFrom" validate:"gte=0"`
	Version        json.RawMessage `json:"version,omitempty"`
	MaxAligners    int             `json:"maxAligners"`
	ManAligners    int             `json:"manAligners"`
	AttachCount    int             `json:"attachCount"`
	BracketCount   int             `json:"bracketCount"`
	MaxIpr         float64         `json:"maxIpr"`
	ManIpr         float64         `json:"manIpr"`

	Attachments   []Attachment   `json:"attachList" validate:"dive"`
	PrecisionCuts []PrecisionCut `json:"precisionCutList" validate:"dive"`
	IprEvents     []IprEvent     `json:"iprList" validate:"dive"`
	Extractions   []Extraction   `json:"extractList" validate:"dive"`
	Positioners   Positioners    `json:"positionersList"`
}

// Attachment is a bonded fixture on a tooth, active from BeginTime through
// EndTime inclusive.
type Attachment struct {
	Name      string `json:"name"`
	Tooth     string `json:"tooth" validate:"required"`
	BeginTime int    `json:"beginTime"`
	EndTime   int    `json:"endTime"`
	GUID      string `json:"attachGuid"`
}

// Active reports whether the attachment is bonded at step.
func (a Attachment) Active(step int) bool {
	return a.BeginTime <= step && step <= a.EndTime
}

// IprEvent is an interproximal reduction performed on one tooth at a single step.
type IprEvent struct {
	Tooth  string  `json:"tooth" validate:"required"`
	Step   int     `json:"step" validate:"gte=0"`
	Mesial float64 `json:"mesialIpr" validate:"gte=0"`
	Distal float64 `json:"distalIpr" validate:"gte=0"`
}

// Total returns mesial plus distal reduction in millimeters.
func (e IprEvent) Total() float64 {
	return e.Mesial + e.Distal
}

// Zero reports whether both magnitudes are zero.
func (e IprEvent) Zero() bool {
	return e.Mesial == 0 && e.Distal == 0
}

type PrecisionCut struct {
	Name       string `json:"name"`
	Tooth      string `json:"tooth"`
	BeginTime  int    `json:"beginTime"`
	EndTime    int    `json:"endTime"`
	IsMaxTooth bool   `json:"isMaxTooth"`
	IsButton   bool   `json:"isButton"`
	IsLingual  bool   `json:"isLingual"`
}

type Extraction struct {
	Tooth string `json:"tooth"`
	Step  int    `json:"step"`
}

// Positioners lists the positioner steps per arch.
type Positioners struct {
	Upper []int `json:"upper"`
	Lower []int `json:"lower"`
}

// DisplayID returns the first segment of the plan id (the part before the
// first dash), or the whole id when it has no dash.
func (p *Plan) DisplayID() string {
	for i, r := range p.ID {
		if r == '-' {
			return p.ID[:i]
		}
	}
	return p.ID
}

// MaxBound returns the last step any part of the plan refers to: the larger
// arch bound, the latest attachment end and the latest IPR step. Never negative.
func (p *Plan) MaxBound() int {
	bound := max(p.UpperEndIn, p.LowerEndIn, 0)
	for _, a := range p.Attachments {
		bound = max(bound, a.EndTime)
	}
	for _, e := range p.IprEvents {
		bound = max(bound, e.Step)
	}
	return bound
}

// Normalize replaces nil collections with empty ones so an exported plan
// always carries arrays rather than nulls.
func (p *Plan) Normalize() {
	if p.Attachments == nil {
		p.Attachments = []Attachment{}
	}
	if p.PrecisionCuts == nil {
		p.PrecisionCuts = []PrecisionCut{}
	}
	if p.IprEvents == nil {
		p.IprEvents = []IprEvent{}
	}
	if p.Extractions == nil {
		p.Extractions = []Extraction{}
	}
	if p.Positioners.Upper == nil {
		p.Positioners.Upper = []int{}
	}
	if p.Positioners.Lower == nil {
		p.Positioners.Lower = []int{}
	}
}

// Clone returns a deep copy. Edits always clone before writing so a plan
// value handed to a view is never mutated underneath it.
func (p *Plan) Clone() *Plan {
	c := *p
	c.Version = cloneSlice(p.Version)
	c.Attachments = cloneSlice(p.Attachments)
	c.PrecisionCuts = cloneSlice(p.PrecisionCuts)
	c.IprEvents = cloneSlice(p.IprEvents)
	c.Extractions = cloneSlice(p.Extractions)
	c.Positioners = Positioners{
		Upper: cloneSlice(p.Positioners.Upper),
		Lower: cloneSlice(p.Positioners.Lower),
	}
	return &c
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
