package derive

import (
	"github.com/alexanderramin/orthoplan/internal/domain"
)

// ToothState is the map highlight of a tooth at a step, in precedence order.
type ToothState int

const (
	StateDefault ToothState = iota
	StateHistory
	StateAttachment
	StateAttachmentWithHistory
	StateIprAction
)

func (s ToothState) String() string {
	switch s {
	case StateIprAction:
		return "ipr-action"
	case StateAttachmentWithHistory:
		return "attachment+history"
	case StateAttachment:
		return "attachment"
	case StateHistory:
		return "history"
	default:
		return "default"
	}
}

// ToothView bundles everything the map needs to draw one tooth.
type ToothView struct {
	Tooth       string
	State       ToothState
	Attachments []domain.Attachment
	Current     []domain.IprEvent
	Accumulated float64
}

// HasAttachment reports whether any attachment is active.
func (v ToothView) HasAttachment() bool { return len(v.Attachments) > 0 }

// HasAction reports whether IPR is performed at this exact step.
func (v ToothView) HasAction() bool { return len(v.Current) > 0 }

// HasHistory reports whether any reduction has been performed so far.
func (v ToothView) HasHistory() bool { return v.Accumulated > 0 }

// ToothAt derives the highlight of tooth at step. Precedence: an IPR action
// at this exact step, then an active attachment with prior reduction, then
// an active attachment, then prior reduction alone.
func ToothAt(p *domain.Plan, step int, tooth string) ToothView {
	v := ToothView{
		Tooth:       tooth,
		Attachments: ActiveAttachments(p, step, tooth),
		Current:     CurrentStepIpr(p, step, tooth),
		Accumulated: AccumulatedIpr(p, step, tooth),
	}
	switch {
	case v.HasAction():
		v.State = StateIprAction
	case v.HasAttachment() && v.HasHistory():
		v.State = StateAttachmentWithHistory
	case v.HasAttachment():
		v.State = StateAttachment
	case v.HasHistory():
		v.State = StateHistory
	}
	return v
}
