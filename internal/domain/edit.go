package domain

import (
	"math"
	"strconv"
	"strings"
)

// The functions in this file never modify their input. Each returns a new
// plan, or the input pointer itself when the edit is rejected or has no
// effect, so callers can detect a no-op with ==.

// DefaultAttachmentName is the name given to attachments created in the editor.
const DefaultAttachmentName = "New_Att"

// AddAttachment appends an attachment on tooth starting at step and running
// to the later of the two arch bounds.
func AddAttachment(p *Plan, tooth string, step int, guid string) *Plan {
	next := p.Clone()
	next.Attachments = append(next.Attachments, Attachment{
		Name:      DefaultAttachmentName,
		Tooth:     tooth,
		BeginTime: step,
		EndTime:   max(p.UpperEndIn, p.LowerEndIn),
		GUID:      guid,
	})
	return next
}

// EditAttachment sets the begin or end step of the attachment identified by
// guid from raw user input. Input that does not parse as an integer, or is
// negative, is ignored.
func EditAttachment(p *Plan, guid string, field AttachmentField, raw string) *Plan {
	v, ok := parseStep(raw)
	if !ok {
		return p
	}
	idx := attachmentIndex(p, guid)
	if idx < 0 {
		return p
	}
	next := p.Clone()
	switch field {
	case FieldBeginTime:
		next.Attachments[idx].BeginTime = v
	case FieldEndTime:
		next.Attachments[idx].EndTime = v
	default:
		return p
	}
	return next
}

// DeleteAttachment removes the attachment identified by guid.
func DeleteAttachment(p *Plan, guid string) *Plan {
	idx := attachmentIndex(p, guid)
	if idx < 0 {
		return p
	}
	next := p.Clone()
	next.Attachments = append(next.Attachments[:idx], next.Attachments[idx+1:]...)
	return next
}

// SetIpr sets one surface of the IPR event on tooth at step from raw user
// input. An event whose magnitudes both become zero is removed; a missing
// event is created only for a positive value. Unparsable or negative input
// is ignored.
func SetIpr(p *Plan, tooth string, step int, surface Surface, raw string) *Plan {
	if surface != SurfaceMesial && surface != SurfaceDistal {
		return p
	}
	v, ok := parseMillimeters(raw)
	if !ok {
		return p
	}

	idx := -1
	for i, e := range p.IprEvents {
		if e.Tooth == tooth && e.Step == step {
			idx = i
			break
		}
	}

	if idx < 0 {
		if v <= 0 {
			return p
		}
		ev := IprEvent{Tooth: tooth, Step: step}
		setSurface(&ev, surface, v)
		next := p.Clone()
		next.IprEvents = append(next.IprEvents, ev)
		return next
	}

	// Several events on one tooth at one step are shown summed, so they are
	// merged into the first before the edit applies.
	next := p.Clone()
	merged := next.IprEvents[idx]
	kept := next.IprEvents[:0]
	for i, e := range next.IprEvents {
		switch {
		case i == idx:
			kept = append(kept, e)
		case e.Tooth == tooth && e.Step == step:
			merged.Mesial += e.Mesial
			merged.Distal += e.Distal
		default:
			kept = append(kept, e)
		}
	}
	next.IprEvents = kept

	setSurface(&merged, surface, v)
	if merged.Zero() {
		next.IprEvents = append(next.IprEvents[:idx], next.IprEvents[idx+1:]...)
	} else {
		next.IprEvents[idx] = merged
	}
	return next
}

// ExtendTo raises both arch bounds to bound.
func ExtendTo(p *Plan, bound int) *Plan {
	next := p.Clone()
	next.UpperEndIn = bound
	next.LowerEndIn = bound
	return next
}

func setSurface(e *IprEvent, s Surface, v float64) {
	switch s {
	case SurfaceMesial:
		e.Mesial = v
	case SurfaceDistal:
		e.Distal = v
	}
}

func attachmentIndex(p *Plan, guid string) int {
	for i, a := range p.Attachments {
		if a.GUID == guid {
			return i
		}
	}
	return -1
}

func parseStep(raw string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func parseMillimeters(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}
