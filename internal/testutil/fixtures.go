package testutil

import (
	"time"

	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/google/uuid"
)

// PlanOption customizes a plan built by NewTestPlan.
type PlanOption func(*domain.Plan)

func WithPlanID(id string) PlanOption {
	return func(p *domain.Plan) {
		p.ID = id
	}
}

func WithBounds(upper, lower int) PlanOption {
	return func(p *domain.Plan) {
		p.UpperEndIn = upper
		p.LowerEndIn = lower
	}
}

func WithAttachment(tooth string, begin, end int) PlanOption {
	return func(p *domain.Plan) {
		p.Attachments = append(p.Attachments, domain.Attachment{
			Name:      "Att_1",
			Tooth:     tooth,
			BeginTime: begin,
			EndTime:   end,
			GUID:      uuid.New().String(),
		})
	}
}

func WithIpr(tooth string, step int, mesial, distal float64) PlanOption {
	return func(p *domain.Plan) {
		p.IprEvents = append(p.IprEvents, domain.IprEvent{
			Tooth:  tooth,
			Step:   step,
			Mesial: mesial,
			Distal: distal,
		})
	}
}

// NewTestPlan returns a normalized plan with a random id and 10/10 bounds.
func NewTestPlan(opts ...PlanOption) *domain.Plan {
	p := &domain.Plan{
		ID:         uuid.New().String(),
		SetupName:  "Setup",
		UpperEndIn: 10,
		LowerEndIn: 10,
	}
	for _, o := range opts {
		o(p)
	}
	p.Normalize()
	return p
}

// NewTestEntry wraps p in a library entry saved now.
func NewTestEntry(p *domain.Plan, source domain.Source) *domain.LibraryEntry {
	now := time.Now().UTC()
	return &domain.LibraryEntry{
		ID:        p.ID,
		Source:    source,
		Plan:      p,
		SavedAt:   now,
		UpdatedAt: now,
	}
}
