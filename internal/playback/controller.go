// Package playback owns the current step of a plan and the play/pause state
// machine that advances it on a fixed cadence.
package playback

import (
	"time"

	"github.com/alexanderramin/orthoplan/internal/domain"
)

// Interval is the time between two automatic step advances.
const Interval = 600 * time.Millisecond

// MinScrubberRange is the smallest step range the scrubber offers, so even an
// empty plan has something to scrub through.
const MinScrubberRange = 40

// State is the playback state.
type State int

const (
	Paused State = iota
	Playing
)

func (s State) String() string {
	if s == Playing {
		return "playing"
	}
	return "paused"
}

// MaxStep returns the last step reachable by playback for p.
func MaxStep(p *domain.Plan) int {
	if p == nil {
		return 0
	}
	return max(p.UpperEndIn, p.LowerEndIn, MinScrubberRange)
}

// Controller holds the plan being viewed, the current step and the playback
// state. It is the only writer of either value.
//
// Ticks are matched against a generation counter. Every transition out of
// Playing, and every plan replacement, starts a new generation, so a tick
// scheduled before the transition is ignored when it arrives.
type Controller struct {
	plan  *domain.Plan
	step  int
	state State
	gen   uint64
}

// New returns a paused controller at step 0.
func New(p *domain.Plan) *Controller {
	return &Controller{plan: p}
}

func (c *Controller) Plan() *domain.Plan { return c.plan }
func (c *Controller) Step() int          { return c.step }
func (c *Controller) State() State       { return c.state }
func (c *Controller) Playing() bool      { return c.state == Playing }
func (c *Controller) MaxStep() int       { return MaxStep(c.plan) }

// Generation identifies the current tick schedule.
func (c *Controller) Generation() uint64 { return c.gen }

// Play starts playback, rewinding to 0 first when already at the end. It
// returns true when a new tick schedule must be started and false when
// playback was already running.
func (c *Controller) Play() bool {
	if c.state == Playing {
		return false
	}
	if c.step >= c.MaxStep() {
		c.step = 0
	}
	c.state = Playing
	c.gen++
	return true
}

// Pause stops playback. The step is left where it is.
func (c *Controller) Pause() {
	if c.state == Playing {
		c.state = Paused
		c.gen++
	}
}

// Toggle pauses when playing and plays otherwise. It returns true when a new
// tick schedule must be started.
func (c *Controller) Toggle() bool {
	if c.state == Playing {
		c.Pause()
		return false
	}
	return c.Play()
}

// Tick advances one step for the tick schedule gen. It returns true when the
// next tick should be scheduled. Ticks from an older generation, or arriving
// while paused, change nothing.
func (c *Controller) Tick(gen uint64) bool {
	if gen != c.gen || c.state != Playing {
		return false
	}
	if c.step+1 > c.MaxStep() {
		c.step = c.MaxStep()
		c.Pause()
		return false
	}
	// Reaching MaxStep keeps Playing; the following tick pauses.
	c.step++
	return true
}

// Seek pauses playback and moves to step, clamped to [0, MaxStep].
func (c *Controller) Seek(step int) {
	c.Pause()
	c.step = max(0, min(step, c.MaxStep()))
}

// Prev seeks one step back.
func (c *Controller) Prev() { c.Seek(c.step - 1) }

// Next seeks one step forward.
func (c *Controller) Next() { c.Seek(c.step + 1) }

// AddStep appends a blank step at the end by raising both arch bounds to
// MaxStep+1, then seeks to it.
func (c *Controller) AddStep() {
	if c.plan == nil {
		return
	}
	c.Update(domain.ExtendTo(c.plan, c.MaxStep()+1))
	c.Seek(c.MaxStep())
}

// Replace installs a newly ingested plan: playback stops and the step
// returns to 0.
func (c *Controller) Replace(p *domain.Plan) {
	c.plan = p
	c.step = 0
	c.state = Paused
	c.gen++
}

// Update installs an edited version of the current plan. Playback stops and
// the step is kept, clamped to the new range.
func (c *Controller) Update(p *domain.Plan) {
	c.plan = p
	c.state = Paused
	c.gen++
	c.step = max(0, min(c.step, c.MaxStep()))
}

// Label describes the position of the current step in the treatment.
func (c *Controller) Label() string {
	switch c.step {
	case 0:
		return "Start"
	case c.MaxStep():
		return "Finish"
	default:
		return "Treatment in Progress"
	}
}
