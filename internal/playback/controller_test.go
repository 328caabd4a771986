package playback

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plan(upper, lower int) *domain.Plan {
	return &domain.Plan{ID: "p", UpperEndIn: upper, LowerEndIn: lower}
}

func TestMaxStep_FloorsAtScrubberRange(t *testing.T) {
	assert.Equal(t, 40, MaxStep(plan(0, 0)))
	assert.Equal(t, 40, MaxStep(plan(15, 20)))
	assert.Equal(t, 46, MaxStep(plan(15, 46)))
	assert.Equal(t, 0, MaxStep(nil))
}

func TestPlay_IsIdempotent(t *testing.T) {
	c := New(plan(15, 46))
	require.True(t, c.Play())
	gen := c.Generation()

	assert.False(t, c.Play())
	assert.Equal(t, gen, c.Generation(), "second Play must not start another schedule")
	assert.True(t, c.Playing())
}

func TestPlay_AtEndRewinds(t *testing.T) {
	c := New(plan(15, 46))
	c.Seek(46)
	require.True(t, c.Play())
	assert.Equal(t, 0, c.Step())
}

func TestTick_AdvancesThenPausesAtEnd(t *testing.T) {
	c := New(plan(0, 41))
	c.Seek(39)
	c.Play()
	gen := c.Generation()

	assert.True(t, c.Tick(gen))
	assert.Equal(t, 40, c.Step())
	assert.True(t, c.Tick(gen))
	assert.Equal(t, 41, c.Step())
	assert.True(t, c.Playing())

	assert.False(t, c.Tick(gen))
	assert.Equal(t, 41, c.Step())
	assert.Equal(t, Paused, c.State())
}

func TestTick_StaleGenerationIgnored(t *testing.T) {
	c := New(plan(15, 46))
	c.Play()
	stale := c.Generation()
	c.Pause()
	c.Play()

	assert.False(t, c.Tick(stale))
	assert.Equal(t, 0, c.Step())
	assert.True(t, c.Tick(c.Generation()))
	assert.Equal(t, 1, c.Step())
}

func TestTick_WhilePausedIgnored(t *testing.T) {
	c := New(plan(15, 46))
	assert.False(t, c.Tick(c.Generation()))
	assert.Equal(t, 0, c.Step())
}

func TestSeek_ClampsAndPauses(t *testing.T) {
	c := New(plan(15, 46))
	c.Play()
	gen := c.Generation()

	c.Seek(100)
	assert.Equal(t, 46, c.Step())
	assert.Equal(t, Paused, c.State())
	assert.False(t, c.Tick(gen))

	c.Seek(-3)
	assert.Equal(t, 0, c.Step())

	c.Next()
	c.Next()
	c.Prev()
	assert.Equal(t, 1, c.Step())
}

func TestAddStep_RaisesBothBoundsAndSeeks(t *testing.T) {
	original := plan(15, 46)
	c := New(original)
	c.AddStep()

	assert.Equal(t, 47, c.Plan().UpperEndIn)
	assert.Equal(t, 47, c.Plan().LowerEndIn)
	assert.Equal(t, 47, c.Step())
	assert.Equal(t, 47, c.MaxStep())
	assert.Equal(t, 15, original.UpperEndIn, "previous plan value must be untouched")
}

func TestAddStep_OnShortPlanUsesScrubberFloor(t *testing.T) {
	c := New(plan(5, 3))
	c.AddStep()
	assert.Equal(t, 41, c.Plan().UpperEndIn)
	assert.Equal(t, 41, c.Step())
}

func TestReplace_ResetsAndCancels(t *testing.T) {
	c := New(plan(15, 46))
	c.Seek(10)
	c.Play()
	gen := c.Generation()

	c.Replace(plan(10, 10))
	assert.Equal(t, 0, c.Step())
	assert.Equal(t, Paused, c.State())
	assert.False(t, c.Tick(gen))
}

func TestUpdate_KeepsStepAndCancels(t *testing.T) {
	c := New(plan(15, 60))
	c.Seek(55)
	c.Play()
	gen := c.Generation()

	c.Update(plan(15, 46))
	assert.Equal(t, 46, c.Step(), "step is clamped to the new range")
	assert.False(t, c.Playing())
	assert.False(t, c.Tick(gen))
}

func TestLabel(t *testing.T) {
	c := New(plan(15, 46))
	assert.Equal(t, "Start", c.Label())
	c.Seek(10)
	assert.Equal(t, "Treatment in Progress", c.Label())
	c.Seek(46)
	assert.Equal(t, "Finish", c.Label())
}

func TestRun_PlaysToEnd(t *testing.T) {
	c := New(plan(0, 0))
	c.Seek(37)

	var seen []int
	err := Run(context.Background(), c, time.Millisecond, func(c *Controller) {
		seen = append(seen, c.Step())
	})
	require.NoError(t, err)
	assert.Equal(t, []int{37, 38, 39, 40}, seen)
	assert.Equal(t, Paused, c.State())
}

func TestRun_CancelStopsPlayback(t *testing.T) {
	c := New(plan(0, 0))
	ctx, cancel := context.WithCancel(context.Background())

	err := Run(ctx, c, time.Hour, func(*Controller) { cancel() })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Paused, c.State())
	assert.Equal(t, 0, c.Step())
}
