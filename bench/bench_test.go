package bench_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"slidejewels/bench"
)

// fakeClock is a manually-advanced Clock, so budget tests never sleep.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func TestStopwatch_NoDeadlineNeverExpires(t *testing.T) {
	c := &fakeClock{now: time.Unix(0, 0)}
	sw := bench.NewStopwatch(c, 0)

	assert.False(t, sw.Expired())
	assert.Equal(t, time.Duration(0), sw.Remaining())

	c.advance(time.Hour)
	assert.False(t, sw.Expired())
}

func TestStopwatch_ExpiresAfterBudget(t *testing.T) {
	c := &fakeClock{now: time.Unix(0, 0)}
	sw := bench.NewStopwatch(c, 10*time.Second)

	assert.False(t, sw.Expired())
	assert.InDelta(t, float64(10*time.Second), float64(sw.Remaining()), float64(time.Millisecond))

	c.advance(5 * time.Second)
	assert.False(t, sw.Expired())

	c.advance(5 * time.Second)
	assert.True(t, sw.Expired())
	assert.True(t, sw.Remaining() <= 0)
}

func TestStopwatch_NegativeBudgetMeansNoDeadline(t *testing.T) {
	c := &fakeClock{now: time.Unix(0, 0)}
	sw := bench.NewStopwatch(c, -time.Second)
	assert.False(t, sw.Expired())
}

func TestNewStopwatch_NilClockFallsBackToReal(t *testing.T) {
	sw := bench.NewStopwatch(nil, time.Hour)
	assert.False(t, sw.Expired())
}
