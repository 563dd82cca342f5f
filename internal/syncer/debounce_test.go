package syncer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/orderpay/schedule/internal/syncer"
)

func runNow(f func()) { f() }

func TestDebouncerCoalesces(t *testing.T) {
	clock := &manualClock{}
	d := syncer.NewDebouncer(clock, 500*time.Millisecond, runNow)

	calls := 0
	for i := 0; i < 5; i++ {
		d.Schedule(func() { calls++ })
		clock.Advance(200 * time.Millisecond)
	}
	assert.Equal(t, 0, calls)
	assert.True(t, d.Pending())

	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, 1, calls)
	assert.False(t, d.Pending())
}

func TestDebouncerCancel(t *testing.T) {
	clock := &manualClock{}
	d := syncer.NewDebouncer(clock, time.Second, runNow)

	calls := 0
	d.Schedule(func() { calls++ })
	assert.True(t, d.Cancel())
	assert.False(t, d.Cancel())

	clock.Advance(2 * time.Second)
	assert.Equal(t, 0, calls)
}

func TestDebouncerDropsStaleFiring(t *testing.T) {
	clock := &manualClock{}
	var queued []func()
	d := syncer.NewDebouncer(clock, time.Second, func(f func()) { queued = append(queued, f) })

	calls := 0
	d.Schedule(func() { calls++ })
	clock.Advance(time.Second) // fired, but not yet run by the owner
	d.Cancel()
	for _, f := range queued {
		f()
	}
	assert.Equal(t, 0, calls)
}
