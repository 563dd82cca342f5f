package syncer_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/schedule"
	"github.com/orderpay/schedule/internal/syncer"
)

type manualTimer struct {
	clock   *manualClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// manualClock fires callbacks only when advanced.
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) syncer.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward and runs every callback that came due, in
// due order. Callbacks run synchronously on the caller's goroutine.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()
	for {
		c.mu.Lock()
		var due []*manualTimer
		for _, t := range c.timers {
			if !t.stopped && !t.fired && t.at <= target {
				due = append(due, t)
			}
		}
		if len(due) == 0 {
			c.now = target
			c.mu.Unlock()
			return
		}
		sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
		next := due[0]
		next.fired = true
		c.now = next.at
		c.mu.Unlock()
		next.f()
	}
}

type push struct {
	month   schedule.MonthKey
	records []domain.DayRecord
}

type fakeBackend struct {
	mu       sync.Mutex
	remote   []domain.DayRecord
	fetchErr error
	pushErr  error
	fetches  int
	// gate, when set, holds every push until it is closed
	gate chan struct{}
	// fetchGate does the same for fetches; the fetch is counted first
	fetchGate chan struct{}
	pushes    chan push
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{pushes: make(chan push, 64)}
}

func (b *fakeBackend) Fetch(_ context.Context, _ schedule.MonthKey) ([]domain.DayRecord, error) {
	b.mu.Lock()
	b.fetches++
	gate := b.fetchGate
	records, err := append([]domain.DayRecord(nil), b.remote...), b.fetchErr
	b.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (b *fakeBackend) Push(_ context.Context, month schedule.MonthKey, records []domain.DayRecord) error {
	b.mu.Lock()
	gate, err := b.gate, b.pushErr
	b.mu.Unlock()
	if gate != nil {
		<-gate
	}
	b.pushes <- push{month: month, records: records}
	return err
}

func (b *fakeBackend) set(fn func(b *fakeBackend)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(b)
}

func (b *fakeBackend) fetchCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fetches
}

type recordingNotifier struct {
	mu     sync.Mutex
	saved  int
	failed []string
}

func (n *recordingNotifier) Saved(schedule.MonthKey) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.saved++
}

func (n *recordingNotifier) Failed(op string, _ error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failed = append(n.failed, op)
}

func (n *recordingNotifier) counts() (int, []string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.saved, append([]string(nil), n.failed...)
}
