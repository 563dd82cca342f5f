package syncer

import "time"

// Debouncer runs a task once a quiet period has elapsed since the last
// Schedule call. Every Schedule cancels the previous one. Firing goes
// through post so the task runs on the owner's event loop; a firing that
// raced with Cancel or a newer Schedule is discarded there.
type Debouncer struct {
	clock Clock
	delay time.Duration
	post  func(func())

	gen   uint64
	timer Timer
}

func NewDebouncer(clock Clock, delay time.Duration, post func(func())) *Debouncer {
	return &Debouncer{clock: clock, delay: delay, post: post}
}

func (d *Debouncer) Schedule(task func()) {
	d.Cancel()
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.post(func() {
			if d.gen != gen || d.timer == nil {
				return
			}
			d.timer = nil
			task()
		})
	})
}

// Cancel drops the scheduled task and reports whether one was pending.
func (d *Debouncer) Cancel() bool {
	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.gen++
	return true
}

func (d *Debouncer) Pending() bool {
	return d.timer != nil
}
