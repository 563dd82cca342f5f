// Package syncer keeps a month's schedule in memory and reconciles it with
// a Backend: debounced pushes of local edits and periodic background
// refreshes that never overwrite records with unsaved edits.
//
// All state is owned by a single event loop (Run). Timers and finished
// network calls post closures back into that loop, so nothing is shared
// across goroutines.
package syncer

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/schedule"
)

var ErrNotRunning = errors.New("sync engine is not running")

type State int

const (
	StateIdle State = iota
	StateLoading
	StateSaving
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSaving:
		return "saving"
	default:
		return "idle"
	}
}

type Options struct {
	Employees       []domain.Employee
	RefreshInterval time.Duration
	DebounceDelay   time.Duration
	// FlushTimeout bounds the final push of a debounced edit on shutdown.
	FlushTimeout time.Duration
	Clock        Clock
	Notifier     Notifier
	Logger       *slog.Logger
}

func (o *Options) setDefaults() {
	if o.Employees == nil {
		o.Employees = domain.Employees
	}
	if o.RefreshInterval <= 0 {
		o.RefreshInterval = 30 * time.Second
	}
	if o.DebounceDelay <= 0 {
		o.DebounceDelay = 500 * time.Millisecond
	}
	if o.FlushTimeout <= 0 {
		o.FlushTimeout = 5 * time.Second
	}
	if o.Clock == nil {
		o.Clock = SystemClock
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Notifier == nil {
		o.Notifier = logNotifier{logger: o.Logger}
	}
}

// Snapshot is a copy of the engine's state for rendering.
type Snapshot struct {
	Month     schedule.MonthKey
	Records   []domain.DayRecord
	State     State
	Pending   int
	LoadError error
	LastError error
}

type Engine struct {
	backend Backend
	opts    Options
	logger  *slog.Logger

	events chan func()
	done   chan struct{}
	ctx    context.Context

	// owned by the event loop
	store      *schedule.Store
	session    uint64
	loading    bool
	saving     bool
	refreshing bool
	pushAgain  bool
	loadErr    error
	lastErr    error
	debounce   *Debouncer
	refresh    Timer
	writes     uint64
}

func New(backend Backend, opts Options) *Engine {
	opts.setDefaults()
	e := &Engine{
		backend: backend,
		opts:    opts,
		logger:  opts.Logger,
		events:  make(chan func()),
		done:    make(chan struct{}),
	}
	e.debounce = NewDebouncer(opts.Clock, opts.DebounceDelay, e.post)
	return e
}

// Run processes events until ctx is cancelled. Other methods block until
// Run has started.
func (e *Engine) Run(ctx context.Context) error {
	e.ctx = ctx
	defer close(e.done)

	e.scheduleRefresh()
	for {
		select {
		case <-ctx.Done():
			e.stop()
			return nil
		case fn := <-e.events:
			fn()
		}
	}
}

func (e *Engine) stop() {
	if e.refresh != nil {
		e.refresh.Stop()
	}
	if !e.debounce.Cancel() || e.saving || e.store == nil {
		return
	}
	// a debounced edit has not been pushed yet
	ctx, cancel := context.WithTimeout(context.Background(), e.opts.FlushTimeout)
	defer cancel()
	if err := e.backend.Push(ctx, e.store.Month(), slices.Clone(e.store.Records())); err != nil {
		e.logger.Error("failed to flush schedule on shutdown", "month", e.store.Month(), "error", err)
	}
}

// post queues fn on the event loop from another goroutine.
func (e *Engine) post(fn func()) {
	select {
	case e.events <- fn:
	case <-e.done:
	}
}

// do runs fn on the event loop and waits for it.
func (e *Engine) do(fn func()) error {
	finished := make(chan struct{})
	select {
	case e.events <- func() { fn(); close(finished) }:
	case <-e.done:
		return ErrNotRunning
	}
	select {
	case <-finished:
		return nil
	case <-e.done:
		return ErrNotRunning
	}
}

// Load switches the session to month and fetches its snapshot. A debounced
// edit of the previous month is pushed first.
func (e *Engine) Load(month schedule.MonthKey) error {
	return e.do(func() { e.startLoad(month) })
}

// Edit applies u to (date, employee) and schedules its persistence.
// It returns the new collection.
func (e *Engine) Edit(date string, employee domain.Employee, u schedule.Update) ([]domain.DayRecord, error) {
	var (
		records []domain.DayRecord
		editErr error
	)
	err := e.do(func() {
		if e.store == nil {
			editErr = schedule.ErrRecordNotFound
			return
		}
		records, editErr = e.store.Update(date, employee, u)
		if editErr != nil {
			return
		}
		records = slices.Clone(records)
		if u.Urgency() == schedule.Immediate {
			e.debounce.Cancel()
			e.startPush()
			return
		}
		e.debounce.Schedule(e.startPush)
	})
	if err != nil {
		return nil, err
	}
	return records, editErr
}

// Save pushes the current collection right away.
func (e *Engine) Save() error {
	return e.do(func() {
		e.debounce.Cancel()
		e.startPush()
	})
}

// ClearAll resets every record of the month and pushes the cleared state.
func (e *Engine) ClearAll() error {
	return e.do(func() {
		if e.store == nil {
			return
		}
		e.store.Reset()
		e.debounce.Cancel()
		e.startPush()
	})
}

// RefreshNow runs a background refresh outside the regular interval.
func (e *Engine) RefreshNow() error {
	return e.do(e.startRefresh)
}

func (e *Engine) Snapshot() (Snapshot, error) {
	var snap Snapshot
	err := e.do(func() {
		snap = Snapshot{
			State:     e.state(),
			LoadError: e.loadErr,
			LastError: e.lastErr,
		}
		if e.store != nil {
			snap.Month = e.store.Month()
			snap.Records = slices.Clone(e.store.Records())
			snap.Pending = e.store.Pending().Len()
		}
	})
	return snap, err
}

func (e *Engine) state() State {
	switch {
	case e.loading:
		return StateLoading
	case e.saving:
		return StateSaving
	default:
		return StateIdle
	}
}

func (e *Engine) startLoad(month schedule.MonthKey) {
	if e.debounce.Cancel() || e.pushAgain {
		if e.saving {
			e.pushDetached()
		} else {
			e.startPush()
		}
	}
	e.session++
	e.store = schedule.NewStore(month, e.opts.Employees)
	e.loading = true
	e.loadErr = nil
	e.pushAgain = false

	session := e.session
	go func() {
		records, err := e.backend.Fetch(e.ctx, month)
		e.post(func() { e.finishLoad(session, records, err) })
	}()
}

func (e *Engine) finishLoad(session uint64, records []domain.DayRecord, err error) {
	if session != e.session {
		return
	}
	e.loading = false
	if err != nil {
		e.loadErr = err
		e.lastErr = err
		e.logger.Error("failed to load schedule", "month", e.store.Month(), "error", err)
		e.opts.Notifier.Failed("load", err)
		return
	}
	e.store.Replace(records)
}

func (e *Engine) scheduleRefresh() {
	e.refresh = e.opts.Clock.AfterFunc(e.opts.RefreshInterval, func() {
		e.post(func() {
			e.scheduleRefresh()
			e.startRefresh()
		})
	})
}

func (e *Engine) startRefresh() {
	if e.store == nil || e.loading || e.saving || e.refreshing {
		return
	}
	e.refreshing = true
	session, month, writes := e.session, e.store.Month(), e.writes
	go func() {
		records, err := e.backend.Fetch(e.ctx, month)
		e.post(func() { e.finishRefresh(session, writes, records, err) })
	}()
}

// finishRefresh merges a fetched snapshot. A snapshot fetched before a push
// started may predate that push on the backend, so it is dropped and the
// next tick fetches again.
func (e *Engine) finishRefresh(session, writes uint64, records []domain.DayRecord, err error) {
	e.refreshing = false
	if session != e.session {
		return
	}
	if err != nil {
		e.logger.Error("failed to refresh schedule", "month", e.store.Month(), "error", err)
		return
	}
	if writes != e.writes {
		e.logger.Debug("dropping refresh that raced a save", "month", e.store.Month())
		return
	}
	if len(e.store.Records()) == 0 {
		// the initial load failed; the refresh stands in for it
		e.store.Replace(records)
		e.loadErr = nil
		return
	}
	e.store.MergeRemote(records)
}

func (e *Engine) startPush() {
	if e.store == nil || len(e.store.Records()) == 0 {
		return
	}
	if e.saving {
		e.pushAgain = true
		return
	}
	e.saving = true
	e.writes++
	session, month := e.session, e.store.Month()
	records := slices.Clone(e.store.Records())
	marks := e.store.Pending().Snapshot()
	go func() {
		err := e.backend.Push(e.ctx, month, records)
		e.post(func() { e.finishPush(session, month, marks, err) })
	}()
}

// pushDetached persists the current month outside the saving flag; it
// is used when leaving a month while its previous push is still in flight.
func (e *Engine) pushDetached() {
	month, records := e.store.Month(), slices.Clone(e.store.Records())
	go func() {
		if err := e.backend.Push(e.ctx, month, records); err != nil {
			e.logger.Error("failed to save schedule", "month", month, "error", err)
			e.post(func() { e.opts.Notifier.Failed("save", err) })
		}
	}()
}

func (e *Engine) finishPush(session uint64, month schedule.MonthKey, marks schedule.PendingMarks, err error) {
	e.saving = false
	if err != nil {
		// pending marks stay so a refresh cannot clobber the unsaved edits
		e.lastErr = err
		e.logger.Error("failed to save schedule", "month", month, "error", err)
		e.opts.Notifier.Failed("save", err)
	} else {
		e.lastErr = nil
		if session == e.session {
			e.store.Pending().Release(marks)
		}
		e.opts.Notifier.Saved(month)
	}
	if e.pushAgain {
		e.pushAgain = false
		e.startPush()
	}
}
