package schedule

import (
	"errors"
	"fmt"
	"math"

	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/timecalc"
)

var (
	ErrNegativeOrders = errors.New("orders must not be negative")
	ErrNegativeBonus  = errors.New("bonus must not be negative")
	ErrInvalidBonus   = errors.New("bonus must be a finite number")
	ErrInvalidClock   = timecalc.ErrInvalidClock
)

// Shift-2 times a record takes when the second shift is enabled without
// times of its own.
const (
	DefaultShift2Start = "14:00"
	DefaultShift2End   = "18:00"
)

// Urgency says how soon an update must be persisted.
type Urgency int

const (
	// Debounced updates are typed incrementally and coalesce into one push.
	Debounced Urgency = iota
	// Immediate updates are discrete selections and push right away.
	Immediate
)

// Update is one typed change to a DayRecord.
type Update interface {
	Validate() error
	Urgency() Urgency
	apply(r *domain.DayRecord)
}

// ShiftField selects one of the four clock fields.
type ShiftField int

const (
	Shift1Start ShiftField = iota
	Shift1End
	Shift2Start
	Shift2End
)

// SetShiftTime sets a clock field; an empty Time clears it.
type SetShiftTime struct {
	Field ShiftField
	Time  string
}

func (u SetShiftTime) Validate() error {
	if u.Time == "" {
		return nil
	}
	_, err := timecalc.ParseClock(u.Time)
	return err
}

func (u SetShiftTime) Urgency() Urgency { return Immediate }

func (u SetShiftTime) apply(r *domain.DayRecord) {
	switch u.Field {
	case Shift1Start:
		r.Shift1Start = u.Time
	case Shift1End:
		r.Shift1End = u.Time
	case Shift2Start:
		r.Shift2Start = u.Time
	case Shift2End:
		r.Shift2End = u.Time
	}
}

type SetShift2Enabled struct {
	Enabled bool
}

func (u SetShift2Enabled) Validate() error  { return nil }
func (u SetShift2Enabled) Urgency() Urgency { return Immediate }

func (u SetShift2Enabled) apply(r *domain.DayRecord) {
	r.HasShift2 = u.Enabled
	if !u.Enabled {
		return
	}
	if r.Shift2Start == "" {
		r.Shift2Start = DefaultShift2Start
	}
	if r.Shift2End == "" {
		r.Shift2End = DefaultShift2End
	}
}

type SetOrders struct {
	Orders int
}

func (u SetOrders) Validate() error {
	if u.Orders < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeOrders, u.Orders)
	}
	return nil
}

func (u SetOrders) Urgency() Urgency          { return Debounced }
func (u SetOrders) apply(r *domain.DayRecord) { r.Orders = u.Orders }

// SetBonus changes the per-order bonus of a date. It is applied to every
// employee's record on that date.
type SetBonus struct {
	Bonus float64
}

func (u SetBonus) Validate() error {
	if math.IsNaN(u.Bonus) || math.IsInf(u.Bonus, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidBonus, u.Bonus)
	}
	if u.Bonus < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeBonus, u.Bonus)
	}
	return nil
}

func (u SetBonus) Urgency() Urgency          { return Debounced }
func (u SetBonus) apply(r *domain.DayRecord) { r.Bonus = u.Bonus }

// ResetRecord restores a record to its zero-filled default. The shared
// bonus is left alone.
type ResetRecord struct{}

func (ResetRecord) Validate() error  { return nil }
func (ResetRecord) Urgency() Urgency { return Immediate }

func (ResetRecord) apply(r *domain.DayRecord) {
	*r = domain.DayRecord{Date: r.Date, Employee: r.Employee, Bonus: r.Bonus}
}
