package schedule

import (
	"errors"
	"fmt"
	"slices"

	"github.com/orderpay/schedule/internal/domain"
)

var ErrRecordNotFound = errors.New("record not found")

// Apply returns a copy of records with u applied to (date, employee) and
// the keys it touched. SetBonus touches every record on date. The input
// slice is never modified.
func Apply(records []domain.DayRecord, date string, employee domain.Employee, u Update) ([]domain.DayRecord, []domain.RecordKey, error) {
	if err := u.Validate(); err != nil {
		return nil, nil, err
	}
	_, sharedByDate := u.(SetBonus)

	found := false
	var touched []domain.RecordKey
	next := slices.Clone(records)
	for i := range next {
		r := &next[i]
		if r.Date != date {
			continue
		}
		if r.Employee == employee {
			found = true
		} else if !sharedByDate {
			continue
		}
		u.apply(r)
		touched = append(touched, r.Key())
	}
	if !found {
		return nil, nil, fmt.Errorf("%w: %s/%s", ErrRecordNotFound, date, employee)
	}
	return next, touched, nil
}

// Pending reports which records carry unsaved local edits.
type Pending interface {
	Has(domain.RecordKey) bool
}

// Merge combines a remote snapshot with the local collection, slot by
// local slot: a pending slot keeps its local value, any other slot takes
// the remote value or the zero default when the remote has none.
func Merge(remote, local []domain.DayRecord, pending Pending) []domain.DayRecord {
	byKey := make(map[domain.RecordKey]domain.DayRecord, len(remote))
	for _, r := range remote {
		byKey[r.Key()] = r
	}
	merged := make([]domain.DayRecord, len(local))
	for i, l := range local {
		switch r, ok := byKey[l.Key()]; {
		case pending != nil && pending.Has(l.Key()):
			merged[i] = l
		case ok:
			merged[i] = r
		default:
			merged[i] = domain.DayRecord{Date: l.Date, Employee: l.Employee}
		}
	}
	return merged
}

// GroupByDate partitions records by date keeping per-date order. Map
// iteration order is random; callers sort the keys before display.
func GroupByDate(records []domain.DayRecord) map[string][]domain.DayRecord {
	groups := make(map[string][]domain.DayRecord)
	for _, r := range records {
		groups[r.Date] = append(groups[r.Date], r)
	}
	return groups
}

// DaysWithData returns the sorted dates on which any record has data.
func DaysWithData(records []domain.DayRecord) []string {
	var dates []string
	for date, group := range GroupByDate(records) {
		if slices.ContainsFunc(group, domain.DayRecord.HasData) {
			dates = append(dates, date)
		}
	}
	slices.Sort(dates)
	return dates
}

// FilterEmployee keeps the records of one employee; an empty employee keeps all.
func FilterEmployee(records []domain.DayRecord, employee domain.Employee) []domain.DayRecord {
	if employee == "" {
		return records
	}
	var out []domain.DayRecord
	for _, r := range records {
		if r.Employee == employee {
			out = append(out, r)
		}
	}
	return out
}

// Store holds the record collection of one month and its pending edits.
// It is not safe for concurrent use; the sync engine owns it.
type Store struct {
	month     MonthKey
	employees []domain.Employee
	records   []domain.DayRecord
	pending   *PendingSet
}

// NewStore returns an empty store for month; call Reset or Replace to seed it.
func NewStore(month MonthKey, employees []domain.Employee) *Store {
	return &Store{
		month:     month,
		employees: employees,
		pending:   NewPendingSet(),
	}
}

func (s *Store) Month() MonthKey              { return s.month }
func (s *Store) Employees() []domain.Employee { return s.employees }
func (s *Store) Pending() *PendingSet         { return s.pending }

// Records returns the current collection. Callers must not modify it.
func (s *Store) Records() []domain.DayRecord { return s.records }

// Update applies u and marks the touched records pending.
func (s *Store) Update(date string, employee domain.Employee, u Update) ([]domain.DayRecord, error) {
	next, touched, err := Apply(s.records, date, employee, u)
	if err != nil {
		return nil, err
	}
	s.records = next
	s.pending.Mark(touched...)
	return next, nil
}

// Replace swaps in a densified copy of records and forgets pending edits.
func (s *Store) Replace(records []domain.DayRecord) {
	s.records = Densify(s.month, s.employees, records)
	s.pending.Reset()
}

// MergeRemote merges a sparse remote snapshot, protecting pending records.
func (s *Store) MergeRemote(remote []domain.DayRecord) {
	s.records = Merge(Densify(s.month, s.employees, remote), s.records, s.pending)
}

// Reset replaces the collection with defaults and marks every record
// pending so the cleared state gets persisted.
func (s *Store) Reset() {
	s.records = BuildDefaultSchedule(s.month, s.employees)
	s.pending.Reset()
	for _, r := range s.records {
		s.pending.Mark(r.Key())
	}
}
