package schedule

import (
	"fmt"
	"time"

	"github.com/orderpay/schedule/internal/domain"
)

const (
	monthLayout = "2006-01"
	dateLayout  = "2006-01-02"
)

// MonthKey identifies a month's record set, formatted YYYY-MM.
type MonthKey string

func ParseMonthKey(s string) (MonthKey, error) {
	if _, err := time.Parse(monthLayout, s); err != nil {
		return "", fmt.Errorf("invalid month %q: %w", s, err)
	}
	return MonthKey(s), nil
}

// CurrentMonth returns the month containing t.
func CurrentMonth(t time.Time) MonthKey {
	return MonthKey(t.Format(monthLayout))
}

func (m MonthKey) String() string { return string(m) }

// first returns the first day of the month; m is assumed well formed.
func (m MonthKey) first() time.Time {
	t, _ := time.Parse(monthLayout, string(m))
	return t
}

// DaysInMonth returns the last day number of the month (28–31).
func DaysInMonth(m MonthKey) int {
	return m.first().AddDate(0, 1, -1).Day()
}

// ShiftMonth adds delta whole months; the day is pinned to the 1st so a
// 31st never overflows into the following month.
func ShiftMonth(m MonthKey, delta int) MonthKey {
	return MonthKey(m.first().AddDate(0, delta, 0).Format(monthLayout))
}

// Dates lists every date of the month in ISO form, ascending.
func (m MonthKey) Dates() []string {
	first := m.first()
	n := DaysInMonth(m)
	dates := make([]string, 0, n)
	for d := 0; d < n; d++ {
		dates = append(dates, first.AddDate(0, 0, d).Format(dateLayout))
	}
	return dates
}

// Contains reports whether an ISO date falls inside the month.
func (m MonthKey) Contains(date string) bool {
	return len(date) >= len(monthLayout) && date[:len(monthLayout)] == string(m)
}

// BuildDefaultSchedule returns one zero-filled record per (day, employee),
// days outer and employees inner.
func BuildDefaultSchedule(m MonthKey, employees []domain.Employee) []domain.DayRecord {
	dates := m.Dates()
	records := make([]domain.DayRecord, 0, len(dates)*len(employees))
	for _, date := range dates {
		for _, e := range employees {
			records = append(records, domain.DayRecord{Date: date, Employee: e})
		}
	}
	return records
}

// Densify expands a sparse snapshot into the full default grid. Entries
// outside the month or roster are dropped.
func Densify(m MonthKey, employees []domain.Employee, sparse []domain.DayRecord) []domain.DayRecord {
	byKey := make(map[domain.RecordKey]domain.DayRecord, len(sparse))
	for _, r := range sparse {
		byKey[r.Key()] = r
	}
	records := BuildDefaultSchedule(m, employees)
	for i, r := range records {
		if remote, ok := byKey[r.Key()]; ok {
			records[i] = remote
		}
	}
	return records
}
