package timecalc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidClock = errors.New("invalid clock time")

var sixty = decimal.NewFromInt(60)

// ParseClock parses an HH:MM 24-hour clock time into minutes after midnight.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || hh == "" || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return h*60 + m, nil
}

// ValidClock reports whether s is a well-formed HH:MM time.
func ValidClock(s string) bool {
	_, err := ParseClock(s)
	return err == nil
}

// ElapsedMinutes returns end minus start in minutes. An empty or malformed
// bound yields 0. There is no wraparound: an end before start is negative.
func ElapsedMinutes(start, end string) int {
	if start == "" || end == "" {
		return 0
	}
	s, err := ParseClock(start)
	if err != nil {
		return 0
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0
	}
	return e - s
}

// ElapsedHours is ElapsedMinutes expressed in hours.
func ElapsedHours(start, end string) decimal.Decimal {
	return decimal.NewFromInt(int64(ElapsedMinutes(start, end))).Div(sixty)
}

// FormatHours formats hours with one decimal place, e.g. "8.5".
func FormatHours(h decimal.Decimal) string {
	return h.StringFixed(1)
}
