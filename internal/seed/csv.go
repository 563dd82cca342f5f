package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/timecalc"
)

var requiredColumns = []string{"date", "employee"}

// ImportCSV reads day records from a CSV export with a header row. Known
// columns are date, employee, shift1Start, shift1End, hasShift2,
// shift2Start, shift2End, orders and bonus; date and employee are required,
// unknown columns are ignored.
func ImportCSV(r io.Reader) ([]domain.DayRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := map[string]int{}
	for i, h := range headers {
		index[strings.TrimSpace(h)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	records := []domain.DayRecord{}
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		record, err := parseRow(index, row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, record)
	}

	return records, nil
}

func parseRow(index map[string]int, row []string) (domain.DayRecord, error) {
	get := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	record := domain.DayRecord{
		Date:        get("date"),
		Employee:    domain.Employee(strings.ToLower(get("employee"))),
		Shift1Start: get("shift1Start"),
		Shift1End:   get("shift1End"),
		Shift2Start: get("shift2Start"),
		Shift2End:   get("shift2End"),
	}

	if _, err := time.Parse("2006-01-02", record.Date); err != nil {
		return record, fmt.Errorf("invalid date %q", record.Date)
	}
	if !record.Employee.Valid() {
		return record, fmt.Errorf("unknown employee %q", record.Employee)
	}
	for _, t := range []string{record.Shift1Start, record.Shift1End, record.Shift2Start, record.Shift2End} {
		if t != "" && !timecalc.ValidClock(t) {
			return record, fmt.Errorf("invalid time %q", t)
		}
	}

	if v := get("hasShift2"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return record, fmt.Errorf("invalid hasShift2 %q", v)
		}
		record.HasShift2 = b
	}
	if v := get("orders"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return record, fmt.Errorf("invalid orders %q", v)
		}
		record.Orders = n
	}
	if v := get("bonus"); v != "" {
		b, err := strconv.ParseFloat(v, 64)
		if err != nil || b < 0 || math.IsNaN(b) || math.IsInf(b, 0) {
			return record, fmt.Errorf("invalid bonus %q", v)
		}
		record.Bonus = b
	}

	return record, nil
}
