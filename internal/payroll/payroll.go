// Package payroll derives pay from DayRecords.
package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/timecalc"
)

const (
	HourlyRate    = 250
	OrderBaseRate = 50
)

var (
	hourlyRate    = decimal.NewFromInt(HourlyRate)
	orderBaseRate = decimal.NewFromInt(OrderBaseRate)
	sixty         = decimal.NewFromInt(60)
)

// ShiftMinutes is the total worked minutes of a record; the second shift
// only counts when enabled.
func ShiftMinutes(r domain.DayRecord) int {
	minutes := timecalc.ElapsedMinutes(r.Shift1Start, r.Shift1End)
	if r.HasShift2 {
		minutes += timecalc.ElapsedMinutes(r.Shift2Start, r.Shift2End)
	}
	return minutes
}

// TotalHours is ShiftMinutes in hours.
func TotalHours(r domain.DayRecord) decimal.Decimal {
	return decimal.NewFromInt(int64(ShiftMinutes(r))).Div(sixty)
}

// OrderRate is the pay for one order on the record's date.
func OrderRate(r domain.DayRecord) decimal.Decimal {
	return orderBaseRate.Add(decimal.NewFromFloat(r.Bonus))
}

// DayPay is hours × HourlyRate + orders × (OrderBaseRate + bonus).
func DayPay(r domain.DayRecord) decimal.Decimal {
	// minutes × rate / 60 keeps fractional hours exact
	hoursPay := decimal.NewFromInt(int64(ShiftMinutes(r))).Mul(hourlyRate).Div(sixty)
	ordersPay := decimal.NewFromInt(int64(r.Orders)).Mul(OrderRate(r))
	return hoursPay.Add(ordersPay)
}

// MonthTotal sums DayPay over the employee's records.
func MonthTotal(records []domain.DayRecord, employee domain.Employee) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		if r.Employee == employee {
			total = total.Add(DayPay(r))
		}
	}
	return total
}

// GrandTotal sums DayPay over every record regardless of employee.
func GrandTotal(records []domain.DayRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(DayPay(r))
	}
	return total
}
