package payroll_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/payroll"
)

func dec(i int64) decimal.Decimal { return decimal.NewFromInt(i) }

func TestDayPaySingleShift(t *testing.T) {
	r := domain.DayRecord{Shift1Start: "09:00", Shift1End: "13:00"}
	assert.True(t, payroll.DayPay(r).Equal(dec(1000)))
}

func TestDayPayTwoShiftsWithOrders(t *testing.T) {
	r := domain.DayRecord{
		Shift1Start: "09:00", Shift1End: "13:00",
		HasShift2: true, Shift2Start: "14:00", Shift2End: "18:00",
		Orders: 5, Bonus: 10,
	}
	assert.True(t, payroll.DayPay(r).Equal(dec(2300)), payroll.DayPay(r).String())
}

func TestDayPayIgnoresDisabledSecondShift(t *testing.T) {
	r := domain.DayRecord{
		Shift1Start: "09:00", Shift1End: "13:00",
		HasShift2: false, Shift2Start: "14:00", Shift2End: "18:00",
	}
	assert.True(t, payroll.DayPay(r).Equal(dec(1000)))
}

func TestDayPayNegativeHoursPassThrough(t *testing.T) {
	r := domain.DayRecord{Shift1Start: "18:00", Shift1End: "09:00"}
	assert.True(t, payroll.DayPay(r).Equal(dec(-2250)))
}

func TestDayPayFractionalHours(t *testing.T) {
	r := domain.DayRecord{Shift1Start: "09:00", Shift1End: "09:20"}
	// 20 minutes at 250/h
	assert.Equal(t, "83.33", payroll.DayPay(r).StringFixed(2))
}

func TestTotals(t *testing.T) {
	records := []domain.DayRecord{
		{Date: "2024-02-01", Employee: domain.EmployeeNikita, Shift1Start: "09:00", Shift1End: "13:00"},
		{Date: "2024-02-01", Employee: domain.EmployeeAndrey, Orders: 3, Bonus: 5},
		{Date: "2024-02-02", Employee: domain.EmployeeNikita, Orders: 1},
		{Date: "2024-02-02", Employee: domain.EmployeeDenis},
	}
	assert.True(t, payroll.MonthTotal(records, domain.EmployeeNikita).Equal(dec(1050)))
	assert.True(t, payroll.MonthTotal(records, domain.EmployeeAndrey).Equal(dec(165)))
	assert.True(t, payroll.MonthTotal(records, domain.EmployeeDenis).IsZero())

	sum := decimal.Zero
	for _, e := range domain.Employees {
		sum = sum.Add(payroll.MonthTotal(records, e))
	}
	assert.True(t, payroll.GrandTotal(records).Equal(sum))
	assert.True(t, payroll.GrandTotal(records).Equal(dec(1215)))
}

func TestSummarize(t *testing.T) {
	records := []domain.DayRecord{
		{Date: "2024-02-01", Employee: domain.EmployeeNikita, Shift1Start: "09:00", Shift1End: "13:30", Orders: 2},
		{Date: "2024-02-02", Employee: domain.EmployeeNikita, Shift1Start: "09:00", Shift1End: "10:00"},
	}
	s := payroll.Summarize("2024-02", records, domain.Employees)
	require.Len(t, s.Employees, 3)
	assert.Equal(t, domain.EmployeeNikita, s.Employees[0].Employee)
	assert.Equal(t, "Никита", s.Employees[0].Name)
	assert.Equal(t, 2, s.Employees[0].Orders)
	assert.True(t, s.Employees[0].Hours.Equal(decimal.RequireFromString("5.5")))
	assert.True(t, s.Employees[0].Total.Equal(dec(1475)))
	assert.True(t, s.GrandTotal.Equal(dec(1475)))

	data := s.ReportData()
	assert.Equal(t, "2024-02", data.Month)
	assert.Equal(t, "5.5", data.Rows[0].Hours)
	assert.Equal(t, "1475", data.GrandTotal)
}
