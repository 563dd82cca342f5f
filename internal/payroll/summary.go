package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/timecalc"
)

type EmployeeSummary struct {
	Employee domain.Employee `json:"employee"`
	Name     string          `json:"name"`
	Hours    decimal.Decimal `json:"hours"`
	Orders   int             `json:"orders"`
	Total    decimal.Decimal `json:"total"`
}

type Summary struct {
	Month      string            `json:"month"`
	Employees  []EmployeeSummary `json:"employees"`
	GrandTotal decimal.Decimal   `json:"grandTotal"`
}

// Summarize aggregates records per employee in roster order. Records of
// employees outside the roster still count toward the grand total.
func Summarize(month string, records []domain.DayRecord, employees []domain.Employee) Summary {
	s := Summary{Month: month, Employees: make([]EmployeeSummary, 0, len(employees))}
	for _, e := range employees {
		es := EmployeeSummary{Employee: e, Name: e.DisplayName(), Hours: decimal.Zero, Total: decimal.Zero}
		for _, r := range records {
			if r.Employee != e {
				continue
			}
			es.Hours = es.Hours.Add(TotalHours(r))
			es.Orders += r.Orders
			es.Total = es.Total.Add(DayPay(r))
		}
		s.Employees = append(s.Employees, es)
	}
	s.GrandTotal = GrandTotal(records)
	return s
}

// ReportData converts a summary into the payload of a report e-mail.
func (s Summary) ReportData() domain.PayrollReportMailData {
	data := domain.PayrollReportMailData{Month: s.Month, GrandTotal: s.GrandTotal.StringFixed(0)}
	for _, e := range s.Employees {
		data.Rows = append(data.Rows, domain.PayrollReportRow{
			Employee: e.Name,
			Hours:    timecalc.FormatHours(e.Hours),
			Orders:   e.Orders,
			Total:    e.Total.StringFixed(0),
		})
	}
	return data
}
