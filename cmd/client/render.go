package main

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/payroll"
	"github.com/orderpay/schedule/internal/schedule"
	"github.com/orderpay/schedule/internal/syncer"
	"github.com/orderpay/schedule/internal/timecalc"
)

func renderStatus(out io.Writer, snap syncer.Snapshot) {
	fmt.Fprintf(out, "%s  state=%s  pending=%d\n", snap.Month, snap.State, snap.Pending)
	if snap.LoadError != nil {
		fmt.Fprintf(out, "load failed: %v\n", snap.LoadError)
	}
	if snap.LastError != nil {
		fmt.Fprintf(out, "last save failed: %v\n", snap.LastError)
	}
}

// renderEdit prints every day of the month.
func renderEdit(out io.Writer, snap syncer.Snapshot, filter domain.Employee) {
	renderStatus(out, snap)
	if snap.LoadError != nil {
		return
	}
	records := schedule.FilterEmployee(snap.Records, filter)
	renderTable(out, records)
	renderTotals(out, snap, filter)
}

// renderView prints only the days on which something was entered.
func renderView(out io.Writer, snap syncer.Snapshot, filter domain.Employee) {
	renderStatus(out, snap)
	if snap.LoadError != nil {
		return
	}
	records := schedule.FilterEmployee(snap.Records, filter)
	days := schedule.DaysWithData(records)
	if len(days) == 0 {
		fmt.Fprintln(out, "no data this month")
		return
	}
	var shown []domain.DayRecord
	for _, r := range records {
		if _, ok := slices.BinarySearch(days, r.Date); ok {
			shown = append(shown, r)
		}
	}
	renderTable(out, shown)
	renderTotals(out, snap, filter)
}

func renderTable(out io.Writer, records []domain.DayRecord) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight|tabwriter.Debug)
	defer tw.Flush()

	fmt.Fprintln(tw, "date\temployee\tshift 1\tshift 2\thours\torders\tbonus\tpay\t")
	for _, r := range records {
		shift2 := "-"
		if r.HasShift2 {
			shift2 = span(r.Shift2Start, r.Shift2End)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%g\t%s\t\n",
			r.Date,
			r.Employee.DisplayName(),
			span(r.Shift1Start, r.Shift1End),
			shift2,
			timecalc.FormatHours(payroll.TotalHours(r)),
			r.Orders,
			r.Bonus,
			payroll.DayPay(r).StringFixed(0),
		)
	}
}

func renderTotals(out io.Writer, snap syncer.Snapshot, filter domain.Employee) {
	employees := domain.Employees
	if filter != "" {
		employees = []domain.Employee{filter}
	}
	summary := payroll.Summarize(snap.Month.String(), snap.Records, employees)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw)
	for _, e := range summary.Employees {
		fmt.Fprintf(tw, "%s\t%s h\t%d orders\t%s ₽\n", e.Name, timecalc.FormatHours(e.Hours), e.Orders, e.Total.StringFixed(0))
	}
	if filter == "" {
		fmt.Fprintf(tw, "total\t\t\t%s ₽\n", summary.GrandTotal.StringFixed(0))
	}
}

func span(start, end string) string {
	if start == "" && end == "" {
		return "-"
	}
	return orUnknown(start) + "–" + orUnknown(end)
}

func orUnknown(s string) string {
	if s == "" {
		return "?"
	}
	return s
}
