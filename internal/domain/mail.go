package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

const MailTypePayrollReport = "payroll_report"

type PayrollReportRow struct {
	Employee string `json:"employee"`
	Hours    string `json:"hours"`
	Orders   int    `json:"orders"`
	Total    string `json:"total"`
}

type PayrollReportMailData struct {
	Month      string             `json:"month"`
	Rows       []PayrollReportRow `json:"rows"`
	GrandTotal string             `json:"grandTotal"`
}

// ScheduleEvent is broadcast to WebSocket subscribers after a change is persisted.
type ScheduleEvent struct {
	Type  string `json:"type"`
	Month string `json:"month"`
}

const EventScheduleSaved = "schedule_saved"
