// Package mailer turns queued mail messages into e-mails.
package mailer

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"

	"github.com/wneessen/go-mail"

	"github.com/orderpay/schedule/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

var ErrUnsupportedType = errors.New("unsupported mail type")

// queued mirrors domain.MailMessage with Data left undecoded until the
// type is known.
type queued struct {
	Type string          `json:"type"`
	To   string          `json:"to"`
	Data json.RawMessage `json:"data"`
}

// Build decodes a queued message body and renders it as an e-mail sent
// from from.
func Build(from string, body []byte) (*mail.Msg, error) {
	var q queued
	if err := json.Unmarshal(body, &q); err != nil {
		return nil, err
	}

	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, err
	}
	if err := m.To(q.To); err != nil {
		return nil, err
	}

	switch q.Type {
	case domain.MailTypePayrollReport:
		var data domain.PayrollReportMailData
		if err := json.Unmarshal(q.Data, &data); err != nil {
			return nil, err
		}
		if err := m.SetBodyHTMLTemplate(templates.Lookup("payroll_report.html"), data); err != nil {
			return nil, err
		}
		m.Subject("Payroll report " + data.Month)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, q.Type)
	}

	return m, nil
}

// RenderPayrollReport renders the report body without building a message.
func RenderPayrollReport(data domain.PayrollReportMailData) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "payroll_report.html", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
