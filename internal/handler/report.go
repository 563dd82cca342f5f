package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/payroll"
)

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	month, _ := monthFromContext(r)

	records, err := h.monthRecords(month)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "summary computed", payroll.Summarize(month.String(), records, domain.Employees))
}

// SendPayrollReport queues the month's payroll summary for the mail worker.
func (h *Handler) SendPayrollReport(w http.ResponseWriter, r *http.Request) {
	if h.publisher == nil || h.config.Email.ReportRecipient == "" {
		h.errorResponse(w, r, http.StatusServiceUnavailable, "payroll reports are not configured")
		return
	}

	month, _ := monthFromContext(r)

	records, err := h.monthRecords(month)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	summary := payroll.Summarize(month.String(), records, domain.Employees)
	mailData, err := json.Marshal(domain.MailMessage{
		Type: domain.MailTypePayrollReport,
		To:   h.config.Email.ReportRecipient,
		Data: summary.ReportData(),
	})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.publisher.PublishWithContext(
		ctx,
		"",
		h.config.RabbitMQ.Queue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "payroll report queued", summary)
}
