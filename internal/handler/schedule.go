package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/schedule"
)

// GetSchedule returns the stored records of ?month as a bare JSON array,
// or the latest records across months when month is omitted.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	month, ok := monthFromContext(r)
	if !ok {
		records, err := h.repository.GetRecentSchedule()
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		h.writeJSON(w, r, http.StatusOK, records)
		return
	}

	records, err := h.monthRecords(month)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, records)
}

// monthRecords reads through the snapshot cache. Cache failures only get
// logged.
func (h *Handler) monthRecords(month schedule.MonthKey) ([]domain.DayRecord, error) {
	ctx, cancel := h.cacheContext()
	defer cancel()

	records, hit, err := h.snapshots.Get(ctx, month)
	if err != nil {
		slog.Warn("failed to read schedule snapshot", "month", month, "error", err)
	}
	if hit {
		return records, nil
	}

	records, err = h.repository.GetScheduleByMonth(month)
	if err != nil {
		return nil, err
	}

	if err := h.snapshots.Set(ctx, month, records); err != nil {
		slog.Warn("failed to store schedule snapshot", "month", month, "error", err)
	}
	return records, nil
}

func (h *Handler) SaveSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []domain.DayRecord `json:"items" validate:"required,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpsertDayRecords(req.Items); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	months := []schedule.MonthKey{}
	seen := map[schedule.MonthKey]bool{}
	for _, item := range req.Items {
		month := schedule.MonthKey(item.Date[:7])
		if !seen[month] {
			seen[month] = true
			months = append(months, month)
		}
	}
	h.changed(months...)

	h.successResponse(w, r, "schedule saved", nil)
}

func (h *Handler) DeleteDayRecord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date     string          `json:"date" validate:"required,datetime=2006-01-02"`
		Employee domain.Employee `json:"employee" validate:"required,employee"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.DeleteDayRecord(domain.RecordKey{Date: req.Date, Employee: req.Employee}); err != nil {
		switch {
		case errors.Is(err, schedule.ErrRecordNotFound):
			h.errorResponse(w, r, http.StatusNotFound, "record not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.changed(schedule.MonthKey(req.Date[:7]))

	h.successResponse(w, r, "record deleted", nil)
}

// changed drops cached snapshots of months and tells subscribers.
func (h *Handler) changed(months ...schedule.MonthKey) {
	ctx, cancel := h.cacheContext()
	defer cancel()

	if err := h.snapshots.Invalidate(ctx, months...); err != nil {
		slog.Warn("failed to invalidate schedule snapshots", "months", months, "error", err)
	}
	for _, month := range months {
		h.hub.ScheduleSaved(month.String())
	}
}

func (h *Handler) cacheContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(h.config.Database.QueryTimeout)*time.Second)
}
