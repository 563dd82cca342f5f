package handler

import (
	"context"
	"net/http"

	"github.com/orderpay/schedule/internal/schedule"
)

type ContextKey string

var MonthCtxKey ContextKey = "month"

// optionalMonth stores ?month in the context when present.
func (h *Handler) optionalMonth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("month")
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		month, err := schedule.ParseMonthKey(raw)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), MonthCtxKey, month)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) requiredMonth(next http.Handler) http.Handler {
	return h.optionalMonth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := monthFromContext(r); !ok {
			h.errorResponse(w, r, http.StatusBadRequest, "month query parameter is required")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func monthFromContext(r *http.Request) (schedule.MonthKey, bool) {
	month, ok := r.Context().Value(MonthCtxKey).(schedule.MonthKey)
	return month, ok
}
