package syncer

import (
	"context"
	"log/slog"

	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/schedule"
)

// Backend persists month record sets. Fetch may return a sparse snapshot;
// Push receives the full collection of one month.
type Backend interface {
	Fetch(ctx context.Context, month schedule.MonthKey) ([]domain.DayRecord, error)
	Push(ctx context.Context, month schedule.MonthKey, records []domain.DayRecord) error
}

// Notifier surfaces user-facing outcomes of persistence.
type Notifier interface {
	Saved(month schedule.MonthKey)
	Failed(op string, err error)
}

type logNotifier struct {
	logger *slog.Logger
}

func (n logNotifier) Saved(month schedule.MonthKey) {
	n.logger.Info("schedule saved", "month", month)
}

func (n logNotifier) Failed(op string, err error) {
	n.logger.Error("schedule sync failed", "op", op, "error", err)
}
