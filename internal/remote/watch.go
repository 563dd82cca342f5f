package remote

import (
	"context"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/schedule"
)

// Watch subscribes to change events at wsURL and calls onSaved for every
// saved month until ctx is done. Dropped connections are retried after
// retryDelay.
func Watch(ctx context.Context, wsURL string, retryDelay time.Duration, onSaved func(schedule.MonthKey)) {
	for {
		if err := watchOnce(ctx, wsURL, onSaved); err != nil && ctx.Err() == nil {
			slog.Warn("schedule watch disconnected", "url", wsURL, "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(retryDelay):
		}
	}
}

func watchOnce(ctx context.Context, wsURL string, onSaved func(schedule.MonthKey)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	// unblock ReadJSON when ctx ends
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	for {
		var event domain.ScheduleEvent
		if err := conn.ReadJSON(&event); err != nil {
			return err
		}
		if event.Type == domain.EventScheduleSaved {
			onSaved(schedule.MonthKey(event.Month))
		}
	}
}
