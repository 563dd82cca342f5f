package ws_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/remote"
	"github.com/orderpay/schedule/internal/schedule"
	"github.com/orderpay/schedule/internal/ws"
)

func startHub(t *testing.T) (*ws.Hub, string) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	hub := ws.NewHub()
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestHubBroadcastsToClient(t *testing.T) {
	hub, url := startHub(t)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	received := make(chan domain.ScheduleEvent, 16)
	go func() {
		for {
			var event domain.ScheduleEvent
			if err := conn.ReadJSON(&event); err != nil {
				return
			}
			received <- event
		}
	}()

	// registration races with the first broadcast, so keep sending
	require.Eventually(t, func() bool {
		hub.ScheduleSaved("2024-03")
		select {
		case event := <-received:
			assert.Equal(t, domain.EventScheduleSaved, event.Type)
			assert.Equal(t, "2024-03", event.Month)
			return true
		case <-time.After(20 * time.Millisecond):
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatchReceivesSavedMonths(t *testing.T) {
	hub, url := startHub(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var months []schedule.MonthKey
	go remote.Watch(ctx, url, 10*time.Millisecond, func(m schedule.MonthKey) {
		mu.Lock()
		defer mu.Unlock()
		months = append(months, m)
	})

	require.Eventually(t, func() bool {
		hub.ScheduleSaved("2024-05")
		mu.Lock()
		defer mu.Unlock()
		return len(months) > 0
	}, 2*time.Second, 20*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, schedule.MonthKey("2024-05"), months[0])
}

func TestBroadcastAfterStopDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := ws.NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	done := make(chan struct{})
	go func() {
		hub.ScheduleSaved("2024-01")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked after hub stopped")
	}
}
