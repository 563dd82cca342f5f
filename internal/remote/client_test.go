package remote_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/remote"
)

func TestFetchSendsMonthQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "2024-02", r.URL.Query().Get("month"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"date":"2024-02-01","employee":"denis","shift1Start":"09:00","shift1End":"13:00","hasShift2":false,"shift2Start":"14:00","shift2End":"18:00","orders":3,"bonus":12.5}]`))
	}))
	defer srv.Close()

	c := remote.NewClient(srv.URL+"/schedule", time.Second)
	records, err := c.Fetch(context.Background(), "2024-02")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.DayRecord{
		Date: "2024-02-01", Employee: domain.EmployeeDenis,
		Shift1Start: "09:00", Shift1End: "13:00",
		Shift2Start: "14:00", Shift2End: "18:00",
		Orders: 3, Bonus: 12.5,
	}, records[0])
}

func TestPushWrapsItems(t *testing.T) {
	var got struct {
		Items []domain.DayRecord `json:"items"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := remote.NewClient(srv.URL, time.Second)
	records := []domain.DayRecord{{Date: "2024-02-01", Employee: domain.EmployeeNikita, Orders: 2}}
	require.NoError(t, c.Push(context.Background(), "2024-02", records))
	assert.Equal(t, records, got.Items)
}

func TestStatusErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := remote.NewClient(srv.URL, time.Second)
	_, err := c.Fetch(context.Background(), "2024-02")
	assert.ErrorIs(t, err, remote.ErrUnexpectedStatus)
	err = c.Push(context.Background(), "2024-02", nil)
	assert.ErrorIs(t, err, remote.ErrUnexpectedStatus)
	err = c.Delete(context.Background(), "2024-02-01", domain.EmployeeDenis)
	assert.ErrorIs(t, err, remote.ErrUnexpectedStatus)
}

func TestDeleteSendsKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"date": "2024-02-01", "employee": "andrey"}, body)
	}))
	defer srv.Close()

	c := remote.NewClient(srv.URL, time.Second)
	require.NoError(t, c.Delete(context.Background(), "2024-02-01", domain.EmployeeAndrey))
}
