// Package remote talks to the schedule endpoint served by cmd/api.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/schedule"
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

// Client implements syncer.Backend over HTTP.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type pushRequest struct {
	Items []domain.DayRecord `json:"items"`
}

type deleteRequest struct {
	Date     string          `json:"date"`
	Employee domain.Employee `json:"employee"`
}

// Fetch returns the sparse snapshot stored for month.
func (c *Client) Fetch(ctx context.Context, month schedule.MonthKey) ([]domain.DayRecord, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("month", month.String())
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", month, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", month, err)
	}
	var records []domain.DayRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("fetch %s: decoding response: %w", month, err)
	}
	return records, nil
}

// Push stores the full collection of month.
func (c *Client) Push(ctx context.Context, month schedule.MonthKey, records []domain.DayRecord) error {
	if err := c.send(ctx, http.MethodPost, pushRequest{Items: records}); err != nil {
		return fmt.Errorf("push %s: %w", month, err)
	}
	return nil
}

// Delete removes one stored record.
func (c *Client) Delete(ctx context.Context, date string, employee domain.Employee) error {
	if err := c.send(ctx, http.MethodDelete, deleteRequest{Date: date, Employee: employee}); err != nil {
		return fmt.Errorf("delete %s/%s: %w", date, employee, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return checkStatus(resp)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}
	return nil
}
