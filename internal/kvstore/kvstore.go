// Package kvstore persists whole month collections under the key
// schedule_<month>, as the local fallback for the remote endpoint.
package kvstore

import (
	"encoding/json"
	"fmt"

	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/schedule"
)

// Key returns the storage key of a month.
func Key(month schedule.MonthKey) string {
	return "schedule_" + month.String()
}

func decode(month schedule.MonthKey, data []byte) ([]domain.DayRecord, error) {
	var records []domain.DayRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("corrupt data for %s: %w", Key(month), err)
	}
	return records, nil
}
