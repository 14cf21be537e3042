package domain

import (
	"strconv"
	"time"
)

// HistoryItem records one successful lookup. It is never mutated after creation.
type HistoryItem struct {
	ID         string              `json:"id"`
	DeviceName string              `json:"deviceName"`
	Timestamp  int64               `json:"timestamp"`
	Settings   SensitivitySettings `json:"settings"`
}

// NewHistoryItem wraps settings into a history entry stamped with now.
// The device name is the service-confirmed one, not the raw user input.
func NewHistoryItem(settings SensitivitySettings, now time.Time) HistoryItem {
	ms := now.UnixMilli()
	return HistoryItem{
		ID:         strconv.FormatInt(ms, 10),
		DeviceName: settings.DeviceName,
		Timestamp:  ms,
		Settings:   settings,
	}
}

// Time returns the creation time of the entry.
func (h HistoryItem) Time() time.Time {
	return time.UnixMilli(h.Timestamp)
}

// PrependBounded returns a new slice with item first followed by items,
// truncated to capacity entries. The input slice is not modified.
func PrependBounded(items []HistoryItem, item HistoryItem, capacity int) []HistoryItem {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	n := len(items) + 1
	if n > capacity {
		n = capacity
	}
	out := make([]HistoryItem, 0, n)
	out = append(out, item)
	for _, existing := range items {
		if len(out) == n {
			break
		}
		out = append(out, existing)
	}
	return out
}
