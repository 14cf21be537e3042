// Package history keeps the bounded, persisted list of past lookups.
package history

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/doeshing/sensi-go/internal/domain"
	"github.com/doeshing/sensi-go/internal/ports"
)

// Cache is an insertion-ordered, most-recent-first list of HistoryItems
// mirrored to a KeyValueStore under a fixed key.
type Cache struct {
	store    ports.KeyValueStore
	key      string
	capacity int
	logger   ports.Logger

	mu    sync.Mutex
	items []domain.HistoryItem
}

// NewCache builds a cache over store. A non-positive capacity uses the default of 10.
func NewCache(store ports.KeyValueStore, capacity int, logger ports.Logger) *Cache {
	if capacity <= 0 {
		capacity = domain.DefaultHistoryCapacity
	}
	return &Cache{
		store:    store,
		key:      domain.HistoryStoreKey,
		capacity: capacity,
		logger:   logger,
	}
}

// Load reads the persisted history. Absent, corrupt or differently shaped
// state yields an empty list; a single bad entry discards them all.
func (c *Cache) Load() []domain.HistoryItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	data, found, err := c.store.Get(c.key)
	if err != nil {
		c.logger.Warn("history read failed", map[string]interface{}{"error": err.Error()})
		return c.snapshot()
	}
	if !found {
		return c.snapshot()
	}

	items, err := decodeItems(data)
	if err != nil {
		c.logger.Warn("history unreadable, starting empty", map[string]interface{}{"error": err.Error()})
		return c.snapshot()
	}
	if len(items) > c.capacity {
		items = items[:c.capacity]
	}
	c.items = items
	return c.snapshot()
}

// Add prepends item, truncates to capacity, persists and returns the new list.
// The in-memory list only changes once the write succeeded.
func (c *Cache) Add(item domain.HistoryItem) ([]domain.HistoryItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item.ID = c.uniqueID(item.ID)
	next := domain.PrependBounded(c.items, item, c.capacity)
	if err := c.persist(next); err != nil {
		return c.snapshot(), err
	}
	c.items = next
	c.logger.Debug("history entry added", map[string]interface{}{
		"id":      item.ID,
		"device":  item.DeviceName,
		"entries": len(next),
	})
	return c.snapshot(), nil
}

// Clear drops every entry and removes the persisted representation.
func (c *Cache) Clear() ([]domain.HistoryItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Delete(c.key); err != nil {
		return c.snapshot(), fmt.Errorf("clear history: %w", err)
	}
	c.items = nil
	return []domain.HistoryItem{}, nil
}

// Get finds an entry by id.
func (c *Cache) Get(id string) (domain.HistoryItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return domain.HistoryItem{}, false
}

// Items returns a copy of the current list.
func (c *Cache) Items() []domain.HistoryItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Capacity returns the maximum number of entries kept.
func (c *Cache) Capacity() int {
	return c.capacity
}

func (c *Cache) persist(items []domain.HistoryItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := c.store.Put(c.key, data); err != nil {
		return fmt.Errorf("persist history: %w", err)
	}
	return nil
}

// uniqueID suffixes id when an entry created in the same millisecond already uses it.
func (c *Cache) uniqueID(id string) string {
	taken := make(map[string]bool, len(c.items))
	for _, item := range c.items {
		taken[item.ID] = true
	}
	if !taken[id] {
		return id
	}
	for n := 1; ; n++ {
		candidate := id + "-" + strconv.Itoa(n)
		if !taken[candidate] {
			return candidate
		}
	}
}

type storedItem struct {
	ID         string          `json:"id"`
	DeviceName string          `json:"deviceName"`
	Timestamp  int64           `json:"timestamp"`
	Settings   json.RawMessage `json:"settings"`
}

func decodeItems(data []byte) ([]domain.HistoryItem, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}

	items := make([]domain.HistoryItem, 0, len(raw))
	for i, entry := range raw {
		var stored storedItem
		if err := json.Unmarshal(entry, &stored); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if stored.ID == "" {
			return nil, fmt.Errorf("entry %d: missing id", i)
		}
		settings, err := domain.ParseSettings(stored.Settings)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		items = append(items, domain.HistoryItem{
			ID:         stored.ID,
			DeviceName: stored.DeviceName,
			Timestamp:  stored.Timestamp,
			Settings:   settings,
		})
	}
	return items, nil
}

func (c *Cache) snapshot() []domain.HistoryItem {
	out := make([]domain.HistoryItem, len(c.items))
	copy(out, c.items)
	return out
}

var _ ports.HistoryRepository = (*Cache)(nil)
