package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/sensi-go/internal/domain"
	"github.com/doeshing/sensi-go/internal/ports"
)

var (
	// ErrBusy is returned when a lookup is submitted while another is running.
	ErrBusy = errors.New("a lookup is already in progress")
	// ErrEmptyInput is returned for a blank device name.
	ErrEmptyInput = errors.New("device name is required")
	// ErrNotFound is returned when restoring an unknown history entry.
	ErrNotFound = errors.New("history entry not found")
)

// Controller owns the process-wide State and runs the effects around each
// transition. The lock is released while the retriever call is in flight so
// readers observe the loading state and concurrent submits are rejected.
type Controller struct {
	Retriever   ports.SettingsRetriever
	History     ports.HistoryRepository
	Preferences ports.PreferenceStore
	Logger      ports.Logger

	// Now stamps new history entries; nil means time.Now.
	Now func() time.Time

	mu    sync.Mutex
	state State
}

// Start hydrates the state from persisted history and preferences.
func (c *Controller) Start() State {
	history := c.History.Load()
	muted := c.Preferences.Muted()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Hydrate(c.state, history, muted)
	c.Logger.Debug("session hydrated", map[string]interface{}{
		"history": len(history),
		"muted":   muted,
	})
	return c.state.Clone()
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Submit looks up settings for input, records the result in history and
// returns the resulting state. Input is forwarded as typed; blank input is rejected. A retrieval failure is returned alongside a
// state carrying its user-facing message.
func (c *Controller) Submit(ctx context.Context, input string) (State, error) {
	c.mu.Lock()
	if strings.TrimSpace(input) == "" {
		snapshot := c.state.Clone()
		c.mu.Unlock()
		return snapshot, ErrEmptyInput
	}
	next, ok := BeginSearch(c.state, input)
	if !ok {
		snapshot := c.state.Clone()
		c.mu.Unlock()
		return snapshot, ErrBusy
	}
	c.state = next
	c.mu.Unlock()

	started := time.Now()
	settings, err := c.Retriever.FetchSettings(ctx, input)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.Logger.Error("lookup failed", err, map[string]interface{}{
			"device":   input,
			"duration": time.Since(started).String(),
		})
		c.state = SearchFailed(c.state, err)
		return c.state.Clone(), err
	}

	history, herr := c.History.Add(domain.NewHistoryItem(settings, c.now()))
	if herr != nil {
		c.Logger.Warn("history not updated", map[string]interface{}{"error": herr.Error()})
	}
	c.state = SearchSucceeded(c.state, settings, history)
	c.Logger.Info("lookup succeeded", map[string]interface{}{
		"device":    input,
		"confirmed": settings.DeviceName,
		"duration":  time.Since(started).String(),
	})
	return c.state.Clone(), nil
}

// Restore displays the history entry with the given id.
func (c *Controller) Restore(id string) (State, error) {
	item, ok := c.History.Get(id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Loading {
		return c.state.Clone(), ErrBusy
	}
	if !ok {
		return c.state.Clone(), fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	c.state = RestoreFromHistory(c.state, item)
	return c.state.Clone(), nil
}

// ClearHistory drops every history entry.
func (c *Controller) ClearHistory() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.History.Clear(); err != nil {
		return c.state.Clone(), err
	}
	c.state = HistoryCleared(c.state)
	return c.state.Clone(), nil
}

// ToggleMute flips and persists the mute preference.
func (c *Controller) ToggleMute() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyMute(ToggleMute(c.state))
}

// SetMuted persists an explicit mute preference.
func (c *Controller) SetMuted(muted bool) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Muted == muted {
		next := c.state.Clone()
		next.Cue = CueNone
		return c.applyMute(next)
	}
	return c.applyMute(ToggleMute(c.state))
}

func (c *Controller) applyMute(next State) (State, error) {
	if err := c.Preferences.SetMuted(next.Muted); err != nil {
		return c.state.Clone(), err
	}
	c.state = next
	return c.state.Clone(), nil
}

func (c *Controller) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
