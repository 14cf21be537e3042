// Package preferences persists small user toggles next to the history.
package preferences

import (
	"encoding/json"
	"fmt"

	"github.com/doeshing/sensi-go/internal/domain"
	"github.com/doeshing/sensi-go/internal/ports"
)

// Service reads and writes the mute preference.
type Service struct {
	Store  ports.KeyValueStore
	Logger ports.Logger
}

// Muted returns the stored mute flag. Missing or unreadable values mean false.
func (s *Service) Muted() bool {
	data, found, err := s.Store.Get(domain.MuteStoreKey)
	if err != nil {
		s.Logger.Warn("mute preference read failed", map[string]interface{}{"error": err.Error()})
		return false
	}
	if !found {
		return false
	}
	var muted bool
	if err := json.Unmarshal(data, &muted); err != nil {
		s.Logger.Warn("mute preference unreadable", map[string]interface{}{"error": err.Error()})
		return false
	}
	return muted
}

// SetMuted persists the mute flag as a JSON boolean.
func (s *Service) SetMuted(muted bool) error {
	data, err := json.Marshal(muted)
	if err != nil {
		return err
	}
	if err := s.Store.Put(domain.MuteStoreKey, data); err != nil {
		return fmt.Errorf("persist mute preference: %w", err)
	}
	return nil
}

var _ ports.PreferenceStore = (*Service)(nil)
