// Package session holds the interactive lookup state and its transitions.
//
// Transitions in this file are pure: each takes the current State and returns
// the next one. Controller (controller.go) applies them around the effectful
// calls (retrieval, history persistence, preference writes).
package session

import (
	"strings"

	"github.com/doeshing/sensi-go/internal/domain"
)

// Cue names the sound effect for the interaction that produced a State.
// Completing a lookup keeps the cue set when it began.
type Cue string

const (
	CueNone Cue = ""
	// CueFire plays when a lookup is submitted.
	CueFire Cue = "fire"
	// CuePump plays when a history entry is restored or the history is cleared.
	CuePump Cue = "pump"
)

// State is the process-wide view of the lookup screen.
type State struct {
	DeviceInput string                      `json:"deviceInput"`
	Loading     bool                        `json:"loading"`
	Settings    *domain.SensitivitySettings `json:"settings"`
	History     []domain.HistoryItem        `json:"history"`
	Error       string                      `json:"error"`
	Muted       bool                        `json:"muted"`
	Cue         Cue                         `json:"cue,omitempty"`
}

// Clone returns a copy that shares no slices with s.
func (s State) Clone() State {
	out := s
	out.History = cloneHistory(s.History)
	if s.Settings != nil {
		settings := *s.Settings
		settings.Tips = append([]string{}, s.Settings.Tips...)
		out.Settings = &settings
	}
	return out
}

// Hydrate seeds the state from persisted history and the mute preference.
func Hydrate(s State, history []domain.HistoryItem, muted bool) State {
	next := s.Clone()
	next.History = cloneHistory(history)
	next.Muted = muted
	next.Cue = CueNone
	return next
}

// BeginSearch enters the loading state for input. It reports false, leaving
// the state untouched, when input is blank or a lookup is already running.
func BeginSearch(s State, input string) (State, bool) {
	if s.Loading || strings.TrimSpace(input) == "" {
		return s, false
	}
	next := s.Clone()
	next.DeviceInput = input
	next.Loading = true
	next.Error = ""
	next.Settings = nil
	next.Cue = cue(s.Muted, CueFire)
	return next, true
}

// SearchSucceeded shows settings and replaces the history with the persisted list.
func SearchSucceeded(s State, settings domain.SensitivitySettings, history []domain.HistoryItem) State {
	next := s.Clone()
	next.Loading = false
	next.Settings = &settings
	next.History = cloneHistory(history)
	next.Error = ""
	return next
}

// SearchFailed shows the user-facing message for err. Settings stay cleared.
func SearchFailed(s State, err error) State {
	next := s.Clone()
	next.Loading = false
	next.Error = domain.UserMessage(err)
	if next.Error == "" {
		next.Error = domain.MsgGenericFailure
	}
	return next
}

// RestoreFromHistory displays a previously fetched result without a new lookup.
func RestoreFromHistory(s State, item domain.HistoryItem) State {
	next := s.Clone()
	settings := item.Settings
	next.Settings = &settings
	next.DeviceInput = item.DeviceName
	next.Error = ""
	next.Cue = cue(s.Muted, CuePump)
	return next
}

// HistoryCleared empties the history strip. The displayed result is kept.
func HistoryCleared(s State) State {
	next := s.Clone()
	next.History = []domain.HistoryItem{}
	next.Cue = cue(s.Muted, CuePump)
	return next
}

// ToggleMute flips the mute flag.
func ToggleMute(s State) State {
	next := s.Clone()
	next.Muted = !s.Muted
	next.Cue = CueNone
	return next
}

func cue(muted bool, c Cue) Cue {
	if muted {
		return CueNone
	}
	return c
}

func cloneHistory(items []domain.HistoryItem) []domain.HistoryItem {
	out := make([]domain.HistoryItem, len(items))
	copy(out, items)
	return out
}
