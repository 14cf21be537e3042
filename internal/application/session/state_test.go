package session

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/sensi-go/internal/domain"
)

func TestBeginSearch(t *testing.T) {
	prior := State{
		Error:    "old failure",
		Settings: &domain.SensitivitySettings{General: 10},
	}

	tests := []struct {
		name    string
		state   State
		input   string
		wantOK  bool
		wantCue Cue
	}{
		{name: "starts lookup", state: prior, input: "Pixel 8", wantOK: true, wantCue: CueFire},
		{name: "muted has no cue", state: State{Muted: true}, input: "Pixel 8", wantOK: true, wantCue: CueNone},
		{name: "blank input", state: prior, input: "   ", wantOK: false},
		{name: "already loading", state: State{Loading: true}, input: "Pixel 8", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := BeginSearch(tt.state, tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				if diff := cmp.Diff(tt.state, next); diff != "" {
					t.Fatalf("rejected search changed state (-want +got):\n%s", diff)
				}
				return
			}
			if !next.Loading || next.Error != "" || next.Settings != nil {
				t.Fatalf("unexpected state %+v", next)
			}
			if next.DeviceInput != tt.input || next.Cue != tt.wantCue {
				t.Fatalf("input %q cue %q", next.DeviceInput, next.Cue)
			}
		})
	}
}

func TestSearchOutcomesClearLoading(t *testing.T) {
	loading, ok := BeginSearch(State{}, "Redmi")
	if !ok {
		t.Fatal("BeginSearch rejected")
	}

	settings := domain.SensitivitySettings{General: 95, DeviceName: "Xiaomi Redmi Note 12"}
	history := []domain.HistoryItem{{ID: "1", DeviceName: "Xiaomi Redmi Note 12"}}
	done := SearchSucceeded(loading, settings, history)
	if done.Loading || done.Settings == nil || done.Settings.General != 95 || len(done.History) != 1 {
		t.Fatalf("unexpected success state %+v", done)
	}
	if done.Cue != CueFire {
		t.Fatalf("cue = %q, want fire", done.Cue)
	}

	failed := SearchFailed(loading, domain.NewRetrievalError(domain.KindConfiguration, nil))
	if failed.Loading || failed.Settings != nil {
		t.Fatalf("unexpected failure state %+v", failed)
	}
	if failed.Error != domain.MsgCredentialMissing {
		t.Fatalf("error = %q", failed.Error)
	}

	generic := SearchFailed(loading, errors.New(""))
	if generic.Error != domain.MsgGenericFailure {
		t.Fatalf("generic error = %q", generic.Error)
	}
}

func TestRestoreFromHistory(t *testing.T) {
	item := domain.HistoryItem{
		ID:         "1",
		DeviceName: "iPhone 15 Pro Max",
		Settings:   domain.SensitivitySettings{General: 90, DeviceName: "iPhone 15 Pro Max"},
	}

	next := RestoreFromHistory(State{Error: "stale"}, item)
	if next.Settings == nil || next.Settings.General != 90 {
		t.Fatalf("settings not restored: %+v", next.Settings)
	}
	if next.DeviceInput != "iPhone 15 Pro Max" || next.Error != "" || next.Cue != CuePump {
		t.Fatalf("unexpected state %+v", next)
	}

	muted := RestoreFromHistory(State{Muted: true}, item)
	if muted.Cue != CueNone {
		t.Fatalf("muted cue = %q", muted.Cue)
	}
}

func TestHydrateClearAndMute(t *testing.T) {
	history := []domain.HistoryItem{{ID: "2"}, {ID: "1"}}
	s := Hydrate(State{}, history, true)
	if !s.Muted || len(s.History) != 2 {
		t.Fatalf("unexpected hydrated state %+v", s)
	}

	history[0].ID = "mutated"
	if s.History[0].ID != "2" {
		t.Fatal("state shares the history slice with its caller")
	}

	cleared := HistoryCleared(s)
	if cleared.History == nil || len(cleared.History) != 0 {
		t.Fatalf("history = %#v", cleared.History)
	}
	if len(s.History) != 2 {
		t.Fatal("HistoryCleared mutated its input")
	}
	if cleared.Cue != CueNone {
		t.Fatalf("muted clear cue = %q", cleared.Cue)
	}
	if got := HistoryCleared(State{}).Cue; got != CuePump {
		t.Fatalf("clear cue = %q, want %q", got, CuePump)
	}

	if ToggleMute(s).Muted {
		t.Fatal("ToggleMute did not flip")
	}
}
