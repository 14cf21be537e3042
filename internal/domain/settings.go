package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Sensitivity bounds advertised to the AI service.
const (
	MinSensitivity = 0
	MaxSensitivity = 200
)

// SensitivitySettings is the structured answer returned for a device lookup.
// Values are treated as immutable once parsed.
type SensitivitySettings struct {
	General        int      `json:"general"`
	RedDot         int      `json:"redDot"`
	Scope2x        int      `json:"scope2x"`
	Scope4x        int      `json:"scope4x"`
	SniperScope    int      `json:"sniperScope"`
	FreeLook       int      `json:"freeLook"`
	DPI            string   `json:"dpi"`
	FireButtonSize string   `json:"fireButtonSize"`
	Tips           []string `json:"tips"`
	DeviceName     string   `json:"deviceName"`
}

// Slider is a labelled numeric setting shown in the results panel.
type Slider struct {
	Label string
	Value int
}

// DisplayedSliders returns the six sensitivities shown to the user, in display order.
func (s SensitivitySettings) DisplayedSliders() []Slider {
	return []Slider{
		{Label: "General", Value: s.General},
		{Label: "Red Dot", Value: s.RedDot},
		{Label: "2x Scope", Value: s.Scope2x},
		{Label: "4x Scope", Value: s.Scope4x},
		{Label: "Sniper Scope", Value: s.SniperScope},
		{Label: "Free Look", Value: s.FreeLook},
	}
}

// OutOfRange reports the numeric fields that fall outside [MinSensitivity, MaxSensitivity].
func (s SensitivitySettings) OutOfRange() []string {
	fields := []struct {
		name  string
		value int
	}{
		{"general", s.General},
		{"redDot", s.RedDot},
		{"scope2x", s.Scope2x},
		{"scope4x", s.Scope4x},
		{"sniperScope", s.SniperScope},
		{"freeLook", s.FreeLook},
	}
	var out []string
	for _, f := range fields {
		if f.value < MinSensitivity || f.value > MaxSensitivity {
			out = append(out, f.name)
		}
	}
	return out
}

// rawSettings mirrors SensitivitySettings with pointer fields so absent keys can be detected.
type rawSettings struct {
	General        *int      `json:"general"`
	RedDot         *int      `json:"redDot"`
	Scope2x        *int      `json:"scope2x"`
	Scope4x        *int      `json:"scope4x"`
	SniperScope    *int      `json:"sniperScope"`
	FreeLook       *int      `json:"freeLook"`
	DPI            *string   `json:"dpi"`
	FireButtonSize *string   `json:"fireButtonSize"`
	Tips           *[]string `json:"tips"`
	DeviceName     *string   `json:"deviceName"`
}

// ParseSettings decodes a JSON object into SensitivitySettings.
// Every field is required; a missing or mistyped field is an error, never a default.
func ParseSettings(data []byte) (SensitivitySettings, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return SensitivitySettings{}, fmt.Errorf("empty payload")
	}

	var raw rawSettings
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return SensitivitySettings{}, fmt.Errorf("decode settings: %w", err)
	}

	var missing []string
	checkInt := func(name string, v *int) int {
		if v == nil {
			missing = append(missing, name)
			return 0
		}
		return *v
	}
	checkString := func(name string, v *string) string {
		if v == nil {
			missing = append(missing, name)
			return ""
		}
		return *v
	}

	settings := SensitivitySettings{
		General:        checkInt("general", raw.General),
		RedDot:         checkInt("redDot", raw.RedDot),
		Scope2x:        checkInt("scope2x", raw.Scope2x),
		Scope4x:        checkInt("scope4x", raw.Scope4x),
		SniperScope:    checkInt("sniperScope", raw.SniperScope),
		FreeLook:       checkInt("freeLook", raw.FreeLook),
		DPI:            checkString("dpi", raw.DPI),
		FireButtonSize: checkString("fireButtonSize", raw.FireButtonSize),
		DeviceName:     checkString("deviceName", raw.DeviceName),
	}
	if raw.Tips == nil || *raw.Tips == nil {
		missing = append(missing, "tips")
	} else {
		settings.Tips = make([]string, len(*raw.Tips))
		copy(settings.Tips, *raw.Tips)
	}

	if len(missing) > 0 {
		return SensitivitySettings{}, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return settings, nil
}
