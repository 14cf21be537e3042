package retriever

import (
	"fmt"

	"github.com/doeshing/sensi-go/internal/ports"
)

// settingsFields lists every required output field in schema order.
var settingsFields = []string{
	"general", "redDot", "scope2x", "scope4x", "sniperScope", "freeLook",
	"dpi", "fireButtonSize", "tips", "deviceName",
}

// settingsSchema describes the single JSON object the service must return.
func settingsSchema(language string) ports.Schema {
	sensitivity := func(label string) ports.Schema {
		return ports.Schema{
			Type:        "integer",
			Description: fmt.Sprintf("Sensitivity value for %s (0-200)", label),
		}
	}
	return ports.Schema{
		Type: "object",
		Properties: map[string]ports.Schema{
			"general":        sensitivity("General"),
			"redDot":         sensitivity("Red Dot"),
			"scope2x":        sensitivity("2x Scope"),
			"scope4x":        sensitivity("4x Scope"),
			"sniperScope":    sensitivity("Sniper Scope"),
			"freeLook":       sensitivity("Free Look"),
			"dpi":            {Type: "string", Description: "Recommended DPI setting"},
			"fireButtonSize": {Type: "string", Description: "Recommended Fire Button size percentage"},
			"tips": {
				Type:        "array",
				Items:       &ports.Schema{Type: "string"},
				Description: fmt.Sprintf("Gameplay tips in %s for this specific device to improve headshots", language),
			},
			"deviceName": {Type: "string", Description: "The confirmed device name"},
		},
		Required: append([]string(nil), settingsFields...),
	}
}
