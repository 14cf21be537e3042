package domain_test

import (
	"testing"

	"github.com/doeshing/sensi-go/internal/domain"
)

// TestConfig_GetDefaultModel tests retrieving the default model
func TestConfig_GetDefaultModel(t *testing.T) {
	tests := []struct {
		name        string
		config      domain.Config
		wantError   bool
		wantModelID string
	}{
		{
			name: "returns default model successfully",
			config: domain.Config{
				Preferences: domain.Preferences{DefaultModel: "gemini"},
				Models: []domain.ModelDefinition{
					{Name: "gemini", ModelID: "gemini-3-flash-preview"},
					{Name: "gpt", ModelID: "gpt-4o-mini"},
				},
			},
			wantModelID: "gemini-3-flash-preview",
		},
		{
			name: "returns error when default model not found",
			config: domain.Config{
				Preferences: domain.Preferences{DefaultModel: "nonexistent"},
				Models:      []domain.ModelDefinition{{Name: "gemini"}},
			},
			wantError: true,
		},
		{
			name: "returns error when no default model configured",
			config: domain.Config{
				Models: []domain.ModelDefinition{{Name: "gemini"}},
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := tt.config.GetDefaultModel()
			if tt.wantError {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if model.ModelID != tt.wantModelID {
				t.Errorf("got model ID %s, want %s", model.ModelID, tt.wantModelID)
			}
		})
	}
}

// TestConfig_PickModel tests override, default and first-model resolution
func TestConfig_PickModel(t *testing.T) {
	cfg := domain.Config{
		Preferences: domain.Preferences{DefaultModel: "gpt"},
		Models: []domain.ModelDefinition{
			{Name: "gemini"},
			{Name: "gpt"},
		},
	}

	tests := []struct {
		name      string
		config    domain.Config
		override  string
		wantName  string
		wantError bool
	}{
		{name: "override wins", config: cfg, override: "gemini", wantName: "gemini"},
		{name: "falls back to default", config: cfg, wantName: "gpt"},
		{name: "unknown override", config: cfg, override: "llama", wantError: true},
		{
			name:     "first model when no default",
			config:   domain.Config{Models: cfg.Models},
			wantName: "gemini",
		},
		{name: "empty configuration", config: domain.Config{}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := tt.config.PickModel(tt.override)
			if tt.wantError {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if model.Name != tt.wantName {
				t.Errorf("got %s, want %s", model.Name, tt.wantName)
			}
		})
	}
}

// TestConfig_Getters tests the defaulting accessors
func TestConfig_Getters(t *testing.T) {
	var empty domain.Config
	if got := empty.GetTipsLanguage(); got != domain.DefaultTipsLanguage {
		t.Errorf("GetTipsLanguage() = %s", got)
	}
	if got := empty.GetHistoryCapacity(); got != domain.DefaultHistoryCapacity {
		t.Errorf("GetHistoryCapacity() = %d", got)
	}
	if got := empty.GetStorageBackend(); got != domain.StorageBackendFile {
		t.Errorf("GetStorageBackend() = %s", got)
	}
	if got := empty.GetServerAddr(); got != domain.DefaultServerAddr {
		t.Errorf("GetServerAddr() = %s", got)
	}
	if got := empty.GetTimeoutSeconds(); got != 60 {
		t.Errorf("GetTimeoutSeconds() = %d", got)
	}

	set := domain.Config{
		Preferences: domain.Preferences{TipsLanguage: "English", TimeoutSeconds: 5},
		History:     domain.HistorySettings{Capacity: 3},
		Storage:     domain.StorageSettings{Backend: domain.StorageBackendSQLite},
		Server:      domain.ServerSettings{Addr: ":9000"},
	}
	if set.GetTipsLanguage() != "English" || set.GetHistoryCapacity() != 3 ||
		set.GetStorageBackend() != domain.StorageBackendSQLite ||
		set.GetServerAddr() != ":9000" || set.GetTimeoutSeconds() != 5 {
		t.Errorf("explicit values not honoured: %+v", set)
	}
}

// TestConfig_ValidateConsistency tests configuration consistency validation
func TestConfig_ValidateConsistency(t *testing.T) {
	tests := []struct {
		name      string
		config    domain.Config
		wantError bool
	}{
		{
			name: "valid configuration",
			config: domain.Config{
				Preferences: domain.Preferences{DefaultModel: "gemini"},
				Models:      []domain.ModelDefinition{{Name: "gemini"}},
			},
		},
		{
			name: "default model without models",
			config: domain.Config{
				Preferences: domain.Preferences{DefaultModel: "gemini"},
			},
			wantError: true,
		},
		{
			name: "default model missing from list",
			config: domain.Config{
				Preferences: domain.Preferences{DefaultModel: "gpt"},
				Models:      []domain.ModelDefinition{{Name: "gemini"}},
			},
			wantError: true,
		},
		{name: "empty configuration", config: domain.Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.ValidateConsistency()
			if tt.wantError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
