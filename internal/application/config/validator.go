package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/sensi-go/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if len(cfg.Models) == 0 {
		return errors.New("at least one model must be configured")
	}
	if err := cfg.ValidateConsistency(); err != nil {
		return err
	}
	seen := map[string]bool{}
	for _, model := range cfg.Models {
		if err := validateModel(model); err != nil {
			return err
		}
		if seen[model.Name] {
			return fmt.Errorf("model %s declared twice", model.Name)
		}
		seen[model.Name] = true
	}
	if err := validateStorage(cfg.Storage); err != nil {
		return err
	}
	if cfg.History.Capacity < 0 {
		return fmt.Errorf("history.capacity must be >= 0")
	}
	if cfg.Preferences.TimeoutSeconds < 0 {
		return fmt.Errorf("preferences.timeout must be >= 0")
	}
	return nil
}

func validateModel(model domain.ModelDefinition) error {
	if model.Name == "" {
		return errors.New("model name must be set")
	}
	switch model.Provider {
	case domain.ProviderKindUnknown, domain.ProviderKindGemini, domain.ProviderKindOpenAI:
	default:
		return fmt.Errorf("model %s: provider must be gemini|openai, got %s", model.Name, model.Provider)
	}
	if model.AuthEnvVar == "" {
		return fmt.Errorf("model %s: auth_env_var must name the environment variable holding the API key", model.Name)
	}
	if looksLikeSecret(model.AuthEnvVar) {
		return fmt.Errorf("model %s: auth_env_var must be a variable name, not the key itself", model.Name)
	}
	return nil
}

func validateStorage(storage domain.StorageSettings) error {
	switch strings.ToLower(storage.Backend) {
	case "", domain.StorageBackendFile, domain.StorageBackendSQLite:
		return nil
	default:
		return fmt.Errorf("storage.backend must be file|sqlite, got %s", storage.Backend)
	}
}

// looksLikeSecret catches API keys pasted where an env var name belongs.
func looksLikeSecret(value string) bool {
	for _, prefix := range []string{"AIza", "sk-"} {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}
