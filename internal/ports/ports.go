// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). The application depends on these abstractions, never
// on concrete HTTP clients, databases or CLI frameworks.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., Provider, KeyValueStore)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/doeshing/sensi-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.sensi/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// CredentialSource resolves secrets by name. The default implementation reads
// the process environment (optionally primed from a .env file).
type CredentialSource interface {
	Lookup(name string) (string, bool)
}

// ProviderFactory builds AI provider instances based on model definitions.
type ProviderFactory interface {
	ForModel(model domain.ModelDefinition, apiKey string) (Provider, error)
}

// Provider wraps a generative AI completion service that can answer with
// a single JSON object conforming to a schema.
type Provider interface {
	Name() string
	Model() domain.ModelDefinition
	Complete(context.Context, CompletionRequest) (CompletionResponse, error)
}

// CompletionRequest carries the rendered prompt and the strict output schema.
type CompletionRequest struct {
	Messages []domain.PromptMessage
	Schema   Schema
}

// CompletionResponse holds the raw text payload returned by the service.
// Text is empty when the service answered without content.
type CompletionResponse struct {
	Text string
}

// Schema is a JSON-schema style structural description of the expected output.
// Types use lower-case JSON schema names (object, integer, string, array).
type Schema struct {
	Type        string            `json:"type"`
	Description string            `json:"description,omitempty"`
	Properties  map[string]Schema `json:"properties,omitempty"`
	Items       *Schema           `json:"items,omitempty"`
	Required    []string          `json:"required,omitempty"`
}

// KeyValueStore is the durable local store addressed by fixed keys.
// Get reports found=false for an absent key.
type KeyValueStore interface {
	Get(key string) (value []byte, found bool, err error)
	Put(key string, value []byte) error
	Delete(key string) error
}

// SettingsRetriever fetches sensitivity settings for a free-text device name.
type SettingsRetriever interface {
	FetchSettings(ctx context.Context, deviceName string) (domain.SensitivitySettings, error)
}

// HistoryRepository is the bounded, persisted list of past lookups.
type HistoryRepository interface {
	Load() []domain.HistoryItem
	Add(domain.HistoryItem) ([]domain.HistoryItem, error)
	Clear() ([]domain.HistoryItem, error)
	Get(id string) (domain.HistoryItem, bool)
	Items() []domain.HistoryItem
}

// PreferenceStore persists small user toggles such as the mute flag.
type PreferenceStore interface {
	Muted() bool
	SetMuted(bool) error
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
