// Package ai provides the provider factory and the HTTP-based providers.
//
// Providers share one HTTP client and differ only in a providerAdapter
// (endpoint, request body, auth headers, response path). Every provider asks the
// service for a single JSON object constrained by the request schema.
package ai

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/doeshing/sensi-go/internal/domain"
	"github.com/doeshing/sensi-go/internal/ports"
)

// Factory creates AI provider instances based on model definitions.
// It maintains a single HTTP client shared across all providers.
type Factory struct {
	httpClient *http.Client
}

// NewFactory creates a new provider factory whose client times out after timeout.
// A non-positive timeout uses the transport default.
func NewFactory(timeout time.Duration) *Factory {
	if timeout <= 0 {
		timeout = domain.DefaultHTTPClientTimeout
	}
	return &Factory{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewFactoryWithClient is used by tests to point providers at a fake server.
func NewFactoryWithClient(client *http.Client) *Factory {
	return &Factory{httpClient: client}
}

// ForModel builds the provider for model, authenticating with apiKey.
func (f *Factory) ForModel(model domain.ModelDefinition, apiKey string) (ports.Provider, error) {
	kind := model.Provider
	if kind == domain.ProviderKindUnknown {
		kind = inferProviderKind(model.Endpoint, model.Name)
	}

	switch kind {
	case domain.ProviderKindGemini:
		return newHTTPProvider("gemini", model, apiKey, f.httpClient, geminiAdapter()), nil
	case domain.ProviderKindOpenAI:
		return newHTTPProvider("openai", model, apiKey, f.httpClient, openaiAdapter()), nil
	default:
		return nil, fmt.Errorf("unsupported provider kind: %q", kind)
	}
}

func inferProviderKind(endpoint string, name string) domain.ProviderKind {
	nameLower := strings.ToLower(name)

	switch {
	case strings.Contains(endpoint, "generativelanguage.googleapis.com"), strings.Contains(nameLower, "gemini"):
		return domain.ProviderKindGemini
	case strings.Contains(endpoint, "/chat/completions"), strings.Contains(endpoint, "openai.com"):
		return domain.ProviderKindOpenAI
	default:
		return domain.ProviderKindUnknown
	}
}

func defaultString(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

var _ ports.ProviderFactory = (*Factory)(nil)
