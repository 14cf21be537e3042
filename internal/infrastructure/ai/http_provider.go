package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/doeshing/sensi-go/internal/domain"
	"github.com/doeshing/sensi-go/internal/ports"
)

// httpProvider is a configuration-driven HTTP-based AI provider.
// Wire differences between services live in the providerAdapter.
type httpProvider struct {
	name       string
	model      domain.ModelDefinition
	apiKey     string
	httpClient *http.Client
	adapter    providerAdapter
}

type providerAdapter struct {
	endpoint     func(domain.ModelDefinition) string
	buildRequest func(domain.ModelDefinition, ports.CompletionRequest) ([]byte, error)
	setHeaders   func(*http.Request, string)
	responsePath string
}

func newHTTPProvider(name string, model domain.ModelDefinition, apiKey string, client *http.Client, adapter providerAdapter) ports.Provider {
	return &httpProvider{
		name:       name,
		model:      model,
		apiKey:     apiKey,
		httpClient: client,
		adapter:    adapter,
	}
}

func (p *httpProvider) Name() string {
	return p.name
}

func (p *httpProvider) Model() domain.ModelDefinition {
	return p.model
}

// Complete sends the prompt and schema and returns the raw text payload.
// A response that carries no text at the configured path yields an empty payload.
func (p *httpProvider) Complete(ctx context.Context, req ports.CompletionRequest) (ports.CompletionResponse, error) {
	requestBody, err := p.adapter.buildRequest(p.model, req)
	if err != nil {
		return ports.CompletionResponse{}, fmt.Errorf("build request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.adapter.endpoint(p.model), bytes.NewReader(requestBody))
	if err != nil {
		return ports.CompletionResponse{}, fmt.Errorf("create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	p.adapter.setHeaders(httpReq, p.apiKey)
	for key, value := range p.model.APIFormat.ExtraHeaders {
		httpReq.Header.Set(key, value)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return ports.CompletionResponse{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ports.CompletionResponse{}, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return ports.CompletionResponse{}, fmt.Errorf("%s: HTTP %d: %s", p.name, resp.StatusCode, errorSummary(body, resp.Status))
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return ports.CompletionResponse{}, nil
	}

	var envelope map[string]interface{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ports.CompletionResponse{}, fmt.Errorf("%s: unmarshal response envelope: %w", p.name, err)
	}

	path := p.model.APIFormat.GetResponseJSONPath(p.adapter.responsePath)
	text, err := extractJSONPath(envelope, path)
	if err != nil {
		// No candidate, blocked prompt or empty choice list: the service answered without content.
		return ports.CompletionResponse{}, nil
	}
	return ports.CompletionResponse{Text: strings.TrimSpace(text)}, nil
}

// errorSummary pulls error.message out of a JSON error body when present.
func errorSummary(body []byte, status string) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return status
}
