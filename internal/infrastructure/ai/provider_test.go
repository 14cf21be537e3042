package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/doeshing/sensi-go/internal/domain"
	"github.com/doeshing/sensi-go/internal/ports"
)

func testRequest() ports.CompletionRequest {
	return ports.CompletionRequest{
		Messages: []domain.PromptMessage{
			{Role: "system", Content: "json only"},
			{Role: "user", Content: "device: Pixel 8"},
		},
		Schema: ports.Schema{
			Type: "object",
			Properties: map[string]ports.Schema{
				"general": {Type: "integer"},
				"tips":    {Type: "array", Items: &ports.Schema{Type: "string"}},
			},
			Required: []string{"general", "tips"},
		},
	}
}

func TestGeminiProviderSendsSchemaAndKey(t *testing.T) {
	var gotPath, gotKey string
	var body map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":" {\"general\":100,\"tips\":[]} "}]}}]}`)
	}))
	defer server.Close()

	factory := NewFactoryWithClient(server.Client())
	provider, err := factory.ForModel(domain.ModelDefinition{
		Name:     "gemini",
		Provider: domain.ProviderKindGemini,
		Endpoint: server.URL + "/v1beta/models",
		ModelID:  "gemini-test",
	}, "secret-key")
	if err != nil {
		t.Fatalf("ForModel error: %v", err)
	}

	resp, err := provider.Complete(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if resp.Text != `{"general":100,"tips":[]}` {
		t.Fatalf("Text = %q", resp.Text)
	}
	if gotPath != "/v1beta/models/gemini-test:generateContent" {
		t.Fatalf("path = %s", gotPath)
	}
	if gotKey != "secret-key" {
		t.Fatalf("api key header = %q", gotKey)
	}

	cfg, ok := body["generationConfig"].(map[string]interface{})
	if !ok {
		t.Fatalf("generationConfig missing: %v", body)
	}
	if cfg["responseMimeType"] != "application/json" {
		t.Fatalf("responseMimeType = %v", cfg["responseMimeType"])
	}
	schema := cfg["responseSchema"].(map[string]interface{})
	if schema["type"] != "OBJECT" {
		t.Fatalf("schema type = %v", schema["type"])
	}
	props := schema["properties"].(map[string]interface{})
	if props["general"].(map[string]interface{})["type"] != "INTEGER" {
		t.Fatalf("general type = %v", props["general"])
	}
	if _, ok := body["systemInstruction"]; !ok {
		t.Fatal("system message should be sent as systemInstruction")
	}
}

func TestGeminiProviderNoCandidatesIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`)
	}))
	defer server.Close()

	provider, _ := NewFactoryWithClient(server.Client()).ForModel(domain.ModelDefinition{
		Provider: domain.ProviderKindGemini,
		Endpoint: server.URL,
	}, "k")

	resp, err := provider.Complete(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if resp.Text != "" {
		t.Fatalf("expected empty text, got %q", resp.Text)
	}
}

func TestProviderHTTPErrorIsServiceFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"error":{"message":"API key not valid"}}`)
	}))
	defer server.Close()

	provider, _ := NewFactoryWithClient(server.Client()).ForModel(domain.ModelDefinition{
		Provider: domain.ProviderKindGemini,
		Endpoint: server.URL,
	}, "bad")

	_, err := provider.Complete(context.Background(), testRequest())
	if err == nil {
		t.Fatal("expected error for HTTP 403")
	}
	if !strings.Contains(err.Error(), "API key not valid") {
		t.Fatalf("error should carry service message, got %v", err)
	}
}

func TestOpenAIProviderUsesStrictJSONSchema(t *testing.T) {
	var auth string
	var body chatCompletionRequest
	var rawSchema map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		var generic map[string]interface{}
		_ = json.Unmarshal(raw, &generic)
		rawSchema = generic["response_format"].(map[string]interface{})["json_schema"].(map[string]interface{})["schema"].(map[string]interface{})
		io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"{\"general\":1,\"tips\":[\"a\"]}"}}]}`)
	}))
	defer server.Close()

	provider, err := NewFactoryWithClient(server.Client()).ForModel(domain.ModelDefinition{
		Name:     "gpt",
		Provider: domain.ProviderKindOpenAI,
		Endpoint: server.URL + "/v1/chat/completions",
		ModelID:  "gpt-test",
	}, "sk-test")
	if err != nil {
		t.Fatalf("ForModel error: %v", err)
	}

	resp, err := provider.Complete(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if resp.Text != `{"general":1,"tips":["a"]}` {
		t.Fatalf("Text = %q", resp.Text)
	}
	if auth != "Bearer sk-test" {
		t.Fatalf("Authorization = %q", auth)
	}
	if body.Model != "gpt-test" || len(body.Messages) != 2 {
		t.Fatalf("unexpected request %+v", body)
	}
	if body.ResponseFormat.Type != "json_schema" || !body.ResponseFormat.JSONSchema.Strict {
		t.Fatalf("response_format = %+v", body.ResponseFormat)
	}
	if rawSchema["additionalProperties"] != false {
		t.Fatalf("strict schema must forbid additional properties: %v", rawSchema)
	}
}

func TestFactoryInfersProvider(t *testing.T) {
	factory := NewFactory(0)
	tests := []struct {
		model domain.ModelDefinition
		want  string
	}{
		{domain.ModelDefinition{Endpoint: "https://generativelanguage.googleapis.com/v1beta/models"}, "gemini"},
		{domain.ModelDefinition{Endpoint: "http://localhost:11434/v1/chat/completions"}, "openai"},
		{domain.ModelDefinition{Name: "gemini-pro"}, "gemini"},
	}
	for _, tt := range tests {
		provider, err := factory.ForModel(tt.model, "k")
		if err != nil {
			t.Fatalf("ForModel(%+v) error: %v", tt.model, err)
		}
		if provider.Name() != tt.want {
			t.Fatalf("ForModel(%+v) = %s, want %s", tt.model, provider.Name(), tt.want)
		}
	}

	if _, err := factory.ForModel(domain.ModelDefinition{Endpoint: "https://example.com"}, "k"); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestExtractJSONPath(t *testing.T) {
	var data map[string]interface{}
	_ = json.Unmarshal([]byte(`{"candidates":[{"content":{"parts":[{"text":"hello"}]}}]}`), &data)

	got, err := extractJSONPath(data, domain.GeminiResponsePath)
	if err != nil || got != "hello" {
		t.Fatalf("extractJSONPath = %q, %v", got, err)
	}
	if _, err := extractJSONPath(data, "candidates[3].content"); err == nil {
		t.Fatal("expected out of bounds error")
	}
	if _, err := extractJSONPath(data, "candidates[0].content"); err == nil {
		t.Fatal("expected non-string error")
	}
	for _, path := range []string{"candidates[0", "candidates[x].content", "candidates[-1]"} {
		if _, err := extractJSONPath(data, path); err == nil {
			t.Fatalf("expected error for malformed path %q", path)
		}
	}
	if _, err := extractJSONPath(data, "choices[0].message.content"); err == nil {
		t.Fatal("expected missing field error")
	}
}
