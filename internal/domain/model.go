// Package domain defines core business entities and value objects for sensi.
//
// This file contains AI model and provider definitions used throughout the application.
// The domain layer is independent of infrastructure concerns.
package domain

// ProviderKind identifies the wire protocol used to talk to a model.
type ProviderKind string

const (
	ProviderKindUnknown ProviderKind = ""
	ProviderKindGemini  ProviderKind = "gemini"
	ProviderKindOpenAI  ProviderKind = "openai"
)

// ModelDefinition describes an AI provider configuration declared in the config file.
// The credential itself is never stored here, only the name of the environment
// variable that holds it.
type ModelDefinition struct {
	Name       string          `yaml:"name"`
	Provider   ProviderKind    `yaml:"provider"`
	Endpoint   string          `yaml:"endpoint"`
	AuthEnvVar string          `yaml:"auth_env_var"`
	ModelID    string          `yaml:"model_id"`
	MaxTokens  int             `yaml:"max_tokens,omitempty"`
	Prompt     []PromptMessage `yaml:"prompt,omitempty"`
	APIFormat  APIFormat       `yaml:"api_format,omitempty"`
}

// APIFormat holds optional per-model wire overrides.
type APIFormat struct {
	// ResponseJSONPath specifies where to extract the generated text from the response.
	// Default depends on the provider, e.g. "candidates[0].content.parts[0].text" for Gemini.
	ResponseJSONPath string `yaml:"response_json_path,omitempty"`

	// ExtraHeaders contains additional HTTP headers to send with each request.
	ExtraHeaders map[string]string `yaml:"extra_headers,omitempty"`
}

// PromptMessage follows the role/content pair required by most chat APIs.
type PromptMessage struct {
	Role    string `yaml:"role"`
	Content string `yaml:"content"`
}

// Response JSON paths
const (
	GeminiResponsePath = "candidates[0].content.parts[0].text"
	OpenAIResponsePath = "choices[0].message.content"
)

// GetResponseJSONPath returns the JSON path for extracting response content with fallback.
func (f APIFormat) GetResponseJSONPath(fallback string) string {
	if f.ResponseJSONPath == "" {
		return fallback
	}
	return f.ResponseJSONPath
}
