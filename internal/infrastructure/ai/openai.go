package ai

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/doeshing/sensi-go/internal/domain"
	"github.com/doeshing/sensi-go/internal/ports"
)

const (
	defaultOpenAIEndpoint = "https://api.openai.com/v1/chat/completions"
	defaultOpenAIModel    = "gpt-4o-mini"
	openAISchemaName      = "sensitivity_settings"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type jsonSchemaFormat struct {
	Name   string                 `json:"name"`
	Strict bool                   `json:"strict"`
	Schema map[string]interface{} `json:"schema"`
}

type responseFormat struct {
	Type       string           `json:"type"`
	JSONSchema jsonSchemaFormat `json:"json_schema"`
}

type chatCompletionRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
	ResponseFormat responseFormat `json:"response_format"`
}

func openaiAdapter() providerAdapter {
	return providerAdapter{
		endpoint: func(model domain.ModelDefinition) string {
			return defaultString(model.Endpoint, defaultOpenAIEndpoint)
		},
		buildRequest: buildChatCompletionRequest,
		setHeaders:   setOpenAIHeaders,
		responsePath: domain.OpenAIResponsePath,
	}
}

func setOpenAIHeaders(req *http.Request, apiKey string) {
	req.Header.Set("Authorization", "Bearer "+apiKey)
}

func buildChatCompletionRequest(model domain.ModelDefinition, req ports.CompletionRequest) ([]byte, error) {
	messages := make([]chatMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, chatMessage{Role: strings.ToLower(msg.Role), Content: msg.Content})
	}
	return json.Marshal(chatCompletionRequest{
		Model:     defaultString(model.ModelID, defaultOpenAIModel),
		Messages:  messages,
		MaxTokens: model.MaxTokens,
		ResponseFormat: responseFormat{
			Type: "json_schema",
			JSONSchema: jsonSchemaFormat{
				Name:   openAISchemaName,
				Strict: true,
				Schema: strictSchema(req.Schema),
			},
		},
	})
}

// strictSchema renders the schema for OpenAI structured outputs, which requires
// additionalProperties=false on every object.
func strictSchema(s ports.Schema) map[string]interface{} {
	out := map[string]interface{}{
		"type": s.Type,
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if s.Type == "object" {
		props := make(map[string]interface{}, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = strictSchema(prop)
		}
		out["properties"] = props
		out["additionalProperties"] = false
		out["required"] = s.Required
	}
	if s.Items != nil {
		out["items"] = strictSchema(*s.Items)
	}
	return out
}
