package ai

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/doeshing/sensi-go/internal/domain"
	"github.com/doeshing/sensi-go/internal/ports"
)

const (
	defaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultGeminiModel    = "gemini-3-flash-preview"
)

func geminiAdapter() providerAdapter {
	return providerAdapter{
		endpoint:     geminiEndpoint,
		buildRequest: buildGeminiRequest,
		setHeaders:   setGeminiHeaders,
		responsePath: domain.GeminiResponsePath,
	}
}

// geminiEndpoint expands a models base URL into the generateContent method URL.
func geminiEndpoint(model domain.ModelDefinition) string {
	endpoint := strings.TrimRight(defaultString(model.Endpoint, defaultGeminiEndpoint), "/")
	if strings.Contains(endpoint, ":generateContent") {
		return endpoint
	}
	return endpoint + "/" + defaultString(model.ModelID, defaultGeminiModel) + ":generateContent"
}

func setGeminiHeaders(req *http.Request, apiKey string) {
	req.Header.Set("x-goog-api-key", apiKey)
}

func buildGeminiRequest(model domain.ModelDefinition, req ports.CompletionRequest) ([]byte, error) {
	var systemLines []string
	var contents []map[string]interface{}
	for _, msg := range req.Messages {
		if strings.EqualFold(msg.Role, "system") {
			systemLines = append(systemLines, msg.Content)
			continue
		}
		role := "user"
		if strings.EqualFold(msg.Role, "assistant") || strings.EqualFold(msg.Role, "model") {
			role = "model"
		}
		contents = append(contents, map[string]interface{}{
			"role":  role,
			"parts": []map[string]string{{"text": msg.Content}},
		})
	}

	generationConfig := map[string]interface{}{
		"responseMimeType": "application/json",
		"responseSchema":   geminiSchema(req.Schema),
	}
	if model.MaxTokens > 0 {
		generationConfig["maxOutputTokens"] = model.MaxTokens
	}

	request := map[string]interface{}{
		"contents":         contents,
		"generationConfig": generationConfig,
	}
	if len(systemLines) > 0 {
		request["systemInstruction"] = map[string]interface{}{
			"parts": []map[string]string{{"text": strings.Join(systemLines, "\n")}},
		}
	}
	return json.Marshal(request)
}

// geminiSchema converts a JSON-schema style description into Gemini's OpenAPI subset,
// which spells types in upper case and accepts an explicit property order.
func geminiSchema(s ports.Schema) map[string]interface{} {
	out := map[string]interface{}{
		"type": strings.ToUpper(s.Type),
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Properties) > 0 {
		props := make(map[string]interface{}, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = geminiSchema(prop)
		}
		out["properties"] = props
	}
	if s.Items != nil {
		out["items"] = geminiSchema(*s.Items)
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
		out["propertyOrdering"] = s.Required
	}
	return out
}
