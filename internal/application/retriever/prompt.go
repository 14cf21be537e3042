package retriever

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/doeshing/sensi-go/internal/domain"
)

// promptData is exposed to prompt templates.
//
// Template Variables Available:
//   - {{.DeviceName}}: raw device name typed by the user
//   - {{.Language}}: language requested for the tips
//   - {{.MaxSensitivity}}: upper bound of the sensitivity scale
type promptData struct {
	DeviceName     string
	Language       string
	MaxSensitivity int
}

// renderPromptMessages expands the model's prompt template, or the built-in one when
// the model declares none, and ensures a user message exists.
func renderPromptMessages(model domain.ModelDefinition, data promptData) ([]domain.PromptMessage, error) {
	messages := model.Prompt
	if len(messages) == 0 {
		messages = defaultTemplateMessages()
	}

	rendered := make([]domain.PromptMessage, 0, len(messages))
	for _, msg := range messages {
		content, err := executeTemplate(msg.Content, data)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, domain.PromptMessage{
			Role:    msg.Role,
			Content: strings.TrimSpace(content),
		})
	}

	if !hasUserMessage(rendered) {
		fallback, err := executeTemplate(defaultUserTemplate, data)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, domain.PromptMessage{
			Role:    "user",
			Content: strings.TrimSpace(fallback),
		})
	}

	return rendered, nil
}

func executeTemplate(raw string, data promptData) (string, error) {
	tmpl, err := template.New("prompt").Parse(raw)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func hasUserMessage(messages []domain.PromptMessage) bool {
	for _, msg := range messages {
		if strings.EqualFold(msg.Role, "user") {
			return true
		}
	}
	return false
}

const defaultUserTemplate = `Provide the best Free Fire sensitivity settings and DPI for the mobile device: "{{.DeviceName}}".
IMPORTANT: Free Fire now supports sensitivity up to {{.MaxSensitivity}}. Please provide settings in the 0-{{.MaxSensitivity}} range.
The settings should aim for consistent headshots. Provide the tips in {{.Language}}.`

func defaultTemplateMessages() []domain.PromptMessage {
	return []domain.PromptMessage{
		{
			Role: "system",
			Content: `You recommend mobile shooter sensitivity settings.
Answer with exactly one JSON object matching the provided schema and nothing else.
Echo back the canonical device name you recognised in "deviceName".`,
		},
		{
			Role:    "user",
			Content: defaultUserTemplate,
		},
	}
}
