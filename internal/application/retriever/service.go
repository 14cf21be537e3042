// Package retriever turns a free-text device name into SensitivitySettings by
// asking an external AI completion service for a schema-constrained answer.
package retriever

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/sensi-go/internal/domain"
	"github.com/doeshing/sensi-go/internal/ports"
)

// Service orchestrates a single settings lookup. It touches no persisted state.
type Service struct {
	ConfigProvider  ports.ConfigProvider
	Credentials     ports.CredentialSource
	ProviderFactory ports.ProviderFactory
	Logger          ports.Logger

	// ModelOverride selects a configured model by name instead of the default.
	ModelOverride string
}

// FetchSettings asks the configured model for settings tuned to deviceName.
// The device name is forwarded as-is; the service is expected to echo back
// a canonical name in the result.
func (s *Service) FetchSettings(ctx context.Context, deviceName string) (domain.SensitivitySettings, error) {
	if s.ConfigProvider == nil || s.Credentials == nil || s.ProviderFactory == nil || s.Logger == nil {
		return domain.SensitivitySettings{}, errors.New("retriever.Service dependencies not satisfied")
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.SensitivitySettings{}, &domain.RetrievalError{
			Kind:    domain.KindConfiguration,
			Message: "Configuration could not be loaded.",
			Err:     err,
		}
	}

	model, err := cfg.PickModel(s.ModelOverride)
	if err != nil {
		return domain.SensitivitySettings{}, &domain.RetrievalError{
			Kind:    domain.KindConfiguration,
			Message: "No AI model is configured.",
			Err:     err,
		}
	}

	apiKey, ok := s.Credentials.Lookup(model.AuthEnvVar)
	if !ok || strings.TrimSpace(apiKey) == "" {
		return domain.SensitivitySettings{}, domain.NewRetrievalError(domain.KindConfiguration,
			fmt.Errorf("set the %s environment variable", valueOr(model.AuthEnvVar, "API key")))
	}

	provider, err := s.ProviderFactory.ForModel(model, apiKey)
	if err != nil {
		return domain.SensitivitySettings{}, &domain.RetrievalError{
			Kind:    domain.KindConfiguration,
			Message: "The configured AI provider is not supported.",
			Err:     err,
		}
	}

	language := cfg.GetTipsLanguage()
	messages, err := renderPromptMessages(model, promptData{
		DeviceName:     deviceName,
		Language:       language,
		MaxSensitivity: domain.MaxSensitivity,
	})
	if err != nil {
		return domain.SensitivitySettings{}, &domain.RetrievalError{
			Kind:    domain.KindConfiguration,
			Message: "The prompt template is invalid.",
			Err:     err,
		}
	}

	s.Logger.Info("calling provider", map[string]interface{}{
		"provider": provider.Name(),
		"model":    model.ModelID,
		"device":   deviceName,
	})

	resp, err := provider.Complete(ctx, ports.CompletionRequest{
		Messages: messages,
		Schema:   settingsSchema(language),
	})
	if err != nil {
		s.Logger.Error("provider call failed", err, map[string]interface{}{"provider": provider.Name()})
		return domain.SensitivitySettings{}, domain.NewRetrievalError(domain.KindService, err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		s.Logger.Warn("provider returned no content", map[string]interface{}{"provider": provider.Name()})
		return domain.SensitivitySettings{}, domain.NewRetrievalError(domain.KindEmptyResponse, nil)
	}

	settings, err := domain.ParseSettings([]byte(text))
	if err != nil {
		s.Logger.Error("failed to parse provider response", err, map[string]interface{}{
			"provider": provider.Name(),
			"payload":  text,
		})
		return domain.SensitivitySettings{}, domain.NewRetrievalError(domain.KindMalformedResponse, err)
	}

	if fields := settings.OutOfRange(); len(fields) > 0 {
		s.Logger.Warn("sensitivity outside 0-200 accepted as-is", map[string]interface{}{
			"fields": strings.Join(fields, ","),
			"device": settings.DeviceName,
		})
	}

	return settings, nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

var _ ports.SettingsRetriever = (*Service)(nil)
