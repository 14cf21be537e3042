package retriever

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/sensi-go/internal/application/history"
	"github.com/doeshing/sensi-go/internal/domain"
	"github.com/doeshing/sensi-go/internal/infrastructure/store"
	"github.com/doeshing/sensi-go/internal/pkg/logger"
	"github.com/doeshing/sensi-go/internal/ports"
)

const scenarioPayload = `{"general":100,"redDot":95,"scope2x":90,"scope4x":85,"sniperScope":80,"freeLook":100,"dpi":"400-1600","fireButtonSize":"120%","tips":["Tip A","Tip B"],"deviceName":"Xiaomi Redmi Note 10"}`

func testConfig() domain.Config {
	return domain.Config{
		Preferences: domain.Preferences{DefaultModel: "gemini"},
		Models: []domain.ModelDefinition{
			{Name: "gemini", Provider: domain.ProviderKindGemini, AuthEnvVar: "GEMINI_API_KEY", ModelID: "gemini-flash"},
		},
	}
}

func newService(provider *stubProvider, creds stubCredentials) (*Service, *stubProviderFactory) {
	factory := &stubProviderFactory{provider: provider}
	return &Service{
		ConfigProvider:  stubConfigProvider{cfg: testConfig()},
		Credentials:     creds,
		ProviderFactory: factory,
		Logger:          logger.Nop(),
	}, factory
}

func TestFetchSettingsScenario(t *testing.T) {
	provider := &stubProvider{text: scenarioPayload}
	svc, _ := newService(provider, stubCredentials{"GEMINI_API_KEY": "secret"})

	got, err := svc.FetchSettings(context.Background(), "Xiaomi Note 10")
	if err != nil {
		t.Fatalf("FetchSettings() error = %v", err)
	}

	want := domain.SensitivitySettings{
		General: 100, RedDot: 95, Scope2x: 90, Scope4x: 85, SniperScope: 80, FreeLook: 100,
		DPI: "400-1600", FireButtonSize: "120%",
		Tips:       []string{"Tip A", "Tip B"},
		DeviceName: "Xiaomi Redmi Note 10",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}

	cache := history.NewCache(store.NewFileStore(t.TempDir()), 0, logger.Nop())
	cache.Load()
	items, err := cache.Add(domain.NewHistoryItem(got, time.Now()))
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if items[0].DeviceName != "Xiaomi Redmi Note 10" {
		t.Fatalf("history device = %q, want service-confirmed name", items[0].DeviceName)
	}
}

func TestFetchSettingsSendsPromptAndSchema(t *testing.T) {
	provider := &stubProvider{text: scenarioPayload}
	svc, _ := newService(provider, stubCredentials{"GEMINI_API_KEY": "secret"})

	if _, err := svc.FetchSettings(context.Background(), "Pixel 8"); err != nil {
		t.Fatalf("FetchSettings() error = %v", err)
	}

	req := provider.lastRequest
	if len(req.Messages) == 0 || !strings.Contains(req.Messages[len(req.Messages)-1].Content, `"Pixel 8"`) {
		t.Fatalf("device name missing from prompt: %+v", req.Messages)
	}
	if !strings.Contains(req.Messages[len(req.Messages)-1].Content, domain.DefaultTipsLanguage) {
		t.Fatal("tips language missing from prompt")
	}
	if req.Schema.Type != "object" {
		t.Fatalf("schema type = %s", req.Schema.Type)
	}
	if diff := cmp.Diff(settingsFields, req.Schema.Required); diff != "" {
		t.Fatalf("required fields mismatch (-want +got):\n%s", diff)
	}
	for _, name := range settingsFields {
		if _, ok := req.Schema.Properties[name]; !ok {
			t.Fatalf("schema property %s missing", name)
		}
	}
	if req.Schema.Properties["tips"].Items == nil || req.Schema.Properties["tips"].Items.Type != "string" {
		t.Fatal("tips must be an array of strings")
	}
}

func TestFetchSettingsWithoutCredentialMakesNoCall(t *testing.T) {
	provider := &stubProvider{text: scenarioPayload}
	svc, factory := newService(provider, stubCredentials{})

	_, err := svc.FetchSettings(context.Background(), "Xiaomi Note 10")
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if provider.calls != 0 {
		t.Fatalf("provider called %d times, want 0", provider.calls)
	}
	if factory.calls != 0 {
		t.Fatalf("provider constructed %d times, want 0", factory.calls)
	}
	if domain.UserMessage(err) != domain.MsgCredentialMissing {
		t.Fatalf("user message = %q", domain.UserMessage(err))
	}
}

func TestFetchSettingsFailureTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		provider *stubProvider
		want     error
	}{
		{
			name:     "service failure",
			provider: &stubProvider{err: errors.New("HTTP 503")},
			want:     domain.ErrService,
		},
		{
			name:     "empty response",
			provider: &stubProvider{text: "   "},
			want:     domain.ErrEmptyResponse,
		},
		{
			name:     "not json",
			provider: &stubProvider{text: "Here are your settings!"},
			want:     domain.ErrMalformedResponse,
		},
		{
			name:     "missing required field",
			provider: &stubProvider{text: `{"general":100,"redDot":95,"scope2x":90,"scope4x":85,"sniperScope":80,"freeLook":100,"dpi":"400","fireButtonSize":"120%","tips":[]}`},
			want:     domain.ErrMalformedResponse,
		},
		{
			name:     "non integer sensitivity",
			provider: &stubProvider{text: strings.Replace(scenarioPayload, `"general":100`, `"general":99.5`, 1)},
			want:     domain.ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(tt.provider, stubCredentials{"GEMINI_API_KEY": "secret"})
			_, err := svc.FetchSettings(context.Background(), "Xiaomi Note 10")
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want kind %v", err, tt.want)
			}
			var re *domain.RetrievalError
			if !errors.As(err, &re) || !re.Retryable() {
				t.Fatalf("expected retryable retrieval error, got %v", err)
			}
		})
	}
}

func TestFetchSettingsAcceptsOutOfRangeValues(t *testing.T) {
	payload := strings.Replace(scenarioPayload, `"general":100`, `"general":250`, 1)
	svc, _ := newService(&stubProvider{text: payload}, stubCredentials{"GEMINI_API_KEY": "secret"})

	got, err := svc.FetchSettings(context.Background(), "Xiaomi Note 10")
	if err != nil {
		t.Fatalf("FetchSettings() error = %v", err)
	}
	if got.General != 250 {
		t.Fatalf("General = %d, want value passed through unchanged", got.General)
	}
}

func TestFetchSettingsUnknownModelOverride(t *testing.T) {
	svc, _ := newService(&stubProvider{text: scenarioPayload}, stubCredentials{"GEMINI_API_KEY": "secret"})
	svc.ModelOverride = "does-not-exist"
	if _, err := svc.FetchSettings(context.Background(), "x"); !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRenderPromptUsesModelTemplate(t *testing.T) {
	model := domain.ModelDefinition{Prompt: []domain.PromptMessage{
		{Role: "system", Content: "Answer in {{.Language}} only."},
	}}
	messages, err := renderPromptMessages(model, promptData{DeviceName: "Galaxy A54", Language: "English", MaxSensitivity: 200})
	if err != nil {
		t.Fatalf("renderPromptMessages error: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected system plus fallback user message, got %d", len(messages))
	}
	if messages[0].Content != "Answer in English only." {
		t.Fatalf("system content = %q", messages[0].Content)
	}
	if messages[1].Role != "user" || !strings.Contains(messages[1].Content, "Galaxy A54") {
		t.Fatalf("unexpected user message %+v", messages[1])
	}
}

type stubConfigProvider struct {
	cfg domain.Config
	err error
}

func (s stubConfigProvider) Load(context.Context) (domain.Config, error) {
	return s.cfg, s.err
}

type stubCredentials map[string]string

func (s stubCredentials) Lookup(name string) (string, bool) {
	v, ok := s[name]
	return v, ok
}

type stubProviderFactory struct {
	provider ports.Provider
	calls    int
}

func (s *stubProviderFactory) ForModel(domain.ModelDefinition, string) (ports.Provider, error) {
	s.calls++
	return s.provider, nil
}

type stubProvider struct {
	text        string
	err         error
	calls       int
	lastRequest ports.CompletionRequest
}

func (s *stubProvider) Name() string                  { return "stub" }
func (s *stubProvider) Model() domain.ModelDefinition { return domain.ModelDefinition{} }
func (s *stubProvider) Complete(_ context.Context, req ports.CompletionRequest) (ports.CompletionResponse, error) {
	s.calls++
	s.lastRequest = req
	return ports.CompletionResponse{Text: s.text}, s.err
}
