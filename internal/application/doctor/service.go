package doctor

import (
	"context"
	"fmt"

	appconfig "github.com/doeshing/sensi-go/internal/application/config"
	"github.com/doeshing/sensi-go/internal/domain"
	"github.com/doeshing/sensi-go/internal/ports"
)

const probeKey = "sensi_doctor_probe"

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Credentials    ports.CredentialSource
	Store          ports.KeyValueStore
	History        ports.HistoryRepository
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("format %s, %d model(s)", cfg.ConfigFormatVersion, len(cfg.Models))))
	}

	checks = append(checks, s.credentialCheck(cfg))

	if s.Store != nil {
		checks = append(checks, storeCheck(s.Store, cfg.GetStorageBackend()))
	} else {
		checks = append(checks, warn("Local store", "store not initialized"))
	}

	if s.History != nil {
		items := s.History.Load()
		checks = append(checks, ok("History", fmt.Sprintf("%d of %d entries", len(items), cfg.GetHistoryCapacity())))
	}

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) credentialCheck(cfg domain.Config) domain.HealthCheck {
	model, err := cfg.GetDefaultModel()
	if err != nil {
		return fail("API key", err.Error())
	}
	if _, found := s.Credentials.Lookup(model.AuthEnvVar); !found {
		return fail("API key", fmt.Sprintf("%s is not set (model %s)", model.AuthEnvVar, model.Name))
	}
	return ok("API key", fmt.Sprintf("%s set for model %s", model.AuthEnvVar, model.Name))
}

func storeCheck(store ports.KeyValueStore, backend string) domain.HealthCheck {
	want := []byte(`"ok"`)
	if err := store.Put(probeKey, want); err != nil {
		return fail("Local store", fmt.Sprintf("%s write failed: %v", backend, err))
	}
	defer store.Delete(probeKey)

	got, found, err := store.Get(probeKey)
	if err != nil || !found || string(got) != string(want) {
		return fail("Local store", fmt.Sprintf("%s read-back failed", backend))
	}
	return ok("Local store", fmt.Sprintf("%s backend writable", backend))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
