package app

import (
	"context"
	"io"
	"time"

	appconfig "github.com/doeshing/sensi-go/internal/application/config"
	"github.com/doeshing/sensi-go/internal/application/doctor"
	"github.com/doeshing/sensi-go/internal/application/history"
	"github.com/doeshing/sensi-go/internal/application/preferences"
	"github.com/doeshing/sensi-go/internal/application/retriever"
	"github.com/doeshing/sensi-go/internal/application/session"
	"github.com/doeshing/sensi-go/internal/domain"
	"github.com/doeshing/sensi-go/internal/infrastructure/ai"
	"github.com/doeshing/sensi-go/internal/infrastructure/config"
	"github.com/doeshing/sensi-go/internal/infrastructure/store"
	"github.com/doeshing/sensi-go/internal/pkg/logger"
	"github.com/doeshing/sensi-go/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         *logger.Logger
	Store          ports.KeyValueStore
	HistoryStore   *history.Cache
	Preferences    *preferences.Service
	Retriever      *retriever.Service
	Session        *session.Controller
	DoctorService  *doctor.Service
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	log := logger.New(verbose)

	if err := config.LoadDotEnv(); err != nil {
		log.Warn("could not read .env file", map[string]interface{}{"error": err.Error()})
	}

	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		log.Warn("configuration has problems; run `sensi doctor`", map[string]interface{}{
			"path":  cfgLoader.Path(),
			"error": err.Error(),
		})
	}

	kv, err := store.Open(cfg.Storage)
	if err != nil {
		return nil, err
	}

	historyStore := history.NewCache(kv, cfg.GetHistoryCapacity(), log)
	prefs := &preferences.Service{Store: kv, Logger: log}
	credentials := config.EnvCredentials{}

	retrieverService := &retriever.Service{
		ConfigProvider:  cfgLoader,
		Credentials:     credentials,
		ProviderFactory: ai.NewFactory(time.Duration(cfg.GetTimeoutSeconds()) * time.Second),
		Logger:          log,
	}

	controller := &session.Controller{
		Retriever:   retrieverService,
		History:     historyStore,
		Preferences: prefs,
		Logger:      log,
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Credentials:    credentials,
		Store:          kv,
		History:        historyStore,
	}

	return &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		Store:          kv,
		HistoryStore:   historyStore,
		Preferences:    prefs,
		Retriever:      retrieverService,
		Session:        controller,
		DoctorService:  doctorService,
	}, nil
}

// Close releases the store when it holds an open database.
func (c *Container) Close() error {
	if closer, ok := c.Store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
