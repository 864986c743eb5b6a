// Package bootstrap wires the generator chain, rules storage and services
// from configuration. It is shared by the server and the CLI.
package bootstrap

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"

	"porttariff/internal/config"
	"porttariff/internal/domain"
	"porttariff/internal/generator"
	"porttariff/internal/generator/providers"
	"porttariff/internal/port"
	"porttariff/internal/repository/postgres"
	"porttariff/internal/service"
	s3storage "porttariff/internal/storage/s3"
	"porttariff/internal/storage/rulesstore"
)

// App holds the wired services. Close releases the database connection, if any.
type App struct {
	Generator  port.Generator
	Rules      service.RulesService
	Calculator service.CalculatorService
	DB         *sqlx.DB
}

// Close releases resources held by the App.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// New builds an App from cfg.
func New(cfg *config.Config) (*App, error) {
	providers.Register()

	gen, err := generator.NewChain(cfg.Generator.Chain())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generator: %w", err)
	}

	app := &App{Generator: gen}
	storage := &lazyObjectStorage{cfg: &cfg.S3}

	store, err := newRulesStore(cfg, storage, app)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	document, err := newDocumentSource(cfg, storage)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	app.Rules = service.NewRulesService(store, document, gen, service.RulesServiceConfig{
		SafetyThreshold: cfg.Calculation.SafetyThreshold,
	})
	app.Calculator = service.NewCalculatorService(gen, app.Rules, service.CalculatorConfig{
		Temperature:     cfg.Calculation.Temperature,
		SafetyThreshold: cfg.Calculation.SafetyThreshold,
		Debug:           cfg.Calculation.Debug,
	})

	log.Printf("bootstrap.New: generators=%v rules_store=%s", providerNames(cfg.Generator.Chain()), cfg.Rules.Store)
	return app, nil
}

func newRulesStore(cfg *config.Config, storage *lazyObjectStorage, app *App) (port.RulesStore, error) {
	switch domain.RulesStoreBackend(cfg.Rules.Store) {
	case domain.RulesStoreFile, "":
		return rulesstore.NewFileStore(cfg.Rules.FilePath), nil
	case domain.RulesStoreS3:
		client, err := storage.get()
		if err != nil {
			return nil, err
		}
		return rulesstore.NewObjectStore(client, cfg.S3.Bucket, cfg.Rules.S3Key), nil
	case domain.RulesStorePostgres:
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = db
		return postgres.NewRulesRepo(db, cfg.Generator.PrimaryConfig().DefaultModel), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedStore, cfg.Rules.Store)
	}
}

func newDocumentSource(cfg *config.Config, storage *lazyObjectStorage) (port.DocumentSource, error) {
	if cfg.Rules.DocumentS3Key == "" {
		return rulesstore.NewFileDocument(cfg.Rules.DocumentPath), nil
	}
	client, err := storage.get()
	if err != nil {
		return nil, err
	}
	return rulesstore.NewObjectDocument(client, cfg.S3.Bucket, cfg.Rules.DocumentS3Key), nil
}

func providerNames(chain []*config.ProviderConfig) []string {
	names := make([]string, 0, len(chain))
	for _, p := range chain {
		names = append(names, p.Provider)
	}
	return names
}

// lazyObjectStorage creates the S3 client only when a component needs it.
type lazyObjectStorage struct {
	cfg    *config.S3Config
	client port.ObjectStorage
}

func (l *lazyObjectStorage) get() (port.ObjectStorage, error) {
	if l.client != nil {
		return l.client, nil
	}
	client, err := s3storage.NewS3Client(l.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 client: %w", err)
	}
	l.client = client
	return client, nil
}
