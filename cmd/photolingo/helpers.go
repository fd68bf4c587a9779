package main

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/photolingo/internal/bootstrap"
	"github.com/at-ishikawa/photolingo/internal/classifier"
	"github.com/at-ishikawa/photolingo/internal/classifier/onnx"
	"github.com/at-ishikawa/photolingo/internal/config"
	"github.com/at-ishikawa/photolingo/internal/database"
	"github.com/at-ishikawa/photolingo/internal/history"
	"github.com/at-ishikawa/photolingo/internal/translator"
	"github.com/at-ishikawa/photolingo/schemas"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// newClassifier wires the ONNX engine behind a lazily loading classifier.
// The model is only read on the first classification.
func newClassifier(cfg config.ClassifierConfig, app *bootstrap.App) (*classifier.Classifier, error) {
	backends, err := classifier.ParseBackends(cfg.Backends)
	if err != nil {
		return nil, fmt.Errorf("classifier.ParseBackends() > %w", err)
	}

	engine := onnx.NewEngine(cfg)
	app.AddCloser("engine", engine)

	spec := classifier.ModelSpec{
		Architecture: cfg.Architecture,
		Version:      cfg.Version,
		Alpha:        cfg.Alpha,
	}
	loader := classifier.NewModelLoader(classifier.NewBackendSelector(engine, backends), engine, spec)
	c := classifier.New(loader)
	app.AddCloser("classifier", c)
	return c, nil
}

func newTranslator(cfg config.TranslatorConfig, app *bootstrap.App) *translator.Client {
	client := translator.NewClient(cfg.BaseURL, cfg.Timeout)
	app.AddCloser("translator", client)
	return client
}

func newHistory(ctx context.Context, cfg *config.Config, app *bootstrap.App) (*history.History, error) {
	switch cfg.History.Driver {
	case "mysql":
		db, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("database.Connect() > %w", err)
		}
		app.AddCloser("database", db)
		if err := database.Migrate(ctx, db, schemas.Migrations); err != nil {
			return nil, fmt.Errorf("database.Migrate() > %w", err)
		}
		return history.New(history.NewDBStorage(db)), nil
	default:
		return history.New(history.NewFileStorage(cfg.History.Directory)), nil
	}
}
