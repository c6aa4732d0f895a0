package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/bill-forge/pkg/models/domain"
	"github.com/de-tools/bill-forge/pkg/services/batch"
	"github.com/de-tools/bill-forge/pkg/services/billing"
	"github.com/de-tools/bill-forge/pkg/services/config"
	"github.com/de-tools/bill-forge/pkg/services/convert"
	"github.com/de-tools/bill-forge/pkg/services/ingest"
	"github.com/de-tools/bill-forge/pkg/services/profiles"
	"github.com/de-tools/bill-forge/pkg/services/quality"
	"github.com/de-tools/bill-forge/pkg/services/render"
)

func loadRunConfig(configPath string) (domain.RunConfig, error) {
	if configPath == "" {
		return config.Defaults(), nil
	}
	return config.Load(configPath)
}

// buildCoordinator assembles the full per-file pipeline behind a coordinator.
func buildCoordinator(ctx context.Context, cfg domain.RunConfig, profilesPath string) (*batch.Coordinator, error) {
	registry := profiles.NewDefaultRegistry()
	if profilesPath != "" {
		var err error
		registry, err = profiles.NewRegistry(profilesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load backend profiles: %w", err)
		}
	}
	table, err := registry.All(ctx)
	if err != nil {
		return nil, err
	}

	chain, err := convert.BuildChain(cfg.Backends, table)
	if err != nil {
		return nil, fmt.Errorf("failed to build backend chain: %w", err)
	}

	renderer, err := render.NewEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to create rendering engine: %w", err)
	}

	sink, err := batch.NewFileSink(cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	return batch.NewCoordinator(
		cfg,
		ingest.NewReader(),
		billing.NewEngine(cfg.Seed),
		renderer,
		convert.NewOrchestrator(chain, cfg.AttemptTimeout),
		quality.NewValidator(cfg.QualityThreshold),
		sink,
	), nil
}
