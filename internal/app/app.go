package app

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/leviathan-engine/filegen/internal/core/generator"
	"github.com/leviathan-engine/filegen/internal/core/observability/log"
	"github.com/leviathan-engine/filegen/internal/core/schema"
	"github.com/leviathan-engine/filegen/pkg/concurrent"
	"github.com/leviathan-engine/filegen/pkg/sequence"
)

// App runs generation targets. Targets of one run are independent and run in
// parallel, the jobs of one target run in order.
type App struct {
	logger   log.Log
	registry *schema.Registry
	workers  int
}

func New(logger log.Log, registry *schema.Registry) *App {
	return &App{logger: logger, registry: registry}
}

// SetWorkers bounds the targets generated at once. Zero means no bound.
func (a *App) SetWorkers(workers int) { a.workers = workers }

func (a *App) Registry() *schema.Registry { return a.registry }

// Builtin generates a registered target. Empty paths keep its defaults.
func (a *App) Builtin(ctx context.Context, name, output, bindings string) ([]generator.Artifact, error) {
	target, err := a.registry.Target(name, output, bindings)
	if err != nil {
		return nil, err
	}
	return a.Run(ctx, target)
}

// Manifest generates every target of a manifest file.
func (a *App) Manifest(ctx context.Context, path string) ([]generator.Artifact, error) {
	m, err := schema.LoadFile(path)
	if err != nil {
		return nil, err
	}
	targets, err := m.Build(a.registry)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return a.Run(ctx, targets...)
}

// Run renders and writes targets. Artifacts come back in target order.
func (a *App) Run(ctx context.Context, targets ...schema.Target) ([]generator.Artifact, error) {
	logger := log.ForRun(a.logger)
	started := time.Now()

	results, err := concurrent.ParallelMap(ctx, sequence.From(targets), a.workers,
		func(ctx context.Context, t schema.Target) ([]generator.Artifact, error) {
			return a.runTarget(ctx, logger.With(log.String("target", t.Name)), t)
		})
	if err != nil {
		logger.Error("Generation failed", log.Err(err))
		return nil, err
	}

	var artifacts []generator.Artifact
	for _, r := range results {
		artifacts = append(artifacts, r...)
	}

	logger.Info("Generation finished",
		log.Int("targets", len(targets)),
		log.Int("files", len(artifacts)),
		log.Duration("took", time.Since(started)))
	return artifacts, nil
}

func (a *App) runTarget(ctx context.Context, logger log.Log, t schema.Target) ([]generator.Artifact, error) {
	var artifacts []generator.Artifact
	for _, job := range t.Jobs {
		g, err := generator.New(job.Config, generator.WithLogger(logger))
		if err != nil {
			return nil, errors.WithMessage(err, t.Name)
		}
		g.Add(job.Objects...)

		written, err := g.Run(ctx)
		if err != nil {
			return nil, errors.WithMessage(err, t.Name)
		}
		artifacts = append(artifacts, written...)
	}
	return artifacts, nil
}
