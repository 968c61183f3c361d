//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/leviathan-engine/filegen/internal/app"
	"github.com/leviathan-engine/filegen/internal/core/definitions"
	"github.com/leviathan-engine/filegen/internal/core/observability/log"
)

func InitializeApp(level log.Level) (*app.App, error) {
	wire.Build(
		log.New,
		wire.Bind(new(log.Log), new(*log.Logger)),
		definitions.NewRegistry,
		app.New,
	)
	return nil, nil
}
