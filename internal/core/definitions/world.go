package definitions

import (
	"github.com/leviathan-engine/filegen/internal/core/model"
	"github.com/leviathan-engine/filegen/internal/core/world"
)

const (
	StandardWorldName = "StandardWorld"
	StandardWorldType = "static_cast<int32_t>(INBUILT_WORLD_TYPE::Standard)"
)

const skipWithoutGraphics = `// Skip in non-gui mode //
if(!GraphicalMode)
    return;`

// StandardSystems are the inbuilt systems. Received states are applied before
// nodes are positioned and hidden, Sendable runs last in the tick.
func StandardSystems() []*model.EntitySystem {
	return []*model.EntitySystem{
		model.MustEntitySystem("ReceivedSystem", nil,
			model.RunRender(1, "ComponentReceived.GetIndex()")),
		model.MustEntitySystem("RenderingPositionSystem", []string{"RenderNode", "Position"},
			model.RunRender(10)),
		model.MustEntitySystem("RenderNodeHiderSystem", nil,
			model.RunRender(20, "ComponentRenderNode.GetIndex()")),
		model.MustEntitySystem("AnimationSystem", []string{"Animated", "RenderNode"},
			model.RunRender(30, "tick", "timeintick")),
		model.MustEntitySystem("PositionStateSystem", nil,
			model.RunTick(50, "ComponentPosition.GetIndex()", "PositionStates", "GetTickNumber()")),
		model.MustEntitySystem("SendableSystem", nil,
			model.RunTick(100, "ComponentSendable.GetIndex()")),
	}
}

// StandardWorld is the world with every inbuilt component.
func StandardWorld(opts ...world.Option) (*world.GameWorldClass, error) {
	base := []world.Option{
		world.WithComponents(StandardComponents()...),
		world.WithSystems(StandardSystems()...),
		world.WithWorldType(StandardWorldType),
		world.WithFrameSystemRun(skipWithoutGraphics),
	}
	return world.NewGameWorldClass(StandardWorldName, append(base, opts...)...)
}
