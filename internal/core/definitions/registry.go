package definitions

import (
	"github.com/leviathan-engine/filegen/internal/core/generator"
	"github.com/leviathan-engine/filegen/internal/core/schema"
)

const (
	TargetStandardWorld   = "standard-world"
	TargetResponses       = "responses"
	TargetComponentStates = "component-states"

	ExportMacro = "DLLEXPORT"
)

// Builtins are the inbuilt targets with the output layout the engine build
// expects.
func Builtins() []schema.Builtin {
	return []schema.Builtin{
		{
			Name:        TargetStandardWorld,
			Description: "GameWorld with every inbuilt component and system",
			Config: generator.Config{
				Output:      "Generated/StandardWorld.h",
				Namespace:   "Leviathan",
				Includes:    []string{"Entities/GameWorld.h"},
				Separate:    true,
				ExportMacro: ExportMacro,
			},
			Factory: func() (schema.Contents, error) {
				g, err := StandardWorld()
				if err != nil {
					return schema.Contents{}, err
				}
				return schema.Contents{
					Objects:  []generator.Object{g},
					Bindings: []generator.Object{g.Bindings()},
				}, nil
			},
		},
		{
			Name:        TargetResponses,
			Description: "network response classes",
			Config: generator.Config{
				Output:      "Generated/ResponseImpl.h",
				ExportMacro: ExportMacro,
			},
			Factory: func() (schema.Contents, error) {
				responses, err := Responses()
				if err != nil {
					return schema.Contents{}, err
				}
				objects := make([]generator.Object, len(responses))
				for i, r := range responses {
					objects[i] = r
				}
				return schema.Contents{Objects: objects}, nil
			},
		},
		{
			Name:        TargetComponentStates,
			Description: "interpolation states of the inbuilt components",
			Config: generator.Config{
				Output:      "Generated/ComponentStates.h",
				Namespace:   "Leviathan",
				Includes:    []string{"Entities/ComponentState.h", "Common/Types.h"},
				ExportMacro: ExportMacro,
			},
			Factory: func() (schema.Contents, error) {
				states, err := ComponentStates()
				if err != nil {
					return schema.Contents{}, err
				}
				objects := make([]generator.Object, len(states))
				for i, s := range states {
					objects[i] = s
				}
				return schema.Contents{Objects: objects}, nil
			},
		},
	}
}

// Register adds every builtin to reg.
func Register(reg *schema.Registry) error {
	for _, b := range Builtins() {
		if err := reg.Register(b); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry is a registry holding the builtins.
func NewRegistry() (*schema.Registry, error) {
	reg := schema.NewRegistry()
	if err := Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}
