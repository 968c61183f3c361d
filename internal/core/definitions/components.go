// Package definitions holds the engine's own generated classes: the standard
// world and its components, the network responses and the component states.
package definitions

import "github.com/leviathan-engine/filegen/internal/core/model"

func scene() *model.Variable {
	return model.NewVariable("GetScene()", "", model.NonMethodParam())
}

func renderNodeOf() *model.Variable {
	return model.NewVariable("GetComponent_RenderNode(id)", "", model.NonMethodParam())
}

func Position() *model.EntityComponent {
	return model.MustEntityComponent("Position", []*model.ConstructorInfo{
		model.MustConstructorInfo([]*model.Variable{
			model.NewVariable("position", "Float3", model.MemberAccess("Members._Position")),
			model.NewVariable("orientation", "Float4", model.MemberAccess("Members._Orientation")),
		}, model.UseDataStruct()),
	}, model.WithState())
}

func RenderNode() *model.EntityComponent {
	return model.MustEntityComponent("RenderNode", []*model.ConstructorInfo{
		model.MustConstructorInfo([]*model.Variable{scene()}),
	}, model.WithRelease("GetScene()"))
}

func Sendable() *model.EntityComponent {
	return model.MustEntityComponent("Sendable", nil, model.NoSynchronize())
}

func Received() *model.EntityComponent {
	return model.MustEntityComponent("Received", nil, model.NoSynchronize())
}

// Model isn't synchronized, materials have no serialization yet.
func Model() *model.EntityComponent {
	return model.MustEntityComponent("Model", []*model.ConstructorInfo{
		model.MustConstructorInfo([]*model.Variable{
			scene(),
			renderNodeOf(),
			model.NewVariable("model", "std::string", model.MemberAccess("MeshName")),
			model.NewVariable("material", "bs::HMaterial", model.MemberAccess("Material")),
		}),
	}, model.WithRelease(), model.NoSynchronize())
}

// Physics takes its position from the entity's Position when decoded.
func Physics() *model.EntityComponent {
	return model.MustEntityComponent("Physics", []*model.ConstructorInfo{
		model.MustConstructorInfo([]*model.Variable{
			model.NewVariable("id", "ObjectID", model.NonMethodParam(), model.NonSerializeParam()),
			model.NewVariable("this", "GameWorld*", model.NoRef(), model.NonMethodParam()),
			model.NewVariable("updatepos", "Position",
				model.NoConst(),
				model.NonSerializeParam(),
				model.ScriptUseInstead(model.NewVariable("updatepos", "Position*", model.NoRef()))),
		}, model.UseDataStruct()),
	}, model.WithRelease("GetPhysicalWorld()"))
}

func BoxGeometry() *model.EntityComponent {
	return model.MustEntityComponent("BoxGeometry", []*model.ConstructorInfo{
		model.MustConstructorInfo([]*model.Variable{
			model.NewVariable("size", "Float3", model.MemberAccess("Sizes")),
			model.NewVariable("material", "std::string", model.MemberAccess("Material")),
		}),
	})
}

func Camera() *model.EntityComponent {
	return model.MustEntityComponent("Camera", []*model.ConstructorInfo{
		model.MustConstructorInfo([]*model.Variable{
			model.NewVariable("fov", "uint16_t", model.WithDefault("90"), model.MemberAccess("FOV")),
			model.NewVariable("soundperceiver", "bool", model.WithBoolDefault(true), model.MemberAccess("SoundPerceiver")),
		}),
	})
}

func Animated() *model.EntityComponent {
	return model.MustEntityComponent("Animated", []*model.ConstructorInfo{
		model.MustConstructorInfo([]*model.Variable{renderNodeOf()}),
	}, model.WithRelease())
}

// StandardComponents returns fresh descriptions of every inbuilt component in
// storage order.
func StandardComponents() []*model.EntityComponent {
	return []*model.EntityComponent{
		Position(),
		RenderNode(),
		Sendable(),
		Received(),
		Model(),
		Physics(),
		BoxGeometry(),
		Camera(),
		Animated(),
	}
}
