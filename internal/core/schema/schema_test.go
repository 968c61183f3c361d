package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leviathan-engine/filegen/internal/core/classes"
	"github.com/leviathan-engine/filegen/internal/core/emit"
	"github.com/leviathan-engine/filegen/internal/core/generator"
	"github.com/leviathan-engine/filegen/internal/core/model"
	"github.com/leviathan-engine/filegen/internal/core/world"
)

const worldManifest = `
targets:
  - name: test-world
    output: gen/TestWorld.h
    bindings: gen/TestWorldBindings.h
    namespace: Leviathan
    export: DLLEXPORT
    includes: ["Entities/GameWorld.h"]
    world:
      name: TestWorld
      components:
        - type: Position
          state: true
          constructors:
            - parameters:
                - {name: _Position, type: Float3}
                - {name: _Orientation, type: Float4}
        - type: RenderNode
          release: ["GetScene()"]
      systems:
        - type: RenderingPositionSystem
          nodes: [RenderNode, Position]
          render: {group: 10}
        - type: ScriptSystem
          tick: {group: 1, parameters: ["tick"]}
          init: []
          release:
            - {name: engine, type: ScriptEngine*, nonmethodparam: true}
`

const classManifest = `
targets:
  - name: responses
    output: gen/Responses.h
    classes:
      - kind: response
        name: ResponseIdentification
        base: NetworkResponse
        base_args: "NETWORK_RESPONSE_TYPE::Identification, responseid"
        constructor_args: ["uint32_t responseid"]
        members:
          - {name: UserReadableData, type: std::string}
          - {name: GameName, type: std::string}
      - kind: plain
        name: Settings
        copy: true
        members:
          - {name: Width, type: int32_t, default: "1280"}
          - {name: Title, type: std::string, default: ""}
`

func TestLoadYAML(t *testing.T) {
	m, err := LoadYAML(strings.NewReader(worldManifest))
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	require.Len(t, m.Targets, 1)

	target := m.Targets[0]
	assert.Equal(t, "gen/TestWorld.h", target.Output)
	assert.Equal(t, "Leviathan", target.Namespace)
	assert.Equal(t, "DLLEXPORT", target.ExportMacro)

	w := target.World
	require.NotNil(t, w)
	require.Len(t, w.Components, 2)
	assert.True(t, w.Components[0].State)
	assert.False(t, w.Components[0].Release.Set)
	assert.Equal(t, ListOf("GetScene()"), w.Components[1].Release)

	script := w.Systems[1]
	assert.True(t, script.Init.Set)
	assert.Empty(t, script.Init.Items)
	require.Len(t, script.Release.Items, 1)
	assert.True(t, script.Release.Items[0].NonMethodParam)
}

func TestScalarWhereListRequired(t *testing.T) {
	cases := map[string]string{
		"Release": `
targets:
  - name: w
    output: w.h
    world:
      name: W
      components:
        - {type: RenderNode, release: "GetScene()"}
`,
		"Init": `
targets:
  - name: w
    output: w.h
    world:
      name: W
      systems:
        - {type: S, init: engine}
`,
		"Parameters": `
targets:
  - name: w
    output: w.h
    world:
      name: W
      components:
        - type: Model
          constructors:
            - parameters: meshname
`,
	}

	for name, manifest := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadYAML(strings.NewReader(manifest))
			require.ErrorIs(t, err, model.ErrConfiguration)
		})
	}

	t.Run("JSON", func(t *testing.T) {
		_, err := LoadJSON(strings.NewReader(`{"targets":[{"name":"w","output":"w.h","world":{"name":"W","systems":[{"type":"S","release":"x"}]}}]}`))
		require.ErrorIs(t, err, model.ErrConfiguration)
	})
}

func TestLoadJSON(t *testing.T) {
	m, err := LoadJSON(strings.NewReader(`{
		"targets": [{
			"name": "states",
			"output": "gen/States.h",
			"separate": true,
			"classes": [{
				"kind": "state",
				"name": "PositionState",
				"members": [{"name": "_Position", "type": "Float3"}]
			}]
		}]
	}`))
	require.NoError(t, err)

	targets, err := m.Build(nil)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	require.Len(t, targets[0].Jobs, 1)

	job := targets[0].Jobs[0]
	assert.True(t, job.Config.Separate)
	require.Len(t, job.Objects, 1)

	state, ok := job.Objects[0].(*classes.ComponentState)
	require.True(t, ok)
	assert.Equal(t, "COMPONENT_TYPE::Position", state.TypeTag())
}

func TestUnknownFields(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("targets:\n  - name: a\n    outptu: a.h\n"))
	require.Error(t, err)
}

func TestBuildWorld(t *testing.T) {
	m, err := LoadYAML(strings.NewReader(worldManifest))
	require.NoError(t, err)

	targets, err := m.Build(nil)
	require.NoError(t, err)
	require.Len(t, targets, 1)

	jobs := targets[0].Jobs
	require.Len(t, jobs, 2)

	g, ok := jobs[0].Objects[0].(*world.GameWorldClass)
	require.True(t, ok)
	assert.Equal(t, "TestWorld", g.Name())
	require.Len(t, g.Components(), 2)
	require.Len(t, g.Systems(), 2)

	w := emit.NewWriter()
	require.NoError(t, g.Emit(w, emit.Implementation))
	out := w.String()
	assert.Contains(t, out, "Position& TestWorld::GetComponent_Position(ObjectID id)")
	assert.Contains(t, out, "ComponentRenderNode.ReleaseAllAndClear(GetScene());")
	assert.Contains(t, out, "_ScriptSystem.Release(engine);")

	bindings := jobs[1]
	assert.Equal(t, "gen/TestWorldBindings.h", bindings.Config.Output)
	assert.True(t, bindings.Config.Bare)
	assert.IsType(t, &world.Bindings{}, bindings.Objects[0])
}

func TestBuildClasses(t *testing.T) {
	m, err := LoadYAML(strings.NewReader(classManifest))
	require.NoError(t, err)

	targets, err := m.Build(nil)
	require.NoError(t, err)
	objects := targets[0].Jobs[0].Objects
	require.Len(t, objects, 2)

	response, ok := objects[0].(*classes.ResponseClass)
	require.True(t, ok)
	assert.Equal(t, "NetworkResponse", response.BaseClass())

	w := emit.NewWriter()
	require.NoError(t, response.Emit(w, emit.Header))
	assert.Contains(t, w.String(), "ResponseIdentification(uint32_t responseid, const std::string &userreadabledata, const std::string &gamename);")
	assert.Contains(t, w.String(), "void _SerializeCustom(sf::Packet &packet) const override")

	plain, ok := objects[1].(*classes.OutputClass)
	require.True(t, ok)

	w = emit.NewWriter()
	require.NoError(t, plain.Emit(w, emit.Header))
	assert.Contains(t, w.String(), `const std::string &title = ""`)
	assert.Contains(t, w.String(), "Settings(const Settings& other) noexcept;")
}

func TestValidate(t *testing.T) {
	world := &WorldSpec{Name: "W"}
	classes := []*ClassSpec{{Name: "A"}}

	tests := []struct {
		name     string
		manifest Manifest
	}{
		{"Empty", Manifest{}},
		{"NoName", Manifest{Targets: []TargetSpec{{Config: generator.Config{Output: "a.h"}, World: world}}}},
		{"NoSource", Manifest{Targets: []TargetSpec{{Name: "a", Config: generator.Config{Output: "a.h"}}}}},
		{"TwoSources", Manifest{Targets: []TargetSpec{{Name: "a", Config: generator.Config{Output: "a.h"}, World: world, Classes: classes}}}},
		{"BindingsWithoutWorld", Manifest{Targets: []TargetSpec{{Name: "a", Config: generator.Config{Output: "a.h"}, Bindings: "b.h", Classes: classes}}}},
		{"UnknownKind", Manifest{Targets: []TargetSpec{{Name: "a", Config: generator.Config{Output: "a.h"}, Classes: []*ClassSpec{{Name: "A", Kind: "weird"}}}}}},
		{"StateBitsOnPlain", Manifest{Targets: []TargetSpec{{Name: "a", Config: generator.Config{Output: "a.h"}, Classes: []*ClassSpec{{Name: "A", StateBits: []string{"x"}}}}}}},
		{"DuplicateName", Manifest{Targets: []TargetSpec{
			{Name: "a", Config: generator.Config{Output: "a.h"}, World: world},
			{Name: "a", Config: generator.Config{Output: "b.h"}, World: world},
		}}},
		{"SharedOutput", Manifest{Targets: []TargetSpec{
			{Name: "a", Config: generator.Config{Output: "out/a.h"}, World: world},
			{Name: "b", Config: generator.Config{Output: "out/../out/a.h"}, Classes: classes},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.manifest.Validate(), model.ErrConfiguration)
		})
	}

	t.Run("NoOutput", func(t *testing.T) {
		m := Manifest{Targets: []TargetSpec{{Name: "a", World: world}}}
		require.ErrorIs(t, m.Validate(), generator.ErrNoOutput)
	})
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	calls := 0
	factory := func() (Contents, error) {
		calls++
		c, err := classes.NewOutputClass("Built")
		if err != nil {
			return Contents{}, err
		}
		return Contents{Objects: []generator.Object{c}}, nil
	}

	require.NoError(t, reg.Register(Builtin{Name: "b", Config: generator.Config{Output: "def/B.h"}, Factory: factory}))
	require.NoError(t, reg.Register(Builtin{Name: "a", Config: generator.Config{Output: "def/A.h"}, Factory: factory}))
	require.ErrorIs(t, reg.Register(Builtin{Name: "a", Factory: factory}), model.ErrConfiguration)
	require.ErrorIs(t, reg.Register(Builtin{Name: "c"}), model.ErrConfiguration)

	assert.Equal(t, []string{"a", "b"}, reg.Names())

	_, err := reg.Lookup("missing")
	require.ErrorIs(t, err, ErrUnknownTarget)

	t.Run("DefaultOutput", func(t *testing.T) {
		target, err := reg.Target("a", "", "")
		require.NoError(t, err)
		assert.Equal(t, "def/A.h", target.Jobs[0].Config.Output)
	})

	t.Run("OverrideOutput", func(t *testing.T) {
		target, err := reg.Target("a", "x/A.h", "")
		require.NoError(t, err)
		assert.Equal(t, "x/A.h", target.Jobs[0].Config.Output)
	})

	t.Run("BindingsWithoutContents", func(t *testing.T) {
		_, err := reg.Target("a", "", "x/Bindings.h")
		require.ErrorIs(t, err, model.ErrConfiguration)
	})

	t.Run("Manifest", func(t *testing.T) {
		m := Manifest{Targets: []TargetSpec{{Name: "from-builtin", Config: generator.Config{Output: "m/A.h"}, Builtin: "a"}}}
		targets, err := m.Build(reg)
		require.NoError(t, err)
		assert.Equal(t, "m/A.h", targets[0].Jobs[0].Config.Output)

		m.Targets[0].Builtin = "missing"
		_, err = m.Build(reg)
		require.ErrorIs(t, err, ErrUnknownTarget)
	})

	assert.Equal(t, 4, calls)
}
