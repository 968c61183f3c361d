package model

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/leviathan-engine/filegen/internal/core/emit"
)

func TestConstructorInfo_FormatNames(t *testing.T) {
	params := []*Variable{NewVariable("a", "int"), NewVariable("b", "int")}

	t.Run("Data Struct", func(t *testing.T) {
		c := MustConstructorInfo(params, UseDataStruct())
		require.Equal(t, ", ClassName::Data{a, b}", c.FormatNames("ClassName"))
	})

	t.Run("Flat", func(t *testing.T) {
		c := MustConstructorInfo(params)
		require.Equal(t, ", a, b", c.FormatNames("ClassName"))
	})

	t.Run("Empty", func(t *testing.T) {
		require.Equal(t, "", MustConstructorInfo(nil).FormatNames("ClassName"))
		require.Equal(t, ", ClassName::Data{}", MustConstructorInfo(nil, UseDataStruct()).FormatNames("ClassName"))
	})

	t.Run("Non Method Params Forwarded Literally", func(t *testing.T) {
		c := MustConstructorInfo([]*Variable{
			NewVariable("id", "ObjectID", NonMethodParam()),
			NewVariable("Model", "std::string"),
		}, UseDataStruct())

		require.Equal(t, ", Model::Data{id, model}", c.FormatNames("Model"))
	})
}

func TestConstructorInfo_Parameters(t *testing.T) {
	c := MustConstructorInfo([]*Variable{
		NewVariable("GetScene()", "", NonMethodParam()),
		NewVariable("Fov", "uint16_t", WithDefault("90")),
		NewVariable("World", "GameWorld*", NoRef()),
	})

	require.Equal(t, ", const uint16_t &fov = 90, GameWorld* world", c.FormatParameters(emit.Header, true))
	require.Equal(t, "const uint16_t &fov/* = 90 */, GameWorld* world", c.FormatParameters(emit.Implementation, false))
	require.Equal(t, ", const uint16_t&, GameWorld*", c.FormatParameterTypes(true))
	require.Equal(t, ", const uint16 &in fov = 90, GameWorld@ world", c.FormatParametersScript(true))
	require.Equal(t, ", fov, world", c.FormatNamesForForward(true))
	require.Len(t, c.MethodParameters(), 2)

	only := MustConstructorInfo([]*Variable{NewVariable("this", "GameWorld*", NonMethodParam())})
	require.Equal(t, "", only.FormatParameters(emit.Header, true))
	require.Equal(t, "", only.FormatParameterTypes(true))
}

func TestConstructorInfo_Initializers(t *testing.T) {
	c := MustConstructorInfo(nil, WithMemberInitializers(
		MemberInitializer{Member: "A", Expression: "1"},
		MemberInitializer{Member: "B", Expression: "other"},
	), BaseParameters("x, y"))

	require.Equal(t, "A(1), B(other)", c.FormatMemberInitializers())
	base, ok := c.BaseParameters()
	require.True(t, ok)
	require.Equal(t, "x, y", base)
}

func TestConstructorInfo_RejectsNil(t *testing.T) {
	_, err := NewConstructorInfo([]*Variable{NewVariable("a", "int"), nil})
	require.True(t, errors.Is(err, ErrConfiguration))
}

func TestEntitySystem(t *testing.T) {
	s := MustEntitySystem("TemplatedSystem<Position>", []string{"Position"}, RunTick(2, "tick"), WithInit())

	require.Equal(t, "TemplatedSystemPosition", s.Name())
	require.Equal(t, "_TemplatedSystemPosition", s.MemberName())
	require.Equal(t, ", tick", s.Tick().FormatParameters())
	require.Nil(t, s.Render())

	args, ok := s.Init()
	require.True(t, ok)
	require.Empty(t, args)

	_, ok = s.Release()
	require.False(t, ok)
	require.True(t, s.ClearsNodes())

	stateless := MustEntitySystem("SendableSystem", nil, NoState())
	require.False(t, stateless.ClearsNodes())

	_, err := NewEntitySystem("<>", nil)
	require.True(t, errors.Is(err, ErrConfiguration))

	_, err = NewEntitySystem("Broken", nil, WithInit(nil))
	require.True(t, errors.Is(err, ErrConfiguration))
}

func TestEntityComponent(t *testing.T) {
	c := MustEntityComponent("Position", nil, WithState())

	require.Len(t, c.Constructors(), 1)
	require.Empty(t, c.Primary().Parameters())
	require.Equal(t, "ComponentPosition", c.StorageName())
	require.Equal(t, "PositionStates", c.StatesName())
	require.Equal(t, "PositionState", c.StateClass())
	require.True(t, c.HasState())
	require.True(t, c.IsSynchronized())

	_, released := c.Release()
	require.False(t, released)

	withRelease := MustEntityComponent("RenderNode", nil, WithRelease(), NoSynchronize())
	args, released := withRelease.Release()
	require.True(t, released)
	require.Empty(t, args)
	require.False(t, withRelease.IsSynchronized())

	_, err := NewEntityComponent("", nil)
	require.True(t, errors.Is(err, ErrConfiguration))
}
