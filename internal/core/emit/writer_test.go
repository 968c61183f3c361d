package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Line(t *testing.T) {
	w := NewWriter()
	w.Line("a")
	w.Line("b\n")
	w.Blank()
	w.Linef("%s-%d", "c", 1)

	require.Equal(t, "a\nb\n\nc-1\n", w.String())
	require.Equal(t, len("a\nb\n\nc-1\n"), w.Len())
}

func TestSignature_Render(t *testing.T) {
	sig := Signature{
		Export:   "DLLEXPORT",
		Virtual:  true,
		Return:   "bool",
		Owner:    "StandardWorld",
		Name:     "Tick",
		Params:   "int tick",
		Const:    true,
		Override: true,
	}

	assert.Equal(t, "DLLEXPORT virtual bool Tick(int tick) const override", sig.Render(Header))
	assert.Equal(t, "DLLEXPORT bool StandardWorld::Tick(int tick) const", sig.Render(Implementation))

	ctor := Signature{Owner: "Camera", Name: "Camera", Params: "Camera&& other", Noexcept: true}
	assert.Equal(t, "Camera(Camera&& other) noexcept", ctor.Render(Header))
	assert.Equal(t, "Camera::Camera(Camera&& other) noexcept", ctor.Render(Implementation))
}

func TestWriter_Method(t *testing.T) {
	sig := Signature{Return: "void", Owner: "World", Name: "Clear"}

	t.Run("Header", func(t *testing.T) {
		w := NewWriter()
		w.Method(Header, sig, func() { w.Line("never") })
		require.Equal(t, "void Clear();\n", w.String())
	})

	t.Run("Implementation", func(t *testing.T) {
		w := NewWriter()
		w.Method(Implementation, sig, func() { w.Line("Reset();") })
		require.Equal(t, "void World::Clear(){\nReset();\n}\n", w.String())
		require.Equal(t, []Signature{sig}, w.Signatures())
	})

	t.Run("Inline Not Recorded", func(t *testing.T) {
		w := NewWriter()
		w.Inline(Signature{Return: "int", Name: "Get"}, "return 1;")
		require.Equal(t, "int Get(){\n    return 1;\n}\n", w.String())
		require.Empty(t, w.Signatures())
	})
}

func TestPass(t *testing.T) {
	require.Equal(t, "header", Header.String())
	require.Equal(t, "implementation", Implementation.String())
	require.Equal(t, " = 1", Header.Default("1"))
	require.Equal(t, "", Implementation.Default("1"))
	require.Equal(t, "Owner::", Implementation.Qualifier("Owner"))
	require.Equal(t, []Pass{Header, Implementation}, Passes)
}
