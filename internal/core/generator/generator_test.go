package generator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leviathan-engine/filegen/internal/core/emit"
)

type stub struct {
	name     string
	export   string
	includes []string
	fail     error
}

func (s *stub) Name() string { return s.name }

func (s *stub) SetExport(macro string) { s.export = macro }

func (s *stub) ExtraIncludes() []string { return s.includes }

func (s *stub) Emit(w *emit.Writer, pass emit.Pass) error {
	if s.fail != nil {
		return s.fail
	}
	w.Line("// " + s.name + " " + pass.String() + " " + s.export)
	return nil
}

func TestConfigValidate(t *testing.T) {
	require.ErrorIs(t, Config{}.Validate(), ErrNoOutput)
	require.Error(t, Config{Output: "a.h", Separate: true, Bare: true}.Validate())
	require.NoError(t, Config{Output: "a.h"}.Validate())

	c := Config{Output: "gen/World.h", Separate: true}
	assert.Equal(t, "gen/World.h", c.HeaderPath())
	assert.Equal(t, "gen/World.cpp", c.ImplementationPath())

	c.Separate = false
	assert.Equal(t, "gen/World.h", c.ImplementationPath())
}

func TestRender(t *testing.T) {
	t.Run("SingleFile", func(t *testing.T) {
		g, err := New(Config{
			Output:       "out.h",
			Namespace:    "Leviathan",
			Includes:     []string{"Common/Types.h", "<vector>"},
			ImplIncludes: []string{"Impl.h"},
			ExportMacro:  "DLLEXPORT",
		})
		require.NoError(t, err)
		g.Add(&stub{name: "A", includes: []string{"Extra.h"}}, &stub{name: "B", includes: []string{"Extra.h"}})

		artifacts, err := g.Render()
		require.NoError(t, err)
		require.Len(t, artifacts, 1)

		expected := banner +
			"#pragma once\n" +
			"#include \"Common/Types.h\"\n" +
			"#include <vector>\n" +
			"#include \"Impl.h\"\n" +
			"#include \"Extra.h\"\n" +
			"\n" +
			"namespace Leviathan{\n" +
			"\n" +
			"// A header DLLEXPORT\n" +
			"// B header DLLEXPORT\n" +
			"// A implementation DLLEXPORT\n" +
			"// B implementation DLLEXPORT\n" +
			"}\n"
		assert.Equal(t, expected, string(artifacts[0].Content))
		assert.NotZero(t, artifacts[0].Fingerprint)
	})

	t.Run("Separate", func(t *testing.T) {
		g, err := New(Config{Output: "gen/World.h", Separate: true, ImplIncludes: []string{"Impl.h"}})
		require.NoError(t, err)
		g.Add(&stub{name: "A"})

		artifacts, err := g.Render()
		require.NoError(t, err)
		require.Len(t, artifacts, 2)

		header, impl := string(artifacts[0].Content), string(artifacts[1].Content)
		assert.Equal(t, "gen/World.h", artifacts[0].Path)
		assert.Equal(t, "gen/World.cpp", artifacts[1].Path)

		assert.Contains(t, header, "#pragma once")
		assert.NotContains(t, header, "Impl.h")
		assert.Contains(t, header, "// A header")
		assert.NotContains(t, header, "implementation")

		assert.NotContains(t, impl, "#pragma once")
		assert.Contains(t, impl, "#include \"World.h\"\n#include \"Impl.h\"\n")
		assert.Contains(t, impl, "// A implementation")
		assert.NotContains(t, impl, "header")
	})

	t.Run("Bare", func(t *testing.T) {
		g, err := New(Config{Output: "frag.h", Bare: true})
		require.NoError(t, err)
		g.Add(&stub{name: "A"})

		artifacts, err := g.Render()
		require.NoError(t, err)
		assert.Equal(t, "// A header \n// A implementation \n", string(artifacts[0].Content))
	})

	t.Run("Empty", func(t *testing.T) {
		g, err := New(Config{Output: "x.h"})
		require.NoError(t, err)

		_, err = g.Render()
		require.ErrorIs(t, err, ErrNothingToGenerate)
	})

	t.Run("Deterministic", func(t *testing.T) {
		g, err := New(Config{Output: "x.h", Separate: true})
		require.NoError(t, err)
		g.Add(&stub{name: "A"})

		first, err := g.Render()
		require.NoError(t, err)
		second, err := g.Render()
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("WritesReadOnly", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "nested", "World.h")
		g, err := New(Config{Output: out, Separate: true})
		require.NoError(t, err)
		g.Add(&stub{name: "A"})

		artifacts, err := g.Run(ctx)
		require.NoError(t, err)
		require.Len(t, artifacts, 2)

		for _, a := range artifacts {
			info, err := os.Stat(a.Path)
			require.NoError(t, err)
			assert.Equal(t, ReadOnly, info.Mode().Perm())

			content, err := os.ReadFile(a.Path)
			require.NoError(t, err)
			assert.Equal(t, a.Content, content)
		}
	})

	t.Run("Regenerates", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "World.h")
		first, err := New(Config{Output: out})
		require.NoError(t, err)
		first.Add(&stub{name: "A"})
		_, err = first.Run(ctx)
		require.NoError(t, err)

		// Same content again leaves the file alone.
		_, err = first.Run(ctx)
		require.NoError(t, err)

		second, err := New(Config{Output: out})
		require.NoError(t, err)
		second.Add(&stub{name: "B"})
		_, err = second.Run(ctx)
		require.NoError(t, err)

		content, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(content), "// B header"))

		info, err := os.Stat(out)
		require.NoError(t, err)
		assert.Equal(t, ReadOnly, info.Mode().Perm())
	})

	t.Run("NoPartialOutput", func(t *testing.T) {
		dir := t.TempDir()
		out := filepath.Join(dir, "World.h")
		g, err := New(Config{Output: out, Separate: true})
		require.NoError(t, err)

		broken := errors.New("broken")
		g.Add(&stub{name: "A"}, &stub{name: "B", fail: broken})

		_, err = g.Run(ctx)
		require.ErrorIs(t, err, broken)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("Cancelled", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "World.h")
		g, err := New(Config{Output: out})
		require.NoError(t, err)
		g.Add(&stub{name: "A"})

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err = g.Run(cancelled)
		require.ErrorIs(t, err, context.Canceled)
		assert.NoFileExists(t, out)
	})
}
