package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leviathan-engine/filegen/internal/core/definitions"
)

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("List", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run(ctx, []string{"-log", "error", "list"}, &out))
		assert.Contains(t, out.String(), definitions.TargetStandardWorld)
		assert.Contains(t, out.String(), definitions.TargetResponses)
	})

	t.Run("Responses", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "Responses.h")
		require.NoError(t, run(ctx, []string{"-log", "error", "responses", out}, &bytes.Buffer{}))
		assert.FileExists(t, out)
	})

	t.Run("World", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, run(ctx, []string{"-log", "error", "world",
			filepath.Join(dir, "StandardWorld.h"), filepath.Join(dir, "Bindings.h")}, &bytes.Buffer{}))
		assert.FileExists(t, filepath.Join(dir, "StandardWorld.cpp"))
		assert.FileExists(t, filepath.Join(dir, "Bindings.h"))
	})

	t.Run("Errors", func(t *testing.T) {
		for _, args := range [][]string{
			{"-log", "error"},
			{"-log", "error", "nope"},
			{"-log", "error", "world"},
			{"-log", "error", "manifest", filepath.Join(t.TempDir(), "missing.yaml")},
		} {
			assert.Error(t, run(ctx, args, &bytes.Buffer{}), args)
		}
	})
}
