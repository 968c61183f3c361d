package model

import "github.com/pkg/errors"

// Generation errors. All of them abort a run; nothing is written.
var (
	// ErrConfiguration marks an authoring mistake in a description tree.
	ErrConfiguration = errors.New("invalid description")

	// ErrUnsupportedSchema marks a description the generator can't express.
	ErrUnsupportedSchema = errors.New("unsupported schema")

	// ErrNotImplemented marks a requested generator feature that doesn't exist yet.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnresolvedComponent marks a component name that no dispatch table declares.
	ErrUnresolvedComponent = errors.New("unresolved component type")
)

func errorf(sentinel error, format string, args ...any) error {
	return errors.Wrapf(sentinel, format, args...)
}
