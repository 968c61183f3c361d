package schema

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/leviathan-engine/filegen/internal/core/model"
)

// List is a manifest sequence that remembers whether it was written at all.
// "release: []" and a missing release mean different things. A scalar in
// place of the list is rejected instead of being wrapped.
type List[T any] struct {
	Items []T
	Set   bool
}

func ListOf[T any](items ...T) List[T] {
	return List[T]{Items: items, Set: true}
}

func (l *List[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return errors.Wrapf(model.ErrConfiguration, "line %d: expected a list, got %q", node.Line, node.Value)
	}
	var items []T
	if err := node.Decode(&items); err != nil {
		return err
	}
	l.Items, l.Set = items, true
	return nil
}

func (l *List[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return errors.Wrapf(model.ErrConfiguration, "expected a list, got %s", trimmed)
	}
	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return err
	}
	l.Items, l.Set = items, true
	return nil
}

func (l List[T]) MarshalYAML() (any, error) {
	if !l.Set {
		return nil, nil
	}
	if l.Items == nil {
		return []T{}, nil
	}
	return l.Items, nil
}

func (l List[T]) MarshalJSON() ([]byte, error) {
	if !l.Set {
		return []byte("null"), nil
	}
	if l.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.Items)
}
