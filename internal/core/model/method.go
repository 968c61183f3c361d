package model

import (
	"strings"

	"github.com/leviathan-engine/filegen/internal/core/emit"
)

// GeneratedMethod is a free-form method attached to a class description.
type GeneratedMethod struct {
	Name       string
	ReturnType string
	Parameters []*Variable
	Body       string
}

func NewGeneratedMethod(name, returnType string, parameters []*Variable, body string) *GeneratedMethod {
	return &GeneratedMethod{
		Name:       name,
		ReturnType: returnType,
		Parameters: parameters,
		Body:       body,
	}
}

func (m *GeneratedMethod) FormatParameters(pass emit.Pass) string {
	parts := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		parts[i] = p.FormatForParams(pass)
	}
	return strings.Join(parts, ", ")
}
