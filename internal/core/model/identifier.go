package model

import (
	"strings"
	"unicode"
)

// Identifier is a name as written by the author together with the projections
// the generated code needs. Projections are computed once.
type Identifier struct {
	raw       string
	param     string
	sanitized string
}

func NewIdentifier(raw string) Identifier {
	return Identifier{
		raw:       raw,
		param:     strings.ToLower(raw),
		sanitized: sanitize(raw),
	}
}

// Field is the member and type spelling, case preserved.
func (i Identifier) Field() string { return i.raw }

// Param is the lowercased spelling used for parameters and locals.
func (i Identifier) Param() string { return i.param }

// Sanitized strips everything that can't appear in a C++ identifier, so
// "TemplatedSystem<Position>" becomes "TemplatedSystemPosition".
func (i Identifier) Sanitized() string { return i.sanitized }

func (i Identifier) String() string { return i.raw }

func (i Identifier) IsZero() bool { return i.raw == "" }

func sanitize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r == '_' || r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
