package emit

import "strings"

// Signature is one constructor, operator or method declaration. The same value
// renders the in-class declaration and the out-of-line definition, so both
// passes can't drift apart.
type Signature struct {
	Export   string // export macro, empty when suppressed
	Virtual  bool
	Return   string // empty for constructors
	Owner    string // class the definition is qualified with
	Name     string
	Params   string // already rendered for the pass
	Const    bool
	Noexcept bool
	Override bool
}

// Render returns the declaration text without a terminator. virtual and
// override only appear in the header.
func (s Signature) Render(pass Pass) string {
	var b strings.Builder

	if s.Export != "" {
		b.WriteString(s.Export)
		b.WriteByte(' ')
	}
	if s.Virtual && pass.IsHeader() {
		b.WriteString("virtual ")
	}
	if s.Return != "" {
		b.WriteString(s.Return)
		b.WriteByte(' ')
	}

	b.WriteString(pass.Qualifier(s.Owner))
	b.WriteString(s.Name)
	b.WriteByte('(')
	b.WriteString(s.Params)
	b.WriteByte(')')

	if s.Const {
		b.WriteString(" const")
	}
	if s.Noexcept {
		b.WriteString(" noexcept")
	}
	if s.Override {
		b.WriteString(pass.Override())
	}

	return b.String()
}
