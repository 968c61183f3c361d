// Package emit holds the text primitives shared by every generated object:
// the two-valued pass selector, a line writer and structured declarations.
package emit

// Pass selects which half of a header/implementation pair is being written.
type Pass uint8

const (
	Header Pass = iota + 1
	Implementation
)

// Passes lists the passes in emission order.
var Passes = []Pass{Header, Implementation}

func (p Pass) IsHeader() bool { return p == Header }

func (p Pass) IsImplementation() bool { return p == Implementation }

func (p Pass) String() string {
	switch p {
	case Header:
		return "header"
	case Implementation:
		return "implementation"
	default:
		return "unknown"
	}
}

// Qualifier returns "Owner::" outside of the header.
func (p Pass) Qualifier(owner string) string {
	if p.IsHeader() {
		return ""
	}
	return owner + "::"
}

// Override returns " override" in the header only.
func (p Pass) Override() string {
	if p.IsHeader() {
		return " override"
	}
	return ""
}

// Default returns " = value" in the header only.
func (p Pass) Default(value string) string {
	if p.IsHeader() {
		return " = " + value
	}
	return ""
}
