package model

import (
	"strings"

	"github.com/leviathan-engine/filegen/internal/core/emit"
)

// Variable is one typed value of a generated class: a member, a constructor
// parameter or a forwarded argument. It is immutable once built.
type Variable struct {
	ident      Identifier
	typ        string
	def        string
	hasDefault bool

	noRef             bool
	noConst           bool
	move              bool
	nonMethodParam    bool
	nonSerializeParam bool

	serializeAs  string
	memberAccess string

	scriptRef        string
	scriptUseInstead *Variable
}

// VariableOption configures a Variable at construction.
type VariableOption func(*Variable)

// WithDefault sets the default value literal. An empty string is a real
// default and renders as "".
func WithDefault(value string) VariableOption {
	return func(v *Variable) {
		if value == "" {
			value = `""`
		}
		v.def = value
		v.hasDefault = true
	}
}

// WithBoolDefault sets a true/false default.
func WithBoolDefault(value bool) VariableOption {
	if value {
		return WithDefault("true")
	}
	return WithDefault("false")
}

// NoRef passes the value by copy.
func NoRef() VariableOption {
	return func(v *Variable) { v.noRef = true }
}

// NoConst drops the const qualifier from the reference.
func NoConst() VariableOption {
	return func(v *Variable) { v.noConst = true }
}

// Move passes the value as an rvalue reference and moves it into the member.
func Move() VariableOption {
	return func(v *Variable) { v.move = true }
}

// NonMethodParam marks a value the method already has in scope under its
// literal name. It never appears in a parameter list.
func NonMethodParam() VariableOption {
	return func(v *Variable) { v.nonMethodParam = true }
}

// NonSerializeParam keeps the value out of the wire format. It must be
// resolved from other components when decoding.
func NonSerializeParam() VariableOption {
	return func(v *Variable) { v.nonSerializeParam = true }
}

// SerializeAs routes packet I/O through another type with static_casts.
func SerializeAs(wireType string) VariableOption {
	return func(v *Variable) { v.serializeAs = wireType }
}

// MemberAccess sets the path used to read the value back from the finished
// object, for example "Members._Position".
func MemberAccess(path string) VariableOption {
	return func(v *Variable) { v.memberAccess = path }
}

// ScriptRef sets the script reference direction marker ("in", "out", "inout").
func ScriptRef(direction string) VariableOption {
	return func(v *Variable) { v.scriptRef = direction }
}

// ScriptUseInstead substitutes another variable in script parameter lists.
func ScriptUseInstead(other *Variable) VariableOption {
	return func(v *Variable) { v.scriptUseInstead = other }
}

func NewVariable(name, typ string, opts ...VariableOption) *Variable {
	v := &Variable{
		ident:     NewIdentifier(name),
		typ:       typ,
		scriptRef: "in",
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Variable) Name() string { return v.ident.Field() }

func (v *Variable) Ident() Identifier { return v.ident }

func (v *Variable) Type() string { return v.typ }

func (v *Variable) Default() (string, bool) { return v.def, v.hasDefault }

func (v *Variable) IsNonMethodParam() bool { return v.nonMethodParam }

func (v *Variable) IsNonSerializeParam() bool { return v.nonSerializeParam }

func (v *Variable) SerializeAsType() string { return v.serializeAs }

// FormatDefinition renders the member declaration, default included.
func (v *Variable) FormatDefinition() string {
	return v.typ + " " + v.ident.Field() + v.FormatDefault(emit.Header) + ";"
}

// FormatDefault renders " = value" in the header and a comment placeholder in
// the implementation, where repeating a default argument is invalid.
func (v *Variable) FormatDefault(pass emit.Pass) string {
	if !v.hasDefault {
		return ""
	}
	if pass.IsHeader() {
		return " = " + v.def
	}
	return "/* = " + v.def + " */"
}

// FormatForParams renders the variable as a parameter declaration.
func (v *Variable) FormatForParams(pass emit.Pass) string {
	return v.formatQualified(v.typ, "") + v.FormatDefault(pass)
}

// FormatType renders only the qualified type, for overload resolution casts.
func (v *Variable) FormatType() string {
	switch {
	case v.noRef:
		return v.typ
	case v.move:
		return v.typ + "&&"
	case v.noConst:
		return v.typ + "&"
	default:
		return "const " + v.typ + "&"
	}
}

func (v *Variable) formatQualified(typ, refMarker string) string {
	name := v.ident.Param()
	switch {
	case v.noRef:
		return typ + " " + name
	case v.move:
		return typ + "&& " + name
	case v.noConst:
		return typ + " &" + refMarker + name
	default:
		return "const " + typ + " &" + refMarker + name
	}
}

// ScriptType translates the C++ type to its scripting spelling.
func (v *Variable) ScriptType() string {
	switch v.typ {
	case "std::string":
		return "string"
	case "uint8_t":
		return "uint8"
	case "uint16_t":
		return "uint16"
	case "uint32_t":
		return "uint32"
	case "uint64_t":
		return "uint64"
	case "int8_t":
		return "int8"
	case "int16_t":
		return "int16"
	case "int32_t":
		return "int32"
	case "int64_t":
		return "int64"
	default:
		return strings.Replace(v.typ, "*", "@", 1)
	}
}

// FormatForParamsScript renders the parameter for a script declaration
// string. Defaults are always spelled out there.
func (v *Variable) FormatForParamsScript() string {
	if v.scriptUseInstead != nil {
		return v.scriptUseInstead.FormatForParamsScript()
	}

	refMarker := ""
	if v.scriptRef != "" {
		refMarker = v.scriptRef + " "
	}
	return v.formatQualified(v.ScriptType(), refMarker) + v.FormatDefault(emit.Header)
}

// FormatForArgumentList renders the value when forwarding it to a callee.
// Non-method params are already in scope under their literal name.
func (v *Variable) FormatForArgumentList() string {
	if v.nonMethodParam {
		return v.ident.Field()
	}
	return v.ident.Param()
}

// FormatInitializer renders the member initializer from the parameter.
func (v *Variable) FormatInitializer() string {
	if v.move {
		return v.ident.Field() + "(std::move(" + v.ident.Param() + "))"
	}
	return v.ident.Field() + "(" + v.ident.Param() + ")"
}

// FormatSerializer renders the member as a packet output operand.
func (v *Variable) FormatSerializer() string {
	return v.castForWire(v.ident.Field())
}

// FormatMemberSerializer reads the value off a finished object. owner is the
// access prefix such as "position->". The member access path is used when
// set, the member name otherwise.
func (v *Variable) FormatMemberSerializer(owner string) string {
	access := v.memberAccess
	if access == "" {
		access = v.ident.Field()
	}
	return v.castForWire(owner + access)
}

func (v *Variable) castForWire(expr string) string {
	if v.serializeAs == "" {
		return expr
	}
	return "static_cast<" + v.serializeAs + ">(" + expr + ")"
}

func (v *Variable) FormatCopy() string {
	return v.ident.Field() + "(other." + v.ident.Field() + ")"
}

func (v *Variable) FormatMove() string {
	return v.ident.Field() + "(std::move(other." + v.ident.Field() + "))"
}

// FormatDeserializer extracts the value from source into target, which
// defaults to the member name. With a wire type the value goes through a
// temporary and a cast back to the real type.
func (v *Variable) FormatDeserializer(source, target string) string {
	if target == "" {
		target = v.ident.Field()
	}

	if v.serializeAs == "" {
		return source + " >> " + target + ";\n"
	}

	tempName := "temp_" + target
	return v.serializeAs + " " + tempName + ";\n" +
		source + " >> " + tempName + ";\n" +
		target + " = static_cast<" + v.typ + ">(" + tempName + ");\n"
}
