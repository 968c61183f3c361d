package model

import (
	"strings"

	"github.com/leviathan-engine/filegen/internal/core/emit"
)

// MemberInitializer is one "member(expression)" entry of an initializer list.
type MemberInitializer struct {
	Member     string
	Expression string
}

// ConstructorInfo is an additional way to construct a class beyond the
// primary constructor derived from its members.
type ConstructorInfo struct {
	parameters         []*Variable
	useDataStruct      bool
	baseParameters     string
	hasBaseParameters  bool
	memberInitializers []MemberInitializer
	noScript           bool
}

type ConstructorOption func(*ConstructorInfo)

// UseDataStruct forwards the arguments as one ClassName::Data{...} aggregate.
func UseDataStruct() ConstructorOption {
	return func(c *ConstructorInfo) { c.useDataStruct = true }
}

// BaseParameters overrides the base class constructor arguments.
func BaseParameters(args string) ConstructorOption {
	return func(c *ConstructorInfo) {
		c.baseParameters = args
		c.hasBaseParameters = true
	}
}

func WithMemberInitializers(initializers ...MemberInitializer) ConstructorOption {
	return func(c *ConstructorInfo) {
		c.memberInitializers = append(c.memberInitializers, initializers...)
	}
}

// NoScript suppresses the script binding of this overload.
func NoScript() ConstructorOption {
	return func(c *ConstructorInfo) { c.noScript = true }
}

// NewConstructorInfo builds a constructor description. A nil parameter is a
// configuration error.
func NewConstructorInfo(parameters []*Variable, opts ...ConstructorOption) (*ConstructorInfo, error) {
	for i, p := range parameters {
		if p == nil {
			return nil, errorf(ErrConfiguration, "constructor parameter %d is not a variable", i)
		}
	}

	c := &ConstructorInfo{parameters: append([]*Variable(nil), parameters...)}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// MustConstructorInfo is NewConstructorInfo for descriptions written in code.
func MustConstructorInfo(parameters []*Variable, opts ...ConstructorOption) *ConstructorInfo {
	c, err := NewConstructorInfo(parameters, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *ConstructorInfo) Parameters() []*Variable { return c.parameters }

func (c *ConstructorInfo) UsesDataStruct() bool { return c.useDataStruct }

func (c *ConstructorInfo) BaseParameters() (string, bool) {
	return c.baseParameters, c.hasBaseParameters
}

func (c *ConstructorInfo) HasNoScript() bool { return c.noScript }

// MethodParameters returns the parameters a caller supplies.
func (c *ConstructorInfo) MethodParameters() []*Variable {
	out := make([]*Variable, 0, len(c.parameters))
	for _, p := range c.parameters {
		if !p.IsNonMethodParam() {
			out = append(out, p)
		}
	}
	return out
}

func (c *ConstructorInfo) formatMethodParameters(leadingComma bool, format func(*Variable) string) string {
	params := c.MethodParameters()
	if len(params) == 0 {
		return ""
	}

	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = format(p)
	}

	joined := strings.Join(parts, ", ")
	if leadingComma {
		return ", " + joined
	}
	return joined
}

// FormatParameters renders the caller supplied parameters for a declaration.
func (c *ConstructorInfo) FormatParameters(pass emit.Pass, leadingComma bool) string {
	return c.formatMethodParameters(leadingComma, func(v *Variable) string {
		return v.FormatForParams(pass)
	})
}

// FormatParameterTypes renders only the parameter types.
func (c *ConstructorInfo) FormatParameterTypes(leadingComma bool) string {
	return c.formatMethodParameters(leadingComma, (*Variable).FormatType)
}

// FormatParametersScript renders the parameters of a script declaration string.
func (c *ConstructorInfo) FormatParametersScript(leadingComma bool) string {
	return c.formatMethodParameters(leadingComma, (*Variable).FormatForParamsScript)
}

// FormatNamesForForward renders the caller supplied names, for calling
// another method with the same overload.
func (c *ConstructorInfo) FormatNamesForForward(leadingComma bool) string {
	return c.formatMethodParameters(leadingComma, (*Variable).FormatForArgumentList)
}

// FormatNames renders the trailing arguments passed to the construction
// primitive: ", Class::Data{a, b}" or ", a, b". Non-method params are
// included under their literal names.
func (c *ConstructorInfo) FormatNames(className string) string {
	names := make([]string, len(c.parameters))
	for i, p := range c.parameters {
		names[i] = p.FormatForArgumentList()
	}

	if c.useDataStruct {
		return ", " + className + "::Data{" + strings.Join(names, ", ") + "}"
	}
	if len(names) == 0 {
		return ""
	}
	return ", " + strings.Join(names, ", ")
}

// FormatMemberInitializers renders "a(x), b(y)" without a leading separator.
func (c *ConstructorInfo) FormatMemberInitializers() string {
	parts := make([]string, len(c.memberInitializers))
	for i, init := range c.memberInitializers {
		parts[i] = init.Member + "(" + init.Expression + ")"
	}
	return strings.Join(parts, ", ")
}
