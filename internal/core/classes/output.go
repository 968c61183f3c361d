// Package classes renders class descriptions as C++ declarations (header
// pass) and out-of-line definitions (implementation pass).
package classes

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/leviathan-engine/filegen/internal/core/emit"
	"github.com/leviathan-engine/filegen/internal/core/model"
)

// Body is the part of a class specializations replace. OutputClass drives the
// layout and calls back into the Body for each section.
type Body interface {
	EmitConstructors(w *emit.Writer, pass emit.Pass) error
	EmitMethods(w *emit.Writer, pass emit.Pass) error
	EmitMembers(w *emit.Writer, pass emit.Pass) error
}

var _ Body = (*OutputClass)(nil)

// OutputClass is a plain generated class: members that double as the primary
// constructor, extra constructors, optional copy/move support and free-form
// methods.
type OutputClass struct {
	name            string
	members         []*model.Variable
	baseClass       string
	baseConstructor string
	cArgs           []string
	constructors    []*model.ConstructorInfo
	methods         []*model.GeneratedMethod

	copyConstructors bool
	copyOperators    bool

	noExport    bool
	exportMacro string
}

type ClassOption func(*OutputClass)

func WithMembers(members ...*model.Variable) ClassOption {
	return func(c *OutputClass) { c.members = append(c.members, members...) }
}

// WithConstructors adds overloads beyond the member constructor.
func WithConstructors(constructors ...*model.ConstructorInfo) ClassOption {
	return func(c *OutputClass) { c.constructors = append(c.constructors, constructors...) }
}

func WithMethods(methods ...*model.GeneratedMethod) ClassOption {
	return func(c *OutputClass) { c.methods = append(c.methods, methods...) }
}

// WithCopyConstructors generates both the copy and the move constructor.
func WithCopyConstructors() ClassOption {
	return func(c *OutputClass) { c.copyConstructors = true }
}

// WithCopyOperators generates both the copy and the move assignment.
func WithCopyOperators() ClassOption {
	return func(c *OutputClass) { c.copyOperators = true }
}

// WithoutExport keeps the export macro off this class.
func WithoutExport() ClassOption {
	return func(c *OutputClass) { c.noExport = true }
}

func WithBase(baseClass, constructorArgs string) ClassOption {
	return func(c *OutputClass) {
		c.baseClass = baseClass
		c.baseConstructor = constructorArgs
	}
}

func NewOutputClass(name string, opts ...ClassOption) (*OutputClass, error) {
	if name == "" {
		return nil, errors.Wrap(model.ErrConfiguration, "class name is required")
	}

	c := &OutputClass{name: name}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *OutputClass) validate() error {
	for i, m := range c.members {
		if m == nil {
			return errors.Wrapf(model.ErrConfiguration, "%s: member %d is not a variable", c.name, i)
		}
	}
	for i, ctor := range c.constructors {
		if ctor == nil {
			return errors.Wrapf(model.ErrConfiguration, "%s: constructor %d is nil", c.name, i)
		}
		if _, ok := ctor.BaseParameters(); ok && c.baseClass == "" {
			return errors.Wrapf(model.ErrConfiguration, "%s: constructor %d passes base parameters without a base class", c.name, i)
		}
	}
	for i, m := range c.methods {
		if m == nil || m.Name == "" {
			return errors.Wrapf(model.ErrConfiguration, "%s: method %d has no name", c.name, i)
		}
	}
	return nil
}

func (c *OutputClass) Name() string { return c.name }

func (c *OutputClass) BaseClass() string { return c.baseClass }

func (c *OutputClass) BaseConstructorArgs() string { return c.baseConstructor }

func (c *OutputClass) Members() []*model.Variable { return c.members }

// Base sets the public base class.
func (c *OutputClass) Base(baseClass string) { c.baseClass = baseClass }

// BaseConstructor sets the arguments passed to the base class constructor.
func (c *OutputClass) BaseConstructor(args string) { c.baseConstructor = args }

// AddMember appends a member. Anything but a variable is a configuration error.
func (c *OutputClass) AddMember(v *model.Variable) error {
	if v == nil {
		return errors.Wrapf(model.ErrConfiguration, "%s: addMember needs a variable", c.name)
	}
	c.members = append(c.members, v)
	return nil
}

// ConstructorMember adds a leading raw argument to the member constructor.
func (c *OutputClass) ConstructorMember(definition string) {
	c.cArgs = append(c.cArgs, definition)
}

// SetExport sets the export macro stamped on every declaration.
func (c *OutputClass) SetExport(macro string) { c.exportMacro = macro }

// Export returns the macro to stamp, or "" when disabled.
func (c *OutputClass) Export() string {
	if c.noExport {
		return ""
	}
	return c.exportMacro
}

// Signature starts a declaration owned by this class.
func (c *OutputClass) Signature(returnType, name, params string) emit.Signature {
	return emit.Signature{
		Export: c.Export(),
		Return: returnType,
		Owner:  c.name,
		Name:   name,
		Params: params,
	}
}

func (c *OutputClass) Emit(w *emit.Writer, pass emit.Pass) error {
	return c.EmitWith(w, pass, c)
}

// EmitWith lays out the class and delegates the replaceable sections to body.
func (c *OutputClass) EmitWith(w *emit.Writer, pass emit.Pass, body Body) error {
	if pass.IsHeader() {
		if c.baseClass != "" {
			w.Line("class " + c.name + " : public " + c.baseClass + " {")
		} else {
			w.Line("class " + c.name + " {")
		}
		w.Line("public:")
	}

	if err := body.EmitConstructors(w, pass); err != nil {
		return err
	}

	if c.copyConstructors {
		c.emitCopyConstructors(w, pass)
		w.Blank()
	}
	if c.copyOperators {
		c.emitCopyOperators(w, pass)
		w.Blank()
	}

	if err := body.EmitMethods(w, pass); err != nil {
		return err
	}
	w.Blank()

	c.emitMethodList(w, pass)

	if pass.IsHeader() {
		if err := body.EmitMembers(w, pass); err != nil {
			return err
		}
		w.Blank()
		w.Line("};")
		w.Blank()
	}
	return nil
}

// EmitConstructors writes the member constructor followed by every extra
// constructor.
func (c *OutputClass) EmitConstructors(w *emit.Writer, pass emit.Pass) error {
	if len(c.members) > 0 {
		c.emitMemberConstructor(w, pass)
	}
	c.emitExtraConstructors(w, pass)
	return nil
}

func (c *OutputClass) EmitMethods(w *emit.Writer, _ emit.Pass) error {
	w.Blank()
	return nil
}

func (c *OutputClass) EmitMembers(w *emit.Writer, _ emit.Pass) error {
	for _, m := range c.members {
		w.Line(m.FormatDefinition())
	}
	return nil
}

func (c *OutputClass) memberParams(pass emit.Pass) string {
	parts := append([]string(nil), c.cArgs...)
	for _, m := range c.members {
		parts = append(parts, m.FormatForParams(pass))
	}
	return strings.Join(parts, ", ")
}

func (c *OutputClass) emitMemberConstructor(w *emit.Writer, pass emit.Pass) {
	w.Declare(pass, c.Signature("", c.name, c.memberParams(pass)))

	if pass.IsHeader() {
		w.Line(";")
		return
	}

	w.Line(" :")
	if c.baseClass != "" && c.baseConstructor != "" {
		w.Line(c.baseClass + "(" + c.baseConstructor + "),")
	}

	initializers := make([]string, len(c.members))
	for i, m := range c.members {
		initializers[i] = m.FormatInitializer()
	}
	w.Line(strings.Join(initializers, ", "))
	w.Line("{}")
}

func (c *OutputClass) emitExtraConstructors(w *emit.Writer, pass emit.Pass) {
	if len(c.constructors) == 0 {
		return
	}

	w.Line("// Extra constructors")
	for _, ctor := range c.constructors {
		w.Declare(pass, c.Signature("", c.name, ctor.FormatParameters(pass, false)))

		if pass.IsHeader() {
			w.Line(";")
			continue
		}

		base, ok := ctor.BaseParameters()
		if !ok {
			base = c.baseConstructor
		}

		var clauses []string
		if c.baseClass != "" && base != "" {
			clauses = append(clauses, c.baseClass+"("+base+")")
		}
		if inits := ctor.FormatMemberInitializers(); inits != "" {
			clauses = append(clauses, inits)
		}

		if len(clauses) > 0 {
			w.Line(" : " + strings.Join(clauses, ",\n"))
		} else {
			w.Blank()
		}
		w.Line("{")
		w.Line("}")
	}
}

func (c *OutputClass) emitCopyConstructors(w *emit.Writer, pass emit.Pass) {
	copies := make([]string, 0, len(c.members)+1)
	moves := make([]string, 0, len(c.members)+1)
	if c.baseClass != "" {
		copies = append(copies, c.baseClass+"(other)")
		moves = append(moves, c.baseClass+"(std::move(other))")
	}
	for _, m := range c.members {
		copies = append(copies, m.FormatCopy())
		moves = append(moves, m.FormatMove())
	}

	emitOne := func(params string, initializers []string) {
		sig := c.Signature("", c.name, params)
		sig.Noexcept = true
		w.Declare(pass, sig)

		if pass.IsHeader() {
			w.Line(";")
			return
		}
		if len(initializers) > 0 {
			w.Line(" :")
			w.Line(strings.Join(initializers, ", "))
		} else {
			w.Blank()
		}
		w.Line("{}")
	}

	emitOne("const "+c.name+"& other", copies)
	emitOne(c.name+"&& other", moves)
}

func (c *OutputClass) emitCopyOperators(w *emit.Writer, pass emit.Pass) {
	emitOne := func(params string, move bool) {
		sig := c.Signature(c.name+"&", "operator=", params)
		sig.Noexcept = true

		w.Method(pass, sig, func() {
			if c.baseClass != "" {
				if move {
					w.Line(c.baseClass + "::operator=(std::move(other));")
				} else {
					w.Line(c.baseClass + "::operator=(other);")
				}
			}
			for _, m := range c.members {
				if move {
					w.Line(m.Name() + " = std::move(other." + m.Name() + ");")
				} else {
					w.Line(m.Name() + " = other." + m.Name() + ";")
				}
			}
			w.Line("return *this;")
		})
	}

	emitOne("const "+c.name+"& other", false)
	emitOne(c.name+"&& other", true)
}

func (c *OutputClass) emitMethodList(w *emit.Writer, pass emit.Pass) {
	if len(c.methods) == 0 {
		return
	}

	for _, m := range c.methods {
		w.Method(pass, c.Signature(m.ReturnType, m.Name, m.FormatParameters(pass)), func() {
			if m.Body != "" {
				w.Line(m.Body)
			}
		})
	}
	w.Blank()
}
