package schema

import (
	"github.com/pkg/errors"

	"github.com/leviathan-engine/filegen/internal/core/classes"
	"github.com/leviathan-engine/filegen/internal/core/generator"
	"github.com/leviathan-engine/filegen/internal/core/model"
	"github.com/leviathan-engine/filegen/internal/core/world"
)

// Job is one generator run.
type Job struct {
	Config  generator.Config
	Objects []generator.Object
}

// Target is a built manifest entry. A world target with bindings has two jobs.
type Target struct {
	Name string
	Jobs []Job
}

// Build turns every target into jobs. Builtin targets are looked up in reg.
func (m *Manifest) Build(reg *Registry) ([]Target, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	targets := make([]Target, 0, len(m.Targets))
	for i := range m.Targets {
		t, err := m.Targets[i].Build(reg)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

func (t *TargetSpec) Build(reg *Registry) (Target, error) {
	var (
		contents Contents
		err      error
	)

	switch {
	case t.Builtin != "":
		if reg == nil {
			return Target{}, errors.Wrapf(ErrUnknownTarget, "%s: no registry for builtin %q", t.Name, t.Builtin)
		}
		contents, err = reg.Contents(t.Builtin)
	case t.World != nil:
		var g *world.GameWorldClass
		if g, err = t.World.Build(); err == nil {
			contents = Contents{Objects: []generator.Object{g}, Bindings: []generator.Object{g.Bindings()}}
		}
	default:
		contents.Objects, err = buildClasses(t.Classes)
	}
	if err != nil {
		return Target{}, errors.WithMessage(err, t.Name)
	}

	return contents.Target(t.Name, t.Config, t.Bindings)
}

func buildClasses(specs []*ClassSpec) ([]generator.Object, error) {
	out := make([]generator.Object, 0, len(specs))
	for _, spec := range specs {
		obj, err := spec.Build()
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, nil
}

func (v *VariableSpec) Build() (*model.Variable, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}

	var opts []model.VariableOption
	if v.Default != nil {
		opts = append(opts, model.WithDefault(*v.Default))
	}
	if v.NoRef {
		opts = append(opts, model.NoRef())
	}
	if v.NoConst {
		opts = append(opts, model.NoConst())
	}
	if v.Move {
		opts = append(opts, model.Move())
	}
	if v.NonMethodParam {
		opts = append(opts, model.NonMethodParam())
	}
	if v.NonSerializeParam {
		opts = append(opts, model.NonSerializeParam())
	}
	if v.SerializeAs != "" {
		opts = append(opts, model.SerializeAs(v.SerializeAs))
	}
	if v.MemberAccess != "" {
		opts = append(opts, model.MemberAccess(v.MemberAccess))
	}
	if v.ScriptRef != "" {
		opts = append(opts, model.ScriptRef(v.ScriptRef))
	}
	return model.NewVariable(v.Name, v.Type, opts...), nil
}

func buildVariables(specs []VariableSpec) ([]*model.Variable, error) {
	out := make([]*model.Variable, 0, len(specs))
	for i := range specs {
		v, err := specs[i].Build()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *ConstructorSpec) Build() (*model.ConstructorInfo, error) {
	params, err := buildVariables(c.Parameters.Items)
	if err != nil {
		return nil, err
	}

	var opts []model.ConstructorOption
	if c.UseDataStruct {
		opts = append(opts, model.UseDataStruct())
	}
	if c.BaseParameters != nil {
		opts = append(opts, model.BaseParameters(*c.BaseParameters))
	}
	if c.NoScript {
		opts = append(opts, model.NoScript())
	}
	for _, init := range c.Initializers {
		opts = append(opts, model.WithMemberInitializers(model.MemberInitializer{
			Member:     init.Member,
			Expression: init.Expression,
		}))
	}
	return model.NewConstructorInfo(params, opts...)
}

func buildConstructors(specs []*ConstructorSpec) ([]*model.ConstructorInfo, error) {
	out := make([]*model.ConstructorInfo, 0, len(specs))
	for i, spec := range specs {
		if spec == nil {
			return nil, errors.Wrapf(model.ErrConfiguration, "constructor %d is empty", i)
		}
		ctor, err := spec.Build()
		if err != nil {
			return nil, errors.WithMessagef(err, "constructor %d", i)
		}
		out = append(out, ctor)
	}
	return out, nil
}

func (c *ComponentSpec) Build() (*model.EntityComponent, error) {
	ctors, err := buildConstructors(c.Constructors)
	if err != nil {
		return nil, errors.WithMessage(err, c.Type)
	}

	var opts []model.ComponentOption
	if c.State {
		opts = append(opts, model.WithState())
	}
	if c.Release.Set {
		opts = append(opts, model.WithRelease(c.Release.Items...))
	}
	if c.NoSync {
		opts = append(opts, model.NoSynchronize())
	}
	return model.NewEntityComponent(c.Type, ctors, opts...)
}

func (s *SystemSpec) Build() (*model.EntitySystem, error) {
	var opts []model.SystemOption
	if s.Tick != nil {
		opts = append(opts, model.RunTick(s.Tick.Group, s.Tick.Parameters.Items...))
	}
	if s.Render != nil {
		opts = append(opts, model.RunRender(s.Render.Group, s.Render.Parameters.Items...))
	}
	if s.Init.Set {
		args, err := buildVariables(s.Init.Items)
		if err != nil {
			return nil, errors.WithMessagef(err, "%s init", s.Type)
		}
		opts = append(opts, model.WithInit(args...))
	}
	if s.Release.Set {
		args, err := buildVariables(s.Release.Items)
		if err != nil {
			return nil, errors.WithMessagef(err, "%s release", s.Type)
		}
		opts = append(opts, model.WithSystemRelease(args...))
	}
	if s.NoState {
		opts = append(opts, model.NoState())
	}
	if s.Visible {
		opts = append(opts, model.VisibleToScripts())
	}
	return model.NewEntitySystem(s.Type, s.Nodes, opts...)
}

func (w *WorldSpec) Build() (*world.GameWorldClass, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	var opts []world.Option
	if w.Base != "" {
		opts = append(opts, world.WithBaseClass(w.Base))
	}
	if w.WorldType != "" {
		opts = append(opts, world.WithWorldType(w.WorldType))
	}
	if w.Networking != nil && !*w.Networking {
		opts = append(opts, world.WithoutNetworking())
	}
	if w.PreTick != "" {
		opts = append(opts, world.WithPreTickSetup(w.PreTick))
	}
	if w.FrameRun != "" {
		opts = append(opts, world.WithFrameSystemRun(w.FrameRun))
	}

	for _, spec := range w.Components {
		c, err := spec.Build()
		if err != nil {
			return nil, errors.WithMessage(err, w.Name)
		}
		opts = append(opts, world.WithComponents(c))
	}
	for _, spec := range w.Systems {
		s, err := spec.Build()
		if err != nil {
			return nil, errors.WithMessage(err, w.Name)
		}
		opts = append(opts, world.WithSystems(s))
	}
	for _, d := range w.Data {
		member, err := d.Member.Build()
		if err != nil {
			return nil, errors.WithMessage(err, w.Name)
		}
		opts = append(opts, world.WithPerWorldData(world.PerWorldData{
			Member:          member,
			ScriptType:      d.ScriptType,
			HideFromScripts: d.Hidden,
		}))
	}
	for _, ext := range w.External {
		opts = append(opts, world.WithExternalComponents(ext.Owner, ext.Types...))
	}
	for typ, r := range w.Resolvers {
		opts = append(opts, world.WithResolver(typ, world.Resolver{Component: r.Component, Property: r.Property}))
	}

	return world.NewGameWorldClass(w.Name, opts...)
}

func (m *MethodSpec) Build() (*model.GeneratedMethod, error) {
	params, err := buildVariables(m.Parameters.Items)
	if err != nil {
		return nil, errors.WithMessage(err, m.Name)
	}
	returns := m.Returns
	if returns == "" {
		returns = "void"
	}
	return model.NewGeneratedMethod(m.Name, returns, params, m.Body), nil
}

func (c *ClassSpec) Build() (generator.Object, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	opts, err := c.options()
	if err != nil {
		return nil, errors.WithMessage(err, c.Name)
	}

	switch c.Kind {
	case KindSerialize:
		s, err := classes.NewSerializeClass(c.Name, opts...)
		if err != nil {
			return nil, err
		}
		c.deserialize(s)
		return c.finish(s.OutputClass, s), nil
	case KindResponse:
		r, err := classes.NewResponseClass(c.Name, opts...)
		if err != nil {
			return nil, err
		}
		c.deserialize(r.SerializeClass)
		return c.finish(r.OutputClass, r), nil
	case KindState:
		s, err := classes.NewComponentState(c.Name, opts, classes.WithStateBits(c.StateBits...))
		if err != nil {
			return nil, err
		}
		c.deserialize(s.SerializeClass)
		return c.finish(s.OutputClass, s), nil
	default:
		o, err := classes.NewOutputClass(c.Name, opts...)
		if err != nil {
			return nil, err
		}
		return c.finish(o, o), nil
	}
}

func (c *ClassSpec) options() ([]classes.ClassOption, error) {
	members, err := buildVariables(c.Members.Items)
	if err != nil {
		return nil, err
	}
	ctors, err := buildConstructors(c.Constructors)
	if err != nil {
		return nil, err
	}

	opts := []classes.ClassOption{
		classes.WithMembers(members...),
		classes.WithConstructors(ctors...),
	}
	if c.Base != "" {
		opts = append(opts, classes.WithBase(c.Base, c.BaseArgs))
	}
	if c.Copy {
		opts = append(opts, classes.WithCopyConstructors())
	}
	if c.Operators {
		opts = append(opts, classes.WithCopyOperators())
	}
	if c.NoExport {
		opts = append(opts, classes.WithoutExport())
	}

	for _, spec := range c.Methods {
		if spec == nil {
			return nil, errors.Wrap(model.ErrConfiguration, "empty method")
		}
		m, err := spec.Build()
		if err != nil {
			return nil, err
		}
		opts = append(opts, classes.WithMethods(m))
	}
	return opts, nil
}

func (c *ClassSpec) deserialize(s *classes.SerializeClass) {
	for _, arg := range c.DeserializeArgs {
		s.AddDeserializeArg(arg)
	}
	if c.DeserializeBase != "" {
		s.DeserializeBase(c.DeserializeBase)
	}
}

func (c *ClassSpec) finish(base *classes.OutputClass, obj generator.Object) generator.Object {
	for _, arg := range c.ConstructorArgs {
		base.ConstructorMember(arg)
	}
	return obj
}
