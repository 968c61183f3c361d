// Package world generates derived GameWorld classes from component and system
// descriptions.
package world

import (
	"github.com/pkg/errors"

	"github.com/leviathan-engine/filegen/internal/core/classes"
	"github.com/leviathan-engine/filegen/internal/core/emit"
	"github.com/leviathan-engine/filegen/internal/core/model"
)

const (
	DefaultBaseClass = "GameWorld"
	DefaultWorldType = "-1 /* unset, won't work over the network */"
)

// PerWorldData is an object owned by the world, constructed with a reference
// to it and cleared with it.
type PerWorldData struct {
	Member *model.Variable
	// ScriptType replaces the "<Type>@" handle exposed to scripts.
	ScriptType string
	// HideFromScripts skips the script getter registration.
	HideFromScripts bool
}

// GameWorldClass is a world with its own component storage, systems and
// dispatch tables. The member list is synthesized from the descriptions.
type GameWorldClass struct {
	*classes.OutputClass

	components     []*model.EntityComponent
	systems        []*model.EntitySystem
	perWorldData   []PerWorldData
	preTickSetup   string
	frameSystemRun string
	networking     bool
	worldType      string

	ancestors []Table
	resolvers Resolvers

	local       Table
	hasSendable bool
	hasReceived bool
}

var _ classes.Body = (*GameWorldClass)(nil)

type Option func(*GameWorldClass)

func WithComponents(components ...*model.EntityComponent) Option {
	return func(g *GameWorldClass) { g.components = append(g.components, components...) }
}

func WithSystems(systems ...*model.EntitySystem) Option {
	return func(g *GameWorldClass) { g.systems = append(g.systems, systems...) }
}

// WithPreTickSetup inserts text before the tick systems run.
func WithPreTickSetup(text string) Option {
	return func(g *GameWorldClass) { g.preTickSetup = text }
}

// WithFrameSystemRun inserts text before the render systems run.
func WithFrameSystemRun(text string) Option {
	return func(g *GameWorldClass) { g.frameSystemRun = text }
}

// WithoutNetworking drops state capture and every replication decoder.
func WithoutNetworking() Option {
	return func(g *GameWorldClass) { g.networking = false }
}

func WithPerWorldData(data ...PerWorldData) Option {
	return func(g *GameWorldClass) { g.perWorldData = append(g.perWorldData, data...) }
}

// WithWorldType sets the type discriminant passed to the base constructor.
func WithWorldType(worldType string) Option {
	return func(g *GameWorldClass) { g.worldType = worldType }
}

// WithBaseClass derives from another world class.
func WithBaseClass(base string) Option {
	return func(g *GameWorldClass) { g.Base(base) }
}

// WithParent derives from a generated world. Its component table and those of
// its own ancestors become visible to node component lookups.
func WithParent(parent *GameWorldClass) Option {
	return func(g *GameWorldClass) {
		g.Base(parent.Name())
		g.ancestors = append(g.ancestors, parent.Tables()...)
	}
}

// WithExternalComponents declares component types stored by a base class that
// isn't generated here.
func WithExternalComponents(owner string, types ...string) Option {
	return func(g *GameWorldClass) {
		g.ancestors = append(g.ancestors, NewTable(owner, types...))
	}
}

// WithResolver registers how a non-serialized constructor parameter of the
// given type is recovered from other components of the same entity.
func WithResolver(typ string, r Resolver) Option {
	return func(g *GameWorldClass) { g.resolvers[typ] = r }
}

func NewGameWorldClass(name string, opts ...Option) (*GameWorldClass, error) {
	base, err := classes.NewOutputClass(name, classes.WithBase(DefaultBaseClass, ""))
	if err != nil {
		return nil, err
	}

	g := &GameWorldClass{
		OutputClass: base,
		networking:  true,
		worldType:   DefaultWorldType,
		resolvers:   DefaultResolvers(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if err = g.build(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *GameWorldClass) build() error {
	names := make([]string, 0, len(g.components))
	seen := make(map[string]struct{}, len(g.components))

	for i, c := range g.components {
		if c == nil {
			return errors.Wrapf(model.ErrConfiguration, "%s: component %d is nil", g.Name(), i)
		}
		if _, dup := seen[c.Type()]; dup {
			return errors.Wrapf(model.ErrConfiguration, "%s: component %s declared twice", g.Name(), c.Type())
		}
		seen[c.Type()] = struct{}{}
		names = append(names, c.Type())

		members := []*model.Variable{
			model.NewVariable(c.StorageName(), "Leviathan::ComponentHolder<"+c.Type()+">"),
		}
		if c.HasState() {
			members = append(members,
				model.NewVariable(c.StatesName(), "Leviathan::StateHolder<"+c.StateClass()+">"))
		}
		for _, m := range members {
			if err := g.AddMember(m); err != nil {
				return err
			}
		}

		switch c.Type() {
		case "Sendable":
			g.hasSendable = true
		case "Received":
			g.hasReceived = true
		}
	}
	g.local = NewTable(g.Name(), names...)

	for i, s := range g.systems {
		if s == nil {
			return errors.Wrapf(model.ErrConfiguration, "%s: system %d is nil", g.Name(), i)
		}
		if err := g.AddMember(model.NewVariable(s.MemberName(), s.Type())); err != nil {
			return err
		}
		for _, name := range s.NodeComponents() {
			if _, ok := g.Lookup(name); !ok {
				return errors.Wrapf(model.ErrUnresolvedComponent, "%s: system %s uses %s", g.Name(), s.Type(), name)
			}
		}
	}

	for i, d := range g.perWorldData {
		if d.Member == nil {
			return errors.Wrapf(model.ErrConfiguration, "%s: per world data %d has no member", g.Name(), i)
		}
		if err := g.AddMember(d.Member); err != nil {
			return err
		}
	}

	if len(g.Members()) == 0 {
		return g.AddMember(model.NewVariable("dummy", "int"))
	}
	return nil
}

func (g *GameWorldClass) Components() []*model.EntityComponent { return g.components }

func (g *GameWorldClass) Systems() []*model.EntitySystem { return g.systems }

// Tables returns this world's component table followed by its ancestors'.
func (g *GameWorldClass) Tables() []Table {
	return append([]Table{g.local}, g.ancestors...)
}

// Lookup finds the table owning a component type.
func (g *GameWorldClass) Lookup(component string) (Table, bool) {
	for _, t := range g.Tables() {
		if t.Has(component) {
			return t, true
		}
	}
	return Table{}, false
}

// ExtraIncludes lists headers the generated implementation needs.
func (g *GameWorldClass) ExtraIncludes() []string {
	return []string{"Script/ScriptConversionHelpers.h", "boost/range/adaptor/map.hpp"}
}

func (g *GameWorldClass) Emit(w *emit.Writer, pass emit.Pass) error {
	return g.EmitWith(w, pass, g)
}

func (g *GameWorldClass) override(returnType, name, params string) emit.Signature {
	sig := g.Signature(returnType, name, params)
	sig.Override = true
	return sig
}

const physicsParams = "const std::shared_ptr<Leviathan::PhysicsMaterialManager>& physicsMaterials, int worldid"

func (g *GameWorldClass) EmitConstructors(w *emit.Writer, pass emit.Pass) error {
	emitOne := func(params, baseArgs string) {
		w.Declare(pass, g.Signature("", g.Name(), params+pass.Default("-1")))
		if pass.IsHeader() {
			w.Line(";")
			return
		}

		w.Line(" : " + g.BaseClass() + "(" + baseArgs + ") ")
		for _, d := range g.perWorldData {
			w.Line(", " + d.Member.Name() + "(*this)")
		}
		w.Line("{}")
	}

	emitOne(physicsParams, g.worldType+",\n physicsMaterials, worldid")
	emitOne("int32_t typeoverride, "+physicsParams, "typeoverride, physicsMaterials, worldid")
	return nil
}

func (g *GameWorldClass) EmitMembers(w *emit.Writer, pass emit.Pass) error {
	w.Line("protected:")
	return g.OutputClass.EmitMembers(w, pass)
}

func (g *GameWorldClass) EmitMethods(w *emit.Writer, pass emit.Pass) error {
	g.emitReset(w, pass)
	g.emitComponentAccessors(w, pass)
	g.emitDestroyAllIn(w, pass)
	g.emitDispatchTables(w, pass)
	g.emitGetters(w, pass)
	g.emitStatesDispatch(w, pass)

	if g.networking {
		g.emitStateCapture(w, pass)
	}

	g.emitRenderSystems(w, pass)

	if pass.IsHeader() {
		w.Line("REFERENCE_HANDLE_UNCOUNTED_TYPE(" + g.Name() + ");")
		w.Blank()
		w.Line("protected:")
	}

	g.emitTickSystems(w, pass)
	g.emitAddedAndDeleted(w, pass)
	g.emitClearAddedAndRemoved(w, pass)
	g.emitSystemLifecycle(w, pass)
	g.emitNetworkCreators(w, pass)

	if g.networking {
		return g.emitDecoders(w, pass)
	}
	return nil
}
