package model

import "strings"

// Phase selects the per-frame phase a system runs in and its ordering group.
// Lower groups run first.
type Phase struct {
	Group      int
	Parameters []string
}

// FormatParameters renders the extra Run arguments with a leading comma.
func (p *Phase) FormatParameters() string {
	if p == nil || len(p.Parameters) == 0 {
		return ""
	}
	return ", " + strings.Join(p.Parameters, ", ")
}

// EntitySystem describes one ECS system owned by a world.
type EntitySystem struct {
	ident            Identifier
	nodeComponents   []string
	runTick          *Phase
	runRender        *Phase
	init             []*Variable
	release          []*Variable
	noState          bool
	visibleToScripts bool
}

type SystemOption func(*EntitySystem)

// RunTick schedules the system in the tick phase.
func RunTick(group int, parameters ...string) SystemOption {
	return func(s *EntitySystem) {
		s.runTick = &Phase{Group: group, Parameters: parameters}
	}
}

// RunRender schedules the system in the frame render phase.
func RunRender(group int, parameters ...string) SystemOption {
	return func(s *EntitySystem) {
		s.runRender = &Phase{Group: group, Parameters: parameters}
	}
}

// WithInit calls Init on the system with the given arguments. No arguments
// still calls Init().
func WithInit(args ...*Variable) SystemOption {
	return func(s *EntitySystem) { s.init = append([]*Variable{}, args...) }
}

// WithSystemRelease calls Release on the system with the given arguments.
func WithSystemRelease(args ...*Variable) SystemOption {
	return func(s *EntitySystem) { s.release = append([]*Variable{}, args...) }
}

// NoState keeps the system's node cache from being cleared on reset.
func NoState() SystemOption {
	return func(s *EntitySystem) { s.noState = true }
}

// VisibleToScripts registers a getter for the system with the script engine.
func VisibleToScripts() SystemOption {
	return func(s *EntitySystem) { s.visibleToScripts = true }
}

// NewEntitySystem builds a system description. Leave nodeComponents empty for
// systems that don't hold combined nodes.
func NewEntitySystem(typ string, nodeComponents []string, opts ...SystemOption) (*EntitySystem, error) {
	ident := NewIdentifier(typ)
	if ident.Sanitized() == "" {
		return nil, errorf(ErrConfiguration, "system type %q has no usable name", typ)
	}

	s := &EntitySystem{
		ident:          ident,
		nodeComponents: append([]string(nil), nodeComponents...),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, arg := range append(append([]*Variable(nil), s.init...), s.release...) {
		if arg == nil {
			return nil, errorf(ErrConfiguration, "system %s: lifecycle argument is not a variable", typ)
		}
	}
	return s, nil
}

func MustEntitySystem(typ string, nodeComponents []string, opts ...SystemOption) *EntitySystem {
	s, err := NewEntitySystem(typ, nodeComponents, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Type is the system type as written, possibly a template instantiation.
func (s *EntitySystem) Type() string { return s.ident.Field() }

// Name is the sanitized type used as a member and method suffix.
func (s *EntitySystem) Name() string { return s.ident.Sanitized() }

// MemberName is the world member holding the system, "_<Name>".
func (s *EntitySystem) MemberName() string { return "_" + s.ident.Sanitized() }

func (s *EntitySystem) NodeComponents() []string { return s.nodeComponents }

func (s *EntitySystem) UsesNodes() bool { return len(s.nodeComponents) > 0 }

func (s *EntitySystem) Tick() *Phase { return s.runTick }

func (s *EntitySystem) Render() *Phase { return s.runRender }

func (s *EntitySystem) Init() ([]*Variable, bool) { return s.init, s.init != nil }

func (s *EntitySystem) Release() ([]*Variable, bool) { return s.release, s.release != nil }

// ClearsNodes reports whether the node cache is reset with the world.
func (s *EntitySystem) ClearsNodes() bool { return s.UsesNodes() && !s.noState }

func (s *EntitySystem) IsVisibleToScripts() bool { return s.visibleToScripts }

// FormatArguments renders lifecycle arguments for a call.
func FormatArguments(args []*Variable) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.FormatForArgumentList()
	}
	return strings.Join(parts, ", ")
}
