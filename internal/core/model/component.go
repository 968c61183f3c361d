package model

// EntityComponent describes one ECS component type stored by a world.
type EntityComponent struct {
	ident         Identifier
	constructors  []*ConstructorInfo
	stateType     bool
	release       []string
	noSynchronize bool
}

type ComponentOption func(*EntityComponent)

// WithState adds a <Type>State interpolation buffer for the component.
func WithState() ComponentOption {
	return func(c *EntityComponent) { c.stateType = true }
}

// WithRelease switches destruction from a plain destroy to a release call
// with the given extra arguments. No arguments still means "release".
func WithRelease(args ...string) ComponentOption {
	return func(c *EntityComponent) {
		c.release = append([]string{}, args...)
	}
}

// NoSynchronize excludes the component from network replication.
func NoSynchronize() ComponentOption {
	return func(c *EntityComponent) { c.noSynchronize = true }
}

// NewEntityComponent builds a component description. Without constructors the
// component gets a single parameterless one.
func NewEntityComponent(typ string, constructors []*ConstructorInfo, opts ...ComponentOption) (*EntityComponent, error) {
	if typ == "" {
		return nil, errorf(ErrConfiguration, "component type name is required")
	}
	for i, c := range constructors {
		if c == nil {
			return nil, errorf(ErrConfiguration, "component %s: constructor %d is nil", typ, i)
		}
	}

	if len(constructors) == 0 {
		constructors = []*ConstructorInfo{{}}
	}

	c := &EntityComponent{
		ident:        NewIdentifier(typ),
		constructors: append([]*ConstructorInfo(nil), constructors...),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func MustEntityComponent(typ string, constructors []*ConstructorInfo, opts ...ComponentOption) *EntityComponent {
	c, err := NewEntityComponent(typ, constructors, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *EntityComponent) Type() string { return c.ident.Field() }

func (c *EntityComponent) Ident() Identifier { return c.ident }

func (c *EntityComponent) Constructors() []*ConstructorInfo { return c.constructors }

// Primary is the constructor used for network serialization.
func (c *EntityComponent) Primary() *ConstructorInfo { return c.constructors[0] }

func (c *EntityComponent) HasState() bool { return c.stateType }

// Release returns the extra release arguments and whether release is used.
func (c *EntityComponent) Release() ([]string, bool) { return c.release, c.release != nil }

func (c *EntityComponent) IsSynchronized() bool { return !c.noSynchronize }

// StorageName is the ComponentHolder member, "Component<Type>".
func (c *EntityComponent) StorageName() string { return "Component" + c.ident.Field() }

// StatesName is the StateHolder member, "<Type>States".
func (c *EntityComponent) StatesName() string { return c.ident.Field() + "States" }

// StateClass is the interpolation state class, "<Type>State".
func (c *EntityComponent) StateClass() string { return c.ident.Field() + "State" }
