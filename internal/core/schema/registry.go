package schema

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/leviathan-engine/filegen/internal/core/generator"
	"github.com/leviathan-engine/filegen/internal/core/model"
)

var ErrUnknownTarget = errors.New("unknown target")

// Contents is what a target generates. Bindings go into a separate bare file
// and are dropped when no path is given for them.
type Contents struct {
	Objects  []generator.Object
	Bindings []generator.Object
}

// Target attaches output configuration to the contents.
func (c Contents) Target(name string, config generator.Config, bindings string) (Target, error) {
	if len(c.Objects) == 0 {
		return Target{}, errors.Wrapf(generator.ErrNothingToGenerate, "%s", name)
	}

	t := Target{Name: name, Jobs: []Job{{Config: config, Objects: c.Objects}}}
	if bindings == "" {
		return t, nil
	}
	if len(c.Bindings) == 0 {
		return Target{}, errors.Wrapf(model.ErrConfiguration, "%s has no bindings", name)
	}

	t.Jobs = append(t.Jobs, Job{
		Config:  generator.Config{Output: bindings, Bare: true, ExportMacro: config.ExportMacro},
		Objects: c.Bindings,
	})
	return t, nil
}

// Factory builds fresh contents. Objects are single use so every lookup calls
// the factory again.
type Factory func() (Contents, error)

// Builtin is a registered target with its default output settings.
type Builtin struct {
	Name        string
	Description string
	Config      generator.Config
	Factory     Factory
}

type Registry struct {
	mu       sync.RWMutex
	builtins map[string]Builtin
}

func NewRegistry() *Registry {
	return &Registry{builtins: make(map[string]Builtin)}
}

func (r *Registry) Register(b Builtin) error {
	if b.Name == "" || b.Factory == nil {
		return errors.Wrap(model.ErrConfiguration, "builtin needs a name and a factory")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.builtins[b.Name]; ok {
		return errors.Wrapf(model.ErrConfiguration, "builtin %q is already registered", b.Name)
	}
	r.builtins[b.Name] = b
	return nil
}

func (r *Registry) Lookup(name string) (Builtin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.builtins[name]
	if !ok {
		return Builtin{}, errors.Wrapf(ErrUnknownTarget, "%q", name)
	}
	return b, nil
}

// Contents builds a fresh copy of the named builtin.
func (r *Registry) Contents(name string) (Contents, error) {
	b, err := r.Lookup(name)
	if err != nil {
		return Contents{}, err
	}
	return b.Factory()
}

// Names lists every registered builtin, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.builtins))
	for name := range r.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Target builds the named builtin into its default output, or into output
// and bindings when given.
func (r *Registry) Target(name, output, bindings string) (Target, error) {
	b, err := r.Lookup(name)
	if err != nil {
		return Target{}, err
	}

	config := b.Config
	if output != "" {
		config.Output = output
	}
	if err = config.Validate(); err != nil {
		return Target{}, errors.WithMessage(err, name)
	}

	contents, err := b.Factory()
	if err != nil {
		return Target{}, errors.WithMessage(err, name)
	}
	return contents.Target(name, config, bindings)
}
