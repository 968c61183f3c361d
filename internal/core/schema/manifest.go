// Package schema loads generation manifests and turns their descriptions into
// emittable objects.
package schema

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/leviathan-engine/filegen/internal/core/generator"
	"github.com/leviathan-engine/filegen/internal/core/model"
)

// Manifest is a list of independent generation targets.
type Manifest struct {
	Targets []TargetSpec `json:"targets" yaml:"targets"`
}

// TargetSpec is one output file (or header and implementation pair) and what
// goes into it: a world, a list of classes or a registered builtin.
type TargetSpec struct {
	Name             string `json:"name" yaml:"name"`
	generator.Config `json:",inline" yaml:",inline"`

	// Bindings is the path of the bare script registration fragment of World.
	Bindings string `json:"bindings,omitempty" yaml:"bindings,omitempty"`

	Builtin string       `json:"builtin,omitempty" yaml:"builtin,omitempty"`
	World   *WorldSpec   `json:"world,omitempty" yaml:"world,omitempty"`
	Classes []*ClassSpec `json:"classes,omitempty" yaml:"classes,omitempty"`
}

type VariableSpec struct {
	Name    string  `json:"name" yaml:"name"`
	Type    string  `json:"type" yaml:"type"`
	Default *string `json:"default,omitempty" yaml:"default,omitempty"`

	NoRef             bool `json:"noref,omitempty" yaml:"noref,omitempty"`
	NoConst           bool `json:"noconst,omitempty" yaml:"noconst,omitempty"`
	Move              bool `json:"move,omitempty" yaml:"move,omitempty"`
	NonMethodParam    bool `json:"nonmethodparam,omitempty" yaml:"nonmethodparam,omitempty"`
	NonSerializeParam bool `json:"nonserializeparam,omitempty" yaml:"nonserializeparam,omitempty"`

	SerializeAs  string `json:"serialize_as,omitempty" yaml:"serialize_as,omitempty"`
	MemberAccess string `json:"member_access,omitempty" yaml:"member_access,omitempty"`
	ScriptRef    string `json:"script_ref,omitempty" yaml:"script_ref,omitempty"`
}

type InitializerSpec struct {
	Member     string `json:"member" yaml:"member"`
	Expression string `json:"expression" yaml:"expression"`
}

type ConstructorSpec struct {
	Parameters     List[VariableSpec] `json:"parameters" yaml:"parameters"`
	UseDataStruct  bool               `json:"use_data_struct,omitempty" yaml:"use_data_struct,omitempty"`
	BaseParameters *string            `json:"base_parameters,omitempty" yaml:"base_parameters,omitempty"`
	Initializers   []InitializerSpec  `json:"initializers,omitempty" yaml:"initializers,omitempty"`
	NoScript       bool               `json:"noscript,omitempty" yaml:"noscript,omitempty"`
}

type ComponentSpec struct {
	Type         string             `json:"type" yaml:"type"`
	Constructors []*ConstructorSpec `json:"constructors,omitempty" yaml:"constructors,omitempty"`
	State        bool               `json:"state,omitempty" yaml:"state,omitempty"`
	Release      List[string]       `json:"release" yaml:"release"`
	NoSync       bool               `json:"nosync,omitempty" yaml:"nosync,omitempty"`
}

type PhaseSpec struct {
	Group      int          `json:"group" yaml:"group"`
	Parameters List[string] `json:"parameters" yaml:"parameters"`
}

type SystemSpec struct {
	Type    string             `json:"type" yaml:"type"`
	Nodes   []string           `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	Tick    *PhaseSpec         `json:"tick,omitempty" yaml:"tick,omitempty"`
	Render  *PhaseSpec         `json:"render,omitempty" yaml:"render,omitempty"`
	Init    List[VariableSpec] `json:"init" yaml:"init"`
	Release List[VariableSpec] `json:"release" yaml:"release"`
	NoState bool               `json:"nostate,omitempty" yaml:"nostate,omitempty"`
	Visible bool               `json:"visible,omitempty" yaml:"visible,omitempty"`
}

type PerWorldDataSpec struct {
	Member     VariableSpec `json:"member" yaml:"member"`
	ScriptType string       `json:"script_type,omitempty" yaml:"script_type,omitempty"`
	Hidden     bool         `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}

// ExternalSpec declares components stored by a base world that isn't part of
// the manifest.
type ExternalSpec struct {
	Owner string   `json:"owner" yaml:"owner"`
	Types []string `json:"types" yaml:"types"`
}

type ResolverSpec struct {
	Component string `json:"component" yaml:"component"`
	Property  string `json:"property,omitempty" yaml:"property,omitempty"`
}

type WorldSpec struct {
	Name       string             `json:"name" yaml:"name"`
	Base       string             `json:"base,omitempty" yaml:"base,omitempty"`
	WorldType  string             `json:"world_type,omitempty" yaml:"world_type,omitempty"`
	Networking *bool              `json:"networking,omitempty" yaml:"networking,omitempty"`
	PreTick    string             `json:"pre_tick,omitempty" yaml:"pre_tick,omitempty"`
	FrameRun   string             `json:"frame_run,omitempty" yaml:"frame_run,omitempty"`
	Components []*ComponentSpec   `json:"components" yaml:"components"`
	Systems    []*SystemSpec      `json:"systems,omitempty" yaml:"systems,omitempty"`
	Data       []PerWorldDataSpec `json:"per_world_data,omitempty" yaml:"per_world_data,omitempty"`
	External   []ExternalSpec     `json:"external,omitempty" yaml:"external,omitempty"`

	Resolvers map[string]ResolverSpec `json:"resolvers,omitempty" yaml:"resolvers,omitempty"`
}

type MethodSpec struct {
	Name       string             `json:"name" yaml:"name"`
	Returns    string             `json:"returns,omitempty" yaml:"returns,omitempty"`
	Parameters List[VariableSpec] `json:"parameters" yaml:"parameters"`
	Body       string             `json:"body,omitempty" yaml:"body,omitempty"`
}

// Class kinds.
const (
	KindPlain     = "plain"
	KindSerialize = "serialize"
	KindResponse  = "response"
	KindState     = "state"
)

type ClassSpec struct {
	Kind     string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Name     string `json:"name" yaml:"name"`
	Base     string `json:"base,omitempty" yaml:"base,omitempty"`
	BaseArgs string `json:"base_args,omitempty" yaml:"base_args,omitempty"`

	Members         List[VariableSpec] `json:"members" yaml:"members"`
	ConstructorArgs []string           `json:"constructor_args,omitempty" yaml:"constructor_args,omitempty"`
	Constructors    []*ConstructorSpec `json:"constructors,omitempty" yaml:"constructors,omitempty"`
	Methods         []*MethodSpec      `json:"methods,omitempty" yaml:"methods,omitempty"`

	Copy      bool `json:"copy,omitempty" yaml:"copy,omitempty"`
	Operators bool `json:"operators,omitempty" yaml:"operators,omitempty"`
	NoExport  bool `json:"noexport,omitempty" yaml:"noexport,omitempty"`

	DeserializeArgs []string `json:"deserialize_args,omitempty" yaml:"deserialize_args,omitempty"`
	DeserializeBase string   `json:"deserialize_base,omitempty" yaml:"deserialize_base,omitempty"`
	StateBits       []string `json:"state_bits,omitempty" yaml:"state_bits,omitempty"`
}

// LoadYAML decodes a manifest. Unknown keys are an error.
func LoadYAML(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, errors.WithMessage(err, "decoding yaml manifest")
	}
	return &m, nil
}

func LoadJSON(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, errors.WithMessage(err, "decoding json manifest")
	}
	return &m, nil
}

// LoadFile picks the decoder from the extension. Anything that isn't .json is
// read as YAML.
func LoadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening manifest")
	}
	defer func() { _ = f.Close() }()

	var m *Manifest
	if strings.EqualFold(filepath.Ext(path), ".json") {
		m, err = LoadJSON(f)
	} else {
		m, err = LoadYAML(f)
	}
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return m, nil
}

func (m *Manifest) Validate() error {
	if len(m.Targets) == 0 {
		return errors.Wrap(model.ErrConfiguration, "manifest has no targets")
	}

	names := make(map[string]struct{}, len(m.Targets))
	outputs := make(map[string]string)
	for i := range m.Targets {
		t := &m.Targets[i]
		if err := t.Validate(); err != nil {
			return errors.WithMessagef(err, "target %d", i)
		}
		if _, dup := names[t.Name]; dup {
			return errors.Wrapf(model.ErrConfiguration, "target %q is defined twice", t.Name)
		}
		names[t.Name] = struct{}{}

		for _, path := range t.paths() {
			clean := filepath.Clean(path)
			if other, dup := outputs[clean]; dup {
				return errors.Wrapf(model.ErrConfiguration, "targets %q and %q both write %s", other, t.Name, path)
			}
			outputs[clean] = t.Name
		}
	}
	return nil
}

func (t *TargetSpec) paths() []string {
	out := []string{t.HeaderPath()}
	if t.Separate {
		out = append(out, t.ImplementationPath())
	}
	if t.Bindings != "" {
		out = append(out, t.Bindings)
	}
	return out
}

func (t *TargetSpec) Validate() error {
	if t.Name == "" {
		return errors.Wrap(model.ErrConfiguration, "target name is required")
	}
	if err := t.Config.Validate(); err != nil {
		return errors.WithMessage(err, t.Name)
	}

	sources := 0
	if t.Builtin != "" {
		sources++
	}
	if t.World != nil {
		sources++
	}
	if len(t.Classes) > 0 {
		sources++
	}
	if sources != 1 {
		return errors.Wrapf(model.ErrConfiguration, "%s: exactly one of builtin, world or classes is required", t.Name)
	}

	if t.Bindings != "" && t.World == nil && t.Builtin == "" {
		return errors.Wrapf(model.ErrConfiguration, "%s: bindings need a world", t.Name)
	}

	if t.World != nil {
		if err := t.World.Validate(); err != nil {
			return errors.WithMessage(err, t.Name)
		}
	}
	for i, c := range t.Classes {
		if c == nil {
			return errors.Wrapf(model.ErrConfiguration, "%s: class %d is empty", t.Name, i)
		}
		if err := c.Validate(); err != nil {
			return errors.WithMessage(err, t.Name)
		}
	}
	return nil
}

func (v *VariableSpec) Validate() error {
	if v.Name == "" || v.Type == "" {
		return errors.Wrapf(model.ErrConfiguration, "variable %q needs a name and a type", v.Name+v.Type)
	}
	if v.Move && v.NoRef {
		return errors.Wrapf(model.ErrConfiguration, "variable %s can't be both moved and passed by value", v.Name)
	}
	return nil
}

func (w *WorldSpec) Validate() error {
	if w.Name == "" {
		return errors.Wrap(model.ErrConfiguration, "world name is required")
	}
	for i, c := range w.Components {
		if c == nil || c.Type == "" {
			return errors.Wrapf(model.ErrConfiguration, "%s: component %d has no type", w.Name, i)
		}
	}
	for i, s := range w.Systems {
		if s == nil || s.Type == "" {
			return errors.Wrapf(model.ErrConfiguration, "%s: system %d has no type", w.Name, i)
		}
	}
	for _, d := range w.Data {
		if err := d.Member.Validate(); err != nil {
			return errors.WithMessagef(err, "%s: per world data", w.Name)
		}
	}
	for typ, r := range w.Resolvers {
		if r.Component == "" {
			return errors.Wrapf(model.ErrConfiguration, "%s: resolver for %s names no component", w.Name, typ)
		}
	}
	return nil
}

func (c *ClassSpec) Validate() error {
	if c.Name == "" {
		return errors.Wrap(model.ErrConfiguration, "class name is required")
	}
	switch c.Kind {
	case "", KindPlain, KindSerialize, KindResponse, KindState:
	default:
		return errors.Wrapf(model.ErrConfiguration, "%s: unknown class kind %q", c.Name, c.Kind)
	}
	if c.Kind != KindState && len(c.StateBits) > 0 {
		return errors.Wrapf(model.ErrConfiguration, "%s: state bits only apply to component states", c.Name)
	}
	for i := range c.Members.Items {
		if err := c.Members.Items[i].Validate(); err != nil {
			return errors.WithMessage(err, c.Name)
		}
	}
	return nil
}
