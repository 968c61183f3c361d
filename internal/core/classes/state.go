package classes

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/leviathan-engine/filegen/internal/core/emit"
	"github.com/leviathan-engine/filegen/internal/core/model"
)

// StateBaseClass is the base of every interpolation state.
const StateBaseClass = "BaseComponentState"

// ComponentState is the serializable snapshot of one component used for
// interpolation. Its packets start with the component type tag.
type ComponentState struct {
	*SerializeClass

	typeTag   string
	stateBits []string
}

var _ Body = (*ComponentState)(nil)

type StateOption func(*ComponentState)

// WithStateBits requests partial state updates split over the given bits.
// Generating those isn't supported.
func WithStateBits(bits ...string) StateOption {
	return func(s *ComponentState) { s.stateBits = append(s.stateBits, bits...) }
}

// NewComponentState builds "<Component>State". The component type tag is the
// name with the first "State" removed.
func NewComponentState(name string, classOpts []ClassOption, opts ...StateOption) (*ComponentState, error) {
	base, err := NewSerializeClass(name, classOpts...)
	if err != nil {
		return nil, err
	}

	s := &ComponentState{
		SerializeClass: base,
		typeTag:        "COMPONENT_TYPE::" + strings.Replace(name, "State", "", 1),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Base(StateBaseClass)
	s.BaseConstructor("-1, " + s.typeTag)
	s.AddDeserializeArg(name + "* referencestate")
	return s, nil
}

// TypeTag is the COMPONENT_TYPE enumerator written first to every packet.
func (s *ComponentState) TypeTag() string { return s.typeTag }

func (s *ComponentState) Emit(w *emit.Writer, pass emit.Pass) error {
	return s.EmitWith(w, pass, s)
}

func (s *ComponentState) EmitMethods(w *emit.Writer, pass emit.Pass) error {
	if len(s.stateBits) > 0 {
		return errors.Wrapf(model.ErrNotImplemented, "%s: state bits handling", s.Name())
	}

	s.emitPacketMethods(w, pass, s.emitSerializer)
	w.Blank()

	sig := s.Signature("bool", "FillMissingData", StateBaseClass+"& otherstate")
	sig.Override = true
	w.Method(pass, sig, func() {
		w.Line("// This has no state subdivision //")
		w.Line("return true;")
	})
	return nil
}

func (s *ComponentState) emitSerializer(w *emit.Writer, pass emit.Pass) {
	sig := s.Signature("void", "AddDataToPacket", PacketType+" &packet, "+StateBaseClass+"* olderstate")
	sig.Const = true
	sig.Override = true

	w.Method(pass, sig, func() {
		w.Line("packet << static_cast<uint16_t>(" + s.typeTag + ");")
		s.writeToPacket(w)
	})
}
