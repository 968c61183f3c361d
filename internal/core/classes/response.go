package classes

import "github.com/leviathan-engine/filegen/internal/core/emit"

// ResponseClass is a network response. The base class frames the packet, the
// generated part only serializes the custom payload.
type ResponseClass struct {
	*SerializeClass
}

var _ Body = (*ResponseClass)(nil)

func NewResponseClass(name string, opts ...ClassOption) (*ResponseClass, error) {
	base, err := NewSerializeClass(name, opts...)
	if err != nil {
		return nil, err
	}
	return &ResponseClass{SerializeClass: base}, nil
}

func (c *ResponseClass) Emit(w *emit.Writer, pass emit.Pass) error {
	return c.EmitWith(w, pass, c)
}

func (c *ResponseClass) EmitMethods(w *emit.Writer, pass emit.Pass) error {
	c.emitPacketMethods(w, pass, c.emitSerializer)
	return nil
}

func (c *ResponseClass) emitSerializer(w *emit.Writer, pass emit.Pass) {
	sig := c.Signature("void", "_SerializeCustom", PacketType+" &packet")
	sig.Const = true
	sig.Override = true

	w.Method(pass, sig, func() { c.writeToPacket(w) })
}
