package classes

import (
	"strings"

	"github.com/leviathan-engine/filegen/internal/core/emit"
)

// PacketType is the wire buffer every serializable class reads and writes.
const PacketType = "sf::Packet"

// SerializeClass is an OutputClass that can write its members to a packet and
// be constructed back from one. Members are written and read in declaration
// order.
type SerializeClass struct {
	*OutputClass

	deserializeArgs []string
	deserializeBase string
}

var _ Body = (*SerializeClass)(nil)

func NewSerializeClass(name string, opts ...ClassOption) (*SerializeClass, error) {
	base, err := NewOutputClass(name, opts...)
	if err != nil {
		return nil, err
	}
	return &SerializeClass{OutputClass: base}, nil
}

// AddDeserializeArg adds a raw parameter to the packet constructor.
func (c *SerializeClass) AddDeserializeArg(arg string) {
	c.deserializeArgs = append(c.deserializeArgs, arg)
}

// DeserializeBase appends extra base constructor arguments in the packet
// constructor.
func (c *SerializeClass) DeserializeBase(arg string) {
	c.deserializeBase = arg
}

func (c *SerializeClass) Emit(w *emit.Writer, pass emit.Pass) error {
	return c.EmitWith(w, pass, c)
}

func (c *SerializeClass) EmitMethods(w *emit.Writer, pass emit.Pass) error {
	c.emitPacketMethods(w, pass, c.emitSerializer)
	return nil
}

func (c *SerializeClass) emitPacketMethods(w *emit.Writer, pass emit.Pass, serializer func(*emit.Writer, emit.Pass)) {
	w.Blank()
	w.Line("// Packet constructor and serializer //")

	serializer(w, pass)
	c.emitPacketConstructor(w, pass)
}

// toPacket renders "packet << A << B", or "" without members.
func (c *SerializeClass) toPacket() string {
	members := c.Members()
	if len(members) == 0 {
		return ""
	}

	operands := make([]string, len(members))
	for i, m := range members {
		operands[i] = m.FormatSerializer()
	}
	return "packet << " + strings.Join(operands, " << ")
}

func (c *SerializeClass) writeToPacket(w *emit.Writer) {
	if out := c.toPacket(); out != "" {
		w.Line(out + ";")
	}
}

func (c *SerializeClass) emitSerializer(w *emit.Writer, pass emit.Pass) {
	sig := c.Signature("void", "AddDataToPacket", PacketType+" &packet")
	sig.Const = true

	w.Method(pass, sig, func() { c.writeToPacket(w) })
}

func (c *SerializeClass) emitPacketConstructor(w *emit.Writer, pass emit.Pass) {
	args := append(append([]string(nil), c.cArgs...), c.deserializeArgs...)
	args = append(args, PacketType+" &packet")

	w.Declare(pass, c.Signature("", c.Name(), strings.Join(args, ", ")))

	if pass.IsHeader() {
		w.Line(";")
		return
	}

	base := c.BaseConstructorArgs()
	if c.deserializeBase != "" {
		if base != "" {
			base += ", "
		}
		base += c.deserializeBase
	}

	if base != "" && c.BaseClass() != "" {
		w.Line(" : " + c.BaseClass() + "(" + base + ") {")
	} else {
		w.Line("{")
	}

	for _, m := range c.Members() {
		w.Write(m.FormatDeserializer("packet", ""))
	}

	w.Blank()
	w.Line("if(!packet)")
	w.Line("    //Error loading")
	w.Line(`    throw Leviathan::InvalidArgument("Invalid packet format for: '` + c.Name() + `'");`)
	w.Line("}")
}
