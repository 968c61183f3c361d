package classes

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leviathan-engine/filegen/internal/core/emit"
	"github.com/leviathan-engine/filegen/internal/core/model"
)

type emitter interface {
	Emit(w *emit.Writer, pass emit.Pass) error
}

func render(t *testing.T, obj emitter, pass emit.Pass) *emit.Writer {
	t.Helper()
	w := emit.NewWriter()
	require.NoError(t, obj.Emit(w, pass))
	return w
}

var defaults = regexp.MustCompile(`/\* = [^*]*\*/| = [^,]*`)

// requireSymmetric checks both passes declared the same signatures in the
// same order, ignoring default arguments.
func requireSymmetric(t *testing.T, obj emitter) {
	t.Helper()

	normalize := func(sigs []emit.Signature) []emit.Signature {
		out := make([]emit.Signature, len(sigs))
		for i, s := range sigs {
			s.Params = defaults.ReplaceAllString(s.Params, "")
			out[i] = s
		}
		return out
	}

	header := render(t, obj, emit.Header).Signatures()
	impl := render(t, obj, emit.Implementation).Signatures()
	require.NotEmpty(t, header)
	require.Equal(t, normalize(header), normalize(impl))
}

func TestOutputClass(t *testing.T) {
	camera, err := NewOutputClass("Camera",
		WithMembers(model.NewVariable("FOV", "uint16_t", model.WithDefault("90"))))
	require.NoError(t, err)

	t.Run("Header", func(t *testing.T) {
		require.Equal(t,
			"class Camera {\npublic:\nCamera(const uint16_t &fov = 90);\n\n\nuint16_t FOV = 90;\n\n};\n\n",
			render(t, camera, emit.Header).String())
	})

	t.Run("Implementation", func(t *testing.T) {
		require.Equal(t,
			"Camera::Camera(const uint16_t &fov/* = 90 */) :\nFOV(fov)\n{}\n\n\n",
			render(t, camera, emit.Implementation).String())
	})

	t.Run("Idempotent", func(t *testing.T) {
		for _, pass := range emit.Passes {
			require.Equal(t, render(t, camera, pass).String(), render(t, camera, pass).String())
		}
	})
}

func TestOutputClass_Export(t *testing.T) {
	c, err := NewOutputClass("Model", WithMembers(model.NewVariable("File", "std::string")))
	require.NoError(t, err)
	c.SetExport("DLLEXPORT")

	assert.Contains(t, render(t, c, emit.Header).String(), "DLLEXPORT Model(const std::string &file);")
	assert.Contains(t, render(t, c, emit.Implementation).String(), "DLLEXPORT Model::Model(const std::string &file) :")

	hidden, err := NewOutputClass("Model", WithoutExport(), WithMembers(model.NewVariable("File", "std::string")))
	require.NoError(t, err)
	hidden.SetExport("DLLEXPORT")
	assert.NotContains(t, render(t, hidden, emit.Header).String(), "DLLEXPORT")
}

func TestOutputClass_ExtraConstructors(t *testing.T) {
	newClass := func(t *testing.T, base string, ctor *model.ConstructorInfo) *OutputClass {
		opts := []ClassOption{WithConstructors(ctor)}
		if base != "" {
			opts = append(opts, WithBase(base, "default"))
		}
		c, err := NewOutputClass("Box", opts...)
		require.NoError(t, err)
		return c
	}

	inits := model.WithMemberInitializers(model.MemberInitializer{Member: "A", Expression: "1"})

	tests := []struct {
		name string
		base string
		ctor *model.ConstructorInfo
		want string
	}{
		{"base parameters and initializers", "Shape", model.MustConstructorInfo(nil, model.BaseParameters("x"), inits),
			"Box::Box() : Shape(x),\nA(1)\n{\n}\n"},
		{"falls back to base constructor", "Shape", model.MustConstructorInfo(nil),
			"Box::Box() : Shape(default)\n{\n}\n"},
		{"initializers only", "", model.MustConstructorInfo(nil, inits),
			"Box::Box() : A(1)\n{\n}\n"},
		{"nothing", "", model.MustConstructorInfo(nil),
			"Box::Box()\n{\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render(t, newClass(t, tt.base, tt.ctor), emit.Implementation).String()
			assert.Contains(t, out, "// Extra constructors\n"+tt.want)
		})
	}

	_, err := NewOutputClass("Box", WithConstructors(model.MustConstructorInfo(nil, model.BaseParameters("x"))))
	require.True(t, errors.Is(err, model.ErrConfiguration))
}

func TestOutputClass_CopyAndMove(t *testing.T) {
	c, err := NewOutputClass("Sendable",
		WithBase("Leviathan::Component", "TYPE"),
		WithMembers(model.NewVariable("Peer", "int")),
		WithCopyConstructors(),
		WithCopyOperators())
	require.NoError(t, err)

	header := render(t, c, emit.Header).String()
	assert.Contains(t, header, "class Sendable : public Leviathan::Component {")
	assert.Contains(t, header, "Sendable(const Sendable& other) noexcept;\nSendable(Sendable&& other) noexcept;")
	assert.Contains(t, header, "Sendable& operator=(const Sendable& other) noexcept;\nSendable& operator=(Sendable&& other) noexcept;")

	impl := render(t, c, emit.Implementation).String()
	assert.Contains(t, impl, "Sendable::Sendable(const Sendable& other) noexcept :\nLeviathan::Component(other), Peer(other.Peer)\n{}\n")
	assert.Contains(t, impl, "Sendable::Sendable(Sendable&& other) noexcept :\nLeviathan::Component(std::move(other)), Peer(std::move(other.Peer))\n{}\n")
	assert.Contains(t, impl, "Sendable& Sendable::operator=(Sendable&& other) noexcept{\n"+
		"Leviathan::Component::operator=(std::move(other));\nPeer = std::move(other.Peer);\nreturn *this;\n}\n")

	requireSymmetric(t, c)

	t.Run("Without Base Or Members", func(t *testing.T) {
		empty, err := NewOutputClass("Tag", WithCopyConstructors())
		require.NoError(t, err)
		require.Contains(t, render(t, empty, emit.Implementation).String(), "Tag::Tag(const Tag& other) noexcept\n{}\n")
	})
}

func TestOutputClass_Members(t *testing.T) {
	c, err := NewOutputClass("Holder")
	require.NoError(t, err)

	require.True(t, errors.Is(c.AddMember(nil), model.ErrConfiguration))
	require.NoError(t, c.AddMember(model.NewVariable("Value", "int", model.NoRef())))

	c.ConstructorMember("GameWorld* world")
	c.Base("Holder")
	c.BaseConstructor("world")

	impl := render(t, c, emit.Implementation).String()
	require.Contains(t, impl, "Holder::Holder(GameWorld* world, int value) :\nHolder(world),\nValue(value)\n{}\n")

	_, err = NewOutputClass("")
	require.True(t, errors.Is(err, model.ErrConfiguration))
}

func TestOutputClass_Methods(t *testing.T) {
	c, err := NewOutputClass("Counter", WithMethods(
		model.NewGeneratedMethod("Add", "int", []*model.Variable{model.NewVariable("Amount", "int", model.NoRef(), model.WithDefault("1"))}, "return amount;"),
	))
	require.NoError(t, err)

	require.Contains(t, render(t, c, emit.Header).String(), "int Add(int amount = 1);\n")
	require.Contains(t, render(t, c, emit.Implementation).String(), "int Counter::Add(int amount/* = 1 */){\nreturn amount;\n}\n")
	requireSymmetric(t, c)
}

func TestSerializeClass_PacketConstructor(t *testing.T) {
	c, err := NewSerializeClass("ResponseInvalid", WithMembers(
		model.NewVariable("Players", "int32_t"),
		model.NewVariable("Reason", "NETWORK_RESPONSE_INVALIDREASON", model.SerializeAs("uint8_t")),
	))
	require.NoError(t, err)

	impl := render(t, c, emit.Implementation).String()
	assert.Contains(t, impl, "// Packet constructor and serializer //\n")
	assert.Contains(t, impl, "void ResponseInvalid::AddDataToPacket(sf::Packet &packet) const{\n"+
		"packet << Players << static_cast<uint8_t>(Reason);\n}\n")
	assert.Contains(t, impl, "ResponseInvalid::ResponseInvalid(sf::Packet &packet){\n"+
		"packet >> Players;\n"+
		"uint8_t temp_Reason;\n"+
		"packet >> temp_Reason;\n"+
		"Reason = static_cast<NETWORK_RESPONSE_INVALIDREASON>(temp_Reason);\n"+
		"\nif(!packet)\n    //Error loading\n"+
		"    throw Leviathan::InvalidArgument(\"Invalid packet format for: 'ResponseInvalid'\");\n}\n")

	header := render(t, c, emit.Header).String()
	assert.Contains(t, header, "void AddDataToPacket(sf::Packet &packet) const;\n")
	assert.Contains(t, header, "ResponseInvalid(sf::Packet &packet);\n")

	requireSymmetric(t, c)
}

func TestSerializeClass_FieldOrder(t *testing.T) {
	for n := 0; n <= 4; n++ {
		t.Run(fmt.Sprintf("%d Members", n), func(t *testing.T) {
			members := make([]*model.Variable, n)
			for i := range members {
				members[i] = model.NewVariable(fmt.Sprintf("M%d", i), "int32_t")
			}

			c, err := NewSerializeClass("Payload", WithMembers(members...))
			require.NoError(t, err)
			impl := render(t, c, emit.Implementation).String()

			if n == 0 {
				require.Contains(t, impl, "void Payload::AddDataToPacket(sf::Packet &packet) const{\n}\n")
				require.NotContains(t, impl, "packet << ;")
				return
			}

			names := make([]string, n)
			for i := range names {
				names[i] = fmt.Sprintf("M%d", i)
			}
			require.Contains(t, impl, "packet << "+strings.Join(names, " << ")+";\n")

			last := -1
			for _, name := range names {
				at := strings.Index(impl, "packet >> "+name+";")
				require.Greater(t, at, last)
				last = at
			}
		})
	}
}

func TestSerializeClass_DeserializeArgs(t *testing.T) {
	c, err := NewSerializeClass("Derived", WithBase("Parent", "1"), WithMembers(model.NewVariable("X", "int")))
	require.NoError(t, err)
	c.ConstructorMember("uint32_t id")
	c.AddDeserializeArg("Parent* ref")
	c.DeserializeBase("ref")

	impl := render(t, c, emit.Implementation).String()
	require.Contains(t, impl, "Derived::Derived(uint32_t id, Parent* ref, sf::Packet &packet) : Parent(1, ref) {\n")
}

func TestResponseClass(t *testing.T) {
	c, err := NewResponseClass("ResponseServerAllow",
		WithBase("NetworkResponse", "NETWORK_RESPONSE_TYPE::ServerAllow, responseid"),
		WithMembers(model.NewVariable("Message", "std::string", model.WithDefault(""))))
	require.NoError(t, err)
	c.ConstructorMember("uint32_t responseid")

	header := render(t, c, emit.Header).String()
	assert.Contains(t, header, "class ResponseServerAllow : public NetworkResponse {")
	assert.Contains(t, header, `ResponseServerAllow(uint32_t responseid, const std::string &message = "");`)
	assert.Contains(t, header, "void _SerializeCustom(sf::Packet &packet) const override;\n")
	assert.Contains(t, header, "ResponseServerAllow(uint32_t responseid, sf::Packet &packet);\n")

	impl := render(t, c, emit.Implementation).String()
	assert.Contains(t, impl, "void ResponseServerAllow::_SerializeCustom(sf::Packet &packet) const{\npacket << Message;\n}\n")
	assert.Contains(t, impl, "ResponseServerAllow::ResponseServerAllow(uint32_t responseid, sf::Packet &packet)"+
		" : NetworkResponse(NETWORK_RESPONSE_TYPE::ServerAllow, responseid) {\n")
	assert.NotContains(t, impl, "override")

	requireSymmetric(t, c)
}

func TestComponentState(t *testing.T) {
	s, err := NewComponentState("PositionState", []ClassOption{WithMembers(
		model.NewVariable("_Position", "Float3"),
		model.NewVariable("_Orientation", "Float4"),
	)})
	require.NoError(t, err)
	require.Equal(t, "COMPONENT_TYPE::Position", s.TypeTag())

	header := render(t, s, emit.Header).String()
	assert.Contains(t, header, "class PositionState : public BaseComponentState {")
	assert.Contains(t, header, "void AddDataToPacket(sf::Packet &packet, BaseComponentState* olderstate) const override;\n")
	assert.Contains(t, header, "bool FillMissingData(BaseComponentState& otherstate) override;\n")

	impl := render(t, s, emit.Implementation).String()
	assert.Contains(t, impl, "PositionState::PositionState(const Float3 &_position, const Float4 &_orientation) :\n"+
		"BaseComponentState(-1, COMPONENT_TYPE::Position),\n_Position(_position), _Orientation(_orientation)\n{}\n")
	assert.Contains(t, impl, "void PositionState::AddDataToPacket(sf::Packet &packet, BaseComponentState* olderstate) const{\n"+
		"packet << static_cast<uint16_t>(COMPONENT_TYPE::Position);\npacket << _Position << _Orientation;\n}\n")
	assert.Contains(t, impl, "PositionState::PositionState(PositionState* referencestate, sf::Packet &packet)"+
		" : BaseComponentState(-1, COMPONENT_TYPE::Position) {\n")
	assert.Contains(t, impl, "bool PositionState::FillMissingData(BaseComponentState& otherstate){\n"+
		"// This has no state subdivision //\nreturn true;\n}\n")

	requireSymmetric(t, s)

	t.Run("State Bits", func(t *testing.T) {
		bits, err := NewComponentState("PositionState", nil, WithStateBits("Position", "Orientation"))
		require.NoError(t, err)

		err = bits.Emit(emit.NewWriter(), emit.Implementation)
		require.True(t, errors.Is(err, model.ErrNotImplemented))
	})
}
