package definitions

import (
	"github.com/pkg/errors"

	"github.com/leviathan-engine/filegen/internal/core/classes"
	"github.com/leviathan-engine/filegen/internal/core/model"
)

const ResponseBaseClass = "NetworkResponse"

type field struct {
	name string
	typ  string
	wire string
	def  *string
	move bool
}

func f(name, typ string) field { return field{name: name, typ: typ} }

func (x field) as(wire string) field { x.wire = wire; return x }

func (x field) or(def string) field { x.def = &def; return x }

func (x field) moved() field { x.move = true; return x }

func (x field) variable() *model.Variable {
	var opts []model.VariableOption
	if x.wire != "" {
		opts = append(opts, model.SerializeAs(x.wire))
	}
	if x.def != nil {
		opts = append(opts, model.WithDefault(*x.def))
	}
	if x.move {
		opts = append(opts, model.Move())
	}
	return model.NewVariable(x.name, x.typ, opts...)
}

type response struct {
	kind   string
	fields []field
}

var responses = []response{
	{"Identification", []field{
		f("UserReadableData", "std::string"),
		f("GameName", "std::string"),
		f("GameVersionString", "std::string"),
		f("LeviathanVersionString", "std::string").or("LEVIATHAN_VERSION_ANSIS"),
	}},
	{"InvalidRequest", []field{
		f("Invalidness", "NETWORK_RESPONSE_INVALIDREASON").as("uint8_t"),
		f("AdditionalInfo", "std::string").or(""),
	}},
	{"ServerStatus", []field{
		f("ServerNameString", "std::string"),
		f("Joinable", "bool"),
		f("JoinRestriction", "SERVER_JOIN_RESTRICT").as("uint8_t"),
		f("ServerStatus", "SERVER_STATUS").as("uint8_t"),
		f("Players", "int32_t"),
		f("MaxPlayers", "int32_t"),
		f("Bots", "int32_t"),
		f("AdditionalFlags", "int32_t").or("0"),
	}},
	{"DisconnectInput", []field{
		f("InputID", "int32_t"),
		f("OwnerID", "int32_t"),
	}},
	{"ServerDisallow", []field{
		f("Message", "std::string"),
		f("Reason", "NETWORK_RESPONSE_INVALIDREASON").as("uint8_t"),
	}},
	{"ServerAllow", []field{
		f("ServerAcceptedWhat", "SERVER_ACCEPTED_TYPE").as("uint8_t"),
		f("Message", "std::string").or(""),
	}},
	{"SyncValData", []field{
		f("SyncValueData", "NamedVariableList"),
	}},
	{"SyncDataEnd", []field{
		f("Succeeded", "bool"),
	}},
	{"SyncResourceData", []field{
		f("OurCustomData", "std::string"),
	}},
	{"CreateNetworkedInput", []field{
		f("OurCustomData", "sf::Packet").moved(),
	}},
	{"UpdateNetworkedInput", []field{
		f("InputID", "int32_t"),
		f("UpdateData", "sf::Packet").moved(),
	}},
	{"EntityCreation", []field{
		f("WorldID", "int32_t"),
		f("InitialEntity", "sf::Packet").moved(),
	}},
	{"EntityDestruction", []field{
		f("WorldID", "int32_t"),
		f("EntityID", "ObjectID"),
	}},
	{"WorldFrozen", []field{
		f("WorldID", "int32_t"),
		f("Frozen", "bool"),
		f("TickNumber", "int32_t"),
	}},
	{"EntityConstraint", []field{
		f("WorldID", "int32_t"),
		f("Create", "bool"),
		f("ConstraintID", "int32_t"),
		f("EntityID1", "ObjectID"),
		f("EntityID2", "ObjectID"),
		f("ConstraintType", "ENTITY_CONSTRAINT_TYPE").as("uint16_t"),
		f("ConstraintData", "ObjectID"),
	}},
	{"EntityUpdate", []field{
		f("WorldID", "int32_t"),
		f("TickNumber", "int32_t"),
		f("ReferenceTick", "int32_t"),
		f("EntityID", "ObjectID"),
		f("UpdateData", "sf::Packet").moved(),
	}},
	{"CacheUpdated", []field{
		f("Variable", "NamedVariableList"),
	}},
	{"CacheRemoved", []field{
		f("Name", "std::string"),
	}},
}

// ResponseKinds lists the NETWORK_RESPONSE_TYPE of every generated response.
func ResponseKinds() []string {
	out := make([]string, len(responses))
	for i, r := range responses {
		out[i] = r.kind
	}
	return out
}

// Response builds "Response<kind>". The response id always comes first.
func Response(kind string) (*classes.ResponseClass, error) {
	for _, r := range responses {
		if r.kind == kind {
			return r.build()
		}
	}
	return nil, errors.Wrapf(model.ErrConfiguration, "no response %q", kind)
}

func (r response) build() (*classes.ResponseClass, error) {
	members := make([]*model.Variable, len(r.fields))
	for i, x := range r.fields {
		members[i] = x.variable()
	}

	c, err := classes.NewResponseClass("Response"+r.kind,
		classes.WithBase(ResponseBaseClass, "NETWORK_RESPONSE_TYPE::"+r.kind+", responseid"),
		classes.WithMembers(members...))
	if err != nil {
		return nil, err
	}
	c.ConstructorMember("uint32_t responseid")
	return c, nil
}

func Responses() ([]*classes.ResponseClass, error) {
	out := make([]*classes.ResponseClass, 0, len(responses))
	for _, r := range responses {
		c, err := r.build()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
