package world

import (
	"github.com/leviathan-engine/filegen/internal/core/emit"
	"github.com/leviathan-engine/filegen/internal/core/model"
)

const registerFail = "{\nANGELSCRIPT_REGISTERFAIL;\n}\n"

// Bindings is the script registration fragment of a world. It's meant to be
// written bare and included from a registration routine that defines engine,
// classname and WorldType.
type Bindings struct {
	world *GameWorldClass
}

func (g *GameWorldClass) Bindings() *Bindings {
	return &Bindings{world: g}
}

func (b *Bindings) Name() string { return b.world.Name() + "Bindings" }

// Emit writes the fragment once, during the implementation pass.
func (b *Bindings) Emit(w *emit.Writer, pass emit.Pass) error {
	if !pass.IsImplementation() {
		return nil
	}

	w.Blank()
	for _, c := range b.world.components {
		emitComponentBinding(w, c)
	}
	w.Blank()

	for _, s := range b.world.systems {
		if !s.IsVisibleToScripts() {
			continue
		}
		register(w, `"`+s.Type()+`@ Get`+s.Name()+`()",`, "asMETHOD(WorldType, Get"+s.Name()+"), asCALL_THISCALL)")
	}

	for _, d := range b.world.perWorldData {
		if d.HideFromScripts {
			continue
		}
		handle := d.ScriptType
		if handle == "" {
			handle = d.Member.Type() + "@"
		}
		typ := d.Member.Type()
		register(w, `"`+handle+` Get`+typ+`()",`, "asMETHOD(WorldType, Get"+typ+"), asCALL_THISCALL)")
	}
	return nil
}

func register(w *emit.Writer, declaration, method string) {
	w.Line("if(engine->RegisterObjectMethod(classname, " + declaration)
	w.Line(method + " < 0)")
	w.Write(registerFail)
}

func emitComponentBinding(w *emit.Writer, c *model.EntityComponent) {
	typ := c.Type()

	register(w, `"`+typ+`@ GetComponent_`+typ+`(ObjectID id)", `,
		"asMETHOD(WorldType, GetComponentPtr_"+typ+"), asCALL_THISCALL)")
	register(w, `"array<ObjectID>@ GetComponentIndex_`+typ+`()", `,
		"asMETHOD(WorldType, GetComponentIndexWrapper_"+typ+"), asCALL_THISCALL)")
	register(w, `"uint64 GetComponentCount_`+typ+`()", `,
		"asMETHOD(WorldType, GetComponentCount_"+typ+"), asCALL_THISCALL)")
	register(w, `"`+typ+`@ GetComponentByIndex_`+typ+`(uint64 index)", `,
		"asMETHOD(WorldType, GetComponentPtrByIndex_"+typ+"), asCALL_THISCALL)")
	register(w, `"bool RemoveComponent_`+typ+`(ObjectID id)", `,
		"asMETHOD(WorldType, RemoveComponent_"+typ+"), asCALL_THISCALL)")
	w.Blank()

	for _, ctor := range c.Constructors() {
		if ctor.HasNoScript() {
			continue
		}
		register(w, `"`+typ+`@ Create_`+typ+`(ObjectID id`+ctor.FormatParametersScript(true)+`)", `,
			"asMETHODPR(WorldType, Create_"+typ+", \n"+
				"    (ObjectID id"+ctor.FormatParameterTypes(true)+"), "+typ+"&), \n"+
				"asCALL_THISCALL)")
		w.Blank()
	}
}
