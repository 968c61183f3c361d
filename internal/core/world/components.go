package world

import (
	"fmt"
	"strings"

	"github.com/leviathan-engine/filegen/internal/core/emit"
	"github.com/leviathan-engine/filegen/internal/core/model"
)

func releaseArgs(c *model.EntityComponent, leadingComma bool) string {
	args, _ := c.Release()
	if len(args) == 0 {
		return ""
	}
	if leadingComma {
		return ", " + strings.Join(args, ", ")
	}
	return strings.Join(args, ", ")
}

// destroyCall renders the call removing one entity's component.
func destroyCall(c *model.EntityComponent) string {
	if _, ok := c.Release(); ok {
		return c.StorageName() + ".ReleaseIfExists(id, true" + releaseArgs(c, true) + ");"
	}
	return c.StorageName() + ".DestroyIfExists(id, true);"
}

func (g *GameWorldClass) emitReset(w *emit.Writer, pass emit.Pass) {
	w.Method(pass, g.override("void", "_ResetOrReleaseComponents", ""), func() {
		w.Line(g.BaseClass() + "::_ResetOrReleaseComponents();")
		for _, d := range g.perWorldData {
			w.Line(d.Member.Name() + ".OnClear();")
		}

		w.Line("// Reset all component holders //")
		for _, c := range g.components {
			if _, ok := c.Release(); ok {
				w.Line(c.StorageName() + ".ReleaseAllAndClear(" + releaseArgs(c, false) + ");")
			} else {
				w.Line(c.StorageName() + ".Clear();")
			}
		}
	})

	w.Method(pass, g.override("void", "_ResetSystems", ""), func() {
		w.Line(g.BaseClass() + "::_ResetSystems();")
		w.Line("// Reset all system nodes //")
		for _, s := range g.systems {
			if s.ClearsNodes() {
				w.Line(s.MemberName() + ".Clear();")
			}
		}
	})
}

// emitComponentAccessors writes the per component methods. The documentation
// block is only written once, before the first component.
func (g *GameWorldClass) emitComponentAccessors(w *emit.Writer, pass emit.Pass) {
	w.Linef("// Component types (%d) //", len(g.components))

	stateCommented := false
	for i, c := range g.components {
		doc := func(lines ...string) {
			if i != 0 || !pass.IsHeader() {
				return
			}
			for _, l := range lines {
				w.Line(l)
			}
		}
		typ := c.Type()

		doc(`//! \brief Returns a reference to a component of wanted type`,
			`//! \exception NotFound when the specified entity doesn't have a component of`,
			`//! the wanted type`,
			"//! \\note This is the recommended way to get components. \n"+
				"//! AngelScript uses the Ptr variant but with this name to not throw exceptions to the scripts")
		w.Method(pass, g.Signature(typ+"&", "GetComponent_"+typ, "ObjectID id"), func() {
			w.Line("auto component = " + c.StorageName() + ".Find(id);")
			w.Line("if(!component)")
			w.Line(`    throw Leviathan::NotFound("Component for entity with id was not found");`)
			w.Blank()
			w.Line("return *component;")
		})

		doc(`//! \brief Destroys a component belonging to an entity`,
			`//! \return True when destroyed, false if the entity didn't have a component `,
			`//! of this type`)
		w.Method(pass, g.Signature("bool", "RemoveComponent_"+typ, "ObjectID id"), func() {
			w.Line("    const bool destroyed = " + destroyCall(c))
			w.Line("    return destroyed;")
		})

		doc(`//! \brief Creates a new component for entity`,
			`//! \exception Exception if the component failed to init or it already exists`)
		for _, ctor := range c.Constructors() {
			sig := g.Signature(typ+"&", "Create_"+typ, "ObjectID id"+ctor.FormatParameters(pass, true))
			w.Method(pass, sig, func() {
				w.Line("return *" + c.StorageName() + ".ConstructNew(id" + ctor.FormatNames(typ) + ");")
			})
		}

		if pass.IsHeader() && c.HasState() {
			if !stateCommented {
				w.Line(`//! \brief Returns state holder for component type`)
				stateCommented = true
			}
			w.Inline(emit.Signature{Export: g.Export(), Return: "StateHolder<" + c.StateClass() + ">&", Name: "GetStatesFor_" + typ},
				"return "+c.StatesName()+";")
		}

		doc(`//! \brief Returns a pointer to entity's component if it has one of this type`,
			`//! \returns nullptr if not found`,
			`//! \note This is not the recommended way. Use GetComponent_ instead`)
		w.Method(pass, g.Signature(typ+"*", "GetComponentPtr_"+typ, "ObjectID id"), func() {
			w.Line("return " + c.StorageName() + ".Find(id);")
		})

		if pass.IsHeader() {
			w.Inline(emit.Signature{Export: g.Export(), Return: "inline const auto&", Name: "GetComponentIndex_" + typ},
				"return "+c.StorageName()+".GetIndex();")
			w.Inline(emit.Signature{Export: g.Export(), Return: "inline uint64_t", Name: "GetComponentCount_" + typ, Const: true},
				"return "+c.StorageName()+".GetIndexSize();")
			w.Inline(emit.Signature{Export: g.Export(), Return: "inline " + typ + "*", Name: "GetComponentPtrByIndex_" + typ, Params: "uint64_t index"},
				"return "+c.StorageName()+".GetAtIndex(index);")
			w.Line(`//! \note This creates a new array object on each call`)
		}

		w.Method(pass, g.Signature("CScriptArray*", "GetComponentIndexWrapper_"+typ, ""), func() {
			w.Line("    const auto& index = " + c.StorageName() + ".GetIndex();")
			w.Line("    asIScriptContext* ctx = asGetActiveContext();")
			w.Line("    asIScriptEngine* engine = ctx ? ctx->GetEngine() : Leviathan::ScriptExecutor::Get()->GetASEngine();")
			w.Line("    return ConvertIteratorToASArray((index | boost::adaptors::map_keys).begin(),")
			w.Line(`          (index | boost::adaptors::map_keys).end(), engine, "array<ObjectID>");`)
		})

		w.Blank()
	}
}

func (g *GameWorldClass) emitDestroyAllIn(w *emit.Writer, pass emit.Pass) {
	w.Method(pass, g.override("void", "DestroyAllIn", "ObjectID id"), func() {
		w.Line(g.BaseClass() + "::DestroyAllIn(id);")
		for _, c := range g.components {
			w.Line(destroyCall(c))
		}
	})
}

// emitSwitch writes a switch over the component type tag. Only this world's
// components get a case; everything else goes to the base class.
func (g *GameWorldClass) emitSwitch(w *emit.Writer, include func(*model.EntityComponent) bool,
	caseBody func(*model.EntityComponent), fallback string) {
	w.Line("switch(static_cast<uint16_t>(type)){")
	for _, c := range g.components {
		if include != nil && !include(c) {
			continue
		}
		w.Linef("case static_cast<uint16_t>(%s::TYPE):", c.Type())
		w.Line("{")
		caseBody(c)
		w.Line("}")
	}
	w.Line("default:")
	w.Line("return " + g.BaseClass() + "::" + fallback + ";")
	w.Line("}")
}

func typeInfo(c *model.EntityComponent) []string {
	return []string{
		fmt.Sprintf("    Leviathan::ComponentTypeInfo(static_cast<uint16_t>(%s::TYPE), ", c.Type()),
		fmt.Sprintf("        Leviathan::AngelScriptTypeIDResolver<%s>::Get(", c.Type()),
	}
}

func (g *GameWorldClass) emitDispatchTables(w *emit.Writer, pass emit.Pass) {
	params := "ObjectID id, Leviathan::COMPONENT_TYPE type"

	w.Method(pass, g.override("std::tuple<void*, bool>", "GetComponent", params), func() {
		g.emitSwitch(w, nil, func(c *model.EntityComponent) {
			w.Line("return std::make_tuple(" + c.StorageName() + ".Find(id), true);")
		}, "GetComponent(id, type)")
	})

	w.Method(pass, g.override("std::tuple<void*, Leviathan::ComponentTypeInfo, bool>", "GetComponentWithType", params), func() {
		g.emitSwitch(w, nil, func(c *model.EntityComponent) {
			w.Line("auto* ptr = " + c.StorageName() + ".Find(id);")
			w.Line("if(!ptr)")
			w.Line("    return std::make_tuple(nullptr, Leviathan::ComponentTypeInfo(-1, -1), true);")
			w.Line("return std::make_tuple(ptr, ")
			for _, l := range typeInfo(c) {
				w.Line(l)
			}
			w.Line("        Leviathan::GetCurrentGlobalScriptExecutor())), true);")
		}, "GetComponentWithType(id, type)")
	})

	w.Method(pass, g.override("bool", "GetRemovedFor",
		"Leviathan::COMPONENT_TYPE type, std::vector<std::tuple<void*, ObjectID>>& result"), func() {
		g.emitSwitch(w, nil, func(c *model.EntityComponent) {
			w.Line("auto& vec = " + c.StorageName() + ".GetRemoved();")
			w.Line("result.insert(std::end(result), std::begin(vec), std::end(vec));")
			w.Line("return true;")
		}, "GetRemovedFor(type, result)")
	})

	w.Method(pass, g.override("bool", "GetAddedFor",
		"Leviathan::COMPONENT_TYPE type, std::vector<std::tuple<void*, ObjectID, Leviathan::ComponentTypeInfo>>& result"), func() {
		g.emitSwitch(w, nil, func(c *model.EntityComponent) {
			w.Line("auto& vec = " + c.StorageName() + ".GetAdded();")
			w.Line("result.reserve(result.size() + vec.size());")
			w.Line("for(const auto& res : vec){")
			w.Line("    result.push_back(std::make_tuple(std::get<0>(res), std::get<1>(res), ")
			for _, l := range typeInfo(c) {
				w.Line("    " + l)
			}
			w.Line("        Leviathan::GetCurrentGlobalScriptExecutor()))));")
			w.Line("}")
			w.Line("return true;")
		}, "GetAddedFor(type, result)")
	})
}

const templateHelpers = `//! Helper for getting component of type. This is much slower than
//! direct lookups with the actual implementation class' GetComponent_Position etc.
//! methods
//! \exception NotFound if entity has no component of the wanted type
//!
//! This is copied here as a method with the same name would overwrite this otherwise
template<class TComponent>
TComponent& GetComponent(ObjectID id){

    std::tuple<void*, bool> component = GetComponent(id, TComponent::TYPE);

    if(!std::get<1>(component))
        throw Leviathan::InvalidArgument("Unrecognized component type as template parameter");

    void* ptr = std::get<0>(component);

    if(!ptr)
        throw Leviathan::NotFound("Component for entity with id was not found");

    return *static_cast<TComponent*>(ptr);
}

template<class TComponent>
Leviathan::StateHolder<typename TComponent::StateT>& GetStatesFor(){

    std::tuple<void*, bool> stateHolder = GetStatesFor(TComponent::TYPE);

    if(!std::get<1>(stateHolder))
        throw InvalidArgument("Unrecognized component type as template parameter for "
            "state holder");

    void* ptr = std::get<0>(stateHolder);

    return *static_cast<Leviathan::StateHolder<typename TComponent::StateT>*>(ptr);
}
`

// emitGetters writes the header-only system and per world data getters and
// the templated lookup helpers.
func (g *GameWorldClass) emitGetters(w *emit.Writer, pass emit.Pass) {
	if !pass.IsHeader() {
		return
	}

	prefix := ""
	if export := g.Export(); export != "" {
		prefix = export + " "
	}

	w.Line("// System gets")
	for _, s := range g.systems {
		w.Linef("%s%s& Get%s(){ return %s; }", prefix, s.Type(), s.Name(), s.MemberName())
	}
	w.Blank()

	w.Line("// Per world data object gets")
	for _, d := range g.perWorldData {
		w.Linef("%s%s& Get%s(){ return %s; }", prefix, d.Member.Type(), d.Member.Type(), d.Member.Name())
	}
	w.Blank()

	w.Write(templateHelpers)
}

func (g *GameWorldClass) emitStatesDispatch(w *emit.Writer, pass emit.Pass) {
	w.Method(pass, g.override("std::tuple<void*, bool>", "GetStatesFor", "Leviathan::COMPONENT_TYPE type"), func() {
		g.emitSwitch(w, (*model.EntityComponent).HasState, func(c *model.EntityComponent) {
			w.Line("return std::make_tuple(&" + c.StatesName() + ", true);")
		}, "GetStatesFor(type)")
	})
}
