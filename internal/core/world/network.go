package world

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/leviathan-engine/filegen/internal/core/emit"
	"github.com/leviathan-engine/filegen/internal/core/model"
)

// wireParameters are the primary constructor parameters sent over the network.
func wireParameters(c *model.EntityComponent) []*model.Variable {
	var out []*model.Variable
	for _, p := range c.Primary().Parameters() {
		if !p.IsNonMethodParam() && !p.IsNonSerializeParam() {
			out = append(out, p)
		}
	}
	return out
}

// resolvedParameters must be looked up from other components when decoding.
func resolvedParameters(c *model.EntityComponent) []*model.Variable {
	var out []*model.Variable
	for _, p := range c.Primary().Parameters() {
		if !p.IsNonMethodParam() && p.IsNonSerializeParam() {
			out = append(out, p)
		}
	}
	return out
}

func (g *GameWorldClass) emitStateCapture(w *emit.Writer, pass emit.Pass) {
	capture := g.override("void", "CaptureEntityState", "ObjectID id, Leviathan::EntityState& curstate")
	capture.Virtual = true
	capture.Const = true

	w.Method(pass, capture, func() {
		for _, c := range g.components {
			if !c.HasState() {
				continue
			}
			local := c.Ident().Param()

			w.Blank()
			w.Line("const auto& " + local + " = " + c.StorageName() + ".Find(id);")
			w.Line("if(" + local + ")")
			w.Line("    curstate.Append(std::make_unique<" + c.StateClass() + ">(" + c.StatesName() + ".CreateStateForSending(")
			w.Line("        *" + local + ", GetTickNumber())));")
		}
		w.Blank()
		w.Line(g.BaseClass() + "::CaptureEntityState(id, curstate);")
	})

	static := g.override("uint32_t", "CaptureEntityStaticState", "ObjectID id, sf::Packet& receiver")
	static.Virtual = true
	static.Const = true

	w.Method(pass, static, func() {
		w.Line("uint32_t addedComponentCount = 0;")
		for _, c := range g.components {
			if !c.IsSynchronized() {
				continue
			}
			local := c.Ident().Param()

			w.Blank()
			w.Line("const auto& " + local + " = " + c.StorageName() + ".Find(id);")
			w.Line("if(" + local + "){")
			w.Line("    ++addedComponentCount;")
			w.Line("    receiver << static_cast<uint16_t>(" + c.Type() + "::TYPE);")
			for _, p := range wireParameters(c) {
				w.Line("    receiver << " + p.FormatMemberSerializer(local+"->") + ";")
			}
			w.Line("}")
		}
		w.Blank()
		w.Line("return addedComponentCount + " + g.BaseClass() + "::CaptureEntityStaticState(id, receiver);")
	})

	w.Blank()
}

func (g *GameWorldClass) emitNetworkCreators(w *emit.Writer, pass emit.Pass) {
	if g.hasSendable {
		w.Method(pass, g.override("void", "_CreateSendableComponentForEntity", "ObjectID id"), func() {
			w.Line("Create_Sendable(id);")
		})
	}
	if g.hasReceived {
		w.Method(pass, g.override("void", "_CreateReceivedComponentForEntity", "ObjectID id"), func() {
			w.Line("Create_Received(id);")
		})
	}
}

func emitTypeDecode(w *emit.Writer, endOfData ...string) {
	w.Line("if(decodedtype == -1){")
	w.Line("    // Type not decoded yet")
	w.Line("    uint16_t tmpType;")
	w.Line("    data >> tmpType;")
	w.Line("    decodedtype = tmpType;")
	w.Line("}")
	w.Line("if(!data){")
	for _, l := range endOfData {
		w.Line("    " + l)
	}
	w.Line("    return;")
	w.Line("}")
	w.Blank()
	w.Line("switch(decodedtype){")
}

// emitDecoders writes the creation, state update and local control decoders.
// Every decoder loops over type tagged entries until its input runs out.
func (g *GameWorldClass) emitDecoders(w *emit.Writer, pass emit.Pass) error {
	if err := g.checkResolvers(); err != nil {
		return err
	}

	w.Method(pass, g.override("void", "_CreateComponentsFromCreationMessage",
		"ObjectID id, sf::Packet& data, int entriesleft, int decodedtype"), func() {
		g.emitCreationDecoder(w)
	})
	w.Blank()

	updateParams := "ObjectID id, int32_t ticknumber, sf::Packet& data, int32_t referencetick, int decodedtype"

	w.Method(pass, g.override("void", "_CreateStatesFromUpdateMessage", updateParams), func() {
		w.Line("while(true){")
		emitTypeDecode(w, "// Ended, there is no entry count in the message")

		for _, c := range g.components {
			if !c.HasState() {
				continue
			}
			local := c.Ident().Param()

			w.Linef("case static_cast<int>(%s::TYPE):", c.Type())
			w.Line("{")
			w.Line("const auto& " + local + " = " + c.StorageName() + ".Find(id);")
			w.Line("if(" + local + "){")
			w.Line("     " + local + "->StateMarked = true;")
			w.Line("} else {")
			w.Line(`    LOG_ERROR("GameWorld: received states for not created Component, "`)
			w.Line(`        "can't mark states as active. And the states may now be kept forever");`)
			w.Line("}")
			w.Blank()
			w.Line(c.StatesName() + ".DeserializeState(id, ticknumber, data, referencetick);")
			w.Line("decodedtype = -1;")
			w.Line("continue;")
			w.Line("}")
		}

		w.Line("default:")
		w.Line("return " + g.BaseClass() + "::_CreateStatesFromUpdateMessage(id, ticknumber, data, referencetick, decodedtype);")
		w.Line("}")
		w.Line("}")
	})
	w.Blank()

	w.Method(pass, g.override("void", "_ApplyLocalControlUpdateMessage", updateParams), func() {
		w.Line("while(true){")
		emitTypeDecode(w, "// Ended, there is no entry count in the message")

		for _, c := range g.components {
			if !c.HasState() {
				continue
			}
			local := c.Ident().Param()

			w.Linef("case static_cast<int>(%s::TYPE):", c.Type())
			w.Line("{")
			w.Line("const auto& " + local + " = " + c.StorageName() + ".Find(id);")
			w.Line("if(" + local + "){")
			w.Line("    " + c.StatesName() + ".DeserializeAndApplyState(id, *" + local + ", ticknumber, data, referencetick);")
			w.Line("} else {")
			w.Line(`    LOG_ERROR("GameWorld: received local control states for not created , "`)
			w.Line(`        "Component, this is the client's fault");`)
			w.Line("}")
			w.Blank()
			w.Line("decodedtype = -1;")
			w.Line("continue;")
			w.Line("}")
		}

		w.Line("default:")
		w.Line("return " + g.BaseClass() + "::_ApplyLocalControlUpdateMessage(id, ticknumber, data, referencetick, decodedtype);")
		w.Line("}")
		w.Line("}")
	})
	return nil
}

// checkResolvers fails on any parameter the creation decoder couldn't recover.
func (g *GameWorldClass) checkResolvers() error {
	for _, c := range g.components {
		if !c.IsSynchronized() {
			continue
		}
		for _, p := range resolvedParameters(c) {
			if _, ok := g.resolvers[p.Type()]; !ok {
				return errors.Wrapf(model.ErrUnsupportedSchema,
					"%s: can't do magic deserialize on %s parameter %s of type %q", g.Name(), c.Type(), p.Name(), p.Type())
			}
		}
	}
	return nil
}

func (g *GameWorldClass) emitCreationDecoder(w *emit.Writer) {
	w.Line("while(entriesleft > 0){")
	emitTypeDecode(w, `LOG_ERROR("GameWorld: entity decode: packet data ended too soon");`)

	helpers := 0
	for _, c := range g.components {
		if !c.IsSynchronized() {
			continue
		}

		w.Linef("case static_cast<int>(%s::TYPE):", c.Type())
		w.Line("{")

		for _, p := range wireParameters(c) {
			local := p.Ident().Param()
			w.Line(p.Type() + " " + local + ";")
			w.Write(p.FormatDeserializer("data", local))
		}

		w.Line("if(!data){")
		w.Line(`    LOG_ERROR("GameWorld: entity decode: packet data ended too soon (no component parameters)");`)
		w.Line("    return;")
		w.Line("}")

		for _, p := range resolvedParameters(c) {
			resolver := g.resolvers[p.Type()]

			helpers++
			helper := "helper" + strconv.Itoa(helpers)

			w.Line("auto " + helper + " = GetComponentPtr_" + resolver.Component + "(id);")
			w.Line("if(!" + helper + "){")
			w.Line(`LOG_ERROR("GameWorld: entity decode: magic deserialize on type '` + p.Type() + `' failed,"`)
			w.Line(`"canceling entity creation");`)
			w.Line(`throw InvalidArgument("can't find related required deserialize resources");`)
			w.Line("}")
			w.Line(p.Type() + "& " + p.FormatForArgumentList() + " = " + resolver.expression(helper) + ";")
		}

		w.Line("Create_" + c.Type() + "(id" + c.Primary().FormatNamesForForward(true) + ");")
		w.Line("--entriesleft;")
		w.Line("decodedtype = -1;")
		w.Line("continue;")
		w.Line("}")
	}

	w.Line("default:")
	w.Line("return " + g.BaseClass() + "::_CreateComponentsFromCreationMessage(id, data, entriesleft, decodedtype);")
	w.Line("}")
	w.Line("}")
}
