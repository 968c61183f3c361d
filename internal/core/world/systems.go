package world

import (
	"strings"

	"github.com/leviathan-engine/filegen/internal/core/emit"
	"github.com/leviathan-engine/filegen/internal/core/model"
	"github.com/leviathan-engine/filegen/pkg/sequence"
)

// Schedule returns the systems running in a phase, ascending by group. Systems
// of the same group keep their declaration order.
func Schedule(systems []*model.EntitySystem, phase func(*model.EntitySystem) *model.Phase) []*model.EntitySystem {
	return sequence.From(systems).
		Filter(func(s *model.EntitySystem) bool { return phase(s) != nil }).
		Sort(func(a, b *model.EntitySystem) bool { return phase(a).Group < phase(b).Group }).
		Collect()
}

func emitRuns(w *emit.Writer, systems []*model.EntitySystem, phase func(*model.EntitySystem) *model.Phase) {
	var group int
	for i, s := range Schedule(systems, phase) {
		p := phase(s)
		if i == 0 || p.Group != group {
			group = p.Group
			w.Linef("// Begin of group %d //", group)
		}
		w.Line(s.MemberName() + ".Run(*this" + p.FormatParameters() + ");")
	}
}

func (g *GameWorldClass) emitRenderSystems(w *emit.Writer, pass emit.Pass) {
	w.Method(pass, g.override("void", "RunFrameRenderSystems", "int tick, int timeintick"), func() {
		w.Line(g.BaseClass() + "::RunFrameRenderSystems(tick, timeintick);")
		w.Blank()
		w.Line(g.frameSystemRun)
		w.Blank()
		emitRuns(w, g.systems, (*model.EntitySystem).Render)
	})
}

func (g *GameWorldClass) emitTickSystems(w *emit.Writer, pass emit.Pass) {
	w.Method(pass, g.override("void", "_RunTickSystems", ""), func() {
		w.Line(g.BaseClass() + "::_RunTickSystems();")
		if g.preTickSetup != "" {
			w.Line(g.preTickSetup)
			w.Blank()
		}
		emitRuns(w, g.systems, (*model.EntitySystem).Tick)
	})
}

func joinPrefixed(prefix string, names []string, suffix string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = prefix + n + suffix
	}
	return out
}

// emitAddedAndDeleted hands every node system the added and removed lists of
// its components. Lists of components stored by an ancestor are declared once
// no matter how many systems use them.
func (g *GameWorldClass) emitAddedAndDeleted(w *emit.Writer, pass emit.Pass) {
	w.Method(pass, g.override("void", "HandleAddedAndDeleted", ""), func() {
		w.Line(g.BaseClass() + "::HandleAddedAndDeleted();")
		w.Blank()

		for _, c := range g.components {
			w.Line("const auto& added" + c.Type() + " = " + c.StorageName() + ".GetAdded();")
		}

		commented := false
		foreign := make(map[string]struct{})
		for _, s := range g.systems {
			for _, name := range s.NodeComponents() {
				if g.local.Has(name) {
					continue
				}
				if _, ok := foreign[name]; ok {
					continue
				}
				foreign[name] = struct{}{}

				if !commented {
					commented = true
					w.Blank()
					w.Line("// Component types of parent type")
				}
				w.Line("const auto& added" + name + " = Component" + name + ".GetAdded();")
				w.Line("const auto& removed" + name + " = Component" + name + ".GetRemoved();")
			}
		}

		w.Blank()
		w.Blank()
		w.Line("// Added")
		for _, s := range g.systems {
			if !s.UsesNodes() {
				continue
			}
			nodes := s.NodeComponents()
			w.Line("if(" + strings.Join(joinPrefixed("!added", nodes, ".empty()"), " || ") + "){")
			w.Line("    " + s.MemberName() + ".CreateNodes(")
			w.Line("        " + strings.Join(joinPrefixed("added", nodes, ""), ", ") + ",")
			w.Line("        " + strings.Join(joinPrefixed("Component", nodes, ""), ", ") + ");")
			w.Line("}")
		}

		w.Line("// Removed")
		for _, c := range g.components {
			w.Line("const auto& removed" + c.Type() + " = " + c.StorageName() + ".GetRemoved();")
		}
		for _, s := range g.systems {
			if !s.UsesNodes() {
				continue
			}
			nodes := s.NodeComponents()
			w.Line("if(" + strings.Join(joinPrefixed("!removed", nodes, ".empty()"), " || ") + "){")
			w.Line("    " + s.MemberName() + ".DestroyNodes(")
			w.Line("        " + strings.Join(joinPrefixed("removed", nodes, ""), ", ") + ");")
			w.Line("}")
		}
	})
}

func (g *GameWorldClass) emitClearAddedAndRemoved(w *emit.Writer, pass emit.Pass) {
	w.Method(pass, g.override("void", "ClearAddedAndRemoved", ""), func() {
		w.Line(g.BaseClass() + "::ClearAddedAndRemoved();")
		w.Blank()
		for _, c := range g.components {
			w.Line(c.StorageName() + ".ClearAdded();")
			w.Line(c.StorageName() + ".ClearRemoved();")
		}
	})
}

func (g *GameWorldClass) emitSystemLifecycle(w *emit.Writer, pass emit.Pass) {
	w.Method(pass, g.override("void", "_DoSystemsInit", ""), func() {
		w.Line(g.BaseClass() + "::_DoSystemsInit();")
		w.Line("// Call Init on all systems that need it //")
		for _, s := range g.systems {
			if args, ok := s.Init(); ok {
				w.Line(s.MemberName() + ".Init(" + model.FormatArguments(args) + ");")
			}
		}
	})

	w.Method(pass, g.override("void", "_DoSystemsRelease", ""), func() {
		w.Line(g.BaseClass() + "::_DoSystemsRelease();")
		w.Line("// Call Release on all systems that need it //")
		for _, s := range g.systems {
			if args, ok := s.Release(); ok {
				w.Line(s.MemberName() + ".Release(" + model.FormatArguments(args) + ");")
			}
		}
	})
}
