package definitions

import (
	"github.com/leviathan-engine/filegen/internal/core/classes"
	"github.com/leviathan-engine/filegen/internal/core/model"
)

// PositionState is the interpolation snapshot of Position.
func PositionState() (*classes.ComponentState, error) {
	return classes.NewComponentState("PositionState", []classes.ClassOption{
		classes.WithMembers(
			model.NewVariable("_Position", "Float3"),
			model.NewVariable("_Orientation", "Float4"),
		),
	})
}

// ComponentStates builds the state class of every standard component that
// has one.
func ComponentStates() ([]*classes.ComponentState, error) {
	position, err := PositionState()
	if err != nil {
		return nil, err
	}
	return []*classes.ComponentState{position}, nil
}
