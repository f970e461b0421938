package planrun

import (
	"fmt"

	"github.com/simon-stahlberg/mimir-sub004/examples/blocksworld"
	"github.com/simon-stahlberg/mimir-sub004/examples/graphreach"
	"github.com/simon-stahlberg/mimir-sub004/examples/gripper"
	"github.com/simon-stahlberg/mimir-sub004/pkg/formalism"
)

// LoadInstance builds one of the bundled example domains/problems by name
// (PDDL parsing is out of scope, so every runnable problem ships in
// examples/).
func LoadInstance(name string) (*formalism.Domain, *formalism.Problem, error) {
	switch name {
	case "blocksworld":
		inst := blocksworld.Build([]string{"a", "b", "c", "d"})
		inst.SetGoalOn("a", "b")
		inst.SetGoalOn("b", "c")
		return inst.Domain, inst.Problem, nil
	case "gripper":
		inst := gripper.Build(
			[]string{"room-a", "room-b"},
			[]string{"ball1", "ball2", "ball3"},
			[]string{"left", "right"},
			map[string]string{"ball1": "room-a", "ball2": "room-a", "ball3": "room-a"},
			"room-a",
		)
		inst.SetGoalAtBall("ball1", "room-b")
		inst.SetGoalAtBall("ball2", "room-b")
		return inst.Domain, inst.Problem, nil
	case "graphreach":
		inst := graphreach.Build(
			[]string{"n1", "n2", "n3", "n4"},
			[][2]string{{"n1", "n2"}, {"n2", "n3"}, {"n3", "n4"}},
		)
		inst.SetGoalReachable("n1", "n4")
		return inst.Domain, inst.Problem, nil
	default:
		return nil, nil, fmt.Errorf("planrun: unknown example %q (want blocksworld, gripper or graphreach)", name)
	}
}
