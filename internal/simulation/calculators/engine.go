package calculators

import "github.com/ap-automation/roi-planner/internal/simulation"

// NewEngine returns an engine with the manual labor, manual error and automation calculators
// registered in that order.
func NewEngine(opts ...AutomationOption) *simulation.Engine {
	e := simulation.NewEngine()
	e.Register(NewManualLabor())
	e.Register(NewManualError())
	e.Register(NewAutomation(opts...))
	return e
}
