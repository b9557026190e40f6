package events

import (
	"time"

	"github.com/ap-automation/roi-planner/internal/simulation"
)

// LeadEvent is emitted when a visitor asks for the ROI report of a simulation.
type LeadEvent struct {
	Email        string            `json:"email"`
	ScenarioName string            `json:"scenario_name"`
	Input        simulation.Input  `json:"input"`
	Result       simulation.Result `json:"result"`
	RequestedAt  time.Time         `json:"requested_at"`
}
