package calculators

import (
	"fmt"

	"github.com/ap-automation/roi-planner/internal/simulation"
)

const (
	AutomationName = "automation"

	// DefaultAutomatedCostPerInvoice models full elimination of the manual cost.
	DefaultAutomatedCostPerInvoice = 0.0
)

var _ simulation.Calculator = (*Automation)(nil)

// Automation prices the running cost of the automated process.
type Automation struct {
	costPerInvoice float64
}

type AutomationOption func(*Automation)

// WithDefaultAutomatedCostPerInvoice sets the cost per invoice used when the input does not
// carry one.
func WithDefaultAutomatedCostPerInvoice(cost float64) AutomationOption {
	return func(a *Automation) {
		a.costPerInvoice = cost
	}
}

func NewAutomation(opts ...AutomationOption) *Automation {
	res := Automation{costPerInvoice: DefaultAutomatedCostPerInvoice}

	for _, opt := range opts {
		opt(&res)
	}

	return &res
}

func (c *Automation) Name() string { return AutomationName }

func (c *Automation) Kind() simulation.CostKind { return simulation.CostKindAutomation }

func (c *Automation) Fields() []string {
	return []string{simulation.FieldMonthlyInvoiceVolume, simulation.FieldAutomatedCostPerInvoice}
}

// Calculate returns volume * cost per invoice. The input cost per invoice takes precedence over
// the calculator default.
func (c *Automation) Calculate(in simulation.Input) (simulation.CostLine, error) {
	cost := c.costPerInvoice
	source := "default"
	if in.AutomatedCostPerInvoice != nil {
		cost = *in.AutomatedCostPerInvoice
		source = "input"
	}

	if cost < 0 {
		return simulation.CostLine{}, fmt.Errorf("automated cost per invoice must be non-negative")
	}

	return simulation.CostLine{
		Monthly: in.MonthlyInvoiceVolume * cost,
		Reason:  fmt.Sprintf("%g invoices @ %g each (%s)", in.MonthlyInvoiceVolume, cost, source),
	}, nil
}
