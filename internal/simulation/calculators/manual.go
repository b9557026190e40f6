package calculators

import (
	"fmt"

	"github.com/ap-automation/roi-planner/internal/simulation"
)

const (
	ManualLaborName = "manual-labor"
	ManualErrorName = "manual-error"
)

var (
	_ simulation.Calculator = (*ManualLabor)(nil)
	_ simulation.Calculator = (*ManualError)(nil)
)

// ManualLabor prices the staff time spent processing invoices by hand.
type ManualLabor struct{}

func NewManualLabor() *ManualLabor { return &ManualLabor{} }

func (c *ManualLabor) Name() string { return ManualLaborName }

func (c *ManualLabor) Kind() simulation.CostKind { return simulation.CostKindLabor }

func (c *ManualLabor) Fields() []string {
	return []string{simulation.FieldMonthlyInvoiceVolume, simulation.FieldAvgHoursPerInvoice, simulation.FieldHourlyWage}
}

// Calculate returns volume * hours per invoice * hourly wage. Staff count does not change
// the total time spent, it only spreads it.
func (c *ManualLabor) Calculate(in simulation.Input) (simulation.CostLine, error) {
	return simulation.CostLine{
		Monthly: in.MonthlyInvoiceVolume * in.AvgHoursPerInvoice * in.HourlyWage,
		Reason: fmt.Sprintf("%g invoices @ %gh each x %g/h",
			in.MonthlyInvoiceVolume, in.AvgHoursPerInvoice, in.HourlyWage),
	}, nil
}

// ManualError prices the invoices that need rework because of manual errors.
type ManualError struct{}

func NewManualError() *ManualError { return &ManualError{} }

func (c *ManualError) Name() string { return ManualErrorName }

func (c *ManualError) Kind() simulation.CostKind { return simulation.CostKindError }

func (c *ManualError) Fields() []string {
	return []string{simulation.FieldMonthlyInvoiceVolume, simulation.FieldErrorRateManual, simulation.FieldErrorCost}
}

func (c *ManualError) Calculate(in simulation.Input) (simulation.CostLine, error) {
	return simulation.CostLine{
		Monthly: in.MonthlyInvoiceVolume * (in.ErrorRateManual / 100) * in.ErrorCost,
		Reason: fmt.Sprintf("%g invoices @ %g%% error rate x %g per error",
			in.MonthlyInvoiceVolume, in.ErrorRateManual, in.ErrorCost),
	}, nil
}
