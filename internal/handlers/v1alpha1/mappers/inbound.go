package mappers

import (
	"github.com/ap-automation/roi-planner/api/v1alpha1"
	"github.com/ap-automation/roi-planner/internal/service"
	"github.com/ap-automation/roi-planner/internal/simulation"
)

func SimulationInputFromApi(in v1alpha1.SimulationInput) simulation.Input {
	return simulation.Input{
		ScenarioName:              in.ScenarioName,
		MonthlyInvoiceVolume:      in.MonthlyInvoiceVolume,
		NumAPStaff:                in.NumApStaff,
		AvgHoursPerInvoice:        in.AvgHoursPerInvoice,
		HourlyWage:                in.HourlyWage,
		ErrorRateManual:           in.ErrorRateManual,
		ErrorCost:                 in.ErrorCost,
		TimeHorizonMonths:         in.TimeHorizonMonths,
		OneTimeImplementationCost: in.OneTimeImplementationCost,
		AutomatedCostPerInvoice:   in.AutomatedCostPerInvoice,
	}
}

// ScenarioCreateFromApi returns the input and, when the client sent metrics, the result it claims.
func ScenarioCreateFromApi(resource v1alpha1.ScenarioCreate) (simulation.Input, *simulation.Result) {
	in := SimulationInputFromApi(resource.SimulationInput)
	if resource.MonthlySavings == nil {
		return in, nil
	}

	return in, &simulation.Result{
		Metrics: simulation.Metrics{
			MonthlySavings: *resource.MonthlySavings,
			PaybackMonths:  resource.PaybackMonths,
			ROIPercentage:  resource.RoiPercentage,
		},
	}
}

func ReportRequestFromApi(resource v1alpha1.ReportRequest) service.ReportRequest {
	return service.ReportRequest{
		Email: resource.Email,
		Input: SimulationInputFromApi(resource.SimulationInput),
	}
}
