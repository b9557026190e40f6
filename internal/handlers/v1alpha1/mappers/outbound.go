package mappers

import (
	"github.com/ap-automation/roi-planner/api/v1alpha1"
	"github.com/ap-automation/roi-planner/internal/simulation"
	"github.com/ap-automation/roi-planner/internal/store/model"
)

func SimulationInputToApi(in simulation.Input) v1alpha1.SimulationInput {
	return v1alpha1.SimulationInput{
		ScenarioName:              in.ScenarioName,
		MonthlyInvoiceVolume:      in.MonthlyInvoiceVolume,
		NumApStaff:                in.NumAPStaff,
		AvgHoursPerInvoice:        in.AvgHoursPerInvoice,
		HourlyWage:                in.HourlyWage,
		ErrorRateManual:           in.ErrorRateManual,
		ErrorCost:                 in.ErrorCost,
		TimeHorizonMonths:         in.TimeHorizonMonths,
		OneTimeImplementationCost: in.OneTimeImplementationCost,
		AutomatedCostPerInvoice:   in.AutomatedCostPerInvoice,
	}
}

func SimulationResultToApi(res simulation.Result) v1alpha1.SimulationResult {
	breakdown := make([]v1alpha1.CostLine, 0, len(res.Breakdown))
	for _, line := range res.Breakdown {
		breakdown = append(breakdown, v1alpha1.CostLine{
			Name:    line.Name,
			Kind:    string(line.Kind),
			Monthly: line.Monthly,
			Reason:  line.Reason,
		})
	}

	undefined := res.Undefined()
	if undefined == nil {
		undefined = []string{}
	}

	return v1alpha1.SimulationResult{
		MonthlySavings:  res.MonthlySavings,
		PaybackMonths:   res.PaybackMonths,
		RoiPercentage:   res.ROIPercentage,
		ManualLaborCost: res.ManualLaborCost,
		ManualErrorCost: res.ManualErrorCost,
		TotalManualCost: res.TotalManualCost,
		AutomatedCost:   res.AutomatedCost,
		TotalBenefit:    res.TotalBenefit,
		NetBenefit:      res.NetBenefit,
		Undefined:       undefined,
		Breakdown:       breakdown,
	}
}

func ScenarioToApi(s model.Scenario) v1alpha1.Scenario {
	return v1alpha1.Scenario{
		Id:               s.ID,
		CreatedAt:        s.CreatedAt,
		SimulationInput:  SimulationInputToApi(s.Input()),
		SimulationResult: SimulationResultToApi(s.Result()),
	}
}

func ScenarioSummaryToApi(s model.ScenarioSummary) v1alpha1.ScenarioSummary {
	return v1alpha1.ScenarioSummary{
		Id:             s.ID,
		ScenarioName:   s.ScenarioName,
		MonthlySavings: s.MonthlySavings,
		RoiPercentage:  s.ROIPercentage,
		CreatedAt:      s.CreatedAt,
	}
}

func ScenarioListToApi(summaries []model.ScenarioSummary) v1alpha1.ScenarioList {
	list := make(v1alpha1.ScenarioList, 0, len(summaries))
	for _, s := range summaries {
		list = append(list, ScenarioSummaryToApi(s))
	}
	return list
}
