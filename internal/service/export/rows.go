package export

import (
	"strconv"
	"time"

	"github.com/ap-automation/roi-planner/internal/service/export/types"
	"github.com/ap-automation/roi-planner/internal/store/model"
)

// NewExportData flattens a scenario into the rows every renderer writes.
func NewExportData(s *model.Scenario) *types.ExportData {
	in := s.Input()
	res := s.Result()

	automated := types.NotAvailable
	if in.AutomatedCostPerInvoice != nil {
		automated = formatFloat(*in.AutomatedCostPerInvoice)
	}

	inputs := []types.Row{
		{Label: "Scenario ID", Value: s.ID.String()},
		{Label: "Scenario Name", Value: in.ScenarioName},
		{Label: "Created At", Value: s.CreatedAt.UTC().Format(time.RFC3339)},
		{Label: "Monthly Invoice Volume", Value: formatFloat(in.MonthlyInvoiceVolume)},
		{Label: "AP Staff", Value: formatFloat(in.NumAPStaff)},
		{Label: "Average Hours Per Invoice", Value: formatFloat(in.AvgHoursPerInvoice)},
		{Label: "Hourly Wage", Value: formatFloat(in.HourlyWage)},
		{Label: "Manual Error Rate (%)", Value: formatFloat(in.ErrorRateManual)},
		{Label: "Cost Per Error", Value: formatFloat(in.ErrorCost)},
		{Label: "Time Horizon (months)", Value: strconv.Itoa(in.TimeHorizonMonths)},
		{Label: "One-Time Implementation Cost", Value: formatFloat(in.OneTimeImplementationCost)},
		{Label: "Automated Cost Per Invoice", Value: automated},
	}

	results := []types.Row{
		{Label: "Monthly Savings", Value: formatFloat(res.MonthlySavings)},
		{Label: "Payback (months)", Value: formatOptional(res.PaybackMonths)},
		{Label: "ROI (%)", Value: formatOptional(res.ROIPercentage)},
		{Label: "Manual Labor Cost", Value: formatFloat(res.ManualLaborCost)},
		{Label: "Manual Error Cost", Value: formatFloat(res.ManualErrorCost)},
		{Label: "Total Manual Cost", Value: formatFloat(res.TotalManualCost)},
		{Label: "Automated Cost", Value: formatFloat(res.AutomatedCost)},
		{Label: "Total Benefit", Value: formatFloat(res.TotalBenefit)},
		{Label: "Net Benefit", Value: formatFloat(res.NetBenefit)},
	}

	return &types.ExportData{
		Scenario: s,
		Inputs:   inputs,
		Results:  results,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return types.NotAvailable
	}
	return formatFloat(*v)
}
