package v1alpha1

import (
	"time"

	"github.com/google/uuid"
)

// SimulationInput defines model for SimulationInput.
type SimulationInput struct {
	ScenarioName              string   `json:"scenario_name,omitempty"`
	MonthlyInvoiceVolume      float64  `json:"monthly_invoice_volume"`
	NumApStaff                float64  `json:"num_ap_staff"`
	AvgHoursPerInvoice        float64  `json:"avg_hours_per_invoice"`
	HourlyWage                float64  `json:"hourly_wage"`
	ErrorRateManual           float64  `json:"error_rate_manual"`
	ErrorCost                 float64  `json:"error_cost"`
	TimeHorizonMonths         int      `json:"time_horizon_months"`
	OneTimeImplementationCost float64  `json:"one_time_implementation_cost"`
	AutomatedCostPerInvoice   *float64 `json:"automated_cost_per_invoice,omitempty"`
}

// CostLine defines model for CostLine.
type CostLine struct {
	Name    string  `json:"name"`
	Kind    string  `json:"kind"`
	Monthly float64 `json:"monthly"`
	Reason  string  `json:"reason"`
}

// SimulationResult defines model for SimulationResult.
// PaybackMonths and RoiPercentage are null when undefined.
type SimulationResult struct {
	MonthlySavings  float64    `json:"monthly_savings"`
	PaybackMonths   *float64   `json:"payback_months"`
	RoiPercentage   *float64   `json:"roi_percentage"`
	ManualLaborCost float64    `json:"manual_labor_cost"`
	ManualErrorCost float64    `json:"manual_error_cost"`
	TotalManualCost float64    `json:"total_manual_cost"`
	AutomatedCost   float64    `json:"automated_cost"`
	TotalBenefit    float64    `json:"total_benefit"`
	NetBenefit      float64    `json:"net_benefit"`
	Undefined       []string   `json:"undefined"`
	Breakdown       []CostLine `json:"breakdown"`
}

// ScenarioCreate defines model for ScenarioCreate.
// The metric fields are optional and only honored when they match the computed ones.
type ScenarioCreate struct {
	SimulationInput
	MonthlySavings *float64 `json:"monthly_savings,omitempty"`
	PaybackMonths  *float64 `json:"payback_months,omitempty"`
	RoiPercentage  *float64 `json:"roi_percentage,omitempty"`
}

// Scenario defines model for Scenario.
type Scenario struct {
	Id        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	SimulationInput
	SimulationResult
}

// ScenarioSummary defines model for ScenarioSummary.
type ScenarioSummary struct {
	Id             uuid.UUID `json:"id"`
	ScenarioName   string    `json:"scenario_name"`
	MonthlySavings float64   `json:"monthly_savings"`
	RoiPercentage  *float64  `json:"roi_percentage"`
	CreatedAt      time.Time `json:"created_at"`
}

// ScenarioList defines model for ScenarioList.
type ScenarioList = []ScenarioSummary

// ReportRequest defines model for ReportRequest.
type ReportRequest struct {
	SimulationInput
	Email string `json:"email"`
}

// Status defines model for Status.
type Status struct {
	Message string `json:"message"`
}

// Error defines model for Error.
type Error struct {
	Message   string   `json:"message"`
	Fields    []string `json:"fields,omitempty"`
	RequestId *string  `json:"request_id,omitempty"`
}

// Output formats understood by the export endpoint.
const (
	ExportFormatXlsx = "xlsx"
	ExportFormatCsv  = "csv"
)
