package simulation

import "strings"

const DefaultScenarioName = "New Scenario"

// Input is the parameter set of one calculation.
type Input struct {
	ScenarioName              string  `json:"scenario_name" validate:"scenario_name,max=255"`
	MonthlyInvoiceVolume      float64 `json:"monthly_invoice_volume" validate:"finite,gte=0"`
	NumAPStaff                float64 `json:"num_ap_staff" validate:"finite,gte=0"`
	AvgHoursPerInvoice        float64 `json:"avg_hours_per_invoice" validate:"finite,gte=0"`
	HourlyWage                float64 `json:"hourly_wage" validate:"finite,gte=0"`
	ErrorRateManual           float64 `json:"error_rate_manual" validate:"finite,gte=0,lte=100"`
	ErrorCost                 float64 `json:"error_cost" validate:"finite,gte=0"`
	TimeHorizonMonths         int     `json:"time_horizon_months" validate:"min=1"`
	OneTimeImplementationCost float64 `json:"one_time_implementation_cost" validate:"finite,gte=0"`
	// AutomatedCostPerInvoice is the running cost of the automated process. When nil the
	// engine default applies.
	AutomatedCostPerInvoice *float64 `json:"automated_cost_per_invoice,omitempty" validate:"omitempty,finite,gte=0"`
}

// Name returns the trimmed scenario name or DefaultScenarioName when it is blank.
func (in Input) Name() string {
	if name := strings.TrimSpace(in.ScenarioName); name != "" {
		return name
	}
	return DefaultScenarioName
}

// CostKind groups cost lines when they are aggregated.
type CostKind string

const (
	CostKindLabor      CostKind = "labor"
	CostKindError      CostKind = "error"
	CostKindAutomation CostKind = "automation"
)

// Wire names of the Input fields, as reported in ErrInvalidInput.
const (
	FieldMonthlyInvoiceVolume      = "monthly_invoice_volume"
	FieldAvgHoursPerInvoice        = "avg_hours_per_invoice"
	FieldHourlyWage                = "hourly_wage"
	FieldErrorRateManual           = "error_rate_manual"
	FieldErrorCost                 = "error_cost"
	FieldTimeHorizonMonths         = "time_horizon_months"
	FieldOneTimeImplementationCost = "one_time_implementation_cost"
	FieldAutomatedCostPerInvoice   = "automated_cost_per_invoice"
)

// Calculator computes one monthly cost line of the simulation.
type Calculator interface {
	// Name is the unique key of the calculator in the engine.
	Name() string
	Kind() CostKind
	// Fields lists the Input fields the cost line is derived from.
	Fields() []string
	Calculate(in Input) (CostLine, error)
}

// CostLine is the monthly cost computed by a Calculator.
type CostLine struct {
	Name    string   `json:"name"`
	Kind    CostKind `json:"kind"`
	Monthly float64  `json:"monthly"`
	Reason  string   `json:"reason"`
}

// Metrics are the headline figures of a simulation. PaybackMonths and ROIPercentage are
// nil when the metric is undefined for the input.
type Metrics struct {
	MonthlySavings float64  `json:"monthly_savings"`
	PaybackMonths  *float64 `json:"payback_months"`
	ROIPercentage  *float64 `json:"roi_percentage"`
}

func (m Metrics) Equal(o Metrics) bool {
	return m.MonthlySavings == o.MonthlySavings &&
		equalPtr(m.PaybackMonths, o.PaybackMonths) &&
		equalPtr(m.ROIPercentage, o.ROIPercentage)
}

func equalPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Result is the rounded output of Engine.Compute.
type Result struct {
	Metrics
	ManualLaborCost float64    `json:"manual_labor_cost"`
	ManualErrorCost float64    `json:"manual_error_cost"`
	TotalManualCost float64    `json:"total_manual_cost"`
	AutomatedCost   float64    `json:"automated_cost"`
	TotalBenefit    float64    `json:"total_benefit"`
	NetBenefit      float64    `json:"net_benefit"`
	Breakdown       []CostLine `json:"breakdown"`
}

const (
	MetricPaybackMonths = "payback_months"
	MetricROIPercentage = "roi_percentage"
)

// Undefined lists the metrics that have no value for this result.
func (r Result) Undefined() []string {
	undefined := []string{}
	if r.PaybackMonths == nil {
		undefined = append(undefined, MetricPaybackMonths)
	}
	if r.ROIPercentage == nil {
		undefined = append(undefined, MetricROIPercentage)
	}
	return undefined
}

// Payback returns *ErrUndefinedMetric when monthly savings are not positive.
func (r Result) Payback() (float64, error) {
	if r.PaybackMonths == nil {
		return 0, NewErrUndefinedMetric(MetricPaybackMonths, "monthly savings are not positive")
	}
	return *r.PaybackMonths, nil
}

// ROI returns *ErrUndefinedMetric when the implementation cost is zero.
func (r Result) ROI() (float64, error) {
	if r.ROIPercentage == nil {
		return 0, NewErrUndefinedMetric(MetricROIPercentage, "implementation cost is zero")
	}
	return *r.ROIPercentage, nil
}
