package model

import (
	"encoding/json"
	"time"

	"github.com/ap-automation/roi-planner/internal/simulation"
	"github.com/google/uuid"
)

// Scenario is a saved simulation: the input as it was at save time and the metrics the engine
// computed for it. Rows are never updated.
type Scenario struct {
	Seq       uint64    `gorm:"primaryKey;autoIncrement;column:seq"`
	ID        uuid.UUID `gorm:"column:id;type:VARCHAR(36);not null;uniqueIndex:scenarios_id_idx"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime:false"`

	ScenarioName              string   `gorm:"column:scenario_name;type:VARCHAR(255);not null"`
	MonthlyInvoiceVolume      float64  `gorm:"column:monthly_invoice_volume;not null"`
	NumAPStaff                float64  `gorm:"column:num_ap_staff;not null"`
	AvgHoursPerInvoice        float64  `gorm:"column:avg_hours_per_invoice;not null"`
	HourlyWage                float64  `gorm:"column:hourly_wage;not null"`
	ErrorRateManual           float64  `gorm:"column:error_rate_manual;not null"`
	ErrorCost                 float64  `gorm:"column:error_cost;not null"`
	TimeHorizonMonths         int      `gorm:"column:time_horizon_months;not null"`
	OneTimeImplementationCost float64  `gorm:"column:one_time_implementation_cost;not null"`
	AutomatedCostPerInvoice   *float64 `gorm:"column:automated_cost_per_invoice"`

	MonthlySavings  float64                           `gorm:"column:monthly_savings;not null"`
	PaybackMonths   *float64                          `gorm:"column:payback_months"`
	ROIPercentage   *float64                          `gorm:"column:roi_percentage"`
	ManualLaborCost float64                           `gorm:"column:manual_labor_cost;not null"`
	ManualErrorCost float64                           `gorm:"column:manual_error_cost;not null"`
	TotalManualCost float64                           `gorm:"column:total_manual_cost;not null"`
	AutomatedCost   float64                           `gorm:"column:automated_cost;not null"`
	TotalBenefit    float64                           `gorm:"column:total_benefit;not null"`
	NetBenefit      float64                           `gorm:"column:net_benefit;not null"`
	Breakdown       *JSONField[[]simulation.CostLine] `gorm:"column:breakdown;type:TEXT;not null"`
}

func (Scenario) TableName() string {
	return "scenarios"
}

// NewScenario merges an input and its result into a record. The input name is normalized.
func NewScenario(id uuid.UUID, createdAt time.Time, in simulation.Input, res simulation.Result) Scenario {
	breakdown := make([]simulation.CostLine, len(res.Breakdown))
	copy(breakdown, res.Breakdown)

	return Scenario{
		ID:                        id,
		CreatedAt:                 createdAt,
		ScenarioName:              in.Name(),
		MonthlyInvoiceVolume:      in.MonthlyInvoiceVolume,
		NumAPStaff:                in.NumAPStaff,
		AvgHoursPerInvoice:        in.AvgHoursPerInvoice,
		HourlyWage:                in.HourlyWage,
		ErrorRateManual:           in.ErrorRateManual,
		ErrorCost:                 in.ErrorCost,
		TimeHorizonMonths:         in.TimeHorizonMonths,
		OneTimeImplementationCost: in.OneTimeImplementationCost,
		AutomatedCostPerInvoice:   copyPtr(in.AutomatedCostPerInvoice),
		MonthlySavings:            res.MonthlySavings,
		PaybackMonths:             copyPtr(res.PaybackMonths),
		ROIPercentage:             copyPtr(res.ROIPercentage),
		ManualLaborCost:           res.ManualLaborCost,
		ManualErrorCost:           res.ManualErrorCost,
		TotalManualCost:           res.TotalManualCost,
		AutomatedCost:             res.AutomatedCost,
		TotalBenefit:              res.TotalBenefit,
		NetBenefit:                res.NetBenefit,
		Breakdown:                 MakeJSONField(breakdown),
	}
}

func (s Scenario) Input() simulation.Input {
	return simulation.Input{
		ScenarioName:              s.ScenarioName,
		MonthlyInvoiceVolume:      s.MonthlyInvoiceVolume,
		NumAPStaff:                s.NumAPStaff,
		AvgHoursPerInvoice:        s.AvgHoursPerInvoice,
		HourlyWage:                s.HourlyWage,
		ErrorRateManual:           s.ErrorRateManual,
		ErrorCost:                 s.ErrorCost,
		TimeHorizonMonths:         s.TimeHorizonMonths,
		OneTimeImplementationCost: s.OneTimeImplementationCost,
		AutomatedCostPerInvoice:   copyPtr(s.AutomatedCostPerInvoice),
	}
}

func (s Scenario) Result() simulation.Result {
	breakdown := []simulation.CostLine{}
	if s.Breakdown != nil {
		breakdown = append(breakdown, s.Breakdown.Data...)
	}

	return simulation.Result{
		Metrics: simulation.Metrics{
			MonthlySavings: s.MonthlySavings,
			PaybackMonths:  copyPtr(s.PaybackMonths),
			ROIPercentage:  copyPtr(s.ROIPercentage),
		},
		ManualLaborCost: s.ManualLaborCost,
		ManualErrorCost: s.ManualErrorCost,
		TotalManualCost: s.TotalManualCost,
		AutomatedCost:   s.AutomatedCost,
		TotalBenefit:    s.TotalBenefit,
		NetBenefit:      s.NetBenefit,
		Breakdown:       breakdown,
	}
}

func (s Scenario) Summary() ScenarioSummary {
	return ScenarioSummary{
		ID:             s.ID,
		ScenarioName:   s.ScenarioName,
		MonthlySavings: s.MonthlySavings,
		ROIPercentage:  copyPtr(s.ROIPercentage),
		CreatedAt:      s.CreatedAt,
	}
}

func (s Scenario) String() string {
	val, _ := json.Marshal(s)
	return string(val)
}

type ScenarioList []Scenario

// ScenarioSummary is the list view of a Scenario.
type ScenarioSummary struct {
	ID             uuid.UUID
	ScenarioName   string
	MonthlySavings float64
	ROIPercentage  *float64
	CreatedAt      time.Time
}

// ScenarioStats aggregates the stored scenarios.
type ScenarioStats struct {
	Total      int64
	Profitable int64
	AverageROI *float64
}

func copyPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
