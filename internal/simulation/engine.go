package simulation

import (
	"errors"
	"fmt"
	"math"

	"github.com/ap-automation/roi-planner/internal/validator"
)

// Engine orchestrates Calculator objects and aggregates their cost lines.
type Engine struct {
	calculators []Calculator
	validator   *validator.Validator
}

// NewEngine creates a new Engine with no calculators registered.
func NewEngine() *Engine {
	return &Engine{
		calculators: make([]Calculator, 0),
		validator:   validator.NewValidator().Register(validator.NewSimulationValidationRules()...),
	}
}

// Register adds a Calculator to the engine. Cost lines are reported in registration order.
// Register panics if a calculator with the same Name() is already registered.
// Calculators must be registered before the engine is shared between goroutines.
func (e *Engine) Register(c Calculator) {
	for _, existing := range e.calculators {
		if existing.Name() == c.Name() {
			panic(fmt.Sprintf("simulation: calculator %q already registered", c.Name()))
		}
	}
	e.calculators = append(e.calculators, c)
}

// Validate returns *ErrInvalidInput when a field of in is out of range.
func (e *Engine) Validate(in Input) error {
	err := e.validator.Struct(in)
	if err == nil {
		return nil
	}

	var fe *validator.FieldErrors
	if errors.As(err, &fe) {
		return NewErrInvalidInput(fe.Fields, err.Error())
	}
	return NewErrInvalidInput([]string{"input"}, err.Error())
}

// Compute runs every calculator against in and derives the simulation metrics.
// Rounding is applied once, when the Result is assembled.
func (e *Engine) Compute(in Input) (Result, error) {
	if err := e.Validate(in); err != nil {
		return Result{}, err
	}

	var (
		labor, errCost, automated float64
		lines                     = make([]CostLine, 0, len(e.calculators))
	)

	for _, calc := range e.calculators {
		line, err := calc.Calculate(in)
		if err != nil {
			return Result{}, fmt.Errorf("calculator %s: %w", calc.Name(), err)
		}
		if !isFinite(line.Monthly) {
			return Result{}, NewErrInvalidInput(calc.Fields(), fmt.Sprintf("%s cost is out of range", calc.Name()))
		}

		line.Name = calc.Name()
		line.Kind = calc.Kind()
		switch line.Kind {
		case CostKindLabor:
			labor += line.Monthly
		case CostKindError:
			errCost += line.Monthly
		case CostKindAutomation:
			automated += line.Monthly
		default:
			return Result{}, fmt.Errorf("calculator %s: unknown cost kind %q", calc.Name(), line.Kind)
		}
		lines = append(lines, line)
	}

	totalManual := labor + errCost
	savings := totalManual - automated
	totalBenefit := savings * float64(in.TimeHorizonMonths)
	netBenefit := totalBenefit - in.OneTimeImplementationCost

	costFields := e.costFields()
	if !isFinite(totalManual, savings) {
		return Result{}, NewErrInvalidInput(costFields, "monthly costs are out of range")
	}
	benefitFields := mergeFields(costFields, []string{FieldTimeHorizonMonths})
	if !isFinite(totalBenefit) {
		return Result{}, NewErrInvalidInput(benefitFields, "total benefit is out of range")
	}
	netFields := mergeFields(benefitFields, []string{FieldOneTimeImplementationCost})
	if !isFinite(netBenefit) {
		return Result{}, NewErrInvalidInput(netFields, "net benefit is out of range")
	}

	res := Result{
		Metrics: Metrics{
			MonthlySavings: round(savings, currencyPlaces),
		},
		ManualLaborCost: round(labor, currencyPlaces),
		ManualErrorCost: round(errCost, currencyPlaces),
		TotalManualCost: round(totalManual, currencyPlaces),
		AutomatedCost:   round(automated, currencyPlaces),
		TotalBenefit:    round(totalBenefit, currencyPlaces),
		NetBenefit:      round(netBenefit, currencyPlaces),
		Breakdown:       make([]CostLine, 0, len(lines)),
	}

	for _, line := range lines {
		line.Monthly = round(line.Monthly, currencyPlaces)
		res.Breakdown = append(res.Breakdown, line)
	}

	if savings > 0 {
		payback := in.OneTimeImplementationCost / savings
		if !isFinite(payback) {
			return Result{}, NewErrInvalidInput(mergeFields(costFields, []string{FieldOneTimeImplementationCost}), "payback period is out of range")
		}
		res.PaybackMonths = roundPtr(payback, monthsPlaces)
	}

	if in.OneTimeImplementationCost > 0 {
		roi := netBenefit / in.OneTimeImplementationCost * 100
		if !isFinite(roi) {
			return Result{}, NewErrInvalidInput(netFields, "roi is out of range")
		}
		res.ROIPercentage = roundPtr(roi, percentagePlaces)
	}

	return res, nil
}

// costFields lists the input fields behind the monthly cost lines, in registration order.
func (e *Engine) costFields() []string {
	var fields []string
	for _, calc := range e.calculators {
		fields = mergeFields(fields, calc.Fields())
	}
	return fields
}

func mergeFields(a, b []string) []string {
	res := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, f := range list {
			if _, ok := seen[f]; !ok {
				seen[f] = struct{}{}
				res = append(res, f)
			}
		}
	}
	return res
}

func isFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
