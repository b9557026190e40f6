package service

import (
	"context"

	"github.com/ap-automation/roi-planner/internal/simulation"
	"github.com/ap-automation/roi-planner/pkg/log"
	"github.com/ap-automation/roi-planner/pkg/metrics"
)

// SimulationService runs transient simulations. Nothing is persisted.
type SimulationService struct {
	engine *simulation.Engine
	logger *log.StructuredLogger
}

func NewSimulationService(engine *simulation.Engine) *SimulationService {
	return &SimulationService{
		engine: engine,
		logger: log.NewDebugLogger("simulation_service"),
	}
}

func (s *SimulationService) Simulate(ctx context.Context, in simulation.Input) (simulation.Result, error) {
	tracer := s.logger.WithContext(ctx).Operation("simulate").
		WithString("scenario_name", in.Name()).
		WithInt("time_horizon_months", in.TimeHorizonMonths).
		Build()

	res, err := s.engine.Compute(in)
	if err != nil {
		metrics.IncreaseSimulationsTotalMetric(metrics.OutcomeInvalid)
		tracer.Error(err).Log()
		return simulation.Result{}, err
	}

	metrics.IncreaseSimulationsTotalMetric(outcome(res))
	tracer.Success().
		WithFloat("monthly_savings", res.MonthlySavings).
		WithInt("undefined_metrics", len(res.Undefined())).
		Log()

	return res, nil
}

func outcome(res simulation.Result) string {
	if res.MonthlySavings > 0 {
		return metrics.OutcomeProfitable
	}
	return metrics.OutcomeUnprofitable
}
