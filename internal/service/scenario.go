package service

import (
	"context"
	"errors"
	"time"

	"github.com/ap-automation/roi-planner/internal/simulation"
	"github.com/ap-automation/roi-planner/internal/store"
	"github.com/ap-automation/roi-planner/internal/store/model"
	"github.com/ap-automation/roi-planner/pkg/log"
	"github.com/ap-automation/roi-planner/pkg/metrics"
	"github.com/google/uuid"
)

// maxIDAttempts bounds the retries when the id generator returns an id already stored.
const maxIDAttempts = 3

type ScenarioFilter struct {
	Name           string
	ProfitableOnly bool
	Limit          int
	Offset         int
}

// ScenarioService saves simulations as scenarios and reads them back. Stored metrics are
// never recomputed.
type ScenarioService struct {
	store  store.Store
	engine *simulation.Engine
	newID  func() uuid.UUID
	now    func() time.Time
	logger *log.StructuredLogger
}

type ScenarioServiceOption func(*ScenarioService)

func WithIDGenerator(fn func() uuid.UUID) ScenarioServiceOption {
	return func(s *ScenarioService) {
		s.newID = fn
	}
}

func WithClock(fn func() time.Time) ScenarioServiceOption {
	return func(s *ScenarioService) {
		s.now = fn
	}
}

func NewScenarioService(store store.Store, engine *simulation.Engine, opts ...ScenarioServiceOption) *ScenarioService {
	s := &ScenarioService{
		store:  store,
		engine: engine,
		newID:  uuid.New,
		now:    time.Now,
		logger: log.NewDebugLogger("scenario_service"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Save computes the metrics of in and stores them with in. A precomputed result is only a hint:
// when its metrics differ from the engine output the engine output is stored.
func (s *ScenarioService) Save(ctx context.Context, in simulation.Input, precomputed *simulation.Result) (*model.Scenario, error) {
	tracer := s.logger.WithContext(ctx).Operation("save_scenario").
		WithString("scenario_name", in.Name()).
		WithBool("precomputed", precomputed != nil).
		Build()

	res, err := s.engine.Compute(in)
	if err != nil {
		tracer.Error(err).Log()
		return nil, err
	}

	if precomputed != nil && !precomputed.Metrics.Equal(res.Metrics) {
		tracer.Step("precomputed_result_mismatch").
			WithFloat("precomputed_monthly_savings", precomputed.MonthlySavings).
			WithFloat("monthly_savings", res.MonthlySavings).
			Log()
	}

	createdAt := s.now().UTC().Truncate(time.Microsecond)

	for attempt := 1; ; attempt++ {
		scenario := model.NewScenario(s.newID(), createdAt, in, res)

		created, err := s.create(ctx, scenario)
		if err == nil {
			metrics.IncreaseScenariosSavedMetric()
			tracer.Success().WithUUID("scenario_id", created.ID).Log()
			return created, nil
		}

		if errors.Is(err, store.ErrDuplicateKey) && attempt < maxIDAttempts {
			tracer.Step("duplicate_id").WithUUID("scenario_id", scenario.ID).WithInt("attempt", attempt).Log()
			continue
		}

		tracer.Error(err).Log()
		return nil, NewErrBackendUnavailable("save scenario", err)
	}
}

// create stores scenario in a transaction of its own, so a rejected attempt leaves nothing
// behind and the cache only ever sees committed rows.
func (s *ScenarioService) create(ctx context.Context, scenario model.Scenario) (*model.Scenario, error) {
	ctx, err := s.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}

	created, err := s.store.Scenario().Create(ctx, scenario)
	if err != nil {
		_, _ = store.Rollback(ctx)
		return nil, err
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// List returns the summaries in insertion order. The slice is empty, not nil, when no
// scenario matches.
func (s *ScenarioService) List(ctx context.Context, filter *ScenarioFilter) ([]model.ScenarioSummary, error) {
	tracer := s.logger.WithContext(ctx).Operation("list_scenarios").Build()

	qf := store.NewScenarioQueryFilter()
	if filter != nil {
		if filter.Name != "" {
			qf = qf.ByNameContains(filter.Name)
		}
		if filter.ProfitableOnly {
			qf = qf.Profitable()
		}
		if filter.Limit > 0 {
			qf = qf.WithLimit(filter.Limit)
		}
		if filter.Offset > 0 {
			qf = qf.WithOffset(filter.Offset)
		}
	}

	scenarios, err := s.store.Scenario().List(ctx, qf)
	if err != nil {
		tracer.Error(err).Log()
		return nil, NewErrBackendUnavailable("list scenarios", err)
	}

	summaries := make([]model.ScenarioSummary, 0, len(scenarios))
	for _, sc := range scenarios {
		summaries = append(summaries, sc.Summary())
	}

	tracer.Success().WithInt("count", len(summaries)).Log()
	return summaries, nil
}

func (s *ScenarioService) Get(ctx context.Context, id uuid.UUID) (*model.Scenario, error) {
	tracer := s.logger.WithContext(ctx).Operation("get_scenario").
		WithUUID("scenario_id", id).
		Build()

	scenario, err := s.store.Scenario().Get(ctx, id)
	if err != nil {
		tracer.Error(err).Log()
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrScenarioNotFound(id)
		}
		return nil, NewErrBackendUnavailable("get scenario", err)
	}

	tracer.Success().Log()
	return scenario, nil
}

// Ping reports whether the store is reachable.
func (s *ScenarioService) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return NewErrBackendUnavailable("ping", err)
	}
	return nil
}

// Statistics aggregates the stored scenarios for the metrics collector.
func (s *ScenarioService) Statistics(ctx context.Context) (model.ScenarioStats, error) {
	stats, err := s.store.Scenario().Statistics(ctx)
	if err != nil {
		return model.ScenarioStats{}, NewErrBackendUnavailable("scenario statistics", err)
	}
	return stats, nil
}
