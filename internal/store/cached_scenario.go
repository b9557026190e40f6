package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ap-automation/roi-planner/internal/store/model"
	"github.com/ap-automation/roi-planner/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	scenarioKeyPrefix = "roi-planner:scenario:"
	scenarioCacheTTL  = 24 * time.Hour
)

// CachedScenarioStore is a wrapper around a Scenario store which caches Get by id.
// Scenarios are never updated so entries are never invalidated. Cache failures fall back to
// the delegate.
type CachedScenarioStore struct {
	delegate Scenario
	cache    Cache
}

var _ Scenario = (*CachedScenarioStore)(nil)

func NewCachedScenarioStore(delegate Scenario, cache Cache) Scenario {
	return &CachedScenarioStore{
		delegate: delegate,
		cache:    cache,
	}
}

func (c *CachedScenarioStore) List(ctx context.Context, filter *ScenarioQueryFilter) (model.ScenarioList, error) {
	return c.delegate.List(ctx, filter)
}

func (c *CachedScenarioStore) Statistics(ctx context.Context) (model.ScenarioStats, error) {
	return c.delegate.Statistics(ctx)
}

// Create writes through. Inside a transaction the entry is published once the row is committed.
func (c *CachedScenarioStore) Create(ctx context.Context, scenario model.Scenario) (*model.Scenario, error) {
	created, err := c.delegate.Create(ctx, scenario)
	if err != nil {
		return nil, err
	}
	AfterCommit(ctx, func(ctx context.Context) {
		c.put(ctx, created)
	})
	return created, nil
}

func (c *CachedScenarioStore) Get(ctx context.Context, id uuid.UUID) (*model.Scenario, error) {
	data, err := c.cache.Get(ctx, scenarioKey(id))
	switch {
	case err == nil:
		var scenario model.Scenario
		if uerr := json.Unmarshal(data, &scenario); uerr == nil {
			metrics.IncreaseScenarioCacheMetric(metrics.CacheHit)
			return &scenario, nil
		}
		zap.S().Named("scenario_cache").Warnw("dropping unreadable cache entry", "id", id)
	case !errors.Is(err, ErrCacheMiss):
		zap.S().Named("scenario_cache").Warnw("cache read failed", "id", id, "error", err)
	}

	metrics.IncreaseScenarioCacheMetric(metrics.CacheMiss)
	scenario, err := c.delegate.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.put(ctx, scenario)
	return scenario, nil
}

func (c *CachedScenarioStore) put(ctx context.Context, scenario *model.Scenario) {
	data, err := json.Marshal(scenario)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, scenarioKey(scenario.ID), data, scenarioCacheTTL); err != nil {
		zap.S().Named("scenario_cache").Warnw("cache write failed", "id", scenario.ID, "error", err)
	}
}

func scenarioKey(id uuid.UUID) string {
	return scenarioKeyPrefix + id.String()
}
