package store

import (
	"context"

	"gorm.io/gorm"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	Scenario() Scenario
	Ping(ctx context.Context) error
	Close() error
}

type DataStore struct {
	db       *gorm.DB
	scenario Scenario
}

type Option func(*DataStore)

// WithScenarioCache puts a read cache in front of the scenario store.
func WithScenarioCache(cache Cache) Option {
	return func(s *DataStore) {
		s.scenario = NewCachedScenarioStore(s.scenario, cache)
	}
}

func NewStore(db *gorm.DB, opts ...Option) Store {
	s := &DataStore{
		db:       db,
		scenario: NewScenarioStore(db),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) Scenario() Scenario {
	return s.scenario
}

func (s *DataStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
