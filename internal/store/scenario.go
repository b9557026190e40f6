package store

import (
	"context"
	"errors"

	"github.com/ap-automation/roi-planner/internal/store/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Scenario interface {
	List(ctx context.Context, filter *ScenarioQueryFilter) (model.ScenarioList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Scenario, error)
	Create(ctx context.Context, scenario model.Scenario) (*model.Scenario, error)
	Statistics(ctx context.Context) (model.ScenarioStats, error)
}

type ScenarioStore struct {
	db *gorm.DB
}

// Make sure we conform to Scenario interface
var _ Scenario = (*ScenarioStore)(nil)

func NewScenarioStore(db *gorm.DB) Scenario {
	return &ScenarioStore{db: db}
}

// List returns scenarios in insertion order, oldest first.
func (s *ScenarioStore) List(ctx context.Context, filter *ScenarioQueryFilter) (model.ScenarioList, error) {
	scenarios := model.ScenarioList{}
	tx := s.getDB(ctx).Model(&scenarios).Order("seq ASC")

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	if result := tx.Find(&scenarios); result.Error != nil {
		return nil, result.Error
	}
	return scenarios, nil
}

func (s *ScenarioStore) Get(ctx context.Context, id uuid.UUID) (*model.Scenario, error) {
	var scenario model.Scenario
	result := s.getDB(ctx).First(&scenario, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &scenario, nil
}

// Create inserts the scenario as is. The caller sets ID and CreatedAt.
func (s *ScenarioStore) Create(ctx context.Context, scenario model.Scenario) (*model.Scenario, error) {
	scenario.Seq = 0
	result := s.getDB(ctx).Create(&scenario)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	return &scenario, nil
}

func (s *ScenarioStore) Statistics(ctx context.Context) (model.ScenarioStats, error) {
	var row struct {
		Total      int64
		Profitable int64
		AverageROI *float64
	}

	result := s.getDB(ctx).Model(&model.Scenario{}).
		Select("COUNT(*) AS total, " +
			"COALESCE(SUM(CASE WHEN monthly_savings > 0 THEN 1 ELSE 0 END), 0) AS profitable, " +
			"AVG(roi_percentage) AS average_roi").
		Scan(&row)
	if result.Error != nil {
		return model.ScenarioStats{}, result.Error
	}

	return model.ScenarioStats{
		Total:      row.Total,
		Profitable: row.Profitable,
		AverageROI: row.AverageROI,
	}, nil
}

func (s *ScenarioStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db.WithContext(ctx)
}
