package store

import (
	"strings"

	"gorm.io/gorm"
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

type ScenarioQueryFilter BaseQuerier

func NewScenarioQueryFilter() *ScenarioQueryFilter {
	return &ScenarioQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

// ByNameContains matches scenario names containing name, case insensitive.
func (f *ScenarioQueryFilter) ByNameContains(name string) *ScenarioQueryFilter {
	pattern := "%" + escapeLike(strings.ToLower(name)) + "%"
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("LOWER(scenario_name) LIKE ? ESCAPE '\\'", pattern)
	})
	return f
}

func (f *ScenarioQueryFilter) Profitable() *ScenarioQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("monthly_savings > 0")
	})
	return f
}

func (f *ScenarioQueryFilter) WithLimit(limit int) *ScenarioQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Limit(limit)
	})
	return f
}

func (f *ScenarioQueryFilter) WithOffset(offset int) *ScenarioQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Offset(offset)
	})
	return f
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
