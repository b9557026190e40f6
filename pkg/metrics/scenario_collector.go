package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/ap-automation/roi-planner/internal/store/model"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const collectTimeout = 5 * time.Second

type ScenarioStatsProvider interface {
	Statistics(ctx context.Context) (model.ScenarioStats, error)
}

// scenarioStatsCollector reads the aggregates of the stored scenarios on every scrape.
type scenarioStatsCollector struct {
	provider        ScenarioStatsProvider
	totalScenarios  *prometheus.Desc
	totalProfitable *prometheus.Desc
	averageROI      *prometheus.Desc
}

func NewScenarioStatsCollector(p ScenarioStatsProvider) prometheus.Collector {
	fqName := func(name string) string {
		return fmt.Sprintf("%s_scenarios_%s", roiPlanner, name)
	}

	return &scenarioStatsCollector{
		provider: p,
		totalScenarios: prometheus.NewDesc(
			fqName("stored_total"),
			"Total number of stored scenarios.",
			nil,
			prometheus.Labels{},
		),
		totalProfitable: prometheus.NewDesc(
			fqName("profitable_total"),
			"Number of stored scenarios with positive monthly savings.",
			nil,
			prometheus.Labels{},
		),
		averageROI: prometheus.NewDesc(
			fqName("average_roi_percentage"),
			"Average ROI of the stored scenarios with a defined ROI.",
			nil,
			prometheus.Labels{},
		),
	}
}

func (c *scenarioStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalScenarios
	ch <- c.totalProfitable
	ch <- c.averageROI
}

func (c *scenarioStatsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	stats, err := c.provider.Statistics(ctx)
	if err != nil {
		zap.S().Named("scenario_collector").Errorf("failed to collect scenario statistics: %s", err)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.totalScenarios, prometheus.GaugeValue, float64(stats.Total))
	ch <- prometheus.MustNewConstMetric(c.totalProfitable, prometheus.GaugeValue, float64(stats.Profitable))
	if stats.AverageROI != nil {
		ch <- prometheus.MustNewConstMetric(c.averageROI, prometheus.GaugeValue, *stats.AverageROI)
	}
}
