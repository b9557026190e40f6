package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	roiPlanner = "roi_planner"

	simulationsTotal   = "simulations_total"
	scenariosSaved     = "scenarios_saved_total"
	leadEventsTotal    = "lead_events_total"
	scenarioCacheTotal = "scenario_cache_requests_total"

	// Labels
	outcomeLabel = "outcome"
	resultLabel  = "result"
)

const (
	OutcomeProfitable   = "profitable"
	OutcomeUnprofitable = "unprofitable"
	OutcomeInvalid      = "invalid"

	CacheHit  = "hit"
	CacheMiss = "miss"

	LeadAccepted = "accepted"
	LeadRejected = "rejected"
	LeadFailed   = "failed"
)

/**
* Metrics definition
**/
var simulationsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: roiPlanner,
		Name:      simulationsTotal,
		Help:      "number of simulations run partitioned by outcome",
	},
	[]string{outcomeLabel},
)

var scenariosSavedMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: roiPlanner,
		Name:      scenariosSaved,
		Help:      "number of scenarios saved",
	},
)

var leadEventsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: roiPlanner,
		Name:      leadEventsTotal,
		Help:      "number of report requests partitioned by delivery result",
	},
	[]string{resultLabel},
)

var scenarioCacheMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: roiPlanner,
		Name:      scenarioCacheTotal,
		Help:      "number of scenario cache lookups partitioned by result",
	},
	[]string{resultLabel},
)

func IncreaseSimulationsTotalMetric(outcome string) {
	simulationsTotalMetric.With(prometheus.Labels{outcomeLabel: outcome}).Inc()
}

func IncreaseScenariosSavedMetric() {
	scenariosSavedMetric.Inc()
}

func IncreaseLeadEventsTotalMetric(result string) {
	leadEventsTotalMetric.With(prometheus.Labels{resultLabel: result}).Inc()
}

func IncreaseScenarioCacheMetric(result string) {
	scenarioCacheMetric.With(prometheus.Labels{resultLabel: result}).Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(simulationsTotalMetric)
	prometheus.MustRegister(scenariosSavedMetric)
	prometheus.MustRegister(leadEventsTotalMetric)
	prometheus.MustRegister(scenarioCacheMetric)
	prometheus.MustRegister(totalUniqueLeadsPerWeekMetric)
}
