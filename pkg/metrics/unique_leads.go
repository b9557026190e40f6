package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type uniqueLeads struct {
	counter    prometheus.Gauge
	leadsCache map[string]struct{}
	mu         sync.Mutex
}

const leadCountPerWeek = "leads_count_per_week"

var totalUniqueLeadsPerWeekMetric = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Subsystem: roiPlanner,
		Name:      leadCountPerWeek,
		Help:      "number of distinct report request emails in the current week",
	},
)

// UniqueLeadsPerWeek is reset by the metrics server every week.
var UniqueLeadsPerWeek = &uniqueLeads{
	counter:    totalUniqueLeadsPerWeekMetric,
	leadsCache: make(map[string]struct{}),
}

func (v *uniqueLeads) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.leadsCache = make(map[string]struct{})
	v.counter.Set(0)
}

// Add counts email once per week, case insensitive.
func (v *uniqueLeads) Add(email string) {
	key := strings.ToLower(strings.TrimSpace(email))

	v.mu.Lock()
	defer v.mu.Unlock()

	if _, exists := v.leadsCache[key]; exists {
		return
	}

	v.leadsCache[key] = struct{}{}
	v.counter.Inc()
}

func (v *uniqueLeads) Count() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.leadsCache)
}
