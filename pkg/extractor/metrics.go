package extractor

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	stageList = "list"
	stageTool = "tool"
)

// Metrics records the outcome of extraction passes.
type Metrics struct {
	documented prometheus.Gauge
	failures   *prometheus.CounterVec
}

// NewMetrics creates the extraction collectors and registers them with reg
// when it is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		documented: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mcp_docs_tools_documented",
			Help: "Number of tools documented by the last extraction pass.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mcp_docs_extraction_failures_total",
			Help: "Extraction failures by stage (list, tool).",
		}, []string{"stage"}),
	}
	if reg != nil {
		reg.MustRegister(m.documented, m.failures)
	}
	return m
}

func (m *Metrics) setDocumented(n int) {
	if m == nil {
		return
	}
	m.documented.Set(float64(n))
}

func (m *Metrics) failed(stage string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(stage).Inc()
}
