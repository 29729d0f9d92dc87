package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	ReportsGenerated prometheus.Counter
	ReportFailures   prometheus.Counter
	RowsIngested     prometheus.Counter
	LLMRequestSec    prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	reportsGenerated := prometheus.NewCounter(prometheus.CounterOpts{Name: "salescope_reports_generated_total"})
	reportFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "salescope_report_failures_total"})
	rowsIngested := prometheus.NewCounter(prometheus.CounterOpts{Name: "salescope_rows_ingested_total"})
	llmRequestSec := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "salescope_llm_request_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(reportsGenerated, reportFailures, rowsIngested, llmRequestSec)
	return &Registry{
		reg:              r,
		ReportsGenerated: reportsGenerated,
		ReportFailures:   reportFailures,
		RowsIngested:     rowsIngested,
		LLMRequestSec:    llmRequestSec,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
