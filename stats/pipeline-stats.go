package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cevaris/ordered_map"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/relloyd/hptransform/logger"
)

const (
	MetricStatements   = "hptransform_statements_total"
	MetricJobs         = "hptransform_jobs_total"
	MetricJobDuration  = "hptransform_job_duration_seconds"
	MetricPollAttempts = "hptransform_poll_attempts_total"
)

// PipelineStats counts what a run did: statements executed or skipped, jobs run and backend polls.
// All methods are safe to call on a nil *PipelineStats, which counts nothing.
type PipelineStats struct {
	reg          *prometheus.Registry
	statements   *prometheus.CounterVec
	jobs         *prometheus.CounterVec
	jobDuration  *prometheus.HistogramVec
	pollAttempts prometheus.Counter
}

// NewPipelineStats registers the pipeline collectors in a new registry.
func NewPipelineStats() *PipelineStats {
	s := &PipelineStats{
		reg: prometheus.NewRegistry(),
		statements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricStatements,
			Help: "SQL statements processed, partitioned by what was done with them.",
		}, []string{"kind"}),
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricJobs,
			Help: "Writer and extractor jobs run, partitioned by component and final status.",
		}, []string{"component", "status"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricJobDuration,
			Help:    "Duration of writer and extractor jobs in seconds.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}, []string{"component"}),
		pollAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricPollAttempts,
			Help: "Status requests sent to the queue job backend.",
		}),
	}
	s.reg.MustRegister(s.statements, s.jobs, s.jobDuration, s.pollAttempts)
	return s
}

// AddStatement counts one statement of the given kind, e.g. "executable" or "empty".
func (s *PipelineStats) AddStatement(kind string) {
	if s == nil {
		return
	}
	s.statements.WithLabelValues(kind).Inc()
}

// AddJob counts a finished job and records how long it took.
func (s *PipelineStats) AddJob(component string, status string, d time.Duration) {
	if s == nil {
		return
	}
	s.jobs.WithLabelValues(component, status).Inc()
	s.jobDuration.WithLabelValues(component).Observe(d.Seconds())
}

// AddPollAttempt counts one job status request.
func (s *PipelineStats) AddPollAttempt() {
	if s == nil {
		return
	}
	s.pollAttempts.Inc()
}

// Summary returns a map of metric name, with label values appended, to value in the order the registry
// gathers them. Histograms are reported by their sample count.
func (s *PipelineStats) Summary() (*ordered_map.OrderedMap, error) {
	om := ordered_map.NewOrderedMap()
	if s == nil {
		return om, nil
	}
	families, err := s.reg.Gather()
	if err != nil {
		return nil, errors.Wrap(err, "error gathering pipeline stats")
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetValue())
			}
			key := mf.GetName()
			if len(labels) > 0 {
				key = fmt.Sprintf("%v{%v}", key, strings.Join(labels, ","))
			}
			switch {
			case m.GetCounter() != nil:
				om.Set(key, m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				om.Set(key, float64(m.GetHistogram().GetSampleCount()))
			}
		}
	}
	return om, nil
}

// LogSummary writes one info line containing the summary.
func (s *PipelineStats) LogSummary(log logger.Logger) {
	om, err := s.Summary()
	if err != nil {
		log.Warn(err)
		return
	}
	parts := make([]string, 0, om.Len())
	iter := om.IterFunc()
	for kv, ok := iter(); ok; kv, ok = iter() {
		parts = append(parts, fmt.Sprintf("%v=%v", kv.Key, kv.Value))
	}
	sort.Strings(parts)
	log.Info("Run statistics: ", strings.Join(parts, " "))
}

// Push sends the current values to the Pushgateway at gatewayURL, grouped by job and runId.
func (s *PipelineStats) Push(gatewayURL string, job string, runId string) error {
	if s == nil || gatewayURL == "" {
		return nil
	}
	p := push.New(gatewayURL, job).Gatherer(s.reg)
	if runId != "" {
		p = p.Grouping("run_id", runId)
	}
	return errors.Wrapf(p.Push(), "error pushing stats to %v", gatewayURL)
}
