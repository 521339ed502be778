package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/seatcalc/internal/apportion"
	"github.com/agbru/seatcalc/internal/orchestration"
	"github.com/agbru/seatcalc/internal/sysmon"
)

const namespace = "seatcalc"

// Recorder collects the statistics of one or more runs. Each Recorder owns
// its registry, so several can coexist (tests, repeated runs) without
// colliding in the default registry.
type Recorder struct {
	registry *prometheus.Registry

	apportionments *prometheus.CounterVec
	iterations     *prometheus.HistogramVec
	stageDuration  *prometheus.HistogramVec
	runs           *prometheus.CounterVec
	seats          *prometheus.GaugeVec
	overhang       *prometheus.GaugeVec
	balance        *prometheus.GaugeVec
	totalSeats     prometheus.Gauge
	nominalSeats   prometheus.Gauge
	allocated      prometheus.Gauge
	gcCycles       prometheus.Gauge
	hostCPU        prometheus.Gauge
	hostMemory     prometheus.Gauge
	goroutines     prometheus.Gauge

	mu sync.Mutex
}

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		apportionments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "apportionments_total",
			Help:      "Divisor searches completed, by method.",
		}, []string{"method"}),
		iterations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "apportionment_iterations",
			Help:      "Divisor adjustments needed per search, by method.",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000, 10000},
		}, []string{"method"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time per pipeline stage.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"stage"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Pipeline runs, by outcome.",
		}, []string{"status"}),
		seats: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "party_seats",
			Help:      "Final seats per party.",
		}, []string{"party"}),
		overhang: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "party_overhang_seats",
			Help:      "Direct mandates beyond list seats, per party.",
		}, []string{"party"}),
		balance: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "party_balance_seats",
			Help:      "Seats added above the party's floor, per party.",
		}, []string{"party"}),
		totalSeats: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_seats",
			Help:      "Size of the enlarged parliament.",
		}),
		nominalSeats: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "nominal_seats",
			Help:      "Configured parliament size.",
		}),
		allocated: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_allocated_bytes",
			Help:      "Bytes allocated during the last run.",
		}),
		gcCycles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_gc_cycles",
			Help:      "GC cycles completed during the last run.",
		}),
		hostCPU: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "host_cpu_percent",
			Help:      "Host CPU usage sampled after the last run.",
		}),
		hostMemory: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "host_memory_percent",
			Help:      "Host memory usage sampled after the last run.",
		}),
		goroutines: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "goroutines",
			Help:      "Goroutines alive when the last sample was taken.",
		}),
	}
	r.registry.MustRegister(
		r.apportionments, r.iterations, r.stageDuration, r.runs,
		r.seats, r.overhang, r.balance, r.totalSeats, r.nominalSeats,
		r.allocated, r.gcCycles, r.hostCPU, r.hostMemory, r.goroutines,
	)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// ObserveApportionment is an apportion.Observer. It is safe for concurrent
// use.
func (r *Recorder) ObserveApportionment(tr apportion.Trace) {
	method := string(tr.Method)
	r.apportionments.WithLabelValues(method).Inc()
	r.iterations.WithLabelValues(method).Observe(float64(tr.Iterations))
}

// RecordResult stores the figures of a successful run. Seat gauges are
// reset first so parties from an earlier run do not linger.
func (r *Recorder) RecordResult(res *orchestration.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.runs.WithLabelValues("success").Inc()
	for _, st := range res.Stages {
		r.stageDuration.WithLabelValues(string(st.Stage)).Observe(st.Duration.Seconds())
	}
	r.seats.Reset()
	r.overhang.Reset()
	r.balance.Reset()
	for _, s := range res.Summaries {
		party := string(s.Party)
		r.seats.WithLabelValues(party).Set(float64(s.Total))
		r.overhang.WithLabelValues(party).Set(float64(s.Overhang))
		r.balance.WithLabelValues(party).Set(float64(s.Balance))
	}
	r.totalSeats.Set(float64(res.TotalSeats))
	r.nominalSeats.Set(float64(res.NominalSeats))
}

// RecordFailure counts a failed run.
func (r *Recorder) RecordFailure() {
	r.runs.WithLabelValues("failure").Inc()
}

// RecordMemory stores the memory used by the last run.
func (r *Recorder) RecordMemory(u MemoryUsage) {
	r.allocated.Set(float64(u.Allocated))
	r.gcCycles.Set(float64(u.GCCycles))
}

// RecordSystem stores a resource sample.
func (r *Recorder) RecordSystem(s sysmon.Stats) {
	r.hostCPU.Set(s.CPUPercent)
	r.hostMemory.Set(s.MemPercent)
	r.goroutines.Set(float64(s.Goroutines))
}

// WriteTextfile writes every metric to path atomically, in the format read
// by the node exporter's textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

var _ apportion.Observer = (&Recorder{}).ObserveApportionment
