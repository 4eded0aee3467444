package metrics

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/nathanhack/fecsim/benchmarking"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const probabilityLabel = "probability"

// Metrics exports the progress of simulation runs as prometheus counters, labelled
// with the error probability of the run.
type Metrics struct {
	Trials            *prometheus.CounterVec
	BitsTransmitted   *prometheus.CounterVec
	InsertedFlips     *prometheus.CounterVec
	ResidualBitErrors *prometheus.CounterVec
	CorruptedPackets  *prometheus.CounterVec

	mux  sync.Mutex
	last map[float64]benchmarking.Stats
}

func counter(name, help string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fecsim",
		Name:      name,
		Help:      help,
	}, []string{probabilityLabel})
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Trials:            counter("trials_total", "Total simulated transmissions"),
		BitsTransmitted:   counter("transmitted_bits_total", "Total coded bits sent through the channel"),
		InsertedFlips:     counter("inserted_errors_total", "Total bits flipped by the channel"),
		ResidualBitErrors: counter("residual_errors_total", "Total bits still wrong after decoding"),
		CorruptedPackets:  counter("corrupted_packets_total", "Total packets with residual errors"),
		last:              make(map[float64]benchmarking.Stats),
	}
	reg.MustRegister(m.Trials, m.BitsTransmitted, m.InsertedFlips, m.ResidualBitErrors, m.CorruptedPackets)
	return m
}

// Baseline records s as already counted for p, stats continued from a results
// file only report the trials run from here on.
func (m *Metrics) Baseline(p float64, s benchmarking.Stats) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.last[p] = s
}

// Checkpoint adds the progress made since the last checkpoint (or baseline) for p.
func (m *Metrics) Checkpoint(p float64, s benchmarking.Stats) {
	m.mux.Lock()
	defer m.mux.Unlock()

	last := m.last[p]
	label := fmt.Sprintf("%v", p)
	m.Trials.WithLabelValues(label).Add(float64(s.Trials - last.Trials))
	m.BitsTransmitted.WithLabelValues(label).Add(float64(s.BitsTransmitted - last.BitsTransmitted))
	m.InsertedFlips.WithLabelValues(label).Add(float64(s.InsertedFlips - last.InsertedFlips))
	m.ResidualBitErrors.WithLabelValues(label).Add(float64(s.ResidualBitErrors - last.ResidualBitErrors))
	m.CorruptedPackets.WithLabelValues(label).Add(float64(s.CorruptedPackets - last.CorruptedPackets))
	m.last[p] = s
}

// Checkpoints binds p so the result can be handed to benchmarking.Run.
func (m *Metrics) Checkpoints(p float64) benchmarking.Checkpoints {
	return func(updatedStats benchmarking.Stats) {
		m.Checkpoint(p, updatedStats)
	}
}

// Serve exposes the gatherer on addr under /metrics in the background.
func Serve(addr string, gatherer prometheus.Gatherer) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		logrus.Infof("prometheus: listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Errorf("prometheus serve error: %v", err)
		}
	}()
	return server
}
