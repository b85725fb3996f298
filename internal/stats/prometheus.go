package stats

import "github.com/prometheus/client_golang/prometheus"

// promMirror is a write-only mirror of Snapshot into Prometheus gauges and
// counters. It never feeds information back into Registry: Prometheus
// scraping is purely observational.
type promMirror struct {
	connected     prometheus.Gauge
	completed     prometheus.Gauge
	cracks        prometheus.Gauge
	failedCracks  prometheus.Gauge
	successCracks prometheus.Gauge
	crypts        prometheus.Gauge
	cryptCalls    prometheus.Gauge
}

func newPromMirror(reg prometheus.Registerer) *promMirror {
	m := &promMirror{
		connected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crackserver_connected_clients",
			Help: "Number of currently connected clients.",
		}),
		completed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crackserver_completed_clients_total",
			Help: "Number of client sessions that have ended.",
		}),
		cracks: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crackserver_crack_requests_total",
			Help: "Number of crack requests accepted for processing.",
		}),
		failedCracks: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crackserver_crack_requests_failed_total",
			Help: "Number of crack requests that ended without a match, invalid ones included.",
		}),
		successCracks: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crackserver_crack_requests_succeeded_total",
			Help: "Number of crack requests that found a matching word.",
		}),
		crypts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crackserver_crypt_requests_total",
			Help: "Number of crypt requests accepted for processing.",
		}),
		cryptCalls: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crackserver_crypt_calls_total",
			Help: "Number of underlying hash-primitive invocations performed.",
		}),
	}
	reg.MustRegister(m.connected, m.completed, m.cracks, m.failedCracks,
		m.successCracks, m.crypts, m.cryptCalls)
	return m
}

func (m *promMirror) set(s Snapshot) {
	m.connected.Set(float64(s.Connected))
	m.completed.Set(float64(s.Completed))
	m.cracks.Set(float64(s.Cracks))
	m.failedCracks.Set(float64(s.FailedCracks))
	m.successCracks.Set(float64(s.SuccessCracks))
	m.crypts.Set(float64(s.Crypts))
	m.cryptCalls.Set(float64(s.CryptCalls))
}
