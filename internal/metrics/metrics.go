package metrics

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Collector struct {
	mutex     sync.Mutex
	registry  *prometheus.Registry
	observers []Observer

	CheckProbes         *prometheus.CounterVec
	CheckProbeFailures  *prometheus.CounterVec
	CheckProbeDurations prometheus.Histogram
	CheckSuperseded     prometheus.Counter

	MonitorCommands      *prometheus.CounterVec
	MonitorPublishErrors prometheus.Counter

	ConnectivityUp      prometheus.Gauge
	ConnectivityChanges *prometheus.CounterVec

	RelayRequests  prometheus.Counter
	RelayErrors    prometheus.Counter
	RelayShared    prometheus.Counter
	RelayDurations prometheus.Histogram

	StreamClients prometheus.Gauge

	StatusUp  prometheus.Gauge
	StatusAge prometheus.Gauge
}

func New() *Collector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewGoCollector())

	c := &Collector{
		registry: registry,

		CheckProbes: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "check_probes_total",
			Help: "The total number of performed server probes by resulting state",
		}, []string{"state"}),
		CheckProbeFailures: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "check_probe_failures_total",
			Help: "The total number of probes that found the server offline",
		}, []string{"cause"}),
		CheckProbeDurations: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name: "check_probe_duration_seconds",
			Help: "Duration of server probes",
		}),
		CheckSuperseded: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "check_superseded_total",
			Help: "The total number of in-flight probes dropped in favour of a newer one",
		}),
		MonitorCommands: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "monitor_commands_total",
			Help: "The total number of commands received by monitor",
		}, []string{"command"}),
		MonitorPublishErrors: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "monitor_publish_errors_total",
			Help: "The total number of status snapshots that could not be published",
		}),
		ConnectivityUp: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "connectivity_up",
			Help: "Whether the monitor host has network connectivity",
		}),
		ConnectivityChanges: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "connectivity_changes_total",
			Help: "The total number of observed connectivity changes",
		}, []string{"online"}),
		RelayRequests: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "relay_requests_total",
			Help: "The total number of relay requests",
		}),
		RelayErrors: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "relay_errors_total",
			Help: "The total number of relay requests that could not reach the server",
		}),
		RelayShared: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "relay_shared_total",
			Help: "The total number of relay requests answered with a probe started for another request",
		}),
		RelayDurations: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name: "relay_duration_seconds",
			Help: "Duration of relay requests",
		}),
		StreamClients: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "stream_clients",
			Help: "The number of connected status stream clients",
		}),
		StatusUp: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "status_up",
			Help: "Whether the monitored server was last seen online",
		}),
		StatusAge: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "status_age_seconds",
			Help: "Seconds passed since the monitored server was last checked",
		}),
	}
	return c
}

func (c *Collector) GetRegistry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) AddObserver(observer Observer) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.observers = append(c.observers, observer)
}

func (c *Collector) Observe(ctx context.Context) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for _, observer := range c.observers {
		go observer.Observe(ctx, c)
	}
}
