// Package metrics exposes Prometheus metrics for executor steps and for the
// records of simulated runs.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/greaheisl/relaybox"
	"github.com/greaheisl/relaybox/buttons"
	"github.com/greaheisl/relaybox/internal/sim"
)

// Collector implements relaybox.Observer and a record hook for the
// simulator.
type Collector struct {
	// Executor
	steps            prometheus.Counter
	immediateRepolls prometheus.Counter
	finished         prometheus.Counter
	pollDuration     prometheus.Histogram
	requestedDelay   prometheus.Histogram

	// Device
	buttonEvents  *prometheus.CounterVec
	holdResults   *prometheus.CounterVec
	relaySwitches prometheus.Counter
	relaysOn      prometheus.Gauge
}

var _ relaybox.Observer = (*Collector)(nil)

// New creates the metrics and registers them on reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relaybox_executor_steps_total",
			Help: "Total number of steps that polled the root task",
		}),
		immediateRepolls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relaybox_executor_immediate_repolls_total",
			Help: "Steps after which no delay was requested and the task asked to be polled again at once",
		}),
		finished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relaybox_executor_finished_total",
			Help: "Number of root tasks that completed",
		}),
		pollDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "relaybox_executor_poll_duration_seconds",
			Help:    "Wall time spent polling the root task in one step",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		requestedDelay: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "relaybox_executor_requested_delay_milliseconds",
			Help:    "Delays returned to the host loop",
			Buckets: prometheus.ExponentialBuckets(1, 2, 16),
		}),
		buttonEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relaybox_button_events_total",
				Help: "Button events by kind and combination",
			},
			[]string{"kind", "buttons"},
		),
		holdResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relaybox_hold_results_total",
				Help: "Hold checks by result",
			},
			[]string{"result"},
		),
		relaySwitches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relaybox_relay_switches_total",
			Help: "Number of times the relay outputs changed",
		}),
		relaysOn: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "relaybox_relays_on",
			Help: "Number of relays currently switched on",
		}),
	}

	for _, m := range []prometheus.Collector{
		c.steps, c.immediateRepolls, c.finished, c.pollDuration, c.requestedDelay,
		c.buttonEvents, c.holdResults, c.relaySwitches, c.relaysOn,
	} {
		if err := reg.Register(m); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return c, nil
}

// ObserveStep records the outcome of one executor step.
func (c *Collector) ObserveStep(info relaybox.StepInfo) {
	c.steps.Inc()
	c.pollDuration.Observe(info.Elapsed.Seconds())
	switch {
	case info.Finished:
		c.finished.Inc()
	case !info.Requested:
		c.immediateRepolls.Inc()
	default:
		c.requestedDelay.Observe(float64(info.Delay))
	}
}

// ObserveRecord records a simulator record. Use it with sim.WithRecordHook.
func (c *Collector) ObserveRecord(r sim.Record) {
	switch r.Kind {
	case sim.KindButton:
		if r.Event == buttons.None {
			return
		}
		c.buttonEvents.WithLabelValues(r.Event.String(), r.Buttons.String()).Inc()
	case sim.KindHold:
		if r.Hold == buttons.HoldPending {
			return
		}
		c.holdResults.WithLabelValues(r.Hold.String()).Inc()
	case sim.KindRelays:
		c.relaySwitches.Inc()
		c.relaysOn.Set(float64(r.Relays.On()))
	}
}

// WriteText writes all metrics gathered from g in the Prometheus text
// format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
