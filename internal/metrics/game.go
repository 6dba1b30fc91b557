// Package metrics exposes game activity as Prometheus collectors.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/fibgrid/internal/grid"
)

const namespace = "fibgrid"

// Game records clicks, sweeps, matched runs and resizes. It satisfies
// game.Observer and sweep.Observer.
type Game struct {
	clicks        prometheus.Counter
	sweeps        prometheus.Counter
	runsMatched   *prometheus.CounterVec
	cellsCleared  prometheus.Counter
	resizes       *prometheus.CounterVec
	sequenceTerms prometheus.Gauge
	sweepDuration prometheus.Histogram
}

// NewGame creates the collectors and registers them with reg. Collectors
// already registered by an earlier call are reused.
func NewGame(reg prometheus.Registerer) *Game {
	return &Game{
		clicks: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clicks_total",
			Help:      "Number of accepted cell clicks.",
		})),
		sweeps: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweeps_total",
			Help:      "Number of full-grid sweeps.",
		})),
		runsMatched: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_matched_total",
			Help:      "Number of Fibonacci runs matched, by axis.",
		}, []string{"axis"})),
		cellsCleared: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cells_cleared_total",
			Help:      "Number of cells cleared by sweeps.",
		})),
		resizes: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resizes_total",
			Help:      "Number of resize requests, by result.",
		}, []string{"result"})),
		sequenceTerms: register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sequence_terms",
			Help:      "Number of cached Fibonacci terms.",
		})),
		sweepDuration: register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweep_duration_seconds",
			Help:      "Time spent in one full-grid sweep.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		})),
	}
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// RunMatched counts one run along axis.
func (g *Game) RunMatched(axis grid.Axis, _ grid.Coord) {
	g.runsMatched.WithLabelValues(axis.String()).Inc()
}

// SweepCompleted records the sweep and the cells it cleared.
func (g *Game) SweepCompleted(cleared int, elapsed time.Duration) {
	g.sweeps.Inc()
	g.cellsCleared.Add(float64(cleared))
	g.sweepDuration.Observe(elapsed.Seconds())
}

// Clicked counts one accepted click.
func (g *Game) Clicked() { g.clicks.Inc() }

// Resized counts a resize request.
func (g *Game) Resized(accepted bool) {
	result := "rejected"
	if accepted {
		result = "accepted"
	}
	g.resizes.WithLabelValues(result).Inc()
}

// SequenceLength records the size of the Fibonacci cache.
func (g *Game) SequenceLength(terms int) { g.sequenceTerms.Set(float64(terms)) }
