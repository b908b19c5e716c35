// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package pvf

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	artifactsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "gossamer_parachain_pvf",
		Name:      "artifacts_cached_total",
		Help:      "total number of prepared artifacts cached",
	})
	preparationsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gossamer_parachain_pvf",
		Name:      "preparations_total",
		Help:      "total number of PVF preparations by outcome",
	}, []string{"outcome"})
	preparationTime = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gossamer_parachain_pvf",
		Name:      "preparation_seconds",
		Help:      "time spent preparing a PVF",
		Buckets:   []float64{0.1, 0.5, 1, 2, 3, 10, 20, 30, 60, 120, 240, 360},
	})
	executeQueueGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "gossamer_parachain_pvf",
		Name:      "execute_queue_size",
		Help:      "number of execution jobs waiting for a worker, by priority",
	}, []string{"priority"})
	executionTime = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gossamer_parachain_pvf",
		Name:      "execution_seconds",
		Help:      "time spent executing a candidate",
		Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 4, 5, 6, 8, 10, 12},
	})
)
