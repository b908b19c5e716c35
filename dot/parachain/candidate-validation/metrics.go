// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "gossamer_parachain_candidate_validation"

var (
	validationRequestsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "validation_requests_total",
		Help:      "number of validation requests served, by result (valid, invalid, failed)",
	}, []string{"validity"})
	validateFromChainStateTime = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "validate_from_chain_state_seconds",
		Help:      "time spent in validating a candidate from chain state",
	})
	validateFromExhaustiveTime = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "validate_from_exhaustive_seconds",
		Help:      "time spent in validating a candidate from exhaustive data",
	})
	validateCandidateExhaustiveTime = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "validate_candidate_exhaustive_seconds",
		Help:      "time spent in validating a candidate",
	})
	codeSizeHistogram = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "code_size_bytes",
		Help:      "size of the decompressed wasm validation code",
		Buckets:   prometheus.ExponentialBuckets(16384, 2, 10),
	})
	povSizeHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "pov_size_bytes",
		Help:      "size of the PoV block data, compressed and decompressed",
		Buckets:   prometheus.ExponentialBuckets(16384, 2, 10),
	}, []string{"kind"})
)

func observeValidationOutcome(result ValidationResult, err error) {
	switch {
	case err != nil:
		validationRequestsCounter.WithLabelValues("failed").Inc()
	case result.IsValid():
		validationRequestsCounter.WithLabelValues("valid").Inc()
	default:
		validationRequestsCounter.WithLabelValues("invalid").Inc()
	}
}
