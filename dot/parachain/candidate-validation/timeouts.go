// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

import (
	"time"

	parachaintypes "github.com/ChainSafe/candidate-validation/dot/parachain/types"
)

const (
	// DefaultPrecheckPreparationTimeout is the time period after which a pre-checking preparation
	// is considered unresponsive and killed.
	DefaultPrecheckPreparationTimeout = 60 * time.Second
	// DefaultLenientPreparationTimeout is the more lenient timeout used for preparations done
	// before execution, to account for load on the node.
	DefaultLenientPreparationTimeout = 360 * time.Second
	// DefaultBackingExecutionTimeout is the execution timeout for backing.
	DefaultBackingExecutionTimeout = 2 * time.Second
	// DefaultApprovalExecutionTimeout is the execution timeout for approval and disputes,
	// more lenient than backing to avoid voting against a candidate on a slow node.
	DefaultApprovalExecutionTimeout = 12 * time.Second

	// PvfApprovalExecutionRetryDelay is the delay before retrying a failed approval execution.
	PvfApprovalExecutionRetryDelay = 3 * time.Second
)

// pvfPrepTimeout returns the preparation timeout for the kind, preferring the executor params override.
func pvfPrepTimeout(executorParams parachaintypes.ExecutorParams, kind parachaintypes.PvfPrepKind) time.Duration {
	if timeout, ok := executorParams.PvfPrepTimeout(kind); ok {
		return timeout
	}

	if kind == parachaintypes.Precheck {
		return DefaultPrecheckPreparationTimeout
	}
	return DefaultLenientPreparationTimeout
}

// pvfExecTimeout returns the execution timeout for the kind, preferring the executor params override.
func pvfExecTimeout(executorParams parachaintypes.ExecutorParams, kind parachaintypes.PvfExecKind) time.Duration {
	if timeout, ok := executorParams.PvfExecTimeout(kind); ok {
		return timeout
	}

	if kind == parachaintypes.Backing {
		return DefaultBackingExecutionTimeout
	}
	return DefaultApprovalExecutionTimeout
}
