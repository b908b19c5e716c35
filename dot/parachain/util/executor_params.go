// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package util

import (
	"fmt"

	parachainruntime "github.com/ChainSafe/candidate-validation/dot/parachain/runtime"
	parachaintypes "github.com/ChainSafe/candidate-validation/dot/parachain/types"
)

// ExecutorParamsAtRelayParent returns the executor params of the session the child of the relay parent
// belongs to. Sessions without stored params use the default, empty, params.
func ExecutorParamsAtRelayParent(runtimeInstance parachainruntime.RuntimeInstance,
) (parachaintypes.ExecutorParams, error) {
	sessionIndex, err := runtimeInstance.ParachainHostSessionIndexForChild()
	if err != nil {
		return nil, fmt.Errorf("getting session index: %w", err)
	}

	executorParams, err := runtimeInstance.ParachainHostSessionExecutorParams(sessionIndex)
	if err != nil {
		return nil, fmt.Errorf("getting session executor params: %w", err)
	}

	if executorParams == nil {
		return parachaintypes.ExecutorParams{}, nil
	}
	return *executorParams, nil
}
