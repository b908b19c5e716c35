// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

import (
	"context"
	"errors"
	"time"

	"github.com/ChainSafe/candidate-validation/dot/parachain/pvf"
	parachainruntime "github.com/ChainSafe/candidate-validation/dot/parachain/runtime"
	parachaintypes "github.com/ChainSafe/candidate-validation/dot/parachain/types"
)

// ValidationBackend executes and prepares PVFs. *pvf.Host implements it.
type ValidationBackend interface {
	// ValidateCandidate tries executing the PVF a single time, without retries.
	ValidateCandidate(ctx context.Context, pvfData *pvf.PvfPrepData, execTimeout time.Duration,
		encodedParams []byte, priority pvf.Priority) (*parachainruntime.ValidationResult, error)
	// PrecheckPvF prepares the PVF, returning the preparation error if it fails.
	PrecheckPvF(ctx context.Context, pvfData *pvf.PvfPrepData) error
	// HeadsUp tells the backend the PVFs are likely to be needed soon.
	HeadsUp(pvfs []*pvf.PvfPrepData) error
}

// validateCandidateWithRetry executes the candidate, retrying once per class of possibly
// transient error while the elapsed time plus the retry delay stays within the execution timeout.
func validateCandidateWithRetry(
	ctx context.Context,
	backend ValidationBackend,
	rawValidationCode []byte,
	execTimeout time.Duration,
	params parachainruntime.ValidationParameters,
	executorParams parachaintypes.ExecutorParams,
	retryDelay time.Duration,
	priority pvf.Priority,
) (*parachainruntime.ValidationResult, error) {
	prepTimeout := pvfPrepTimeout(executorParams, parachaintypes.Prepare)
	pvfData, err := pvf.NewPvfPrepData(rawValidationCode, executorParams, prepTimeout, pvf.Compilation)
	if err != nil {
		return nil, &pvf.InternalValidationError{Err: err}
	}

	encodedParams, err := params.Encode()
	if err != nil {
		return nil, &pvf.InternalValidationError{Err: err}
	}

	totalTimeStart := time.Now()

	result, err := backend.ValidateCandidate(ctx, pvfData, execTimeout, encodedParams, priority)
	if err == nil {
		return result, nil
	}

	deathRetriesLeft := 1
	jobErrorRetriesLeft := 1
	internalRetriesLeft := 1
	runtimeConstructionRetriesLeft := 1

	for {
		if time.Since(totalTimeStart)+retryDelay > execTimeout {
			break
		}

		var (
			possiblyInvalidErr *pvf.PossiblyInvalidError
			internalErr        *pvf.InternalValidationError
			retryImmediately   bool
			retriesLeft        *int
		)
		switch {
		case err == nil:
		case errors.As(err, &possiblyInvalidErr):
			switch possiblyInvalidErr.Kind {
			case pvf.AmbiguousWorkerDeath, pvf.AmbiguousJobDeath:
				retriesLeft = &deathRetriesLeft
			case pvf.JobErr:
				retriesLeft = &jobErrorRetriesLeft
			case pvf.RuntimeConstructionErr:
				retriesLeft = &runtimeConstructionRetriesLeft
				retryImmediately = true
			}
		case errors.As(err, &internalErr):
			retriesLeft = &internalRetriesLeft
		}

		if retriesLeft == nil || *retriesLeft == 0 {
			break
		}
		*retriesLeft--

		if retryImmediately {
			// the artifact is re-prepared, so a deterministic preparation failure now is final
			precheckErr := backend.PrecheckPvF(ctx, pvfData)
			if precheckErr != nil {
				return nil, pvf.NewValidationErrorFromPrepare(precheckErr)
			}
		} else {
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				return nil, &pvf.InternalValidationError{Err: ctx.Err()}
			}
		}

		newTimeout := execTimeout - time.Since(totalTimeStart)
		if newTimeout < 0 {
			newTimeout = 0
		}

		logger.Warnf("re-trying failed candidate validation of code %s with timeout %s due to possible transient error: %s",
			pvfData.CodeHash(), newTimeout, err)

		result, err = backend.ValidateCandidate(ctx, pvfData, newTimeout, encodedParams, priority)
	}

	if err != nil {
		return nil, err
	}
	return result, nil
}
