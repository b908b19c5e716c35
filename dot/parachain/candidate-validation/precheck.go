// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

import (
	"context"
	"errors"

	"github.com/ChainSafe/candidate-validation/dot/parachain/pvf"
	parachaintypes "github.com/ChainSafe/candidate-validation/dot/parachain/types"
	"github.com/ChainSafe/candidate-validation/dot/parachain/util"
	"github.com/ChainSafe/candidate-validation/lib/common"
)

// precheckPvF fetches the validation code by hash at the relay parent and tries to prepare it.
// Only deterministic preparation failures vote against the code.
func (cv *CandidateValidation) precheckPvF(ctx context.Context, relayParent common.Hash,
	validationCodeHash parachaintypes.ValidationCodeHash) PreCheckOutcome {
	runtimeInstance, err := cv.BlockState.GetRuntime(relayParent)
	if err != nil {
		logger.Errorf("getting runtime instance: %s", err)
		return PreCheckOutcomeFailed
	}

	code, err := runtimeInstance.ParachainHostValidationCodeByHash(validationCodeHash)
	if err != nil || code == nil {
		logger.Errorf("precheck: requested validation code %s is not available: %v", validationCodeHash, err)
		return PreCheckOutcomeFailed
	}

	executorParams, err := util.ExecutorParamsAtRelayParent(runtimeInstance)
	if err != nil {
		logger.Warnf("failed to acquire params for the session, thus voting against: %s", err)
		return PreCheckOutcomeInvalid
	}

	timeout := pvfPrepTimeout(executorParams, parachaintypes.Precheck)

	rawValidationCode, err := util.MaybeCompressedBlobDecompress(*code, util.ValidationCodeBombLimit)
	if err != nil {
		logger.Debugf("precheck: failed to decompress validation code %s: %s", validationCodeHash, err)
		return PreCheckOutcomeInvalid
	}

	pvfData, err := pvf.NewPvfPrepData(rawValidationCode, executorParams, timeout, pvf.Prechecking)
	if err != nil {
		logger.Errorf("precheck: %s", err)
		return PreCheckOutcomeFailed
	}

	err = cv.ValidationBackend.PrecheckPvF(ctx, pvfData)
	if err == nil {
		return PreCheckOutcomeValid
	}

	var prepareErr *pvf.PrepareError
	if errors.As(err, &prepareErr) && prepareErr.IsDeterministic() {
		logger.Infof("precheck: code %s failed to prepare: %s", validationCodeHash, err)
		return PreCheckOutcomeInvalid
	}

	logger.Warnf("precheck: code %s could not be prepared, not voting: %s", validationCodeHash, err)
	return PreCheckOutcomeFailed
}
