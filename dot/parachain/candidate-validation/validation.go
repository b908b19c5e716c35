// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ChainSafe/candidate-validation/dot/parachain/pvf"
	parachainruntime "github.com/ChainSafe/candidate-validation/dot/parachain/runtime"
	parachaintypes "github.com/ChainSafe/candidate-validation/dot/parachain/types"
	"github.com/ChainSafe/candidate-validation/dot/parachain/util"
)

type assumptionCheckOutcome byte

const (
	assumptionMatches assumptionCheckOutcome = iota
	assumptionDoesNotMatch
	assumptionBadRequest
)

// checkAssumptionValidationData queries the persisted validation data under the assumption and,
// if it matches the descriptor, the validation code under the same assumption.
func checkAssumptionValidationData(runtimeInstance parachainruntime.RuntimeInstance,
	descriptor parachaintypes.CandidateDescriptor, assumption parachaintypes.OccupiedCoreAssumption,
) (assumptionCheckOutcome, *parachaintypes.PersistedValidationData, *parachaintypes.ValidationCode) {
	pvd, err := runtimeInstance.ParachainHostPersistedValidationData(descriptor.ParaID, assumption)
	if err != nil || pvd == nil {
		logger.Debugf("persisted validation data for para %d under assumption %s unavailable: %v",
			descriptor.ParaID, assumption, err)
		return assumptionBadRequest, nil, nil
	}

	pvdHash, err := pvd.Hash()
	if err != nil {
		logger.Errorf("hashing persisted validation data: %s", err)
		return assumptionBadRequest, nil, nil
	}
	if pvdHash != descriptor.PersistedValidationDataHash {
		return assumptionDoesNotMatch, nil, nil
	}

	code, err := runtimeInstance.ParachainHostValidationCode(descriptor.ParaID, assumption)
	if err != nil || code == nil {
		logger.Debugf("validation code for para %d under assumption %s unavailable: %v",
			descriptor.ParaID, assumption, err)
		return assumptionBadRequest, nil, nil
	}
	return assumptionMatches, pvd, code
}

// findAssumedValidationData tries the Included then the TimedOut assumption. The Free assumption
// is never tried: a candidate is only validated from chain state for an occupied core.
func findAssumedValidationData(runtimeInstance parachainruntime.RuntimeInstance,
	descriptor parachaintypes.CandidateDescriptor,
) (assumptionCheckOutcome, *parachaintypes.PersistedValidationData, *parachaintypes.ValidationCode) {
	for _, assumption := range []parachaintypes.OccupiedCoreAssumption{
		parachaintypes.IncludedOccupiedCoreAssumption,
		parachaintypes.TimedOutOccupiedCoreAssumption,
	} {
		outcome, pvd, code := checkAssumptionValidationData(runtimeInstance, descriptor, assumption)
		if outcome == assumptionDoesNotMatch {
			continue
		}
		return outcome, pvd, code
	}
	return assumptionDoesNotMatch, nil, nil
}

// validateFromChainState validates a candidate with the validation data and code found in the
// relay chain state at its relay parent, then checks its outputs against that state.
func (cv *CandidateValidation) validateFromChainState(ctx context.Context, msg ValidateFromChainState,
) (ValidationResult, error) {
	start := time.Now()
	defer func() {
		validateFromChainStateTime.Observe(time.Since(start).Seconds())
	}()

	descriptor := msg.CandidateReceipt.Descriptor
	runtimeInstance, err := cv.BlockState.GetRuntime(descriptor.RelayParent)
	if err != nil {
		return ValidationResult{}, fmt.Errorf("%w: getting runtime instance: %w", ErrValidationFailed, err)
	}

	outcome, pvd, code := findAssumedValidationData(runtimeInstance, descriptor)
	switch outcome {
	case assumptionBadRequest:
		return ValidationResult{}, fmt.Errorf("%w: assumption check: bad request", ErrValidationFailed)
	case assumptionDoesNotMatch:
		return ValidationResult{}, ErrNoAssumptionMatched
	}

	result, err := cv.validateCandidateExhaustive(ctx, *pvd, *code, msg.CandidateReceipt, msg.PoV,
		msg.ExecutorParams, msg.ExecKind)
	if err != nil || !result.IsValid() {
		return result, err
	}

	ok, err := runtimeInstance.ParachainHostCheckValidationOutputs(descriptor.ParaID,
		result.Valid.CandidateCommitments)
	if err != nil {
		return ValidationResult{}, fmt.Errorf("%w: check validation outputs: bad request: %w",
			ErrValidationFailed, err)
	}
	if !ok {
		return newInvalidResult(InvalidOutputs, ""), nil
	}
	return result, nil
}

// performBasicChecks Does basic checks of a candidate. Provide the encoded PoV-block.
// Returns ReasonForInvalidity and internal error if any.
func performBasicChecks(candidate *parachaintypes.CandidateDescriptor, maxPoVSize uint32,
	pov *parachaintypes.PoV, validationCodeHash parachaintypes.ValidationCodeHash) (
	validationError *ReasonForInvalidity, internalError error) {
	povHash, err := pov.Hash()
	if err != nil {
		return nil, fmt.Errorf("hashing PoV: %w", err)
	}

	encodedPoVSize, err := pov.EncodedSize()
	if err != nil {
		return nil, err
	}

	if encodedPoVSize > int(maxPoVSize) {
		ci := ParamsTooLarge
		return &ci, nil
	}

	if povHash != candidate.PovHash {
		ci := PoVHashMismatch
		return &ci, nil
	}

	if validationCodeHash != candidate.ValidationCodeHash {
		ci := CodeHashMismatch
		return &ci, nil
	}

	err = candidate.CheckCollatorSignature()
	if err != nil {
		ci := BadSignature
		return &ci, nil
	}
	return nil, nil
}

// validateCandidateExhaustive runs the basic checks, decompresses the code and the PoV, executes
// the candidate on the validation backend and classifies the outcome.
func (cv *CandidateValidation) validateCandidateExhaustive(
	ctx context.Context,
	persistedValidationData parachaintypes.PersistedValidationData,
	validationCode parachaintypes.ValidationCode,
	candidateReceipt parachaintypes.CandidateReceipt,
	pov *parachaintypes.PoV,
	executorParams parachaintypes.ExecutorParams,
	execKind parachaintypes.PvfExecKind,
) (ValidationResult, error) {
	start := time.Now()
	defer func() {
		validateCandidateExhaustiveTime.Observe(time.Since(start).Seconds())
	}()

	paraID := candidateReceipt.Descriptor.ParaID
	logger.Debugf("validating candidate for para %d with relay parent %s",
		paraID, candidateReceipt.Descriptor.RelayParent)

	validationCodeHash, err := validationCode.Hash()
	if err != nil {
		return ValidationResult{}, fmt.Errorf("%w: hashing validation code: %w", ErrValidationFailed, err)
	}

	reason, err := performBasicChecks(&candidateReceipt.Descriptor, persistedValidationData.MaxPovSize, pov,
		validationCodeHash)
	if err != nil {
		return ValidationResult{}, fmt.Errorf("%w: performing basic checks: %w", ErrValidationFailed, err)
	}
	if reason != nil {
		logger.Infof("invalid candidate for para %d (basic checks): %s", paraID, *reason)
		return newInvalidResult(*reason, ""), nil
	}

	rawValidationCode, err := util.MaybeCompressedBlobDecompress(validationCode, util.ValidationCodeBombLimit)
	if err != nil {
		// the code already passed pre-checking, so this is most likely local corruption
		logger.Infof("invalid candidate for para %d (validation code): %s", paraID, err)
		return ValidationResult{}, fmt.Errorf("%w: code decompression failed: %w", ErrValidationFailed, err)
	}
	codeSizeHistogram.Observe(float64(len(rawValidationCode)))

	povSizeHistogram.WithLabelValues("compressed").Observe(float64(len(pov.BlockData)))
	rawBlockData, err := util.MaybeCompressedBlobDecompress(pov.BlockData, util.PoVBombLimit)
	if err != nil {
		logger.Infof("invalid candidate for para %d (PoV): %s", paraID, err)
		return newInvalidResult(PoVDecompressionFailure, err.Error()), nil
	}
	povSizeHistogram.WithLabelValues("decompressed").Observe(float64(len(rawBlockData)))

	params := parachainruntime.ValidationParameters{
		ParentHeadData:         persistedValidationData.ParentHead,
		BlockData:              rawBlockData,
		RelayParentNumber:      persistedValidationData.RelayParentNumber,
		RelayParentStorageRoot: persistedValidationData.RelayParentStorageRoot,
	}

	execTimeout := pvfExecTimeout(executorParams, execKind)

	var wasmResult *parachainruntime.ValidationResult
	switch execKind {
	case parachaintypes.Backing:
		wasmResult, err = cv.validateCandidateOnce(ctx, rawValidationCode, execTimeout, params, executorParams)
	case parachaintypes.Approval:
		wasmResult, err = validateCandidateWithRetry(ctx, cv.ValidationBackend, rawValidationCode, execTimeout,
			params, executorParams, cv.retryDelay, pvf.PriorityCritical)
	default:
		return ValidationResult{}, fmt.Errorf("%w: unknown execution kind %s", ErrValidationFailed, execKind)
	}

	if err != nil {
		logger.Infof("failed to validate candidate for para %d: %s", paraID, err)
		return classifyValidationError(paraID, err)
	}

	headDataHash, err := wasmResult.HeadData.Hash()
	if err != nil {
		return ValidationResult{}, fmt.Errorf("%w: hashing head data: %w", ErrValidationFailed, err)
	}
	if headDataHash != candidateReceipt.Descriptor.ParaHead {
		logger.Infof("invalid candidate for para %d (para head)", paraID)
		return newInvalidResult(ParaHeadHashMismatch, ""), nil
	}

	commitments := wasmResult.Commitments()
	commitmentsHash, err := commitments.Hash()
	if err != nil {
		return ValidationResult{}, fmt.Errorf("%w: hashing commitments: %w", ErrValidationFailed, err)
	}
	// if validation produced a new set of commitments, we treat the candidate as invalid
	if candidateReceipt.CommitmentsHash != commitmentsHash {
		logger.Infof("invalid candidate for para %d (commitments hash)", paraID)
		return newInvalidResult(CommitmentsHashMismatch, ""), nil
	}

	return ValidationResult{
		Valid: &ValidValidationResult{
			CandidateCommitments:    commitments,
			PersistedValidationData: persistedValidationData,
		},
	}, nil
}

// validateCandidateOnce executes the candidate a single time with normal priority.
func (cv *CandidateValidation) validateCandidateOnce(ctx context.Context, rawValidationCode []byte,
	execTimeout time.Duration, params parachainruntime.ValidationParameters,
	executorParams parachaintypes.ExecutorParams) (*parachainruntime.ValidationResult, error) {
	prepTimeout := pvfPrepTimeout(executorParams, parachaintypes.Prepare)
	pvfData, err := pvf.NewPvfPrepData(rawValidationCode, executorParams, prepTimeout, pvf.Compilation)
	if err != nil {
		return nil, &pvf.InternalValidationError{Err: err}
	}

	encodedParams, err := params.Encode()
	if err != nil {
		return nil, &pvf.InternalValidationError{Err: err}
	}

	return cv.ValidationBackend.ValidateCandidate(ctx, pvfData, execTimeout, encodedParams, pvf.PriorityNormal)
}

// classifyValidationError turns a validation backend error into an invalidity verdict, or into
// ErrValidationFailed when the node should abstain.
func classifyValidationError(paraID uint32, err error) (ValidationResult, error) {
	var (
		invalidErr     *pvf.InvalidCandidateError
		possiblyErr    *pvf.PossiblyInvalidError
		preparationErr *pvf.PreparationError
	)

	switch {
	case errors.As(err, &invalidErr):
		if invalidErr.Kind == pvf.HardTimeout {
			return newInvalidResult(Timeout, ""), nil
		}
		return newInvalidResult(ExecutionError, invalidErr.Msg), nil
	case errors.As(err, &possiblyErr):
		switch possiblyErr.Kind {
		case pvf.AmbiguousWorkerDeath:
			return newInvalidResult(ExecutionError, "ambiguous worker death"), nil
		case pvf.AmbiguousJobDeath:
			return newInvalidResult(ExecutionError, fmt.Sprintf("ambiguous job death: %s", possiblyErr.Msg)), nil
		default:
			return newInvalidResult(ExecutionError, possiblyErr.Msg), nil
		}
	case errors.As(err, &preparationErr):
		logger.Errorf("deterministic error occurred during preparation of para %d "+
			"(should have been ruled out by pre-checking): %s", paraID, preparationErr)
		return ValidationResult{}, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	default:
		logger.Warnf("an internal error occurred during validation of para %d, will abstain from voting: %s",
			paraID, err)
		return ValidationResult{}, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
}
