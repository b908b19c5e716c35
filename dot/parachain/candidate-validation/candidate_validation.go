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
	"github.com/ChainSafe/candidate-validation/internal/log"
	"github.com/ChainSafe/candidate-validation/lib/common"
	"github.com/ChainSafe/candidate-validation/lib/keystore"
)

// TaskLimit is the maximum number of validation requests handled concurrently.
const TaskLimit = 30

var logger = log.NewFromGlobal(log.AddContext("pkg", "candidate-validation"))

var (
	// ErrValidationFailed is returned when the candidate could not be validated because of an
	// internal error. The node should abstain from voting on the candidate.
	ErrValidationFailed = errors.New("validation failed")
	// ErrNoAssumptionMatched is returned when the persisted validation data of the candidate does
	// not match the chain state under any occupied core assumption.
	ErrNoAssumptionMatched = fmt.Errorf("%w: no occupied core assumption matched", ErrValidationFailed)
)

// BlockState gives access to the runtime instance at a relay chain block.
type BlockState interface {
	GetRuntime(blockHash common.Hash) (instance parachainruntime.RuntimeInstance, err error)
}

// CandidateValidation is a parachain subsystem that validates candidate parachain blocks
type CandidateValidation struct {
	BlockState        BlockState
	ValidationBackend ValidationBackend

	keystore     keystore.Keystore
	prepareState *prepareValidationState
	taskLimit    int
	retryDelay   time.Duration

	// pvfHost is set when the subsystem owns its validation backend.
	pvfHost *pvf.Host
}

// NewCandidateValidation creates a new CandidateValidation subsystem. The keystore may be nil,
// in which case PVFs are never prepared ahead of a session change.
func NewCandidateValidation(blockState BlockState, backend ValidationBackend,
	ks keystore.Keystore) *CandidateValidation {
	return &CandidateValidation{
		BlockState:        blockState,
		ValidationBackend: backend,
		keystore:          ks,
		prepareState:      newPrepareValidationState(),
		taskLimit:         TaskLimit,
		retryDelay:        PvfApprovalExecutionRetryDelay,
	}
}

// NewFromConfig creates a new CandidateValidation subsystem backed by a started PVF host
// built from the configuration and the given engine.
func NewFromConfig(cfg Config, blockState BlockState, engine pvf.Engine,
	ks keystore.Keystore) (*CandidateValidation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	host, err := pvf.NewHost(cfg.pvfConfig(), engine)
	if err != nil {
		return nil, fmt.Errorf("creating pvf host: %w", err)
	}

	if err = host.Start(); err != nil {
		return nil, fmt.Errorf("starting pvf host: %w", err)
	}

	cv := NewCandidateValidation(blockState, host, ks)
	cv.pvfHost = host
	return cv, nil
}

// Run starts the CandidateValidation subsystem. Signals and communications are read from
// separate channels; once taskLimit requests are in flight, communications are no longer read
// until one of them completes. Run returns on Conclude, when the signals channel is closed, or
// when the context is cancelled, without waiting for the requests in flight.
func (cv *CandidateValidation) Run(ctx context.Context, signals <-chan any,
	overseerToSubsystem <-chan any) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	completions := make(chan struct{}, cv.taskLimit)
	inFlight := 0

	for {
		draining := inFlight >= cv.taskLimit
		incoming := overseerToSubsystem
		if draining {
			incoming = nil
		}

		select {
		case signal, ok := <-signals:
			if !ok {
				return nil
			}
			if cv.processSignal(signal, draining) {
				return nil
			}
		case msg, ok := <-incoming:
			if !ok {
				overseerToSubsystem = nil
				continue
			}
			if cv.processMessage(ctx, msg, completions) {
				inFlight++
			}
		case <-completions:
			inFlight--
		case <-ctx.Done():
			logger.Debugf("stopping: %s", ctx.Err())
			return ctx.Err()
		}
	}
}

// Name returns the name of the subsystem
func (*CandidateValidation) Name() parachaintypes.SubSystemName {
	return parachaintypes.CandidateValidation
}

// Stop stops the CandidateValidation subsystem
func (cv *CandidateValidation) Stop() {
	if cv.pvfHost != nil {
		cv.pvfHost.Stop()
	}
}

// processSignal handles an overseer signal and returns true if the subsystem must stop.
func (cv *CandidateValidation) processSignal(signal any, draining bool) (stop bool) {
	switch signal := signal.(type) {
	case parachaintypes.ActiveLeavesUpdateSignal:
		if draining || cv.keystore == nil {
			return false
		}
		cv.maybePrepareValidation(signal)
	case parachaintypes.BlockFinalizedSignal:
		// NOTE: this subsystem does not process block finalized signal
	case parachaintypes.Conclude:
		return true
	default:
		logger.Errorf("%s: %T", parachaintypes.ErrUnknownOverseerMessage, signal)
	}
	return false
}

// processMessage spawns the handling of a request. It returns false if the message is unknown
// and nothing was spawned.
func (cv *CandidateValidation) processMessage(ctx context.Context, msg any,
	completions chan<- struct{}) (spawned bool) {
	var task func()

	switch msg := msg.(type) {
	case ValidateFromChainState:
		task = func() {
			result, err := cv.validateFromChainState(ctx, msg)
			observeValidationOutcome(result, err)
			sendResponse(ctx, msg.Ch, parachaintypes.OverseerFuncRes[ValidationResult]{Err: err, Data: result})
		}
	case ValidateFromExhaustive:
		task = func() {
			start := time.Now()
			result, err := cv.validateCandidateExhaustive(ctx, msg.PersistedValidationData, msg.ValidationCode,
				msg.CandidateReceipt, msg.PoV, msg.ExecutorParams, msg.ExecKind)
			validateFromExhaustiveTime.Observe(time.Since(start).Seconds())
			observeValidationOutcome(result, err)
			sendResponse(ctx, msg.Ch, parachaintypes.OverseerFuncRes[ValidationResult]{Err: err, Data: result})
		}
	case PreCheck:
		task = func() {
			outcome := cv.precheckPvF(ctx, msg.RelayParent, msg.ValidationCodeHash)
			logger.Debugf("precheck outcome for code %s: %s", msg.ValidationCodeHash, outcome)
			sendResponse(ctx, msg.ResponseSender, outcome)
		}
	default:
		logger.Errorf("%s: %T", parachaintypes.ErrUnknownOverseerMessage, msg)
		return false
	}

	go func() {
		defer func() { completions <- struct{}{} }()
		task()
	}()
	return true
}

// sendResponse sends the response, or closes the channel if the subsystem stops first.
// The task answering a request is the only sender on its channel.
func sendResponse[T any](ctx context.Context, ch chan T, response T) {
	if ch == nil {
		return
	}
	select {
	case ch <- response:
	case <-ctx.Done():
		close(ch)
	}
}
