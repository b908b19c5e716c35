// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

import (
	"github.com/ChainSafe/candidate-validation/dot/parachain/pvf"
	parachainruntime "github.com/ChainSafe/candidate-validation/dot/parachain/runtime"
	parachaintypes "github.com/ChainSafe/candidate-validation/dot/parachain/types"
	"github.com/ChainSafe/candidate-validation/dot/parachain/util"
	"github.com/ChainSafe/candidate-validation/lib/common"
	"github.com/ChainSafe/candidate-validation/lib/keystore"
)

const defaultPerBlockLimit = 1

// prepareValidationState tracks the session the node last observed and the code hashes already
// sent to the validation backend for preparation during that session.
type prepareValidationState struct {
	sessionIndex              *parachaintypes.SessionIndex
	isNextSessionAuthority    bool
	alreadyPreparedCodeHashes map[parachaintypes.ValidationCodeHash]struct{}
	// how many PVFs per block we take to prepare themselves for the next session validation
	perBlockLimit int
}

func newPrepareValidationState() *prepareValidationState {
	return &prepareValidationState{
		alreadyPreparedCodeHashes: make(map[parachaintypes.ValidationCodeHash]struct{}),
		perBlockLimit:             defaultPerBlockLimit,
	}
}

// maybePrepareValidation prepares, ahead of time, the PVFs of candidates backed in the activated
// leaf when the node is going to be an authority in the next session. Failures are logged.
func (cv *CandidateValidation) maybePrepareValidation(update parachaintypes.ActiveLeavesUpdateSignal) {
	if update.Activated == nil {
		return
	}
	leafHash := update.Activated.Hash
	state := cv.prepareState

	runtimeInstance, err := cv.BlockState.GetRuntime(leafHash)
	if err != nil {
		logger.Warnf("cannot get runtime instance at %s: %s", leafHash, err)
		return
	}

	newSessionIndex := newSessionIndex(runtimeInstance, state.sessionIndex, leafHash)
	if newSessionIndex != nil {
		state.sessionIndex = newSessionIndex
		clear(state.alreadyPreparedCodeHashes)
		state.isNextSessionAuthority = checkNextSessionAuthority(runtimeInstance, cv.keystore, leafHash,
			*newSessionIndex)
	}

	if !state.isNextSessionAuthority {
		return
	}

	codeHashes := prepareValidationCodesForBackedCandidates(runtimeInstance, cv.ValidationBackend, leafHash,
		state.alreadyPreparedCodeHashes, state.perBlockLimit)
	for _, codeHash := range codeHashes {
		state.alreadyPreparedCodeHashes[codeHash] = struct{}{}
	}
}

// newSessionIndex returns the session index for the child of the relay parent if it is the
// first one observed or greater than the current one.
func newSessionIndex(runtimeInstance parachainruntime.RuntimeInstance,
	current *parachaintypes.SessionIndex, relayParent common.Hash) *parachaintypes.SessionIndex {
	sessionIndex, err := runtimeInstance.ParachainHostSessionIndexForChild()
	if err != nil {
		logger.Warnf("cannot fetch session index from runtime API at %s: %s", relayParent, err)
		return nil
	}

	if current == nil || sessionIndex > *current {
		return &sessionIndex
	}
	return nil
}

// checkNextSessionAuthority returns true if the node is an authority, past, present or future,
// but not an authority of the given session.
func checkNextSessionAuthority(runtimeInstance parachainruntime.RuntimeInstance, ks keystore.Keystore,
	relayParent common.Hash, sessionIndex parachaintypes.SessionIndex) bool {
	authorities, err := runtimeInstance.AuthorityDiscoveryAuthorities()
	if err != nil {
		logger.Warnf("cannot fetch authorities from runtime API at %s: %s", relayParent, err)
		return false
	}

	sessionInfo, err := runtimeInstance.ParachainHostSessionInfo(sessionIndex)
	if err != nil || sessionInfo == nil {
		logger.Warnf("cannot fetch session info from runtime API at %s: %v", relayParent, err)
		return false
	}

	isPastPresentOrFutureAuthority := false
	for _, authority := range authorities {
		if ks.HasKey(authority) {
			isPastPresentOrFutureAuthority = true
			break
		}
	}

	isPresentAuthority := false
	for _, discoveryKey := range sessionInfo.DiscoveryKeys {
		if ks.HasKey(discoveryKey) {
			isPresentAuthority = true
			break
		}
	}

	return isPastPresentOrFutureAuthority && !isPresentAuthority
}

// prepareValidationCodesForBackedCandidates sends the code of candidates backed at the relay
// parent, which is not prepared yet, to the validation backend. It returns the code hashes sent,
// whether or not the backend accepted them.
func prepareValidationCodesForBackedCandidates(runtimeInstance parachainruntime.RuntimeInstance,
	backend ValidationBackend, relayParent common.Hash,
	alreadyPrepared map[parachaintypes.ValidationCodeHash]struct{}, perBlockLimit int,
) []parachaintypes.ValidationCodeHash {
	events, err := runtimeInstance.ParachainHostCandidateEvents()
	if err != nil {
		logger.Warnf("cannot fetch candidate events from runtime API at %s: %s", relayParent, err)
		return nil
	}

	var codeHashes []parachaintypes.ValidationCodeHash
	for _, event := range events {
		if len(codeHashes) >= perBlockLimit {
			break
		}

		backed, ok := event.(parachaintypes.CandidateBacked)
		if !ok {
			continue
		}

		codeHash := backed.CandidateReceipt.Descriptor.ValidationCodeHash
		if _, ok := alreadyPrepared[codeHash]; ok {
			continue
		}
		codeHashes = append(codeHashes, codeHash)
	}

	executorParams, err := util.ExecutorParamsAtRelayParent(runtimeInstance)
	if err != nil {
		logger.Warnf("cannot fetch executor params for the session at %s: %s", relayParent, err)
		return nil
	}
	timeout := pvfPrepTimeout(executorParams, parachaintypes.Prepare)

	activePvfs := make([]*pvf.PvfPrepData, 0, len(codeHashes))
	processedCodeHashes := make([]parachaintypes.ValidationCodeHash, 0, len(codeHashes))
	for _, codeHash := range codeHashes {
		code, err := runtimeInstance.ParachainHostValidationCodeByHash(codeHash)
		if err != nil || code == nil {
			logger.Warnf("cannot fetch validation code %s from runtime API at %s: %v", codeHash, relayParent, err)
			continue
		}

		rawValidationCode, err := util.MaybeCompressedBlobDecompress(*code, util.ValidationCodeBombLimit)
		if err != nil {
			logger.Debugf("cannot decompress validation code %s: %s", codeHash, err)
			continue
		}

		pvfData, err := pvf.NewPvfPrepData(rawValidationCode, executorParams, timeout, pvf.Prechecking)
		if err != nil {
			logger.Debugf("cannot create preparation data for code %s: %s", codeHash, err)
			continue
		}

		activePvfs = append(activePvfs, pvfData)
		processedCodeHashes = append(processedCodeHashes, codeHash)
	}

	if len(activePvfs) == 0 {
		return nil
	}

	// the hashes count as prepared even if the batch fails, they are not retried this session
	err = backend.HeadsUp(activePvfs)
	if err != nil {
		logger.Warnf("cannot prepare PVF for the next session at %s: %s", relayParent, err)
		return processedCodeHashes
	}

	logger.Debugf("prepared %d PVFs for the next session at %s", len(processedCodeHashes), relayParent)
	return processedCodeHashes
}
