// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

import (
	parachaintypes "github.com/ChainSafe/candidate-validation/dot/parachain/types"
	"github.com/ChainSafe/candidate-validation/lib/common"
)

// ValidateFromChainState requests the validation of a candidate whose persisted validation
// data and validation code are looked up in the relay chain state at its relay parent.
type ValidateFromChainState struct {
	CandidateReceipt parachaintypes.CandidateReceipt
	PoV              *parachaintypes.PoV
	ExecutorParams   parachaintypes.ExecutorParams
	ExecKind         parachaintypes.PvfExecKind
	Ch               chan parachaintypes.OverseerFuncRes[ValidationResult]
}

// ValidateFromExhaustive requests the validation of a candidate against the given persisted
// validation data and validation code. Outputs are not checked against the relay chain.
type ValidateFromExhaustive struct {
	PersistedValidationData parachaintypes.PersistedValidationData
	ValidationCode          parachaintypes.ValidationCode
	CandidateReceipt        parachaintypes.CandidateReceipt
	PoV                     *parachaintypes.PoV
	ExecutorParams          parachaintypes.ExecutorParams
	ExecKind                parachaintypes.PvfExecKind
	Ch                      chan parachaintypes.OverseerFuncRes[ValidationResult]
}

// PreCheck requests the preparation of the validation code with the given hash, as found
// at the relay parent, to decide whether it may be enacted.
type PreCheck struct {
	RelayParent        common.Hash
	ValidationCodeHash parachaintypes.ValidationCodeHash
	ResponseSender     chan PreCheckOutcome
}

// PreCheckOutcome is the answer to a PreCheck request. Failed means no judgement could be made.
type PreCheckOutcome byte

const (
	PreCheckOutcomeValid PreCheckOutcome = iota
	PreCheckOutcomeInvalid
	PreCheckOutcomeFailed
)

func (o PreCheckOutcome) String() string {
	switch o {
	case PreCheckOutcomeValid:
		return "valid"
	case PreCheckOutcomeInvalid:
		return "invalid"
	case PreCheckOutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}
