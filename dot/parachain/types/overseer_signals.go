// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachaintypes

import (
	"errors"

	"github.com/ChainSafe/candidate-validation/lib/common"
)

// ErrUnknownOverseerMessage is logged by subsystems receiving a message or signal they do not handle.
var ErrUnknownOverseerMessage = errors.New("unknown overseer message type")

// SubSystemName is the name of a parachain subsystem
type SubSystemName string

const (
	CandidateValidation SubSystemName = "CandidateValidation"
)

// OverseerFuncRes is the response to a subsystem request: Data is only meaningful when Err is nil.
type OverseerFuncRes[T any] struct {
	Err  error
	Data T
}

// ActivatedLeaf is a relay chain head newly added to the active leaves.
type ActivatedLeaf struct {
	Hash   common.Hash
	Number uint32
}

// ActiveLeavesUpdateSignal carries the change to the set of active leaves since the
// previous update, not the full set.
type ActiveLeavesUpdateSignal struct {
	Activated   *ActivatedLeaf
	Deactivated []common.Hash
}

// BlockFinalizedSignal announces a newly finalized relay chain block.
type BlockFinalizedSignal struct {
	Hash        common.Hash
	BlockNumber uint32
}

// Conclude tells a subsystem to stop.
type Conclude struct{}
