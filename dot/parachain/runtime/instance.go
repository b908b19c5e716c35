// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachain

import (
	"fmt"

	parachaintypes "github.com/ChainSafe/candidate-validation/dot/parachain/types"
	"github.com/ChainSafe/candidate-validation/lib/common"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
)

// ValidationResult is result received from validate_block. It is  similar to CandidateCommitments, but different order.
type ValidationResult struct {
	// The head-data is the new head data that should be included in the relay chain state.
	HeadData parachaintypes.HeadData
	// NewValidationCode is an update to the validation code that should be scheduled in the relay chain.
	NewValidationCode *parachaintypes.ValidationCode
	// UpwardMessages are upward messages send by the Parachain.
	UpwardMessages []parachaintypes.UpwardMessage
	// HorizontalMessages are Outbound horizontal messages sent by the parachain.
	HorizontalMessages []parachaintypes.OutboundHrmpMessage

	// The number of messages processed from the DMQ. It is expected that the Parachain processes them from first to last.
	ProcessedDownwardMessages uint32
	// The mark which specifies the block number up to which all inbound HRMP messages are processed.
	HrmpWatermark uint32
}

// Commitments returns the candidate commitments made by the validation result.
func (vr ValidationResult) Commitments() parachaintypes.CandidateCommitments {
	return parachaintypes.CandidateCommitments{
		UpwardMessages:            vr.UpwardMessages,
		HorizontalMessages:        vr.HorizontalMessages,
		NewValidationCode:         vr.NewValidationCode,
		HeadData:                  vr.HeadData,
		ProcessedDownwardMessages: vr.ProcessedDownwardMessages,
		HrmpWatermark:             vr.HrmpWatermark,
	}
}

// ValidationParameters contains parameters for evaluating the parachain validity function.
type ValidationParameters struct {
	// Previous head-data.
	ParentHeadData parachaintypes.HeadData
	// The collation body.
	BlockData parachaintypes.BlockData
	// The current relay-chain block number.
	RelayParentNumber uint32
	// The relay-chain block's storage root.
	RelayParentStorageRoot common.Hash
}

// Encode returns the SCALE encoding of the parameters, the input of validate_block.
func (vp ValidationParameters) Encode() ([]byte, error) {
	bytes, err := codec.Encode(vp)
	if err != nil {
		return nil, fmt.Errorf("encoding validation parameters: %w", err)
	}
	return bytes, nil
}

// RuntimeInstance for runtime methods
type RuntimeInstance interface {
	// ParachainHostPersistedValidationData returns nil if the para is not registered
	// under the given assumption.
	ParachainHostPersistedValidationData(parachaidID uint32, assumption parachaintypes.OccupiedCoreAssumption,
	) (*parachaintypes.PersistedValidationData, error)
	// ParachainHostValidationCode returns nil if there is no code for the para under the given assumption.
	ParachainHostValidationCode(parachaidID uint32, assumption parachaintypes.OccupiedCoreAssumption,
	) (*parachaintypes.ValidationCode, error)
	ParachainHostCheckValidationOutputs(parachainID uint32, outputs parachaintypes.CandidateCommitments) (bool, error)
	ParachainHostValidationCodeByHash(validationCodeHash parachaintypes.ValidationCodeHash,
	) (*parachaintypes.ValidationCode, error)
	ParachainHostCandidateEvents() ([]parachaintypes.CandidateEvent, error)
	ParachainHostSessionInfo(sessionIndex parachaintypes.SessionIndex) (*parachaintypes.SessionInfo, error)
	ParachainHostSessionIndexForChild() (parachaintypes.SessionIndex, error)
	// ParachainHostSessionExecutorParams returns nil if the session has no executor params stored.
	ParachainHostSessionExecutorParams(sessionIndex parachaintypes.SessionIndex,
	) (*parachaintypes.ExecutorParams, error)
	AuthorityDiscoveryAuthorities() ([]parachaintypes.AuthorityDiscoveryID, error)
}
