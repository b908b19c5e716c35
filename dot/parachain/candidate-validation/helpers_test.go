// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

import (
	"testing"

	parachainruntime "github.com/ChainSafe/candidate-validation/dot/parachain/runtime"
	parachaintypes "github.com/ChainSafe/candidate-validation/dot/parachain/types"
	"github.com/ChainSafe/candidate-validation/lib/common"
	"github.com/ChainSafe/candidate-validation/lib/crypto/sr25519"
	"github.com/stretchr/testify/require"
)

const testParaID uint32 = 1000

var testRelayParent = common.Hash{0xaa}

type testCandidate struct {
	pvd     parachaintypes.PersistedValidationData
	code    parachaintypes.ValidationCode
	pov     *parachaintypes.PoV
	receipt parachaintypes.CandidateReceipt
	// result is what a successful execution of the candidate returns
	result *parachainruntime.ValidationResult
}

// newTestCandidate builds a candidate, signed by a fresh collator key, that passes every check
// when executing it returns the result field.
func newTestCandidate(t *testing.T, code, blockData []byte) testCandidate {
	t.Helper()

	pvd := parachaintypes.PersistedValidationData{
		ParentHead:             parachaintypes.HeadData{Data: []byte{7, 8, 9}},
		RelayParentNumber:      5,
		RelayParentStorageRoot: common.Hash{0x01},
		MaxPovSize:             1024,
	}
	pvdHash, err := pvd.Hash()
	require.NoError(t, err)

	validationCode := parachaintypes.ValidationCode(code)
	codeHash, err := validationCode.Hash()
	require.NoError(t, err)

	pov := &parachaintypes.PoV{BlockData: blockData}
	povHash, err := pov.Hash()
	require.NoError(t, err)

	result := &parachainruntime.ValidationResult{
		HeadData:      parachaintypes.HeadData{Data: []byte{9, 9, 9}},
		HrmpWatermark: 5,
	}
	headHash, err := result.HeadData.Hash()
	require.NoError(t, err)
	commitments := result.Commitments()
	commitmentsHash, err := commitments.Hash()
	require.NoError(t, err)

	collator, err := sr25519.GenerateKeypair()
	require.NoError(t, err)

	descriptor := parachaintypes.CandidateDescriptor{
		ParaID:                      testParaID,
		RelayParent:                 testRelayParent,
		Collator:                    parachaintypes.CollatorID(collator.Public().Encode()),
		PersistedValidationDataHash: pvdHash,
		PovHash:                     povHash,
		ParaHead:                    headHash,
		ValidationCodeHash:          codeHash,
	}
	payload, err := descriptor.CreateSignaturePayload()
	require.NoError(t, err)
	signature, err := collator.Sign(payload)
	require.NoError(t, err)
	copy(descriptor.Signature[:], signature)

	return testCandidate{
		pvd:  pvd,
		code: validationCode,
		pov:  pov,
		receipt: parachaintypes.CandidateReceipt{
			Descriptor:      descriptor,
			CommitmentsHash: commitmentsHash,
		},
		result: result,
	}
}

func newDefaultTestCandidate(t *testing.T) testCandidate {
	t.Helper()
	return newTestCandidate(t, []byte{0x00, 0x61, 0x73, 0x6d, 0x01}, []byte{1, 2, 3})
}

func (tc testCandidate) validResult() ValidationResult {
	return ValidationResult{
		Valid: &ValidValidationResult{
			CandidateCommitments:    tc.result.Commitments(),
			PersistedValidationData: tc.pvd,
		},
	}
}

func newTestCandidateValidation(blockState BlockState, backend ValidationBackend) *CandidateValidation {
	cv := NewCandidateValidation(blockState, backend, nil)
	cv.retryDelay = 0
	return cv
}
