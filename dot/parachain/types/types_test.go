// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachaintypes

import (
	"testing"
	"time"

	"github.com/ChainSafe/candidate-validation/lib/common"
	"github.com/ChainSafe/candidate-validation/lib/crypto/sr25519"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadData_Hash(t *testing.T) {
	t.Parallel()

	hd := HeadData{Data: []byte{1, 2, 3}}
	hash, err := hd.Hash()
	require.NoError(t, err)
	require.Equal(t, common.MustBlake2bHash([]byte{1, 2, 3}), hash)
}

func TestPoV_HashAndSize(t *testing.T) {
	t.Parallel()

	pov := PoV{BlockData: BlockData{7, 7, 7}}

	size, err := pov.EncodedSize()
	require.NoError(t, err)
	// compact length prefix plus three bytes
	require.Equal(t, 4, size)

	hash, err := pov.Hash()
	require.NoError(t, err)
	require.Equal(t, common.MustBlake2bHash([]byte{12, 7, 7, 7}), hash)
}

func TestCandidateCommitments_Encode(t *testing.T) {
	t.Parallel()

	code := ValidationCode{9}

	testCases := map[string]struct {
		commitments CandidateCommitments
		expected    []byte
	}{
		"without_new_validation_code": {
			commitments: CandidateCommitments{
				HeadData:                  HeadData{Data: []byte{1, 2}},
				ProcessedDownwardMessages: 1,
				HrmpWatermark:             2,
			},
			expected: []byte{0, 0, 0, 8, 1, 2, 1, 0, 0, 0, 2, 0, 0, 0},
		},
		"with_new_validation_code_and_messages": {
			commitments: CandidateCommitments{
				UpwardMessages: []UpwardMessage{{5}},
				HorizontalMessages: []OutboundHrmpMessage{
					{Recipient: 3, Data: []byte{4}},
				},
				NewValidationCode: &code,
				HeadData:          HeadData{Data: []byte{1}},
			},
			expected: []byte{
				4, 4, 5, // upward messages
				4, 3, 0, 0, 0, 4, 4, // horizontal messages
				1, 4, 9, // new validation code
				4, 1, // head data
				0, 0, 0, 0, 0, 0, 0, 0,
			},
		},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			encoded, err := codec.Encode(tc.commitments)
			require.NoError(t, err)
			require.Equal(t, tc.expected, encoded)

			hash, err := tc.commitments.Hash()
			require.NoError(t, err)
			require.Equal(t, common.MustBlake2bHash(tc.expected), hash)
		})
	}
}

func TestExecutorParams(t *testing.T) {
	t.Parallel()

	params := ExecutorParams{
		MaxMemoryPages(8192),
		PvfExecTimeout{Kind: Approval, Millisec: 12000},
		PvfPrepTimeout{Kind: Precheck, Millisec: 500},
		WasmExtBulkMemory{},
	}

	encoded, err := codec.Encode(params)
	require.NoError(t, err)
	expected := []byte{
		16,
		1, 0, 0x20, 0, 0,
		6, 1, 0xe0, 0x2e, 0, 0, 0, 0, 0, 0,
		5, 0, 0xf4, 0x01, 0, 0, 0, 0, 0, 0,
		7,
	}
	require.Equal(t, expected, encoded)

	hash, err := params.Hash()
	require.NoError(t, err)
	require.Equal(t, common.MustBlake2bHash(expected), hash)

	timeout, ok := params.PvfExecTimeout(Approval)
	assert.True(t, ok)
	assert.Equal(t, 12*time.Second, timeout)

	_, ok = params.PvfExecTimeout(Backing)
	assert.False(t, ok)

	timeout, ok = params.PvfPrepTimeout(Precheck)
	assert.True(t, ok)
	assert.Equal(t, 500*time.Millisecond, timeout)

	_, ok = params.PvfPrepTimeout(Prepare)
	assert.False(t, ok)

	emptyEncoded, err := codec.Encode(ExecutorParams{})
	require.NoError(t, err)
	require.Equal(t, []byte{0}, emptyEncoded)
}

func TestCandidateDescriptor_CheckCollatorSignature(t *testing.T) {
	t.Parallel()

	collatorKeypair, err := sr25519.GenerateKeypair()
	require.NoError(t, err)

	descriptor := CandidateDescriptor{
		ParaID:                      1000,
		RelayParent:                 common.Hash{1},
		Collator:                    CollatorID(collatorKeypair.Public().Encode()),
		PersistedValidationDataHash: common.Hash{2},
		PovHash:                     common.Hash{3},
		ValidationCodeHash:          ValidationCodeHash{4},
	}

	payload, err := descriptor.CreateSignaturePayload()
	require.NoError(t, err)
	// relay parent, para id, pvd hash, pov hash, code hash
	require.Len(t, payload, 32+4+32+32+32)

	signature, err := collatorKeypair.Sign(payload)
	require.NoError(t, err)
	copy(descriptor.Signature[:], signature)

	require.NoError(t, descriptor.CheckCollatorSignature())

	tampered := descriptor
	tampered.ParaID = 1001
	require.ErrorIs(t, tampered.CheckCollatorSignature(), sr25519.ErrSignatureMismatch)

	// the para head and erasure root are not part of the signed payload
	unsigned := descriptor
	unsigned.ParaHead = common.Hash{9}
	unsigned.ErasureRoot = common.Hash{9}
	require.NoError(t, unsigned.CheckCollatorSignature())
}

func TestCandidateReceipt_Hash(t *testing.T) {
	t.Parallel()

	receipt := CandidateReceipt{
		Descriptor:      CandidateDescriptor{ParaID: 1},
		CommitmentsHash: common.Hash{5},
	}

	encoded, err := codec.Encode(receipt)
	require.NoError(t, err)

	hash, err := receipt.Hash()
	require.NoError(t, err)
	require.Equal(t, CandidateHash{Value: common.MustBlake2bHash(encoded)}, hash)

	other := receipt
	other.CommitmentsHash = common.Hash{6}
	otherHash, err := other.Hash()
	require.NoError(t, err)
	require.NotEqual(t, hash, otherHash)
}

func TestValidationCode_Hash(t *testing.T) {
	t.Parallel()

	code := ValidationCode{1, 2, 3}
	hash, err := code.Hash()
	require.NoError(t, err)
	require.Equal(t, ValidationCodeHash(common.MustBlake2bHash([]byte{1, 2, 3})), hash)
}
