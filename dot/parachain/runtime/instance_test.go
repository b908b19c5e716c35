// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachain

import (
	"testing"

	parachaintypes "github.com/ChainSafe/candidate-validation/dot/parachain/types"
	"github.com/ChainSafe/candidate-validation/lib/common"
	"github.com/stretchr/testify/require"
)

func TestValidationParameters_Encode(t *testing.T) {
	t.Parallel()

	params := ValidationParameters{
		ParentHeadData:         parachaintypes.HeadData{Data: []byte{1}},
		BlockData:              parachaintypes.BlockData{2, 3},
		RelayParentNumber:      5,
		RelayParentStorageRoot: common.Hash{0xff},
	}

	encoded, err := params.Encode()
	require.NoError(t, err)

	expected := []byte{4, 1, 8, 2, 3, 5, 0, 0, 0, 0xff}
	expected = append(expected, make([]byte, 31)...)
	require.Equal(t, expected, encoded)
}

func TestValidationResult_Commitments(t *testing.T) {
	t.Parallel()

	code := parachaintypes.ValidationCode{1}
	result := ValidationResult{
		HeadData:                  parachaintypes.HeadData{Data: []byte{2}},
		NewValidationCode:         &code,
		UpwardMessages:            []parachaintypes.UpwardMessage{{3}},
		ProcessedDownwardMessages: 4,
		HrmpWatermark:             5,
	}

	commitments := result.Commitments()
	require.Equal(t, parachaintypes.CandidateCommitments{
		HeadData:                  parachaintypes.HeadData{Data: []byte{2}},
		NewValidationCode:         &code,
		UpwardMessages:            []parachaintypes.UpwardMessage{{3}},
		ProcessedDownwardMessages: 4,
		HrmpWatermark:             5,
	}, commitments)
}
