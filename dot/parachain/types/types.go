// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachaintypes

import (
	"fmt"

	"github.com/ChainSafe/candidate-validation/lib/common"
	"github.com/ChainSafe/candidate-validation/lib/crypto/sr25519"
	cscale "github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
)

// ParaID Unique identifier of a parachain.
type ParaID uint32

// BlockNumber is the relay chain block number
type BlockNumber uint32

// HeadData Parachain head data included in the chain.
type HeadData struct {
	Data []byte
}

// Hash returns the blake2b hash of the raw head data bytes.
func (hd HeadData) Hash() (common.Hash, error) {
	return common.Blake2bHash(hd.Data)
}

// BlockData represents parachain block data.
// It contains everything required to validate para-block, may contain block and witness data.
type BlockData []byte

// PoV represents a Proof-of-Validity block (PoV block) or a parachain block.
// It contains everything required to validate para-block, may contain block and witness data.
type PoV struct {
	BlockData BlockData
}

// Hash returns the hash of the SCALE encoded PoV
func (pov PoV) Hash() (common.Hash, error) {
	bytes, err := codec.Encode(pov)
	if err != nil {
		return common.Hash{}, fmt.Errorf("encoding PoV: %w", err)
	}
	return common.Blake2bHash(bytes)
}

// EncodedSize returns the size in bytes of the SCALE encoded PoV.
func (pov PoV) EncodedSize() (int, error) {
	bytes, err := codec.Encode(pov)
	if err != nil {
		return 0, fmt.Errorf("encoding PoV: %w", err)
	}
	return len(bytes), nil
}

// ValidationCode is Parachain validation code.
type ValidationCode []byte

// Hash returns the hash of the validation code, as given (possibly compressed).
func (vc ValidationCode) Hash() (ValidationCodeHash, error) {
	h, err := common.Blake2bHash(vc)
	if err != nil {
		return ValidationCodeHash{}, err
	}
	return ValidationCodeHash(h), nil
}

// ValidationCodeHash is the blake2-256 hash of the validation code bytes.
type ValidationCodeHash common.Hash

// String returns the hex representation of the hash
func (vch ValidationCodeHash) String() string {
	return common.Hash(vch).String()
}

// PersistedValidationData should be relatively lightweight primarily because it is constructed
// during inclusion for each candidate and therefore lies on the critical path of inclusion.
type PersistedValidationData struct {
	ParentHead             HeadData
	RelayParentNumber      uint32
	RelayParentStorageRoot common.Hash
	MaxPovSize             uint32
}

// Hash returns the hash of the SCALE encoded persisted validation data
func (pvd PersistedValidationData) Hash() (common.Hash, error) {
	bytes, err := codec.Encode(pvd)
	if err != nil {
		return common.Hash{}, fmt.Errorf("encoding persisted validation data: %w", err)
	}
	return common.Blake2bHash(bytes)
}

// CollatorID represents the public key of a collator
type CollatorID [sr25519.PublicKeyLength]byte

// CollatorSignature is the signature on a candidate's block data signed by a collator.
type CollatorSignature [sr25519.SignatureLength]byte

// CandidateDescriptor is a unique descriptor of the candidate receipt.
type CandidateDescriptor struct {
	// The ID of the para this is a candidate for.
	ParaID uint32

	// RelayParent is the hash of the relay-chain block this should be executed in
	// the context of.
	RelayParent common.Hash

	// Collator is the collator's sr25519 public key.
	Collator CollatorID

	// PersistedValidationDataHash is the blake2-256 hash of the persisted validation data. This is extra data derived from
	// relay-chain state which may vary based on bitfields included before the candidate.
	// Thus, it cannot be derived entirely from the relay-parent.
	PersistedValidationDataHash common.Hash

	// PovHash is the hash of the `pov-block`.
	PovHash common.Hash

	// ErasureRoot is the root of a block's erasure encoding Merkle tree.
	ErasureRoot common.Hash

	// Signature on blake2-256 of components of this receipt:
	// The parachain index, the relay parent, the validation data hash, and the `pov_hash`.
	Signature CollatorSignature

	// ParaHead is the hash of the para header that is being generated by this candidate.
	ParaHead common.Hash

	// ValidationCodeHash is the blake2-256 hash of the validation code bytes.
	ValidationCodeHash ValidationCodeHash
}

// CreateSignaturePayload creates the payload the collator signs.
func (cd CandidateDescriptor) CreateSignaturePayload() ([]byte, error) {
	payload := struct {
		RelayParent                 common.Hash
		ParaID                      uint32
		PersistedValidationDataHash common.Hash
		PovHash                     common.Hash
		ValidationCodeHash          ValidationCodeHash
	}{
		RelayParent:                 cd.RelayParent,
		ParaID:                      cd.ParaID,
		PersistedValidationDataHash: cd.PersistedValidationDataHash,
		PovHash:                     cd.PovHash,
		ValidationCodeHash:          cd.ValidationCodeHash,
	}

	bytes, err := codec.Encode(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding signature payload: %w", err)
	}
	return bytes, nil
}

// CheckCollatorSignature verifies the collator signature on the descriptor.
func (cd CandidateDescriptor) CheckCollatorSignature() error {
	payload, err := cd.CreateSignaturePayload()
	if err != nil {
		return err
	}

	return sr25519.VerifySignature(cd.Collator[:], cd.Signature[:], payload)
}

// CandidateHash makes it easy to enforce that a hash is a candidate hash on the type level.
type CandidateHash struct {
	Value common.Hash
}

// String returns the hex representation of the candidate hash
func (ch CandidateHash) String() string {
	return ch.Value.String()
}

// CandidateReceipt A receipt for the candidate
type CandidateReceipt struct {
	Descriptor      CandidateDescriptor
	CommitmentsHash common.Hash
}

// Hash returns the candidate hash: the hash of the SCALE encoded receipt
func (cr CandidateReceipt) Hash() (CandidateHash, error) {
	bytes, err := codec.Encode(cr)
	if err != nil {
		return CandidateHash{}, fmt.Errorf("encoding candidate receipt: %w", err)
	}

	h, err := common.Blake2bHash(bytes)
	if err != nil {
		return CandidateHash{}, err
	}
	return CandidateHash{Value: h}, nil
}

// UpwardMessage A message from a parachain to its Relay Chain.
type UpwardMessage []byte

// OutboundHrmpMessage is an HRMP message seen from the perspective of a sender.
type OutboundHrmpMessage struct {
	Recipient uint32
	Data      []byte
}

// CandidateCommitments are Commitments made in a `CandidateReceipt`. Many of these are outputs of validation.
type CandidateCommitments struct {
	// Messages destined to be interpreted by the Relay chain itself.
	UpwardMessages []UpwardMessage
	// Horizontal messages sent by the parachain.
	HorizontalMessages []OutboundHrmpMessage
	// New validation code, if any.
	NewValidationCode *ValidationCode
	// The head-data produced as a result of execution.
	HeadData HeadData
	// The number of messages processed from the DMQ.
	ProcessedDownwardMessages uint32
	// The mark which specifies the block number up to which all inbound HRMP messages are processed.
	HrmpWatermark uint32
}

// Encode SCALE encodes the commitments, writing the new validation code as an Option.
func (cc CandidateCommitments) Encode(encoder cscale.Encoder) error {
	if err := encoder.Encode(cc.UpwardMessages); err != nil {
		return err
	}
	if err := encoder.Encode(cc.HorizontalMessages); err != nil {
		return err
	}

	if cc.NewValidationCode == nil {
		if err := encoder.EncodeOption(false, nil); err != nil {
			return err
		}
	} else {
		if err := encoder.EncodeOption(true, []byte(*cc.NewValidationCode)); err != nil {
			return err
		}
	}

	if err := encoder.Encode(cc.HeadData); err != nil {
		return err
	}
	if err := encoder.Encode(cc.ProcessedDownwardMessages); err != nil {
		return err
	}
	return encoder.Encode(cc.HrmpWatermark)
}

// Hash returns the hash of the SCALE encoded commitments
func (cc CandidateCommitments) Hash() (common.Hash, error) {
	bytes, err := codec.Encode(cc)
	if err != nil {
		return common.Hash{}, fmt.Errorf("encoding candidate commitments: %w", err)
	}
	return common.Blake2bHash(bytes)
}

// OccupiedCoreAssumption is an assumption being made about the state of an occupied core.
type OccupiedCoreAssumption uint8

const (
	// IncludedOccupiedCoreAssumption assumes the candidate occupying the core was made available and
	// included to free the core.
	IncludedOccupiedCoreAssumption OccupiedCoreAssumption = iota
	// TimedOutOccupiedCoreAssumption assumes the candidate occupying the core timed out and freed the
	// core without advancing the para.
	TimedOutOccupiedCoreAssumption
	// FreeOccupiedCoreAssumption assumes the core was not occupied to begin with.
	FreeOccupiedCoreAssumption
)

func (o OccupiedCoreAssumption) String() string {
	switch o {
	case IncludedOccupiedCoreAssumption:
		return "Included"
	case TimedOutOccupiedCoreAssumption:
		return "TimedOut"
	case FreeOccupiedCoreAssumption:
		return "Free"
	default:
		return fmt.Sprintf("OccupiedCoreAssumption(%d)", uint8(o))
	}
}
