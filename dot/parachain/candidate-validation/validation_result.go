// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

import (
	"fmt"

	parachaintypes "github.com/ChainSafe/candidate-validation/dot/parachain/types"
)

// ValidationResult represents the result coming from the candidate validation subsystem.
// Validation results can be either a ValidValidationResult or InvalidCandidate.
//
// If the result is invalid,
// store the reason for invalidity in the Invalid field of ValidationResult.
//
// If the result is valid,
// set the values of the Valid field of ValidValidationResult.
type ValidationResult struct {
	Valid   *ValidValidationResult
	Invalid *InvalidCandidate
}

// IsValid returns true if the candidate was found valid
func (vr ValidationResult) IsValid() bool {
	return vr.Valid != nil
}

func (vr ValidationResult) String() string {
	if vr.Valid != nil {
		return "valid"
	}
	if vr.Invalid != nil {
		return fmt.Sprintf("invalid: %s", vr.Invalid)
	}
	return "empty"
}

// ValidValidationResult contains the outputs of a valid candidate
type ValidValidationResult struct {
	CandidateCommitments    parachaintypes.CandidateCommitments
	PersistedValidationData parachaintypes.PersistedValidationData
}

// InvalidCandidate is the reason a candidate is invalid, with optional details
type InvalidCandidate struct {
	Reason  ReasonForInvalidity
	Details string
}

func (ic InvalidCandidate) String() string {
	if ic.Details == "" {
		return ic.Reason.Error()
	}
	return fmt.Sprintf("%s: %s", ic.Reason.Error(), ic.Details)
}

func newInvalidResult(reason ReasonForInvalidity, details string) ValidationResult {
	return ValidationResult{
		Invalid: &InvalidCandidate{
			Reason:  reason,
			Details: details,
		},
	}
}

type ReasonForInvalidity byte

const (
	// ExecutionError Failed to execute `validate_block`. This includes function panicking.
	ExecutionError ReasonForInvalidity = iota
	// InvalidOutputs Validation outputs check doesn't pass.
	InvalidOutputs
	// Timeout Execution timeout.
	Timeout
	// ParamsTooLarge Validation input is over the limit.
	ParamsTooLarge
	// CodeTooLarge Code size is over the limit.
	CodeTooLarge
	// PoVDecompressionFailure PoV does not decompress correctly.
	PoVDecompressionFailure
	// BadReturn Validation function returned invalid data.
	BadReturn
	// BadParent Invalid relay chain parent.
	BadParent
	// PoVHashMismatch POV hash does not match.
	PoVHashMismatch
	// BadSignature Bad collator signature.
	BadSignature
	// ParaHeadHashMismatch Para head hash does not match.
	ParaHeadHashMismatch
	// CodeHashMismatch Validation code hash does not match.
	CodeHashMismatch
	// CommitmentsHashMismatch Validation has generated different candidate commitments.
	CommitmentsHashMismatch
)

func (ci ReasonForInvalidity) Error() string {
	switch ci {
	case ExecutionError:
		return "failed to execute `validate_block`"
	case InvalidOutputs:
		return "validation outputs check doesn't pass"
	case Timeout:
		return "execution timeout"
	case ParamsTooLarge:
		return "validation input is over the limit"
	case CodeTooLarge:
		return "code size is over the limit"
	case PoVDecompressionFailure:
		return "PoV does not decompress correctly"
	case BadReturn:
		return "validation function returned invalid data"
	case BadParent:
		return "invalid relay chain parent"
	case PoVHashMismatch:
		return "PoV hash does not match"
	case BadSignature:
		return "bad collator signature"
	case ParaHeadHashMismatch:
		return "para head hash does not match"
	case CodeHashMismatch:
		return "validation code hash does not match"
	case CommitmentsHashMismatch:
		return "validation has generated different candidate commitments"
	default:
		return "unknown invalidity reason"
	}
}
