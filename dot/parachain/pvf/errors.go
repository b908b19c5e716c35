// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package pvf

import (
	"errors"
	"fmt"
)

// ErrHostStopped is returned for requests made to a stopped host.
var ErrHostStopped = errors.New("validation host is stopped")

// PrepareErrorKind is the kind of failure that happened while preparing a PVF.
type PrepareErrorKind byte

const (
	// Prevalidation the code failed to pass the pre-validation checks.
	Prevalidation PrepareErrorKind = iota
	// Preparation the code could not be compiled.
	Preparation
	// JobError an unexpected error occurred in the preparation job.
	JobError
	// RuntimeConstruction the runtime could not be instantiated from the artifact.
	RuntimeConstruction
	// TimedOut preparation took longer than the preparation timeout.
	TimedOut
	// IoErr the artifact could not be written or read.
	IoErr
	// JobDied the preparation job died.
	JobDied
	// OutOfMemory the preparation job exceeded its memory limit.
	OutOfMemory
)

func (k PrepareErrorKind) String() string {
	switch k {
	case Prevalidation:
		return "prevalidation"
	case Preparation:
		return "preparation"
	case JobError:
		return "job error"
	case RuntimeConstruction:
		return "runtime construction"
	case TimedOut:
		return "timed out"
	case IoErr:
		return "io error"
	case JobDied:
		return "job died"
	case OutOfMemory:
		return "out of memory"
	default:
		return fmt.Sprintf("PrepareErrorKind(%d)", byte(k))
	}
}

// PrepareError is an error that occurred while preparing a PVF.
type PrepareError struct {
	Kind PrepareErrorKind
	Msg  string
}

func (e *PrepareError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("prepare: %s", e.Kind)
	}
	return fmt.Sprintf("prepare: %s: %s", e.Kind, e.Msg)
}

// IsDeterministic returns true if the same code would fail to prepare the same way on every node.
// Only deterministic failures may be used to vote against a PVF.
func (e *PrepareError) IsDeterministic() bool {
	switch e.Kind {
	case Prevalidation, Preparation, JobError, OutOfMemory:
		return true
	default:
		return false
	}
}

// InvalidCandidateKind is the kind of an InvalidCandidateError.
type InvalidCandidateKind byte

const (
	// HardTimeout the execution took longer than the execution timeout.
	HardTimeout InvalidCandidateKind = iota
	// WorkerReportedInvalid the execution worker reported the candidate as invalid.
	WorkerReportedInvalid
)

// InvalidCandidateError is returned when the candidate is invalid for certain.
type InvalidCandidateError struct {
	Kind InvalidCandidateKind
	Msg  string
}

func (e *InvalidCandidateError) Error() string {
	switch e.Kind {
	case HardTimeout:
		return "invalid candidate: hard timeout"
	default:
		return fmt.Sprintf("invalid candidate: worker reported invalid: %s", e.Msg)
	}
}

// PossiblyInvalidKind is the kind of a PossiblyInvalidError.
type PossiblyInvalidKind byte

const (
	// AmbiguousWorkerDeath the execution worker died unexpectedly.
	AmbiguousWorkerDeath PossiblyInvalidKind = iota
	// AmbiguousJobDeath the execution job died unexpectedly.
	AmbiguousJobDeath
	// JobErr an unexpected error occurred in the execution job.
	JobErr
	// RuntimeConstructionErr the runtime could not be constructed from the artifact.
	RuntimeConstructionErr
)

func (k PossiblyInvalidKind) String() string {
	switch k {
	case AmbiguousWorkerDeath:
		return "ambiguous worker death"
	case AmbiguousJobDeath:
		return "ambiguous job death"
	case JobErr:
		return "job error"
	case RuntimeConstructionErr:
		return "runtime construction"
	default:
		return fmt.Sprintf("PossiblyInvalidKind(%d)", byte(k))
	}
}

// PossiblyInvalidError is returned when the candidate may be invalid but the failure could also
// be caused by the local machine. Retrying may help.
type PossiblyInvalidError struct {
	Kind PossiblyInvalidKind
	Msg  string
}

func (e *PossiblyInvalidError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("possibly invalid: %s", e.Kind)
	}
	return fmt.Sprintf("possibly invalid: %s: %s", e.Kind, e.Msg)
}

// InternalValidationError is a failure of the validation host itself, unrelated to the candidate.
type InternalValidationError struct {
	Err error
}

func (e *InternalValidationError) Error() string {
	return fmt.Sprintf("internal validation error: %s", e.Err)
}

func (e *InternalValidationError) Unwrap() error {
	return e.Err
}

// PreparationError is returned by validation requests whose PVF failed to prepare
// deterministically.
type PreparationError struct {
	Err *PrepareError
}

func (e *PreparationError) Error() string {
	return fmt.Sprintf("preparation failed: %s", e.Err)
}

func (e *PreparationError) Unwrap() error {
	return e.Err
}

// NewValidationErrorFromPrepare converts a preparation failure into the error returned by a
// validation request: deterministic failures become a PreparationError, everything else is internal.
func NewValidationErrorFromPrepare(err error) error {
	var prepareErr *PrepareError
	if errors.As(err, &prepareErr) && prepareErr.IsDeterministic() {
		return &PreparationError{Err: prepareErr}
	}

	var internalErr *InternalValidationError
	if errors.As(err, &internalErr) {
		return internalErr
	}
	return &InternalValidationError{Err: err}
}
