// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package pvf

import (
	"context"
	"fmt"
	"time"

	parachaintypes "github.com/ChainSafe/candidate-validation/dot/parachain/types"
	"github.com/ChainSafe/candidate-validation/lib/common"
	"golang.org/x/sync/semaphore"
)

// Priority is the priority of a preparation or execution request.
type Priority byte

const (
	// PriorityNormal is used for backing and pre-checking work.
	PriorityNormal Priority = iota
	// PriorityCritical is used for approval and dispute work, which must not be starved.
	PriorityCritical
)

func (p Priority) String() string {
	if p == PriorityCritical {
		return "critical"
	}
	return "normal"
}

// PrepareJobKind is the kind of preparation job.
type PrepareJobKind byte

const (
	// Compilation prepares an artifact to execute candidates with.
	Compilation PrepareJobKind = iota
	// Prechecking prepares an artifact to vote on the PVF during pre-checking.
	Prechecking
)

// ArtifactID identifies a prepared artifact: the same code prepared under different
// executor params yields different artifacts.
type ArtifactID struct {
	CodeHash           parachaintypes.ValidationCodeHash
	ExecutorParamsHash common.Hash
}

func (id ArtifactID) String() string {
	return fmt.Sprintf("%s_%s", id.CodeHash, id.ExecutorParamsHash)
}

// PvfPrepData is the data needed to prepare a PVF.
type PvfPrepData struct {
	code               []byte
	codeHash           parachaintypes.ValidationCodeHash
	executorParams     parachaintypes.ExecutorParams
	executorParamsHash common.Hash
	prepTimeout        time.Duration
	kind               PrepareJobKind
}

// NewPvfPrepData creates the preparation data for the decompressed code.
func NewPvfPrepData(code []byte, executorParams parachaintypes.ExecutorParams, prepTimeout time.Duration,
	kind PrepareJobKind) (*PvfPrepData, error) {
	codeHash, err := parachaintypes.ValidationCode(code).Hash()
	if err != nil {
		return nil, fmt.Errorf("hashing code: %w", err)
	}

	executorParamsHash, err := executorParams.Hash()
	if err != nil {
		return nil, fmt.Errorf("hashing executor params: %w", err)
	}

	return &PvfPrepData{
		code:               code,
		codeHash:           codeHash,
		executorParams:     executorParams,
		executorParamsHash: executorParamsHash,
		prepTimeout:        prepTimeout,
		kind:               kind,
	}, nil
}

// Code returns the decompressed validation code.
func (d *PvfPrepData) Code() []byte { return d.code }

// CodeHash returns the hash of the decompressed code.
func (d *PvfPrepData) CodeHash() parachaintypes.ValidationCodeHash { return d.codeHash }

// ExecutorParams returns the executor params the code is prepared with.
func (d *PvfPrepData) ExecutorParams() parachaintypes.ExecutorParams { return d.executorParams }

// PrepTimeout returns the preparation timeout.
func (d *PvfPrepData) PrepTimeout() time.Duration { return d.prepTimeout }

// Kind returns the preparation job kind.
func (d *PvfPrepData) Kind() PrepareJobKind { return d.kind }

// ArtifactID returns the id of the artifact prepared from this data.
func (d *PvfPrepData) ArtifactID() ArtifactID {
	return ArtifactID{
		CodeHash:           d.codeHash,
		ExecutorParamsHash: d.executorParamsHash,
	}
}

// preparePool bounds the number of concurrent preparations. Normal priority jobs may only use
// up to the soft limit, critical jobs may use up to the hard limit.
type preparePool struct {
	soft *semaphore.Weighted
	hard *semaphore.Weighted
}

func newPreparePool(softMax, hardMax int) *preparePool {
	return &preparePool{
		soft: semaphore.NewWeighted(int64(softMax)),
		hard: semaphore.NewWeighted(int64(hardMax)),
	}
}

// acquire blocks until a preparation slot for the priority is free.
// The returned function releases the slot.
func (p *preparePool) acquire(ctx context.Context, priority Priority) (release func(), err error) {
	if priority == PriorityCritical {
		if err := p.hard.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		return func() { p.hard.Release(1) }, nil
	}

	if err := p.soft.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	if err := p.hard.Acquire(ctx, 1); err != nil {
		p.soft.Release(1)
		return nil, err
	}
	return func() {
		p.hard.Release(1)
		p.soft.Release(1)
	}, nil
}
