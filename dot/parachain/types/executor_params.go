// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachaintypes

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ChainSafe/candidate-validation/lib/common"
	cscale "github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
)

// PvfPrepKind is the type of PVF preparation a timeout applies to.
type PvfPrepKind uint8

const (
	// Precheck is the preparation done during pre-checking.
	Precheck PvfPrepKind = iota
	// Prepare is the preparation done before backing or approval execution.
	Prepare
)

func (k PvfPrepKind) String() string {
	switch k {
	case Precheck:
		return "precheck"
	case Prepare:
		return "prepare"
	default:
		return fmt.Sprintf("PvfPrepKind(%d)", uint8(k))
	}
}

// PvfExecKind is the type of PVF execution a timeout applies to.
type PvfExecKind uint8

const (
	// Backing is the execution done while backing a candidate.
	Backing PvfExecKind = iota
	// Approval is the execution done while approving a candidate.
	Approval
)

func (k PvfExecKind) String() string {
	switch k {
	case Backing:
		return "backing"
	case Approval:
		return "approval"
	default:
		return fmt.Sprintf("PvfExecKind(%d)", uint8(k))
	}
}

// ExecutorParam is a single parameter of the PVF execution environment.
type ExecutorParam interface {
	Index() uint
}

// MaxMemoryPages is the maximum number of memory pages (64KiB bytes per page) the executor can allocate.
type MaxMemoryPages uint32

// Index returns the variant index
func (MaxMemoryPages) Index() uint { return 1 }

// StackLogicalMax is the wasm logical stack size limit (max. number of Wasm values on stack).
type StackLogicalMax uint32

// Index returns the variant index
func (StackLogicalMax) Index() uint { return 2 }

// StackNativeMax is the executor machine stack size limit, in bytes.
type StackNativeMax uint32

// Index returns the variant index
func (StackNativeMax) Index() uint { return 3 }

// PrecheckingMaxMemory is the max memory allowed during pre-checking, in bytes.
type PrecheckingMaxMemory uint64

// Index returns the variant index
func (PrecheckingMaxMemory) Index() uint { return 4 }

// PvfPrepTimeout is a PVF preparation timeout, in milliseconds.
type PvfPrepTimeout struct {
	Kind     PvfPrepKind
	Millisec uint64
}

// Index returns the variant index
func (PvfPrepTimeout) Index() uint { return 5 }

// PvfExecTimeout is a PVF execution timeout, in milliseconds.
type PvfExecTimeout struct {
	Kind     PvfExecKind
	Millisec uint64
}

// Index returns the variant index
func (PvfExecTimeout) Index() uint { return 6 }

// WasmExtBulkMemory enables the WebAssembly bulk memory proposal.
type WasmExtBulkMemory struct{}

// Index returns the variant index
func (WasmExtBulkMemory) Index() uint { return 7 }

// ExecutorParams represents the abstract semantics of an execution environment and should remain
// as abstract as possible.
type ExecutorParams []ExecutorParam

// PvfPrepTimeout returns the preparation timeout set for the given kind, if any.
func (ep ExecutorParams) PvfPrepTimeout(kind PvfPrepKind) (time.Duration, bool) {
	for _, param := range ep {
		if p, ok := param.(PvfPrepTimeout); ok && p.Kind == kind {
			return time.Duration(p.Millisec) * time.Millisecond, true
		}
	}
	return 0, false
}

// PvfExecTimeout returns the execution timeout set for the given kind, if any.
func (ep ExecutorParams) PvfExecTimeout(kind PvfExecKind) (time.Duration, bool) {
	for _, param := range ep {
		if p, ok := param.(PvfExecTimeout); ok && p.Kind == kind {
			return time.Duration(p.Millisec) * time.Millisecond, true
		}
	}
	return 0, false
}

// Encode SCALE encodes the executor params as a vector of enum variants.
func (ep ExecutorParams) Encode(encoder cscale.Encoder) error {
	if err := encoder.EncodeUintCompact(*big.NewInt(int64(len(ep)))); err != nil {
		return err
	}

	for _, param := range ep {
		if err := encoder.PushByte(byte(param.Index())); err != nil {
			return err
		}

		var err error
		switch p := param.(type) {
		case MaxMemoryPages:
			err = encoder.Encode(uint32(p))
		case StackLogicalMax:
			err = encoder.Encode(uint32(p))
		case StackNativeMax:
			err = encoder.Encode(uint32(p))
		case PrecheckingMaxMemory:
			err = encoder.Encode(uint64(p))
		case PvfPrepTimeout:
			err = encoder.Encode(p)
		case PvfExecTimeout:
			err = encoder.Encode(p)
		case WasmExtBulkMemory:
		default:
			err = fmt.Errorf("unsupported executor param %T", param)
		}
		if err != nil {
			return fmt.Errorf("encoding executor param %T: %w", param, err)
		}
	}
	return nil
}

// Hash returns the hash of the SCALE encoded executor params
func (ep ExecutorParams) Hash() (common.Hash, error) {
	bytes, err := codec.Encode(ep)
	if err != nil {
		return common.Hash{}, fmt.Errorf("encoding executor params: %w", err)
	}
	return common.Blake2bHash(bytes)
}
