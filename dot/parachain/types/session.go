// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachaintypes

// SessionIndex is a session index.
type SessionIndex uint32

// ValidatorIndex represents a validator index in the session's validator set.
type ValidatorIndex uint32

// GroupIndex is the unique identifier for a group of validators.
type GroupIndex uint32

// CoreIndex The unique (during session) index of a core.
type CoreIndex struct {
	Index uint32
}

// ValidatorID represents a validator ID
type ValidatorID [32]byte

// AuthorityDiscoveryID is the sr25519 public key an authority uses for discovery on the network.
type AuthorityDiscoveryID [32]byte

// SessionInfo is information about validator sets of a session.
type SessionInfo struct {
	// All the validators actively participating in parachain consensus.
	ActiveValidatorIndices []ValidatorIndex
	// A secure random seed for the session, gathered from BABE.
	RandomSeed [32]byte
	// The amount of sessions to keep for disputes.
	DisputePeriod SessionIndex
	// Validators in canonical ordering.
	Validators []ValidatorID
	// Validators' authority discovery keys for the session in canonical ordering.
	DiscoveryKeys []AuthorityDiscoveryID
	// The assignment keys for validators.
	AssignmentKeys []ValidatorID
	// Validators in shuffled ordering - these are the validator groups as produced
	// by the `Scheduler` module for the session and are typically referred to by
	// `GroupIndex`.
	ValidatorGroups [][]ValidatorIndex
	// The number of availability cores used by the protocol during this session.
	NCores uint32
	// The zeroth delay tranche width.
	ZerothDelayTrancheWidth uint32
	// The number of samples we do of `relay_vrf_modulo`.
	RelayVRFModuloSamples uint32
	// The number of delay tranches in total.
	NDelayTranches uint32
	// How many slots (BABE / SASSAFRAS) must pass before an assignment is considered a
	// no-show.
	NoShowSlots uint32
	// The number of validators needed to approve a block.
	NeededApprovals uint32
}
