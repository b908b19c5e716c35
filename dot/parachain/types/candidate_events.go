// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachaintypes

// CandidateEvent is an event concerning a candidate, emitted by the runtime at a relay chain block.
type CandidateEvent interface {
	isCandidateEvent()
}

// CandidateBacked This candidate receipt was backed in the most recent block.
// This includes the core index the candidate is now occupying.
type CandidateBacked struct {
	CandidateReceipt CandidateReceipt
	HeadData         HeadData
	CoreIndex        CoreIndex
	GroupIndex       GroupIndex
}

func (CandidateBacked) isCandidateEvent() {}

// CandidateIncluded This candidate receipt was included and became a parablock at the most recent block.
// This includes the core index the candidate was occupying as well as the group responsible
// for backing the candidate.
type CandidateIncluded struct {
	CandidateReceipt CandidateReceipt
	HeadData         HeadData
	CoreIndex        CoreIndex
	GroupIndex       GroupIndex
}

func (CandidateIncluded) isCandidateEvent() {}

// CandidateTimedOut This candidate receipt was not made available in time and timed out.
// This includes the core index the candidate was occupying.
type CandidateTimedOut struct {
	CandidateReceipt CandidateReceipt
	HeadData         HeadData
	CoreIndex        CoreIndex
}

func (CandidateTimedOut) isCandidateEvent() {}
