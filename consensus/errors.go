package consensus

import "fmt"

// ErrorClass groups the verifier's enumerated errors into the four
// categories the core reports at its boundary: a caller routes recovery
// logic off the class, not off the concrete error type.
type ErrorClass int

const (
	// ClassParse covers malformed JSON/hex/RLP/compact-path/SSZ field sizes.
	ClassParse ErrorClass = iota
	// ClassCrypto covers BLS parse/subgroup/verification failures and
	// hash/branch root mismatches.
	ClassCrypto
	// ClassState covers violations of the verifier's own preconditions.
	ClassState
	// ClassPolicy covers acceptance-policy rejections that are not
	// themselves evidence of a bad actor (participation, staleness, slot
	// tolerance).
	ClassPolicy
)

func (c ErrorClass) String() string {
	switch c {
	case ClassParse:
		return "parse"
	case ClassCrypto:
		return "crypto"
	case ClassState:
		return "state"
	case ClassPolicy:
		return "policy"
	default:
		return "unknown"
	}
}

// Classified is implemented by every error the core returns at its
// boundary, letting collaborators bucket a rejection for metrics/logging
// without a type switch over every concrete error.
type Classified interface {
	error
	Classify() ErrorClass
}

// BootstrapBranchInvalid means the current sync committee's Merkle branch
// did not resolve to the bootstrap header's state root.
type BootstrapBranchInvalid struct{}

func (e *BootstrapBranchInvalid) Error() string   { return "consensus: bootstrap sync committee branch invalid" }
func (e *BootstrapBranchInvalid) Classify() ErrorClass { return ClassCrypto }

// AggregatePubkeyMismatch means a sync committee's stated aggregate pubkey
// does not equal the elliptic-curve sum of its member pubkeys.
type AggregatePubkeyMismatch struct{}

func (e *AggregatePubkeyMismatch) Error() string   { return "consensus: aggregate pubkey does not match recomputed sum" }
func (e *AggregatePubkeyMismatch) Classify() ErrorClass { return ClassCrypto }

// UnsupportedFork means the queried slot falls outside every entry of the
// configured fork schedule.
type UnsupportedFork struct{ Slot uint64 }

func (e *UnsupportedFork) Error() string {
	return fmt.Sprintf("consensus: slot %d is not covered by the fork schedule", e.Slot)
}
func (e *UnsupportedFork) Classify() ErrorClass { return ClassParse }

// InsufficientParticipation means the sync aggregate's popcount fell below
// the 2/3 quorum threshold.
type InsufficientParticipation struct {
	Got, Required int
}

func (e *InsufficientParticipation) Error() string {
	return fmt.Sprintf("consensus: participation %d below required %d", e.Got, e.Required)
}
func (e *InsufficientParticipation) Classify() ErrorClass { return ClassPolicy }

// StaleUpdate means the attested header does not improve on V's current
// optimistic header by slot or by participation at equal slot.
type StaleUpdate struct{ AttestedSlot, OptimisticSlot uint64 }

func (e *StaleUpdate) Error() string {
	return fmt.Sprintf("consensus: attested slot %d is not newer than current optimistic slot %d", e.AttestedSlot, e.OptimisticSlot)
}
func (e *StaleUpdate) Classify() ErrorClass { return ClassPolicy }

// SlotBeyondTolerance means signature_slot exceeds the current slot
// estimate by more than the configured tolerance.
type SlotBeyondTolerance struct{ SignatureSlot, CurrentEstimate, Tolerance uint64 }

func (e *SlotBeyondTolerance) Error() string {
	return fmt.Sprintf("consensus: signature slot %d exceeds estimate %d by more than tolerance %d",
		e.SignatureSlot, e.CurrentEstimate, e.Tolerance)
}
func (e *SlotBeyondTolerance) Classify() ErrorClass { return ClassPolicy }

// NotBootstrapped means an update or query was attempted before a
// successful bootstrap initialised V.
type NotBootstrapped struct{}

func (e *NotBootstrapped) Error() string   { return "consensus: verifier has not been bootstrapped" }
func (e *NotBootstrapped) Classify() ErrorClass { return ClassState }

// NoNextSyncCommittee means signature_slot falls in the period following
// V.finalized_header but no next sync committee has been authenticated yet.
type NoNextSyncCommittee struct{}

func (e *NoNextSyncCommittee) Error() string   { return "consensus: next sync committee required but not yet known" }
func (e *NoNextSyncCommittee) Classify() ErrorClass { return ClassState }

// FinalityBranchInvalid means the finalized header's Merkle branch did not
// resolve to the attested header's state root.
type FinalityBranchInvalid struct{}

func (e *FinalityBranchInvalid) Error() string   { return "consensus: finality branch invalid" }
func (e *FinalityBranchInvalid) Classify() ErrorClass { return ClassCrypto }

// NextCommitteeBranchInvalid means the next sync committee's Merkle branch
// did not resolve to the attested header's state root.
type NextCommitteeBranchInvalid struct{}

func (e *NextCommitteeBranchInvalid) Error() string   { return "consensus: next sync committee branch invalid" }
func (e *NextCommitteeBranchInvalid) Classify() ErrorClass { return ClassCrypto }

// SignatureInvalid means the sync committee's aggregate BLS signature did
// not verify over the computed signing root.
type SignatureInvalid struct{}

func (e *SignatureInvalid) Error() string   { return "consensus: sync committee signature invalid" }
func (e *SignatureInvalid) Classify() ErrorClass { return ClassCrypto }

// FreshnessViolation means signature_slot/attested_header/finalized_header
// failed the basic slot-ordering sanity check.
type FreshnessViolation struct{ Detail string }

func (e *FreshnessViolation) Error() string { return "consensus: freshness check failed: " + e.Detail }
func (e *FreshnessViolation) Classify() ErrorClass { return ClassPolicy }

// InvariantViolation is raised (by panicking, never returned as a value)
// when the verifier detects its own invariants have broken despite only
// ever applying authenticated transitions — a bug in this code, not
// adversarial input.
type InvariantViolation struct{ Detail string }

func (e *InvariantViolation) Error() string {
	return "consensus: invariant violation (implementation bug): " + e.Detail
}
