package consensus

import (
	"github.com/VanshSahay/lumen/beacon"
)

// phase tracks the verifier's own lifecycle: Uninit -> Bootstrapped ->
// Operating. There is no terminal phase; the core never self-destroys.
type phase int

const (
	phaseUninit phase = iota
	phaseBootstrapped
	phaseOperating
)

// V is the single in-memory record the consensus verifier owns. It is
// mutated only by Verifier.Bootstrap and Verifier.IngestUpdate; every
// other reader gets a copy of the fields it needs.
type V struct {
	FinalizedHeader       beacon.BeaconBlockHeader
	OptimisticHeader      beacon.BeaconBlockHeader
	OptimisticParticipation int

	CurrentSyncCommittee *beacon.SyncCommittee
	NextSyncCommittee    *beacon.SyncCommittee

	LatestExecution beacon.ExecutionPayloadHeader

	GenesisValidatorsRoot beacon.Root

	// CurrentSlotEstimate is a monotonically non-decreasing estimate of
	// wall-clock slot, advanced only by the caller (via the
	// current_slot_hint argument to IngestUpdate) — it bounds update
	// acceptance and is never inferred by the verifier itself.
	CurrentSlotEstimate uint64
}

// snapshot returns a shallow copy of v suitable for returning to callers:
// the two *SyncCommittee pointers are shared (committees are large,
// immutable snapshots per design), every other field is a value copy.
func (v *V) snapshot() V {
	cp := *v
	return cp
}

// Verifier owns V and applies Bootstrap/IngestUpdate transitions to it.
// It holds no other mutable state; proof verification (package state) is
// entirely separate and stateless.
type Verifier struct {
	cfg      *Config
	phase    phase
	v        V
	counters rejectionCounters
}

// NewVerifier constructs a Verifier in the Uninit phase. cfg must satisfy
// Validate(); NewVerifier does not validate it itself so callers that built
// cfg via DefaultConfig are not charged a redundant check on every process
// start — call cfg.Validate() explicitly if cfg is attacker- or
// config-file-derived.
func NewVerifier(cfg *Config) *Verifier {
	return &Verifier{cfg: cfg, phase: phaseUninit}
}

// State returns a copy of the current verified state. Returns
// (_, false) before a successful Bootstrap.
func (vf *Verifier) State() (V, bool) {
	if vf.phase == phaseUninit {
		return V{}, false
	}
	return vf.v.snapshot(), true
}

// Period returns the sync-committee period containing slot.
func Period(slot uint64) uint64 {
	return beacon.Period(slot)
}
