package consensus

import (
	"github.com/ethereum/go-ethereum/log"

	"github.com/VanshSahay/lumen/beacon"
	"github.com/VanshSahay/lumen/crypto"
	"github.com/VanshSahay/lumen/signing"
	"github.com/VanshSahay/lumen/ssz"
)

// UpdateResult is what IngestUpdate reports back on success.
type UpdateResult struct {
	Verified      bool
	Advanced      bool
	FinalizedSlot uint64
	OptimisticSlot uint64
	Participation int
	Execution     beacon.ExecutionPayloadHeader
}

// rejectionCounters tallies non-fatal rejections for observability. Never
// consulted for correctness — a counter increment never changes an output.
type rejectionCounters struct {
	Parse, Crypto, State, Policy uint64
}

func (c *rejectionCounters) record(err error) {
	if cl, ok := err.(Classified); ok {
		switch cl.Classify() {
		case ClassParse:
			c.Parse++
		case ClassCrypto:
			c.Crypto++
		case ClassState:
			c.State++
		case ClassPolicy:
			c.Policy++
		}
	}
}

// Counters returns a copy of the verifier's accumulated rejection tallies.
func (vf *Verifier) Counters() (parse, cryptoC, state, policy uint64) {
	return vf.counters.Parse, vf.counters.Crypto, vf.counters.State, vf.counters.Policy
}

// IngestUpdate applies a finality update, optimistic update, or full
// sync-committee rotation update to V. currentSlotHint advances
// V.CurrentSlotEstimate if it is newer (the estimate is monotonic and
// supplied by the caller, never inferred).
//
// Processing runs six ordered checks; a failure at any stage rejects the
// update atomically — V is never partially mutated.
func (vf *Verifier) IngestUpdate(update *beacon.LightClientUpdate, currentSlotHint uint64) (UpdateResult, error) {
	if vf.phase == phaseUninit {
		return UpdateResult{}, &NotBootstrapped{}
	}
	prevEstimate := vf.v.CurrentSlotEstimate
	if currentSlotHint > vf.v.CurrentSlotEstimate {
		vf.v.CurrentSlotEstimate = currentSlotHint
	}

	res, err := vf.applyUpdate(update)
	if err != nil {
		vf.v.CurrentSlotEstimate = prevEstimate
		vf.counters.record(err)
		log.Debug("update rejected", "err", err)
		return UpdateResult{}, err
	}
	return res, nil
}

func (vf *Verifier) applyUpdate(update *beacon.LightClientUpdate) (UpdateResult, error) {
	v := &vf.v

	// 1. Freshness & sanity.
	if update.SignatureSlot <= update.AttestedHeader.Slot {
		return UpdateResult{}, &FreshnessViolation{Detail: "signature_slot must be greater than attested_header.slot"}
	}
	if update.FinalizedHeader != nil && update.AttestedHeader.Slot < update.FinalizedHeader.Slot {
		return UpdateResult{}, &FreshnessViolation{Detail: "attested_header.slot must be >= finalized_header.slot"}
	}
	if update.AttestedHeader.Slot < v.FinalizedHeader.Slot {
		return UpdateResult{}, &FreshnessViolation{Detail: "attested_header.slot must not regress behind the currently finalized header"}
	}
	participation := update.SyncAggregate.ParticipationCount()
	isBetter := update.AttestedHeader.Slot > v.OptimisticHeader.Slot ||
		(update.AttestedHeader.Slot == v.OptimisticHeader.Slot && participation > v.OptimisticParticipation)
	if update.AttestedHeader.Slot <= v.OptimisticHeader.Slot && !isBetter {
		return UpdateResult{}, &StaleUpdate{AttestedSlot: update.AttestedHeader.Slot, OptimisticSlot: v.OptimisticHeader.Slot}
	}
	if update.SignatureSlot > v.CurrentSlotEstimate+vf.cfg.SlotTolerance {
		return UpdateResult{}, &SlotBeyondTolerance{
			SignatureSlot:    update.SignatureSlot,
			CurrentEstimate:  v.CurrentSlotEstimate,
			Tolerance:        vf.cfg.SlotTolerance,
		}
	}

	// Edge case: an optimistic-only update whose attested header repeats
	// the current optimistic header is a no-op.
	if update.FinalizedHeader == nil && update.NextSyncCommittee == nil &&
		update.AttestedHeader == v.OptimisticHeader {
		return UpdateResult{
			Verified:       true,
			Advanced:       false,
			FinalizedSlot:  v.FinalizedHeader.Slot,
			OptimisticSlot: v.OptimisticHeader.Slot,
			Participation:  v.OptimisticParticipation,
			Execution:      v.LatestExecution,
		}, nil
	}

	// 2. Participation.
	if participation < vf.cfg.ParticipationThreshold {
		return UpdateResult{}, &InsufficientParticipation{Got: participation, Required: vf.cfg.ParticipationThreshold}
	}

	// 3. Committee selection.
	sigPeriod := beacon.Period(update.SignatureSlot)
	finalizedPeriod := beacon.Period(v.FinalizedHeader.Slot)
	var committee *beacon.SyncCommittee
	switch sigPeriod {
	case finalizedPeriod:
		committee = v.CurrentSyncCommittee
	case finalizedPeriod + 1:
		committee = v.NextSyncCommittee
		if committee == nil {
			return UpdateResult{}, &NoNextSyncCommittee{}
		}
	default:
		return UpdateResult{}, &NoNextSyncCommittee{}
	}

	// 4. Signature verification.
	forkVersion, err := vf.cfg.forkVersionAt(update.SignatureSlot)
	if err != nil {
		return UpdateResult{}, err
	}
	gindices, err := vf.cfg.gindicesAt(update.SignatureSlot)
	if err != nil {
		return UpdateResult{}, err
	}
	headerRoot := update.AttestedHeader.HashTreeRoot()
	signingRoot := signing.ComputeSigningRoot(
		headerRoot,
		signing.ComputeDomain(signing.DomainSyncCommittee, forkVersion, v.GenesisValidatorsRoot),
	)
	if err := verifySyncAggregate(committee, &update.SyncAggregate, signingRoot); err != nil {
		return UpdateResult{}, err
	}

	// 5. Finality branch (finality update only).
	if update.FinalizedHeader != nil {
		finalizedRoot := update.FinalizedHeader.HashTreeRoot()
		if err := ssz.VerifyMerkleBranchChecked(
			finalizedRoot, update.FinalityBranch, gindices.FinalizedRoot, update.AttestedHeader.StateRoot,
		); err != nil {
			return UpdateResult{}, &FinalityBranchInvalid{}
		}
	}

	// 6. Committee rotation branch.
	if update.NextSyncCommittee != nil {
		nextRoot := update.NextSyncCommittee.HashTreeRoot()
		if err := ssz.VerifyMerkleBranchChecked(
			nextRoot, update.NextSyncCommitteeBranch, gindices.NextSyncCommittee, update.AttestedHeader.StateRoot,
		); err != nil {
			return UpdateResult{}, &NextCommitteeBranchInvalid{}
		}
		if err := verifyAggregatePubkey(update.NextSyncCommittee); err != nil {
			return UpdateResult{}, err
		}
	}

	// All checks passed: mutate V atomically.
	v.OptimisticHeader = update.AttestedHeader
	v.OptimisticParticipation = participation

	advanced := false
	if update.FinalizedHeader != nil && update.FinalizedHeader.Slot > v.FinalizedHeader.Slot {
		v.FinalizedHeader = *update.FinalizedHeader
		advanced = true
		if update.FinalizedExecutionPayload != nil {
			v.LatestExecution = *update.FinalizedExecutionPayload
		}
	}

	// Period rotation: check after finalized_header may have moved, and
	// rotate from the committee staged by a *prior* update before this
	// update's own next_sync_committee (if any) overwrites it — a single
	// update can both cross a period boundary and carry the following
	// period's committee, per apply_light_client_update's
	// current <- old next; next <- update.next_sync_committee order.
	if beacon.Period(v.FinalizedHeader.Slot) != finalizedPeriod {
		if v.NextSyncCommittee == nil {
			panic(&InvariantViolation{Detail: "period rotation occurred without a staged next sync committee"})
		}
		v.CurrentSyncCommittee = v.NextSyncCommittee
		v.NextSyncCommittee = nil
	}

	if update.NextSyncCommittee != nil {
		if v.NextSyncCommittee == nil || v.NextSyncCommittee.HashTreeRoot() != update.NextSyncCommittee.HashTreeRoot() {
			v.NextSyncCommittee = update.NextSyncCommittee
		}
	}

	vf.phase = phaseOperating

	log.Info("update accepted", "finalized_slot", v.FinalizedHeader.Slot, "optimistic_slot", v.OptimisticHeader.Slot, "participation", participation)

	return UpdateResult{
		Verified:       true,
		Advanced:       advanced,
		FinalizedSlot:  v.FinalizedHeader.Slot,
		OptimisticSlot: v.OptimisticHeader.Slot,
		Participation:  participation,
		Execution:      v.LatestExecution,
	}, nil
}

// verifySyncAggregate recomputes the aggregate public key of the
// participating members of committee and verifies the aggregate signature
// over signingRoot.
func verifySyncAggregate(committee *beacon.SyncCommittee, agg *beacon.SyncAggregate, signingRoot [32]byte) error {
	var participants []*crypto.PublicKey
	for i, pk := range committee.Pubkeys {
		if !agg.SyncCommitteeBits.Get(i) {
			continue
		}
		p, err := crypto.ParsePublicKey(pk[:])
		if err != nil {
			return &SignatureInvalid{}
		}
		participants = append(participants, p)
	}
	aggPubkey := crypto.AggregatePublicKeys(participants)
	if aggPubkey == nil {
		return &SignatureInvalid{}
	}
	sig, err := crypto.ParseSignature(agg.SyncCommitteeSignature[:])
	if err != nil {
		return &SignatureInvalid{}
	}
	if err := crypto.Verify(aggPubkey, signingRoot[:], sig); err != nil {
		return &SignatureInvalid{}
	}
	return nil
}
