package consensus

import (
	"github.com/ethereum/go-ethereum/log"

	"github.com/VanshSahay/lumen/beacon"
	"github.com/VanshSahay/lumen/crypto"
	"github.com/VanshSahay/lumen/ssz"
)

// Bootstrap transitions the verifier Uninit -> Bootstrapped. It:
//
//  1. verifies the current sync committee's hash-tree-root against
//     bootstrap.header.state_root via its Merkle branch;
//  2. recomputes and checks the committee's aggregate pubkey;
//  3. initializes V with finalized_header = optimistic_header =
//     bootstrap.header, current_sync_committee pinned, next_sync_committee
//     unset, and genesis_validators_root pinned for the lifetime of the
//     verifier.
//
// On any failure V is left untouched (it was never initialized) and the
// verifier stays in the Uninit phase.
func (vf *Verifier) Bootstrap(bootstrap *beacon.LightClientBootstrap, genesisValidatorsRoot beacon.Root) (V, error) {
	gindices, err := vf.cfg.gindicesAt(bootstrap.Header.Slot)
	if err != nil {
		log.Warn("bootstrap rejected: unsupported fork", "slot", bootstrap.Header.Slot)
		return V{}, err
	}

	committeeRoot := bootstrap.CurrentSyncCommittee.HashTreeRoot()
	if err := ssz.VerifyMerkleBranchChecked(
		committeeRoot,
		bootstrap.CurrentSyncCommitteeBranch,
		gindices.CurrentSyncCommittee,
		bootstrap.Header.StateRoot,
	); err != nil {
		log.Warn("bootstrap rejected: sync committee branch invalid", "err", err)
		return V{}, &BootstrapBranchInvalid{}
	}

	if err := verifyAggregatePubkey(&bootstrap.CurrentSyncCommittee); err != nil {
		log.Warn("bootstrap rejected: aggregate pubkey mismatch")
		return V{}, err
	}

	vf.v = V{
		FinalizedHeader:         bootstrap.Header,
		OptimisticHeader:        bootstrap.Header,
		OptimisticParticipation: 0,
		CurrentSyncCommittee:    &bootstrap.CurrentSyncCommittee,
		NextSyncCommittee:       nil,
		LatestExecution:         bootstrap.ExecutionPayloadHeader,
		GenesisValidatorsRoot:   genesisValidatorsRoot,
		CurrentSlotEstimate:     bootstrap.Header.Slot,
	}
	vf.phase = phaseBootstrapped
	log.Info("bootstrap accepted", "slot", bootstrap.Header.Slot)
	return vf.v.snapshot(), nil
}

// verifyAggregatePubkey recomputes the elliptic-curve sum of a committee's
// member pubkeys and checks it against the committee's stated aggregate
// (spec invariant I5 / property P6) — never trusted from input.
func verifyAggregatePubkey(committee *beacon.SyncCommittee) error {
	parsed := make([]*crypto.PublicKey, len(committee.Pubkeys))
	for i, pk := range committee.Pubkeys {
		p, err := crypto.ParsePublicKey(pk[:])
		if err != nil {
			return &AggregatePubkeyMismatch{}
		}
		parsed[i] = p
	}
	agg := crypto.AggregatePublicKeys(parsed)
	if agg == nil {
		return &AggregatePubkeyMismatch{}
	}
	got := agg.Compress()
	if len(got) != len(committee.AggregatePubkey) {
		return &AggregatePubkeyMismatch{}
	}
	for i := range got {
		if got[i] != committee.AggregatePubkey[i] {
			return &AggregatePubkeyMismatch{}
		}
	}
	return nil
}
