package consensus

import (
	"testing"

	"github.com/VanshSahay/lumen/beacon"
)

func testGenesisRoot() beacon.Root {
	return beacon.Root{0xAA, 0xBB, 0xCC, 0xDD}
}

// buildBootstrap constructs a self-consistent LightClientBootstrap: the
// committee's hash-tree-root folds up to header.StateRoot via a fabricated
// branch at the current-sync-committee gindex.
func buildBootstrap(t *testing.T, slot uint64, seed byte) (*beacon.LightClientBootstrap, [][]byte) {
	t.Helper()
	committee, secrets := testCommittee(t, seed)
	committeeRoot := committee.HashTreeRoot()
	stateRoot, branch := buildBranch(committeeRoot, ElectraCurrentSyncCommitteeGindex, seed+1)

	header := beacon.BeaconBlockHeader{
		Slot:          slot,
		ProposerIndex: 7,
		ParentRoot:    beacon.Root{0x01},
		StateRoot:     stateRoot,
		BodyRoot:      beacon.Root{0x02},
	}
	bootstrap := &beacon.LightClientBootstrap{
		Header:                     header,
		CurrentSyncCommittee:       committee,
		CurrentSyncCommitteeBranch: branch,
		ExecutionPayloadHeader: beacon.ExecutionPayloadHeader{
			StateRoot:   beacon.Root{0x03},
			BlockNumber: 100,
			BlockHash:   beacon.Root{0x04},
		},
	}
	return bootstrap, secrets
}

func TestBootstrapAccepts(t *testing.T) {
	bootstrap, _ := buildBootstrap(t, 1000, 0x10)
	vf := NewVerifier(DefaultConfig())
	v, err := vf.Bootstrap(bootstrap, testGenesisRoot())
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if v.FinalizedHeader.Slot != 1000 || v.OptimisticHeader.Slot != 1000 {
		t.Fatalf("unexpected header slots: %+v", v)
	}
	if v.CurrentSyncCommittee.HashTreeRoot() != bootstrap.CurrentSyncCommittee.HashTreeRoot() {
		t.Fatal("stored committee root does not match bootstrap committee root")
	}
	if v.NextSyncCommittee != nil {
		t.Fatal("next sync committee should be nil right after bootstrap")
	}
}

func TestBootstrapRejectsCorruptedBranch(t *testing.T) {
	bootstrap, _ := buildBootstrap(t, 1000, 0x11)
	bootstrap.CurrentSyncCommitteeBranch[0][0] ^= 0xFF

	vf := NewVerifier(DefaultConfig())
	_, err := vf.Bootstrap(bootstrap, testGenesisRoot())
	if _, ok := err.(*BootstrapBranchInvalid); !ok {
		t.Fatalf("expected *BootstrapBranchInvalid, got %v (%T)", err, err)
	}
	if _, ok := vf.State(); ok {
		t.Fatal("verifier should remain uninitialized after a rejected bootstrap")
	}
}

func TestBootstrapRejectsAggregatePubkeyMismatch(t *testing.T) {
	bootstrap, _ := buildBootstrap(t, 1000, 0x12)
	bootstrap.CurrentSyncCommittee.AggregatePubkey[0] ^= 0xFF
	// The branch was computed over the *original* committee root, so
	// corrupting the aggregate pubkey also changes the committee's
	// hash-tree-root; rebuild the branch so this test isolates the
	// aggregate-pubkey check specifically.
	committeeRoot := bootstrap.CurrentSyncCommittee.HashTreeRoot()
	stateRoot, branch := buildBranch(committeeRoot, ElectraCurrentSyncCommitteeGindex, 0x99)
	bootstrap.Header.StateRoot = stateRoot
	bootstrap.CurrentSyncCommitteeBranch = branch

	vf := NewVerifier(DefaultConfig())
	_, err := vf.Bootstrap(bootstrap, testGenesisRoot())
	if _, ok := err.(*AggregatePubkeyMismatch); !ok {
		t.Fatalf("expected *AggregatePubkeyMismatch, got %v (%T)", err, err)
	}
}
