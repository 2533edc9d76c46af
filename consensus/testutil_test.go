package consensus

import (
	"crypto/sha256"
	"testing"

	"github.com/VanshSahay/lumen/beacon"
	"github.com/VanshSahay/lumen/crypto"
	"github.com/VanshSahay/lumen/ssz"
)

// buildBranch fabricates a Merkle branch of the depth implied by gindex:
// it fills in pseudo-random sibling nodes and folds them up from leaf to
// root using exactly the same bit-walk VerifyMerkleBranch performs, so the
// returned root is guaranteed consistent with the returned proof. The tree
// this branch lives in has no other meaning — tests only need internal
// consistency, not a real beacon state layout.
func buildBranch(leaf [32]byte, gindex uint64, seed byte) (root [32]byte, proof [][32]byte) {
	depth := ssz.GeneralizedIndexDepth(gindex)
	proof = make([][32]byte, depth)
	cur := leaf
	for i := 0; i < depth; i++ {
		var sib [32]byte
		sib[0] = seed
		sib[1] = byte(i)
		proof[i] = sib
		bit := (gindex >> uint(i)) & 1
		var combined [64]byte
		if bit == 1 {
			copy(combined[:32], sib[:])
			copy(combined[32:], cur[:])
		} else {
			copy(combined[:32], cur[:])
			copy(combined[32:], sib[:])
		}
		cur = sha256.Sum256(combined[:])
	}
	return cur, proof
}

// testCommittee builds a SyncCommittee of 512 freshly generated keys and
// returns it alongside the parallel slice of serialized secret keys (same
// order), so tests can sign with an arbitrary subset.
func testCommittee(t *testing.T, seedBase byte) (beacon.SyncCommittee, [][]byte) {
	t.Helper()
	var committee beacon.SyncCommittee
	secrets := make([][]byte, beacon.SyncCommitteeSize)
	pubkeys := make([]*crypto.PublicKey, beacon.SyncCommitteeSize)
	for i := 0; i < beacon.SyncCommitteeSize; i++ {
		ikm := make([]byte, 32)
		ikm[0] = seedBase
		ikm[1] = byte(i)
		ikm[2] = byte(i >> 8)
		pk, sk, err := crypto.GenerateKeyPair(ikm)
		if err != nil {
			t.Fatalf("GenerateKeyPair(%d): %v", i, err)
		}
		copy(committee.Pubkeys[i][:], pk)
		secrets[i] = sk
		parsed, err := crypto.ParsePublicKey(pk)
		if err != nil {
			t.Fatalf("ParsePublicKey(%d): %v", i, err)
		}
		pubkeys[i] = parsed
	}
	agg := crypto.AggregatePublicKeys(pubkeys)
	copy(committee.AggregatePubkey[:], agg.Compress())
	return committee, secrets
}

// signWithCommittee has every participant listed in bits sign msg and
// returns the aggregate signature plus a SyncAggregate ready to attach to
// an update fixture.
func signWithCommittee(t *testing.T, secrets [][]byte, participants []int, msg []byte) beacon.SyncAggregate {
	t.Helper()
	bits := make([]byte, 64)
	var sigs []*crypto.Signature
	for _, i := range participants {
		bits[i/8] |= 1 << uint(i%8)
		sig, err := crypto.SignWithSecretKey(secrets[i], msg)
		if err != nil {
			t.Fatalf("SignWithSecretKey(%d): %v", i, err)
		}
		parsed, err := crypto.ParseSignature(sig)
		if err != nil {
			t.Fatalf("ParseSignature(%d): %v", i, err)
		}
		sigs = append(sigs, parsed)
	}
	agg := crypto.AggregateSignatures(sigs)
	bv, err := ssz.BitvectorFromBytes(bits, beacon.SyncCommitteeSize)
	if err != nil {
		t.Fatalf("BitvectorFromBytes: %v", err)
	}
	var out beacon.SyncAggregate
	out.SyncCommitteeBits = bv
	copy(out.SyncCommitteeSignature[:], agg.Compress())
	return out
}

func allIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// participantsN returns the indices of the first n committee members, used
// to pick a participation subset of a given size.
func participantsN(n int) []int {
	return allIndices(n)
}
