// Package beacon defines the typed records the consensus verifier consumes:
// beacon block headers, sync committees, sync aggregates, execution payload
// headers, and the light-client bootstrap/update messages served by the
// beacon-node REST API.
package beacon

import "github.com/VanshSahay/lumen/ssz"

// SyncCommitteeSize is the fixed size of a sync committee (spec SYNC_COMMITTEE_SIZE).
const SyncCommitteeSize = 512

// SlotsPerSyncCommitteePeriod is the number of slots in one sync-committee
// rotation period (256 epochs * 32 slots/epoch).
const SlotsPerSyncCommitteePeriod = 8192

// Root is a 32-byte SSZ hash tree root or Merkle node.
type Root = [32]byte

// BLSPubkey is a compressed G1 public key (48 bytes).
type BLSPubkey = [48]byte

// BLSSignature is a compressed G2 signature (96 bytes).
type BLSSignature = [96]byte

// BeaconBlockHeader is the minimal beacon chain block header used by light
// clients. Its hash-tree-root is a 5-leaf SSZ Merkle root (padded to 8).
type BeaconBlockHeader struct {
	Slot          uint64
	ProposerIndex uint64
	ParentRoot    Root
	StateRoot     Root
	BodyRoot      Root
}

// IsZero reports whether h is the all-zero sentinel "empty header".
func (h BeaconBlockHeader) IsZero() bool {
	return h.Slot == 0 && h.ProposerIndex == 0 &&
		h.ParentRoot == Root{} && h.StateRoot == Root{} && h.BodyRoot == Root{}
}

// HashTreeRoot computes the SSZ hash tree root of the header: five field
// roots Merkleized with the container rule (padded to the next power of
// two, i.e. 8 leaves / 3 levels).
func (h BeaconBlockHeader) HashTreeRoot() Root {
	fieldRoots := [][32]byte{
		ssz.HashTreeRootUint64(h.Slot),
		ssz.HashTreeRootUint64(h.ProposerIndex),
		ssz.HashTreeRootBytes32(h.ParentRoot),
		ssz.HashTreeRootBytes32(h.StateRoot),
		ssz.HashTreeRootBytes32(h.BodyRoot),
	}
	return ssz.HashTreeRootContainer(fieldRoots)
}

// SyncCommittee is the ordered set of SYNC_COMMITTEE_SIZE BLS public keys
// that sign light-client messages during one sync-committee period, plus
// the precomputed aggregate of all member keys.
type SyncCommittee struct {
	Pubkeys         [SyncCommitteeSize]BLSPubkey
	AggregatePubkey BLSPubkey
}

// HashTreeRoot computes the SSZ hash tree root of the committee: each
// pubkey is itself packed/Merkleized as a Bytes48 vector, the 512 resulting
// roots form an outer vector, and the container combines that with the
// aggregate pubkey's own root.
func (c *SyncCommittee) HashTreeRoot() Root {
	pubkeyRoots := make([][32]byte, SyncCommitteeSize)
	for i, pk := range c.Pubkeys {
		pubkeyRoots[i] = ssz.HashTreeRootBasicVector(pk[:])
	}
	pubkeysRoot := ssz.HashTreeRootVector(pubkeyRoots)
	aggRoot := ssz.HashTreeRootBasicVector(c.AggregatePubkey[:])
	return ssz.HashTreeRootContainer([][32]byte{pubkeysRoot, aggRoot})
}

// SyncAggregate pairs a 512-bit participation bitvector with the aggregate
// BLS signature of the participating committee members over the attested
// header's signing root.
type SyncAggregate struct {
	SyncCommitteeBits      ssz.Bitvector
	SyncCommitteeSignature BLSSignature
}

// ParticipationCount returns the popcount of the participation bitvector.
func (a SyncAggregate) ParticipationCount() int {
	return a.SyncCommitteeBits.Count()
}

// ExecutionPayloadHeader is the subset of the execution payload a light
// client needs: the state root it can feed into the state-proof verifier,
// the block number, and the block hash.
type ExecutionPayloadHeader struct {
	StateRoot   Root
	BlockNumber uint64
	BlockHash   Root
}

// LightClientBootstrap is the response body of
// /eth/v1/beacon/light_client/bootstrap/{block_root}.
type LightClientBootstrap struct {
	Header                     BeaconBlockHeader
	CurrentSyncCommittee       SyncCommittee
	CurrentSyncCommitteeBranch [][32]byte
	ExecutionPayloadHeader     ExecutionPayloadHeader
}

// LightClientUpdate is the response body of
// /eth/v1/beacon/light_client/finality_update (when FinalizedHeader is set)
// or a full sync-committee rotation update (when NextSyncCommittee is set).
// Either or both may accompany a single message.
type LightClientUpdate struct {
	AttestedHeader             BeaconBlockHeader
	NextSyncCommittee          *SyncCommittee
	NextSyncCommitteeBranch    [][32]byte
	FinalizedHeader            *BeaconBlockHeader
	FinalizedExecutionPayload  *ExecutionPayloadHeader
	FinalityBranch             [][32]byte
	SyncAggregate              SyncAggregate
	SignatureSlot              uint64
}

// LightClientOptimisticUpdate is the response body of
// /eth/v1/beacon/light_client/optimistic_update: an attested header and its
// sync aggregate, with no finality or committee-rotation proof attached.
type LightClientOptimisticUpdate struct {
	AttestedHeader BeaconBlockHeader
	SyncAggregate  SyncAggregate
	SignatureSlot  uint64
}

// Period returns the sync-committee period containing slot.
func Period(slot uint64) uint64 {
	return slot / SlotsPerSyncCommitteePeriod
}
