// Package signing computes the domain-separated signing root that sync
// committee members sign over, per the beacon chain spec's
// compute_fork_data_root / compute_domain / compute_signing_root triple.
package signing

import "crypto/sha256"

// DomainSyncCommittee is the four-byte domain type Ethereum consensus
// reserves for sync-committee signatures (DOMAIN_SYNC_COMMITTEE).
var DomainSyncCommittee = [4]byte{0x07, 0x00, 0x00, 0x00}

// ForkVersion is a 4-byte beacon-chain fork version.
type ForkVersion [4]byte

// ForkSchedule maps an ordered set of fork epochs to their fork versions.
// Entries must be sorted by Epoch ascending; the active entry for a given
// epoch is the last one whose Epoch is <= the queried epoch. This is a
// configuration table, not a hardcoded constant: callers (consensus.Config)
// populate it per network (mainnet/testnet/devnet all differ).
type ForkSchedule []ForkScheduleEntry

// ForkScheduleEntry is one row of a ForkSchedule.
type ForkScheduleEntry struct {
	Epoch   uint64
	Version ForkVersion
}

// VersionForEpoch returns the fork version active at epoch, per the last
// schedule entry whose Epoch does not exceed it. The schedule must contain
// at least one entry with Epoch 0 (the genesis fork); callers that violate
// this get the zero ForkVersion back, which will fail downstream signature
// verification rather than silently picking a wrong domain.
func (s ForkSchedule) VersionForEpoch(epoch uint64) ForkVersion {
	var active ForkVersion
	for _, e := range s {
		if e.Epoch > epoch {
			break
		}
		active = e.Version
	}
	return active
}

// EpochForSlot converts a slot number to its containing epoch, given the
// network's slots-per-epoch (32 on mainnet).
func EpochForSlot(slot, slotsPerEpoch uint64) uint64 {
	return slot / slotsPerEpoch
}

// ComputeForkDataRoot computes the SSZ hash tree root of the ForkData
// container { current_version: Version, genesis_validators_root: Root }.
// Version is padded to 32 bytes as an SSZ fixed-size leaf; the container
// root is sha256(version_padded || genesis_validators_root) since both
// fields are already 32-byte leaves (a 2-leaf container needs no further
// padding).
func ComputeForkDataRoot(version ForkVersion, genesisValidatorsRoot [32]byte) [32]byte {
	var versionPadded [32]byte
	copy(versionPadded[:4], version[:])

	var combined [64]byte
	copy(combined[:32], versionPadded[:])
	copy(combined[32:], genesisValidatorsRoot[:])
	return sha256.Sum256(combined[:])
}

// ComputeDomain computes the 32-byte signing domain:
//
//	domain = domain_type (4 bytes) || fork_data_root[:28]
func ComputeDomain(domainType [4]byte, version ForkVersion, genesisValidatorsRoot [32]byte) [32]byte {
	forkDataRoot := ComputeForkDataRoot(version, genesisValidatorsRoot)
	var domain [32]byte
	copy(domain[:4], domainType[:])
	copy(domain[4:], forkDataRoot[:28])
	return domain
}

// ComputeSigningRoot computes the message that sync committee members
// actually sign: sha256(object_root || domain), where object_root is the
// SSZ hash tree root of the attested beacon block header.
func ComputeSigningRoot(objectRoot [32]byte, domain [32]byte) [32]byte {
	var combined [64]byte
	copy(combined[:32], objectRoot[:])
	copy(combined[32:], domain[:])
	return sha256.Sum256(combined[:])
}

// SyncCommitteeSigningRoot is the convenience composition
// compute_signing_root(header_root, compute_domain(DOMAIN_SYNC_COMMITTEE, fork, gvr)),
// using the fork version active at the epoch containing signatureSlot — the
// Electra spec binds the domain to the signature's own slot, not the
// attested header's slot, so that a signature collected just after a fork
// boundary still verifies under the post-fork domain.
func SyncCommitteeSigningRoot(headerRoot [32]byte, schedule ForkSchedule, slotsPerEpoch, signatureSlot uint64, genesisValidatorsRoot [32]byte) [32]byte {
	epoch := EpochForSlot(signatureSlot, slotsPerEpoch)
	version := schedule.VersionForEpoch(epoch)
	domain := ComputeDomain(DomainSyncCommittee, version, genesisValidatorsRoot)
	return ComputeSigningRoot(headerRoot, domain)
}
