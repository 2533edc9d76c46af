package state

import (
	"github.com/holiman/uint256"

	"github.com/VanshSahay/lumen/crypto"
	"github.com/VanshSahay/lumen/rlp"
)

// VerifyStorageProof checks proof against storageRoot (an account's
// StorageRoot, obtained from a prior VerifyAccountProof call) and returns the
// value at slotKey. When the proof validly demonstrates the slot is unset,
// the returned value is zero (never nil) with a nil error, which is the
// expected result for the overwhelming majority of storage slots.
func VerifyStorageProof(storageRoot [32]byte, slotKey [32]byte, proof [][]byte) (*uint256.Int, error) {
	key := crypto.Keccak256(slotKey[:])
	value, err := verifyMPTProof(storageRoot, key, proof)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return uint256.NewInt(0), nil
	}
	// The trie value at a storage leaf is itself an RLP string wrapping the
	// big-endian integer, matching how go-ethereum stores storage slots.
	var raw []byte
	if err := rlp.DecodeBytes(value, &raw); err != nil {
		return nil, &NodeRlpInvalid{Depth: len(proof)}
	}
	return new(uint256.Int).SetBytes(raw), nil
}
