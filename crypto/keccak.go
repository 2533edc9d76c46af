package crypto

import (
	"github.com/VanshSahay/lumen/core/types"
	"golang.org/x/crypto/sha3"
)

// Keccak256 calculates the Keccak-256 hash of the given data.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Keccak256Hash calculates Keccak-256 and returns it as a types.Hash.
func Keccak256Hash(data ...[]byte) types.Hash {
	return types.BytesToHash(Keccak256(data...))
}

// Keccak256Array calculates Keccak-256 and returns it as a fixed 32-byte
// array, the representation used throughout the state-proof verifier.
func Keccak256Array(data ...[]byte) [32]byte {
	var out [32]byte
	copy(out[:], Keccak256(data...))
	return out
}

// EmptyCodeHash is keccak256 of the empty byte string — the code hash an
// externally-owned account (one with no contract code) must carry.
var EmptyCodeHash = Keccak256Array()

// EmptyRootHash is keccak256 of the RLP encoding of an empty byte string
// (0x80) — the storage root an account with no storage slots must carry.
var EmptyRootHash = Keccak256Array([]byte{0x80})
