// Package state verifies Ethereum Merkle Patricia Trie proofs — account
// proofs and storage-slot proofs of the shape returned by the eth_getProof
// JSON-RPC endpoint (EIP-1186) — against an already-trusted root hash. It
// never builds or caches a trie: every call walks a caller-supplied list of
// RLP-encoded nodes from root to leaf and returns either the proven value or
// a typed error explaining where the proof failed.
package state

import (
	"bytes"

	"github.com/VanshSahay/lumen/crypto"
	"github.com/VanshSahay/lumen/rlp"
)

// verifyMPTProof walks proof (root-to-leaf RLP-encoded trie nodes) against
// rootHash and key, returning the value at key. A nil value with a nil error
// means the proof validly demonstrates the key's absence.
//
// A child reference is either a 32-byte Keccak256 hash, which must match the
// next entry consumed from proof, or — for a child whose own RLP encoding is
// under 32 bytes — the embedded encoding itself, carried inline inside the
// parent node's RLP rather than as a separate proof entry. An embedded child
// is decoded directly as the next node without consuming proof.
func verifyMPTProof(rootHash [32]byte, key []byte, proof [][]byte) ([]byte, error) {
	if len(proof) == 0 {
		return nil, &ProofIncomplete{}
	}

	hexKey := keybytesToHex(key)
	wantHash := rootHash[:]
	wantChildIndex := -1
	var pendingInline []byte
	pos := 0
	consumed := 0
	depth := 0

	for {
		var encoded []byte
		if pendingInline != nil {
			encoded = pendingInline
			pendingInline = nil
		} else {
			if consumed >= len(proof) {
				return nil, &ProofIncomplete{}
			}
			raw := proof[consumed]
			got := crypto.Keccak256(raw)
			if !bytes.Equal(got, wantHash) {
				if consumed == 0 {
					var want, gotArr [32]byte
					copy(want[:], wantHash)
					copy(gotArr[:], got)
					return nil, &StateRootMismatch{Want: want, Got: gotArr}
				}
				return nil, &NodeHashMismatch{Depth: depth, ChildIndex: wantChildIndex}
			}
			encoded = raw
			consumed++
		}
		isLast := consumed >= len(proof)

		items, err := rlp.DecodeList(encoded)
		if err != nil {
			return nil, &NodeRlpInvalid{Depth: depth}
		}

		switch len(items) {
		case 2:
			nibbles := compactToHex(items[0])

			matchLen := 0
			for matchLen < len(nibbles) && pos+matchLen < len(hexKey) {
				if nibbles[matchLen] != hexKey[pos+matchLen] {
					break
				}
				matchLen++
			}
			if matchLen < len(nibbles) {
				if isLast {
					return nil, nil // absence: the key diverges at the final node
				}
				return nil, &PathMismatch{Depth: depth}
			}
			pos += len(nibbles)

			if hasTerm(nibbles) {
				if !isLast {
					return nil, &PathMismatch{Depth: depth}
				}
				return items[1], nil
			}

			if isLast {
				return nil, &ProofIncomplete{}
			}
			wantChildIndex = -1
			wantHash, pendingInline = nextChild(items[1])

		case 17:
			if pos >= len(hexKey) {
				return nil, &PathMismatch{Depth: depth}
			}
			nibble := hexKey[pos]
			pos++

			if nibble == terminatorNibble {
				if len(items[16]) == 0 {
					return nil, nil
				}
				return items[16], nil
			}

			child := items[nibble]
			if len(child) == 0 {
				if isLast {
					return nil, nil // absence: no child at this nibble
				}
				return nil, &PathMismatch{Depth: depth}
			}
			if isLast {
				return nil, &ProofIncomplete{}
			}
			wantChildIndex = int(nibble)
			wantHash, pendingInline = nextChild(child)

		default:
			return nil, &NodeRlpInvalid{Depth: depth}
		}

		depth++
	}
}

// nextChild splits a decoded child reference into the hash to check against
// the next proof entry (hash != nil) or the embedded node bytes to decode
// directly (inline != nil), reconstructing the embedded node's own RLP list
// header — DecodeList strips it when extracting the reference as an item.
func nextChild(ref []byte) (hash, inline []byte) {
	if len(ref) == 32 {
		return ref, nil
	}
	return nil, rlp.WrapList(ref)
}
