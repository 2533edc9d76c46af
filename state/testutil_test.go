package state

import (
	"testing"

	"github.com/holiman/uint256"

	"github.com/VanshSahay/lumen/crypto"
	"github.com/VanshSahay/lumen/rlp"
)

// hexToCompactTest mirrors the Yellow Paper's hex-prefix encoding. Only test
// fixtures need the encode direction; production code only ever decodes a
// proof that already carries compact-encoded paths.
func hexToCompactTest(hex []byte) []byte {
	term := byte(0)
	if hasTerm(hex) {
		term = 1
		hex = hex[:len(hex)-1]
	}
	buf := make([]byte, len(hex)/2+1)
	buf[0] = term << 5
	if len(hex)&1 == 1 {
		buf[0] |= 1 << 4
		buf[0] |= hex[0]
		hex = hex[1:]
	}
	for i := 0; i < len(hex); i += 2 {
		buf[1+i/2] = hex[i]<<4 | hex[i+1]
	}
	return buf
}

type rlpAccount struct {
	Nonce       uint64
	Balance     []byte
	StorageRoot [32]byte
	CodeHash    [32]byte
}

func encodeTestAccount(t *testing.T, acc Account) []byte {
	t.Helper()
	enc, err := rlp.EncodeToBytes(rlpAccount{
		Nonce:       acc.Nonce,
		Balance:     acc.Balance.Bytes(),
		StorageRoot: acc.StorageRoot,
		CodeHash:    acc.CodeHash,
	})
	if err != nil {
		t.Fatalf("encodeTestAccount: %v", err)
	}
	return enc
}

// buildSingleLeafTrie builds the degenerate one-account trie: a single leaf
// node whose path is the account's full key. Root equals the leaf node's own
// hash since an account leaf is always >= 32 bytes encoded.
func buildSingleLeafTrie(t *testing.T, address [20]byte, acc Account) (root [32]byte, proof [][]byte) {
	t.Helper()
	key := crypto.Keccak256(address[:])
	path := hexToCompactTest(keybytesToHex(key))
	accountRLP := encodeTestAccount(t, acc)

	leaf, err := rlp.EncodeToBytes([][]byte{path, accountRLP})
	if err != nil {
		t.Fatalf("encode leaf: %v", err)
	}
	copy(root[:], crypto.Keccak256(leaf))
	return root, [][]byte{leaf}
}

// buildTwoAccountTrie builds a root branch node fanning out to two leaves,
// one per address, keyed on their first differing nibble. Both addresses
// must share no common prefix at nibble 0 for this fixture to be valid.
func buildTwoAccountTrie(t *testing.T, addrA [20]byte, accA Account, addrB [20]byte, accB Account) (root [32]byte, proofA, proofB [][]byte) {
	t.Helper()
	keyA := crypto.Keccak256(addrA[:])
	keyB := crypto.Keccak256(addrB[:])
	hexA := keybytesToHex(keyA)
	hexB := keybytesToHex(keyB)
	if hexA[0] == hexB[0] {
		t.Fatal("test fixture requires addresses whose keys diverge at nibble 0")
	}

	leafA, err := rlp.EncodeToBytes([][]byte{hexToCompactTest(hexA[1:]), encodeTestAccount(t, accA)})
	if err != nil {
		t.Fatalf("encode leafA: %v", err)
	}
	leafB, err := rlp.EncodeToBytes([][]byte{hexToCompactTest(hexB[1:]), encodeTestAccount(t, accB)})
	if err != nil {
		t.Fatalf("encode leafB: %v", err)
	}

	children := make([][]byte, 17)
	for i := range children {
		children[i] = []byte{}
	}
	children[hexA[0]] = crypto.Keccak256(leafA)
	children[hexB[0]] = crypto.Keccak256(leafB)

	branch, err := rlp.EncodeToBytes(children)
	if err != nil {
		t.Fatalf("encode branch: %v", err)
	}
	copy(root[:], crypto.Keccak256(branch))
	return root, [][]byte{branch, leafA}, [][]byte{branch, leafB}
}

func testAccount(nonce uint64, balance uint64) Account {
	return Account{
		Nonce:       nonce,
		Balance:     uint256.NewInt(balance),
		StorageRoot: crypto.EmptyRootHash,
		CodeHash:    crypto.EmptyCodeHash,
	}
}
