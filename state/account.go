package state

import (
	"github.com/holiman/uint256"

	"github.com/VanshSahay/lumen/crypto"
	"github.com/VanshSahay/lumen/rlp"
)

// Account is the canonical four-field Ethereum account record as committed
// into the state trie: [nonce, balance, storageRoot, codeHash].
type Account struct {
	Nonce       uint64
	Balance     *uint256.Int
	StorageRoot [32]byte
	CodeHash    [32]byte
}

// IsContract reports whether the account has code associated with it.
func (a Account) IsContract() bool {
	return a.CodeHash != crypto.EmptyCodeHash
}

// decodeAccount RLP-decodes the four-item account list stored at a state
// trie leaf.
func decodeAccount(enc []byte) (Account, error) {
	items, err := rlp.DecodeList(enc)
	if err != nil {
		return Account{}, &AccountRlpInvalid{}
	}
	if len(items) != 4 {
		return Account{}, &AccountRlpInvalid{}
	}
	var acc Account
	acc.Nonce = bigEndianUint64(items[0])
	acc.Balance = new(uint256.Int).SetBytes(items[1])
	if len(items[2]) != 32 {
		return Account{}, &AccountRlpInvalid{}
	}
	copy(acc.StorageRoot[:], items[2])
	if len(items[3]) != 32 {
		return Account{}, &AccountRlpInvalid{}
	}
	copy(acc.CodeHash[:], items[3])
	return acc, nil
}

func bigEndianUint64(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

// VerifyAccountProof checks proof against stateRoot and returns the account
// at address. A nil Account with a nil error means the proof validly
// demonstrates the address has no account in this state.
func VerifyAccountProof(stateRoot [32]byte, address [20]byte, proof [][]byte) (*Account, error) {
	key := crypto.Keccak256(address[:])
	value, err := verifyMPTProof(stateRoot, key, proof)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	acc, err := decodeAccount(value)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}
