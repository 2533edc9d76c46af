package crypto

import (
	"errors"

	blst "github.com/supranational/blst/bindings/go"
)

// Errors returned by key generation and signing helpers.
var (
	ErrInvalidIKM       = errors.New("bls: IKM must be at least 32 bytes")
	ErrKeyGenFailed     = errors.New("bls: key generation failed")
	ErrInvalidSecretKey = errors.New("bls: invalid secret key bytes")
	ErrSignFailed       = errors.New("bls: signing failed")
)

// GenerateKeyPair derives a BLS key pair from input key material (IKM,
// which must be at least 32 bytes of secret randomness). Returns the
// compressed 48-byte public key and the 32-byte serialized secret key.
// Exists for test fixtures and key-management tooling, not for the
// verification core itself (which never holds a secret key).
func GenerateKeyPair(ikm []byte) (pubkey, secretKey []byte, err error) {
	if len(ikm) < 32 {
		return nil, nil, ErrInvalidIKM
	}
	sk := blst.KeyGen(ikm)
	if sk == nil {
		return nil, nil, ErrKeyGenFailed
	}
	pk := new(blst.P1Affine).From(sk)
	return pk.Compress(), sk.Serialize(), nil
}

// SignWithSecretKey signs msg under the Ethereum sync-committee DST using a
// serialized 32-byte secret key, returning the compressed 96-byte
// signature. Test/fixture use only.
func SignWithSecretKey(secretKey, msg []byte) ([]byte, error) {
	sk := new(blst.SecretKey).Deserialize(secretKey)
	if sk == nil {
		return nil, ErrInvalidSecretKey
	}
	sig := new(blst.P2Affine).Sign(sk, msg, BLSSignatureDST)
	if sig == nil {
		return nil, ErrSignFailed
	}
	return sig.Compress(), nil
}

// AggregateSignatures sums a set of decompressed signatures by G2 point
// addition. Used to build FastAggregateVerify fixtures and by real
// sync-committee tooling that collects per-member signatures before
// broadcast (the verification core itself only ever sees a single
// pre-aggregated signature).
func AggregateSignatures(sigs []*Signature) *Signature {
	if len(sigs) == 0 {
		return nil
	}
	var agg blst.P2Aggregate
	agg.Aggregate(sigs, false)
	return agg.ToAffine()
}
