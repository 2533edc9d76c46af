// Real BLS12-381 verification for the Ethereum sync-committee signature
// scheme (MinPk: public keys in G1, signatures in G2), backed by the
// supranational/blst library.
//
// This supersedes the teacher's alternate //go:build blst adapter and its
// accompanying pure-Go / placeholder backends: the verification core must
// produce cryptographically sound answers, so the real backend is the only
// one wired in here, not one of several switchable implementations.
package crypto

import (
	"errors"

	blst "github.com/supranational/blst/bindings/go"
)

// PublicKey is a decompressed, subgroup-checked G1 public key.
type PublicKey = blst.P1Affine

// Signature is a decompressed, subgroup-checked G2 signature.
type Signature = blst.P2Affine

// BLSSignatureDST is the domain separation tag Ethereum consensus uses for
// the proof-of-possession BLS scheme.
var BLSSignatureDST = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_")

const (
	// BLSPubkeySize is the length of a compressed G1 public key.
	BLSPubkeySize = 48
	// BLSSignatureSize is the length of a compressed G2 signature.
	BLSSignatureSize = 96
)

// Errors returned when parsing or verifying BLS material.
var (
	ErrInvalidBlsEncoding     = errors.New("bls: invalid compressed point encoding")
	ErrSignatureInvalid       = errors.New("bls: signature verification failed")
	ErrNoSigners              = errors.New("bls: no participating signers")
)

// ParsePublicKey decompresses a 48-byte public key. The subgroup check
// happens as part of Verify/AggregateVerify/FastAggregateVerify (groupcheck
// arguments below), matching blst's combined decompress+validate contract.
func ParsePublicKey(b []byte) (*blst.P1Affine, error) {
	if len(b) != BLSPubkeySize {
		return nil, ErrInvalidBlsEncoding
	}
	pk := new(blst.P1Affine).Uncompress(b)
	if pk == nil {
		return nil, ErrInvalidBlsEncoding
	}
	return pk, nil
}

// ParseSignature decompresses a 96-byte signature.
func ParseSignature(b []byte) (*blst.P2Affine, error) {
	if len(b) != BLSSignatureSize {
		return nil, ErrInvalidBlsEncoding
	}
	sig := new(blst.P2Affine).Uncompress(b)
	if sig == nil {
		return nil, ErrInvalidBlsEncoding
	}
	return sig, nil
}

// AggregatePublicKeys sums a set of public keys by G1 point addition,
// recomputing the aggregate rather than trusting any value carried in input
// data (spec invariant I5 / property P6).
func AggregatePublicKeys(pubkeys []*blst.P1Affine) *blst.P1Affine {
	if len(pubkeys) == 0 {
		return nil
	}
	var agg blst.P1Aggregate
	agg.Aggregate(pubkeys, false)
	return agg.ToAffine()
}

// Verify checks a single BLS signature. Both the public key and the
// signature are subgroup-checked (the two `true` groupcheck arguments) —
// mandatory per spec.
func Verify(pk *blst.P1Affine, msg []byte, sig *blst.P2Affine) error {
	if !sig.Verify(true, pk, true, msg, BLSSignatureDST) {
		return ErrSignatureInvalid
	}
	return nil
}

// FastAggregateVerify checks an aggregate signature where every participant
// signed the identical 32-byte message (the sync-committee signing root).
func FastAggregateVerify(pubkeys []*blst.P1Affine, msg []byte, sig *blst.P2Affine) error {
	if len(pubkeys) == 0 {
		return ErrNoSigners
	}
	if !sig.FastAggregateVerify(true, pubkeys, msg, BLSSignatureDST) {
		return ErrSignatureInvalid
	}
	return nil
}

// AggregateVerify checks an aggregate signature where pubkeys[i] signed
// msgs[i]. Not used by the sync-committee flow (which always verifies a
// single shared signing root via FastAggregateVerify) but kept for
// completeness and test vectors, mirroring the teacher's BLSBackend shape.
func AggregateVerify(pubkeys []*blst.P1Affine, msgs [][]byte, sig *blst.P2Affine) error {
	n := len(pubkeys)
	if n == 0 || n != len(msgs) {
		return ErrNoSigners
	}
	blstMsgs := make([]blst.Message, n)
	for i, m := range msgs {
		blstMsgs[i] = m
	}
	if !sig.AggregateVerify(true, pubkeys, true, blstMsgs, BLSSignatureDST) {
		return ErrSignatureInvalid
	}
	return nil
}
