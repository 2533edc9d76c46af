// Package ssz implements the Merkleization primitives the Ethereum consensus
// layer's Simple Serialize (SSZ) format needs for a light client: hash-tree-root
// computation over basic types, vectors, lists and containers, and
// generalized-index Merkle branch verification. It does not implement a
// general-purpose SSZ encoder/decoder — the light client never serializes or
// deserializes a beacon object to its SSZ wire form, only to and from its
// JSON beacon-API representation (see package beacon) and its hash tree
// root.
//
// Spec: https://github.com/ethereum/consensus-specs/blob/dev/ssz/simple-serialize.md
package ssz
