package state

import "fmt"

// StateRootMismatch is returned when the first proof node's hash does not
// match the root the caller asked to verify against.
type StateRootMismatch struct {
	Want [32]byte
	Got  [32]byte
}

func (e *StateRootMismatch) Error() string {
	return fmt.Sprintf("state: proof root %x does not match expected root %x", e.Got, e.Want)
}

// NodeHashMismatch is returned when a proof node's Keccak256 hash does not
// match the reference its parent committed to. ChildIndex is the branch
// nibble the mismatched reference came from, or -1 when the parent was a
// leaf/extension node (which has only one child reference).
type NodeHashMismatch struct {
	Depth      int
	ChildIndex int
}

func (e *NodeHashMismatch) Error() string {
	return fmt.Sprintf("state: node hash mismatch at depth %d (child index %d)", e.Depth, e.ChildIndex)
}

// NodeRlpInvalid is returned when a proof node fails to decode as a
// two-item (leaf/extension) or seventeen-item (branch) RLP list.
type NodeRlpInvalid struct {
	Depth int
}

func (e *NodeRlpInvalid) Error() string {
	return fmt.Sprintf("state: malformed RLP node at depth %d", e.Depth)
}

// PathMismatch is returned when the key's nibble path diverges from a node
// partway through the proof rather than at a terminal, absence-proving node.
type PathMismatch struct {
	Depth int
}

func (e *PathMismatch) Error() string {
	return fmt.Sprintf("state: key path diverges from proof at depth %d", e.Depth)
}

// AccountRlpInvalid is returned when the leaf value of an account proof does
// not decode as the canonical four-item account list.
type AccountRlpInvalid struct{}

func (e *AccountRlpInvalid) Error() string {
	return "state: account leaf does not decode as [nonce, balance, storageRoot, codeHash]"
}

// ProofIncomplete is returned when the proof ends before the key is fully
// consumed or before a definitive absence is established.
type ProofIncomplete struct{}

func (e *ProofIncomplete) Error() string {
	return "state: proof ends without proving either presence or absence"
}
