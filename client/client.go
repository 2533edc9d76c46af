// Package client wires the consensus verifier and the state-proof verifier
// together behind the four external operations a light client embeds:
// bootstrap, ingest_update, verify_account_proof_at, and
// verify_storage_proof. It owns no verification logic of its own — it
// parses wire payloads, calls into consensus and state, and shapes the
// result into the caller-facing records.
package client

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"

	"github.com/VanshSahay/lumen/beacon"
	"github.com/VanshSahay/lumen/consensus"
	"github.com/VanshSahay/lumen/state"
)

// Client pairs a consensus.Verifier with the stateless proof verifier,
// giving callers a single entry point for both halves of the protocol.
type Client struct {
	verifier *consensus.Verifier
}

// New constructs a Client around a freshly created, unbootstrapped verifier.
func New(cfg *consensus.Config) *Client {
	return &Client{verifier: consensus.NewVerifier(cfg)}
}

// Bootstrap parses a beacon-API bootstrap response and initializes V.
func (c *Client) Bootstrap(bootstrapJSON []byte, genesisValidatorsRoot [32]byte) (consensus.V, error) {
	bootstrap, err := beacon.ParseBootstrap(bootstrapJSON)
	if err != nil {
		return consensus.V{}, err
	}
	return c.verifier.Bootstrap(bootstrap, beacon.Root(genesisValidatorsRoot))
}

// IngestUpdate parses a beacon-API light client update and applies it to V.
func (c *Client) IngestUpdate(updateJSON []byte, currentSlotHint uint64) (consensus.UpdateResult, error) {
	update, err := beacon.ParseUpdate(updateJSON)
	if err != nil {
		return consensus.UpdateResult{}, err
	}
	return c.verifier.IngestUpdate(update, currentSlotHint)
}

// State returns the client's current view of V, or (_, false) if it has not
// bootstrapped yet.
func (c *Client) State() (consensus.V, bool) {
	return c.verifier.State()
}

// AccountRecord is the caller-facing result of an account proof check: the
// verified account fields, or a verified absence (Exists == false).
type AccountRecord struct {
	Exists      bool
	Nonce       uint64
	Balance     string // decimal string; callers that want *uint256.Int use state.VerifyAccountProof directly
	StorageRoot [32]byte
	CodeHash    [32]byte
}

// VerifyAccountProofAtInternalRoot verifies addressHex's account proof
// against V.LatestExecution.StateRoot — the race-prone entry point described
// in the consensus model: V may have advanced between the caller fetching
// the proof and this call running. The verifier does not confirm that the
// execution block behind this root is canonical; cross-checking
// V.LatestExecution.BlockNumber against the block the proof was fetched for
// is left to the caller.
func (c *Client) VerifyAccountProofAtInternalRoot(addressHex string, proofHex []string) (*AccountRecord, error) {
	v, ok := c.verifier.State()
	if !ok {
		return nil, &consensus.NotBootstrapped{}
	}
	return c.VerifyAccountProofAtRoot(v.LatestExecution.StateRoot, addressHex, proofHex)
}

// VerifyAccountProofAtRoot verifies addressHex's account proof against an
// explicit, caller-supplied root — the race-free entry point.
func (c *Client) VerifyAccountProofAtRoot(stateRoot [32]byte, addressHex string, proofHex []string) (*AccountRecord, error) {
	address, err := decodeAddress(addressHex)
	if err != nil {
		return nil, err
	}
	proof, err := decodeProofNodes(proofHex)
	if err != nil {
		return nil, err
	}
	acc, err := state.VerifyAccountProof(stateRoot, address, proof)
	if err != nil {
		log.Debug("account proof rejected", "address", addressHex, "err", err)
		return nil, err
	}
	if acc == nil {
		return &AccountRecord{Exists: false}, nil
	}
	return &AccountRecord{
		Exists:      true,
		Nonce:       acc.Nonce,
		Balance:     acc.Balance.Dec(),
		StorageRoot: acc.StorageRoot,
		CodeHash:    acc.CodeHash,
	}, nil
}

// VerifyStorageProof verifies a single storage slot proof against
// storageRoot (normally an AccountRecord.StorageRoot obtained from a prior
// account-proof verification) and returns its value as a decimal string.
func (c *Client) VerifyStorageProof(storageRoot [32]byte, slotHex string, proofHex []string) (string, error) {
	slot, err := decodeSlot(slotHex)
	if err != nil {
		return "", err
	}
	proof, err := decodeProofNodes(proofHex)
	if err != nil {
		return "", err
	}
	val, err := state.VerifyStorageProof(storageRoot, slot, proof)
	if err != nil {
		log.Debug("storage proof rejected", "slot", slotHex, "err", err)
		return "", err
	}
	return val.Dec(), nil
}

func decodeAddress(s string) (addr [20]byte, err error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return addr, &beacon.ParseError{Field: "address", Err: err}
	}
	if len(b) != 20 {
		return addr, &beacon.ParseError{Field: "address", Err: errWrongLength{want: 20, got: len(b)}}
	}
	copy(addr[:], b)
	return addr, nil
}

func decodeSlot(s string) (slot [32]byte, err error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return slot, &beacon.ParseError{Field: "storage_slot", Err: err}
	}
	if len(b) > 32 {
		return slot, &beacon.ParseError{Field: "storage_slot", Err: errWrongLength{want: 32, got: len(b)}}
	}
	copy(slot[32-len(b):], b) // left-pad, matching eth_getProof's "key" field
	return slot, nil
}

func decodeProofNodes(hexNodes []string) ([][]byte, error) {
	nodes := make([][]byte, len(hexNodes))
	for i, h := range hexNodes {
		b, err := hexutil.Decode(h)
		if err != nil {
			return nil, &beacon.ParseError{Field: "proof", Err: err}
		}
		nodes[i] = b
	}
	return nodes, nil
}

type errWrongLength struct {
	want, got int
}

func (e errWrongLength) Error() string {
	return "unexpected byte length"
}
