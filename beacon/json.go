package beacon

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/VanshSahay/lumen/ssz"
)

// bitsToBitvector wraps raw bytes as a 512-bit participation Bitvector.
func bitsToBitvector(b []byte) (ssz.Bitvector, error) {
	return ssz.BitvectorFromBytes(b, SyncCommitteeSize)
}

// ParseError classifies a beacon-API JSON parsing failure. It wraps the
// underlying cause; callers test for it with errors.As.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("beacon: parse error on %q: %v", e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func decimalUint64(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

func decodeRoot(s string) (Root, error) {
	var r Root
	b, err := hexutil.Decode(s)
	if err != nil {
		return r, err
	}
	if len(b) != 32 {
		return r, fmt.Errorf("expected 32 bytes, got %d", len(b))
	}
	copy(r[:], b)
	return r, nil
}

func decodePubkey(s string) (BLSPubkey, error) {
	var pk BLSPubkey
	b, err := hexutil.Decode(s)
	if err != nil {
		return pk, err
	}
	if len(b) != 48 {
		return pk, fmt.Errorf("expected 48 bytes, got %d", len(b))
	}
	copy(pk[:], b)
	return pk, nil
}

func decodeSignature(s string) (BLSSignature, error) {
	var sig BLSSignature
	b, err := hexutil.Decode(s)
	if err != nil {
		return sig, err
	}
	if len(b) != 96 {
		return sig, fmt.Errorf("expected 96 bytes, got %d", len(b))
	}
	copy(sig[:], b)
	return sig, nil
}

// beaconBlockHeaderJSON is the wire shape of BeaconBlockHeader as returned
// under /eth/v1/beacon/headers and embedded in light-client messages.
type beaconBlockHeaderJSON struct {
	Slot          string `json:"slot"`
	ProposerIndex string `json:"proposer_index"`
	ParentRoot    string `json:"parent_root"`
	StateRoot     string `json:"state_root"`
	BodyRoot      string `json:"body_root"`
}

func (h *beaconBlockHeaderJSON) toHeader() (BeaconBlockHeader, error) {
	var out BeaconBlockHeader
	slot, err := decimalUint64(h.Slot)
	if err != nil {
		return out, &ParseError{"slot", err}
	}
	idx, err := decimalUint64(h.ProposerIndex)
	if err != nil {
		return out, &ParseError{"proposer_index", err}
	}
	parent, err := decodeRoot(h.ParentRoot)
	if err != nil {
		return out, &ParseError{"parent_root", err}
	}
	state, err := decodeRoot(h.StateRoot)
	if err != nil {
		return out, &ParseError{"state_root", err}
	}
	body, err := decodeRoot(h.BodyRoot)
	if err != nil {
		return out, &ParseError{"body_root", err}
	}
	out.Slot, out.ProposerIndex, out.ParentRoot, out.StateRoot, out.BodyRoot = slot, idx, parent, state, body
	return out, nil
}

type syncCommitteeJSON struct {
	Pubkeys         []string `json:"pubkeys"`
	AggregatePubkey string   `json:"aggregate_pubkey"`
}

func (c *syncCommitteeJSON) toCommittee() (SyncCommittee, error) {
	var out SyncCommittee
	if len(c.Pubkeys) != SyncCommitteeSize {
		return out, &ParseError{"pubkeys", fmt.Errorf("expected %d pubkeys, got %d", SyncCommitteeSize, len(c.Pubkeys))}
	}
	for i, s := range c.Pubkeys {
		pk, err := decodePubkey(s)
		if err != nil {
			return out, &ParseError{"pubkeys", err}
		}
		out.Pubkeys[i] = pk
	}
	agg, err := decodePubkey(c.AggregatePubkey)
	if err != nil {
		return out, &ParseError{"aggregate_pubkey", err}
	}
	out.AggregatePubkey = agg
	return out, nil
}

type executionPayloadHeaderJSON struct {
	StateRoot   string `json:"state_root"`
	BlockNumber string `json:"block_number"`
	BlockHash   string `json:"block_hash"`
}

func (e *executionPayloadHeaderJSON) toHeader() (ExecutionPayloadHeader, error) {
	var out ExecutionPayloadHeader
	root, err := decodeRoot(e.StateRoot)
	if err != nil {
		return out, &ParseError{"state_root", err}
	}
	num, err := decimalUint64(e.BlockNumber)
	if err != nil {
		return out, &ParseError{"block_number", err}
	}
	hash, err := decodeRoot(e.BlockHash)
	if err != nil {
		return out, &ParseError{"block_hash", err}
	}
	out.StateRoot, out.BlockNumber, out.BlockHash = root, num, hash
	return out, nil
}

func decodeBranch(raw []string) ([][32]byte, error) {
	branch := make([][32]byte, len(raw))
	for i, s := range raw {
		r, err := decodeRoot(s)
		if err != nil {
			return nil, &ParseError{"branch", err}
		}
		branch[i] = r
	}
	return branch, nil
}

func decodeSyncAggregate(bits, sig string) (SyncAggregate, error) {
	var out SyncAggregate
	bitsBytes, err := hexutil.Decode(bits)
	if err != nil {
		return out, &ParseError{"sync_committee_bits", err}
	}
	bv, err := bitsToBitvector(bitsBytes)
	if err != nil {
		return out, &ParseError{"sync_committee_bits", err}
	}
	out.SyncCommitteeBits = bv
	s, err := decodeSignature(sig)
	if err != nil {
		return out, &ParseError{"sync_committee_signature", err}
	}
	out.SyncCommitteeSignature = s
	return out, nil
}

// bootstrapJSON is the "data" object of
// /eth/v1/beacon/light_client/bootstrap/{block_root}.
type bootstrapJSON struct {
	Header                     beaconBlockHeaderJSON      `json:"header"`
	CurrentSyncCommittee       syncCommitteeJSON          `json:"current_sync_committee"`
	CurrentSyncCommitteeBranch []string                   `json:"current_sync_committee_branch"`
	ExecutionPayloadHeader     executionPayloadHeaderJSON `json:"execution_payload_header"`
}

// ParseBootstrap parses the response body of the beacon-API bootstrap
// endpoint into a LightClientBootstrap.
func ParseBootstrap(data []byte) (*LightClientBootstrap, error) {
	var env struct {
		Data bootstrapJSON `json:"data"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &ParseError{"bootstrap", err}
	}
	header, err := env.Data.Header.toHeader()
	if err != nil {
		return nil, err
	}
	committee, err := env.Data.CurrentSyncCommittee.toCommittee()
	if err != nil {
		return nil, err
	}
	branch, err := decodeBranch(env.Data.CurrentSyncCommitteeBranch)
	if err != nil {
		return nil, err
	}
	exec, err := env.Data.ExecutionPayloadHeader.toHeader()
	if err != nil {
		return nil, err
	}
	return &LightClientBootstrap{
		Header:                     header,
		CurrentSyncCommittee:       committee,
		CurrentSyncCommitteeBranch: branch,
		ExecutionPayloadHeader:     exec,
	}, nil
}

// updateJSON is the "data" object of
// /eth/v1/beacon/light_client/finality_update, and of a full sync-committee
// rotation update (same shape, next_sync_committee populated).
type updateJSON struct {
	AttestedHeader             beaconBlockHeaderJSON       `json:"attested_header"`
	NextSyncCommittee          *syncCommitteeJSON          `json:"next_sync_committee,omitempty"`
	NextSyncCommitteeBranch    []string                    `json:"next_sync_committee_branch,omitempty"`
	FinalizedHeader            *beaconBlockHeaderJSON      `json:"finalized_header,omitempty"`
	FinalizedExecutionPayload  *executionPayloadHeaderJSON `json:"finalized_execution_payload_header,omitempty"`
	FinalityBranch             []string                    `json:"finality_branch,omitempty"`
	SyncAggregate              struct {
		SyncCommitteeBits      string `json:"sync_committee_bits"`
		SyncCommitteeSignature string `json:"sync_committee_signature"`
	} `json:"sync_aggregate"`
	SignatureSlot string `json:"signature_slot"`
}

// ParseUpdate parses a finality-update or sync-committee rotation update.
func ParseUpdate(data []byte) (*LightClientUpdate, error) {
	var env struct {
		Data updateJSON `json:"data"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &ParseError{"update", err}
	}
	d := env.Data
	attested, err := d.AttestedHeader.toHeader()
	if err != nil {
		return nil, err
	}
	sigSlot, err := decimalUint64(d.SignatureSlot)
	if err != nil {
		return nil, &ParseError{"signature_slot", err}
	}
	agg, err := decodeSyncAggregate(d.SyncAggregate.SyncCommitteeBits, d.SyncAggregate.SyncCommitteeSignature)
	if err != nil {
		return nil, err
	}
	out := &LightClientUpdate{
		AttestedHeader: attested,
		SyncAggregate:  agg,
		SignatureSlot:  sigSlot,
	}
	if d.FinalizedHeader != nil {
		fh, err := d.FinalizedHeader.toHeader()
		if err != nil {
			return nil, err
		}
		out.FinalizedHeader = &fh
		branch, err := decodeBranch(d.FinalityBranch)
		if err != nil {
			return nil, err
		}
		out.FinalityBranch = branch
		if d.FinalizedExecutionPayload != nil {
			ep, err := d.FinalizedExecutionPayload.toHeader()
			if err != nil {
				return nil, err
			}
			out.FinalizedExecutionPayload = &ep
		}
	}
	if d.NextSyncCommittee != nil {
		nc, err := d.NextSyncCommittee.toCommittee()
		if err != nil {
			return nil, err
		}
		out.NextSyncCommittee = &nc
		branch, err := decodeBranch(d.NextSyncCommitteeBranch)
		if err != nil {
			return nil, err
		}
		out.NextSyncCommitteeBranch = branch
	}
	return out, nil
}

// optimisticUpdateJSON is the "data" object of
// /eth/v1/beacon/light_client/optimistic_update.
type optimisticUpdateJSON struct {
	AttestedHeader beaconBlockHeaderJSON `json:"attested_header"`
	SyncAggregate  struct {
		SyncCommitteeBits      string `json:"sync_committee_bits"`
		SyncCommitteeSignature string `json:"sync_committee_signature"`
	} `json:"sync_aggregate"`
	SignatureSlot string `json:"signature_slot"`
}

// ParseOptimisticUpdate parses an optimistic update.
func ParseOptimisticUpdate(data []byte) (*LightClientOptimisticUpdate, error) {
	var env struct {
		Data optimisticUpdateJSON `json:"data"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &ParseError{"optimistic_update", err}
	}
	d := env.Data
	attested, err := d.AttestedHeader.toHeader()
	if err != nil {
		return nil, err
	}
	sigSlot, err := decimalUint64(d.SignatureSlot)
	if err != nil {
		return nil, &ParseError{"signature_slot", err}
	}
	agg, err := decodeSyncAggregate(d.SyncAggregate.SyncCommitteeBits, d.SyncAggregate.SyncCommitteeSignature)
	if err != nil {
		return nil, err
	}
	return &LightClientOptimisticUpdate{
		AttestedHeader: attested,
		SyncAggregate:  agg,
		SignatureSlot:  sigSlot,
	}, nil
}
