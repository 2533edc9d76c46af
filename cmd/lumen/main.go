// Command lumen is a demonstration harness for the light-client verification
// core: it bootstraps a Verifier from a beacon-API bootstrap response,
// applies a sequence of light client updates to it, and optionally checks an
// eth_getProof-shaped account or storage proof against the resulting state
// root. It does not sync or fetch anything itself — every input is a JSON
// file the caller already retrieved from a beacon node or execution client.
//
// Usage:
//
//	lumen -bootstrap bootstrap.json -genesis-root 0x... \
//	      -update update1.json -update update2.json -current-slot 12345678 \
//	      [-account 0x... -account-proof proof.json] \
//	      [-storage-slot 0x... -storage-proof proof.json]
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/VanshSahay/lumen/client"
	"github.com/VanshSahay/lumen/consensus"
)

var (
	version = "v0.1.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the real entry point, returning a process exit code so it can be
// exercised from tests without calling os.Exit.
func run(args []string) int {
	fs := newFlagSet("lumen")

	var (
		bootstrapPath  string
		genesisRootHex string
		updatePaths    stringList
		currentSlot    uint64
		accountHex     string
		accountProof   string
		storageRootHex string
		slotHex        string
		storageProof   string
		showVersion    = fs.Bool("version", false, "print version and exit")
	)
	fs.StringVar(&bootstrapPath, "bootstrap", "", "path to a light_client/bootstrap response JSON file")
	fs.StringVar(&genesisRootHex, "genesis-root", "", "0x-prefixed genesis_validators_root")
	fs.Var(&updatePaths, "update", "path to a light_client update JSON file (repeatable, applied in order)")
	fs.Uint64Var(&currentSlot, "current-slot", 0, "current_slot_hint passed to every update")
	fs.StringVar(&accountHex, "account", "", "0x-prefixed account address to verify")
	fs.StringVar(&accountProof, "account-proof", "", "path to a JSON array of 0x-prefixed accountProof nodes")
	fs.StringVar(&storageRootHex, "storage-root", "", "0x-prefixed storage root (defaults to the verified account's storage root)")
	fs.StringVar(&slotHex, "storage-slot", "", "0x-prefixed, left-padded 32-byte storage slot key")
	fs.StringVar(&storageProof, "storage-proof", "", "path to a JSON array of 0x-prefixed storageProof nodes")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		fmt.Printf("lumen %s (commit %s)\n", version, commit)
		return 0
	}
	if bootstrapPath == "" {
		fmt.Fprintln(os.Stderr, "lumen: -bootstrap is required")
		return 2
	}

	log.SetFlags(0)

	c := client.New(consensus.DefaultConfig())

	genesisRoot, err := decodeRoot(genesisRootHex)
	if err != nil {
		log.Printf("invalid -genesis-root: %v", err)
		return 1
	}
	bootstrapJSON, err := os.ReadFile(bootstrapPath)
	if err != nil {
		log.Printf("reading -bootstrap: %v", err)
		return 1
	}
	v, err := c.Bootstrap(bootstrapJSON, genesisRoot)
	if err != nil {
		log.Printf("bootstrap rejected: %v", err)
		return 1
	}
	log.Printf("bootstrapped at finalized slot %d", v.FinalizedHeader.Slot)

	for _, path := range updatePaths {
		updateJSON, err := os.ReadFile(path)
		if err != nil {
			log.Printf("reading -update %s: %v", path, err)
			return 1
		}
		res, err := c.IngestUpdate(updateJSON, currentSlot)
		if err != nil {
			log.Printf("update %s rejected: %v", path, err)
			return 1
		}
		log.Printf("applied %s: advanced=%v finalized_slot=%d optimistic_slot=%d participation=%d",
			path, res.Advanced, res.FinalizedSlot, res.OptimisticSlot, res.Participation)
	}

	var account *client.AccountRecord
	if accountHex != "" {
		proofHex, err := readHexArray(accountProof)
		if err != nil {
			log.Printf("reading -account-proof: %v", err)
			return 1
		}
		account, err = c.VerifyAccountProofAtInternalRoot(accountHex, proofHex)
		if err != nil {
			log.Printf("account proof rejected: %v", err)
			return 1
		}
		printAccount(accountHex, account)
	}

	if slotHex != "" {
		root, err := storageRootFor(storageRootHex, account)
		if err != nil {
			log.Printf("%v", err)
			return 1
		}
		proofHex, err := readHexArray(storageProof)
		if err != nil {
			log.Printf("reading -storage-proof: %v", err)
			return 1
		}
		value, err := c.VerifyStorageProof(root, slotHex, proofHex)
		if err != nil {
			log.Printf("storage proof rejected: %v", err)
			return 1
		}
		fmt.Printf("storage[%s] = %s\n", slotHex, value)
	}

	return 0
}

func decodeRoot(s string) (root [32]byte, err error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return root, err
	}
	if len(b) != 32 {
		return root, fmt.Errorf("expected 32 bytes, got %d", len(b))
	}
	copy(root[:], b)
	return root, nil
}

func readHexArray(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var nodes []string
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

func storageRootFor(explicit string, account *client.AccountRecord) ([32]byte, error) {
	if explicit != "" {
		return decodeRoot(explicit)
	}
	if account == nil || !account.Exists {
		return [32]byte{}, fmt.Errorf("no -storage-root given and no verified account to take it from")
	}
	return account.StorageRoot, nil
}

func printAccount(address string, acc *client.AccountRecord) {
	if !acc.Exists {
		fmt.Printf("account %s: does not exist (verified absence)\n", address)
		return
	}
	fmt.Printf("account %s:\n", address)
	fmt.Printf("  nonce:        %d\n", acc.Nonce)
	fmt.Printf("  balance:      %s\n", acc.Balance)
	fmt.Printf("  storage root: %s\n", hexutil.Encode(acc.StorageRoot[:]))
	fmt.Printf("  code hash:    %s\n", hexutil.Encode(acc.CodeHash[:]))
}
