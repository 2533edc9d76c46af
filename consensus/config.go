package consensus

import (
	"fmt"

	"github.com/VanshSahay/lumen/signing"
)

// Config holds the parameters the verifier needs beyond what arrives in
// bootstrap/update messages: timing constants, the fork schedule, and the
// acceptance-policy thresholds.
type Config struct {
	SecondsPerSlot uint64 // slot duration in seconds
	SlotsPerEpoch  uint64 // slots per epoch (32 on mainnet)

	// ForkSchedule and GindexSchedule are looked up by the epoch of
	// signature_slot at the start of every update — the only legitimate
	// polymorphism the verifier has.
	ForkSchedule   signing.ForkSchedule
	GindexSchedule signing.GeneralizedIndexSchedule

	// SlotTolerance bounds how far signature_slot may exceed
	// CurrentSlotEstimate before an update is rejected as implausibly far
	// in the future.
	SlotTolerance uint64

	// ParticipationThreshold is the minimum popcount of the 512-bit
	// participation vector required to accept a sync aggregate.
	ParticipationThreshold int
}

// DefaultConfig returns the standard Ethereum mainnet parameters: 12-second
// slots, 32 slots per epoch, the mainnet fork versions from Phase 0 through
// Electra, the Electra gindex set from genesis, a 64-slot (~12 minute)
// future-slot tolerance, and the 2/3-of-512 = 342 quorum.
func DefaultConfig() *Config {
	return &Config{
		SecondsPerSlot: 12,
		SlotsPerEpoch:  32,
		ForkSchedule: signing.ForkSchedule{
			{Epoch: 0, Version: signing.ForkVersion{0x00, 0x00, 0x00, 0x00}},
			{Epoch: 74240, Version: signing.ForkVersion{0x01, 0x00, 0x00, 0x00}},
			{Epoch: 144896, Version: signing.ForkVersion{0x02, 0x00, 0x00, 0x00}},
			{Epoch: 194048, Version: signing.ForkVersion{0x03, 0x00, 0x00, 0x00}},
			{Epoch: 269568, Version: signing.ForkVersion{0x04, 0x00, 0x00, 0x00}},
			{Epoch: 364032, Version: signing.ForkVersion{0x05, 0x00, 0x00, 0x00}},
		},
		GindexSchedule: signing.GeneralizedIndexSchedule{
			{Epoch: 0, Indices: signing.ElectraGeneralizedIndices},
		},
		SlotTolerance:          64,
		ParticipationThreshold: 342,
	}
}

// Validate checks the config's internal constraints.
func (c *Config) Validate() error {
	if c.SecondsPerSlot == 0 {
		return fmt.Errorf("consensus: SecondsPerSlot must be > 0")
	}
	if c.SlotsPerEpoch == 0 {
		return fmt.Errorf("consensus: SlotsPerEpoch must be > 0")
	}
	if len(c.ForkSchedule) == 0 || c.ForkSchedule[0].Epoch != 0 {
		return fmt.Errorf("consensus: ForkSchedule must have an entry at epoch 0")
	}
	if len(c.GindexSchedule) == 0 || c.GindexSchedule[0].Epoch != 0 {
		return fmt.Errorf("consensus: GindexSchedule must have an entry at epoch 0")
	}
	if c.ParticipationThreshold <= 0 || c.ParticipationThreshold > 512 {
		return fmt.Errorf("consensus: ParticipationThreshold must be in (0, 512]")
	}
	return nil
}

// EpochForSlot converts a slot to its containing epoch under this config.
func (c *Config) EpochForSlot(slot uint64) uint64 {
	return signing.EpochForSlot(slot, c.SlotsPerEpoch)
}

// forkVersionAt looks up the fork version covering the epoch containing
// slot, or UnsupportedFork if the schedule does not reach back that far
// (which cannot happen given the Validate invariant of an epoch-0 entry,
// but is checked explicitly so a malformed custom config fails loudly
// rather than silently picking the zero version).
func (c *Config) forkVersionAt(slot uint64) (signing.ForkVersion, error) {
	epoch := c.EpochForSlot(slot)
	for i := len(c.ForkSchedule) - 1; i >= 0; i-- {
		if c.ForkSchedule[i].Epoch <= epoch {
			return c.ForkSchedule[i].Version, nil
		}
	}
	return signing.ForkVersion{}, &UnsupportedFork{Slot: slot}
}

// gindicesAt looks up the generalized indices covering the epoch containing
// slot.
func (c *Config) gindicesAt(slot uint64) (signing.GeneralizedIndices, error) {
	epoch := c.EpochForSlot(slot)
	for i := len(c.GindexSchedule) - 1; i >= 0; i-- {
		if c.GindexSchedule[i].Epoch <= epoch {
			return c.GindexSchedule[i].Indices, nil
		}
	}
	return signing.GeneralizedIndices{}, &UnsupportedFork{Slot: slot}
}
