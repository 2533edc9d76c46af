package signing

// GeneralizedIndices holds the Merkle generalized indices a light client
// needs to verify inclusion proofs against a beacon state root. These are
// fork-dependent: Electra's beacon state layout differs from Altair's, so a
// fork schedule carries one GeneralizedIndices value per fork rather than
// the package hardcoding a single fork's numbers.
type GeneralizedIndices struct {
	FinalizedRoot         uint64
	CurrentSyncCommittee  uint64
	NextSyncCommittee     uint64
}

// ElectraGeneralizedIndices are the gindices defined by the Electra fork:
// finalized_root at depth 7, current/next sync committee at depth 6.
var ElectraGeneralizedIndices = GeneralizedIndices{
	FinalizedRoot:        169,
	CurrentSyncCommittee: 86,
	NextSyncCommittee:    87,
}

// GeneralizedIndexSchedule maps fork epochs to the GeneralizedIndices active
// from that epoch onward, mirroring ForkSchedule's shape.
type GeneralizedIndexSchedule []GeneralizedIndexScheduleEntry

// GeneralizedIndexScheduleEntry is one row of a GeneralizedIndexSchedule.
type GeneralizedIndexScheduleEntry struct {
	Epoch   uint64
	Indices GeneralizedIndices
}

// ForEpoch returns the GeneralizedIndices active at epoch.
func (s GeneralizedIndexSchedule) ForEpoch(epoch uint64) GeneralizedIndices {
	var active GeneralizedIndices
	for _, e := range s {
		if e.Epoch > epoch {
			break
		}
		active = e.Indices
	}
	return active
}
