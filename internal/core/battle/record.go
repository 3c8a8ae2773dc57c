package battle

import (
	"fmt"

	"github.com/davidmovas/pokespire/pkg/persist"
	"github.com/davidmovas/pokespire/pkg/persist/codec"
)

// Record packages the battle into a replay record: setup, journal, final
// state, and log, each encoded with the default codec. Replaying the setup
// against the journal reproduces the stored state.
func (b *Battle) Record() (*persist.ReplayRecord, error) {
	record := persist.NewReplayRecord(b.id)
	record.Seed = b.setup.Seed
	record.Phase = string(b.state.Phase)
	record.Rounds = b.state.Round
	record.GoldEarned = b.state.GoldEarned

	var err error
	if record.Setup, err = codec.Default.Encode(b.setup); err != nil {
		return nil, fmt.Errorf("encode setup: %w", err)
	}
	if record.Journal, err = codec.Default.Encode(b.journal); err != nil {
		return nil, fmt.Errorf("encode journal: %w", err)
	}
	if record.FinalState, err = b.state.MarshalBinary(); err != nil {
		return nil, fmt.Errorf("encode final state: %w", err)
	}
	if record.Log, err = codec.Default.Encode(b.state.Log); err != nil {
		return nil, fmt.Errorf("encode log: %w", err)
	}
	return record, nil
}

// DecodeRecordInputs unpacks the setup and journal of a stored record so a
// battle can be re-driven from it.
func DecodeRecordInputs(record *persist.ReplayRecord) (Setup, []Intent, error) {
	var setup Setup
	if err := codec.Default.Decode(record.Setup, &setup); err != nil {
		return Setup{}, nil, fmt.Errorf("decode setup: %w", err)
	}
	var intents []Intent
	if err := codec.Default.Decode(record.Journal, &intents); err != nil {
		return Setup{}, nil, fmt.Errorf("decode journal: %w", err)
	}
	return setup, intents, nil
}
