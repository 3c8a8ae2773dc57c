package battle

import (
	"fmt"

	"github.com/davidmovas/pokespire/internal/data"
	"github.com/davidmovas/pokespire/internal/world/grid"
)

// IntentKind names one of the three battle intents.
type IntentKind string

const (
	IntentPlayCard IntentKind = "play_card"
	IntentEndTurn  IntentKind = "end_turn"
	IntentSwitch   IntentKind = "switch"
)

// Intent is one accepted intent, as recorded in the battle journal. A
// battle is fully reproducible from its setup plus its journal.
type Intent struct {
	Kind      IntentKind    `msgpack:"kind"`
	CardIndex int           `msgpack:"card_index,omitempty"`
	TargetID  string        `msgpack:"target_id,omitempty"`
	Pos       grid.Position `msgpack:"pos,omitempty"`
}

// Journal returns the accepted intents in application order.
func (b *Battle) Journal() []Intent {
	out := make([]Intent, len(b.journal))
	copy(out, b.journal)
	return out
}

// Replay reconstructs a battle by re-driving a journal against a fresh
// battle built from the same setup. The engine is deterministic, so the
// result matches the original state and log bit for bit. A journal entry
// the fresh battle rejects means the inputs do not belong together.
func Replay(reg *data.Registry, setup Setup, intents []Intent) (*Battle, error) {
	b, err := New(reg, setup)
	if err != nil {
		return nil, err
	}
	for i, in := range intents {
		switch in.Kind {
		case IntentPlayCard:
			err = b.PlayCard(in.CardIndex, in.TargetID)
		case IntentEndTurn:
			err = b.EndTurn()
		case IntentSwitch:
			err = b.SwitchPosition(in.Pos)
		default:
			err = fmt.Errorf("unknown intent kind %q", in.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("replay intent %d (%s): %w", i, in.Kind, err)
		}
	}
	return b, nil
}
