package battle

import (
	"fmt"

	"github.com/davidmovas/pokespire/internal/core/card"
	"github.com/davidmovas/pokespire/internal/core/status"
	"github.com/davidmovas/pokespire/internal/world/grid"
	"github.com/davidmovas/pokespire/pkg/persist/codec"
)

// Snapshot returns a deep copy of the battle state for observers. Mutating
// the copy has no effect on the battle.
func (b *Battle) Snapshot() *State {
	s := &State{
		Order:        append([]string(nil), b.state.Order...),
		CurrentIndex: b.state.CurrentIndex,
		Round:        b.state.Round,
		Phase:        b.state.Phase,
		Log:          append([]LogEntry(nil), b.state.Log...),
		GoldEarned:   b.state.GoldEarned,
		Seed:         b.state.Seed,
	}
	for _, c := range b.state.Combatants {
		s.Combatants = append(s.Combatants, c.clone())
	}
	return s
}

// combatantState is the serializable form of a Combatant.
type combatantState struct {
	ID            string            `msgpack:"id"`
	Side          grid.Side         `msgpack:"side"`
	SlotIndex     int               `msgpack:"slot_index"`
	Pos           grid.Position     `msgpack:"pos"`
	SpeciesID     string            `msgpack:"species_id"`
	Name          string            `msgpack:"name"`
	Types         []card.Type       `msgpack:"types"`
	CurrentHP     int               `msgpack:"current_hp"`
	MaxHP         int               `msgpack:"max_hp"`
	Block         int               `msgpack:"block"`
	Energy        int               `msgpack:"energy"`
	EnergyCap     int               `msgpack:"energy_cap"`
	EnergyPerTurn int               `msgpack:"energy_per_turn"`
	BaseSpeed     int               `msgpack:"base_speed"`
	HandSize      int               `msgpack:"hand_size"`
	Gold          int               `msgpack:"gold"`
	Piles         card.Piles        `msgpack:"piles"`
	Statuses      []status.Instance `msgpack:"statuses"`
	Passives      []string          `msgpack:"passives"`
	Switched      bool              `msgpack:"switched"`
	PlayedCard    bool              `msgpack:"played_card"`
	FirstTurn     bool              `msgpack:"first_turn"`
	ParentalBond  bool              `msgpack:"parental_bond"`
	Alive         bool              `msgpack:"alive"`
	KnockedOut    bool              `msgpack:"knocked_out"`
	Stats         Statistics        `msgpack:"stats"`
}

// stateSnapshot is the serializable form of a State.
type stateSnapshot struct {
	Combatants   []combatantState `msgpack:"combatants"`
	Order        []string         `msgpack:"order"`
	CurrentIndex int              `msgpack:"current_index"`
	Round        int              `msgpack:"round"`
	Phase        Phase            `msgpack:"phase"`
	Log          []LogEntry       `msgpack:"log"`
	GoldEarned   int              `msgpack:"gold_earned"`
	Seed         uint64           `msgpack:"seed"`
}

// MarshalBinary encodes the state with the default codec.
func (s *State) MarshalBinary() ([]byte, error) {
	snap := stateSnapshot{
		Order:        s.Order,
		CurrentIndex: s.CurrentIndex,
		Round:        s.Round,
		Phase:        s.Phase,
		Log:          s.Log,
		GoldEarned:   s.GoldEarned,
		Seed:         s.Seed,
	}
	for _, c := range s.Combatants {
		snap.Combatants = append(snap.Combatants, combatantState{
			ID:            c.ID,
			Side:          c.Side,
			SlotIndex:     c.SlotIndex,
			Pos:           c.Pos,
			SpeciesID:     c.SpeciesID,
			Name:          c.Name,
			Types:         c.Types,
			CurrentHP:     c.CurrentHP,
			MaxHP:         c.MaxHP,
			Block:         c.Block,
			Energy:        c.Energy,
			EnergyCap:     c.EnergyCap,
			EnergyPerTurn: c.EnergyPerTurn,
			BaseSpeed:     c.BaseSpeed,
			HandSize:      c.HandSize,
			Gold:          c.Gold,
			Piles:         c.Piles,
			Statuses:      c.Statuses.All(),
			Passives:      c.Passives,
			Switched:      c.HasSwitchedThisTurn,
			PlayedCard:    c.HasPlayedCardThisTurn,
			FirstTurn:     c.IsFirstTurn,
			ParentalBond:  c.ParentalBond,
			Alive:         c.Alive,
			KnockedOut:    c.KnockedOut,
			Stats:         c.Stats,
		})
	}
	return codec.Default.Encode(snap)
}

// UnmarshalBinary decodes a state produced by MarshalBinary.
func (s *State) UnmarshalBinary(data []byte) error {
	var snap stateSnapshot
	if err := codec.Default.Decode(data, &snap); err != nil {
		return fmt.Errorf("decode battle state: %w", err)
	}
	s.Combatants = nil
	for _, cs := range snap.Combatants {
		s.Combatants = append(s.Combatants, &Combatant{
			ID:                    cs.ID,
			Side:                  cs.Side,
			SlotIndex:             cs.SlotIndex,
			Pos:                   cs.Pos,
			SpeciesID:             cs.SpeciesID,
			Name:                  cs.Name,
			Types:                 cs.Types,
			CurrentHP:             cs.CurrentHP,
			MaxHP:                 cs.MaxHP,
			Block:                 cs.Block,
			Energy:                cs.Energy,
			EnergyCap:             cs.EnergyCap,
			EnergyPerTurn:         cs.EnergyPerTurn,
			BaseSpeed:             cs.BaseSpeed,
			HandSize:              cs.HandSize,
			Gold:                  cs.Gold,
			Piles:                 cs.Piles,
			Statuses:              status.Restore(cs.Statuses),
			Passives:              cs.Passives,
			HasSwitchedThisTurn:   cs.Switched,
			HasPlayedCardThisTurn: cs.PlayedCard,
			IsFirstTurn:           cs.FirstTurn,
			ParentalBond:          cs.ParentalBond,
			Alive:                 cs.Alive,
			KnockedOut:            cs.KnockedOut,
			Stats:                 cs.Stats,
		})
	}
	s.Order = snap.Order
	s.CurrentIndex = snap.CurrentIndex
	s.Round = snap.Round
	s.Phase = snap.Phase
	s.Log = snap.Log
	s.GoldEarned = snap.GoldEarned
	s.Seed = snap.Seed
	return nil
}
