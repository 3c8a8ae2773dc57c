package battle

import (
	"github.com/davidmovas/pokespire/internal/core/card"
	"github.com/davidmovas/pokespire/internal/core/status"
	"github.com/davidmovas/pokespire/internal/world/grid"
)

// Statistics tracks per-combatant combat totals for the end-of-battle
// report.
type Statistics struct {
	DamageDealt int `msgpack:"damage_dealt"`
	DamageTaken int `msgpack:"damage_taken"`
	Healing     int `msgpack:"healing"`
}

// Combatant is one battle participant. Combatants are created once at setup
// from a species template; a knocked-out combatant keeps its slot with
// Alive=false.
type Combatant struct {
	ID        string
	Side      grid.Side
	SlotIndex int
	Pos       grid.Position
	SpeciesID string
	Name      string
	Types     []card.Type

	CurrentHP     int
	MaxHP         int
	Block         int
	Energy        int
	EnergyCap     int
	EnergyPerTurn int
	BaseSpeed     int
	HandSize      int
	Gold          int

	Piles    card.Piles
	Statuses *status.Set
	Passives []string

	HasSwitchedThisTurn   bool
	HasPlayedCardThisTurn bool
	IsFirstTurn           bool

	// ParentalBond marks that the next damage-bearing card this combatant
	// plays enqueues a half-damage echo copy.
	ParentalBond bool

	Alive      bool
	KnockedOut bool

	Stats Statistics
}

// EffectiveSpeed is the initiative speed after slow and haste.
func (c *Combatant) EffectiveSpeed() int {
	return status.EffectiveSpeed(c.BaseSpeed, c.Statuses)
}

// HasPassive reports whether the combatant carries a passive ability.
func (c *Combatant) HasPassive(id string) bool {
	for _, p := range c.Passives {
		if p == id {
			return true
		}
	}
	return false
}

// Occupant is the board-level view used by the targeting resolver.
func (c *Combatant) Occupant() grid.Occupant {
	return grid.Occupant{
		ID:       c.ID,
		Side:     c.Side,
		Pos:      c.Pos,
		Alive:    c.Alive,
		Taunting: c.Statuses.Has(status.Taunt),
	}
}

func (c *Combatant) clone() *Combatant {
	clone := *c
	clone.Types = append([]card.Type(nil), c.Types...)
	clone.Passives = append([]string(nil), c.Passives...)
	clone.Piles = c.Piles.Clone()
	clone.Statuses = status.Restore(c.Statuses.All())
	return &clone
}
