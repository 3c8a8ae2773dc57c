package grid

import (
	"github.com/davidmovas/pokespire/internal/core/card"
)

// Occupant is a board-level view of one combatant, enough to resolve
// targeting without reaching into battle state.
type Occupant struct {
	ID       string
	Side     Side
	Pos      Position
	Alive    bool
	Taunting bool
}

// Board is an ordered occupancy snapshot of both sides. Order follows the
// battle's combatant list so resolution is deterministic.
type Board struct {
	occupants []Occupant
}

// NewBoard builds a board from an occupancy snapshot.
func NewBoard(occupants []Occupant) Board {
	list := make([]Occupant, len(occupants))
	copy(list, occupants)
	return Board{occupants: list}
}

// At returns the live occupant of a cell.
func (b Board) At(side Side, pos Position) (Occupant, bool) {
	for _, o := range b.occupants {
		if o.Alive && o.Side == side && o.Pos.Equals(pos) {
			return o, true
		}
	}
	return Occupant{}, false
}

// SideOf returns the live occupants of one side in snapshot order.
func (b Board) SideOf(side Side) []Occupant {
	var out []Occupant
	for _, o := range b.occupants {
		if o.Alive && o.Side == side {
			out = append(out, o)
		}
	}
	return out
}

// Row returns the live occupants of one row of a side.
func (b Board) Row(side Side, row Row) []Occupant {
	var out []Occupant
	for _, o := range b.occupants {
		if o.Alive && o.Side == side && o.Pos.Row == row {
			out = append(out, o)
		}
	}
	return out
}

// Column returns the live occupants of one column of a side, front row
// before back row.
func (b Board) Column(side Side, column int) []Occupant {
	var out []Occupant
	for _, row := range []Row{RowFront, RowBack} {
		if o, ok := b.At(side, Position{Row: row, Column: column}); ok {
			out = append(out, o)
		}
	}
	return out
}

// Protected reports whether an occupant sits in the back row behind a live
// front-row ally in the same column. Protected combatants cannot be hit by
// ranges that do not explicitly reach the back row.
func (b Board) Protected(o Occupant) bool {
	if o.Pos.Row != RowBack {
		return false
	}
	_, ok := b.At(o.Side, Position{Row: RowFront, Column: o.Pos.Column})
	return ok
}

// TargetSet is the result of resolving a card range from an actor's cell.
type TargetSet struct {
	// Candidates are the occupants the card can legally affect, or for a
	// fixed AoE the full affected set.
	Candidates []Occupant

	// RequiresSelection is true when the caller must pick one candidate.
	RequiresSelection bool

	// Representative is true when the selected candidate only fixes the
	// affected column or row rather than being the sole target.
	Representative bool
}

// ValidTargets resolves the legal targets of a card range from the acting
// combatant's position. Single-target ranges with exactly one candidate
// auto-select.
func ValidTargets(b Board, actor Occupant, r card.Range) TargetSet {
	foe := actor.Side.Opposite()
	switch r {
	case card.RangeSelf:
		return TargetSet{Candidates: []Occupant{actor}}
	case card.RangeAllAllies:
		return TargetSet{Candidates: b.SideOf(actor.Side)}
	case card.RangeAllEnemies:
		return TargetSet{Candidates: b.SideOf(foe)}
	case card.RangeFrontRow:
		return TargetSet{Candidates: b.Row(foe, RowFront)}
	case card.RangeBackRow:
		return TargetSet{Candidates: b.Row(foe, RowBack)}
	case card.RangeAdjacentAlly:
		var out []Occupant
		for _, o := range b.SideOf(actor.Side) {
			if o.ID != actor.ID && o.Pos.IsAdjacent(actor.Pos) {
				out = append(out, o)
			}
		}
		return single(out)
	case card.RangeAnyAlly:
		return single(b.SideOf(actor.Side))
	case card.RangeFrontEnemy:
		var out []Occupant
		for _, o := range b.SideOf(foe) {
			if !b.Protected(o) {
				out = append(out, o)
			}
		}
		return single(out)
	case card.RangeBackEnemy:
		return single(b.Row(foe, RowBack))
	case card.RangeAnyEnemy:
		return single(b.SideOf(foe))
	case card.RangeColumn, card.RangeAnyRow:
		out := b.SideOf(foe)
		return TargetSet{
			Candidates:        out,
			RequiresSelection: len(out) > 0,
			Representative:    true,
		}
	default:
		return TargetSet{}
	}
}

func single(out []Occupant) TargetSet {
	return TargetSet{Candidates: out, RequiresSelection: len(out) > 1}
}

// Affected expands a resolved selection into the full set of occupants the
// card hits. For column and any_row ranges the chosen occupant fixes the
// affected column or row; for other ranges the selection is the target.
func Affected(b Board, actor Occupant, r card.Range, chosen Occupant) []Occupant {
	foe := actor.Side.Opposite()
	switch r {
	case card.RangeColumn:
		return b.Column(foe, chosen.Pos.Column)
	case card.RangeAnyRow:
		return b.Row(foe, chosen.Pos.Row)
	case card.RangeAllAllies, card.RangeAllEnemies, card.RangeFrontRow, card.RangeBackRow:
		return ValidTargets(b, actor, r).Candidates
	default:
		return []Occupant{chosen}
	}
}

// ValidSwitchTargets lists the cells a combatant may switch into: any cell
// on its own side adjacent to its current one. A cell occupied by a live
// ally is legal; the ally swaps into the vacated cell.
func ValidSwitchTargets(b Board, actor Occupant) []Position {
	var out []Position
	for _, pos := range actor.Pos.Adjacent() {
		if !pos.Valid() {
			continue
		}
		out = append(out, pos)
	}
	return out
}
