// Package ai implements the scripted enemy policy: prefer the
// highest-damage playable card against the weakest reachable enemy, fall
// back to a support card, and end the turn when nothing is playable.
package ai

import (
	"github.com/davidmovas/pokespire/internal/core/battle"
	"github.com/davidmovas/pokespire/internal/world/grid"
)

// Controller drives one side's turns.
type Controller interface {
	// TakeTurn plays out the acting combatant's whole turn.
	TakeTurn(b *battle.Battle) error
}

var _ Controller = (*Scripted)(nil)

// Scripted is the deterministic enemy policy. Given the same battle state
// it always makes the same choices.
type Scripted struct {
	// MaxPlays bounds cards played per turn as a runaway guard.
	MaxPlays int
}

// NewScripted creates the scripted controller.
func NewScripted() *Scripted {
	return &Scripted{MaxPlays: 16}
}

// TakeTurn plays cards until none is playable, then ends the turn. It
// returns as soon as the battle ends or the turn passes on.
func (s *Scripted) TakeTurn(b *battle.Battle) error {
	actor := b.Current()
	if actor == nil || actor.Side != grid.SideEnemy {
		return nil
	}
	for plays := 0; plays < s.MaxPlays; plays++ {
		if b.Phase() != battle.PhaseOngoing {
			return nil
		}
		current := b.Current()
		if current == nil || current.ID != actor.ID {
			return nil
		}

		index, targetID, ok := s.pickOffensive(b, current)
		if !ok {
			index, targetID, ok = s.pickSupport(b, current)
		}
		if !ok {
			break
		}
		if err := b.PlayCard(index, targetID); err != nil {
			break
		}
	}
	if b.Phase() != battle.PhaseOngoing {
		return nil
	}
	return b.EndTurn()
}

// pickOffensive scores every playable damage card against every valid
// target and picks the lowest-HP target that some card can damage, using
// the card with the highest projected damage against it; remaining ties go
// to the earliest hand index. Taunting targets are a hard preference.
func (s *Scripted) pickOffensive(b *battle.Battle, actor *battle.Combatant) (int, string, bool) {
	bestIndex, bestTarget := -1, ""
	bestDamage, bestHP := -1, 0

	for i := range actor.Piles.Hand {
		mv, err := b.CardInHand(i)
		if err != nil || mv.Cost > actor.Energy || !mv.DealsDamage() {
			continue
		}
		ts, err := b.ValidTargets(i)
		if err != nil || len(ts.Candidates) == 0 {
			continue
		}
		candidates := preferTaunters(ts.Candidates)
		for _, cand := range candidates {
			projections, err := b.Preview(i, cand.ID)
			if err != nil {
				continue
			}
			total := 0
			for _, p := range projections {
				total += p.Damage
			}
			target, ok := b.Combatant(cand.ID)
			if !ok {
				continue
			}
			if total <= 0 {
				continue
			}
			if bestIndex < 0 || target.CurrentHP < bestHP || (target.CurrentHP == bestHP && total > bestDamage) {
				bestIndex, bestTarget = i, cand.ID
				bestDamage, bestHP = total, target.CurrentHP
			}
		}
	}
	if bestIndex < 0 {
		return 0, "", false
	}
	return bestIndex, bestTarget, true
}

// pickSupport returns the first playable non-damage card, targeting the
// first candidate when the range needs a selection.
func (s *Scripted) pickSupport(b *battle.Battle, actor *battle.Combatant) (int, string, bool) {
	for i := range actor.Piles.Hand {
		mv, err := b.CardInHand(i)
		if err != nil || mv.Cost > actor.Energy || mv.DealsDamage() {
			continue
		}
		ts, err := b.ValidTargets(i)
		if err != nil || len(ts.Candidates) == 0 {
			continue
		}
		if ts.RequiresSelection || ts.Representative {
			return i, ts.Candidates[0].ID, true
		}
		return i, "", true
	}
	return 0, "", false
}

func preferTaunters(candidates []grid.Occupant) []grid.Occupant {
	var taunters []grid.Occupant
	for _, c := range candidates {
		if c.Taunting {
			taunters = append(taunters, c)
		}
	}
	if len(taunters) > 0 {
		return taunters
	}
	return candidates
}
