package battle

import (
	"github.com/davidmovas/pokespire/internal/core/card"
	"github.com/davidmovas/pokespire/internal/core/damage"
	"github.com/davidmovas/pokespire/internal/core/status"
	"github.com/davidmovas/pokespire/internal/world/grid"
)

// Projection is the projected outcome of playing a card against one target,
// computed by mirroring the damage pipeline without advancing the RNG.
type Projection struct {
	TargetID string

	// Damage is the total HP the target would lose if every hit lands,
	// before block.
	Damage int

	// MissChance is the percent chance a single hit misses.
	MissChance int

	Effectiveness damage.EffectClass
	STAB          bool
}

// Preview projects the damage of the acting combatant's card against every
// combatant it would affect. targetID picks the candidate the projection is
// anchored on; it may be empty for fixed shapes and auto-selections. The
// battle state and the RNG are untouched.
func (b *Battle) Preview(cardIndex int, targetID string) ([]Projection, error) {
	c := b.state.Current()
	if c == nil {
		return nil, ErrNotYourTurn
	}
	mv, err := b.CardInHand(cardIndex)
	if err != nil {
		return nil, err
	}
	ts, err := b.ValidTargets(cardIndex)
	if err != nil {
		return nil, err
	}
	if len(ts.Candidates) == 0 {
		return nil, ErrNoValidTargets
	}

	var affected []grid.Occupant
	switch {
	case targetID != "":
		var chosen grid.Occupant
		found := false
		for _, cand := range ts.Candidates {
			if cand.ID == targetID {
				chosen = cand
				found = true
				break
			}
		}
		if !found {
			return nil, ErrInvalidTarget
		}
		if ts.Representative {
			affected = grid.Affected(b.state.board(), c.Occupant(), mv.Range, chosen)
		} else if isFixedAoE(mv.Range) {
			affected = ts.Candidates
		} else {
			affected = []grid.Occupant{chosen}
		}
	case len(ts.Candidates) == 1 && !ts.Representative:
		affected = ts.Candidates
	default:
		affected = ts.Candidates
	}

	out := make([]Projection, 0, len(affected))
	for _, occ := range affected {
		t, ok := b.state.Combatant(occ.ID)
		if !ok {
			continue
		}
		out = append(out, b.project(c, t, mv))
	}
	return out, nil
}

func (b *Battle) project(actor, target *Combatant, mv card.Move) Projection {
	p := Projection{TargetID: target.ID, Effectiveness: damage.ClassNeutral}
	for _, eff := range mv.Effects {
		if !eff.DealsDamage() {
			continue
		}
		base := eff.Value
		if eff.Kind == card.EffectPercentHP {
			base = damage.PercentOf(target.MaxHP, eff.Value)
		}
		proj := damage.Project(damage.Input{
			Base:           base,
			MoveType:       mv.Type,
			SetDamage:      eff.Kind == card.EffectSetDamage,
			AttackerTypes:  actor.Types,
			DefenderTypes:  target.Types,
			StrengthStacks: actor.Statuses.Stacks(status.Strength),
			EnfeebleStacks: actor.Statuses.Stacks(status.Enfeeble),
			EvasionStacks:  target.Statuses.Stacks(status.Evasion),
		})
		hits := 1
		if eff.Kind == card.EffectMultiHit {
			hits = eff.Hits
		}
		p.Damage += proj.Damage * hits
		p.MissChance = proj.MissChance
		if eff.Kind != card.EffectSetDamage {
			p.Effectiveness = damage.Classify(proj.EffectivenessNum, proj.EffectivenessDen)
			p.STAB = proj.STAB
		}
	}
	return p
}
