package battle

import (
	"github.com/davidmovas/pokespire/internal/core/card"
	"github.com/davidmovas/pokespire/internal/core/damage"
	"github.com/davidmovas/pokespire/internal/core/status"
	"github.com/davidmovas/pokespire/internal/world/grid"
)

type hitResult struct {
	landed bool
	dealt  int
	killed bool
}

// resolveHit runs one pass of the damage pipeline from attacker to target,
// spends the target's block, commits the HP loss, and fires the damage
// hooks. Lethal damage against a full-HP combatant with sturdy leaves it at
// 1 HP.
func (b *Battle) resolveHit(actor, target *Combatant, mv card.Move, base int, setDamage bool) hitResult {
	if !target.Alive {
		return hitResult{}
	}

	res := damage.Compute(damage.Input{
		Base:           base,
		MoveType:       mv.Type,
		SetDamage:      setDamage,
		AttackerTypes:  actor.Types,
		DefenderTypes:  target.Types,
		StrengthStacks: actor.Statuses.Stacks(status.Strength),
		EnfeebleStacks: actor.Statuses.Stacks(status.Enfeeble),
		EvasionStacks:  target.Statuses.Stacks(status.Evasion),
	}, b.rng)
	if res.Missed {
		b.logf(LogMiss, target.ID, "%s avoids %s", target.Name, mv.Name)
		return hitResult{}
	}

	absorbed, remaining := damage.AbsorbBlock(res.Damage, target.Block)
	if absorbed > 0 {
		target.Block -= absorbed
		b.logf(LogBlock, target.ID, "%s's Block absorbs %d damage", target.Name, absorbed)
	}

	if remaining >= target.CurrentHP && target.CurrentHP == target.MaxHP && target.HasPassive("sturdy") {
		remaining = target.CurrentHP - 1
		b.logf(LogInfo, target.ID, "%s hangs on with Sturdy", target.Name)
	}

	switch damage.Classify(res.EffectivenessNum, res.EffectivenessDen) {
	case damage.ClassSuper:
		b.logf(LogDamage, target.ID, "%s takes %d damage (super effective)", target.Name, remaining)
	case damage.ClassNotEffective:
		b.logf(LogDamage, target.ID, "%s takes %d damage (not very effective)", target.Name, remaining)
	case damage.ClassImmune:
		b.logf(LogDamage, target.ID, "%s takes %d damage (immune)", target.Name, remaining)
	default:
		b.logf(LogDamage, target.ID, "%s takes %d damage", target.Name, remaining)
	}

	dealt := remaining
	if dealt > target.CurrentHP {
		dealt = target.CurrentHP
	}
	out := hitResult{landed: true, dealt: dealt}
	if dealt > 0 {
		target.CurrentHP -= dealt
		target.Stats.DamageTaken += dealt
		actor.Stats.DamageDealt += dealt
		if target.CurrentHP <= 0 {
			target.CurrentHP = 0
			b.knockOut(target, actor.ID)
			out.killed = true
		}
	}

	b.firePassives(hookDamageDealt, actor, target, dealt, &mv)
	if !out.killed {
		b.firePassives(hookDamageTaken, target, actor, dealt, &mv)
	}
	return out
}

// executeEffects runs a move's effect list in declaration order over the
// resolved target set. AoE applies each effect to every target before
// moving on; the set is not re-resolved between effects. A target knocked
// out mid-card is skipped by the remaining effects.
func (b *Battle) executeEffects(actor *Combatant, mv card.Move, targets []*Combatant) {
	skipped := make(map[string]bool)
	hitLanded := false

	forEachTarget := func(fn func(t *Combatant)) {
		for _, t := range targets {
			if b.state.Phase != PhaseOngoing {
				return
			}
			if skipped[t.ID] {
				continue
			}
			fn(t)
		}
	}

	for _, eff := range mv.Effects {
		if b.state.Phase != PhaseOngoing {
			return
		}
		switch eff.Kind {
		case card.EffectDamage:
			forEachTarget(func(t *Combatant) {
				res := b.resolveHit(actor, t, mv, eff.Value, false)
				hitLanded = hitLanded || res.landed
				if res.killed {
					skipped[t.ID] = true
				}
			})
		case card.EffectMultiHit:
			forEachTarget(func(t *Combatant) {
				for i := 0; i < eff.Hits && t.Alive; i++ {
					if b.state.Phase != PhaseOngoing {
						return
					}
					res := b.resolveHit(actor, t, mv, eff.Value, false)
					hitLanded = hitLanded || res.landed
					if res.killed {
						skipped[t.ID] = true
					}
				}
			})
		case card.EffectSetDamage:
			forEachTarget(func(t *Combatant) {
				res := b.resolveHit(actor, t, mv, eff.Value, true)
				hitLanded = hitLanded || res.landed
				if res.killed {
					skipped[t.ID] = true
				}
			})
		case card.EffectPercentHP:
			forEachTarget(func(t *Combatant) {
				base := damage.PercentOf(t.MaxHP, eff.Value)
				res := b.resolveHit(actor, t, mv, base, false)
				hitLanded = hitLanded || res.landed
				if res.killed {
					skipped[t.ID] = true
				}
			})
		case card.EffectRecoil:
			b.applyRawDamage(actor, eff.Value, "", "Recoil deals %d damage to %s")
		case card.EffectHeal:
			b.heal(actor, eff.Value)
		case card.EffectHealOnHit:
			if hitLanded {
				b.heal(actor, eff.Value)
			}
		case card.EffectSelfKO:
			b.selfSacrifice(actor, eff.Value)
		case card.EffectBlock:
			forEachTarget(func(t *Combatant) {
				t.Block += eff.Value
				b.logf(LogBlock, t.ID, "%s gains %d Block", t.Name, eff.Value)
			})
		case card.EffectApplyStatus:
			forEachTarget(func(t *Combatant) {
				b.applyStatus(t, eff.Status, eff.Stacks, actor.ID)
			})
		case card.EffectApplyStatusSelf:
			b.applyStatus(actor, eff.Status, eff.Stacks, actor.ID)
		case card.EffectCleanse:
			forEachTarget(func(t *Combatant) {
				for _, kind := range t.Statuses.Cleanse() {
					b.logf(LogStatusRemoved, t.ID, "%s is cured of %s", t.Name, kind)
				}
			})
		case card.EffectDrawCard:
			drawn := actor.Piles.DrawN(eff.N, actor.HandSize, b.rng)
			if len(drawn) > 0 {
				b.logf(LogDraw, actor.ID, "%s draws %d cards", actor.Name, len(drawn))
			}
		case card.EffectDiscardRandom:
			forEachTarget(func(t *Combatant) {
				discarded := t.Piles.DiscardRandom(eff.N, b.rng)
				if len(discarded) > 0 {
					b.logf(LogInfo, t.ID, "%s discards %d cards", t.Name, len(discarded))
				}
			})
		case card.EffectGainEnergy:
			gained := eff.N
			if actor.Energy+gained > actor.EnergyCap {
				gained = actor.EnergyCap - actor.Energy
			}
			if gained > 0 {
				actor.Energy += gained
				b.logf(LogEnergy, actor.ID, "%s gains %d energy", actor.Name, gained)
			}
		case card.EffectSwitchSelf:
			b.shiftRow(actor)
		case card.EffectPullTarget:
			forEachTarget(func(t *Combatant) {
				if dest, ok := t.Pos.Toward(); ok {
					b.moveIfFree(t, dest)
				}
			})
		case card.EffectPushTarget:
			forEachTarget(func(t *Combatant) {
				if dest, ok := t.Pos.Away(); ok {
					b.moveIfFree(t, dest)
				}
			})
		case card.EffectEvolve:
			b.evolve(actor)
		case card.EffectParentalBond:
			actor.ParentalBond = true
			b.logf(LogInfo, actor.ID, "%s readies a second strike", actor.Name)
		case card.EffectAddPoolCard:
			b.addPoolCards(actor, eff.Pool, eff.N)
		case card.EffectRevive:
			forEachTarget(func(t *Combatant) {
				b.revive(t)
			})
		}
	}
}

// selfSacrifice deals direct HP loss to the actor, past block.
func (b *Battle) selfSacrifice(actor *Combatant, amount int) {
	if !actor.Alive || amount <= 0 {
		return
	}
	if amount > actor.CurrentHP {
		amount = actor.CurrentHP
	}
	actor.CurrentHP -= amount
	actor.Stats.DamageTaken += amount
	b.logf(LogDamage, actor.ID, "%s sacrifices %d HP", actor.Name, amount)
	if actor.CurrentHP <= 0 {
		actor.CurrentHP = 0
		b.knockOut(actor, actor.ID)
	}
}

// shiftRow toggles the actor between its front and back row in the same
// column, a silent no-op when the destination cell is occupied.
func (b *Battle) shiftRow(c *Combatant) {
	dest := grid.NewPosition(grid.RowBack, c.Pos.Column)
	if c.Pos.Row == grid.RowBack {
		dest = grid.NewPosition(grid.RowFront, c.Pos.Column)
	}
	b.moveIfFree(c, dest)
}

// moveIfFree relocates a combatant to a cell on its own side, silently
// doing nothing when a live ally already holds it.
func (b *Battle) moveIfFree(c *Combatant, dest grid.Position) {
	if !c.Alive || !dest.Valid() {
		return
	}
	if _, occupied := b.state.board().At(c.Side, dest); occupied {
		return
	}
	c.Pos = dest
	b.logf(LogSwitch, c.ID, "%s moves to the %s row", c.Name, dest.Row)
}

// evolve transforms the actor into its next species form. Damage already
// taken carries over; the deck is untouched.
func (b *Battle) evolve(c *Combatant) {
	sp, err := b.reg.Species(c.SpeciesID)
	if err != nil || sp.EvolvesInto == "" {
		return
	}
	evo, err := b.reg.Species(sp.EvolvesInto)
	if err != nil {
		return
	}
	taken := c.MaxHP - c.CurrentHP
	c.SpeciesID = evo.ID
	c.Name = evo.Name
	c.Types = append([]card.Type(nil), evo.Types...)
	c.MaxHP = evo.MaxHP
	c.CurrentHP = evo.MaxHP - taken
	if c.CurrentHP < 1 {
		c.CurrentHP = 1
	}
	c.BaseSpeed = evo.Speed
	c.EnergyPerTurn = evo.EnergyPerTurn
	c.EnergyCap = evo.EnergyCap
	if c.Energy > c.EnergyCap {
		c.Energy = c.EnergyCap
	}
	c.HandSize = evo.HandSize
	c.Gold = evo.Gold
	c.Passives = append([]string(nil), evo.Passives...)
	b.logf(LogEvolve, c.ID, "%s evolves into %s!", sp.Name, evo.Name)
}

// addPoolCards synthesizes random moves from a type pool straight into the
// actor's hand. Cards that do not fit under the hand size are not created.
func (b *Battle) addPoolCards(actor *Combatant, pool card.Type, n int) {
	candidates := b.reg.PoolMoves(pool)
	if len(candidates) == 0 {
		return
	}
	for i := 0; i < n; i++ {
		mv := candidates[b.rng.IntN(len(candidates))]
		if !actor.Piles.AddToHand(mv.ID, actor.HandSize) {
			return
		}
		b.logf(LogDraw, actor.ID, "%s conjures %s", actor.Name, mv.Name)
	}
}
