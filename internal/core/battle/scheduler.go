package battle

import (
	"sort"

	"github.com/davidmovas/pokespire/internal/core/damage"
	"github.com/davidmovas/pokespire/internal/core/status"
	"github.com/davidmovas/pokespire/internal/world/grid"
)

// paralysisSkipChance is the percent chance a paralyzed combatant loses its
// turn after consuming a stack.
const paralysisSkipChance = 25

// computeOrder resolves the round's initiative: live combatants by effective
// speed descending, ties broken player-side first, then by slot index.
func (b *Battle) computeOrder() {
	live := make([]*Combatant, 0, len(b.state.Combatants))
	for _, c := range b.state.Combatants {
		if c.Alive {
			live = append(live, c)
		}
	}
	sort.SliceStable(live, func(i, j int) bool {
		si, sj := live[i].EffectiveSpeed(), live[j].EffectiveSpeed()
		if si != sj {
			return si > sj
		}
		if live[i].Side != live[j].Side {
			return live[i].Side == grid.SidePlayer
		}
		return live[i].SlotIndex < live[j].SlotIndex
	})
	order := make([]string, len(live))
	for i, c := range live {
		order[i] = c.ID
	}
	b.state.Order = order
}

// beginRoundTurn starts the turn at the current index, skipping combatants
// that are dead or lose their turn, rolling into following rounds as
// needed. It stops as soon as a combatant holds the turn or the battle
// ends.
func (b *Battle) beginRoundTurn() {
	for b.state.Phase == PhaseOngoing {
		if b.state.CurrentIndex >= len(b.state.Order) {
			b.state.Round++
			b.computeOrder()
			b.state.CurrentIndex = 0
			b.logf(LogRound, "", "Round %d begins", b.state.Round)
			if len(b.state.Order) == 0 {
				return
			}
			continue
		}
		c, ok := b.state.Combatant(b.state.Order[b.state.CurrentIndex])
		if !ok || !c.Alive {
			b.state.CurrentIndex++
			continue
		}
		if b.beginTurn(c) {
			return
		}
		b.state.CurrentIndex++
	}
}

// advance hands the turn to the next combatant in initiative order.
func (b *Battle) advance() {
	b.state.CurrentIndex++
	b.beginRoundTurn()
}

// beginTurn runs the turn-entry sequence for a combatant: block reset, flag
// reset, energy gain, turn-start passives, damage-over-time, and the
// paralysis and sleep skip checks, then draws the hand up to size. It
// returns false when the combatant does not get to act.
func (b *Battle) beginTurn(c *Combatant) bool {
	b.logf(LogTurnStart, c.ID, "%s's turn", c.Name)

	c.Block = 0
	c.HasSwitchedThisTurn = false
	c.HasPlayedCardThisTurn = false
	c.IsFirstTurn = false

	gained := c.EnergyPerTurn
	if c.Energy+gained > c.EnergyCap {
		gained = c.EnergyCap - c.Energy
	}
	if gained > 0 {
		c.Energy += gained
		b.logf(LogEnergy, c.ID, "%s gains %d energy", c.Name, gained)
	}

	b.firePassives(hookTurnStart, c, nil, 0, nil)
	if b.state.Phase != PhaseOngoing {
		return false
	}

	b.tickStatuses(c)
	if b.state.Phase != PhaseOngoing || !c.Alive {
		return false
	}

	if c.Statuses.Has(status.Paralysis) {
		c.Statuses.Consume(status.Paralysis, 1)
		if b.rng.IntN(100) < paralysisSkipChance {
			b.logf(LogTurnSkipped, c.ID, "%s is paralyzed and cannot move", c.Name)
			return false
		}
	}
	if c.Statuses.Has(status.Sleep) {
		c.Statuses.Consume(status.Sleep, 1)
		b.logf(LogTurnSkipped, c.ID, "%s is fast asleep", c.Name)
		return false
	}

	want := c.HandSize - len(c.Piles.Hand)
	if want > 0 {
		drawn := c.Piles.DrawN(want, c.HandSize, b.rng)
		if len(drawn) > 0 {
			b.logf(LogDraw, c.ID, "%s draws %d cards", c.Name, len(drawn))
		}
	}
	return true
}

// tickStatuses applies start-of-turn damage-over-time in the order the
// statuses were applied. Block absorbs the ticks; KO is handled the same
// way as combat damage.
func (b *Battle) tickStatuses(c *Combatant) {
	for _, in := range c.Statuses.All() {
		if !c.Alive {
			return
		}
		switch in.Kind {
		case status.Burn:
			amount := (c.MaxHP / 16) * in.Stacks
			b.applyRawDamage(c, amount, "", "Burn deals %d damage to %s")
		case status.Poison:
			amount := 2 * in.Stacks
			b.applyRawDamage(c, amount, "", "Poison deals %d damage to %s")
		case status.Leech:
			amount := 2 * in.Stacks
			dealt := b.applyRawDamage(c, amount, in.SourceID, "Leech drains %d HP from %s")
			if source, ok := b.state.Combatant(in.SourceID); ok && source.Alive && dealt > 0 {
				b.heal(source, dealt)
			}
		}
	}
}

// checkOutcome evaluates victory and defeat after a mutation. The acting
// side's win condition is checked first, so a mutual knockout in one
// resolution step goes to the attacker.
func (b *Battle) checkOutcome(actingSide grid.Side) {
	if b.state.Phase != PhaseOngoing {
		return
	}
	playersAlive := len(b.state.LiveOn(grid.SidePlayer)) > 0
	enemiesAlive := len(b.state.LiveOn(grid.SideEnemy)) > 0

	if actingSide == grid.SidePlayer {
		switch {
		case !enemiesAlive:
			b.endBattle(PhaseVictory)
		case !playersAlive:
			b.endBattle(PhaseDefeat)
		}
		return
	}
	switch {
	case !playersAlive:
		b.endBattle(PhaseDefeat)
	case !enemiesAlive:
		b.endBattle(PhaseVictory)
	}
}

func (b *Battle) endBattle(phase Phase) {
	b.state.Phase = phase
	if phase == PhaseVictory {
		b.logf(LogBattleEnd, "", "Victory! Earned %d gold", b.state.GoldEarned)
		return
	}
	b.logf(LogBattleEnd, "", "Defeat...")
}

// Damage helpers shared by the interpreter, status ticks, and passives.

// applyRawDamage deals damage that skips the modifier pipeline but still
// honors block: damage-over-time ticks and passive retaliation. It returns
// the HP actually lost. The format takes (amount, name).
func (b *Battle) applyRawDamage(c *Combatant, amount int, sourceID, format string) int {
	if !c.Alive || amount <= 0 {
		return 0
	}
	absorbed, remaining := damage.AbsorbBlock(amount, c.Block)
	if absorbed > 0 {
		c.Block -= absorbed
		b.logf(LogBlock, c.ID, "%s's Block absorbs %d damage", c.Name, absorbed)
	}
	b.logf(LogDamage, c.ID, format, remaining, c.Name)
	if remaining <= 0 {
		return 0
	}
	c.CurrentHP -= remaining
	c.Stats.DamageTaken += remaining
	if source, ok := b.state.Combatant(sourceID); ok {
		source.Stats.DamageDealt += remaining
	}
	if c.CurrentHP <= 0 {
		c.CurrentHP = 0
		b.knockOut(c, sourceID)
	}
	return remaining
}

// heal restores HP up to the maximum and returns the amount restored. Dead
// combatants cannot be healed.
func (b *Battle) heal(c *Combatant, amount int) int {
	if !c.Alive || amount <= 0 {
		return 0
	}
	healed := amount
	if c.CurrentHP+healed > c.MaxHP {
		healed = c.MaxHP - c.CurrentHP
	}
	if healed <= 0 {
		return 0
	}
	c.CurrentHP += healed
	c.Stats.Healing += healed
	b.logf(LogHeal, c.ID, "%s recovers %d HP", c.Name, healed)
	return healed
}

// knockOut marks a combatant dead, pays its bounty, and fires the KO hooks.
// The id stays in the initiative order and is skipped for the rest of the
// round.
func (b *Battle) knockOut(c *Combatant, sourceID string) {
	c.Alive = false
	c.KnockedOut = true
	b.logf(LogKO, c.ID, "%s is knocked out!", c.Name)
	if c.Side == grid.SideEnemy {
		b.state.GoldEarned += c.Gold
	}
	b.firePassives(hookKO, c, b.combatantOrNil(sourceID), 0, nil)
	for _, ally := range b.state.LiveOn(c.Side) {
		b.firePassives(hookAllyKO, ally, c, 0, nil)
	}
	b.checkOutcome(b.actingSide())
}

// actingSide is the side whose turn is being resolved, used to attribute a
// mutual knockout to the attacker.
func (b *Battle) actingSide() grid.Side {
	if c := b.state.Current(); c != nil {
		return c.Side
	}
	return grid.SidePlayer
}

// revive brings a knocked-out combatant back at half HP. It re-enters the
// initiative order when the next round is resolved.
func (b *Battle) revive(c *Combatant) bool {
	if c.Alive {
		return false
	}
	c.Alive = true
	c.KnockedOut = false
	c.CurrentHP = c.MaxHP / 2
	if c.CurrentHP < 1 {
		c.CurrentHP = 1
	}
	c.Statuses = status.NewSet()
	c.Block = 0
	b.logf(LogRevive, c.ID, "%s is revived with %d HP", c.Name, c.CurrentHP)
	return true
}

func (b *Battle) combatantOrNil(id string) *Combatant {
	if id == "" {
		return nil
	}
	c, ok := b.state.Combatant(id)
	if !ok {
		return nil
	}
	return c
}

// applyStatus routes every status application through one place so logs and
// caps stay uniform.
func (b *Battle) applyStatus(target *Combatant, kind status.Kind, stacks int, sourceID string) {
	if !target.Alive || stacks <= 0 {
		return
	}
	total := target.Statuses.Apply(kind, stacks, sourceID)
	if total > 0 {
		b.logf(LogStatusApplied, target.ID, "%s gains %d %s (%d total)", target.Name, stacks, kind, total)
	}
}
