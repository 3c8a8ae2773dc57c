package battle

import (
	"strings"

	"github.com/davidmovas/pokespire/internal/core/card"
	"github.com/davidmovas/pokespire/internal/data"
	"github.com/davidmovas/pokespire/internal/world/grid"
)

// ValidTargets resolves the legal targets of the acting combatant's card at
// a hand index. A move carrying a revive effect targets knocked-out allies
// instead of the usual range resolution.
func (b *Battle) ValidTargets(cardIndex int) (grid.TargetSet, error) {
	c := b.state.Current()
	if c == nil {
		return grid.TargetSet{}, ErrNotYourTurn
	}
	mv, err := b.CardInHand(cardIndex)
	if err != nil {
		return grid.TargetSet{}, err
	}
	if hasEffect(mv, card.EffectRevive) {
		var fallen []grid.Occupant
		for _, ally := range b.state.Combatants {
			if ally.Side == c.Side && !ally.Alive {
				fallen = append(fallen, ally.Occupant())
			}
		}
		return grid.TargetSet{Candidates: fallen, RequiresSelection: len(fallen) > 1}, nil
	}
	return grid.ValidTargets(b.state.board(), c.Occupant(), mv.Range), nil
}

// ValidSwitches lists the cells the acting combatant may switch into.
func (b *Battle) ValidSwitches() []grid.Position {
	c := b.state.Current()
	if c == nil {
		return nil
	}
	return grid.ValidSwitchTargets(b.state.board(), c.Occupant())
}

// PlayCard plays the acting combatant's hand card at cardIndex. targetID
// selects the target when the card's range requires one; for column and row
// shapes it fixes the affected column or row. Validation failures leave the
// state untouched.
func (b *Battle) PlayCard(cardIndex int, targetID string) error {
	if b.state.Phase != PhaseOngoing {
		return ErrBattleEnded
	}
	c := b.state.Current()
	if c == nil {
		return ErrNotYourTurn
	}
	mv, err := b.CardInHand(cardIndex)
	if err != nil {
		return err
	}
	if c.Energy < mv.Cost {
		return ErrInsufficientEnergy
	}

	ts, err := b.ValidTargets(cardIndex)
	if err != nil {
		return err
	}
	if len(ts.Candidates) == 0 {
		return ErrNoValidTargets
	}

	var chosen grid.Occupant
	selected := false
	if targetID != "" {
		for _, cand := range ts.Candidates {
			if cand.ID == targetID {
				chosen = cand
				selected = true
				break
			}
		}
		if !selected {
			return ErrInvalidTarget
		}
	} else {
		if ts.RequiresSelection {
			return ErrInvalidTarget
		}
		if len(ts.Candidates) == 1 {
			chosen = ts.Candidates[0]
			selected = true
		}
	}

	var affectedIDs []string
	switch {
	case ts.Representative:
		for _, o := range grid.Affected(b.state.board(), c.Occupant(), mv.Range, chosen) {
			affectedIDs = append(affectedIDs, o.ID)
		}
	case selected && !isFixedAoE(mv.Range):
		affectedIDs = []string{chosen.ID}
	default:
		for _, o := range ts.Candidates {
			affectedIDs = append(affectedIDs, o.ID)
		}
	}

	targets := make([]*Combatant, 0, len(affectedIDs))
	for _, id := range affectedIDs {
		t, ok := b.state.Combatant(id)
		if !ok {
			return ErrInvalidTarget
		}
		targets = append(targets, t)
	}

	// Validation is done; everything below mutates.
	c.Energy -= mv.Cost
	playedID, _ := c.Piles.RemoveFromHand(cardIndex)
	if mv.Vanish {
		c.Piles.ToVanished(playedID)
	} else {
		c.Piles.ToDiscard(playedID)
	}
	c.HasPlayedCardThisTurn = true
	b.logf(LogCardPlayed, c.ID, "%s plays %s", c.Name, mv.Name)

	b.firePassives(hookCardPlayed, c, nil, 0, &mv)
	b.executeEffects(c, mv, targets)

	if c.ParentalBond && mv.DealsDamage() && !strings.HasSuffix(playedID, data.ParentalSuffix) {
		c.ParentalBond = false
		echoID := playedID + data.ParentalSuffix
		if c.Alive && c.Piles.AddToHand(echoID, c.HandSize) {
			b.logf(LogInfo, c.ID, "%s's second strike readies %s", c.Name, mv.Name)
		}
	}

	b.journal = append(b.journal, Intent{Kind: IntentPlayCard, CardIndex: cardIndex, TargetID: targetID})
	b.checkOutcome(c.Side)
	return nil
}

// SwitchPosition moves the acting combatant to an adjacent cell on its own
// side, swapping with the ally holding it. One switch per turn, for
// SwitchCost energy.
func (b *Battle) SwitchPosition(dest grid.Position) error {
	if b.state.Phase != PhaseOngoing {
		return ErrBattleEnded
	}
	c := b.state.Current()
	if c == nil {
		return ErrNotYourTurn
	}
	if c.HasSwitchedThisTurn {
		return ErrIllegalSwitch
	}
	if c.Energy < SwitchCost {
		return ErrInsufficientEnergy
	}
	legal := false
	for _, pos := range grid.ValidSwitchTargets(b.state.board(), c.Occupant()) {
		if pos.Equals(dest) {
			legal = true
			break
		}
	}
	if !legal {
		return ErrIllegalSwitch
	}

	c.Energy -= SwitchCost
	c.HasSwitchedThisTurn = true
	if occ, ok := b.state.board().At(c.Side, dest); ok {
		ally, _ := b.state.Combatant(occ.ID)
		ally.Pos = c.Pos
		c.Pos = dest
		b.logf(LogSwitch, c.ID, "%s switches places with %s", c.Name, ally.Name)
	} else {
		c.Pos = dest
		b.logf(LogSwitch, c.ID, "%s moves to the %s row, column %d", c.Name, dest.Row, dest.Column)
	}

	b.journal = append(b.journal, Intent{Kind: IntentSwitch, Pos: dest})
	return nil
}

// EndTurn finishes the acting combatant's turn: end-of-turn passives fire,
// unplayed echo cards vanish, and the scheduler hands the turn on.
func (b *Battle) EndTurn() error {
	if b.state.Phase != PhaseOngoing {
		return ErrBattleEnded
	}
	c := b.state.Current()
	if c == nil {
		return ErrNotYourTurn
	}

	b.firePassives(hookTurnEnd, c, nil, 0, nil)

	for i := 0; i < len(c.Piles.Hand); {
		if strings.HasSuffix(c.Piles.Hand[i], data.ParentalSuffix) {
			id, _ := c.Piles.RemoveFromHand(i)
			c.Piles.ToVanished(id)
			b.logf(LogInfo, c.ID, "%s's echo fades", c.Name)
			continue
		}
		i++
	}

	b.logf(LogTurnEnd, c.ID, "%s ends its turn", c.Name)
	b.journal = append(b.journal, Intent{Kind: IntentEndTurn})
	b.advance()
	return nil
}

func hasEffect(mv card.Move, kind card.EffectKind) bool {
	for _, e := range mv.Effects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func isFixedAoE(r card.Range) bool {
	switch r {
	case card.RangeAllAllies, card.RangeAllEnemies, card.RangeFrontRow, card.RangeBackRow:
		return true
	}
	return false
}
