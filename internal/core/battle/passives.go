package battle

import (
	"github.com/davidmovas/pokespire/internal/core/card"
	"github.com/davidmovas/pokespire/internal/core/status"
)

// hook names an event point on the passive bus.
type hook string

const (
	hookTurnStart   hook = "on_turn_start"
	hookTurnEnd     hook = "on_turn_end"
	hookDamageDealt hook = "on_damage_dealt"
	hookDamageTaken hook = "on_damage_taken"
	hookKO          hook = "on_ko"
	hookCardPlayed  hook = "on_card_played"
	hookAllyKO      hook = "on_ally_ko"
	hookEnterBattle hook = "on_enter_battle"
)

// maxPassiveDepth bounds recursive passive triggers within one event
// cascade so retaliation loops terminate.
const maxPassiveDepth = 4

// passiveEvent is what a handler sees when its hook fires. Self owns the
// passive; Other is the counterpart when the hook has one (damage source or
// target, the fallen ally, the killer).
type passiveEvent struct {
	Hook   hook
	Self   *Combatant
	Other  *Combatant
	Amount int
	Move   *card.Move
}

type passiveHandler func(b *Battle, ev passiveEvent)

// passiveHandlers is the static handler table. Every passive id the data
// catalog ships must have an entry; battle setup rejects combatants whose
// passive has none.
var passiveHandlers map[string]passiveHandler

func init() {
	passiveHandlers = map[string]passiveHandler{
		"blaze": func(b *Battle, ev passiveEvent) {
			if ev.Hook != hookTurnStart {
				return
			}
			if ev.Self.CurrentHP*2 <= ev.Self.MaxHP {
				b.applyStatus(ev.Self, status.Strength, 1, ev.Self.ID)
			}
		},
		"torrent": func(b *Battle, ev passiveEvent) {
			if ev.Hook != hookDamageTaken || ev.Amount <= 0 {
				return
			}
			ev.Self.Block += 2
			b.logf(LogBlock, ev.Self.ID, "%s gains 2 Block", ev.Self.Name)
		},
		"overgrow": func(b *Battle, ev passiveEvent) {
			if ev.Hook != hookTurnStart {
				return
			}
			if ev.Self.CurrentHP*2 <= ev.Self.MaxHP {
				b.heal(ev.Self, 1)
			}
		},
		"static": func(b *Battle, ev passiveEvent) {
			if !contactTaken(ev) {
				return
			}
			b.applyStatus(ev.Other, status.Paralysis, 1, ev.Self.ID)
		},
		"rough-skin": func(b *Battle, ev passiveEvent) {
			if !contactTaken(ev) {
				return
			}
			b.applyRawDamage(ev.Other, 2, ev.Self.ID, "Rough Skin deals %d damage to %s")
		},
		"intimidate": func(b *Battle, ev passiveEvent) {
			if ev.Hook != hookEnterBattle {
				return
			}
			for _, foe := range b.state.LiveOn(ev.Self.Side.Opposite()) {
				b.applyStatus(foe, status.Enfeeble, 1, ev.Self.ID)
			}
		},
		"speed-boost": func(b *Battle, ev passiveEvent) {
			if ev.Hook != hookTurnEnd {
				return
			}
			b.applyStatus(ev.Self, status.Haste, 1, ev.Self.ID)
		},
		"pickup": func(b *Battle, ev passiveEvent) {
			if ev.Hook != hookTurnStart {
				return
			}
			if b.rng.IntN(100) < 25 && ev.Self.Energy < ev.Self.EnergyCap {
				ev.Self.Energy++
				b.logf(LogEnergy, ev.Self.ID, "%s picks up 1 energy", ev.Self.Name)
			}
		},
		"guts": func(b *Battle, ev passiveEvent) {
			if ev.Hook != hookTurnStart {
				return
			}
			if ev.Self.Statuses.HasNegative() {
				b.applyStatus(ev.Self, status.Strength, 1, ev.Self.ID)
			}
		},
		"shed-skin": func(b *Battle, ev passiveEvent) {
			if ev.Hook != hookTurnEnd {
				return
			}
			if b.rng.IntN(100) >= 33 {
				return
			}
			for _, in := range ev.Self.Statuses.All() {
				if status.Negative(in.Kind) {
					ev.Self.Statuses.Remove(in.Kind)
					b.logf(LogStatusRemoved, ev.Self.ID, "%s sheds its %s", ev.Self.Name, in.Kind)
					return
				}
			}
		},
		// sturdy is consulted inside the hit pipeline, before lethal damage is
		// committed; the bus entry only keeps the id registered.
		"sturdy": func(b *Battle, ev passiveEvent) {},
		"aftermath": func(b *Battle, ev passiveEvent) {
			if ev.Hook != hookKO || ev.Other == nil {
				return
			}
			b.applyRawDamage(ev.Other, 4, ev.Self.ID, "Aftermath deals %d damage to %s")
		},
		"battle-armor": func(b *Battle, ev passiveEvent) {
			if ev.Hook != hookTurnStart {
				return
			}
			ev.Self.Block += 2
			b.logf(LogBlock, ev.Self.ID, "%s gains 2 Block", ev.Self.Name)
		},
		"flame-body": func(b *Battle, ev passiveEvent) {
			if !contactTaken(ev) {
				return
			}
			b.applyStatus(ev.Other, status.Burn, 1, ev.Self.ID)
		},
		"poison-point": func(b *Battle, ev passiveEvent) {
			if !contactTaken(ev) {
				return
			}
			b.applyStatus(ev.Other, status.Poison, 1, ev.Self.ID)
		},
		"cute-charm": func(b *Battle, ev passiveEvent) {
			if !contactTaken(ev) {
				return
			}
			b.applyStatus(ev.Other, status.Enfeeble, 1, ev.Self.ID)
		},
		"anger-point": func(b *Battle, ev passiveEvent) {
			if ev.Hook != hookDamageTaken || ev.Amount < 5 {
				return
			}
			b.applyStatus(ev.Self, status.Strength, 1, ev.Self.ID)
		},
		"healer": func(b *Battle, ev passiveEvent) {
			if ev.Hook != hookTurnEnd {
				return
			}
			for _, ally := range b.state.LiveOn(ev.Self.Side) {
				if ally.ID != ev.Self.ID && ally.Pos.IsAdjacent(ev.Self.Pos) {
					b.heal(ally, 1)
				}
			}
		},
		"moxie": func(b *Battle, ev passiveEvent) {
			if ev.Hook != hookDamageDealt || ev.Other == nil || ev.Other.Alive {
				return
			}
			b.applyStatus(ev.Self, status.Strength, 1, ev.Self.ID)
		},
		"vengeance": func(b *Battle, ev passiveEvent) {
			if ev.Hook != hookAllyKO {
				return
			}
			b.applyStatus(ev.Self, status.Strength, 2, ev.Self.ID)
		},
		"regenerator": func(b *Battle, ev passiveEvent) {
			if ev.Hook != hookTurnEnd {
				return
			}
			b.heal(ev.Self, 2)
		},
	}
}

func contactTaken(ev passiveEvent) bool {
	return ev.Hook == hookDamageTaken &&
		ev.Amount > 0 &&
		ev.Other != nil && ev.Other.Alive &&
		ev.Move != nil && ev.Move.Contact
}

// firePassives runs the handlers of self's passives for one hook,
// synchronously and in registration order. A cascade deeper than
// maxPassiveDepth is dropped.
func (b *Battle) firePassives(h hook, self, other *Combatant, amount int, mv *card.Move) {
	if self == nil || b.depth >= maxPassiveDepth {
		return
	}
	b.depth++
	defer func() { b.depth-- }()

	ev := passiveEvent{Hook: h, Self: self, Other: other, Amount: amount, Move: mv}
	for _, id := range self.Passives {
		if handler, ok := passiveHandlers[id]; ok {
			handler(b, ev)
		}
	}
}
