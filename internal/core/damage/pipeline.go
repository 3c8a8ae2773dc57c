// Package damage computes the hit pipeline: STAB, the type chart, strength
// and enfeeble modifiers, evasion rolls, and block absorption. Everything is
// integer math over exact rationals so replays never drift.
package damage

import (
	"math/rand/v2"

	"github.com/davidmovas/pokespire/internal/core/card"
)

// Evasion grants 25% miss chance per stack, capped at 75%.
const (
	evasionPerStack = 25
	evasionCap      = 75
)

// Enfeeble subtracts 25% per stack; the attacker never drops below 25% of
// base output.
const (
	enfeeblePerStack = 25
	enfeebleFloor    = 25
)

// Input carries everything one pipeline pass needs.
type Input struct {
	// Base is the raw damage value from the card effect.
	Base int

	// MoveType is the elemental tag of the card being played.
	MoveType card.Type

	// SetDamage bypasses every modifier; block still absorbs.
	SetDamage bool

	AttackerTypes  []card.Type
	DefenderTypes  []card.Type
	StrengthStacks int
	EnfeebleStacks int
	EvasionStacks  int
}

// Result is the outcome of one pipeline pass, before block absorption.
type Result struct {
	// Damage is the post-modifier value, floored to an integer.
	Damage int

	// Missed is true when the defender's evasion roll succeeded; no damage
	// is dealt and no on-hit effects fire.
	Missed bool

	STAB bool

	// EffectivenessNum/Den is the exact type-chart multiplier applied.
	EffectivenessNum int
	EffectivenessDen int
}

// Compute runs one pass of the pipeline. The RNG is consumed only for the
// evasion roll, and only when the defender has evasion stacks and the hit is
// not set damage.
func Compute(in Input, rng *rand.Rand) Result {
	if in.SetDamage {
		return Result{Damage: in.Base, EffectivenessNum: 1, EffectivenessDen: 1}
	}

	res := Result{}
	res.EffectivenessNum, res.EffectivenessDen = Effectiveness(in.MoveType, in.DefenderTypes)
	res.STAB = stab(in.MoveType, in.AttackerTypes)

	num := int64(in.Base)
	den := int64(1)
	if res.STAB {
		num *= 3
		den *= 2
	}
	num *= int64(res.EffectivenessNum)
	den *= int64(res.EffectivenessDen)
	for i := 0; i < in.StrengthStacks; i++ {
		num *= 5
		den *= 4
	}
	num *= int64(enfeeblePercent(in.EnfeebleStacks))
	den *= 100

	res.Damage = int(num / den)

	if chance := MissChance(in.EvasionStacks); chance > 0 {
		if rng.IntN(100) < chance {
			res.Missed = true
			res.Damage = 0
		}
	}
	return res
}

// Projection is the previewed outcome of a pipeline pass. The projected
// damage assumes the hit lands; MissChance reports the odds it does not.
type Projection struct {
	Damage           int
	MissChance       int
	STAB             bool
	EffectivenessNum int
	EffectivenessDen int
}

// Project mirrors Compute without consuming the RNG, for damage previews.
func Project(in Input) Projection {
	if in.SetDamage {
		return Projection{Damage: in.Base, EffectivenessNum: 1, EffectivenessDen: 1}
	}
	// Compute only touches the RNG for the evasion roll; zero the stacks so
	// no roll happens and report the chance separately.
	clean := in
	clean.EvasionStacks = 0
	res := Compute(clean, nil)
	return Projection{
		Damage:           res.Damage,
		MissChance:       MissChance(in.EvasionStacks),
		STAB:             res.STAB,
		EffectivenessNum: res.EffectivenessNum,
		EffectivenessDen: res.EffectivenessDen,
	}
}

// MissChance returns the percent chance an attack misses a defender with the
// given evasion stacks.
func MissChance(stacks int) int {
	chance := evasionPerStack * stacks
	if chance > evasionCap {
		chance = evasionCap
	}
	if chance < 0 {
		chance = 0
	}
	return chance
}

// AbsorbBlock spends block against incoming damage and returns the amount
// absorbed and the damage that gets through.
func AbsorbBlock(dmg, block int) (absorbed, remaining int) {
	absorbed = dmg
	if block < absorbed {
		absorbed = block
	}
	return absorbed, dmg - absorbed
}

// PercentOf returns floor(maxHP * pct / 100), the raw value of percent-HP
// effects.
func PercentOf(maxHP, pct int) int {
	return maxHP * pct / 100
}

func stab(moveType card.Type, attackerTypes []card.Type) bool {
	for _, t := range attackerTypes {
		if t == moveType {
			return true
		}
	}
	return false
}

func enfeeblePercent(stacks int) int {
	pct := 100 - enfeeblePerStack*stacks
	if pct < enfeebleFloor {
		pct = enfeebleFloor
	}
	return pct
}
