package damage

import (
	"github.com/davidmovas/pokespire/internal/core/card"
)

// Chart multipliers are stored scaled by 4 so halves and doubles stay exact
// integers: 0 = immune, 2 = not very effective, 4 = neutral, 8 = super
// effective.
const (
	xImmune  = 0
	xHalf    = 2
	xNeutral = 4
	xSuper   = 8
)

// chart maps attacking type to the non-neutral defending matchups. Absent
// entries are neutral. The item tag is neutral against everything.
var chart = map[card.Type]map[card.Type]int{
	card.TypeNormal: {
		card.TypeRock: xHalf, card.TypeGhost: xImmune, card.TypeSteel: xHalf,
	},
	card.TypeFire: {
		card.TypeFire: xHalf, card.TypeWater: xHalf, card.TypeGrass: xSuper,
		card.TypeIce: xSuper, card.TypeBug: xSuper, card.TypeRock: xHalf,
		card.TypeDragon: xHalf, card.TypeSteel: xSuper,
	},
	card.TypeWater: {
		card.TypeFire: xSuper, card.TypeWater: xHalf, card.TypeGrass: xHalf,
		card.TypeGround: xSuper, card.TypeRock: xSuper, card.TypeDragon: xHalf,
	},
	card.TypeGrass: {
		card.TypeFire: xHalf, card.TypeWater: xSuper, card.TypeGrass: xHalf,
		card.TypePoison: xHalf, card.TypeGround: xSuper, card.TypeFlying: xHalf,
		card.TypeBug: xHalf, card.TypeRock: xSuper, card.TypeDragon: xHalf,
		card.TypeSteel: xHalf,
	},
	card.TypeElectric: {
		card.TypeWater: xSuper, card.TypeGrass: xHalf, card.TypeElectric: xHalf,
		card.TypeGround: xImmune, card.TypeFlying: xSuper, card.TypeDragon: xHalf,
	},
	card.TypePoison: {
		card.TypeGrass: xSuper, card.TypePoison: xHalf, card.TypeGround: xHalf,
		card.TypeRock: xHalf, card.TypeGhost: xHalf, card.TypeSteel: xImmune,
		card.TypeFairy: xSuper,
	},
	card.TypeFlying: {
		card.TypeGrass: xSuper, card.TypeElectric: xHalf, card.TypeFighting: xSuper,
		card.TypeBug: xSuper, card.TypeRock: xHalf, card.TypeSteel: xHalf,
	},
	card.TypePsychic: {
		card.TypeFighting: xSuper, card.TypePoison: xSuper, card.TypePsychic: xHalf,
		card.TypeDark: xImmune, card.TypeSteel: xHalf,
	},
	card.TypeDark: {
		card.TypeFighting: xHalf, card.TypePsychic: xSuper, card.TypeGhost: xSuper,
		card.TypeDark: xHalf, card.TypeFairy: xHalf,
	},
	card.TypeFighting: {
		card.TypeNormal: xSuper, card.TypeIce: xSuper, card.TypePoison: xHalf,
		card.TypeFlying: xHalf, card.TypePsychic: xHalf, card.TypeBug: xHalf,
		card.TypeRock: xSuper, card.TypeGhost: xImmune, card.TypeDark: xSuper,
		card.TypeSteel: xSuper, card.TypeFairy: xHalf,
	},
	card.TypeIce: {
		card.TypeFire: xHalf, card.TypeWater: xHalf, card.TypeGrass: xSuper,
		card.TypeIce: xHalf, card.TypeGround: xSuper, card.TypeFlying: xSuper,
		card.TypeDragon: xSuper, card.TypeSteel: xHalf,
	},
	card.TypeBug: {
		card.TypeFire: xHalf, card.TypeGrass: xSuper, card.TypeFighting: xHalf,
		card.TypePoison: xHalf, card.TypeFlying: xHalf, card.TypePsychic: xSuper,
		card.TypeGhost: xHalf, card.TypeDark: xSuper, card.TypeSteel: xHalf,
		card.TypeFairy: xHalf,
	},
	card.TypeDragon: {
		card.TypeDragon: xSuper, card.TypeSteel: xHalf, card.TypeFairy: xImmune,
	},
	card.TypeGhost: {
		card.TypeNormal: xImmune, card.TypePsychic: xSuper, card.TypeGhost: xSuper,
		card.TypeDark: xHalf,
	},
	card.TypeRock: {
		card.TypeFire: xSuper, card.TypeIce: xSuper, card.TypeFighting: xHalf,
		card.TypeFlying: xSuper, card.TypeBug: xSuper, card.TypeGround: xHalf,
		card.TypeSteel: xHalf,
	},
	card.TypeGround: {
		card.TypeFire: xSuper, card.TypeElectric: xSuper, card.TypeGrass: xHalf,
		card.TypePoison: xSuper, card.TypeFlying: xImmune, card.TypeBug: xHalf,
		card.TypeRock: xSuper, card.TypeSteel: xSuper,
	},
	card.TypeSteel: {
		card.TypeFire: xHalf, card.TypeWater: xHalf, card.TypeElectric: xHalf,
		card.TypeIce: xSuper, card.TypeRock: xSuper, card.TypeSteel: xHalf,
		card.TypeFairy: xSuper,
	},
	card.TypeFairy: {
		card.TypeFire: xHalf, card.TypeFighting: xSuper, card.TypePoison: xHalf,
		card.TypeDragon: xSuper, card.TypeDark: xSuper, card.TypeSteel: xHalf,
	},
	card.TypeItem: {},
}

// Against returns the scaled multiplier of an attacking type against one
// defending type: 0, 2, 4, or 8.
func Against(attack, defend card.Type) int {
	if m, ok := chart[attack]; ok {
		if v, ok := m[defend]; ok {
			return v
		}
	}
	return xNeutral
}

// Effectiveness returns the combined multiplier of an attacking type against
// a defender's type list as an exact rational num/den. A defender with no
// types is neutral.
func Effectiveness(attack card.Type, defenders []card.Type) (num, den int) {
	num, den = 1, 1
	for _, d := range defenders {
		num *= Against(attack, d)
		den *= xNeutral
	}
	return num, den
}

// EffectClass buckets a matchup for logs and previews.
type EffectClass string

const (
	ClassImmune       EffectClass = "immune"
	ClassNotEffective EffectClass = "not_very_effective"
	ClassNeutral      EffectClass = "neutral"
	ClassSuper        EffectClass = "super_effective"
)

// Classify buckets an effectiveness rational.
func Classify(num, den int) EffectClass {
	switch {
	case num == 0:
		return ClassImmune
	case num < den:
		return ClassNotEffective
	case num > den:
		return ClassSuper
	default:
		return ClassNeutral
	}
}
