package card

import (
	"fmt"

	"github.com/davidmovas/pokespire/internal/core/status"
)

// Type is an elemental tag carried by moves and combatants.
type Type string

const (
	TypeNormal   Type = "normal"
	TypeFire     Type = "fire"
	TypeWater    Type = "water"
	TypeGrass    Type = "grass"
	TypeElectric Type = "electric"
	TypePoison   Type = "poison"
	TypeFlying   Type = "flying"
	TypePsychic  Type = "psychic"
	TypeDark     Type = "dark"
	TypeFighting Type = "fighting"
	TypeIce      Type = "ice"
	TypeBug      Type = "bug"
	TypeDragon   Type = "dragon"
	TypeGhost    Type = "ghost"
	TypeRock     Type = "rock"
	TypeGround   Type = "ground"
	TypeSteel    Type = "steel"
	TypeFairy    Type = "fairy"
	TypeItem     Type = "item"
)

// Types lists every elemental tag in chart order.
var Types = []Type{
	TypeNormal, TypeFire, TypeWater, TypeGrass, TypeElectric, TypePoison,
	TypeFlying, TypePsychic, TypeDark, TypeFighting, TypeIce, TypeBug,
	TypeDragon, TypeGhost, TypeRock, TypeGround, TypeSteel, TypeFairy,
	TypeItem,
}

// Range is the targeting shape of a move.
type Range string

const (
	RangeSelf         Range = "self"
	RangeAdjacentAlly Range = "adjacent_ally"
	RangeAnyAlly      Range = "any_ally"
	RangeFrontEnemy   Range = "front_enemy"
	RangeBackEnemy    Range = "back_enemy"
	RangeAnyEnemy     Range = "any_enemy"
	RangeColumn       Range = "column"
	RangeAnyRow       Range = "any_row"
	RangeFrontRow     Range = "front_row"
	RangeBackRow      Range = "back_row"
	RangeAllEnemies   Range = "all_enemies"
	RangeAllAllies    Range = "all_allies"
)

// Rarity categorizes how often a move shows up in drafts.
type Rarity string

const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
)

// EffectKind discriminates the Effect variants.
type EffectKind string

const (
	EffectDamage          EffectKind = "damage"
	EffectMultiHit        EffectKind = "multi_hit"
	EffectRecoil          EffectKind = "recoil"
	EffectHeal            EffectKind = "heal"
	EffectHealOnHit       EffectKind = "heal_on_hit"
	EffectSelfKO          EffectKind = "self_ko"
	EffectSetDamage       EffectKind = "set_damage"
	EffectPercentHP       EffectKind = "percent_hp"
	EffectBlock           EffectKind = "block"
	EffectApplyStatus     EffectKind = "apply_status"
	EffectApplyStatusSelf EffectKind = "apply_status_self"
	EffectCleanse         EffectKind = "cleanse"
	EffectDrawCard        EffectKind = "draw_card"
	EffectDiscardRandom   EffectKind = "discard_random"
	EffectGainEnergy      EffectKind = "gain_energy"
	EffectSwitchSelf      EffectKind = "switch_self"
	EffectPullTarget      EffectKind = "pull_target"
	EffectPushTarget      EffectKind = "push_target"
	EffectEvolve          EffectKind = "evolve"
	EffectParentalBond    EffectKind = "parental_bond"
	EffectAddPoolCard     EffectKind = "add_pool_card"
	EffectRevive          EffectKind = "revive"
)

// Effect is one step of a move's effect list. Kind selects the variant;
// the remaining fields are that variant's payload.
type Effect struct {
	Kind   EffectKind  `yaml:"kind" msgpack:"kind"`
	Value  int         `yaml:"value,omitempty" msgpack:"value"`
	Hits   int         `yaml:"hits,omitempty" msgpack:"hits"`
	Status status.Kind `yaml:"status,omitempty" msgpack:"status"`
	Stacks int         `yaml:"stacks,omitempty" msgpack:"stacks"`
	N      int         `yaml:"n,omitempty" msgpack:"n"`
	Pool   Type        `yaml:"pool,omitempty" msgpack:"pool"`
}

// DealsDamage reports whether this effect runs the damage pipeline
// against the move's targets.
func (e Effect) DealsDamage() bool {
	switch e.Kind {
	case EffectDamage, EffectMultiHit, EffectSetDamage, EffectPercentHP:
		return true
	default:
		return false
	}
}

// Validate checks the payload against the variant.
func (e Effect) Validate() error {
	switch e.Kind {
	case EffectDamage, EffectRecoil, EffectHeal, EffectHealOnHit,
		EffectSelfKO, EffectSetDamage, EffectPercentHP, EffectBlock:
		if e.Value < 0 {
			return fmt.Errorf("effect %s: negative value %d", e.Kind, e.Value)
		}
	case EffectMultiHit:
		if e.Value < 0 || e.Hits < 1 {
			return fmt.Errorf("effect %s: value %d hits %d", e.Kind, e.Value, e.Hits)
		}
	case EffectApplyStatus, EffectApplyStatusSelf:
		if !status.Known(e.Status) {
			return fmt.Errorf("effect %s: unknown status %q", e.Kind, e.Status)
		}
		if e.Stacks < 1 {
			return fmt.Errorf("effect %s: stacks %d", e.Kind, e.Stacks)
		}
	case EffectDrawCard, EffectDiscardRandom, EffectGainEnergy, EffectAddPoolCard:
		if e.N < 1 {
			return fmt.Errorf("effect %s: n %d", e.Kind, e.N)
		}
	case EffectCleanse, EffectSwitchSelf, EffectPullTarget, EffectPushTarget,
		EffectEvolve, EffectParentalBond, EffectRevive:
		// No payload.
	default:
		return fmt.Errorf("unknown effect kind %q", e.Kind)
	}
	return nil
}

// Move is an immutable move definition from the data registry.
type Move struct {
	ID      string   `yaml:"-" msgpack:"id"`
	Name    string   `yaml:"name" msgpack:"name"`
	Type    Type     `yaml:"type" msgpack:"type"`
	Cost    int      `yaml:"cost" msgpack:"cost"`
	Range   Range    `yaml:"range" msgpack:"range"`
	Vanish  bool     `yaml:"vanish,omitempty" msgpack:"vanish"`
	Contact bool     `yaml:"contact,omitempty" msgpack:"contact"`
	Effects []Effect `yaml:"effects" msgpack:"effects"`
	Rarity  Rarity   `yaml:"rarity,omitempty" msgpack:"rarity"`
	Pools   []Type   `yaml:"pools,omitempty" msgpack:"pools"`
}

// DealsDamage reports whether any effect of the move runs the damage pipeline.
func (m Move) DealsDamage() bool {
	for _, e := range m.Effects {
		if e.DealsDamage() {
			return true
		}
	}
	return false
}

// Validate checks the definition for catalog-load errors.
func (m Move) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("move %s: empty name", m.ID)
	}
	if m.Cost < 0 {
		return fmt.Errorf("move %s: negative cost", m.ID)
	}
	switch m.Range {
	case RangeSelf, RangeAdjacentAlly, RangeAnyAlly, RangeFrontEnemy,
		RangeBackEnemy, RangeAnyEnemy, RangeColumn, RangeAnyRow,
		RangeFrontRow, RangeBackRow, RangeAllEnemies, RangeAllAllies:
	default:
		return fmt.Errorf("move %s: unknown range %q", m.ID, m.Range)
	}
	if len(m.Effects) == 0 {
		return fmt.Errorf("move %s: no effects", m.ID)
	}
	for i, e := range m.Effects {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("move %s: effect %d: %w", m.ID, i, err)
		}
	}
	return nil
}
