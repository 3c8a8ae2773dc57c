package damage

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidmovas/pokespire/internal/core/card"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestEffectiveness(t *testing.T) {
	t.Run("single defender type", func(t *testing.T) {
		num, den := Effectiveness(card.TypeFire, []card.Type{card.TypeGrass})
		require.Equal(t, 2, num/den)
	})

	t.Run("dual types multiply", func(t *testing.T) {
		// Fire vs grass/poison: 2x * 1x.
		num, den := Effectiveness(card.TypeFire, []card.Type{card.TypeGrass, card.TypePoison})
		require.Equal(t, 8*4, num)
		require.Equal(t, 16, den)
	})

	t.Run("immunity zeroes the product", func(t *testing.T) {
		num, _ := Effectiveness(card.TypeNormal, []card.Type{card.TypeGhost})
		require.Zero(t, num)
		require.Equal(t, ClassImmune, Classify(Effectiveness(card.TypeNormal, []card.Type{card.TypeGhost})))
	})

	t.Run("item is neutral everywhere", func(t *testing.T) {
		for _, defender := range card.Types {
			num, den := Effectiveness(card.TypeItem, []card.Type{defender})
			require.Equal(t, den, num, "item vs %s", defender)
		}
	})
}

func TestCompute(t *testing.T) {
	t.Run("stab and super effective", func(t *testing.T) {
		// floor(6 * 1.5 * 2) = 18.
		res := Compute(Input{
			Base:          6,
			MoveType:      card.TypeFire,
			AttackerTypes: []card.Type{card.TypeFire},
			DefenderTypes: []card.Type{card.TypeGrass},
		}, testRNG(1))
		require.Equal(t, 18, res.Damage)
		require.True(t, res.STAB)
		require.False(t, res.Missed)
	})

	t.Run("strength stacks multiply by five fourths", func(t *testing.T) {
		res := Compute(Input{
			Base:           8,
			MoveType:       card.TypeNormal,
			DefenderTypes:  []card.Type{card.TypeNormal},
			StrengthStacks: 2,
		}, testRNG(1))
		// floor(8 * 1.25 * 1.25) = 12.
		require.Equal(t, 12, res.Damage)
	})

	t.Run("enfeeble floors at a quarter", func(t *testing.T) {
		res := Compute(Input{
			Base:           20,
			MoveType:       card.TypeNormal,
			DefenderTypes:  []card.Type{card.TypeNormal},
			EnfeebleStacks: 8,
		}, testRNG(1))
		require.Equal(t, 5, res.Damage)
	})

	t.Run("set damage bypasses everything", func(t *testing.T) {
		res := Compute(Input{
			Base:          7,
			MoveType:      card.TypeNormal,
			SetDamage:     true,
			DefenderTypes: []card.Type{card.TypeGhost},
			EvasionStacks: 10,
		}, nil)
		require.Equal(t, 7, res.Damage)
		require.False(t, res.Missed)
	})

	t.Run("immune hit deals zero", func(t *testing.T) {
		res := Compute(Input{
			Base:          10,
			MoveType:      card.TypeNormal,
			DefenderTypes: []card.Type{card.TypeGhost},
		}, testRNG(1))
		require.Zero(t, res.Damage)
	})

	t.Run("evasion misses are deterministic per seed", func(t *testing.T) {
		in := Input{
			Base:          10,
			MoveType:      card.TypeNormal,
			DefenderTypes: []card.Type{card.TypeNormal},
			EvasionStacks: 2,
		}
		first := Compute(in, testRNG(42))
		second := Compute(in, testRNG(42))
		require.Equal(t, first, second)
	})

	t.Run("evasion caps at seventy five percent", func(t *testing.T) {
		require.Equal(t, 75, MissChance(10))
		require.Equal(t, 50, MissChance(2))
		require.Zero(t, MissChance(0))
	})
}

func TestAbsorbBlock(t *testing.T) {
	t.Run("block fully absorbs", func(t *testing.T) {
		absorbed, remaining := AbsorbBlock(7, 10)
		require.Equal(t, 7, absorbed)
		require.Zero(t, remaining)
	})

	t.Run("block partially absorbs", func(t *testing.T) {
		absorbed, remaining := AbsorbBlock(7, 3)
		require.Equal(t, 3, absorbed)
		require.Equal(t, 4, remaining)
	})
}

func TestProject(t *testing.T) {
	t.Run("mirrors compute without rng", func(t *testing.T) {
		p := Project(Input{
			Base:          6,
			MoveType:      card.TypeFire,
			AttackerTypes: []card.Type{card.TypeFire},
			DefenderTypes: []card.Type{card.TypeGrass},
			EvasionStacks: 1,
		})
		require.Equal(t, 18, p.Damage)
		require.Equal(t, 25, p.MissChance)
		require.True(t, p.STAB)
		require.Equal(t, ClassSuper, Classify(p.EffectivenessNum, p.EffectivenessDen))
	})
}

func TestPercentOf(t *testing.T) {
	require.Equal(t, 15, PercentOf(30, 50))
	require.Equal(t, 1, PercentOf(25, 6))
}
