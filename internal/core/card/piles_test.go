package card

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestPiles(t *testing.T) {
	deck := []string{"a", "b", "c", "d", "e", "f"}

	t.Run("shuffle is deterministic for a seed", func(t *testing.T) {
		p1 := NewPiles(deck)
		p2 := NewPiles(deck)
		p1.Shuffle(testRNG(7))
		p2.Shuffle(testRNG(7))
		require.Equal(t, p1.Draw, p2.Draw)

		p3 := NewPiles(deck)
		p3.Shuffle(testRNG(8))
		require.NotEqual(t, p1.Draw, p3.Draw)
	})

	t.Run("draw respects hand size", func(t *testing.T) {
		p := NewPiles(deck)
		drawn := p.DrawN(10, 4, testRNG(1))
		require.Len(t, drawn, 4)
		require.Len(t, p.Hand, 4)
		require.Len(t, p.Draw, 2)
		require.Equal(t, len(deck), p.Total())
	})

	t.Run("empty draw reshuffles the discard pile", func(t *testing.T) {
		p := Piles{Discard: []string{"a", "b", "c"}}
		drawn := p.DrawN(2, 5, testRNG(3))
		require.Len(t, drawn, 2)
		require.Empty(t, p.Discard)
		require.Len(t, p.Draw, 1)
		require.Equal(t, 3, p.Total())
	})

	t.Run("drawing from nothing yields nothing", func(t *testing.T) {
		p := Piles{}
		require.Empty(t, p.DrawN(3, 5, testRNG(1)))
		require.Zero(t, p.Total())
	})

	t.Run("partial draw when cards run out", func(t *testing.T) {
		p := Piles{Draw: []string{"a"}, Discard: []string{"b"}}
		drawn := p.DrawN(5, 5, testRNG(1))
		require.Len(t, drawn, 2)
	})

	t.Run("remove from hand", func(t *testing.T) {
		p := Piles{Hand: []string{"a", "b", "c"}}
		id, ok := p.RemoveFromHand(1)
		require.True(t, ok)
		require.Equal(t, "b", id)
		require.Equal(t, []string{"a", "c"}, p.Hand)

		_, ok = p.RemoveFromHand(5)
		require.False(t, ok)
	})

	t.Run("discard random conserves cards", func(t *testing.T) {
		p := Piles{Hand: []string{"a", "b", "c", "d"}}
		discarded := p.DiscardRandom(2, testRNG(5))
		require.Len(t, discarded, 2)
		require.Len(t, p.Hand, 2)
		require.Len(t, p.Discard, 2)
		require.Equal(t, 4, p.Total())
	})

	t.Run("discard random never over-discards", func(t *testing.T) {
		p := Piles{Hand: []string{"a"}}
		require.Len(t, p.DiscardRandom(3, testRNG(5)), 1)
		require.Empty(t, p.Hand)
	})

	t.Run("add to hand honors the cap", func(t *testing.T) {
		p := Piles{Hand: []string{"a", "b"}}
		require.True(t, p.AddToHand("c", 3))
		require.False(t, p.AddToHand("d", 3))
		require.Equal(t, []string{"a", "b", "c"}, p.Hand)
	})

	t.Run("clone is independent", func(t *testing.T) {
		p := NewPiles(deck)
		clone := p.Clone()
		clone.Draw[0] = "zzz"
		require.NotEqual(t, p.Draw[0], "zzz")
	})
}

func TestEffectValidation(t *testing.T) {
	t.Run("unknown kind is rejected", func(t *testing.T) {
		require.Error(t, Effect{Kind: "teleport"}.Validate())
	})

	t.Run("multi hit needs at least one hit", func(t *testing.T) {
		require.Error(t, Effect{Kind: EffectMultiHit, Value: 2}.Validate())
		require.NoError(t, Effect{Kind: EffectMultiHit, Value: 2, Hits: 3}.Validate())
	})

	t.Run("apply status needs a known status", func(t *testing.T) {
		require.Error(t, Effect{Kind: EffectApplyStatus, Status: "frozen", Stacks: 1}.Validate())
	})

	t.Run("move range is checked", func(t *testing.T) {
		mv := Move{ID: "x", Name: "X", Range: "everywhere", Effects: []Effect{{Kind: EffectCleanse}}}
		require.Error(t, mv.Validate())
	})
}
