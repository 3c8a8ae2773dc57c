package battle_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidmovas/pokespire/internal/core/battle"
	"github.com/davidmovas/pokespire/internal/core/status"
	"github.com/davidmovas/pokespire/internal/data"
	"github.com/davidmovas/pokespire/internal/enemy/ai"
	"github.com/davidmovas/pokespire/internal/world/grid"
)

// TestUniversalInvariants plays a full battle on the shipped catalogs with
// both sides driven by simple policies, asserting the engine invariants
// after every intent.
func TestUniversalInvariants(t *testing.T) {
	reg, err := data.Load()
	require.NoError(t, err)

	setup := battle.Setup{
		Seed: 2026,
		Players: []battle.Slot{
			{SpeciesID: "squirtle", Pos: grid.NewPosition(grid.RowFront, 0)},
			{SpeciesID: "charmander", Pos: grid.NewPosition(grid.RowFront, 1)},
			{SpeciesID: "bulbasaur", Pos: grid.NewPosition(grid.RowFront, 2)},
			{SpeciesID: "pikachu", Pos: grid.NewPosition(grid.RowBack, 1)},
		},
		Enemies: []battle.Slot{
			{SpeciesID: "pidgey", Pos: grid.NewPosition(grid.RowFront, 0)},
			{SpeciesID: "rattata", Pos: grid.NewPosition(grid.RowFront, 1)},
			{SpeciesID: "geodude", Pos: grid.NewPosition(grid.RowFront, 2)},
			{SpeciesID: "gastly", Pos: grid.NewPosition(grid.RowBack, 1)},
		},
	}
	b, err := battle.New(reg, setup)
	require.NoError(t, err)

	deckSizes := make(map[string]int)
	for _, c := range b.Snapshot().Combatants {
		deckSizes[c.ID] = c.Piles.Total()
	}

	controller := ai.NewScripted()
	for step := 0; step < 1000 && b.Phase() == battle.PhaseOngoing; step++ {
		current := b.Current()
		require.NotNil(t, current)

		if current.Side == grid.SideEnemy {
			require.NoError(t, controller.TakeTurn(b))
		} else {
			playFirstPlayable(t, b)
		}
		assertInvariants(t, b, deckSizes)
	}
	require.NotEqual(t, battle.PhaseOngoing, b.Phase(), "battle should finish")
}

// playFirstPlayable plays the first card with a legal target, or ends the
// turn when nothing is playable.
func playFirstPlayable(t *testing.T, b *battle.Battle) {
	t.Helper()
	current := b.Current()
	for i := range current.Piles.Hand {
		mv, err := b.CardInHand(i)
		if err != nil || mv.Cost > current.Energy {
			continue
		}
		ts, err := b.ValidTargets(i)
		if err != nil || len(ts.Candidates) == 0 {
			continue
		}
		targetID := ""
		if ts.RequiresSelection {
			targetID = ts.Candidates[0].ID
		}
		if b.PlayCard(i, targetID) == nil {
			return
		}
	}
	require.NoError(t, b.EndTurn())
}

func assertInvariants(t *testing.T, b *battle.Battle, deckSizes map[string]int) {
	t.Helper()
	snap := b.Snapshot()

	playersAlive, enemiesAlive := 0, 0
	cells := make(map[string]string)
	for _, c := range snap.Combatants {
		require.GreaterOrEqual(t, c.CurrentHP, 0, "%s hp", c.ID)
		require.LessOrEqual(t, c.CurrentHP, c.MaxHP, "%s hp", c.ID)
		require.Equal(t, c.CurrentHP > 0, c.Alive, "%s liveness", c.ID)

		require.GreaterOrEqual(t, c.Energy, 0, "%s energy", c.ID)
		require.LessOrEqual(t, c.Energy, c.EnergyCap, "%s energy", c.ID)
		require.LessOrEqual(t, len(c.Piles.Hand), c.HandSize, "%s hand size", c.ID)

		for _, in := range c.Statuses.All() {
			require.GreaterOrEqual(t, in.Stacks, 1, "%s status %s", c.ID, in.Kind)
			require.LessOrEqual(t, in.Stacks, status.MaxStacks, "%s status %s", c.ID, in.Kind)
		}

		echoes := 0
		for _, pile := range [][]string{c.Piles.Draw, c.Piles.Hand, c.Piles.Discard, c.Piles.Vanished} {
			for _, id := range pile {
				if strings.HasSuffix(id, data.ParentalSuffix) {
					echoes++
				}
			}
		}
		require.Equal(t, deckSizes[c.ID]+echoes, c.Piles.Total(), "%s pile conservation", c.ID)

		if c.Alive {
			key := string(c.Side) + "/" + string(c.Pos.Row) + "/" + string(rune('0'+c.Pos.Column))
			require.Empty(t, cells[key], "cell %s shared by %s and %s", key, cells[key], c.ID)
			cells[key] = c.ID
			if c.Side == grid.SidePlayer {
				playersAlive++
			} else {
				enemiesAlive++
			}
		}
	}

	switch snap.Phase {
	case battle.PhaseVictory:
		require.Zero(t, enemiesAlive)
	case battle.PhaseDefeat:
		require.Zero(t, playersAlive)
	default:
		require.Positive(t, playersAlive)
		require.Positive(t, enemiesAlive)
	}
}
