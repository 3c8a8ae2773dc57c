package ai

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidmovas/pokespire/internal/core/battle"
	"github.com/davidmovas/pokespire/internal/core/status"
	"github.com/davidmovas/pokespire/internal/data"
	"github.com/davidmovas/pokespire/internal/world/grid"
)

func newBattle(t *testing.T, seed uint64) *battle.Battle {
	t.Helper()
	reg, err := data.Load()
	require.NoError(t, err)

	b, err := battle.New(reg, battle.Setup{
		Seed: seed,
		Players: []battle.Slot{
			{SpeciesID: "bulbasaur", Pos: grid.NewPosition(grid.RowFront, 0), HPOverride: 5},
			{SpeciesID: "squirtle", Pos: grid.NewPosition(grid.RowFront, 1)},
		},
		Enemies: []battle.Slot{
			{SpeciesID: "rattata", Pos: grid.NewPosition(grid.RowFront, 1)},
		},
	})
	require.NoError(t, err)
	// Rattata is the fastest combatant on the board.
	require.Equal(t, grid.SideEnemy, b.Current().Side)
	return b
}

func TestScriptedTakeTurn(t *testing.T) {
	t.Run("prefers the weakest target and ends its turn", func(t *testing.T) {
		b := newBattle(t, 5)
		require.NoError(t, NewScripted().TakeTurn(b))

		bulba, ok := b.Combatant("player-0-bulbasaur")
		require.True(t, ok)
		require.Less(t, bulba.CurrentHP, 5)

		if b.Phase() == battle.PhaseOngoing {
			require.Equal(t, grid.SidePlayer, b.Current().Side)
		}
	})

	t.Run("taunt is a hard preference", func(t *testing.T) {
		b := newBattle(t, 5)
		squirtle, ok := b.Combatant("player-1-squirtle")
		require.True(t, ok)
		squirtle.Statuses.Apply(status.Taunt, 2, "")

		require.NoError(t, NewScripted().TakeTurn(b))
		require.Less(t, squirtle.CurrentHP, squirtle.MaxHP)

		bulba, ok := b.Combatant("player-0-bulbasaur")
		require.True(t, ok)
		// Untouched by Rattata; Overgrow heals 1 HP when Bulbasaur's turn starts.
		require.Equal(t, 6, bulba.CurrentHP)
	})

	t.Run("is deterministic for a seed", func(t *testing.T) {
		run := func() []battle.Intent {
			b := newBattle(t, 11)
			require.NoError(t, NewScripted().TakeTurn(b))
			return b.Journal()
		}
		require.Equal(t, run(), run())
	})

	t.Run("does nothing on a player turn", func(t *testing.T) {
		b := newBattle(t, 5)
		require.NoError(t, NewScripted().TakeTurn(b)) // enemy turn passes
		if b.Phase() != battle.PhaseOngoing {
			t.Skip("battle ended on the enemy turn")
		}
		journalBefore := len(b.Journal())
		require.NoError(t, NewScripted().TakeTurn(b))
		require.Len(t, b.Journal(), journalBefore)
	})
}
