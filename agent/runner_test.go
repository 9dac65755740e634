package agent

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mazerunner/game"
)

func testRules(size int) game.Rules {
	r := game.NewStandardRules()
	r.Size = size
	r.ProtectedRadius = 0
	return r
}

func TestRunnerDecideMove(t *testing.T) {
	// (0,0) sealed by (1,0) and (0,1); (0,1) is backed by (1,1) and (0,2), so only (1,0) opens a path.
	sealed := game.NewWallSet(
		game.Position{X: 1, Y: 0}, game.Position{X: 0, Y: 1},
		game.Position{X: 1, Y: 1}, game.Position{X: 0, Y: 2},
	)

	t.Run("wall break reopens the path", func(t *testing.T) {
		r := NewRunner(testRules(6))
		r.UpdateState(sealed, game.Position{}, 4)

		move := r.DecideMove()

		require.Equal(t, game.WithRunnerSkill(game.Position{X: 1, Y: 0}, game.WallBreak), move,
			"Runner should break the only wall that reopens a path")
		require.True(t, move.UsedSkill)
	})

	t.Run("teleport when wall break is locked", func(t *testing.T) {
		r := NewRunner(testRules(6))
		r.UpdateState(sealed, game.Position{}, 3)

		move := r.DecideMove()

		require.Equal(t, game.WithRunnerSkill(game.Position{X: 2, Y: 2}, game.Teleport), move,
			"Runner should teleport to the reachable tile with the shortest path")
	})

	t.Run("stall when nothing helps", func(t *testing.T) {
		goalSealed := game.NewWallSet(game.Position{X: 3, Y: 4}, game.Position{X: 4, Y: 3})
		r := NewRunner(testRules(5))
		r.UpdateState(goalSealed, game.Position{}, 0)

		move := r.DecideMove()

		require.Equal(t, game.Step(game.Position{X: 1, Y: 0}), move,
			"Runner should take the first neighbour closest to the goal")
	})

	t.Run("stay when boxed in", func(t *testing.T) {
		goalSealed := game.NewWallSet(
			game.Position{X: 3, Y: 4}, game.Position{X: 4, Y: 3},
			game.Position{X: 1, Y: 0}, game.Position{X: 0, Y: 1},
		)
		r := NewRunner(testRules(5))
		r.UpdateState(goalSealed, game.Position{}, 0)

		require.Equal(t, game.Step(game.Position{}), r.DecideMove())
	})

	t.Run("stay on the goal", func(t *testing.T) {
		r := NewRunner(testRules(5))
		r.UpdateState(game.NewWallSet(), game.Position{X: 4, Y: 4}, 0)

		require.Equal(t, game.Step(game.Position{X: 4, Y: 4}), r.DecideMove())
	})

	t.Run("extended move along a corridor", func(t *testing.T) {
		// row 1 is walled from x=0 to x=6, so the only path runs along row 0
		walls := game.NewWallSet()
		for x := 0; x < 7; x++ {
			walls.Add(game.Position{X: x, Y: 1})
		}
		r := NewRunner(testRules(8))
		r.UpdateState(walls, game.Position{}, 0)

		move := r.DecideMove()

		require.Equal(t, game.WithRunnerSkill(game.Position{X: 4, Y: 0}, game.ExtendedMove), move,
			"Runner should jump to the furthest reachable path tile")
	})

	t.Run("plain step on a short path", func(t *testing.T) {
		r := NewRunner(testRules(8))
		r.UpdateState(game.NewWallSet(), game.Position{X: 5, Y: 7}, 0)

		require.Equal(t, game.Step(game.Position{X: 6, Y: 7}), r.DecideMove())
	})
}

func TestRunnerUpdateState(t *testing.T) {
	r := NewRunner(testRules(6))
	walls := game.NewWallSet(game.Position{X: 1, Y: 0}, game.Position{X: 0, Y: 1})

	r.UpdateState(walls, game.Position{}, 0)
	walls.Remove(game.Position{X: 1, Y: 0})

	require.True(t, r.board.Walls.Has(game.Position{X: 1, Y: 0}), "Runner should keep its own snapshot")
	require.False(t, r.wallBreak)
	require.True(t, r.extendedMove)
	require.True(t, r.teleport)

	r.UpdateState(walls, game.Position{}, 4)
	require.True(t, r.wallBreak, "Wall break should unlock at 4 rounds")
	require.Equal(t, 2, r.Steps())
}
