package pathfind

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"mazerunner/game"
)

func board(size int, walls ...game.Position) game.Board {
	r := game.NewStandardRules()
	r.Size = size
	r.ProtectedRadius = 0
	return game.NewBoard(r, game.NewWallSet(walls...), game.Position{})
}

func requireContiguous(t *testing.T, path []game.Position) {
	for i := 1; i < len(path); i++ {
		require.Equal(t, 1, game.Manhattan(path[i-1], path[i]), "Consecutive tiles should differ by one axis step")
	}
}

func TestEmptyGrid(t *testing.T) {
	b := board(5)
	goal := game.Position{X: 4, Y: 4}

	for name, find := range map[string]PathFunc{"bfs": BFS, "astar": AStar} {
		t.Run(name, func(t *testing.T) {
			path := find(b, game.Position{}, goal)

			require.Len(t, path, 9, "8 moves from corner to corner")
			require.Equal(t, game.Position{}, path[0])
			require.Equal(t, goal, path[len(path)-1])
			requireContiguous(t, path)
		})
	}
}

func TestStartIsGoal(t *testing.T) {
	b := board(5)

	require.Equal(t, []game.Position{{X: 2, Y: 2}}, BFS(b, game.Position{X: 2, Y: 2}, game.Position{X: 2, Y: 2}))
	require.Equal(t, []game.Position{{X: 2, Y: 2}}, AStar(b, game.Position{X: 2, Y: 2}, game.Position{X: 2, Y: 2}))
}

func TestNoPath(t *testing.T) {
	// (0,0) sealed off by (1,0) and (0,1)
	b := board(5, game.Position{X: 1, Y: 0}, game.Position{X: 0, Y: 1})

	require.Nil(t, BFS(b, game.Position{}, game.Position{X: 4, Y: 4}))
	require.Nil(t, AStar(b, game.Position{}, game.Position{X: 4, Y: 4}))
}

func TestDetour(t *testing.T) {
	// vertical barrier at x=2 with a gap at y=4
	b := board(5, game.Position{X: 2, Y: 0}, game.Position{X: 2, Y: 1}, game.Position{X: 2, Y: 2}, game.Position{X: 2, Y: 3})
	goal := game.Position{X: 4, Y: 0}

	bfs := BFS(b, game.Position{}, goal)
	astar := AStar(b, game.Position{}, goal)

	require.Len(t, bfs, 13)
	require.Len(t, astar, 13)
	requireContiguous(t, astar)
}

func TestRandomWallsAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		var walls []game.Position
		for j := 0; j < 25; j++ {
			walls = append(walls, game.Position{X: rng.Intn(8), Y: rng.Intn(8)})
		}
		b := board(8, walls...)
		start, goal := game.Position{X: rng.Intn(8), Y: rng.Intn(8)}, game.Position{X: 7, Y: 7}
		if b.Walls.Has(start) || b.Walls.Has(goal) {
			continue
		}

		bfs := BFS(b, start, goal)
		astar := AStar(b, start, goal)

		if bfs == nil {
			require.Nil(t, astar, "Both searches should agree on reachability")
			continue
		}
		require.Len(t, astar, len(bfs), "Both searches should return shortest paths")
		requireContiguous(t, astar)
		requireContiguous(t, bfs)
	}
}
