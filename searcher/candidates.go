package searcher

import (
	"golang.org/x/exp/rand"

	"mazerunner/game"
	"mazerunner/pathfind"
)

const RandomCandidates = 5

// Generator proposes straight wall placements around the runner's shortest path.
type Generator struct {
	rng          *rand.Rand
	extras       int
	shortestPath pathfind.PathFunc
}

func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng, extras: RandomCandidates, shortestPath: pathfind.BFS}
}

// SetExtras changes how many random placements are tried after the path-based ones.
func (g *Generator) SetExtras(n int) {
	if n >= 0 {
		g.extras = n
	}
}

// Strategic returns valid, distinct placements in generation order: for each step of the
// shortest path, horizontal then vertical walls at offsets -1, 0, +1, then a few random tries.
// It returns nothing when the runner has no path.
func (g *Generator) Strategic(b game.Board) []game.MasterMove {
	path := g.shortestPath(b, b.Player, b.Goal())
	if path == nil {
		return nil
	}

	var moves []game.MasterMove
	seen := map[game.MasterMove]bool{}
	add := func(anchor game.Position, horizontal bool) {
		m := game.MasterMove{Anchor: anchor, Horizontal: horizontal}
		if seen[m] || !b.IsValidWall(anchor.X, anchor.Y, horizontal) {
			return
		}
		seen[m] = true
		moves = append(moves, m)
	}

	for i := 0; i+1 < len(path); i++ {
		cur, next := path[i], path[i+1]
		for _, horizontal := range []bool{true, false} {
			for offset := -1; offset <= 1; offset++ {
				if horizontal {
					add(game.Position{X: min(cur.X, next.X) - 1, Y: cur.Y + offset}, true)
				} else {
					add(game.Position{X: cur.X + offset, Y: min(cur.Y, next.Y) - 1}, false)
				}
			}
		}
	}

	span := b.Rules.Size - 2
	if span <= 0 {
		return moves
	}
	for i := 0; i < g.extras; i++ {
		anchor := game.Position{X: g.rng.Intn(span), Y: g.rng.Intn(span)}
		add(anchor, g.rng.Intn(2) == 0)
	}
	return moves
}
