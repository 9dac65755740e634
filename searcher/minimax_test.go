package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"mazerunner/experiments/metrics"
	"mazerunner/game"
)

/*
- depth 0: static evaluation, no move
- terminal: trapped runner, wall coverage or runner on goal, no move
- depth 1: best static child among the top candidates, first wins ties
- skills: a double wall dominates a plain wall at depth 1
- pruning: same score as an exhaustive minimax over the same tree
*/

func newTestMinimax(options ...Option) (*Minimax, *Evaluator, *Generator) {
	e := NewEvaluator(DefaultWeights, nil)
	g := NewGenerator(rand.New(rand.NewSource(1)))
	g.SetExtras(0)
	return NewMinimax(e, g, options...), e, g
}

func TestSearchDepthZero(t *testing.T) {
	m, _, _ := newTestMinimax()
	b := testBoard(8, game.Position{X: 1, Y: 2}, game.StraightSegment(game.Position{X: 3, Y: 3}, true)...)

	r := m.Search(Node{Board: b}, 0)

	require.Equal(t, NewEvaluator(DefaultWeights, nil).Evaluate(b), r.Score, "Depth 0 should be the static evaluation")
	require.Nil(t, r.Move, "Depth 0 should not pick a move")
}

func TestSearchTerminal(t *testing.T) {
	t.Run("trapped runner", func(t *testing.T) {
		m, _, _ := newTestMinimax()
		b := testBoard(5, game.Position{}, game.Position{X: 1, Y: 0}, game.Position{X: 0, Y: 1})

		r := m.Search(Node{Board: b}, 3)

		require.True(t, math.IsInf(r.Score, 1))
		require.Nil(t, r.Move)
	})

	t.Run("wall coverage reached", func(t *testing.T) {
		m, _, _ := newTestMinimax()
		walls := append(game.StraightSegment(game.Position{X: 1, Y: 2}, true), game.StraightSegment(game.Position{X: 1, Y: 3}, true)...)
		b := testBoard(5, game.Position{}, walls...)
		b.Rules.WinCoverage = 0.2

		r := m.Search(Node{Board: b}, 3)

		require.Equal(t, Win, r.Score, "Covering the grid is a master win")
		require.Nil(t, r.Move)
	})

	t.Run("runner on goal", func(t *testing.T) {
		m, _, _ := newTestMinimax()
		b := testBoard(5, game.Position{X: 4, Y: 4})

		r := m.Search(Node{Board: b}, 3)

		require.Nil(t, r.Move)
	})
}

func TestSearchDepthOne(t *testing.T) {
	m, _, g := newTestMinimax()
	b := testBoard(8, game.Position{X: 2, Y: 1})

	r := m.Search(Node{Board: b}, 1)

	e := NewEvaluator(DefaultWeights, nil)
	var want game.MasterMove
	best := math.Inf(-1)
	candidates := g.Strategic(b)
	for _, c := range candidates[:min(len(candidates), CandidateLimit)] {
		if s := e.Evaluate(b.WithWalls(b.Walls.With(c.Tiles()...))); s > best {
			best, want = s, c
		}
	}
	require.NotNil(t, r.Move)
	require.Equal(t, want, *r.Move, "Master should pick the first best placement")
	require.Equal(t, best, r.Score)
	require.Equal(t, 0, b.Walls.Len(), "Search should not touch the input board")
}

func TestSearchCoverageWin(t *testing.T) {
	m, _, _ := newTestMinimax()
	b := testBoard(6, game.Position{})
	b.Rules.WinCoverage = 0.08 // any single wall

	r := m.Search(Node{Board: b}, 1)

	require.NotNil(t, r.Move)
	require.Equal(t, Win, r.Score, "A wall that reaches the coverage should rank as a win")
}

func TestSearchSkills(t *testing.T) {
	m, _, _ := newTestMinimax()
	b := testBoard(8, game.Position{X: 2, Y: 1})

	r := m.Search(Node{Board: b, Skills: SkillSet{DoubleWall: true}}, 1)

	require.NotNil(t, r.Move)
	require.Equal(t, game.DoubleWall, r.Move.Skill, "Two walls should outscore one")

	r = m.Search(Node{Board: b, Skills: SkillSet{ForcedTeleport: true}}, 1)
	require.Equal(t, game.MasterNoSkill, r.Move.Skill, "Teleport ties with the plain wall and loses the tie")
}

func TestSearchMatchesExhaustive(t *testing.T) {
	for _, depth := range []int{1, 2, 3} {
		m, e, _ := newTestMinimax()
		node := Node{
			Board:  testBoard(7, game.Position{X: 1, Y: 1}, game.StraightSegment(game.Position{X: 3, Y: 2}, false)...),
			Skills: SkillSet{DoubleWall: true, DiagonalWall: true, ForcedTeleport: true},
		}

		got := m.Search(node, depth)
		want := exhaustive(m, e, node, depth, true)

		require.Equal(t, want, got.Score, "Pruning should not change the value at depth %d", depth)
	}
}

func exhaustive(m *Minimax, e *Evaluator, node Node, depth int, maximizing bool) float64 {
	b := node.Board
	score := e.Evaluate(b)
	if b.Coverage() >= b.Rules.WinCoverage {
		score = Win
	}
	if depth == 0 || m.terminal(b, score) {
		return score
	}
	if maximizing {
		candidates := m.generator.Strategic(b)
		if len(candidates) == 0 {
			return score
		}
		best := math.Inf(-1)
		for i := range candidates[:min(len(candidates), m.candidateLimit)] {
			for _, br := range m.branches(node, candidates, i) {
				child := Node{Board: b.WithWalls(br.walls), Skills: node.Skills.Without(br.move.Skill)}
				best = max(best, exhaustive(m, e, child, depth-1, false))
			}
		}
		return best
	}
	replies := b.ValidMoves(b.Player)
	if len(replies) == 0 {
		return score
	}
	sortByGoal(replies, b.Goal())
	best := math.Inf(1)
	for _, reply := range replies[:min(len(replies), m.replyLimit)] {
		best = min(best, exhaustive(m, e, Node{Board: b.WithPlayer(reply), Skills: node.Skills}, depth-1, true))
	}
	return best
}

func TestSearchMetrics(t *testing.T) {
	collector := metrics.NewCollector()
	m, _, _ := newTestMinimax(WithMetrics(collector))
	collector.Start(2)

	m.Search(Node{Board: testBoard(8, game.Position{})}, 2)
	metric := collector.Complete()

	require.Equal(t, 2, metric.Depth)
	require.Positive(t, metric.Nodes)
	require.Positive(t, metric.Evaluations)
	require.Equal(t, metric.Nodes, metric.Evaluations+metric.CacheHits, "Every node evaluates once")
}
