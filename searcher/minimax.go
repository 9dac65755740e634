package searcher

import (
	"math"
	"sort"

	"mazerunner/experiments/metrics"
	"mazerunner/game"
)

const (
	CandidateLimit = 5 // Master placements explored per node
	ReplyLimit     = 4 // Runner steps explored per node
)

type Option func(m *Minimax)

func WithCandidateLimit(limit int) Option {
	return func(m *Minimax) {
		if limit > 0 {
			m.candidateLimit = limit
		}
	}
}

func WithReplyLimit(limit int) Option {
	return func(m *Minimax) {
		if limit > 0 {
			m.replyLimit = limit
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(m *Minimax) {
		if collector != nil {
			m.metrics = collector
			m.evaluator.metrics = collector
		}
	}
}

// Minimax alternates master layers (maximizing) and runner layers (minimizing).
type Minimax struct {
	evaluator      *Evaluator
	generator      *Generator
	candidateLimit int
	replyLimit     int
	metrics        metrics.Collector
}

func NewMinimax(evaluator *Evaluator, generator *Generator, options ...Option) *Minimax {
	if evaluator == nil || generator == nil {
		panic("Must specify an evaluator and a generator")
	}
	m := &Minimax{ // Default values
		evaluator:      evaluator,
		generator:      generator,
		candidateLimit: CandidateLimit,
		replyLimit:     ReplyLimit,
		metrics:        metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Search returns the best master move from node with the master to play.
func (m *Minimax) Search(node Node, depth int) Result {
	return m.search(node, depth, math.Inf(-1), math.Inf(1), true)
}

// Reset clears the evaluation cache.
func (m *Minimax) Reset() {
	m.evaluator.Reset()
}

func (m *Minimax) search(node Node, depth int, alpha, beta float64, maximizing bool) Result {
	m.metrics.AddNode()
	b := node.Board
	score := m.evaluator.Evaluate(b)
	if b.Coverage() >= b.Rules.WinCoverage {
		score = Win
	}
	if depth <= 0 || m.terminal(b, score) {
		return Result{Score: score}
	}
	if maximizing {
		return m.maximize(node, depth, alpha, beta, score)
	}
	return m.minimize(node, depth, alpha, beta, score)
}

func (m *Minimax) terminal(b game.Board, score float64) bool {
	return math.IsInf(score, 1) || b.Player == b.Goal() || b.Coverage() >= b.Rules.WinCoverage
}

func (m *Minimax) maximize(node Node, depth int, alpha, beta, static float64) Result {
	candidates := m.generator.Strategic(node.Board)
	if len(candidates) == 0 {
		return Result{Score: static}
	}

	best := Result{Score: Loss}
	for i := range candidates[:min(len(candidates), m.candidateLimit)] {
		for _, br := range m.branches(node, candidates, i) {
			child := Node{Board: node.Board.WithWalls(br.walls), Skills: node.Skills.Without(br.move.Skill)}
			r := m.search(child, depth-1, alpha, beta, false)
			if r.Score > best.Score {
				move := br.move
				best = Result{Score: r.Score, Move: &move}
			}
			alpha = max(alpha, r.Score)
			if alpha >= beta {
				m.metrics.AddCutoff()
				return best
			}
		}
	}
	return best
}

func (m *Minimax) minimize(node Node, depth int, alpha, beta, static float64) Result {
	b := node.Board
	goal := b.Goal()
	replies := b.ValidMoves(b.Player)
	if len(replies) == 0 {
		return Result{Score: static}
	}
	sortByGoal(replies, goal)

	best := Result{Score: Win}
	for _, reply := range replies[:min(len(replies), m.replyLimit)] {
		r := m.search(Node{Board: b.WithPlayer(reply), Skills: node.Skills}, depth-1, alpha, beta, true)
		best.Score = min(best.Score, r.Score)
		beta = min(beta, r.Score)
		if alpha >= beta {
			m.metrics.AddCutoff()
			break
		}
	}
	return best
}

// sortByGoal orders tiles by Manhattan distance to goal, keeping neighbour order on ties.
func sortByGoal(tiles []game.Position, goal game.Position) {
	sort.SliceStable(tiles, func(i, j int) bool {
		return game.Manhattan(tiles[i], goal) < game.Manhattan(tiles[j], goal)
	})
}

type branch struct {
	move  game.MasterMove
	walls game.WallSet
}

// branches lists the skill variants of candidates[i] in trial order: none, double wall,
// diagonal wall, forced teleport. A variant is skipped when its skill is unavailable or cannot apply.
func (m *Minimax) branches(node Node, candidates []game.MasterMove, i int) []branch {
	b := node.Board
	plain := candidates[i]
	walls := b.Walls.With(plain.Tiles()...)
	out := []branch{{move: plain, walls: walls}}

	for _, skill := range game.MasterSkills {
		if !node.Skills.Has(skill) {
			continue
		}
		move := plain
		move.Skill = skill
		switch skill {
		case game.DoubleWall:
			if len(candidates) < 2 {
				continue
			}
			out = append(out, branch{move: move, walls: secondWall(b.WithWalls(walls), candidates, i)})
		case game.DiagonalWall:
			dir, ok := b.ValidDiagonalDirection(plain.Anchor)
			if !ok {
				continue
			}
			move.Direction = dir
			out = append(out, branch{move: move, walls: b.Walls.With(move.Tiles()...)})
		case game.ForcedTeleport:
			// The landing tile is random, so the runner is left where it is.
			out = append(out, branch{move: move, walls: walls})
		}
	}
	return out
}

// secondWall adds the first other candidate that still fits once the first wall is placed.
func secondWall(b game.Board, candidates []game.MasterMove, skip int) game.WallSet {
	for j, c := range candidates {
		if j != skip && b.IsValidWall(c.Anchor.X, c.Anchor.Y, c.Horizontal) {
			return b.Walls.With(c.Tiles()...)
		}
	}
	return b.Walls
}
