package agent

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"mazerunner/experiments/metrics"
	"mazerunner/game"
	"mazerunner/meta"
	"mazerunner/pathfind"
	"mazerunner/searcher"
)

const (
	InitialDifficulty = 0.5
	MinDifficulty     = 0.2
	MaxDifficulty     = 1.0
	DifficultyStep    = 0.1
)

type MasterOption func(m *Master)

func WithDepth(depth int) MasterOption {
	return func(m *Master) {
		if depth > 0 {
			m.depth = depth
		}
	}
}

func WithThinkBudget(budget time.Duration) MasterOption {
	return func(m *Master) {
		if budget > 0 {
			m.thinkBudget = budget
		}
	}
}

func WithDifficulty(difficulty float64) MasterOption {
	return func(m *Master) {
		m.difficulty = math.Max(MinDifficulty, math.Min(MaxDifficulty, difficulty))
	}
}

func WithSeed(seed uint64) MasterOption {
	return func(m *Master) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithWeights(weights searcher.Weights) MasterOption {
	return func(m *Master) {
		m.weights = weights
	}
}

// WithSearcher replaces the default minimax.
func WithSearcher(s searcher.Searcher) MasterOption {
	return func(m *Master) {
		if s != nil {
			m.searcher = s
		}
	}
}

func WithMetrics() MasterOption {
	return func(m *Master) {
		m.metrics = metrics.NewCollector()
	}
}

// Master places walls chosen by a minimax search and falls back to a randomized heuristic.
// It only reads its skill bookkeeping; the driver owns it and pushes it through SetSkills.
type Master struct {
	board       game.Board
	skills      game.MasterSkillState
	difficulty  float64
	depth       int
	thinkBudget time.Duration
	weights     searcher.Weights
	rng         *rand.Rand
	generator   *searcher.Generator
	searcher    searcher.Searcher
	metrics     metrics.Collector
	last        metrics.SearchMetric
}

func NewMaster(rules game.Rules, options ...MasterOption) *Master {
	m := &Master{ // Default values
		board:       game.NewBoard(rules, nil, rules.Start()),
		difficulty:  InitialDifficulty,
		depth:       meta.SEARCH_DEPTH,
		thinkBudget: meta.THINK_BUDGET_MS * time.Millisecond,
		weights:     searcher.DefaultWeights,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	m.generator = searcher.NewGenerator(m.rng)
	if m.searcher == nil {
		evaluator := searcher.NewEvaluator(m.weights, pathfind.BFS)
		m.searcher = searcher.NewMinimax(evaluator, m.generator, searcher.WithMetrics(m.metrics))
	}
	return m
}

// UpdateState takes a snapshot and adapts the difficulty: up when the runner has walked more
// than twice the shortest path, down when it stays within 1.2 times of it.
func (m *Master) UpdateState(walls game.WallSet, player game.Position, playerSteps int) {
	m.board = m.board.WithWalls(walls.Clone()).WithPlayer(player)

	path := pathfind.BFS(m.board, player, m.board.Goal())
	if path == nil {
		return
	}
	optimal := float64(len(path))
	steps := float64(playerSteps)
	switch {
	case steps > 2*optimal:
		m.difficulty = roundTenth(math.Min(MaxDifficulty, m.difficulty+DifficultyStep))
	case steps <= 1.2*optimal:
		m.difficulty = roundTenth(math.Max(MinDifficulty, m.difficulty-DifficultyStep))
	}
}

func (m *Master) SetSkills(skills game.MasterSkillState) {
	m.skills = skills
}

func (m *Master) Skills() game.MasterSkillState {
	return m.skills
}

func (m *Master) Difficulty() float64 {
	return m.difficulty
}

func (m *Master) Depth() int {
	return m.depth
}

func (m *Master) LastSearch() metrics.SearchMetric {
	return m.last
}

// DecideMove suggests a wall. A positive wallsPlaced means this is the follow-up wall of a
// double wall, which never carries a skill.
func (m *Master) DecideMove(wallsPlaced int) game.MasterMove {
	start := time.Now()
	m.metrics.Start(m.depth)
	m.searcher.Reset()

	skills := searcher.SkillsFrom(m.skills)
	if wallsPlaced > 0 {
		skills = searcher.SkillSet{}
	}
	move, ok := m.search(searcher.Node{Board: m.board, Skills: skills})
	if !ok {
		move = m.fallback(wallsPlaced == 0)
		m.metrics.SetFellBack(true)
	}
	m.last = m.metrics.Complete()

	if elapsed := time.Since(start); elapsed > m.thinkBudget && m.depth > 1 {
		m.depth--
		log.Debug().Msgf("master took %v over a %v budget, depth lowered to %d", elapsed, m.thinkBudget, m.depth)
	}
	return move
}

// search runs the searcher and turns a panic or an empty result into ok == false.
func (m *Master) search(node searcher.Node) (move game.MasterMove, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Msgf("master search failed, falling back: %v", r)
			move, ok = game.MasterMove{}, false
		}
	}()

	result := m.searcher.Search(node, m.depth)
	if result.Move == nil {
		return game.MasterMove{}, false
	}
	return *result.Move, true
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
