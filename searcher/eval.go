package searcher

import (
	"math"

	"mazerunner/experiments/metrics"
	"mazerunner/game"
	"mazerunner/pathfind"
)

// Weights scale the terms of the position score. They are tuning knobs, not derived values.
type Weights struct {
	PathLength float64 `json:"path_length"`
	Coverage   float64 `json:"coverage"`
	Proximity  float64 `json:"proximity"`
}

var DefaultWeights = Weights{PathLength: 10, Coverage: 100, Proximity: 50}

type cacheKey struct {
	player game.Position
	walls  string
}

// Evaluator scores boards from the master's side, higher is better.
// Scores are memoized by (runner tile, wall set) until Reset.
type Evaluator struct {
	weights      Weights
	shortestPath pathfind.PathFunc
	cache        map[cacheKey]float64
	metrics      metrics.Collector
}

// NewEvaluator builds an evaluator. A nil shortestPath defaults to BFS.
func NewEvaluator(weights Weights, shortestPath pathfind.PathFunc) *Evaluator {
	if shortestPath == nil {
		shortestPath = pathfind.BFS
	}
	return &Evaluator{
		weights:      weights,
		shortestPath: shortestPath,
		cache:        map[cacheKey]float64{},
		metrics:      metrics.NewDummyCollector(),
	}
}

func (e *Evaluator) Evaluate(b game.Board) float64 {
	key := cacheKey{player: b.Player, walls: b.Walls.Fingerprint(b.Rules.Size)}
	if score, ok := e.cache[key]; ok {
		e.metrics.AddEvaluation(true)
		return score
	}
	e.metrics.AddEvaluation(false)

	score := e.score(b)
	e.cache[key] = score
	return score
}

func (e *Evaluator) score(b game.Board) float64 {
	path := e.shortestPath(b, b.Player, b.Goal())
	if path == nil {
		return Win
	}

	nearest := 0
	if b.Walls.Len() > 0 {
		nearest = math.MaxInt
		for w := range b.Walls {
			nearest = min(nearest, game.Manhattan(w, b.Player))
		}
	}

	return e.weights.PathLength*float64(len(path)) +
		e.weights.Coverage*b.Coverage() +
		e.weights.Proximity/float64(1+nearest)
}

// Reset drops every memoized score.
func (e *Evaluator) Reset() {
	clear(e.cache)
}

func (e *Evaluator) Cached() int {
	return len(e.cache)
}
