package engine

import (
	"mazerunner/experiments/metrics"
	"mazerunner/game"
)

// Driver owns the ground truth of a match and mediates the agents' turns.
type Driver interface {
	// Step lets the side to move take one action
	Step() (metrics.MoveMetric, error)
	// Run steps until there's a winner or the round limit is reached
	Run() (winner game.Side, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
