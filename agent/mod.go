// Package agent holds the two autonomous players. Drivers feed them snapshots with
// UpdateState, ask for a suggestion with DecideMove and re-validate whatever comes back.
package agent

import (
	"mazerunner/experiments/metrics"
	"mazerunner/game"
)

type RunnerAgent interface {
	UpdateState(walls game.WallSet, player game.Position, roundsSinceWallBreak int)
	DecideMove() game.RunnerMove
}

type MasterAgent interface {
	UpdateState(walls game.WallSet, player game.Position, playerSteps int)
	SetSkills(skills game.MasterSkillState)
	DecideMove(wallsPlaced int) game.MasterMove
}

// Reporter is implemented by agents that record metrics about their last decision.
type Reporter interface {
	LastSearch() metrics.SearchMetric
}
