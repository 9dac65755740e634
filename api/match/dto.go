// Package matchapi exposes headless matches over HTTP.
package matchapi

import (
	"github.com/google/uuid"

	"mazerunner/experiments/metrics"
	"mazerunner/game"
)

// CreateMatchRequest overrides the server defaults for one match. Every field is optional.
type CreateMatchRequest struct {
	Size            *int     `json:"size"`
	ProtectedRadius *int     `json:"protected_radius"`
	WinCoverage     *float64 `json:"win_coverage"`
	MaxRounds       *int     `json:"max_rounds"`
	Depth           int      `json:"depth" binding:"gte=0,lte=6"`
	Seed            uint64   `json:"seed"`
}

type MatchResponse struct {
	ID    uuid.UUID     `json:"id"`
	Goal  game.Position `json:"goal"`
	Over  bool          `json:"over"`
	State *game.State   `json:"state"`
}

type StepResponse struct {
	Move  metrics.MoveMetric `json:"move"`
	Match MatchResponse      `json:"match"`
}

type RunResponse struct {
	Winner game.Side          `json:"winner"`
	Game   metrics.GameMetric `json:"game"`
	Match  MatchResponse      `json:"match"`
}
