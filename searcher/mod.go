// Package searcher holds the master's adversarial search: a cached position evaluator,
// a strategic wall candidate generator and a depth-limited minimax with alpha-beta pruning.
package searcher

import (
	"math"

	"mazerunner/game"
)

var (
	Win  = math.Inf(1)  // Runner trapped
	Loss = math.Inf(-1) // Nothing left to try
)

// Searcher finds the master's best move from a node.
type Searcher interface {
	Search(node Node, depth int) Result
	Reset()
}

// SkillSet tracks which master skills remain usable along one line of play.
type SkillSet struct {
	DoubleWall     bool
	DiagonalWall   bool
	ForcedTeleport bool
}

func SkillsFrom(state game.MasterSkillState) SkillSet {
	return SkillSet{
		DoubleWall:     state.Available(game.DoubleWall),
		DiagonalWall:   state.Available(game.DiagonalWall),
		ForcedTeleport: state.Available(game.ForcedTeleport),
	}
}

func (s SkillSet) Has(skill game.MasterSkill) bool {
	switch skill {
	case game.MasterNoSkill:
		return true
	case game.DoubleWall:
		return s.DoubleWall
	case game.DiagonalWall:
		return s.DiagonalWall
	case game.ForcedTeleport:
		return s.ForcedTeleport
	}
	return false
}

func (s SkillSet) Without(skill game.MasterSkill) SkillSet {
	switch skill {
	case game.DoubleWall:
		s.DoubleWall = false
	case game.DiagonalWall:
		s.DiagonalWall = false
	case game.ForcedTeleport:
		s.ForcedTeleport = false
	}
	return s
}

// Node is a search position: the board plus the skills left to the master.
type Node struct {
	Board  game.Board
	Skills SkillSet
}

// Result is a scored search outcome. Move is nil at leaves and in runner layers.
type Result struct {
	Score float64
	Move  *game.MasterMove
}
