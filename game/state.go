package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// State is the ground truth of a match. Agents only ever see snapshots of it.
// Apply methods validate first and leave the state untouched on error.
type State struct {
	Board                Board            `json:"board"`
	Turn                 Side             `json:"turn"`
	RunnerActions        int              `json:"runner_actions"` // Actions the runner has used this round
	TotalSteps           int              `json:"total_steps"`
	Round                int              `json:"round"`
	RoundsSinceWallBreak int              `json:"rounds_since_wall_break"`
	WallsPlaced          int              `json:"walls_placed"`  // Walls the master has placed this turn
	PendingWalls         int              `json:"pending_walls"` // Walls the master still owes this turn
	Skills               MasterSkillState `json:"skills"`
	Winner               Side             `json:"winner"`
}

func NewState(rules Rules) *State {
	return &State{
		Board: NewBoard(rules, NewWallSet(), rules.Start()),
		Turn:  RunnerSide,
	}
}

func (s *State) Rules() Rules {
	return s.Board.Rules
}

func (s *State) Over() bool {
	return s.Winner != NoSide || s.Round > s.Rules().MaxRounds
}

// RemainingActions is the number of runner actions left this round.
func (s *State) RemainingActions() int {
	return s.Rules().ActionsPerRound - s.RunnerActions
}

// WallBreakReady reports whether the runner has waited long enough to remove a wall.
func (s *State) WallBreakReady() bool {
	return s.RoundsSinceWallBreak >= s.Rules().WallBreakThreshold
}

func (s *State) checkTurn(side Side) error {
	if s.Over() {
		return ErrGameOver
	}
	if s.Turn != side {
		return fmt.Errorf("%w: %s to move", ErrWrongTurn, s.Turn)
	}
	return nil
}

// ApplyRunnerMove validates and commits a runner action.
func (s *State) ApplyRunnerMove(m RunnerMove) error {
	if err := s.checkTurn(RunnerSide); err != nil {
		return err
	}
	b := s.Board
	cost := 1
	switch m.Skill {
	case RunnerNoSkill:
		if m.Target != b.Player && !adjacent(b, b.Player, m.Target) {
			return fmt.Errorf("%w: cannot step from %s to %s", ErrInvalidMove, b.Player, m.Target)
		}
	case ExtendedMove:
		if s.RemainingActions() < 2 {
			return fmt.Errorf("%w: extended move needs 2 actions, %d left", ErrSkillUnavailable, s.RemainingActions())
		}
		if !s.straightReach(m.Target) {
			return fmt.Errorf("%w: %s is out of extended reach", ErrInvalidMove, m.Target)
		}
		cost = 2
	case Teleport:
		if !b.Open(m.Target) || Chebyshev(b.Player, m.Target) > s.Rules().TeleportRadius {
			return fmt.Errorf("%w: cannot teleport to %s", ErrInvalidMove, m.Target)
		}
	case WallBreak:
		if !s.WallBreakReady() {
			return fmt.Errorf("%w: wall break unlocks after %d rounds", ErrSkillUnavailable, s.Rules().WallBreakThreshold)
		}
		if !b.Walls.Has(m.Target) {
			return fmt.Errorf("%w: no wall at %s", ErrInvalidMove, m.Target)
		}
	default:
		return fmt.Errorf("%w: unknown runner skill %s", ErrInvalidMove, m.Skill)
	}

	if m.Skill == WallBreak {
		walls := b.Walls.Clone()
		walls.Remove(m.Target)
		s.Board = b.WithWalls(walls)
		s.RoundsSinceWallBreak = 0
	} else {
		s.Board = b.WithPlayer(m.Target)
	}
	s.RunnerActions += cost
	s.TotalSteps++

	if s.Board.Player == s.Board.Goal() {
		s.Winner = RunnerSide
		return nil
	}
	if s.RunnerActions >= s.Rules().ActionsPerRound {
		s.Turn = MasterSide
		s.RunnerActions = 0
		s.WallsPlaced = 0
		s.PendingWalls = 1
	}
	return nil
}

// ApplyMasterMove validates and commits a master action. rng picks the forced teleport destination.
func (s *State) ApplyMasterMove(m MasterMove, rng *rand.Rand) error {
	if err := s.checkTurn(MasterSide); err != nil {
		return err
	}
	b := s.Board
	if m.Skill != MasterNoSkill && s.WallsPlaced > 0 {
		return fmt.Errorf("%w: %s after a wall this turn", ErrSkillUnavailable, m.Skill)
	}
	if !s.Skills.Available(m.Skill) {
		return fmt.Errorf("%w: %s", ErrSkillUnavailable, m.Skill)
	}

	tiles := m.Tiles()
	var valid bool
	if m.Skill == DiagonalWall {
		valid = b.IsValidDiagonalWall(m.Anchor.X, m.Anchor.Y, m.Direction)
	} else {
		valid = b.IsValidWall(m.Anchor.X, m.Anchor.Y, m.Horizontal)
	}
	// A forced teleport still moves the runner when its wall does not fit.
	if !valid && m.Skill != ForcedTeleport {
		return fmt.Errorf("%w: wall at %s does not fit", ErrInvalidMove, m.Anchor)
	}

	var destination Position
	if m.Skill == ForcedTeleport {
		walls := b.Walls
		if valid {
			walls = walls.With(tiles...)
		}
		var ok bool
		destination, ok = randomEmpty(b.WithWalls(walls), rng)
		if !ok {
			return fmt.Errorf("%w: no free tile to teleport to", ErrInvalidMove)
		}
	}

	if valid {
		s.Board = b.WithWalls(b.Walls.With(tiles...))
		s.WallsPlaced++
	}
	s.PendingWalls--

	switch m.Skill {
	case DoubleWall:
		s.Skills.DoubleWallCooldown = s.Rules().SkillCooldown
		s.PendingWalls++
	case DiagonalWall:
		s.Skills.DiagonalUsed = true
	case ForcedTeleport:
		s.Skills.TeleportCooldown = s.Rules().SkillCooldown
		s.Board = s.Board.WithPlayer(destination)
	}

	if s.PendingWalls <= 0 {
		s.EndMasterTurn()
	}
	return nil
}

// Pass ends the master's turn without any further walls.
func (s *State) Pass() error {
	if err := s.checkTurn(MasterSide); err != nil {
		return err
	}
	s.EndMasterTurn()
	return nil
}

// EndMasterTurn ticks cooldowns and counters, checks coverage and hands the turn back to the runner.
func (s *State) EndMasterTurn() {
	if s.Skills.DoubleWallCooldown > 0 {
		s.Skills.DoubleWallCooldown--
	}
	if s.Skills.TeleportCooldown > 0 {
		s.Skills.TeleportCooldown--
	}
	s.RoundsSinceWallBreak++
	s.Round++
	s.PendingWalls = 0
	s.Turn = RunnerSide
	if s.Board.Coverage() >= s.Rules().WinCoverage {
		s.Winner = MasterSide
	}
}

func (s *State) straightReach(target Position) bool {
	b := s.Board
	dx, dy := target.X-b.Player.X, target.Y-b.Player.Y
	if (dx != 0) == (dy != 0) {
		return false
	}
	dist := Manhattan(b.Player, target)
	if dist > s.Rules().ExtendedRange {
		return false
	}
	step := Position{X: sign(dx), Y: sign(dy)}
	for i := 1; i <= dist; i++ {
		if !b.Open(b.Player.Add(step.Scale(i))) {
			return false
		}
	}
	return true
}

func adjacent(b Board, from, to Position) bool {
	for _, n := range b.ValidMoves(from) {
		if n == to {
			return true
		}
	}
	return false
}

func randomEmpty(b Board, rng *rand.Rand) (Position, bool) {
	var free []Position
	for y := 0; y < b.Rules.Size; y++ {
		for x := 0; x < b.Rules.Size; x++ {
			p := Position{X: x, Y: y}
			if b.Open(p) && p != b.Goal() {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return Position{}, false
	}
	return free[rng.Intn(len(free))], true
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
