package game

import "fmt"

// Side identifies who is to move, or who won.
type Side string

const (
	NoSide     Side = ""
	RunnerSide Side = "runner"
	MasterSide Side = "master"
)

type RunnerSkill int

const (
	RunnerNoSkill RunnerSkill = iota
	ExtendedMove
	Teleport
	WallBreak
)

func (s RunnerSkill) String() string {
	switch s {
	case RunnerNoSkill:
		return "none"
	case ExtendedMove:
		return "extended-move"
	case Teleport:
		return "teleport"
	case WallBreak:
		return "wall-break"
	}
	return fmt.Sprintf("runner-skill(%d)", int(s))
}

type MasterSkill int

const (
	MasterNoSkill MasterSkill = iota
	DoubleWall
	DiagonalWall
	ForcedTeleport
)

// MasterSkills lists the optional skills in the order they are tried.
var MasterSkills = []MasterSkill{DoubleWall, DiagonalWall, ForcedTeleport}

func (s MasterSkill) String() string {
	switch s {
	case MasterNoSkill:
		return "none"
	case DoubleWall:
		return "double-wall"
	case DiagonalWall:
		return "diagonal-wall"
	case ForcedTeleport:
		return "forced-teleport"
	}
	return fmt.Sprintf("master-skill(%d)", int(s))
}

type Direction int

const (
	UpperLeftToLowerRight Direction = iota // "uldr"
	UpperRightToLowerLeft                  // "urdl"
)

var Directions = []Direction{UpperLeftToLowerRight, UpperRightToLowerLeft}

func (d Direction) String() string {
	if d == UpperRightToLowerLeft {
		return "urdl"
	}
	return "uldr"
}

// RunnerMove is the runner's decision: a tile to step or teleport to, or a wall tile to remove.
type RunnerMove struct {
	Target    Position    `json:"target"`
	Skill     RunnerSkill `json:"skill"`
	UsedSkill bool        `json:"used_skill"`
}

func Step(target Position) RunnerMove {
	return RunnerMove{Target: target, Skill: RunnerNoSkill}
}

func WithRunnerSkill(target Position, skill RunnerSkill) RunnerMove {
	return RunnerMove{Target: target, Skill: skill, UsedSkill: skill != RunnerNoSkill}
}

// MasterMove is the master's decision: a wall anchor with its layout, optionally tagged with a skill.
// Direction is only read for diagonal walls.
type MasterMove struct {
	Anchor     Position    `json:"anchor"`
	Horizontal bool        `json:"horizontal"`
	Direction  Direction   `json:"direction"`
	Skill      MasterSkill `json:"skill"`
}

// Tiles returns the wall tiles the move would place.
func (m MasterMove) Tiles() []Position {
	if m.Skill == DiagonalWall {
		return DiagonalSegment(m.Anchor, m.Direction)
	}
	return StraightSegment(m.Anchor, m.Horizontal)
}

// MasterSkillState is the master's skill bookkeeping, advanced by the driver only.
type MasterSkillState struct {
	DoubleWallCooldown int  `json:"double_wall_cooldown"`
	DiagonalUsed       bool `json:"diagonal_used"`
	TeleportCooldown   int  `json:"teleport_cooldown"`
}

// Available reports whether a skill may be used under this bookkeeping.
func (s MasterSkillState) Available(skill MasterSkill) bool {
	switch skill {
	case MasterNoSkill:
		return true
	case DoubleWall:
		return s.DoubleWallCooldown == 0
	case DiagonalWall:
		return !s.DiagonalUsed
	case ForcedTeleport:
		return s.TeleportCooldown == 0
	}
	return false
}
