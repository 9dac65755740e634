package game

import (
	"errors"
	"fmt"

	"mazerunner/meta"
)

var ErrInvalidRules = errors.New("invalid rules")

// Rules holds the static parameters of a match.
type Rules struct {
	Size               int     `json:"size"`
	ProtectedRadius    int     `json:"protected_radius"` // Chebyshev radius around the goal closed to walls, 0 disables
	WinCoverage        float64 `json:"win_coverage"`     // Fraction of tiles covered by walls that wins for the master
	ActionsPerRound    int     `json:"actions_per_round"`
	WallBreakThreshold int     `json:"wall_break_threshold"`
	SkillCooldown      int     `json:"skill_cooldown"`
	TeleportRadius     int     `json:"teleport_radius"`
	ExtendedRange      int     `json:"extended_range"`
	MaxRounds          int     `json:"max_rounds"`
}

func NewStandardRules() Rules {
	return Rules{
		Size:               meta.GRID_SIZE,
		ProtectedRadius:    meta.PROTECTED_RADIUS,
		WinCoverage:        meta.WIN_COVERAGE,
		ActionsPerRound:    meta.ACTIONS_PER_ROUND,
		WallBreakThreshold: meta.WALL_BREAK_THRESHOLD,
		SkillCooldown:      meta.SKILL_COOLDOWN,
		TeleportRadius:     2,
		ExtendedRange:      4,
		MaxRounds:          meta.MAX_ROUNDS,
	}
}

// Goal is the bottom-right tile.
func (r Rules) Goal() Position {
	return Position{X: r.Size - 1, Y: r.Size - 1}
}

func (r Rules) Start() Position {
	return Position{X: 0, Y: 0}
}

func (r Rules) InBounds(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < r.Size && p.Y < r.Size
}

func (r Rules) Protected(p Position) bool {
	return r.ProtectedRadius > 0 && Chebyshev(p, r.Goal()) <= r.ProtectedRadius
}

func (r Rules) Tiles() int {
	return r.Size * r.Size
}

// ValidateTiles rejects tiles outside the grid.
func (r Rules) ValidateTiles(tiles ...Position) error {
	for _, t := range tiles {
		if !r.InBounds(t) {
			return fmt.Errorf("%w: tile %v is outside the %dx%d grid", ErrInvalidMove, t, r.Size, r.Size)
		}
	}
	return nil
}

// Validate rejects rules no match can be played under.
func (r Rules) Validate() error {
	switch {
	case r.Size < 4:
		return fmt.Errorf("%w: size must be at least 4, got %d", ErrInvalidRules, r.Size)
	case r.Size > meta.MAX_GRID_SIZE:
		return fmt.Errorf("%w: size must be at most %d, got %d", ErrInvalidRules, meta.MAX_GRID_SIZE, r.Size)
	case r.WinCoverage <= 0 || r.WinCoverage > 1:
		return fmt.Errorf("%w: win coverage must be in (0, 1], got %v", ErrInvalidRules, r.WinCoverage)
	case r.ProtectedRadius < 0:
		return fmt.Errorf("%w: protected radius must not be negative, got %d", ErrInvalidRules, r.ProtectedRadius)
	case r.ActionsPerRound < 1 || r.MaxRounds < 1:
		return fmt.Errorf("%w: actions per round and max rounds must be positive", ErrInvalidRules)
	case r.ProtectedRadius >= r.Size-1:
		return fmt.Errorf("%w: protected radius %d covers the start", ErrInvalidRules, r.ProtectedRadius)
	}
	return nil
}
