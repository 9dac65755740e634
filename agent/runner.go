package agent

import (
	"math"

	"mazerunner/game"
	"mazerunner/pathfind"
	"mazerunner/utils"
)

// Runner walks the A* path to the goal and spends skills to get unstuck or to cover ground faster.
type Runner struct {
	board                game.Board
	extendedMove         bool
	teleport             bool
	wallBreak            bool
	roundsSinceWallBreak int
	steps                int
	shortestPath         pathfind.PathFunc
}

func NewRunner(rules game.Rules) *Runner {
	return &Runner{
		board:        game.NewBoard(rules, nil, rules.Start()),
		extendedMove: true,
		teleport:     true,
		shortestPath: pathfind.AStar,
	}
}

func (r *Runner) UpdateState(walls game.WallSet, player game.Position, roundsSinceWallBreak int) {
	r.board = r.board.WithWalls(walls.Clone()).WithPlayer(player)
	r.roundsSinceWallBreak = roundsSinceWallBreak
	r.wallBreak = roundsSinceWallBreak >= r.board.Rules.WallBreakThreshold
	r.extendedMove = true
	r.teleport = true
	r.steps++
}

// Steps is the number of decisions the runner has been asked for.
func (r *Runner) Steps() int {
	return r.steps
}

func (r *Runner) DecideMove() game.RunnerMove {
	b := r.board
	path := r.shortestPath(b, b.Player, b.Goal())
	if path == nil {
		return r.unblock()
	}
	if len(path) < 2 {
		return game.Step(b.Player)
	}
	if r.extendedMove && len(path) > 3 {
		if target, ok := r.extended(path); ok {
			return game.WithRunnerSkill(target, game.ExtendedMove)
		}
	}
	return game.Step(path[1])
}

// extended probes straight lines from the runner and returns the furthest path tile it can reach.
func (r *Runner) extended(path []game.Position) (game.Position, bool) {
	b := r.board
	best := 1
	for _, dir := range game.Orthogonal {
		for i := 1; i <= b.Rules.ExtendedRange; i++ {
			t := b.Player.Add(dir.Scale(i))
			if !b.Open(t) {
				break
			}
			if idx := utils.FindIndex(path, t); idx > best {
				best = idx
			}
		}
	}
	if best > 1 {
		return path[best], true
	}
	return game.Position{}, false
}

// unblock picks, in order: the best wall to break, the best tile to teleport to, or a stalling step.
func (r *Runner) unblock() game.RunnerMove {
	if r.wallBreak {
		if wall, ok := r.breakable(); ok {
			return game.WithRunnerSkill(wall, game.WallBreak)
		}
	}
	if r.teleport {
		if target, ok := r.teleportTarget(); ok {
			return game.WithRunnerSkill(target, game.Teleport)
		}
	}
	return r.stall()
}

type option struct {
	tile       game.Position
	pathLength int
	distance   int
}

func (o option) better(than option) bool {
	return o.pathLength < than.pathLength || (o.pathLength == than.pathLength && o.distance < than.distance)
}

var noOption = option{pathLength: math.MaxInt, distance: math.MaxInt}

func (r *Runner) breakable() (game.Position, bool) {
	b := r.board
	goal := b.Goal()
	best := noOption
	for _, wall := range b.Walls.Sorted() {
		walls := b.Walls.Clone()
		walls.Remove(wall)
		path := r.shortestPath(b.WithWalls(walls), b.Player, goal)
		if path == nil {
			continue
		}
		if o := (option{tile: wall, pathLength: len(path), distance: game.Manhattan(wall, goal)}); o.better(best) {
			best = o
		}
	}
	return best.tile, best != noOption
}

func (r *Runner) teleportTarget() (game.Position, bool) {
	b := r.board
	goal := b.Goal()
	radius := b.Rules.TeleportRadius
	best := noOption
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			t := b.Player.Add(game.Position{X: dx, Y: dy})
			if !b.Open(t) {
				continue
			}
			path := r.shortestPath(b, t, goal)
			if path == nil {
				continue
			}
			if o := (option{tile: t, pathLength: len(path), distance: game.Manhattan(t, goal)}); o.better(best) {
				best = o
			}
		}
	}
	return best.tile, best != noOption
}

func (r *Runner) stall() game.RunnerMove {
	b := r.board
	goal := b.Goal()
	moves := b.ValidMoves(b.Player)
	if len(moves) == 0 {
		return game.Step(b.Player)
	}
	best := moves[0]
	for _, m := range moves[1:] {
		if game.Manhattan(m, goal) < game.Manhattan(best, goal) {
			best = m
		}
	}
	return game.Step(best)
}
