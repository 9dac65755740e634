package agent

import (
	"mazerunner/game"
	"mazerunner/pathfind"
)

// fallback is the master's heuristic policy. Each skill is tried in turn, gated by the
// difficulty, before settling on a random strategic wall.
func (m *Master) fallback(allowSkills bool) game.MasterMove {
	b := m.board
	candidates := m.generator.Strategic(b)
	if len(candidates) == 0 {
		return game.MasterMove{Anchor: game.Position{X: 0, Y: 0}, Horizontal: false}
	}
	if allowSkills {
		if move, ok := m.fallbackSkill(candidates); ok {
			return move
		}
	}
	return candidates[m.rng.Intn(len(candidates))]
}

func (m *Master) fallbackSkill(candidates []game.MasterMove) (game.MasterMove, bool) {
	b := m.board
	if m.skills.Available(game.DoubleWall) && len(candidates) >= 2 && m.roll() {
		move := candidates[0]
		move.Skill = game.DoubleWall
		return move, true
	}

	if m.skills.Available(game.DiagonalWall) && m.roll() {
		path := pathfind.BFS(b, b.Player, b.Goal())
		if len(path) > 2 {
			mid := path[len(path)/2]
			limit := b.Rules.Size - 2
			if mid.X >= 0 && mid.X < limit && mid.Y >= 0 && mid.Y < limit {
				if dir, ok := b.ValidDiagonalDirection(mid); ok {
					return game.MasterMove{Anchor: mid, Horizontal: true, Direction: dir, Skill: game.DiagonalWall}, true
				}
			}
		}
	}

	if m.skills.Available(game.ForcedTeleport) && m.roll() {
		path := pathfind.BFS(b, b.Player, b.Goal())
		if path != nil && len(path) < b.Rules.Size/2 {
			return game.MasterMove{Anchor: game.Position{X: 0, Y: 0}, Skill: game.ForcedTeleport}, true
		}
	}
	return game.MasterMove{}, false
}

func (m *Master) roll() bool {
	return m.rng.Float64() < m.difficulty
}
