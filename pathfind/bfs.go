package pathfind

import "mazerunner/game"

// BFS returns a shortest path from start to goal inclusive, or nil.
func BFS(g Graph, start, goal game.Position) []game.Position {
	if start == goal {
		return []game.Position{start}
	}
	parents := map[game.Position]game.Position{}
	visited := map[game.Position]bool{start: true}
	frontier := []game.Position{start}
	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]
		for _, next := range g.ValidMoves(cur) {
			if visited[next] {
				continue
			}
			visited[next] = true
			parents[next] = cur
			if next == goal {
				return reconstruct(parents, start, goal)
			}
			frontier = append(frontier, next)
		}
	}
	return nil
}
