// Package pathfind finds shortest 4-connected paths on the maze.
package pathfind

import "mazerunner/game"

// Graph yields the reachable neighbours of a tile. game.Board satisfies it.
type Graph interface {
	ValidMoves(pos game.Position) []game.Position
}

// PathFunc is the signature shared by BFS and AStar.
// A nil result means the goal is unreachable.
type PathFunc func(g Graph, start, goal game.Position) []game.Position

func reconstruct(parents map[game.Position]game.Position, start, goal game.Position) []game.Position {
	path := []game.Position{goal}
	for cur := goal; cur != start; {
		cur = parents[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
