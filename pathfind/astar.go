package pathfind

import (
	"container/heap"

	"mazerunner/game"
)

type item struct {
	pos      game.Position
	priority int
	seq      int
}

// queue orders by f = g + h, then by insertion order.
type queue []item

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].seq < q[j].seq
}
func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x any)   { *q = append(*q, x.(item)) }
func (q *queue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

// AStar returns a shortest path from start to goal inclusive, or nil, guided by the Manhattan heuristic.
func AStar(g Graph, start, goal game.Position) []game.Position {
	parents := map[game.Position]game.Position{}
	cost := map[game.Position]int{start: 0}
	closed := map[game.Position]bool{}
	open := &queue{{pos: start, priority: game.Manhattan(start, goal)}}
	seq := 1

	for open.Len() > 0 {
		cur := heap.Pop(open).(item).pos
		if cur == goal {
			return reconstruct(parents, start, goal)
		}
		if closed[cur] {
			continue
		}
		closed[cur] = true
		for _, next := range g.ValidMoves(cur) {
			c := cost[cur] + 1
			if old, seen := cost[next]; seen && c >= old {
				continue
			}
			cost[next] = c
			parents[next] = cur
			heap.Push(open, item{pos: next, priority: c + game.Manhattan(next, goal), seq: seq})
			seq++
		}
	}
	return nil
}
