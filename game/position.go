package game

import (
	"fmt"

	"mazerunner/utils"
)

// Position is a tile on the grid, X is the column and Y the row.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Orthogonal steps in the order neighbours are generated: left, right, up, down.
var Orthogonal = []Position{{X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 1}}

func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Position) Scale(k int) Position {
	return Position{X: p.X * k, Y: p.Y * k}
}

// Manhattan returns |dx| + |dy| between two tiles.
func Manhattan(a, b Position) int {
	return utils.Abs(a.X-b.X) + utils.Abs(a.Y-b.Y)
}

// Chebyshev returns max(|dx|, |dy|) between two tiles.
func Chebyshev(a, b Position) int {
	return max(utils.Abs(a.X-b.X), utils.Abs(a.Y-b.Y))
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
