package game

// Board is a snapshot of the grid: its rules, the walls and the runner's tile.
// Methods never mutate the receiver's walls.
type Board struct {
	Rules  Rules    `json:"rules"`
	Walls  WallSet  `json:"walls"`
	Player Position `json:"player"`
}

func NewBoard(rules Rules, walls WallSet, player Position) Board {
	if walls == nil {
		walls = NewWallSet()
	}
	return Board{Rules: rules, Walls: walls, Player: player}
}

func (b Board) Goal() Position {
	return b.Rules.Goal()
}

func (b Board) WithWalls(walls WallSet) Board {
	b.Walls = walls
	return b
}

func (b Board) WithPlayer(player Position) Board {
	b.Player = player
	return b
}

// Open reports whether a tile is inside the grid and not a wall.
func (b Board) Open(p Position) bool {
	return b.Rules.InBounds(p) && !b.Walls.Has(p)
}

// ValidMoves returns the orthogonal neighbours of pos that are in bounds and not walls.
func (b Board) ValidMoves(pos Position) []Position {
	moves := make([]Position, 0, len(Orthogonal))
	for _, d := range Orthogonal {
		next := pos.Add(d)
		if b.Open(next) {
			moves = append(moves, next)
		}
	}
	return moves
}

// IsValidWall reports whether a straight 3-tile wall can be placed at (x, y).
func (b Board) IsValidWall(x, y int, horizontal bool) bool {
	return b.placeable(StraightSegment(Position{X: x, Y: y}, horizontal))
}

// IsValidDiagonalWall reports whether a diagonal 3-tile wall can be placed at (x, y).
func (b Board) IsValidDiagonalWall(x, y int, direction Direction) bool {
	return b.placeable(DiagonalSegment(Position{X: x, Y: y}, direction))
}

// ValidDiagonalDirection returns the first direction in which a diagonal wall fits at anchor.
func (b Board) ValidDiagonalDirection(anchor Position) (Direction, bool) {
	for _, d := range Directions {
		if b.IsValidDiagonalWall(anchor.X, anchor.Y, d) {
			return d, true
		}
	}
	return UpperLeftToLowerRight, false
}

func (b Board) placeable(tiles []Position) bool {
	goal := b.Goal()
	for _, t := range tiles {
		if !b.Open(t) || t == b.Player || t == goal || b.Rules.Protected(t) {
			return false
		}
	}
	return true
}

// Coverage is the fraction of grid tiles occupied by walls.
func (b Board) Coverage() float64 {
	return float64(b.Walls.Len()) / float64(b.Rules.Tiles())
}
