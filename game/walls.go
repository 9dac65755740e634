package game

import (
	"encoding/json"
	"sort"
)

// SegmentLength is the number of tiles in a single wall placement.
const SegmentLength = 3

// WallSet is the set of occupied tiles.
type WallSet map[Position]struct{}

func NewWallSet(tiles ...Position) WallSet {
	w := make(WallSet, len(tiles))
	w.Add(tiles...)
	return w
}

func (w WallSet) Has(p Position) bool {
	_, ok := w[p]
	return ok
}

func (w WallSet) Add(tiles ...Position) {
	for _, t := range tiles {
		w[t] = struct{}{}
	}
}

func (w WallSet) Remove(p Position) {
	delete(w, p)
}

func (w WallSet) Len() int {
	return len(w)
}

func (w WallSet) Clone() WallSet {
	c := make(WallSet, len(w))
	for t := range w {
		c[t] = struct{}{}
	}
	return c
}

// With returns a copy of the set with tiles added. The receiver is left unchanged.
func (w WallSet) With(tiles ...Position) WallSet {
	c := make(WallSet, len(w)+len(tiles))
	for t := range w {
		c[t] = struct{}{}
	}
	c.Add(tiles...)
	return c
}

// Sorted returns the tiles ordered by X, then Y.
func (w WallSet) Sorted() []Position {
	tiles := make([]Position, 0, len(w))
	for t := range w {
		tiles = append(tiles, t)
	}
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].X != tiles[j].X {
			return tiles[i].X < tiles[j].X
		}
		return tiles[i].Y < tiles[j].Y
	})
	return tiles
}

// Fingerprint encodes the in-bounds tiles of a size×size grid as a bitmap.
// Two sets share a fingerprint iff they hold the same tiles.
func (w WallSet) Fingerprint(size int) string {
	bits := make([]byte, (size*size+7)/8)
	for t := range w {
		if t.X < 0 || t.Y < 0 || t.X >= size || t.Y >= size {
			continue
		}
		i := t.Y*size + t.X
		bits[i/8] |= 1 << (i % 8)
	}
	return string(bits)
}

// MarshalJSON encodes the set as a sorted list of tiles.
func (w WallSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Sorted())
}

func (w *WallSet) UnmarshalJSON(data []byte) error {
	var tiles []Position
	if err := json.Unmarshal(data, &tiles); err != nil {
		return err
	}
	*w = NewWallSet(tiles...)
	return nil
}

// StraightSegment returns the tiles of a wall starting at anchor, laid out rightwards when
// horizontal and downwards otherwise.
func StraightSegment(anchor Position, horizontal bool) []Position {
	step := Position{X: 0, Y: 1}
	if horizontal {
		step = Position{X: 1, Y: 0}
	}
	return segment(anchor, step)
}

// DiagonalSegment returns the tiles of a diagonal wall starting at anchor.
func DiagonalSegment(anchor Position, direction Direction) []Position {
	step := Position{X: 1, Y: 1}
	if direction == UpperRightToLowerLeft {
		step = Position{X: -1, Y: 1}
	}
	return segment(anchor, step)
}

func segment(anchor, step Position) []Position {
	tiles := make([]Position, SegmentLength)
	for i := range tiles {
		tiles[i] = anchor.Add(step.Scale(i))
	}
	return tiles
}
