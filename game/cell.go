package game

import "fmt"

// Point addresses a tile; (0, 0) is the top-left corner
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

func (p Point) Add(dx, dy int) Point {
	return Point{p.X + dx, p.Y + dy}
}

// Within reports whether p lies in the 3x3 block centered on center
func (p Point) Within(center Point) bool {
	return abs(p.X-center.X) <= 1 && abs(p.Y-center.Y) <= 1
}

// neighborOffsets lists the Moore neighborhood, without the zero offset
var neighborOffsets = [8]Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

func (board *Board) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < board.width && p.Y < board.height
}

// Neighbors returns the up-to-8 tiles around p, clipped at the edges
func (board *Board) Neighbors(p Point) []Point {
	neighbors := make([]Point, 0, len(neighborOffsets))
	for _, offset := range neighborOffsets {
		neighbor := p.Add(offset.X, offset.Y)
		if board.InBounds(neighbor) {
			neighbors = append(neighbors, neighbor)
		}
	}
	return neighbors
}

// SelfNeighbors returns p followed by its neighbors
func (board *Board) SelfNeighbors(p Point) []Point {
	return append([]Point{p}, board.Neighbors(p)...)
}

func (board *Board) countMines(p Point) int {
	numMines := 0
	for _, neighbor := range board.Neighbors(p) {
		if board.at(neighbor).IsMine() {
			numMines++
		}
	}
	return numMines
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
