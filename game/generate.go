package game

import (
	"github.com/sirupsen/logrus"
)

// fillByDensity rolls each tile independently; density is a percentage
func (board *Board) fillByDensity(density int) {
	for _, p := range board.Points() {
		if board.rand.IntN(100) < density {
			board.placeMine(p)
		}
	}
}

// fillByCount places exactly target mines. It starts with a random walk
// from a random tile, laying a mine on each step, and tops up whatever
// the walk left short with uniformly random tiles.
func (board *Board) fillByCount(target int) {
	if target >= board.NumCells() {
		target = board.NumCells() - 1
	}

	// Shortfall from a capped walk is sampled below
	maxSteps := 4 * board.NumCells()

	p := board.randomPoint()
	steps := 0
	for board.InBounds(p) && board.numMines < target && steps < maxSteps {
		board.placeMine(p)

		offset := neighborOffsets[board.rand.IntN(len(neighborOffsets))]
		p = p.Add(offset.X, offset.Y)
		steps++
	}
	walked := board.numMines

	for board.numMines < target {
		board.placeMine(board.randomPoint())
	}

	Log.WithFields(logrus.Fields{
		"walked":  walked,
		"sampled": board.numMines - walked,
		"steps":   steps,
	}).Debug("placed mines by count")
}

func (board *Board) randomPoint() Point {
	return Point{board.rand.IntN(board.width), board.rand.IntN(board.height)}
}
