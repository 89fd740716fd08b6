package game

import (
	"fmt"
	"github.com/sirupsen/logrus"
	"math/rand/v2"
)

type Board struct {
	width, height int // in number of tiles
	numMines      int
	numFlags      int

	content    [][]Content
	visibility [][]Visibility

	rand *rand.Rand
}

func newBoard(width, height int, r *rand.Rand) *Board {
	board := Board{
		width:      width,
		height:     height,
		content:    make([][]Content, height),
		visibility: make([][]Visibility, height),
		rand:       r,
	}
	for y := 0; y < height; y++ {
		board.content[y] = make([]Content, width)
		board.visibility[y] = make([]Visibility, width)
	}
	return &board
}

func (board *Board) Width() int {
	return board.width
}

func (board *Board) Height() int {
	return board.height
}

func (board *Board) NumCells() int {
	return board.width * board.height
}

func (board *Board) NumMines() int {
	return board.numMines
}

func (board *Board) NumFlags() int {
	return board.numFlags
}

// Content returns the tile's content; out-of-bounds tiles read as Empty
func (board *Board) Content(x, y int) Content {
	p := Point{x, y}
	if !board.InBounds(p) {
		return Empty
	}
	return board.at(p)
}

// Visibility returns the tile's visibility; out-of-bounds tiles read as Hidden
func (board *Board) Visibility(x, y int) Visibility {
	p := Point{x, y}
	if !board.InBounds(p) {
		return Hidden
	}
	return board.visibilityAt(p)
}

// Points returns every tile, row by row
func (board *Board) Points() []Point {
	points := make([]Point, 0, board.NumCells())
	for y := 0; y < board.height; y++ {
		for x := 0; x < board.width; x++ {
			points = append(points, Point{x, y})
		}
	}
	return points
}

func (board *Board) at(p Point) Content {
	return board.content[p.Y][p.X]
}

func (board *Board) visibilityAt(p Point) Visibility {
	return board.visibility[p.Y][p.X]
}

func (board *Board) set(p Point, content Content) {
	board.content[p.Y][p.X] = content
}

func (board *Board) setVisibility(p Point, visibility Visibility) {
	switch {
	case visibility == Flagged && board.visibilityAt(p) != Flagged:
		board.numFlags++
	case visibility != Flagged && board.visibilityAt(p) == Flagged:
		board.numFlags--
	}
	board.visibility[p.Y][p.X] = visibility
}

// placeMine turns p into a mine and bumps the clue of every non-mine
// neighbor. It is a no-op if p already holds a mine.
func (board *Board) placeMine(p Point) bool {
	if board.at(p).IsMine() {
		return false
	}
	board.set(p, Mine)
	board.numMines++

	for _, neighbor := range board.Neighbors(p) {
		if content := board.at(neighbor); !content.IsMine() {
			board.set(neighbor, content+1)
		}
	}
	return true
}

// removeMine clears the mine at p, decrements its neighbors' clues and
// recounts the clue of the vacated tile.
func (board *Board) removeMine(p Point) bool {
	if !board.at(p).IsMine() {
		return false
	}
	board.numMines--

	for _, neighbor := range board.Neighbors(p) {
		if content := board.at(neighbor); !content.IsMine() {
			board.set(neighbor, content-1)
		}
	}
	board.set(p, Content(board.countMines(p)))
	return true
}

// clearSurroundingMines moves every mine in the 3x3 block around center
// to a random mine-free tile outside of that block.
func (board *Board) clearSurroundingMines(center Point) {
	for _, p := range board.SelfNeighbors(center) {
		if !board.at(p).IsMine() {
			continue
		}

		candidates := make([]Point, 0, board.NumCells())
		for _, candidate := range board.Points() {
			if !candidate.Within(center) && !board.at(candidate).IsMine() {
				candidates = append(candidates, candidate)
			}
		}
		if len(candidates) == 0 {
			Log.WithFields(logrus.Fields{
				"mine":   p,
				"center": center,
			}).Warn("no free tile to relocate mine to")
			continue
		}

		dest := candidates[board.rand.IntN(len(candidates))]
		board.removeMine(p)
		board.placeMine(dest)

		Log.WithFields(logrus.Fields{
			"from": p,
			"to":   dest,
		}).Debug("relocated mine")
	}
}

// detonate marks a mine as stepped on; it stays a mine for every count
func (board *Board) detonate(p Point) {
	board.set(p, DetonatedMine)
}

// allSafeRevealed reports whether every non-mine tile is Revealed
func (board *Board) allSafeRevealed() bool {
	for y := 0; y < board.height; y++ {
		for x := 0; x < board.width; x++ {
			if !board.content[y][x].IsMine() && board.visibility[y][x] != Revealed {
				return false
			}
		}
	}
	return true
}

// revealMines exposes every mine that isn't flagged
func (board *Board) revealMines() {
	for _, p := range board.Points() {
		if board.at(p).IsMine() && board.visibilityAt(p) != Flagged {
			board.setVisibility(p, Revealed)
		}
	}
}

// Verify checks the board's internal consistency. Any error it returns
// is a bug in the engine, not a gameplay condition.
func (board *Board) Verify() error {
	if len(board.content) != board.height || len(board.visibility) != board.height {
		return fmt.Errorf("grid height mismatch: content %d, visibility %d, want %d",
			len(board.content), len(board.visibility), board.height)
	}

	numMines, numFlags := 0, 0
	for y := 0; y < board.height; y++ {
		if len(board.content[y]) != board.width || len(board.visibility[y]) != board.width {
			return fmt.Errorf("grid width mismatch in row %d", y)
		}
		for x := 0; x < board.width; x++ {
			p := Point{x, y}
			content := board.at(p)
			if content.IsMine() {
				numMines++
			} else if want := board.countMines(p); int(content) != want {
				return fmt.Errorf("tile %v has %v, want Clue(%d)", p, content, want)
			}
			if board.visibilityAt(p) == Flagged {
				numFlags++
			}
		}
	}

	if numMines != board.numMines {
		return fmt.Errorf("board has %d mines, want %d", numMines, board.numMines)
	}
	if numFlags != board.numFlags {
		return fmt.Errorf("board has %d flags, want %d", numFlags, board.numFlags)
	}
	return nil
}
