package game

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Layout characters, one per tile:
//
//	#  hidden      .  revealed      f  flagged
//	O  hidden mine F  flagged mine  *  detonated mine
const (
	layoutHidden        = '#'
	layoutRevealed      = '.'
	layoutFlagged       = 'f'
	layoutMine          = 'O'
	layoutFlaggedMine   = 'F'
	layoutDetonatedMine = '*'
)

func (board *Board) serializeTile(p Point) byte {
	content, visibility := board.at(p), board.visibilityAt(p)
	switch {
	case content == DetonatedMine:
		return layoutDetonatedMine
	case content.IsMine() && visibility == Flagged:
		return layoutFlaggedMine
	case content.IsMine():
		return layoutMine
	case visibility == Flagged:
		return layoutFlagged
	case visibility == Revealed:
		return layoutRevealed
	default:
		return layoutHidden
	}
}

// deserializeTile applies c to p, returning false for unknown characters.
// Mine content is applied through placeMine so clues stay consistent.
func (board *Board) deserializeTile(p Point, c byte) bool {
	switch c {
	case layoutMine, layoutFlaggedMine, layoutDetonatedMine:
		board.placeMine(p)

		switch c {
		case layoutDetonatedMine:
			board.detonate(p)
			board.setVisibility(p, Revealed)
		case layoutFlaggedMine:
			board.setVisibility(p, Flagged)
		}
	case layoutFlagged:
		board.setVisibility(p, Flagged)
	case layoutRevealed:
		board.setVisibility(p, Revealed)
	case layoutHidden:
	default:
		return false
	}
	return true
}

// String renders the board in the layout format read by ParseLayout
func (board *Board) String() string {
	var out strings.Builder
	for y := 0; y < board.height; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		for x := 0; x < board.width; x++ {
			out.WriteByte(board.serializeTile(Point{x, y}))
		}
	}
	return out.String()
}

// ParseLayout builds a board from rows of layout characters. Leading and
// trailing whitespace on each row is ignored, as are blank lines.
func ParseLayout(layout string) (*Board, error) {
	return parseLayout(layout, newRand(0))
}

func parseLayout(layout string, r *rand.Rand) (*Board, error) {
	var rows []string
	for _, row := range strings.Split(layout, "\n") {
		if row = strings.TrimSpace(row); row != "" {
			rows = append(rows, row)
		}
	}

	height := len(rows)
	if height < MinBoardSize || height > MaxBoardSize {
		return nil, fmt.Errorf("layout has %d rows, want %d to %d", height, MinBoardSize, MaxBoardSize)
	}
	width := len(rows[0])
	if width < MinBoardSize || width > MaxBoardSize {
		return nil, fmt.Errorf("layout has %d columns, want %d to %d", width, MinBoardSize, MaxBoardSize)
	}

	board := newBoard(width, height, r)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("layout row %d has %d columns, want %d", y, len(row), width)
		}
		for x := 0; x < width; x++ {
			if !board.deserializeTile(Point{x, y}, row[x]) {
				return nil, fmt.Errorf("layout tile (%d, %d): unknown character %q", x, y, row[x])
			}
		}
	}
	return board, nil
}
