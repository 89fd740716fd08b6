package game

import "github.com/gammazero/deque"

// flood reveals start and spreads through zero-clue tiles, revealing each
// hidden, non-mine neighbor of every zero tile it reaches. Flagged tiles
// and mines stop the spread. Each tile is queued at most once.
func (board *Board) flood(start Point) {
	var queue deque.Deque

	reveal := func(p Point) {
		board.setVisibility(p, Revealed)
		if board.at(p) == Empty {
			queue.PushBack(p)
		}
	}

	reveal(start)
	for queue.Len() > 0 {
		p := queue.PopFront().(Point)

		for _, neighbor := range board.Neighbors(p) {
			if board.visibilityAt(neighbor) == Hidden && !board.at(neighbor).IsMine() {
				reveal(neighbor)
			}
		}
	}
}
