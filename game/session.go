package game

import "github.com/sirupsen/logrus"

// Reveal uncovers the tile at (x, y). A mine costs one hit point; an
// empty tile floods outward. The first reveal of a Safe session first
// moves every mine out of the 3x3 block around the tile.
func (session *Session) Reveal(x, y int) {
	p := Point{x, y}
	if !session.accepts(p) {
		return
	}
	session.beginAction()

	if !session.hasRevealed && session.board.visibilityAt(p) == Hidden {
		session.hasRevealed = true

		if session.config.Mode == Safe {
			session.board.clearSurroundingMines(p)
		}
	}

	session.reveal(p)
	session.update()
}

// ToggleFlag flips a hidden tile to flagged and back. Revealed tiles
// are left alone.
func (session *Session) ToggleFlag(x, y int) {
	p := Point{x, y}
	if !session.accepts(p) {
		return
	}
	session.beginAction()

	board := session.board
	switch board.visibilityAt(p) {
	case Hidden:
		board.setVisibility(p, Flagged)
	case Flagged:
		board.setVisibility(p, Hidden)
	}
	session.update()
}

// Chord reveals every neighbor of a revealed numbered tile, but only when
// the number of flagged or detonated neighbors matches its clue.
func (session *Session) Chord(x, y int) {
	p := Point{x, y}
	if !session.accepts(p) {
		return
	}
	session.beginAction()

	if session.canChord(p) {
		for _, neighbor := range session.board.Neighbors(p) {
			session.reveal(neighbor)
		}
	}
	session.update()
}

func (session *Session) canChord(p Point) bool {
	board := session.board
	content := board.at(p)
	if board.visibilityAt(p) != Revealed || content.IsMine() || content == Empty {
		return false
	}
	return session.MarkedNeighbors(p.X, p.Y) == content.Clue()
}

// MarkedNeighbors counts the flagged or detonated tiles around (x, y)
func (session *Session) MarkedNeighbors(x, y int) int {
	board := session.board
	p := Point{x, y}
	if !board.InBounds(p) {
		return 0
	}

	numMarked := 0
	for _, neighbor := range board.Neighbors(p) {
		if board.visibilityAt(neighbor) == Flagged || board.at(neighbor) == DetonatedMine {
			numMarked++
		}
	}
	return numMarked
}

func (session *Session) accepts(p Point) bool {
	return session.outcome == InProgress && session.board.InBounds(p)
}

func (session *Session) beginAction() {
	session.actionCount++
	if session.startTime.IsZero() {
		session.startTime = session.now()
	}
}

func (session *Session) reveal(p Point) {
	board := session.board
	if board.visibilityAt(p) != Hidden {
		return
	}

	switch content := board.at(p); {
	case content.IsMine():
		session.hitPoints--
		board.detonate(p)
		board.setVisibility(p, Revealed)

		Log.WithFields(logrus.Fields{
			"tile":      p,
			"hitPoints": session.hitPoints,
		}).Debug("detonated mine")
	case content == Empty:
		board.flood(p)
	default:
		board.setVisibility(p, Revealed)
	}
}

func (session *Session) update() {
	switch {
	case session.hitPoints <= 0:
		session.finish(Lost)
	case session.board.allSafeRevealed():
		session.finish(Won)
	}
}

func (session *Session) finish(outcome Outcome) {
	session.outcome = outcome
	session.endTime = session.now()
	session.board.revealMines()

	Log.WithFields(logrus.Fields{
		"outcome":   outcome,
		"actions":   session.actionCount,
		"hitPoints": session.hitPoints,
		"elapsed":   session.Elapsed(),
	}).Debug("game over")
}
