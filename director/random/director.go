package random

import (
	"github.com/they4kman/minesclone/game"
)

// Director reveals hidden tiles in an order shuffled once at Init
type Director struct {
	session *game.Session
	order   []game.Point
}

func (director *Director) Init(session *game.Session) {
	director.session = session
	director.order = session.Board().Points()

	session.Rand().Shuffle(len(director.order), func(i, j int) {
		director.order[i], director.order[j] = director.order[j], director.order[i]
	})
}

func (director *Director) Act() bool {
	board := director.session.Board()

	// Revealed tiles stay revealed, so they can be dropped for good
	for len(director.order) > 0 {
		p := director.order[0]
		if board.Visibility(p.X, p.Y) != game.Revealed {
			break
		}
		director.order = director.order[1:]
	}

	for _, p := range director.order {
		if board.Visibility(p.X, p.Y) == game.Hidden {
			director.session.Reveal(p.X, p.Y)
			return true
		}
	}
	return false
}
