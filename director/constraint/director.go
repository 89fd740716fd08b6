package constraint

import (
	"cmp"
	"fmt"
	"github.com/sirupsen/logrus"
	"github.com/they4kman/minesclone/director/random"
	"github.com/they4kman/minesclone/game"
	"github.com/they4kman/minesclone/util/collections"
	"math"
	"strings"
)

// Director plays by deduction from revealed clues, guessing only when no
// certain move exists.
type Director struct {
	session *game.Session
	board   *game.Board

	fallback random.Director
}

// Observation states that numMines of cells hold a mine, as read from
// the clue at origin
type Observation struct {
	origin   game.Point
	numMines int
	cells    collections.Set[game.Point]
}

func (observation Observation) String() string {
	var cellsRepr strings.Builder
	for i, cell := range observation.sortedCells() {
		if i > 0 {
			cellsRepr.WriteString(", ")
		}
		cellsRepr.WriteString(cell.String())
	}
	return fmt.Sprintf("Obs[%8s, %d ε %s]", observation.origin, observation.numMines, cellsRepr.String())
}

func (observation Observation) MineProbability() float64 {
	return float64(observation.numMines) / float64(len(observation.cells))
}

func (observation Observation) sortedCells() []game.Point {
	return observation.cells.Sorted(comparePoints)
}

func comparePoints(a, b game.Point) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}

func (director *Director) Init(session *game.Session) {
	director.session = session
	director.board = session.Board()
	director.fallback.Init(session)
}

func (director *Director) Act() bool {
	observations := director.observe()

	actors := []func([]*Observation) bool{
		director.actChord,
		director.actFlag,
		director.actDeliberate,
		director.actLowestProbability,
	}
	for _, actor := range actors {
		if actor(observations) {
			return true
		}
	}
	return director.fallback.Act()
}

// observe collects one observation per revealed clue that still borders
// hidden tiles
func (director *Director) observe() []*Observation {
	board := director.board

	var observations []*Observation
	for _, p := range board.Points() {
		content := board.Content(p.X, p.Y)
		if board.Visibility(p.X, p.Y) != game.Revealed || content.IsMine() || content == game.Empty {
			continue
		}

		observation := Observation{
			origin:   p,
			numMines: content.Clue() - director.session.MarkedNeighbors(p.X, p.Y),
			cells:    make(collections.Set[game.Point]),
		}
		for _, neighbor := range board.Neighbors(p) {
			if board.Visibility(neighbor.X, neighbor.Y) == game.Hidden {
				observation.cells.Add(neighbor)
			}
		}

		if len(observation.cells) > 0 {
			observations = append(observations, &observation)
		}
	}
	return observations
}

// actChord clears the rest of any clue whose mines are all flagged
func (director *Director) actChord(observations []*Observation) bool {
	for _, observation := range observations {
		if observation.numMines == 0 {
			game.Log.WithField("observation", observation).Debug("chord")
			director.session.Chord(observation.origin.X, observation.origin.Y)
			return true
		}
	}
	return false
}

// actFlag flags a tile of any clue whose hidden tiles must all be mines
func (director *Director) actFlag(observations []*Observation) bool {
	for _, observation := range observations {
		if observation.numMines == len(observation.cells) {
			director.flag(observation.sortedCells()[0])
			return true
		}
	}
	return false
}

// actDeliberate compares observations pairwise. When one observation's
// cells are a strict subset of another's, the leftover cells must hold
// the difference in mine counts.
func (director *Director) actDeliberate(observations []*Observation) bool {
	for _, inner := range observations {
		for _, outer := range observations {
			if inner == outer || len(inner.cells) >= len(outer.cells) {
				continue
			}
			if _, isSubset := inner.cells.IntersectionEx(outer.cells); !isSubset {
				continue
			}

			leftover := outer.cells.Difference(inner.cells)
			numMines := outer.numMines - inner.numMines
			cell := leftover.Sorted(comparePoints)[0]

			switch numMines {
			case 0:
				game.Log.WithFields(logrus.Fields{"inner": inner, "outer": outer}).Debug("deduced safe tile")
				director.session.Reveal(cell.X, cell.Y)
				return true
			case len(leftover):
				game.Log.WithFields(logrus.Fields{"inner": inner, "outer": outer}).Debug("deduced mine")
				director.flag(cell)
				return true
			}
		}
	}
	return false
}

// actLowestProbability guesses the observed tile least likely to hold a
// mine, unless a blind guess elsewhere is safer
func (director *Director) actLowestProbability(observations []*Observation) bool {
	if len(observations) == 0 {
		return false
	}

	// A tile is as risky as the most pessimistic clue that covers it
	cellProbabilities := make(map[game.Point]float64)
	for _, observation := range observations {
		probability := observation.MineProbability()
		for cell := range observation.cells {
			if past, ok := cellProbabilities[cell]; !ok || probability > past {
				cellProbabilities[cell] = probability
			}
		}
	}

	lowestProbability := math.Inf(1)
	var lowest game.Point
	for cell, probability := range cellProbabilities {
		if probability < lowestProbability ||
			(probability == lowestProbability && comparePoints(cell, lowest) < 0) {
			lowestProbability, lowest = probability, cell
		}
	}

	if lowestProbability > director.blindProbability(len(cellProbabilities)) {
		return false
	}

	game.Log.WithFields(logrus.Fields{
		"tile":        lowest,
		"probability": lowestProbability,
	}).Debug("guessing lowest probability")
	director.session.Reveal(lowest.X, lowest.Y)
	return true
}

// blindProbability estimates the mine odds of a hidden tile no clue
// touches, given how many hidden tiles are constrained
func (director *Director) blindProbability(numConstrained int) float64 {
	numHidden := 0
	for _, p := range director.board.Points() {
		if director.board.Visibility(p.X, p.Y) == game.Hidden {
			numHidden++
		}
	}

	numUnconstrained := numHidden - numConstrained
	if numUnconstrained <= 0 {
		return math.Inf(1)
	}
	return float64(director.session.RemainingMines()) / float64(numHidden)
}

func (director *Director) flag(cell game.Point) {
	if director.board.Visibility(cell.X, cell.Y) == game.Hidden {
		director.session.ToggleFlag(cell.X, cell.Y)
	}
}
