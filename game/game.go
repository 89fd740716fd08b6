package game

import (
	"github.com/sirupsen/logrus"
	"math/rand/v2"
	"time"
)

// Log receives engine events. It is silent below Info unless the caller
// lowers its level.
var Log = logrus.New()

// pcgStream is the fixed second half of every session's PCG seed
const pcgStream = 0x6d696e6573

type GameConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Generation GenerationMode `yaml:"generation"`
	// Percentage of tiles to mine, used with ByDensity
	Density int `yaml:"density"`
	// Exact number of mines, used with ByCount
	NumMines int `yaml:"mines"`

	HitPoints int      `yaml:"hp"`
	Mode      GameMode `yaml:"mode"`

	Seed int64 `yaml:"seed"`
}

func NewGameConfig() GameConfig {
	return GameConfig{
		Width:      30,
		Height:     16,
		Generation: ByCount,
		Density:    20,
		NumMines:   99,
		HitPoints:  3,
		Mode:       Safe,
	}
}

// Normalize clamps every field into its legal range
func (config GameConfig) Normalize() GameConfig {
	config.Width = clamp(config.Width, MinBoardSize, MaxBoardSize)
	config.Height = clamp(config.Height, MinBoardSize, MaxBoardSize)
	config.Density = clamp(config.Density, 0, 100)
	config.NumMines = clamp(config.NumMines, 0, config.Width*config.Height-1)
	if config.HitPoints < 1 {
		config.HitPoints = 1
	}
	if config.Generation != ByDensity {
		config.Generation = ByCount
	}
	if config.Mode != Classic {
		config.Mode = Safe
	}
	return config
}

func (config GameConfig) createBoard() *Board {
	board := newBoard(config.Width, config.Height, newRand(config.Seed))

	switch config.Generation {
	case ByDensity:
		board.fillByDensity(config.Density)
	default:
		board.fillByCount(config.NumMines)
	}
	return board
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), pcgStream))
}

// Session is a single game: one board, the player's hit points and the
// outcome so far. It is not safe for concurrent use.
type Session struct {
	config GameConfig
	board  *Board

	hitPoints   int
	actionCount int
	outcome     Outcome
	hasRevealed bool

	now                func() time.Time
	startTime, endTime time.Time
}

// NewSession generates a fresh board from config, after clamping it
func NewSession(config GameConfig) *Session {
	config = config.Normalize()

	session := &Session{
		config:    config,
		hitPoints: config.HitPoints,
		outcome:   Generating,
		now:       time.Now,
	}
	session.board = config.createBoard()
	session.outcome = InProgress

	Log.WithFields(logrus.Fields{
		"width":  config.Width,
		"height": config.Height,
		"mines":  session.board.numMines,
		"seed":   config.Seed,
	}).Debug("started session")

	return session
}

// NewSessionFromLayout starts a session on a fixed board, as read by
// ParseLayout. Width, height and mine settings of config are ignored.
func NewSessionFromLayout(layout string, config GameConfig) (*Session, error) {
	config = config.Normalize()

	board, err := parseLayout(layout, newRand(config.Seed))
	if err != nil {
		return nil, err
	}
	config.Width, config.Height = board.width, board.height
	config.Generation, config.NumMines = ByCount, board.numMines

	session := &Session{
		config:    config,
		board:     board,
		hitPoints: config.HitPoints,
		outcome:   InProgress,
		now:       time.Now,
	}
	for _, p := range board.Points() {
		if board.visibilityAt(p) == Revealed {
			session.hasRevealed = true
			break
		}
	}
	return session, nil
}

// Next starts a new session with the same settings and a fresh seed
func (session *Session) Next() *Session {
	config := session.config
	config.Seed = session.board.rand.Int64()
	return NewSession(config)
}

func (session *Session) Board() *Board {
	return session.board
}

func (session *Session) Config() GameConfig {
	return session.config
}

func (session *Session) Rand() *rand.Rand {
	return session.board.rand
}

func (session *Session) Content(x, y int) Content {
	return session.board.Content(x, y)
}

func (session *Session) Visibility(x, y int) Visibility {
	return session.board.Visibility(x, y)
}

func (session *Session) Outcome() Outcome {
	return session.outcome
}

func (session *Session) HitPoints() int {
	return session.hitPoints
}

func (session *Session) ActionCount() int {
	return session.actionCount
}

// RemainingMines is the mine count minus the flags placed. It goes
// negative when the player over-flags.
func (session *Session) RemainingMines() int {
	return session.board.numMines - session.board.numFlags
}

// WrongFlag reports a flag on a safe tile, once the game is over
func (session *Session) WrongFlag(x, y int) bool {
	if !session.outcome.IsTerminal() {
		return false
	}
	return session.Visibility(x, y) == Flagged && !session.Content(x, y).IsMine()
}

// Elapsed is the time from the first accepted action until the game
// ended, or until now while it is still running.
func (session *Session) Elapsed() time.Duration {
	switch {
	case session.startTime.IsZero():
		return 0
	case session.endTime.IsZero():
		return session.now().Sub(session.startTime)
	default:
		return session.endTime.Sub(session.startTime)
	}
}

func clamp(n, lo, hi int) int {
	switch {
	case n < lo:
		return lo
	case n > hi:
		return hi
	}
	return n
}
