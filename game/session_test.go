package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cornerLayout hides one safe tile behind three mines, so the rest of the
// board can be flooded open without finishing the game
const cornerLayout = `
	#O###
	OO###
	#####
	#####
	#####
`

const singleMineLayout = `
	O##
	###
	###
`

func TestRevealMineCostsHitPoint(t *testing.T) {
	session := newLayoutSession(t, cornerLayout, Safe, 3)

	session.Reveal(4, 4)
	require.Equal(t, InProgress, session.Outcome())
	require.Equal(t, Hidden, session.Visibility(0, 0))

	session.Reveal(1, 0)

	assert.Equal(t, 2, session.HitPoints())
	assert.Equal(t, DetonatedMine, session.Content(1, 0))
	assert.Equal(t, Revealed, session.Visibility(1, 0))
	assert.Equal(t, InProgress, session.Outcome())
	assert.Equal(t, 2, session.ActionCount())
	require.NoError(t, session.Board().Verify())
}

func TestLastHitPointLoses(t *testing.T) {
	session := newLayoutSession(t, cornerLayout, Safe, 1)

	session.Reveal(4, 4)
	session.ToggleFlag(0, 1)
	session.Reveal(1, 0)

	assert.Equal(t, 0, session.HitPoints())
	assert.Equal(t, Lost, session.Outcome())
	assert.Equal(t, Revealed, session.Visibility(1, 1), "unflagged mines are shown")
	assert.Equal(t, Flagged, session.Visibility(0, 1), "flagged mines stay flagged")
	assert.Equal(t, Hidden, session.Visibility(0, 0))
}

func TestLossIsSticky(t *testing.T) {
	session := newLayoutSession(t, cornerLayout, Safe, 1)
	session.Reveal(4, 4)
	session.Reveal(1, 0)
	require.Equal(t, Lost, session.Outcome())
	before := session.Board().String()

	session.Reveal(0, 0)
	session.ToggleFlag(0, 0)
	session.Chord(2, 2)

	assert.Equal(t, Lost, session.Outcome())
	assert.Equal(t, before, session.Board().String())
	assert.Equal(t, 2, session.ActionCount())
}

func TestWinAfterDetonation(t *testing.T) {
	session := newLayoutSession(t, cornerLayout, Safe, 3)

	session.Reveal(4, 4)
	session.Reveal(1, 0)
	session.ToggleFlag(0, 1)
	session.Reveal(0, 0)

	assert.Equal(t, Won, session.Outcome())
	assert.Equal(t, 2, session.HitPoints())
	assert.Equal(t, Revealed, session.Visibility(1, 1))
	assert.Equal(t, Flagged, session.Visibility(0, 1))
	for _, p := range session.Board().Points() {
		if !session.Board().at(p).IsMine() {
			assert.Equal(t, Revealed, session.Board().visibilityAt(p), "tile %v", p)
		}
	}
}

func TestWrongFlagAfterLoss(t *testing.T) {
	session := newLayoutSession(t, cornerLayout, Safe, 1)

	session.Reveal(4, 4)
	session.ToggleFlag(0, 0)
	assert.False(t, session.WrongFlag(0, 0), "only reported once the game is over")

	session.Reveal(1, 0)

	require.Equal(t, Lost, session.Outcome())
	assert.True(t, session.WrongFlag(0, 0))
	assert.False(t, session.WrongFlag(1, 1))
	assert.Equal(t, Flagged, session.Visibility(0, 0))
}

func TestToggleFlag(t *testing.T) {
	session := newLayoutSession(t, singleMineLayout, Classic, 3)

	session.ToggleFlag(2, 2)
	assert.Equal(t, Flagged, session.Visibility(2, 2))
	assert.Equal(t, Empty, session.Content(2, 2))
	assert.Equal(t, 0, session.RemainingMines())

	session.ToggleFlag(2, 2)
	assert.Equal(t, Hidden, session.Visibility(2, 2))
	assert.Equal(t, Empty, session.Content(2, 2))
	assert.Equal(t, 1, session.RemainingMines())

	session.Reveal(1, 1)
	session.ToggleFlag(1, 1)
	assert.Equal(t, Revealed, session.Visibility(1, 1), "revealed tiles can't be flagged")
	require.NoError(t, session.Board().Verify())
}

func TestRevealIgnoresFlaggedTile(t *testing.T) {
	session := newLayoutSession(t, singleMineLayout, Classic, 3)

	session.ToggleFlag(0, 0)
	session.Reveal(0, 0)

	assert.Equal(t, 3, session.HitPoints())
	assert.Equal(t, Mine, session.Content(0, 0))
	assert.Equal(t, Flagged, session.Visibility(0, 0))
}

func TestOutOfBoundsActionsAreIgnored(t *testing.T) {
	session := NewSession(NewGameConfig())
	before := session.Board().String()

	session.Reveal(-1, 0)
	session.Reveal(30, 0)
	session.ToggleFlag(0, 16)
	session.Chord(-5, -5)

	assert.Equal(t, 0, session.ActionCount())
	assert.Equal(t, before, session.Board().String())
	assert.Equal(t, time.Duration(0), session.Elapsed())
	assert.Equal(t, InProgress, session.Outcome())
}

func TestChord(t *testing.T) {
	session := newLayoutSession(t, singleMineLayout, Classic, 3)
	session.Reveal(1, 1)
	require.Equal(t, Number1, session.Content(1, 1))
	before := session.Board().String()

	session.Chord(1, 1)
	assert.Equal(t, before, session.Board().String(), "no flags, no chord")

	session.ToggleFlag(0, 0)
	session.Chord(1, 1)

	assert.Equal(t, Won, session.Outcome())
	assert.Equal(t, 3, session.HitPoints())
	assert.Equal(t, Flagged, session.Visibility(0, 0))
}

func TestChordOnWrongFlagDetonates(t *testing.T) {
	session := newLayoutSession(t, singleMineLayout, Classic, 1)
	session.Reveal(1, 1)
	session.ToggleFlag(2, 2)

	session.Chord(1, 1)

	assert.Equal(t, Lost, session.Outcome())
	assert.Equal(t, DetonatedMine, session.Content(0, 0))
	assert.True(t, session.WrongFlag(2, 2))
}

func TestChordCountsDetonatedMines(t *testing.T) {
	session := newLayoutSession(t, singleMineLayout, Classic, 3)
	session.Reveal(1, 1)
	session.Reveal(0, 0)
	require.Equal(t, 2, session.HitPoints())

	session.Chord(1, 1)

	assert.Equal(t, Won, session.Outcome())
	assert.Equal(t, 2, session.HitPoints())
}

func TestChordIgnoresUnsatisfiedTiles(t *testing.T) {
	session := newLayoutSession(t, cornerLayout, Classic, 3)
	session.ToggleFlag(1, 0)
	before := session.Board().String()

	session.Chord(2, 2)
	session.Chord(1, 0)
	assert.Equal(t, before, session.Board().String(), "hidden and flagged tiles")

	session.Reveal(4, 4)
	require.Equal(t, InProgress, session.Outcome())
	require.Equal(t, Empty, session.Content(4, 4))
	require.Equal(t, Number1, session.Content(2, 2))
	before = session.Board().String()

	session.Chord(4, 4)
	assert.Equal(t, before, session.Board().String(), "zero tiles")

	session.Chord(2, 2)
	assert.Equal(t, before, session.Board().String(), "clue without a marked neighbor")
}

func TestFirstRevealIsSafe(t *testing.T) {
	tests := []struct {
		name                    string
		width, height, numMines int
	}{
		{"9x9(10)", 9, 9, 10},
		{"9x9(35)", 9, 9, 35},
		{"16x16(99)", 16, 16, 99},
		{"30x16(170)", 30, 16, 170},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for seed := int64(1); seed <= 40; seed++ {
				config := NewGameConfig()
				config.Width, config.Height, config.NumMines = test.width, test.height, test.numMines
				config.Seed = seed
				session := NewSession(config)
				board := session.Board()

				picker := newRand(seed + 1000)
				p := Point{picker.IntN(test.width), picker.IntN(test.height)}
				session.Reveal(p.X, p.Y)

				assert.Empty(t, minesAround(board, p), "seed %d at %v", seed, p)
				assert.Equal(t, test.numMines, board.NumMines(), "seed %d", seed)
				assert.Equal(t, Empty, board.Content(p.X, p.Y), "seed %d", seed)
				assert.Equal(t, config.HitPoints, session.HitPoints(), "seed %d", seed)
				require.NoError(t, board.Verify(), "seed %d", seed)
			}
		})
	}
}

func TestRelocationWaitsForFirstRealReveal(t *testing.T) {
	session := newLayoutSession(t, `
		O####
		#####
		#####
		#####
		#####
	`, Safe, 3)

	session.ToggleFlag(0, 0)
	session.Reveal(0, 0)
	require.Equal(t, Mine, session.Content(0, 0), "revealing a flag does nothing")

	session.ToggleFlag(0, 0)
	session.Reveal(0, 0)

	assert.False(t, session.Content(0, 0).IsMine())
	assert.Equal(t, 3, session.HitPoints())
	assert.Equal(t, 1, session.Board().NumMines())
	require.NoError(t, session.Board().Verify())
}

func TestClassicFirstRevealCanDetonate(t *testing.T) {
	session := newLayoutSession(t, `
		O####
		#####
		#####
		#####
		#####
	`, Classic, 3)

	session.Reveal(0, 0)

	assert.Equal(t, 2, session.HitPoints())
	assert.Equal(t, DetonatedMine, session.Content(0, 0))
}

func TestNewSessionClampsConfig(t *testing.T) {
	config := GameConfig{
		Width:      1,
		Height:     500,
		Generation: ByCount,
		Density:    -3,
		NumMines:   1000000,
		HitPoints:  0,
		Mode:       GameMode(7),
	}

	normalized := config.Normalize()
	assert.Equal(t, GameConfig{
		Width:      3,
		Height:     99,
		Generation: ByCount,
		Density:    0,
		NumMines:   3*99 - 1,
		HitPoints:  1,
		Mode:       Safe,
	}, normalized)

	session := NewSession(config)
	assert.Equal(t, normalized, session.Config())
	assert.Equal(t, 3*99-1, session.Board().NumMines())
	assert.Equal(t, InProgress, session.Outcome())
	require.NoError(t, session.Board().Verify())
}

func TestNewSessionByDensity(t *testing.T) {
	config := NewGameConfig()
	config.Generation = ByDensity
	config.Density = 0

	session := NewSession(config)
	require.Equal(t, 0, session.Board().NumMines())

	session.Reveal(10, 10)
	assert.Equal(t, Won, session.Outcome())
}

func TestNext(t *testing.T) {
	config := NewGameConfig()
	config.Seed = 42
	session := NewSession(config)
	session.Reveal(0, 0)

	next := session.Next()

	assert.Equal(t, InProgress, next.Outcome())
	assert.Equal(t, 0, next.ActionCount())
	assert.NotEqual(t, config.Seed, next.Config().Seed)
	config.Seed = next.Config().Seed
	assert.Equal(t, config, next.Config())
}

func TestElapsed(t *testing.T) {
	session := newLayoutSession(t, singleMineLayout, Classic, 3)
	now := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	session.now = func() time.Time { return now }

	assert.Equal(t, time.Duration(0), session.Elapsed())

	session.ToggleFlag(2, 2)
	now = now.Add(5 * time.Second)
	assert.Equal(t, 5*time.Second, session.Elapsed())

	session.ToggleFlag(2, 2)
	now = now.Add(2 * time.Second)
	session.Reveal(2, 2)
	require.Equal(t, Won, session.Outcome())

	now = now.Add(time.Minute)
	assert.Equal(t, 7*time.Second, session.Elapsed())
}

func TestModeNames(t *testing.T) {
	generation, err := ParseGenerationMode("density")
	require.NoError(t, err)
	assert.Equal(t, ByDensity, generation)
	assert.Equal(t, "count", ByCount.String())

	mode, err := ParseGameMode("classic")
	require.NoError(t, err)
	assert.Equal(t, Classic, mode)
	assert.Equal(t, "safe", Safe.String())

	_, err = ParseGameMode("win7")
	assert.Error(t, err)
	_, err = ParseGenerationMode("")
	assert.Error(t, err)
}
