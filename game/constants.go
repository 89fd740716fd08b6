package game

import "fmt"

// Content is what a tile holds: a mine marker, or the number of mines
// among its neighbors.
type Content int8

const (
	DetonatedMine Content = iota - 2
	Mine
	Empty
	Number1
	Number2
	Number3
	Number4
	Number5
	Number6
	Number7
	Number8
)

// IsMine reports whether the tile holds a mine, detonated or not
func (content Content) IsMine() bool {
	return content < Empty
}

// Clue returns the adjacent mine count, or -1 for mines
func (content Content) Clue() int {
	if content.IsMine() {
		return -1
	}
	return int(content)
}

func (content Content) String() string {
	switch content {
	case DetonatedMine:
		return "DetonatedMine"
	case Mine:
		return "Mine"
	default:
		return fmt.Sprintf("Clue(%d)", int(content))
	}
}

type Visibility int

const (
	Hidden Visibility = iota
	Revealed
	Flagged
)

func (visibility Visibility) String() string {
	switch visibility {
	case Hidden:
		return "Hidden"
	case Revealed:
		return "Revealed"
	case Flagged:
		return "Flagged"
	}
	return fmt.Sprintf("Visibility(%d)", int(visibility))
}

type Outcome int

const (
	Generating Outcome = iota
	InProgress
	Won
	Lost
)

var outcomeNames = map[Outcome]string{
	Generating: "generating",
	InProgress: "in progress",
	Won:        "won",
	Lost:       "lost",
}

func (outcome Outcome) String() string {
	if name, ok := outcomeNames[outcome]; ok {
		return name
	}
	return fmt.Sprintf("Outcome(%d)", int(outcome))
}

// IsTerminal reports whether no further moves are accepted
func (outcome Outcome) IsTerminal() bool {
	return outcome == Won || outcome == Lost
}

type GenerationMode int

const (
	// ByDensity rolls every cell independently against the mine density
	ByDensity GenerationMode = iota
	// ByCount places exactly the requested number of mines
	ByCount
)

type GameMode int

const (
	// Safe clears all mines around the first revealed tile
	Safe GameMode = iota
	// Classic leaves mines as generated; the first reveal may detonate
	Classic
)

var generationModes = map[string]GenerationMode{
	"density": ByDensity,
	"count":   ByCount,
}

var gameModes = map[string]GameMode{
	"safe":    Safe,
	"classic": Classic,
}

func ParseGenerationMode(name string) (GenerationMode, error) {
	if mode, isValid := generationModes[name]; isValid {
		return mode, nil
	}
	return 0, fmt.Errorf("invalid generation mode %q", name)
}

func (mode GenerationMode) String() string {
	for name, m := range generationModes {
		if m == mode {
			return name
		}
	}
	return fmt.Sprint(int(mode))
}

func (mode GenerationMode) MarshalYAML() (interface{}, error) {
	return mode.String(), nil
}

func (mode *GenerationMode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := ParseGenerationMode(name)
	if err != nil {
		return err
	}
	*mode = parsed
	return nil
}

func ParseGameMode(name string) (GameMode, error) {
	if mode, isValid := gameModes[name]; isValid {
		return mode, nil
	}
	return 0, fmt.Errorf("invalid game mode %q", name)
}

func (mode GameMode) String() string {
	for name, m := range gameModes {
		if m == mode {
			return name
		}
	}
	return fmt.Sprint(int(mode))
}

func (mode GameMode) MarshalYAML() (interface{}, error) {
	return mode.String(), nil
}

func (mode *GameMode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := ParseGameMode(name)
	if err != nil {
		return err
	}
	*mode = parsed
	return nil
}

const (
	MinBoardSize = 3
	MaxBoardSize = 99
)
