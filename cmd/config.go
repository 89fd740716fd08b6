package cmd

import (
	"fmt"
	"github.com/spf13/cobra"
	"github.com/they4kman/minesclone/game"
	"gopkg.in/yaml.v2"
	"os"
)

// loadGameConfig layers the defaults, the YAML file at path (if any) and
// the flags the user actually set, in that order.
func loadGameConfig(cmd *cobra.Command, path string, flagConfig game.GameConfig) (game.GameConfig, error) {
	config := game.NewGameConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return config, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.UnmarshalStrict(data, &config); err != nil {
			return config, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	overrides := map[string]func(){
		"width":      func() { config.Width = flagConfig.Width },
		"height":     func() { config.Height = flagConfig.Height },
		"mines":      func() { config.NumMines = flagConfig.NumMines },
		"density":    func() { config.Density = flagConfig.Density },
		"hp":         func() { config.HitPoints = flagConfig.HitPoints },
		"seed":       func() { config.Seed = flagConfig.Seed },
		"generation": func() { config.Generation = flagConfig.Generation },
		"mode":       func() { config.Mode = flagConfig.Mode },
	}
	for name, override := range overrides {
		if cmd.Flags().Changed(name) {
			override()
		}
	}
	return config, nil
}

type generationValue game.GenerationMode

func newGenerationValue(val game.GenerationMode, p *game.GenerationMode) *generationValue {
	*p = val
	return (*generationValue)(p)
}

func (genVal *generationValue) String() string {
	return game.GenerationMode(*genVal).String()
}

func (genVal *generationValue) Set(value string) error {
	mode, err := game.ParseGenerationMode(value)
	if err != nil {
		return err
	}
	*genVal = generationValue(mode)
	return nil
}

func (genVal *generationValue) Type() string {
	return "game.GenerationMode"
}

type gameModeValue game.GameMode

func newGameModeValue(val game.GameMode, p *game.GameMode) *gameModeValue {
	*p = val
	return (*gameModeValue)(p)
}

func (modeVal *gameModeValue) String() string {
	return game.GameMode(*modeVal).String()
}

func (modeVal *gameModeValue) Set(value string) error {
	mode, err := game.ParseGameMode(value)
	if err != nil {
		return err
	}
	*modeVal = gameModeValue(mode)
	return nil
}

func (modeVal *gameModeValue) Type() string {
	return "game.GameMode"
}
