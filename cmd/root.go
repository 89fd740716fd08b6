package cmd

import (
	"fmt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/they4kman/minesclone/director/constraint"
	"github.com/they4kman/minesclone/director/random"
	"github.com/they4kman/minesclone/game"
	"io"
	"os"
	"sort"
	"strings"
	"time"
)

var log = logrus.New()

var directors = map[string]func() game.Director{
	"random":     func() game.Director { return &random.Director{} },
	"constraint": func() game.Director { return &constraint.Director{} },
}

type runOptions struct {
	configPath string
	director   string
	numGames   int
	maxActions int
	print      bool
	verify     bool
	logLevel   string
}

func newRootCmd() *cobra.Command {
	gameConfig := game.NewGameConfig()
	opts := runOptions{}

	rootCmd := &cobra.Command{
		Use:   "minesclone",
		Short: "Play computer-driven Minesweeper",
		Long: `minesclone runs Minesweeper sessions played by a director, and reports
how each game ended.

Play one game on the default 30x16 board with 99 mines
	minesclone

Play 100 games on a dense beginner board, printing each final board
	minesclone -w 9 -h 9 -m 35 --games 100 --print
`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setupLogging(opts.logLevel, cmd.ErrOrStderr()); err != nil {
				return err
			}

			config, err := loadGameConfig(cmd, opts.configPath, gameConfig)
			if err != nil {
				return err
			}
			if config.Seed == 0 {
				config.Seed = time.Now().UnixNano()
			}

			summary, err := runGames(config, opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			log.WithFields(logrus.Fields{
				"won":        summary.won,
				"lost":       summary.lost,
				"unfinished": summary.unfinished,
			}).Info("finished")
			return nil
		},
	}

	// Define our root -help without a shorthand, as we'll use -h for --height
	// Ref: https://github.com/spf13/cobra/issues/291
	rootCmd.Flags().Bool("help", false, "Help for this command")

	flags := rootCmd.Flags()
	addGameFlags(flags, &gameConfig)

	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML file with game settings; flags override it")
	flags.StringVarP(&opts.director, "director", "d", "constraint", "Who plays: "+strings.Join(directorNames(), ", "))
	flags.IntVarP(&opts.numGames, "games", "n", 1, "Number of games to play")
	flags.IntVar(&opts.maxActions, "max-actions", 0, "Give up on a game after this many actions; 0 for no limit")
	flags.BoolVarP(&opts.print, "print", "p", false, "Print each final board")
	flags.BoolVar(&opts.verify, "verify", true, "Check board consistency after each game")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	return rootCmd
}

// addGameFlags binds the board and rule settings to config
func addGameFlags(flags *pflag.FlagSet, config *game.GameConfig) {
	flags.IntVarP(&config.Width, "width", "w", config.Width, "Width of game board, in tiles")
	flags.IntVarP(&config.Height, "height", "h", config.Height, "Height of game board, in tiles")
	flags.IntVarP(&config.NumMines, "mines", "m", config.NumMines, "Number of mines to place, with --generation count")
	flags.IntVar(&config.Density, "density", config.Density, "Percentage of tiles to mine, with --generation density")
	flags.IntVar(&config.HitPoints, "hp", config.HitPoints, "Mines the player may detonate before losing")
	flags.Int64Var(&config.Seed, "seed", 0, "Random seed; 0 picks one from the clock")
	flags.Var(newGenerationValue(config.Generation, &config.Generation), "generation", `Mine placement strategy.
count: random walk from a random tile, topped up to exactly --mines
density: every tile is a mine with probability --density percent`)
	flags.Var(newGameModeValue(config.Mode, &config.Mode), "mode", `Game mode, controlling behaviour of first reveal.
safe: all tiles surrounding the first-revealed tile are cleared of mines (first reveal never detonates)
classic: mines are left as is (first reveal can detonate)`)
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func setupLogging(level string, out io.Writer) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	for _, logger := range []*logrus.Logger{log, game.Log} {
		logger.SetOutput(out)
		logger.SetLevel(parsed)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

type summary struct {
	won, lost, unfinished int
}

func runGames(config game.GameConfig, opts runOptions, out io.Writer) (summary, error) {
	newDirector, ok := directors[opts.director]
	if !ok {
		return summary{}, fmt.Errorf("unknown director %q, want one of: %s",
			opts.director, strings.Join(directorNames(), ", "))
	}

	var result summary
	session := game.NewSession(config)
	for i := 0; i < opts.numGames; i++ {
		if i > 0 {
			session = session.Next()
		}

		outcome := game.Autoplay(session, newDirector(), opts.maxActions)
		switch outcome {
		case game.Won:
			result.won++
		case game.Lost:
			result.lost++
		default:
			result.unfinished++
		}

		if opts.verify {
			if err := session.Board().Verify(); err != nil {
				return result, fmt.Errorf("game %d (seed %d): %w", i+1, session.Config().Seed, err)
			}
		}

		log.WithFields(logrus.Fields{
			"game":      i + 1,
			"seed":      session.Config().Seed,
			"outcome":   outcome,
			"actions":   session.ActionCount(),
			"hitPoints": session.HitPoints(),
			"elapsed":   session.Elapsed(),
		}).Info("game over")

		if opts.print {
			if _, err := fmt.Fprintf(out, "%s\n\n", session.Board()); err != nil {
				return result, err
			}
		}
	}
	return result, nil
}

func directorNames() []string {
	names := make([]string, 0, len(directors))
	for name := range directors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
