package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"klop/config"
	"klop/engine"
	"klop/experiments"
	"klop/game"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Config file, defaults to klop/config.yaml in the XDG config directories")
	presetName := flag.String("preset", "", "Preset instead of the config file: demo, against-one, against-two or hotseat")
	mode := flag.String("mode", "play", "play or experiment")
	games := flag.Int("games", 0, "Number of experiment games, overrides the config")
	out := flag.String("out", "", "Experiment output directory, overrides the config")
	level := flag.String("log-level", "info", "Log level")
	save := flag.Bool("save", false, "Write the effective configuration to the config file and exit")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(lvl)

	c, err := loadConfig(*configPath, *presetName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if *games > 0 {
		c.Experiment.Games = *games
	}
	if *out != "" {
		c.Experiment.Output = *out
	}

	if *save {
		path, err := c.Save(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to save configuration")
		}
		log.Info().Msgf("configuration written to %s", path)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch *mode {
	case "play":
		err = play(ctx, c)
	case "experiment":
		var dir string
		dir, err = experiments.Run(ctx, "batch", *c)
		if err == nil {
			log.Info().Msgf("results written to %s", dir)
		}
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("klop failed")
		os.Exit(1)
	}
}

func loadConfig(path, preset string) (*config.Config, error) {
	if preset == "" {
		return config.Load(path)
	}
	c, err := config.Preset(preset)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// play runs one game on the terminal. Human players enter their moves on stdin.
func play(ctx context.Context, c *config.Config) error {
	state, err := c.NewGame()
	if err != nil {
		return err
	}
	e := engine.LocalEngine(state, c.Agents(state, nil))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if len(e.Agents) < len(state.Players()) {
		unsubscribe := state.Subscribe(func(ch game.Change) {
			if ch.Kind == game.CurrentPlayerChanged && ch.CurrentPlayer.Human {
				prompt(state)
			}
		})
		defer unsubscribe()
		if state.CurrentPlayer().Human {
			prompt(state)
		}
		go readMoves(os.Stdin, e, cancel)
	}

	metric, err := e.Run(ctx)
	fmt.Println(state.Snapshot())
	if err != nil {
		return err
	}
	winner := metric.Winner
	if winner == "" {
		winner = "nobody"
	}
	log.Info().Msgf("game %s won by %s after %d turns", metric.ID, winner, metric.Turns)
	return nil
}

func prompt(state *game.GameState) {
	fmt.Println(state.Snapshot())
	fmt.Printf("%s, %d moves left (x y, undo, reset, quit): ", state.CurrentPlayer(), state.RemainingMoves())
}

func readMoves(r io.Reader, e *engine.Local, quit func()) {
	defer quit()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "quit":
			return
		case "undo":
			if !e.UndoTurn() {
				fmt.Println("nothing to undo")
			}
			continue
		case "reset":
			e.Reset()
			continue
		}

		if len(fields) != 2 {
			fmt.Println("expected x y")
			continue
		}
		x, errX := strconv.Atoi(fields[0])
		y, errY := strconv.Atoi(fields[1])
		if errX != nil || errY != nil {
			fmt.Println("expected x y")
			continue
		}
		mover := e.State.CurrentPlayer()
		if !e.MakeTurn(x, y) {
			fmt.Println("move not allowed")
			continue
		}
		// A new turn prompts on its own
		if e.State.CurrentPlayer() == mover {
			prompt(e.State)
		}
	}
}
