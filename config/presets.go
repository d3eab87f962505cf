package config

import (
	"fmt"

	"klop/game"
	"klop/meta"
)

// MaxSeats is the number of players that can be placed without explicit bases.
const MaxSeats = 4

// seat returns the default base of player i of n. Two players face each other
// across the diagonal, a third player takes the left side and faces the other
// two, a fourth fills the last corner.
func (c *Config) seat(i, n int) game.Position {
	near, far := c.BaseDistance, c.FieldSize-c.BaseDistance-1
	if n == 3 {
		return []game.Position{
			{X: near, Y: c.FieldSize/2 - 1},
			{X: far, Y: near},
			{X: far, Y: far},
		}[i]
	}
	return []game.Position{
		{X: near, Y: far},
		{X: far, Y: near},
		{X: near, Y: near},
		{X: far, Y: far},
	}[i]
}

func preset(fieldSize, baseDistance, turnLength int, players ...PlayerConfig) Config {
	return Config{
		FieldSize:    fieldSize,
		BaseDistance: baseDistance,
		TurnLength:   turnLength,
		Players:      players,
		Experiment: ExperimentConfig{
			Games:    meta.EXPERIMENT_GAMES,
			Output:   "experiments",
			MaxTurns: meta.MAX_TURNS,
		},
	}
}

func computer(n int) PlayerConfig {
	return PlayerConfig{Name: fmt.Sprintf("Computer %d", n), Seed: uint64(n)}
}

// Demo is a game between two computer players that pause between moves.
func Demo(fieldSize, baseDistance, turnLength int) Config {
	one, two := computer(1), computer(2)
	one.Delay, two.Delay = meta.DEMO_DELAY, meta.DEMO_DELAY
	return preset(fieldSize, baseDistance, turnLength, one, two)
}

func AgainstOne(fieldSize, baseDistance, turnLength int) Config {
	return preset(fieldSize, baseDistance, turnLength,
		PlayerConfig{Name: "You", Human: true},
		computer(1),
	)
}

func AgainstTwo(fieldSize, baseDistance, turnLength int) Config {
	return preset(fieldSize, baseDistance, turnLength,
		PlayerConfig{Name: "You", Human: true},
		computer(1),
		computer(2),
	)
}

// Hotseat is a game between two humans at the same board.
func Hotseat(fieldSize, baseDistance, turnLength int) Config {
	return preset(fieldSize, baseDistance, turnLength,
		PlayerConfig{Name: "Player 1", Human: true},
		PlayerConfig{Name: "Player 2", Human: true},
	)
}

// Preset returns the named preset with the default board settings.
func Preset(name string) (Config, error) {
	presets := map[string]func(int, int, int) Config{
		"demo":        Demo,
		"against-one": AgainstOne,
		"against-two": AgainstTwo,
		"hotseat":     Hotseat,
	}
	mk, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("unknown preset %q: %w", name, ErrInvalidConfig)
	}
	return mk(meta.FIELD_SIZE, meta.BASE_DISTANCE, meta.TURN_LENGTH), nil
}
