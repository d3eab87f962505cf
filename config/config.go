package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"klop/agent"
	"klop/experiments/metrics"
	"klop/game"
	"klop/meta"
	"klop/utils"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

var (
	cfgFile = "klop/config.yaml"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type PlayerConfig struct {
	Name  string `yaml:"name"`
	Human bool   `yaml:"human"`
	// Base defaults to the preset position for the player's seat.
	Base    *Point        `yaml:"base,omitempty"`
	Delay   time.Duration `yaml:"delay,omitempty"`
	Seed    uint64        `yaml:"seed,omitempty"`
	Pattern string        `yaml:"pattern,omitempty"`
}

type ExperimentConfig struct {
	Games    int    `yaml:"games"`
	Output   string `yaml:"output"`
	MaxTurns int    `yaml:"max_turns"`
}

type Config struct {
	FieldSize    int              `yaml:"field_size"`
	BaseDistance int              `yaml:"base_distance"`
	TurnLength   int              `yaml:"turn_length"`
	Players      []PlayerConfig   `yaml:"players"`
	Experiment   ExperimentConfig `yaml:"experiment"`
}

var DefaultConfig = Demo(meta.FIELD_SIZE, meta.BASE_DISTANCE, meta.TURN_LENGTH)

// Load reads the configuration at path. An empty path looks up klop/config.yaml
// in the XDG config directories and falls back to DefaultConfig when there is
// none.
func Load(path string) (*Config, error) {
	config := DefaultConfig
	config.Players = append([]PlayerConfig(nil), DefaultConfig.Players...)

	if path == "" {
		found, err := xdg.SearchConfigFile(cfgFile)
		if err != nil {
			// No config file, use the defaults
			return &config, nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Save writes the configuration to path, or to klop/config.yaml in the user's
// XDG config directory when path is empty.
func (c *Config) Save(path string) (string, error) {
	if path == "" {
		p, err := xdg.ConfigFile(cfgFile)
		if err != nil {
			return "", fmt.Errorf("failed to locate config file: %w", err)
		}
		path = p
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o664); err != nil {
		return "", fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return path, nil
}

func (c *Config) Validate() error {
	if c.FieldSize < game.MinWidth {
		return fmt.Errorf("field size %d is below %d: %w", c.FieldSize, game.MinWidth, ErrInvalidConfig)
	}
	if c.BaseDistance < 0 || 2*c.BaseDistance >= c.FieldSize {
		return fmt.Errorf("base distance %d does not fit a field of %d: %w", c.BaseDistance, c.FieldSize, ErrInvalidConfig)
	}
	if c.TurnLength < 1 {
		return fmt.Errorf("turn length %d must be positive: %w", c.TurnLength, ErrInvalidConfig)
	}
	if len(c.Players) < game.MinPlayers {
		return fmt.Errorf("need %d or more players, got %d: %w", game.MinPlayers, len(c.Players), ErrInvalidConfig)
	}
	if len(c.Players) > MaxSeats && c.hasDefaultBases() {
		return fmt.Errorf("only %d players can be seated without explicit bases: %w", MaxSeats, ErrInvalidConfig)
	}

	names := make([]string, len(c.Players))
	for i, p := range c.Players {
		names[i] = p.Name
	}
	for i, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player %d has no name: %w", i+1, ErrInvalidConfig)
		}
		if utils.FindIndex(names, p.Name) != i {
			return fmt.Errorf("player name %q is used twice: %w", p.Name, ErrInvalidConfig)
		}
		if p.Delay < 0 {
			return fmt.Errorf("player %q has a negative delay: %w", p.Name, ErrInvalidConfig)
		}
		if p.Pattern != "" && pattern(p.Pattern) == nil {
			return fmt.Errorf("player %q has unknown pattern %q: %w", p.Name, p.Pattern, ErrInvalidConfig)
		}
	}
	if c.Experiment.Games < 0 || c.Experiment.MaxTurns < 0 {
		return fmt.Errorf("experiment sizes must not be negative: %w", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) hasDefaultBases() bool {
	for _, p := range c.Players {
		if p.Base == nil {
			return true
		}
	}
	return false
}

// NewGame creates the game described by the configuration.
func (c *Config) NewGame() (*game.GameState, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	players := make([]*game.Player, len(c.Players))
	for i, p := range c.Players {
		base := c.seat(i, len(c.Players))
		if p.Base != nil {
			base = game.Position{X: p.Base.X, Y: p.Base.Y}
		}
		players[i] = game.NewPlayer(p.Name, base, p.Human)
	}
	gs, err := game.New(c.FieldSize, c.FieldSize, c.TurnLength, players)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	return gs, nil
}

// Agents returns a computer player for every non-human player of state, which
// must have been created by NewGame.
func (c *Config) Agents(state *game.GameState, collector func(player int) metrics.Collector) []*agent.Player {
	var agents []*agent.Player
	for i, p := range state.Players() {
		pc := c.Players[i]
		if p.Human {
			continue
		}
		options := []agent.Option{agent.WithDelay(pc.Delay)}
		if pc.Seed != 0 {
			options = append(options, agent.WithSeed(pc.Seed))
		}
		if pt := pattern(pc.Pattern); pt != nil {
			options = append(options, agent.WithPattern(pt))
		}
		if collector != nil {
			options = append(options, agent.WithMetrics(collector(p.ID)))
		}
		agents = append(agents, agent.New(p, options...))
	}
	return agents
}

func pattern(name string) agent.Pattern {
	switch name {
	case "", agent.FrontierPattern{}.Name():
		return agent.FrontierPattern{}
	default:
		return nil
	}
}
