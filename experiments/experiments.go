package experiments

import (
	"context"
	"fmt"
	"slices"

	"klop/config"
	"klop/engine"
	"klop/experiments/metrics"

	"github.com/rs/zerolog/log"
)

// Run plays c.Experiment.Games games between the computer players of c and
// writes the results under c.Experiment.Output/name. Players wait no time
// between moves. It returns the directory the tables were written to.
func Run(ctx context.Context, name string, c config.Config) (string, error) {
	c.Players = slices.Clone(c.Players)
	for i, p := range c.Players {
		if p.Human {
			return "", fmt.Errorf("player %q is human, experiments need computer players: %w", p.Name, config.ErrInvalidConfig)
		}
		c.Players[i].Delay = 0
	}
	if err := c.Validate(); err != nil {
		return "", err
	}

	log.Info().Msgf("starting %s experiment with %d games...", name, c.Experiment.Games)

	var configs []metrics.AgentConfig
	gameRecords := []metrics.GameRecord{}
	decisionRecords := []metrics.DecisionRecord{}
	for i := 0; i < c.Experiment.Games; i++ {
		log.Info().Msgf("starting game %d of %d...", i+1, c.Experiment.Games)

		gameMetric, decisions, agents, err := runGame(ctx, &c, i)
		if err != nil {
			return "", fmt.Errorf("game %d: %w", i+1, err)
		}
		if configs == nil {
			configs = agentConfigs(&c, agents)
		}
		gameRecords = append(gameRecords, metrics.NewGameRecord(i+1, gameMetric))
		for step, d := range decisions {
			decisionRecords = append(decisionRecords, metrics.NewDecisionRecord(gameMetric.ID, step, d))
		}

		winner := gameMetric.Winner
		if winner == "" {
			winner = "none"
		}
		log.Info().Msgf("completed game %d of %d after %d turns with winner: %s", i+1, c.Experiment.Games, gameMetric.Turns, winner)
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(c.Experiment.Output, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteDecisionRecords(decisionRecords); err != nil {
		return "", fmt.Errorf("failed to write decision records: %w", err)
	}
	log.Info().Msg("stored decision records")
	return writer.Dir(), nil
}

// runGame plays game number n and returns the decisions of all players in the
// order they were made. Fixed seeds are offset by n so games differ.
func runGame(ctx context.Context, c *config.Config, n int) (metrics.GameMetric, []metrics.DecisionMetric, []agentInfo, error) {
	g := *c
	g.Players = slices.Clone(c.Players)
	for i := range g.Players {
		if g.Players[i].Seed != 0 {
			g.Players[i].Seed += uint64(n)
		}
	}
	c = &g

	state, err := c.NewGame()
	if err != nil {
		return metrics.GameMetric{}, nil, nil, err
	}
	collectors := map[int]metrics.Collector{}
	agents := c.Agents(state, func(player int) metrics.Collector {
		collectors[player] = metrics.NewCollector()
		return collectors[player]
	})

	e := engine.LocalEngine(state, agents, engine.WithMaxTurns(c.Experiment.MaxTurns))
	gameMetric, err := e.Run(ctx)
	if err != nil {
		return metrics.GameMetric{}, nil, nil, err
	}

	var decisions []metrics.DecisionMetric
	for _, collector := range collectors {
		decisions = append(decisions, collector.Decisions()...)
	}
	slices.SortStableFunc(decisions, func(a, b metrics.DecisionMetric) int {
		return a.StartTime.Compare(b.StartTime)
	})

	infos := make([]agentInfo, len(agents))
	for i, a := range agents {
		infos[i] = agentInfo{player: a.Player().ID, pattern: a.Pattern().Name()}
	}
	return gameMetric, decisions, infos, nil
}

type agentInfo struct {
	player  int
	pattern string
}

func agentConfigs(c *config.Config, agents []agentInfo) []metrics.AgentConfig {
	configs := make([]metrics.AgentConfig, len(agents))
	for i, a := range agents {
		pc := c.Players[a.player]
		configs[i] = metrics.AgentConfig{
			ID:      a.player,
			Name:    pc.Name,
			DelayNS: pc.Delay.Nanoseconds(),
			Pattern: a.pattern,
			Seed:    pc.Seed,
		}
	}
	return configs
}
