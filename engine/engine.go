package engine

import (
	"context"

	"klop/experiments/metrics"
)

type Engine interface {
	// Run plays until the game is over, the turn limit is reached or ctx is
	// cancelled
	Run(ctx context.Context) (metrics.GameMetric, error)
}
