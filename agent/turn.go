package agent

import (
	"context"
	"time"

	"klop/game"
	"klop/searcher"

	"github.com/rs/zerolog/log"
)

// PlayTurn moves for the player for as long as it is the current player of
// state, has a cell to take and the game is not over. Cancelling ctx stops the
// loop before the next move; a move is either made completely or not at all.
func (p *Player) PlayTurn(ctx context.Context, state *game.GameState) error {
	var route []game.Position
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		board := state.Snapshot()
		if board.CurrentPlayer() != p.player || board.AvailableCount() == 0 || board.IsGameOver() {
			return nil
		}

		if len(route) == 0 {
			route = p.plan(board)
		}
		next := route[0]
		route = route[1:]
		if !board.Cell(next).Available {
			log.Warn().Msgf("%s planned unavailable cell (%d,%d), replanning", p.player, next.X, next.Y)
			route = nil
			next = board.Available()[0].Position
		}

		if err := p.wait(ctx); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !state.MakeTurnIn(board.Epoch(), p.player, next) {
			// The board changed while we were waiting
			route = nil
		}
	}
}

// plan picks a target and returns the start of the route to it. The route is
// never empty while board has an available cell.
func (p *Player) plan(board *game.Board) []game.Position {
	p.metrics.Start(p.player.ID)
	before := p.finder.Stats()

	decision, ok := p.Decide(board)
	var route []game.Position
	if ok {
		path := p.finder.FindPath(board, p.player.Base, decision.Target, p.player, searcher.Inverted())
		route = path.Prefix(decision.MaxPath)
	}
	switch {
	case !ok:
		if pos, found := p.randomAvailable(board); found {
			route = []game.Position{pos}
		}
	case len(route) == 0:
		route = []game.Position{board.Available()[0].Position}
	}

	p.mu.Lock()
	p.decisions++
	p.mu.Unlock()

	log.Debug().Msgf("%s %s towards (%d,%d), %d cells queued", p.player, decision.Mode, decision.Target.X, decision.Target.Y, len(route))
	stats := p.finder.Stats().Sub(before)
	p.metrics.SetDecision(decision.Mode.String(), decision.Target.X, decision.Target.Y, ok, decision.MaxPath)
	p.metrics.SetPath(len(route), stats.Searches, stats.Expanded)
	p.metrics.Complete()
	return route
}

func (p *Player) wait(ctx context.Context) error {
	if p.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
