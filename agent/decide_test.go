package agent

import (
	"testing"

	"klop/game"
	"klop/searcher"

	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, turnLength int, rows ...string) (*game.GameState, []*game.Player) {
	t.Helper()
	gs, err := game.Parse(rows, turnLength)
	require.NoError(t, err)
	return gs, gs.Players()
}

func TestDecideBuilding(t *testing.T) {
	t.Run("first move grows towards the enemy", func(t *testing.T) {
		gs, players := parse(t, 3,
			"..........",
			"........B.",
			"..........",
			"..........",
			"..........",
			"..........",
			"..........",
			"..........",
			".A........",
			"..........",
		)
		p := New(players[0], WithSeed(1))

		got, ok := p.Decide(gs.Snapshot())

		require.True(t, ok)
		require.Equal(t, Decision{Mode: Building, Target: game.Position{X: 2, Y: 7}, MaxPath: BuildPathLength}, got)
	})

	t.Run("ring around the base is left free once there is room", func(t *testing.T) {
		gs, players := parse(t, 3,
			"..........",
			"........B.",
			"..........",
			"..........",
			"..........",
			"..........",
			"..........",
			"..a.......",
			".A........",
			"..........",
		)
		p := New(players[0], WithSeed(1))

		got, ok := p.Decide(gs.Snapshot())

		require.True(t, ok)
		require.Equal(t, Building, got.Mode)
		require.Equal(t, game.Position{X: 3, Y: 6}, got.Target)
		require.False(t, players[0].IsNearBase(got.Target))
	})
}

func TestDecideAttacking(t *testing.T) {
	t.Run("enemy in reach is attacked", func(t *testing.T) {
		gs, players := parse(t, 10,
			"..........",
			"........B.",
			".......b..",
			"......b...",
			".....b....",
			"..........",
			"...a......",
			"..a.......",
			".A........",
			"..........",
		)
		b := gs.Snapshot()
		require.False(t, b.IsFightStarted())
		p := New(players[0], WithSeed(1))

		got, ok := p.Decide(b)

		require.True(t, ok)
		require.Equal(t, Decision{Mode: Attacking, Target: game.Position{X: 5, Y: 4}, MaxPath: AttackPathLength}, got)
	})

	t.Run("equally near enemy cells prefer the longer way to their base", func(t *testing.T) {
		gs, players := parse(t, 10,
			"..........",
			"........B.",
			".......b..",
			"......b...",
			".....b....",
			"..........",
			"...a.b....",
			"..a.......",
			".A........",
			"..........",
		)
		b := gs.Snapshot()
		p := New(players[0], WithSeed(1))

		cells := nearestEnemyCells(b, searcher.EnemyDistances(b, players[0]))
		require.ElementsMatch(t, []game.Position{{X: 5, Y: 4}, {X: 5, Y: 6}}, cells)

		got, ok := p.Decide(b)

		require.True(t, ok)
		require.Equal(t, Attacking, got.Mode)
		require.Equal(t, game.Position{X: 5, Y: 6}, got.Target)
	})

	t.Run("short turns keep building", func(t *testing.T) {
		gs, players := parse(t, 2,
			"..........",
			"........B.",
			".......b..",
			"......b...",
			".....b....",
			"..........",
			"...a......",
			"..a.......",
			".A........",
			"..........",
		)
		p := New(players[0], WithSeed(1))

		got, ok := p.Decide(gs.Snapshot())

		require.True(t, ok)
		require.Equal(t, Building, got.Mode, "Distance 1 is not below 2 * 0.4")
	})
}

func TestDecideFighting(t *testing.T) {
	t.Run("capture that cuts the enemy chain is chosen", func(t *testing.T) {
		gs, players := parse(t, 10,
			"..........",
			"........B.",
			".......b..",
			"......b...",
			".....b....",
			"..b.b.....",
			"...a......",
			"..a.......",
			".A........",
			"..........",
		)
		b := gs.Snapshot()
		require.True(t, b.IsFightStarted())
		require.True(t, b.At(2, 5).Available, "Dead-end enemy cell is a candidate too")
		p := New(players[0], WithSeed(1))

		got, ok := p.Decide(b)

		require.True(t, ok)
		require.Equal(t, Decision{Mode: Fighting, Target: game.Position{X: 4, Y: 5}, MaxPath: FightPathLength}, got)
	})

	t.Run("without a capture the player rushes towards the enemy base", func(t *testing.T) {
		gs, players := parse(t, 10,
			"..........",
			"........B.",
			"..........",
			"..........",
			"..........",
			"....1.....",
			"...a......",
			"..a.......",
			".A........",
			"..........",
		)
		b := gs.Snapshot()
		me, enemy := players[0], players[1]
		require.True(t, b.IsFightStarted())
		p := New(me, WithSeed(1))

		got, ok := p.Decide(b)

		require.True(t, ok)
		require.Equal(t, Fighting, got.Mode)
		require.True(t, b.Cell(got.Target).Available)

		rush := searcher.NewPathFinder().FindPath(b, me.Base, enemy.Base, me)
		var first game.Position
		for _, pos := range rush.Cells {
			if b.Cell(pos).Available {
				first = pos
				break
			}
		}
		require.Equal(t, first, got.Target, "Target should be the first cell in reach on the way to the enemy base")
	})
}

func TestPreferredEnemy(t *testing.T) {
	rows := []string{
		"..........",
		"........B.",
		".......bb.",
		"..........",
		"..........",
		"....C.....",
		"....c.....",
		"..........",
		".A........",
		"..........",
	}

	t.Run("most alive cells without humans", func(t *testing.T) {
		gs, players := parse(t, 3, rows...)

		require.Same(t, players[1], PreferredEnemy(gs.Snapshot(), players[0]))
	})

	t.Run("humans come first", func(t *testing.T) {
		gs, players := parse(t, 3, rows...)
		players[2].Human = true

		require.Same(t, players[2], PreferredEnemy(gs.Snapshot(), players[0]))
	})

	t.Run("the player is never its own enemy", func(t *testing.T) {
		gs, players := parse(t, 3, rows...)
		players[0].Human = true

		require.NotSame(t, players[0], PreferredEnemy(gs.Snapshot(), players[0]))
	})
}

func TestFrontierPattern(t *testing.T) {
	gs, players := parse(t, 3,
		"..........",
		"........B.",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		".A........",
		"..........",
	)
	b := gs.Snapshot()
	distances := searcher.EnemyDistances(b, players[0])

	pos, ok := FrontierPattern{}.Next(b, players[0], distances)
	require.True(t, ok)
	require.True(t, b.Cell(pos).Available)
	require.Equal(t, game.Free, b.Cell(pos).State)
	require.Equal(t, "frontier", FrontierPattern{}.Name())

	walled, players := parse(t, 3,
		"..........",
		"........B.",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"111.......",
		"1A1.......",
		"111.......",
	)
	b = walled.Snapshot()
	_, ok = FrontierPattern{}.Next(b, players[0], searcher.EnemyDistances(b, players[0]))
	require.False(t, ok, "Nothing to grow into")
}

// markAvailable replaces the availability of b, as a board gone stale between
// planning and moving would show it.
func markAvailable(b *game.Board, positions ...game.Position) {
	cells := b.Cells()
	for i := range cells {
		cells[i].Available = false
	}
	for _, pos := range positions {
		b.Cell(pos).Available = true
	}
}

func TestFallback(t *testing.T) {
	// The enemy base is walled in, so there is never a route to rush along
	rows := []string{
		".......111",
		".......1B1",
		".......111",
		"..........",
		"..........",
		"....b.....",
		"......b...",
		".......a..",
		".A........",
		"..........",
	}

	t.Run("nearest available cell to the enemy", func(t *testing.T) {
		gs, players := parse(t, 10, rows...)
		b := gs.Snapshot()
		me, enemy := players[0], players[1]
		p := New(me, WithSeed(1))

		got, ok := p.fallback(b, enemy, searcher.EnemyDistances(b, me))

		require.True(t, ok)
		require.Equal(t, game.Position{X: 2, Y: 7}, got)
	})

	t.Run("enemy cell next to an available cell", func(t *testing.T) {
		gs, players := parse(t, 10, rows...)
		b := gs.Snapshot()
		me, enemy := players[0], players[1]
		markAvailable(b, game.Position{X: 7, Y: 7})
		p := New(me, WithSeed(1))

		got, ok := p.fallback(b, enemy, searcher.EnemyDistances(b, me))

		require.True(t, ok)
		require.Equal(t, game.Position{X: 6, Y: 6}, got, "The nearer enemy cell has nothing available around it")
	})

	t.Run("any enemy cell nearest to the base", func(t *testing.T) {
		gs, players := parse(t, 10, rows...)
		b := gs.Snapshot()
		me, enemy := players[0], players[1]
		markAvailable(b)
		p := New(me, WithSeed(1))

		got, ok := p.fallback(b, enemy, searcher.EnemyDistances(b, me))

		require.True(t, ok)
		require.Equal(t, game.Position{X: 4, Y: 5}, got)
	})

	// The only enemy cell sits in a dead box next to an own cell that is
	// boxed in as well
	boxed := []string{
		".......111",
		".......1B1",
		".......111",
		"..111.....",
		"..1a11....",
		"..11b1....",
		"...111....",
		"..........",
		".A........",
		"..........",
	}

	t.Run("unreachable enemy cells are skipped for a random available cell", func(t *testing.T) {
		gs, players := parse(t, 10, boxed...)
		b := gs.Snapshot()
		me, enemy := players[0], players[1]
		markAvailable(b, game.Position{X: 3, Y: 4})
		p := New(me, WithSeed(1))

		got, ok := p.fallback(b, enemy, searcher.EnemyDistances(b, me))

		require.True(t, ok)
		require.Equal(t, game.Position{X: 3, Y: 4}, got)
	})

	t.Run("nothing left", func(t *testing.T) {
		gs, players := parse(t, 10, boxed...)
		b := gs.Snapshot()
		me, enemy := players[0], players[1]
		markAvailable(b)
		p := New(me, WithSeed(1))

		_, ok := p.fallback(b, enemy, searcher.EnemyDistances(b, me))

		require.False(t, ok)
	})
}
