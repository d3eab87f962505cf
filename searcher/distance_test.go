package searcher

import (
	"testing"

	"klop/game"

	"github.com/stretchr/testify/require"
)

func TestEnemyDistances(t *testing.T) {
	t.Run("distance is the king-move distance to the nearest enemy cell", func(t *testing.T) {
		b, players := parse(t,
			"..........",
			"........B.",
			"..........",
			"..........",
			"..........",
			"...b......",
			"..........",
			"..........",
			".A........",
			"..........",
		)
		me := players[0]
		enemyCells := []game.Position{{X: 8, Y: 1}, {X: 3, Y: 5}}

		d := EnemyDistances(b, me)

		for _, c := range b.Cells() {
			want := -1
			for _, e := range enemyCells {
				if v := c.Chebyshev(e); want == -1 || v < want {
					want = v
				}
			}
			require.Equal(t, want, d.At(c.Position), "Distance of %v", c.Position)
		}
	})

	t.Run("own cells do not count as enemies", func(t *testing.T) {
		b, players := parse(t, emptyBoard...)

		d := EnemyDistances(b, players[1])

		require.Equal(t, 0, d.At(players[0].Base))
		require.Equal(t, 7, d.At(players[1].Base))
	})

	t.Run("unreached cells are ignored by Min", func(t *testing.T) {
		d := Distances{width: 3, height: 1, values: []int{Unreached, 4, 2}}
		cells := []*game.Cell{
			{Position: game.Position{X: 0, Y: 0}},
			{Position: game.Position{X: 1, Y: 0}},
		}

		require.Equal(t, 4, d.Min(cells))
		require.Equal(t, Unreached, d.Min(cells[:1]))
		require.Equal(t, Unreached, d.Min(nil))
	})

	t.Run("minimum over cells", func(t *testing.T) {
		b, players := parse(t, emptyBoard...)
		me := players[0]

		d := EnemyDistances(b, me)

		require.Equal(t, 7-1, d.Min(b.Available()), "Nearest available cell is one step closer than the base")
		require.Contains(t, d.String(), "0   ")
	})
}
