package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNeighbors(t *testing.T) {
	gs, _, _ := newTestGame(t)
	b := gs.Snapshot()

	require.Len(t, b.Neighbors(b.At(0, 0)), 3, "Corner")
	require.Len(t, b.Neighbors(b.At(0, 5)), 5, "Edge")
	require.Len(t, b.Neighbors(b.At(9, 9)), 3, "Opposite corner")
	require.Len(t, b.Neighbors(b.At(4, 4)), 8, "Inner cell")

	var got []Position
	for _, n := range b.Neighbors(b.At(4, 4)) {
		got = append(got, n.Position)
	}
	require.Equal(t, []Position{{3, 3}, {4, 3}, {5, 3}, {3, 4}, {5, 4}, {3, 5}, {4, 5}, {5, 5}}, got,
		"Neighbours should come row by row")
}

// connected collects the cells reachable from the player's base through the
// player's own cells.
func connected(b *Board, p *Player) map[Position]bool {
	seen := map[Position]bool{p.Base: true}
	queue := []*Cell{b.Cell(p.Base)}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, n := range b.Neighbors(c) {
			if n.Owner == p && !seen[n.Position] {
				seen[n.Position] = true
				queue = append(queue, n)
			}
		}
	}
	return seen
}

func TestAvailability(t *testing.T) {
	t.Run("only cells touching the base network are available", func(t *testing.T) {
		gs, p1, p2 := newTestGame(t)
		place(gs, 2, 7, p1, Alive)
		place(gs, 3, 6, p1, Dead)
		place(gs, 6, 3, p1, Alive) // Cut off from the base
		place(gs, 4, 5, p2, Alive)
		place(gs, 4, 6, p2, Dead)
		b := gs.Snapshot()

		network := connected(b, p1)
		seen := map[Position]bool{}
		for _, c := range b.Available() {
			require.False(t, seen[c.Position], "Cell %v returned twice", c.Position)
			seen[c.Position] = true

			touches := false
			for _, n := range b.Neighbors(c) {
				if network[n.Position] {
					touches = true
				}
			}
			require.True(t, touches, "Cell %v is not reachable from the base", c.Position)
			require.True(t, c.State == Free || c.State == Alive)
			require.NotSame(t, p1, c.Owner)
		}
		require.Equal(t, len(seen), b.AvailableCount())

		require.True(t, b.At(4, 5).Available, "Enemy alive cell next to own dead cell")
		require.False(t, b.At(4, 6).Available, "Enemy dead cell")
		require.False(t, b.At(7, 2).Available, "Neighbour of the cut-off cell")
		require.True(t, b.At(4, 7).Available)
	})

	t.Run("no cells are available when the base is lost", func(t *testing.T) {
		gs, _, p2 := newTestGame(t)
		place(gs, 1, 8, p2, Dead)

		require.Equal(t, 0, gs.AvailableCount())
		require.Empty(t, gs.Snapshot().Available())
	})
}

func TestIsFightStarted(t *testing.T) {
	gs, p1, p2 := newTestGame(t)
	require.False(t, gs.IsFightStarted())

	place(gs, 4, 5, p1, Alive)
	place(gs, 6, 5, p2, Alive)
	require.False(t, gs.IsFightStarted(), "Cells two apart do not touch")

	place(gs, 5, 4, p2, Alive)
	require.True(t, gs.IsFightStarted(), "Diagonal contact counts")
}

func TestBoardString(t *testing.T) {
	gs, _, _ := newTestGame(t)
	gs.MakeTurn(2, 7)

	rows := gs.Snapshot().String()

	require.Equal(t, ""+
		"..........\n"+
		"........B.\n"+
		"..........\n"+
		"..........\n"+
		"..........\n"+
		"..........\n"+
		".***......\n"+
		"**a*......\n"+
		"*A**......\n"+
		"***.......\n", rows)
}

func TestParse(t *testing.T) {
	t.Run("board round-trips through String", func(t *testing.T) {
		rows := []string{
			"..........",
			"........B.",
			".......b..",
			"......1...",
			"..........",
			"..........",
			"...0......",
			"..a.......",
			".A........",
			"..........",
		}
		gs, err := Parse(rows, 3)
		require.NoError(t, err)
		require.Len(t, gs.Players(), 2)
		require.Equal(t, Position{X: 1, Y: 8}, gs.Players()[0].Base)
		require.Equal(t, Position{X: 8, Y: 1}, gs.Players()[1].Base)

		c, _ := gs.Cell(3, 6)
		require.Equal(t, Dead, c.State)
		require.Same(t, gs.Players()[0], c.Owner)

		again, err := Parse(strings.Split(strings.TrimSpace(gs.Snapshot().String()), "\n"), 3)
		require.NoError(t, err)
		require.Equal(t, gs.Snapshot().String(), again.Snapshot().String())
	})

	t.Run("malformed boards are rejected", func(t *testing.T) {
		for name, rows := range map[string][]string{
			"ragged":       {"A.........", "...", "..........", "..........", "..........", "..........", "..........", "..........", "..........", ".........B"},
			"missing base": {"A.........", "..........", "..........", "..........", "..........", "..........", "..........", "..........", "..........", ".........C"},
			"unknown cell": {"A.........", "..........", "....c.....", "..........", "..........", "..........", "..........", "..........", "..........", ".........B"},
		} {
			_, err := Parse(rows, 3)
			require.ErrorIs(t, err, ErrInvalidConfig, name)
		}
	})
}
