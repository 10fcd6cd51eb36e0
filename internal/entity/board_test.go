package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialBoard(t *testing.T) {
	// Given: the starting formation
	board := InitialBoard()

	// When: listing every piece
	pieces := board.Pieces()

	// Then: each team fields one goalkeeper and five field pieces
	require.Len(t, pieces, 2*TeamSize)

	counts := map[Team]map[Role]int{TeamA: {}, TeamB: {}}
	for _, piece := range pieces {
		counts[piece.Team][piece.Role]++
	}

	assert.Equal(t, map[Role]int{RoleGoalkeeper: 1, RoleField: 5}, counts[TeamA])
	assert.Equal(t, map[Role]int{RoleGoalkeeper: 1, RoleField: 5}, counts[TeamB])

	// And: the ball starts with Team A's centre piece
	carrier, ok := board.PieceAt(KickOff)
	require.True(t, ok)
	assert.Equal(t, TeamA, carrier.Team)
}

func TestBoard_PieceAt(t *testing.T) {
	board := InitialBoard()

	t.Run("Returns the goalkeeper on its square", func(t *testing.T) {
		// When: looking at Team B's goal line
		piece, ok := board.PieceAt(Coord{Row: 9, Col: 4})

		// Then: Team B's goalkeeper is found
		require.True(t, ok)
		assert.Equal(t, Piece{Team: TeamB, Role: RoleGoalkeeper, Position: Coord{Row: 9, Col: 4}}, piece)
	})

	t.Run("Empty square", func(t *testing.T) {
		_, ok := board.PieceAt(Coord{Row: 5, Col: 5})

		assert.False(t, ok)
		assert.True(t, board.IsEmpty(Coord{Row: 5, Col: 5}))
	})

	t.Run("Out of bounds", func(t *testing.T) {
		_, ok := board.PieceAt(Coord{Row: 10, Col: 0})

		assert.False(t, ok)
		assert.False(t, Coord{Row: -1, Col: 3}.InBounds())
	})
}

func TestZoneOf(t *testing.T) {
	tests := []struct {
		name  string
		coord Coord
		zone  Zone
		ok    bool
	}{
		{"Team A goal area left edge", Coord{Row: 0, Col: 3}, Zone{Kind: GoalArea, Owner: TeamA}, true},
		{"Team A goal area right edge", Coord{Row: 0, Col: 6}, Zone{Kind: GoalArea, Owner: TeamA}, true},
		{"Team A baseline outside goal", Coord{Row: 0, Col: 2}, Zone{}, false},
		{"Team B goal area", Coord{Row: 9, Col: 5}, Zone{Kind: GoalArea, Owner: TeamB}, true},
		{"Team B baseline outside goal", Coord{Row: 9, Col: 7}, Zone{}, false},
		{"Team A defense box", Coord{Row: 1, Col: 0}, Zone{Kind: DefenseBox, Owner: TeamA}, true},
		{"Team A defense box second row", Coord{Row: 2, Col: 9}, Zone{Kind: DefenseBox, Owner: TeamA}, true},
		{"Team B defense box", Coord{Row: 7, Col: 4}, Zone{Kind: DefenseBox, Owner: TeamB}, true},
		{"Team B defense box second row", Coord{Row: 8, Col: 8}, Zone{Kind: DefenseBox, Owner: TeamB}, true},
		{"Midfield", Coord{Row: 4, Col: 4}, Zone{}, false},
		{"Out of bounds", Coord{Row: 10, Col: 4}, Zone{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zone, ok := ZoneOf(tt.coord)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.zone, zone)
		})
	}
}

func TestBoard_Relocate(t *testing.T) {
	// Given: the starting board
	board := InitialBoard()

	// When: moving Team A's centre piece forward
	moved := board.Relocate(Coord{Row: 4, Col: 4}, Coord{Row: 5, Col: 5})

	// Then: the copy changed and the original did not
	assert.True(t, moved.IsEmpty(Coord{Row: 4, Col: 4}))
	assert.False(t, moved.IsEmpty(Coord{Row: 5, Col: 5}))
	assert.False(t, board.IsEmpty(Coord{Row: 4, Col: 4}))
	assert.True(t, board.IsEmpty(Coord{Row: 5, Col: 5}))
}

func TestBoard_Swap(t *testing.T) {
	// Given: opponents on two squares
	board := InitialBoard()
	a, b := Coord{Row: 4, Col: 4}, Coord{Row: 5, Col: 4}

	// When: swapping them
	swapped := board.Swap(a, b)

	// Then: both pieces traded places and nobody disappeared
	pieceA, _ := swapped.PieceAt(a)
	pieceB, _ := swapped.PieceAt(b)
	assert.Equal(t, TeamB, pieceA.Team)
	assert.Equal(t, TeamA, pieceB.Team)
	assert.Len(t, swapped.Pieces(), 2*TeamSize)
}

func TestBoard_CountInZone(t *testing.T) {
	board := InitialBoard()
	box := Zone{Kind: DefenseBox, Owner: TeamA}

	t.Run("Counts the defenders", func(t *testing.T) {
		assert.Equal(t, 2, board.CountInZone(TeamA, box, Coord{Row: -1, Col: -1}))
	})

	t.Run("Ignores the vacated square", func(t *testing.T) {
		assert.Equal(t, 1, board.CountInZone(TeamA, box, Coord{Row: 2, Col: 2}))
	})

	t.Run("Ignores the other team", func(t *testing.T) {
		assert.Equal(t, 0, board.CountInZone(TeamB, box, Coord{Row: -1, Col: -1}))
	})
}
