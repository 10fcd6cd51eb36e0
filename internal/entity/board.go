package entity

import "fmt"

const (
	BoardSize = 10

	goalAreaFirstCol = 3
	goalAreaLastCol  = 6

	// DefenseBoxCapacity - max pieces a team may keep inside its own defense box.
	DefenseBoxCapacity = 2
)

// Coord - a square on the board, 0-indexed.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Coord) InBounds() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

func (that Coord) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Offset - absolute row and column distance between two squares.
func (that Coord) Offset(other Coord) (int, int) {
	return abs(other.Row - that.Row), abs(other.Col - that.Col)
}

type Piece struct {
	Team     Team  `json:"team"`
	Role     Role  `json:"role"`
	Position Coord `json:"position"`
}

func (that Piece) IsGoalkeeper() bool {
	return that.Role == RoleGoalkeeper
}

// Square - board cell content; Team == NoTeam means the square is empty.
type Square struct {
	Team Team `json:"team,omitempty"`
	Role Role `json:"role,omitempty"`
}

func (that Square) IsEmpty() bool {
	return that.Team == NoTeam
}

// Board - value type, copying a Board copies every square.
type Board struct {
	Squares [BoardSize][BoardSize]Square `json:"squares"`
}

// PieceAt - returns the piece standing on coord.
func (that Board) PieceAt(coord Coord) (Piece, bool) {
	if !coord.InBounds() {
		return Piece{}, false
	}

	square := that.Squares[coord.Row][coord.Col]
	if square.IsEmpty() {
		return Piece{}, false
	}

	return Piece{Team: square.Team, Role: square.Role, Position: coord}, true
}

func (that Board) IsEmpty(coord Coord) bool {
	_, ok := that.PieceAt(coord)
	return !ok
}

// ZoneOf - returns the zone coord belongs to, if any.
func (that Board) ZoneOf(coord Coord) (Zone, bool) {
	return ZoneOf(coord)
}

// Pieces - all pieces in row-major order.
func (that Board) Pieces() []Piece {
	pieces := make([]Piece, 0, 2*TeamSize)

	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if piece, ok := that.PieceAt(Coord{Row: row, Col: col}); ok {
				pieces = append(pieces, piece)
			}
		}
	}

	return pieces
}

// CountInZone - number of the team's pieces inside zone, ignoring the square in except.
func (that Board) CountInZone(team Team, zone Zone, except Coord) int {
	count := 0

	for _, piece := range that.Pieces() {
		if piece.Team != team || piece.Position == except {
			continue
		}

		if pieceZone, ok := ZoneOf(piece.Position); ok && pieceZone == zone {
			count++
		}
	}

	return count
}

// Relocate - returns a copy of the board with the piece on from moved to the empty square to.
func (that Board) Relocate(from, to Coord) Board {
	next := that
	next.Squares[to.Row][to.Col] = next.Squares[from.Row][from.Col]
	next.Squares[from.Row][from.Col] = Square{}

	return next
}

// Swap - returns a copy of the board with the contents of a and b exchanged.
func (that Board) Swap(a, b Coord) Board {
	next := that
	next.Squares[a.Row][a.Col], next.Squares[b.Row][b.Col] = next.Squares[b.Row][b.Col], next.Squares[a.Row][a.Col]

	return next
}

// Place - returns a copy of the board with piece put on its position.
func (that Board) Place(piece Piece) Board {
	next := that
	next.Squares[piece.Position.Row][piece.Position.Col] = Square{Team: piece.Team, Role: piece.Role}

	return next
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
