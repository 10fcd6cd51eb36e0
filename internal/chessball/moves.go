package chessball

import "github.com/rocketscienceinc/chessball-backend/internal/entity"

// MoveDestinations - legal one-square relocations for piece, plus the diagonal tackle square.
func MoveDestinations(board entity.Board, piece entity.Piece, ball entity.Coord) []entity.Coord {
	from := piece.Position
	moves := make([]entity.Coord, 0, 9)

	for dRow := -1; dRow <= 1; dRow++ {
		for dCol := -1; dCol <= 1; dCol++ {
			to := entity.Coord{Row: from.Row + dRow, Col: from.Col + dCol}

			if to == from || !to.InBounds() {
				continue
			}

			// a plain move never lands on an occupied square
			if !board.IsEmpty(to) {
				continue
			}

			if !mayStand(board, piece, to, from) {
				continue
			}

			moves = append(moves, to)
		}
	}

	if IsTackle(board, piece, ball) {
		moves = append(moves, ball)
	}

	return moves
}

// IsTackle - reports whether piece may take the ball from the opponent carrier on ball.
// The carrier must be diagonally adjacent and both pieces must be able to stand on
// each other's square after the exchange.
// A carrying goalkeeper can therefore never be tackled: it may not leave its goal area.
func IsTackle(board entity.Board, piece entity.Piece, ball entity.Coord) bool {
	carrier, ok := board.PieceAt(ball)
	if !ok || carrier.Team == piece.Team {
		return false
	}

	dRow, dCol := piece.Position.Offset(ball)
	if dRow != 1 || dCol != 1 {
		return false
	}

	return mayStand(board, piece, ball, piece.Position) && mayStand(board, carrier, piece.Position, ball)
}

// mayStand - goalkeeper strip and defense box capacity for piece arriving on to.
// The piece currently on vacated is not counted against the capacity.
func mayStand(board entity.Board, piece entity.Piece, to, vacated entity.Coord) bool {
	if piece.IsGoalkeeper() && !entity.IsGoalAreaOf(to, piece.Team) {
		return false
	}

	if !entity.IsDefenseBoxOf(to, piece.Team) {
		return true
	}

	box, _ := entity.ZoneOf(to)

	return board.CountInZone(piece.Team, box, vacated) < entity.DefenseBoxCapacity
}
