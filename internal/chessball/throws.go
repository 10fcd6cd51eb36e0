package chessball

import "github.com/rocketscienceinc/chessball-backend/internal/entity"

const throwReach = 2

// ThrowDestinations - legal pass/shot targets for the carrier. Only the ball travels.
func ThrowDestinations(board entity.Board, piece entity.Piece, ball entity.Coord) []entity.Coord {
	from := piece.Position
	if from != ball {
		return nil
	}

	targets := make([]entity.Coord, 0, 16)

	for row := from.Row - throwReach; row <= from.Row+throwReach; row++ {
		for col := from.Col - throwReach; col <= from.Col+throwReach; col++ {
			to := entity.Coord{Row: row, Col: col}
			if !to.InBounds() || !isThrowOffset(from.Offset(to)) {
				continue
			}

			if canReceive(board, piece.Team, to) {
				targets = append(targets, to)
			}
		}
	}

	return targets
}

// isThrowOffset - straight or diagonal two squares, or the 1-and-2 knight jump.
func isThrowOffset(dRow, dCol int) bool {
	switch {
	case dRow == 2 && dCol <= 2:
		return true
	case dCol == 2 && dRow <= 2:
		return true
	default:
		return false
	}
}

// canReceive - empty squares and teammates receive a pass; the opposing goalkeeper
// can only be shot at inside its own goal area.
func canReceive(board entity.Board, team entity.Team, to entity.Coord) bool {
	occupant, ok := board.PieceAt(to)
	if !ok || occupant.Team == team {
		return true
	}

	return occupant.IsGoalkeeper() && entity.IsGoalAreaOf(to, occupant.Team)
}
