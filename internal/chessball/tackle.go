package chessball

import "github.com/rocketscienceinc/chessball-backend/internal/entity"

// applyMove - relocates piece to to. Moving onto the opponent carrier is a tackle:
// the carrier is pushed back onto the tackler's old square and has to sit out its
// team's next turn there.
func applyMove(state entity.MatchState, piece entity.Piece, to entity.Coord) (entity.MatchState, bool) {
	from := piece.Position
	next := state

	if target, ok := state.Board.PieceAt(to); ok && target.Team != piece.Team {
		next.Board = state.Board.Swap(from, to)
		next.Ball = to

		skipped := from
		next.Skipped = &skipped

		return next, true
	}

	next.Board = state.Board.Relocate(from, to)
	if state.Ball == from {
		next.Ball = to
	}

	return next, false
}

// applyThrow - only the ball travels.
func applyThrow(state entity.MatchState, to entity.Coord) entity.MatchState {
	next := state
	next.Ball = to

	return next
}

// handOver - gives possession to the other team. A team that just played its turn
// without its tackled piece has served the penalty.
func handOver(state entity.MatchState) entity.MatchState {
	next := state

	if next.Skipped != nil {
		if penalized, ok := next.Board.PieceAt(*next.Skipped); !ok || penalized.Team == next.CurrentTeam {
			next.Skipped = nil
		}
	}

	next.CurrentTeam = next.CurrentTeam.Opponent()

	return next
}
