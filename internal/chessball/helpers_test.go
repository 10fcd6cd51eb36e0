package chessball

import "github.com/rocketscienceinc/chessball-backend/internal/entity"

// fixedDraw - a RandomSource that always returns the same value.
type fixedDraw float64

func (that fixedDraw) Float64() float64 {
	return float64(that)
}

const (
	drawBlock = fixedDraw(0.1)
	drawScore = fixedDraw(0.9)
)

func at(row, col int) entity.Coord {
	return entity.Coord{Row: row, Col: col}
}

func field(team entity.Team, row, col int) entity.Piece {
	return entity.Piece{Team: team, Role: entity.RoleField, Position: at(row, col)}
}

func keeper(team entity.Team, row, col int) entity.Piece {
	return entity.Piece{Team: team, Role: entity.RoleGoalkeeper, Position: at(row, col)}
}

func boardWith(pieces ...entity.Piece) entity.Board {
	var board entity.Board
	for _, piece := range pieces {
		board = board.Place(piece)
	}
	return board
}

// ongoing - a started match on board with the ball on ball and team to act.
func ongoing(board entity.Board, ball entity.Coord, team entity.Team) entity.MatchState {
	state := entity.NewMatchState(3)
	state.Board = board
	state.Ball = ball
	state.CurrentTeam = team

	return state
}
