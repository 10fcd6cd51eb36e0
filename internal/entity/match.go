package entity

import (
	"fmt"

	"github.com/rocketscienceinc/chessball-backend/internal/apperror"
)

const (
	StatusWaiting  = "waiting"
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"

	WinnerDraw = "draw"

	// TeamSize - one goalkeeper and five field pieces.
	TeamSize = 6
)

// KickOff - the ball's square at match start and after every goal.
var KickOff = Coord{Row: 4, Col: 4}

var formation = map[Team][TeamSize]Piece{
	TeamA: {
		{Team: TeamA, Role: RoleGoalkeeper, Position: Coord{Row: 0, Col: 4}},
		{Team: TeamA, Role: RoleField, Position: Coord{Row: 2, Col: 2}},
		{Team: TeamA, Role: RoleField, Position: Coord{Row: 2, Col: 5}},
		{Team: TeamA, Role: RoleField, Position: Coord{Row: 3, Col: 3}},
		{Team: TeamA, Role: RoleField, Position: Coord{Row: 3, Col: 6}},
		{Team: TeamA, Role: RoleField, Position: Coord{Row: 4, Col: 4}},
	},
	TeamB: {
		{Team: TeamB, Role: RoleGoalkeeper, Position: Coord{Row: 9, Col: 4}},
		{Team: TeamB, Role: RoleField, Position: Coord{Row: 7, Col: 2}},
		{Team: TeamB, Role: RoleField, Position: Coord{Row: 7, Col: 5}},
		{Team: TeamB, Role: RoleField, Position: Coord{Row: 6, Col: 3}},
		{Team: TeamB, Role: RoleField, Position: Coord{Row: 6, Col: 6}},
		{Team: TeamB, Role: RoleField, Position: Coord{Row: 5, Col: 4}},
	},
}

// InitialBoard - both teams in their starting formation.
func InitialBoard() Board {
	var board Board

	for _, team := range []Team{TeamA, TeamB} {
		for _, piece := range formation[team] {
			board = board.Place(piece)
		}
	}

	return board
}

type MatchState struct {
	Board        Board  `json:"board"`
	Ball         Coord  `json:"ball"`
	CurrentTeam  Team   `json:"current_team"`
	Skipped      *Coord `json:"skipped,omitempty"`
	ScoreA       int    `json:"score_a"`
	ScoreB       int    `json:"score_b"`
	GoalTarget   int    `json:"goal_target"`
	Status       string `json:"status"`
	Winner       string `json:"winner,omitempty"`
	ResetPending bool   `json:"reset_pending,omitempty"`
}

// NewMatchState - initial formation, ball at kick-off, scores zeroed, Team A to act.
func NewMatchState(goalTarget int) MatchState {
	return MatchState{
		Board:       InitialBoard(),
		Ball:        KickOff,
		CurrentTeam: TeamA,
		GoalTarget:  goalTarget,
		Status:      StatusOngoing,
	}
}

// WithFormationReset - returns a copy with pieces and ball back at kick-off; scores and turn are kept.
func (that MatchState) WithFormationReset() MatchState {
	next := that
	next.Board = InitialBoard()
	next.Ball = KickOff
	next.Skipped = nil
	next.ResetPending = false

	return next
}

// Carrier - the piece co-located with the ball.
func (that MatchState) Carrier() (Piece, bool) {
	return that.Board.PieceAt(that.Ball)
}

func (that MatchState) HasBall(coord Coord) bool {
	_, ok := that.Board.PieceAt(coord)
	return ok && that.Ball == coord
}

func (that MatchState) IsSkipped(coord Coord) bool {
	return that.Skipped != nil && *that.Skipped == coord
}

func (that MatchState) Score(team Team) int {
	switch team {
	case TeamA:
		return that.ScoreA
	case TeamB:
		return that.ScoreB
	default:
		return 0
	}
}

// WithGoalFor - returns a copy with team's score incremented; finishes the match once goalTarget is reached.
func (that MatchState) WithGoalFor(team Team) MatchState {
	next := that

	switch team {
	case TeamA:
		next.ScoreA++
	case TeamB:
		next.ScoreB++
	default:
		return next
	}

	next.ResetPending = true

	if next.GoalTarget > 0 && next.Score(team) >= next.GoalTarget {
		next.Status = StatusFinished
		next.Winner = team.String()
	}

	return next
}

// Finished - returns a copy of the state ended by the host (clock expiry).
func (that MatchState) Finished() MatchState {
	next := that
	next.Status = StatusFinished

	switch {
	case next.ScoreA > next.ScoreB:
		next.Winner = TeamA.String()
	case next.ScoreB > next.ScoreA:
		next.Winner = TeamB.String()
	default:
		next.Winner = WinnerDraw
	}

	return next
}

func (that MatchState) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that MatchState) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that MatchState) IsWaiting() bool {
	return that.Status == StatusWaiting || that.Status == ""
}

func (that MatchState) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrMatchNotStarted
	case that.IsFinished():
		return apperror.ErrMatchFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownMatchStatus, that.Status)
	}
}

// TurnState - the controller's selection between two actions.
type TurnState struct {
	Selected  *Coord     `json:"selected,omitempty"`
	Mode      ActionMode `json:"mode"`
	ExtraMove bool       `json:"extra_move,omitempty"`
}

// Match - the persisted aggregate.
type Match struct {
	ID       string     `json:"id"`
	PlayerID string     `json:"player_id"`
	State    MatchState `json:"state"`
	Turn     TurnState  `json:"turn"`
}
