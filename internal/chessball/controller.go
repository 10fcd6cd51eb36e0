package chessball

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/chessball-backend/internal/apperror"
	"github.com/rocketscienceinc/chessball-backend/internal/entity"
)

// CommitResult - what a confirmed action did.
type CommitResult struct {
	State     entity.MatchState `json:"state"`
	Tackled   bool              `json:"tackled"`
	Goal      bool              `json:"goal"`
	Blocked   bool              `json:"blocked"`
	ExtraMove bool              `json:"extra_move"`
}

// Controller - turn state machine. It owns the match state and replaces it
// wholesale on every accepted action; rejected actions leave it untouched.
type Controller struct {
	state  entity.MatchState
	turn   entity.TurnState
	random RandomSource
}

func NewController(random RandomSource) *Controller {
	return &Controller{
		state:  entity.MatchState{Status: entity.StatusWaiting},
		random: random,
	}
}

// Restore - rebuilds a controller from a persisted snapshot.
func Restore(state entity.MatchState, turn entity.TurnState, random RandomSource) *Controller {
	if turn.Selected == nil {
		turn = entity.TurnState{}
	}

	return &Controller{
		state:  state,
		turn:   turn,
		random: random,
	}
}

func (that *Controller) State() entity.MatchState {
	return that.state
}

func (that *Controller) Turn() entity.TurnState {
	return that.turn
}

// StartMatch - initial formation, ball at kick-off, scores zeroed.
func (that *Controller) StartMatch(goalTarget int) (entity.MatchState, error) {
	if goalTarget <= 0 {
		return that.state, fmt.Errorf("%w: got %d", apperror.ErrInvalidGoalTarget, goalTarget)
	}

	that.state = entity.NewMatchState(goalTarget)
	that.turn = entity.TurnState{}

	return that.state, nil
}

// Select - picks a piece of the team to act.
func (that *Controller) Select(coord entity.Coord) (entity.Piece, error) {
	if err := that.confirmPlayable(); err != nil {
		return entity.Piece{}, err
	}

	if that.turn.ExtraMove && *that.turn.Selected != coord {
		return entity.Piece{}, fmt.Errorf("%w: extra move belongs to the piece at %s", apperror.ErrInvalidSelection, *that.turn.Selected)
	}

	piece, ok := that.state.Board.PieceAt(coord)
	if !ok {
		return entity.Piece{}, fmt.Errorf("%w: no piece at %s", apperror.ErrInvalidSelection, coord)
	}

	if piece.Team != that.state.CurrentTeam {
		return entity.Piece{}, fmt.Errorf("%w: piece at %s belongs to team %s", apperror.ErrInvalidSelection, coord, piece.Team)
	}

	if that.state.IsSkipped(coord) {
		return entity.Piece{}, fmt.Errorf("%w: piece at %s was tackled and skips this turn", apperror.ErrInvalidSelection, coord)
	}

	if that.turn.ExtraMove {
		return piece, nil
	}

	selected := coord
	that.turn = entity.TurnState{Selected: &selected, Mode: entity.ModeMove}

	return piece, nil
}

// Deselect - drops the current selection.
func (that *Controller) Deselect() error {
	if err := that.confirmPlayable(); err != nil {
		return err
	}

	if that.turn.ExtraMove {
		return fmt.Errorf("%w: the tackling piece must use its extra move", apperror.ErrInvalidAction)
	}

	that.turn = entity.TurnState{}

	return nil
}

// SetActionMode - switches between moving the piece and throwing the ball.
func (that *Controller) SetActionMode(mode entity.ActionMode) error {
	if err := that.confirmPlayable(); err != nil {
		return err
	}

	if that.turn.Selected == nil {
		return fmt.Errorf("%w: no piece selected", apperror.ErrInvalidAction)
	}

	switch mode {
	case entity.ModeMove:
	case entity.ModeThrow:
		if that.turn.ExtraMove {
			return fmt.Errorf("%w: only a move is allowed after a tackle", apperror.ErrInvalidAction)
		}

		if !that.state.HasBall(*that.turn.Selected) {
			return fmt.Errorf("%w: piece at %s does not carry the ball", apperror.ErrInvalidAction, *that.turn.Selected)
		}
	default:
		return fmt.Errorf("%w: unknown mode %d", apperror.ErrInvalidAction, mode)
	}

	that.turn = entity.TurnState{
		Selected:  that.turn.Selected,
		Mode:      mode,
		ExtraMove: that.turn.ExtraMove,
	}

	return nil
}

// LegalDestinations - pure function of the selection and mode.
func (that *Controller) LegalDestinations() []entity.Coord {
	if that.confirmPlayable() != nil || that.turn.Selected == nil {
		return nil
	}

	piece, ok := that.state.Board.PieceAt(*that.turn.Selected)
	if !ok {
		return nil
	}

	switch that.turn.Mode {
	case entity.ModeMove:
		return MoveDestinations(that.state.Board, piece, that.state.Ball)
	case entity.ModeThrow:
		return ThrowDestinations(that.state.Board, piece, that.state.Ball)
	default:
		return nil
	}
}

// Commit - applies the selected action to coord atomically.
func (that *Controller) Commit(coord entity.Coord) (CommitResult, error) {
	if err := that.confirmPlayable(); err != nil {
		return CommitResult{}, err
	}

	if that.turn.Selected == nil {
		return CommitResult{}, fmt.Errorf("%w: no piece selected", apperror.ErrIllegalDestination)
	}

	if !slices.Contains(that.LegalDestinations(), coord) {
		return CommitResult{}, fmt.Errorf("%w: %s for %s", apperror.ErrIllegalDestination, coord, that.turn.Mode)
	}

	piece, _ := that.state.Board.PieceAt(*that.turn.Selected)

	var result CommitResult

	next := that.state
	if that.turn.Mode == entity.ModeThrow {
		next = applyThrow(next, coord)
	} else {
		next, result.Tackled = applyMove(next, piece, coord)
	}

	// a tackle wins the ball without moving it, so it can still land a goal
	if next.Ball != that.state.Ball || result.Tackled {
		outcome := ResolveGoal(next, that.random)
		next, result.Goal, result.Blocked = outcome.State, outcome.Goal, outcome.Blocked
	}

	turn := entity.TurnState{}

	if result.Tackled && !result.Goal && !that.turn.ExtraMove {
		tackler := entity.Piece{Team: piece.Team, Role: piece.Role, Position: coord}

		// a tackler with nowhere to go forfeits the extra move
		if len(MoveDestinations(next.Board, tackler, next.Ball)) > 0 {
			selected := coord
			turn = entity.TurnState{Selected: &selected, Mode: entity.ModeMove, ExtraMove: true}
			result.ExtraMove = true
		}
	}

	if !result.ExtraMove {
		next = handOver(next)
	}

	that.state = next
	that.turn = turn
	result.State = next

	return result, nil
}

// ResetAfterGoal - called by the host once its settling delay is over.
func (that *Controller) ResetAfterGoal() (entity.MatchState, error) {
	if !that.state.ResetPending {
		return that.state, apperror.ErrNoResetPending
	}

	that.state = that.state.WithFormationReset()
	that.turn = entity.TurnState{}

	return that.state, nil
}

// EndMatch - finishes the match on the host's behalf, e.g. when its clock runs out.
func (that *Controller) EndMatch() (entity.MatchState, error) {
	if err := that.state.ConfirmOngoingState(); err != nil {
		return that.state, err
	}

	that.state = that.state.Finished()
	that.turn = entity.TurnState{}

	return that.state, nil
}

func (that *Controller) confirmPlayable() error {
	if err := that.state.ConfirmOngoingState(); err != nil {
		return err
	}

	if that.state.ResetPending {
		return apperror.ErrResetPending
	}

	return nil
}
