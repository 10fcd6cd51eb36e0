package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/chessball-backend/internal/apperror"
	"github.com/rocketscienceinc/chessball-backend/internal/chessball"
	"github.com/rocketscienceinc/chessball-backend/internal/entity"
	"github.com/rocketscienceinc/chessball-backend/internal/repository"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload - request and response body shared by every action.
type Payload struct {
	Player *entity.Player `json:"player,omitempty"`
	Match  *entity.Match  `json:"match,omitempty"`

	Coord      *entity.Coord      `json:"coord,omitempty"`
	Mode       *entity.ActionMode `json:"mode,omitempty"`
	GoalTarget int                `json:"goal_target,omitempty"`

	Destinations []entity.Coord `json:"destinations,omitempty"`
	Result       *Outcome       `json:"result,omitempty"`
	Error        string         `json:"error,omitempty"`
}

// Outcome - the flags of a commit; the new state travels in Payload.Match.
type Outcome struct {
	Tackled   bool `json:"tackled"`
	Goal      bool `json:"goal"`
	Blocked   bool `json:"blocked"`
	ExtraMove bool `json:"extra_move"`
}

func newOutcome(result chessball.CommitResult) *Outcome {
	return &Outcome{
		Tackled:   result.Tackled,
		Goal:      result.Goal,
		Blocked:   result.Blocked,
		ExtraMove: result.ExtraMove,
	}
}

// connection - one client socket. gorilla allows a single concurrent
// writer, and reset pushes arrive from timer goroutines.
type connection struct {
	conn *websocket.Conn

	mu       sync.Mutex
	playerID string
}

func (that *connection) send(action string, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err = that.conn.WriteJSON(Message{Action: action, Payload: body}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *connection) sendError(action, errorMsg string) error {
	if err := that.send(action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}

func (that *connection) player() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.playerID
}

func (that *connection) bind(playerID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.playerID = playerID
}

var clientErrors = []error{
	apperror.ErrInvalidSelection,
	apperror.ErrInvalidAction,
	apperror.ErrIllegalDestination,
	apperror.ErrMatchNotStarted,
	apperror.ErrMatchFinished,
	apperror.ErrResetPending,
	apperror.ErrNoResetPending,
	apperror.ErrInvalidGoalTarget,
	apperror.ErrNoActiveMatch,
	repository.ErrPlayerNotFound,
	repository.ErrMatchNotFound,
}

// errorText - rule and lookup errors are shown to the client as is,
// anything else is reported as an internal failure.
func errorText(err error) string {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return err.Error()
		}
	}

	return "internal server error"
}
