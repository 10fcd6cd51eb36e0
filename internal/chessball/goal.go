package chessball

import (
	"time"

	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/chessball-backend/internal/entity"
)

// blockChance - probability that a goalkeeper saves a shot landing on its square.
const blockChance = 0.5

// RandomSource - draws uniformly from [0, 1).
type RandomSource interface {
	Float64() float64
}

// NewRandomSource - seeded generator; a zero seed is replaced by the current time.
func NewRandomSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return rand.New(rand.NewSource(seed))
}

type GoalOutcome struct {
	State   entity.MatchState
	Goal    bool
	Blocked bool
}

// ResolveGoal - checks whether the ball landed in the goal area the acting team attacks.
func ResolveGoal(state entity.MatchState, random RandomSource) GoalOutcome {
	attacker := state.CurrentTeam

	if !entity.IsGoalAreaOf(state.Ball, attacker.Opponent()) {
		return GoalOutcome{State: state}
	}

	keeper, ok := state.Board.PieceAt(state.Ball)
	if ok && keeper.IsGoalkeeper() && keeper.Team != attacker && random.Float64() < blockChance {
		return GoalOutcome{State: state, Blocked: true}
	}

	return GoalOutcome{State: state.WithGoalFor(attacker), Goal: true}
}
