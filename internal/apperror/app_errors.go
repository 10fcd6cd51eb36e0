package apperror

import "errors"

var (
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrInvalidAction      = errors.New("invalid action")
	ErrIllegalDestination = errors.New("illegal destination")

	ErrMatchNotStarted   = errors.New("match is not started")
	ErrMatchFinished     = errors.New("match is already finished")
	ErrResetPending      = errors.New("goal scored, waiting for reset")
	ErrNoResetPending    = errors.New("no goal waiting for reset")
	ErrInvalidGoalTarget = errors.New("goal target must be positive")
	ErrNoActiveMatch     = errors.New("no active match")
)
