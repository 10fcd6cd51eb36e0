package entity

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownTeam        = errors.New("unknown team")
	ErrUnknownRole        = errors.New("unknown role")
	ErrUnknownActionMode  = errors.New("unknown action mode")
	ErrUnknownMatchStatus = errors.New("unknown match status")
)

// Team - one of the two sides. The zero value marks an empty square.
type Team uint8

const (
	NoTeam Team = iota
	TeamA
	TeamB
)

// Opponent - returns the other side.
func (that Team) Opponent() Team {
	switch that {
	case TeamA:
		return TeamB
	case TeamB:
		return TeamA
	default:
		return NoTeam
	}
}

func (that Team) String() string {
	switch that {
	case TeamA:
		return "A"
	case TeamB:
		return "B"
	default:
		return ""
	}
}

func (that Team) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Team) UnmarshalText(text []byte) error {
	switch string(text) {
	case "A":
		*that = TeamA
	case "B":
		*that = TeamB
	case "":
		*that = NoTeam
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTeam, text)
	}

	return nil
}

// Role - what a piece is allowed to do.
type Role uint8

const (
	NoRole Role = iota
	RoleField
	RoleGoalkeeper
)

func (that Role) String() string {
	switch that {
	case RoleField:
		return "field"
	case RoleGoalkeeper:
		return "goalkeeper"
	default:
		return ""
	}
}

func (that Role) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Role) UnmarshalText(text []byte) error {
	switch string(text) {
	case "field":
		*that = RoleField
	case "goalkeeper":
		*that = RoleGoalkeeper
	case "":
		*that = NoRole
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRole, text)
	}

	return nil
}

// ActionMode - selects which evaluator produces the legal destinations.
type ActionMode uint8

const (
	ModeMove ActionMode = iota
	ModeThrow
)

func (that ActionMode) String() string {
	if that == ModeThrow {
		return "throw"
	}
	return "move"
}

func (that ActionMode) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *ActionMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "move", "":
		*that = ModeMove
	case "throw":
		*that = ModeThrow
	default:
		return fmt.Errorf("%w: %q", ErrUnknownActionMode, text)
	}

	return nil
}
