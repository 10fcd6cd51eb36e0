package entity

type ZoneKind uint8

const (
	GoalArea ZoneKind = iota + 1
	DefenseBox
)

func (that ZoneKind) String() string {
	switch that {
	case GoalArea:
		return "goal_area"
	case DefenseBox:
		return "defense_box"
	default:
		return ""
	}
}

// Zone - a marked area of the pitch and the team defending it.
type Zone struct {
	Kind  ZoneKind
	Owner Team
}

// ZoneOf - pure function of the coordinate.
// Goal areas: row 0 (A) and row 9 (B), columns 3-6.
// Defense boxes: rows 1-2 (A) and rows 7-8 (B).
func ZoneOf(coord Coord) (Zone, bool) {
	if !coord.InBounds() {
		return Zone{}, false
	}

	switch coord.Row {
	case 0, BoardSize - 1:
		if coord.Col < goalAreaFirstCol || coord.Col > goalAreaLastCol {
			return Zone{}, false
		}
		return Zone{Kind: GoalArea, Owner: baselineOwner(coord.Row)}, true
	case 1, 2:
		return Zone{Kind: DefenseBox, Owner: TeamA}, true
	case BoardSize - 3, BoardSize - 2:
		return Zone{Kind: DefenseBox, Owner: TeamB}, true
	default:
		return Zone{}, false
	}
}

// IsGoalAreaOf - reports whether coord is inside team's own goal area.
func IsGoalAreaOf(coord Coord, team Team) bool {
	zone, ok := ZoneOf(coord)
	return ok && zone == Zone{Kind: GoalArea, Owner: team}
}

// IsDefenseBoxOf - reports whether coord is inside team's own defense box.
func IsDefenseBoxOf(coord Coord, team Team) bool {
	zone, ok := ZoneOf(coord)
	return ok && zone == Zone{Kind: DefenseBox, Owner: team}
}

func baselineOwner(row int) Team {
	if row == 0 {
		return TeamA
	}
	return TeamB
}
