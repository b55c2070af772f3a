package action

// Risk is the narrative danger label shown before the player commits
// to an action.
type Risk int

const (
	RiskLow Risk = iota
	RiskModerate
	RiskHigh
	RiskDeadly
)

// String returns the display label for the risk tier.
func (r Risk) String() string {
	switch r {
	case RiskLow:
		return "LOW"
	case RiskModerate:
		return "MODERATE"
	case RiskHigh:
		return "HIGH"
	case RiskDeadly:
		return "DEADLY"
	default:
		return "UNKNOWN"
	}
}

// RiskFor derives the risk tier from the net roll modifier: favourable
// modifiers lower the risk value, and a veteran's second die lowers it
// one step further.
func RiskFor(modifier int, veteran bool) Risk {
	value := -modifier
	if veteran {
		value--
	}
	switch {
	case value < 0:
		return RiskLow
	case value == 0:
		return RiskModerate
	case value == 1:
		return RiskHigh
	default:
		return RiskDeadly
	}
}
