// Package action implements the dice-resolved action engine at the core
// of Charter: the four-tier outcome classifier, the declarative
// per-action-type specs, the ongoing-action tracker, and the state
// machine that drives a single action from button click through roll
// resolution to effect application.
package action

// Outcome is the four-tier result of classifying a die face.
type Outcome int

const (
	CritSuccess Outcome = iota
	Success
	Failure
	CritFailure
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case CritSuccess:
		return "critical success"
	case Success:
		return "success"
	case Failure:
		return "failure"
	case CritFailure:
		return "critical failure"
	default:
		return "unknown"
	}
}

// Succeeded reports whether the outcome counts as a success.
func (o Outcome) Succeeded() bool {
	return o == CritSuccess || o == Success
}

// Thresholds is the triple that partitions die faces into outcomes.
//
// Invariant: MinCritSuccess >= MinSuccess after Clamped. Classification
// assumes the caller has enforced this.
type Thresholds struct {
	// MinSuccess is the lowest succeeding face.
	MinSuccess int `yaml:"min_success"`
	// MinCritSuccess is the lowest critically succeeding face.
	MinCritSuccess int `yaml:"min_crit_success"`
	// MaxCritFail is the highest critically failing face. Zero or
	// negative means critical failure is impossible.
	MaxCritFail int `yaml:"max_crit_fail"`
}

// WithModifier applies an additive roll modifier: a positive modifier
// lowers both MinSuccess and MaxCritFail, making success easier and
// critical failure rarer in the same direction.
func (t Thresholds) WithModifier(modifier int) Thresholds {
	t.MinSuccess -= modifier
	t.MaxCritFail -= modifier
	return t
}

// Clamped enforces the crit-success floor: a face at the success cutoff
// cannot be success-eligible yet barred from critical success, so when
// modifiers push MinSuccess above MinCritSuccess the latter is raised
// to match.
//
// Postcondition: result.MinCritSuccess >= result.MinSuccess.
func (t Thresholds) Clamped() Thresholds {
	if t.MinCritSuccess < t.MinSuccess {
		t.MinCritSuccess = t.MinSuccess
	}
	return t
}

// Impossible reports whether no face on a dieSize-faced die can
// succeed. Callers must detect this before rolling and block the
// action rather than roll a doomed die.
func (t Thresholds) Impossible(dieSize int) bool {
	return t.MinSuccess > dieSize
}

// Classify maps a die face to its outcome under the given thresholds.
//
// Precondition: t has been through Clamped; face >= 1.
// Postcondition: Returns exactly one of the four outcomes.
func Classify(face int, t Thresholds) Outcome {
	switch {
	case face <= t.MaxCritFail:
		return CritFailure
	case face >= t.MinCritSuccess:
		return CritSuccess
	case face >= t.MinSuccess:
		return Success
	default:
		return Failure
	}
}
