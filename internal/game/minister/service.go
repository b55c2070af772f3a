package minister

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/charter/internal/game/dice"
)

// SeriesRequest describes a batch of action rolls performed through a
// single minister. Count is 1 for ordinary units and 2 for veterans.
type SeriesRequest struct {
	// Position names the seat whose minister performs the roll.
	Position Position
	// ActionType identifies the action for audit logging.
	ActionType string
	// DieSize is the number of faces on the action die.
	DieSize int
	// MinSuccess and MaxCritFail are the effective thresholds; a
	// corrupted roll is forced between them (failing, non-critical).
	MinSuccess  int
	MaxCritFail int
	// Price is the money charged for the action; a corrupt minister
	// pockets it.
	Price int
	// Count is the number of dice to roll.
	Count int
}

// Series is the result of a SeriesRequest.
//
// Invariant: len(Faces) == the request's Count.
type Series struct {
	// Faces holds the raw die values in roll order.
	Faces []int
	// Corrupt is true when the minister substituted biased faces.
	// Callers use it only to gate secondary narrative effects; the
	// faces themselves are treated the same either way.
	Corrupt bool
}

// RollSource is the capability interface the action engine rolls
// through. The production implementation is Service; tests use a
// deterministic Scripted source.
type RollSource interface {
	// Roll produces a single raw face on a dieSize-faced die with no
	// corruption handling. Effect appliers use it for secondary draws.
	Roll(dieSize int, actionType string) int
	// RollSeries produces the faces for one action, applying the
	// minister corruption check once for the whole series.
	RollSeries(req SeriesRequest) Series
}

// Service is the production RollSource backed by the appointed cabinet.
type Service struct {
	roster *Roster
	src    dice.Source
	logger *zap.Logger
}

// NewService creates a Service rolling with src for the given roster.
//
// Precondition: roster, src, and logger must be non-nil.
func NewService(roster *Roster, src dice.Source, logger *zap.Logger) *Service {
	return &Service{roster: roster, src: src, logger: logger}
}

// Roll returns a single uniform face in [1, dieSize].
//
// Precondition: dieSize >= 2.
func (s *Service) Roll(dieSize int, actionType string) int {
	face := s.src.Intn(dieSize) + 1
	s.logger.Debug("minister roll",
		zap.String("action", actionType),
		zap.Int("die_size", dieSize),
		zap.Int("face", face),
	)
	return face
}

// RollSeries performs the corruption check for the requested minister
// and then produces req.Count faces. On a corrupted roll every face is
// forced into the failing, non-critical band and the action's price is
// recorded as stolen.
//
// Precondition: req.Count >= 1; req.DieSize >= 2; the seat must be
// filled (enforced by the action engine's precondition chain).
// Postcondition: len(result.Faces) == req.Count.
func (s *Service) RollSeries(req SeriesRequest) Series {
	if req.Count < 1 {
		panic("minister: RollSeries precondition violated: Count must be >= 1")
	}

	m, ok := s.roster.For(req.Position)
	if !ok {
		panic("minister: RollSeries precondition violated: seat " + string(req.Position) + " is vacant")
	}

	corrupt := m.Corruption > 0 && s.src.Intn(6)+1 <= m.Corruption

	faces := make([]int, req.Count)
	if corrupt {
		for i := range faces {
			faces[i] = failingFace(s.src, req.DieSize, req.MinSuccess, req.MaxCritFail)
		}
		m.Stolen += req.Price
		s.logger.Debug("minister corrupted roll",
			zap.String("position", string(req.Position)),
			zap.String("action", req.ActionType),
			zap.Int("stolen", req.Price),
			zap.Ints("faces", faces),
		)
	} else {
		for i := range faces {
			faces[i] = s.src.Intn(req.DieSize) + 1
		}
		s.logger.Debug("minister roll series",
			zap.String("position", string(req.Position)),
			zap.String("action", req.ActionType),
			zap.Ints("faces", faces),
		)
	}

	return Series{Faces: faces, Corrupt: corrupt}
}

// failingFace picks a face that fails without being a critical failure:
// uniform in [maxCritFail+1, minSuccess-1]. When modifiers have squeezed
// that band shut the lowest non-critical face is used.
func failingFace(src dice.Source, dieSize, minSuccess, maxCritFail int) int {
	lo := maxCritFail + 1
	if lo < 1 {
		lo = 1
	}
	hi := minSuccess - 1
	if hi > dieSize {
		hi = dieSize
	}
	if hi < lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}
