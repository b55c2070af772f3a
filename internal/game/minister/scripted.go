package minister

// Scripted is a deterministic RollSource for tests. It serves faces
// from a fixed queue and reports corruption per a fixed flag, so the
// action engine's logic is testable without simulating corruption
// probability.
type Scripted struct {
	// Faces is the queue of faces to serve, consumed front to back.
	Faces []int
	// Corrupt is reported on every RollSeries result.
	Corrupt bool

	i int
}

// Roll pops the next scripted face.
//
// Precondition: the queue must not be exhausted.
func (s *Scripted) Roll(dieSize int, actionType string) int {
	return s.next()
}

// RollSeries pops req.Count scripted faces.
//
// Precondition: the queue must hold at least req.Count more faces.
// Postcondition: len(result.Faces) == req.Count.
func (s *Scripted) RollSeries(req SeriesRequest) Series {
	faces := make([]int, req.Count)
	for i := range faces {
		faces[i] = s.next()
	}
	return Series{Faces: faces, Corrupt: s.Corrupt}
}

// Remaining reports how many scripted faces are left unserved.
func (s *Scripted) Remaining() int {
	return len(s.Faces) - s.i
}

func (s *Scripted) next() int {
	if s.i >= len(s.Faces) {
		panic("minister: Scripted source exhausted")
	}
	f := s.Faces[s.i]
	s.i++
	return f
}
