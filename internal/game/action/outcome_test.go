package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestClassify_StandardD6(t *testing.T) {
	th := Thresholds{MinSuccess: 4, MinCritSuccess: 6, MaxCritFail: 1}

	expected := map[int]Outcome{
		1: CritFailure,
		2: Failure,
		3: Failure,
		4: Success,
		5: Success,
		6: CritSuccess,
	}
	for face, want := range expected {
		assert.Equal(t, want, Classify(face, th), "face %d", face)
	}
}

func TestClassify_CritFailureCheckedFirst(t *testing.T) {
	// When the bands overlap (a heavily penalized roll), the crit
	// failure band wins over the crit success band.
	th := Thresholds{MinSuccess: 7, MinCritSuccess: 5, MaxCritFail: 6}
	assert.Equal(t, CritFailure, Classify(6, th))
	assert.Equal(t, CritFailure, Classify(5, th))
}

func TestClassify_Totality(t *testing.T) {
	// Every face maps to exactly one outcome for any threshold set.
	rapid.Check(t, func(t *rapid.T) {
		th := Thresholds{
			MinSuccess:     rapid.IntRange(-3, 10).Draw(t, "minSuccess"),
			MinCritSuccess: rapid.IntRange(-3, 10).Draw(t, "minCrit"),
			MaxCritFail:    rapid.IntRange(-3, 10).Draw(t, "maxCritFail"),
		}.Clamped()
		face := rapid.IntRange(1, 6).Draw(t, "face")

		o := Classify(face, th)
		assert.Contains(t, []Outcome{CritSuccess, Success, Failure, CritFailure}, o)

		// A clamped threshold set never classifies a successful face
		// below MinSuccess.
		if o == CritSuccess {
			assert.GreaterOrEqual(t, face, th.MinSuccess)
		}
	})
}

func TestThresholds_WithModifier(t *testing.T) {
	th := Thresholds{MinSuccess: 4, MinCritSuccess: 6, MaxCritFail: 1}

	eased := th.WithModifier(2)
	assert.Equal(t, 2, eased.MinSuccess)
	assert.Equal(t, -1, eased.MaxCritFail, "crit failure band shrinks with the success band")
	assert.Equal(t, 6, eased.MinCritSuccess, "crit success threshold is untouched")

	hard := th.WithModifier(-2)
	assert.Equal(t, 6, hard.MinSuccess)
	assert.Equal(t, 3, hard.MaxCritFail)
}

func TestThresholds_Clamped(t *testing.T) {
	// A penalty can push MinSuccess past MinCritSuccess; the clamp
	// guarantees no face classifies as a critical success while being
	// an ordinary failure.
	th := Thresholds{MinSuccess: 4, MinCritSuccess: 6, MaxCritFail: 1}.WithModifier(-3)
	assert.Equal(t, 7, th.MinSuccess)

	clamped := th.Clamped()
	assert.Equal(t, 7, clamped.MinCritSuccess)

	// Already-ordered thresholds are unchanged.
	ok := Thresholds{MinSuccess: 4, MinCritSuccess: 6, MaxCritFail: 1}
	assert.Equal(t, ok, ok.Clamped())
}

func TestThresholds_ClampedProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		th := Thresholds{
			MinSuccess:     rapid.IntRange(-5, 15).Draw(t, "minSuccess"),
			MinCritSuccess: rapid.IntRange(-5, 15).Draw(t, "minCrit"),
			MaxCritFail:    rapid.IntRange(-5, 15).Draw(t, "maxCritFail"),
		}
		mod := rapid.IntRange(-6, 6).Draw(t, "modifier")

		c := th.WithModifier(mod).Clamped()
		assert.GreaterOrEqual(t, c.MinCritSuccess, c.MinSuccess)
	})
}

func TestThresholds_Impossible(t *testing.T) {
	th := Thresholds{MinSuccess: 4, MinCritSuccess: 6, MaxCritFail: 1}

	assert.False(t, th.Impossible(6))
	assert.True(t, th.WithModifier(-3).Impossible(6), "needing a 7 on a d6")
	assert.False(t, th.WithModifier(-2).Impossible(6), "needing a 6 is still possible")
	assert.False(t, th.WithModifier(-3).Impossible(8), "a larger die keeps it possible")
}

func TestRiskFor(t *testing.T) {
	cases := []struct {
		modifier int
		veteran  bool
		want     Risk
	}{
		{modifier: 1, veteran: false, want: RiskLow},
		{modifier: 0, veteran: true, want: RiskLow},
		{modifier: 0, veteran: false, want: RiskModerate},
		{modifier: -1, veteran: true, want: RiskModerate},
		{modifier: -1, veteran: false, want: RiskHigh},
		{modifier: -2, veteran: true, want: RiskHigh},
		{modifier: -2, veteran: false, want: RiskDeadly},
		{modifier: -3, veteran: false, want: RiskDeadly},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RiskFor(tc.modifier, tc.veteran),
			"modifier %d veteran %v", tc.modifier, tc.veteran)
	}
}

func TestRisk_String(t *testing.T) {
	assert.Equal(t, "LOW", RiskLow.String())
	assert.Equal(t, "MODERATE", RiskModerate.String())
	assert.Equal(t, "HIGH", RiskHigh.String())
	assert.Equal(t, "DEADLY", RiskDeadly.String())
}
