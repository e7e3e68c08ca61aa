// Package approval property-based tests for the consensus transition rule.
package approval

import (
	"testing"

	"pgregory.net/rapid"

	"party-score-tracker/internal/model"
)

// TestEvaluateMajorityProperty checks the transition rule against its
// definition for any reachable tally: a side reaching floor(H/2)+1 ballots
// decides the match, an exhausted unbalanced tally decides for the larger
// side, everything else stays pending.
func TestEvaluateMajorityProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		humans := rapid.IntRange(1, 4).Draw(t, "humans")
		approvals := rapid.IntRange(0, humans).Draw(t, "approvals")
		rejections := rapid.IntRange(0, humans-approvals).Draw(t, "rejections")

		tally := Tally{Approvals: approvals, Rejections: rejections}
		got := Evaluate(tally, humans)

		majority := humans/2 + 1
		var want model.MatchStatus
		switch {
		case approvals >= majority:
			want = model.MatchApproved
		case rejections >= majority:
			want = model.MatchRejected
		case approvals+rejections == humans && approvals != rejections:
			if approvals > rejections {
				want = model.MatchApproved
			} else {
				want = model.MatchRejected
			}
		default:
			want = model.MatchPending
		}

		if got != want {
			t.Fatalf("Evaluate(%+v, %d) = %s, want %s", tally, humans, got, want)
		}
	})
}

// TestEvaluateIdempotenceProperty checks that re-evaluating the same tally
// always yields the same status.
func TestEvaluateIdempotenceProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		humans := rapid.IntRange(1, 4).Draw(t, "humans")
		approvals := rapid.IntRange(0, humans).Draw(t, "approvals")
		rejections := rapid.IntRange(0, humans-approvals).Draw(t, "rejections")

		tally := Tally{Approvals: approvals, Rejections: rejections}
		first := Evaluate(tally, humans)
		for i := 0; i < 3; i++ {
			if got := Evaluate(tally, humans); got != first {
				t.Fatalf("evaluation %d diverged: %s != %s", i+2, got, first)
			}
		}
	})
}

// TestEvaluateExhaustedTieStaysPendingProperty checks the one exhausted
// case that never resolves: every human voted and the tally is even.
func TestEvaluateExhaustedTieStaysPendingProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		half := rapid.IntRange(1, 2).Draw(t, "half")
		humans := half * 2

		got := Evaluate(Tally{Approvals: half, Rejections: half}, humans)
		if got != model.MatchPending {
			t.Fatalf("exhausted %d-%d tie of %d humans resolved to %s, want pending", half, half, humans, got)
		}
	})
}
