// Package approval tests for the consensus transition rule.
package approval

import (
	"testing"

	"party-score-tracker/internal/model"
)

func TestMajority(t *testing.T) {
	tests := []struct {
		humans int
		want   int
	}{
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 3},
		{5, 3},
	}

	for _, tt := range tests {
		if got := Majority(tt.humans); got != tt.want {
			t.Errorf("Majority(%d) = %d, want %d", tt.humans, got, tt.want)
		}
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		tally  Tally
		humans int
		want   model.MatchStatus
	}{
		{"no votes stays pending", Tally{0, 0}, 3, model.MatchPending},
		{"single approve of three stays pending", Tally{1, 0}, 3, model.MatchPending},
		{"two approves of three approve", Tally{2, 0}, 3, model.MatchApproved},
		{"two rejects of three reject", Tally{0, 2}, 3, model.MatchRejected},
		{"split one-one of three stays pending", Tally{1, 1}, 3, model.MatchPending},
		{"exhausted two-one approves", Tally{2, 1}, 3, model.MatchApproved},
		{"exhausted one-two rejects", Tally{1, 2}, 3, model.MatchRejected},
		{"exhausted tie of two stays pending", Tally{1, 1}, 2, model.MatchPending},
		{"both approve of two approve", Tally{2, 0}, 2, model.MatchApproved},
		{"both reject of two reject", Tally{0, 2}, 2, model.MatchRejected},
		{"exhausted three-one of four approves", Tally{3, 1}, 4, model.MatchApproved},
		{"exhausted tie of four stays pending", Tally{2, 2}, 4, model.MatchPending},
		{"single human approves alone", Tally{1, 0}, 1, model.MatchApproved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.tally, tt.humans)
			if got != tt.want {
				t.Errorf("Evaluate(%+v, %d) = %s, want %s", tt.tally, tt.humans, got, tt.want)
			}
		})
	}
}

func TestAutoApproved(t *testing.T) {
	if !AutoApproved(1) {
		t.Error("a single active human should auto-approve")
	}
	for _, humans := range []int{0, 2, 3, 4} {
		if AutoApproved(humans) {
			t.Errorf("AutoApproved(%d) = true, want false", humans)
		}
	}
}
