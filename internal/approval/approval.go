// Package approval implements the consensus transition rule for submitted
// matches. Evaluate is a pure function; the surrounding transaction and
// vote storage live in the service layer.
package approval

import (
	"party-score-tracker/internal/model"
)

// Tally is the current ballot count for one match. CPU members never vote,
// so both counters only ever reflect human ballots.
type Tally struct {
	Approvals  int
	Rejections int
}

// Majority returns the vote threshold for a group with humanCount active
// human members: floor(H/2) + 1.
func Majority(humanCount int) int {
	return humanCount/2 + 1
}

// Evaluate applies the transition rule to a pending match and returns the
// resulting status:
//
//   - approvals reach majority: approved
//   - rejections reach majority: rejected
//   - every human has voted and one side leads: the leading side
//   - otherwise: still pending
//
// Every human voting with the tally split evenly stays pending; a member
// re-voting is the only way out. Evaluate is idempotent: re-running it on
// the same tally yields the same status.
func Evaluate(tally Tally, humanCount int) model.MatchStatus {
	majority := Majority(humanCount)

	switch {
	case tally.Approvals >= majority:
		return model.MatchApproved
	case tally.Rejections >= majority:
		return model.MatchRejected
	case tally.Approvals+tally.Rejections == humanCount && tally.Approvals != tally.Rejections:
		if tally.Approvals > tally.Rejections {
			return model.MatchApproved
		}
		return model.MatchRejected
	default:
		return model.MatchPending
	}
}

// AutoApproved reports whether a newly submitted match skips consensus
// entirely: a group with a single active human has nobody to seek
// agreement from.
func AutoApproved(humanCount int) bool {
	return humanCount == 1
}
