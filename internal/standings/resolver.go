// Package standings computes final placings for a match from raw metrics.
package standings

import (
	"errors"
	"sort"

	"party-score-tracker/internal/model"
)

// Supported player counts per match.
const (
	MinPlayers = 2
	MaxPlayers = 4
)

// Validation errors for raw result sets.
var (
	ErrPlayerCount     = errors.New("player count must be between 2 and 4")
	ErrNegativeMetric  = errors.New("metrics must not be negative")
	ErrDuplicateMember = errors.New("duplicate member in result set")
)

// Validate checks a raw result set before ranking: player-count bounds,
// non-negative metrics and member uniqueness.
func Validate(results []model.Result) error {
	if len(results) < MinPlayers || len(results) > MaxPlayers {
		return ErrPlayerCount
	}
	seen := make(map[int64]struct{}, len(results))
	for _, r := range results {
		if r.Stars < 0 || r.Coins < 0 || r.MinigamesWon < 0 || r.ShowdownWins < 0 {
			return ErrNegativeMetric
		}
		if _, ok := seen[r.MemberID]; ok {
			return ErrDuplicateMember
		}
		seen[r.MemberID] = struct{}{}
	}
	return nil
}

// Resolve validates results and assigns each a standing in 1..N.
//
// Ordering is descending by stars, then coins, then minigames won, then
// showdown wins; results that tie on all four metrics keep their submission
// order. Standings are dense ranks taken straight from the sorted position,
// so fully tied results still receive distinct consecutive placings.
// The slice is reordered in place to match the standings.
func Resolve(results []model.Result) error {
	if err := Validate(results); err != nil {
		return err
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Stars != b.Stars {
			return a.Stars > b.Stars
		}
		if a.Coins != b.Coins {
			return a.Coins > b.Coins
		}
		if a.MinigamesWon != b.MinigamesWon {
			return a.MinigamesWon > b.MinigamesWon
		}
		return a.ShowdownWins > b.ShowdownWins
	})

	for i := range results {
		results[i].Standing = i + 1
	}
	return nil
}
