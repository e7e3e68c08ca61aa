// Package standings property-based tests for the position resolver.
package standings

import (
	"testing"

	"pgregory.net/rapid"

	"party-score-tracker/internal/model"
)

// drawResults generates a valid raw result set of 2-4 players with
// non-negative metrics and distinct member ids.
func drawResults(t *rapid.T) []model.Result {
	n := rapid.IntRange(MinPlayers, MaxPlayers).Draw(t, "n")
	results := make([]model.Result, n)
	for i := 0; i < n; i++ {
		results[i] = model.Result{
			MemberID:     int64(i + 1),
			Stars:        rapid.IntRange(0, 50).Draw(t, "stars"),
			Coins:        rapid.IntRange(0, 200).Draw(t, "coins"),
			MinigamesWon: rapid.IntRange(0, 20).Draw(t, "minigames"),
			ShowdownWins: rapid.IntRange(0, 10).Draw(t, "showdowns"),
		}
	}
	return results
}

// TestResolveStandingsPermutationProperty checks that standings are always
// a permutation of 1..N consistent with descending star order.
func TestResolveStandingsPermutationProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		results := drawResults(t)
		n := len(results)

		if err := Resolve(results); err != nil {
			t.Fatalf("Resolve failed on valid input: %v", err)
		}

		seen := make(map[int]bool, n)
		for _, r := range results {
			if r.Standing < 1 || r.Standing > n {
				t.Fatalf("standing %d out of range 1..%d", r.Standing, n)
			}
			if seen[r.Standing] {
				t.Fatalf("duplicate standing %d", r.Standing)
			}
			seen[r.Standing] = true
		}

		for i := 1; i < n; i++ {
			if results[i-1].Stars < results[i].Stars {
				t.Fatalf("standings not consistent with descending stars: %d before %d",
					results[i-1].Stars, results[i].Stars)
			}
		}
	})
}

// TestResolveTieBreakDeterminismProperty checks that two results tied on
// the first three metrics always rank by showdown wins, regardless of
// their input order.
func TestResolveTieBreakDeterminismProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		stars := rapid.IntRange(0, 30).Draw(t, "stars")
		coins := rapid.IntRange(0, 100).Draw(t, "coins")
		minigames := rapid.IntRange(0, 15).Draw(t, "minigames")
		lowShowdowns := rapid.IntRange(0, 5).Draw(t, "lowShowdowns")
		highShowdowns := lowShowdowns + rapid.IntRange(1, 5).Draw(t, "delta")

		base := model.Result{Stars: stars, Coins: coins, MinigamesWon: minigames}
		high := base
		high.MemberID = 1
		high.ShowdownWins = highShowdowns
		low := base
		low.MemberID = 2
		low.ShowdownWins = lowShowdowns

		for _, order := range [][]model.Result{{high, low}, {low, high}} {
			results := make([]model.Result, len(order))
			copy(results, order)
			if err := Resolve(results); err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if results[0].MemberID != 1 {
				t.Fatalf("higher showdown count should rank first, got member %d", results[0].MemberID)
			}
		}
	})
}

// TestResolveIdempotenceProperty checks that resolving an already resolved
// set assigns the same standings again.
func TestResolveIdempotenceProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		results := drawResults(t)

		if err := Resolve(results); err != nil {
			t.Fatalf("first Resolve failed: %v", err)
		}
		first := make([]model.Result, len(results))
		copy(first, results)

		if err := Resolve(results); err != nil {
			t.Fatalf("second Resolve failed: %v", err)
		}
		for i := range results {
			if results[i] != first[i] {
				t.Fatalf("second Resolve changed position %d: %+v != %+v", i, results[i], first[i])
			}
		}
	})
}
