// Package ruleset implements the points and bonus policies selectable per
// group. All functions are pure lookups and folds with no side effects.
package ruleset

import (
	"party-score-tracker/internal/model"
)

// Points awarded per bonus category at league finalization.
const (
	MostWinsPoints  = 3
	MostStarsPoints = 1
	MostCoinsPoints = 1
)

// MatchBonusPoints is the per-match award under pro_bonus for the outright
// highest minigames-won count.
const MatchBonusPoints = 1

var pointsByStanding = map[model.RuleSet][5]int{
	// index 1..4; index 0 unused
	model.RuleSetClassic:  {0, 4, 3, 2, 1},
	model.RuleSetProBonus: {0, 3, 2, 1, 0},
}

// PointsFor returns the league points for finishing at the given standing
// under the given rule set. Standings outside 1..4 score zero.
func PointsFor(rs model.RuleSet, standing int) int {
	table, ok := pointsByStanding[rs]
	if !ok || standing < 1 || standing > 4 {
		return 0
	}
	return table[standing]
}

// MatchBonusMember returns the member awarded the per-match minigame bonus
// under pro_bonus: the single result with the highest minigames-won count.
// When the highest count is shared, no bonus is awarded. Classic has no
// per-match bonus.
func MatchBonusMember(rs model.RuleSet, results []model.Result) (int64, bool) {
	if rs != model.RuleSetProBonus || len(results) == 0 {
		return 0, false
	}
	best := results[0]
	tied := false
	for _, r := range results[1:] {
		switch {
		case r.MinigamesWon > best.MinigamesWon:
			best = r
			tied = false
		case r.MinigamesWon == best.MinigamesWon:
			tied = true
		}
	}
	if tied {
		return 0, false
	}
	return best.MemberID, true
}

// PlayerTotals is one player's aggregate over all approved matches, the
// input to end-of-league bonus computation.
type PlayerTotals struct {
	MemberID int64
	Wins     int
	Stars    int
	Coins    int
}

// LeagueBonuses computes the end-of-league bonuses for the given aggregated
// totals: +3 for most total wins, +1 for most cumulative stars, +1 for most
// cumulative coins. Each category tie is broken by lowest member id.
// Classic awards nothing, as does an empty league.
func LeagueBonuses(rs model.RuleSet, groupID int64, totals []PlayerTotals) []model.Bonus {
	if rs != model.RuleSetProBonus || len(totals) == 0 {
		return nil
	}

	mostWins := leader(totals, func(t PlayerTotals) int { return t.Wins })
	mostStars := leader(totals, func(t PlayerTotals) int { return t.Stars })
	mostCoins := leader(totals, func(t PlayerTotals) int { return t.Coins })

	return []model.Bonus{
		{GroupID: groupID, MemberID: mostWins, Kind: model.BonusMostWins, Points: MostWinsPoints},
		{GroupID: groupID, MemberID: mostStars, Kind: model.BonusMostStars, Points: MostStarsPoints},
		{GroupID: groupID, MemberID: mostCoins, Kind: model.BonusMostCoins, Points: MostCoinsPoints},
	}
}

// leader returns the member id with the highest value of key, ties broken
// by lowest member id.
func leader(totals []PlayerTotals, key func(PlayerTotals) int) int64 {
	best := totals[0]
	for _, t := range totals[1:] {
		v, bv := key(t), key(best)
		if v > bv || (v == bv && t.MemberID < best.MemberID) {
			best = t
		}
	}
	return best.MemberID
}
