// Package leaderboard folds approved matches into ranked per-player
// aggregates. Build is pure: callers load the rows, it does the math.
package leaderboard

import (
	"sort"

	"party-score-tracker/internal/model"
	"party-score-tracker/internal/ruleset"
)

// Entry is one player's aggregate standing within a group. Rank is the
// entry's position in the returned slice (index+1); it is recomputed on
// every read and never stored.
type Entry struct {
	MemberID     int64  `json:"member_id"`
	DisplayName  string `json:"display_name"`
	Points       int    `json:"points"`
	Wins         int    `json:"wins"`
	GamesPlayed  int    `json:"games_played"`
	Stars        int    `json:"stars"`
	Coins        int    `json:"coins"`
	MinigamesWon int    `json:"minigames_won"`
	ShowdownWins int    `json:"showdown_wins"`
	BonusPoints  int    `json:"bonus_points"`
}

// Build aggregates the results of approved matches, folds in end-of-league
// bonuses, and returns entries ordered best-first.
//
// Ordering is descending by points, then stars, then coins, then minigames
// won, then showdown wins; full ties keep member order (members are expected
// in ascending id order). Members without a single approved result are left
// out entirely. Calling Build twice on the same input yields identical
// output.
func Build(members []model.Member, matches []*model.Match, bonuses []model.Bonus) []Entry {
	index := make(map[int64]*Entry, len(members))
	entries := make([]*Entry, 0, len(members))
	for _, m := range members {
		e := &Entry{MemberID: m.ID, DisplayName: m.DisplayName}
		index[m.ID] = e
		entries = append(entries, e)
	}

	for _, match := range matches {
		if match.Status != model.MatchApproved {
			continue
		}
		for _, r := range match.Results {
			e := index[r.MemberID]
			if e == nil {
				continue
			}
			e.GamesPlayed++
			e.Points += r.Points
			e.Stars += r.Stars
			e.Coins += r.Coins
			e.MinigamesWon += r.MinigamesWon
			e.ShowdownWins += r.ShowdownWins
			if r.Standing == 1 {
				e.Wins++
			}
		}
	}

	for _, b := range bonuses {
		if e := index[b.MemberID]; e != nil {
			e.BonusPoints += b.Points
			e.Points += b.Points
		}
	}

	ranked := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.GamesPlayed == 0 {
			continue
		}
		ranked = append(ranked, *e)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
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

	return ranked
}

// Totals converts pre-bonus entries into the aggregate form the rule-set
// policy consumes at finalization.
func Totals(entries []Entry) []ruleset.PlayerTotals {
	totals := make([]ruleset.PlayerTotals, 0, len(entries))
	for _, e := range entries {
		totals = append(totals, ruleset.PlayerTotals{
			MemberID: e.MemberID,
			Wins:     e.Wins,
			Stars:    e.Stars,
			Coins:    e.Coins,
		})
	}
	return totals
}
