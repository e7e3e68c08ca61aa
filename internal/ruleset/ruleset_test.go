// Package ruleset tests for the points and bonus policies.
package ruleset

import (
	"testing"

	"party-score-tracker/internal/model"
)

func TestPointsFor(t *testing.T) {
	tests := []struct {
		name     string
		ruleSet  model.RuleSet
		standing int
		want     int
	}{
		{"classic 1st", model.RuleSetClassic, 1, 4},
		{"classic 2nd", model.RuleSetClassic, 2, 3},
		{"classic 3rd", model.RuleSetClassic, 3, 2},
		{"classic 4th", model.RuleSetClassic, 4, 1},
		{"pro_bonus 1st", model.RuleSetProBonus, 1, 3},
		{"pro_bonus 2nd", model.RuleSetProBonus, 2, 2},
		{"pro_bonus 3rd", model.RuleSetProBonus, 3, 1},
		{"pro_bonus 4th", model.RuleSetProBonus, 4, 0},
		{"standing out of range", model.RuleSetClassic, 5, 0},
		{"standing zero", model.RuleSetProBonus, 0, 0},
		{"unknown rule set", model.RuleSet("unknown"), 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PointsFor(tt.ruleSet, tt.standing)
			if got != tt.want {
				t.Errorf("PointsFor(%q, %d) = %d, want %d", tt.ruleSet, tt.standing, got, tt.want)
			}
		})
	}
}

func TestMatchBonusMember(t *testing.T) {
	tests := []struct {
		name       string
		ruleSet    model.RuleSet
		results    []model.Result
		wantMember int64
		wantOK     bool
	}{
		{
			name:    "outright leader gets bonus",
			ruleSet: model.RuleSetProBonus,
			results: []model.Result{
				{MemberID: 1, MinigamesWon: 2},
				{MemberID: 2, MinigamesWon: 5},
				{MemberID: 3, MinigamesWon: 1},
			},
			wantMember: 2,
			wantOK:     true,
		},
		{
			name:    "tied leaders get nothing",
			ruleSet: model.RuleSetProBonus,
			results: []model.Result{
				{MemberID: 1, MinigamesWon: 5},
				{MemberID: 2, MinigamesWon: 5},
				{MemberID: 3, MinigamesWon: 1},
			},
			wantOK: false,
		},
		{
			name:    "all zero counts is a tie",
			ruleSet: model.RuleSetProBonus,
			results: []model.Result{
				{MemberID: 1},
				{MemberID: 2},
			},
			wantOK: false,
		},
		{
			name:    "classic has no per-match bonus",
			ruleSet: model.RuleSetClassic,
			results: []model.Result{
				{MemberID: 1, MinigamesWon: 9},
				{MemberID: 2, MinigamesWon: 1},
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			member, ok := MatchBonusMember(tt.ruleSet, tt.results)
			if ok != tt.wantOK {
				t.Fatalf("MatchBonusMember ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && member != tt.wantMember {
				t.Errorf("MatchBonusMember member = %d, want %d", member, tt.wantMember)
			}
		})
	}
}

func TestLeagueBonuses(t *testing.T) {
	totals := []PlayerTotals{
		{MemberID: 1, Wins: 4, Stars: 20, Coins: 50},
		{MemberID: 2, Wins: 2, Stars: 25, Coins: 80},
		{MemberID: 3, Wins: 1, Stars: 10, Coins: 80},
	}

	bonuses := LeagueBonuses(model.RuleSetProBonus, 7, totals)
	if len(bonuses) != 3 {
		t.Fatalf("expected 3 bonuses, got %d", len(bonuses))
	}

	byKind := make(map[model.BonusKind]model.Bonus, len(bonuses))
	for _, b := range bonuses {
		if b.GroupID != 7 {
			t.Errorf("bonus %s has group %d, want 7", b.Kind, b.GroupID)
		}
		byKind[b.Kind] = b
	}

	if b := byKind[model.BonusMostWins]; b.MemberID != 1 || b.Points != 3 {
		t.Errorf("most wins: got member %d points %d, want member 1 points 3", b.MemberID, b.Points)
	}
	if b := byKind[model.BonusMostStars]; b.MemberID != 2 || b.Points != 1 {
		t.Errorf("most stars: got member %d points %d, want member 2 points 1", b.MemberID, b.Points)
	}
	// coins tied between 2 and 3: lowest member id wins
	if b := byKind[model.BonusMostCoins]; b.MemberID != 2 || b.Points != 1 {
		t.Errorf("most coins: got member %d points %d, want member 2 points 1", b.MemberID, b.Points)
	}
}

func TestLeagueBonusesClassicEmpty(t *testing.T) {
	totals := []PlayerTotals{
		{MemberID: 1, Wins: 4, Stars: 20, Coins: 50},
		{MemberID: 2, Wins: 2, Stars: 25, Coins: 80},
	}

	if bonuses := LeagueBonuses(model.RuleSetClassic, 7, totals); len(bonuses) != 0 {
		t.Errorf("classic should award no bonuses, got %d", len(bonuses))
	}
}

func TestLeagueBonusesEmptyLeague(t *testing.T) {
	if bonuses := LeagueBonuses(model.RuleSetProBonus, 7, nil); len(bonuses) != 0 {
		t.Errorf("empty league should award no bonuses, got %d", len(bonuses))
	}
}

func TestLeagueBonusesAllTiedGoToLowestID(t *testing.T) {
	totals := []PlayerTotals{
		{MemberID: 5, Wins: 1, Stars: 10, Coins: 10},
		{MemberID: 3, Wins: 1, Stars: 10, Coins: 10},
		{MemberID: 8, Wins: 1, Stars: 10, Coins: 10},
	}

	bonuses := LeagueBonuses(model.RuleSetProBonus, 1, totals)
	for _, b := range bonuses {
		if b.MemberID != 3 {
			t.Errorf("bonus %s: got member %d, want lowest id 3", b.Kind, b.MemberID)
		}
	}
}
