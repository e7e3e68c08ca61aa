// Package leaderboard tests for the aggregate fold.
package leaderboard

import (
	"reflect"
	"testing"

	"party-score-tracker/internal/model"
)

func member(id int64, name string) model.Member {
	return model.Member{ID: id, GroupID: 1, Kind: model.MemberHuman, DisplayName: name, Status: model.MemberActive}
}

func TestBuildAggregatesApprovedMatches(t *testing.T) {
	members := []model.Member{member(1, "ana"), member(2, "bo"), member(3, "cy")}
	matches := []*model.Match{
		{
			ID: 10, Status: model.MatchApproved,
			Results: []model.Result{
				{MemberID: 1, Standing: 1, Points: 4, Stars: 10, Coins: 5, MinigamesWon: 2, ShowdownWins: 1},
				{MemberID: 2, Standing: 2, Points: 3, Stars: 8, Coins: 9, MinigamesWon: 1},
				{MemberID: 3, Standing: 3, Points: 2, Stars: 5, Coins: 2},
			},
		},
		{
			ID: 11, Status: model.MatchApproved,
			Results: []model.Result{
				{MemberID: 1, Standing: 2, Points: 3, Stars: 6, Coins: 3},
				{MemberID: 2, Standing: 1, Points: 4, Stars: 9, Coins: 4, MinigamesWon: 3},
				{MemberID: 3, Standing: 3, Points: 2, Stars: 1, Coins: 1},
			},
		},
	}

	entries := Build(members, matches, nil)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	// both leaders hold 7 points; bo wins the star tie-break 17 to 16
	if entries[0].MemberID != 2 {
		t.Errorf("rank 1: got member %d, want 2", entries[0].MemberID)
	}
	if entries[0].Points != 7 || entries[0].Wins != 1 || entries[0].GamesPlayed != 2 {
		t.Errorf("rank 1 aggregates wrong: %+v", entries[0])
	}
	if entries[0].Stars != 17 || entries[0].Coins != 13 || entries[0].MinigamesWon != 4 {
		t.Errorf("rank 1 metric sums wrong: %+v", entries[0])
	}
	if entries[1].MemberID != 1 || entries[1].Points != 7 || entries[1].Stars != 16 {
		t.Errorf("rank 2 wrong: %+v", entries[1])
	}
	if entries[2].MemberID != 3 || entries[2].Points != 4 {
		t.Errorf("rank 3 wrong: %+v", entries[2])
	}
}

func TestBuildIgnoresUnapprovedMatches(t *testing.T) {
	members := []model.Member{member(1, "ana"), member(2, "bo")}
	matches := []*model.Match{
		{
			ID: 10, Status: model.MatchPending,
			Results: []model.Result{
				{MemberID: 1, Standing: 1, Points: 4},
				{MemberID: 2, Standing: 2, Points: 3},
			},
		},
		{
			ID: 11, Status: model.MatchRejected,
			Results: []model.Result{
				{MemberID: 1, Standing: 1, Points: 4},
				{MemberID: 2, Standing: 2, Points: 3},
			},
		},
	}

	if entries := Build(members, matches, nil); len(entries) != 0 {
		t.Errorf("pending and rejected matches must not produce entries, got %d", len(entries))
	}
}

func TestBuildOmitsPlayersWithoutGames(t *testing.T) {
	members := []model.Member{member(1, "ana"), member(2, "bo"), member(3, "idle")}
	matches := []*model.Match{
		{
			ID: 10, Status: model.MatchApproved,
			Results: []model.Result{
				{MemberID: 1, Standing: 1, Points: 4},
				{MemberID: 2, Standing: 2, Points: 3},
			},
		},
	}

	entries := Build(members, matches, nil)
	for _, e := range entries {
		if e.MemberID == 3 {
			t.Fatal("member without approved games must be omitted")
		}
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
}

func TestBuildFoldsBonusesIntoPoints(t *testing.T) {
	members := []model.Member{member(1, "ana"), member(2, "bo")}
	matches := []*model.Match{
		{
			ID: 10, Status: model.MatchApproved,
			Results: []model.Result{
				{MemberID: 1, Standing: 1, Points: 3},
				{MemberID: 2, Standing: 2, Points: 2},
			},
		},
	}
	bonuses := []model.Bonus{
		{GroupID: 1, MemberID: 2, Kind: model.BonusMostCoins, Points: 1},
		{GroupID: 1, MemberID: 2, Kind: model.BonusMostStars, Points: 1},
	}

	entries := Build(members, matches, bonuses)
	if entries[0].MemberID != 2 {
		t.Fatalf("bonuses should lift member 2 to rank 1, got member %d", entries[0].MemberID)
	}
	if entries[0].Points != 4 || entries[0].BonusPoints != 2 {
		t.Errorf("bonus fold wrong: %+v", entries[0])
	}
}

func TestBuildTieBreakChain(t *testing.T) {
	members := []model.Member{member(1, "ana"), member(2, "bo")}
	matches := []*model.Match{
		{
			ID: 10, Status: model.MatchApproved,
			Results: []model.Result{
				// equal points and stars, bo leads on coins
				{MemberID: 1, Standing: 1, Points: 3, Stars: 5, Coins: 2},
				{MemberID: 2, Standing: 2, Points: 3, Stars: 5, Coins: 6},
			},
		},
	}

	entries := Build(members, matches, nil)
	if entries[0].MemberID != 2 {
		t.Errorf("coins should break the tie, got member %d first", entries[0].MemberID)
	}
}

func TestBuildFullTieKeepsMemberOrder(t *testing.T) {
	members := []model.Member{member(4, "dee"), member(9, "eli")}
	matches := []*model.Match{
		{
			ID: 10, Status: model.MatchApproved,
			Results: []model.Result{
				{MemberID: 9, Standing: 1, Points: 3, Stars: 5},
				{MemberID: 4, Standing: 2, Points: 3, Stars: 5},
			},
		},
	}

	entries := Build(members, matches, nil)
	if entries[0].MemberID != 4 {
		t.Errorf("full tie should keep member order, got member %d first", entries[0].MemberID)
	}
}

func TestBuildIdempotence(t *testing.T) {
	members := []model.Member{member(1, "ana"), member(2, "bo"), member(3, "cy")}
	matches := []*model.Match{
		{
			ID: 10, Status: model.MatchApproved,
			Results: []model.Result{
				{MemberID: 1, Standing: 1, Points: 4, Stars: 7},
				{MemberID: 2, Standing: 2, Points: 3, Stars: 3},
				{MemberID: 3, Standing: 3, Points: 2, Stars: 1},
			},
		},
	}
	bonuses := []model.Bonus{{GroupID: 1, MemberID: 1, Kind: model.BonusMostWins, Points: 3}}

	first := Build(members, matches, bonuses)
	second := Build(members, matches, bonuses)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Build is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
