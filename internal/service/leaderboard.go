package service

import (
	"context"
	"errors"
	"fmt"

	"party-score-tracker/internal/leaderboard"
	"party-score-tracker/internal/model"
	"party-score-tracker/internal/repository"
)

// LeaderboardService serves the aggregated group standings. Read-only;
// safe to call at any time, and repeated calls with no intervening writes
// return identical output.
type LeaderboardService struct {
	groups  *repository.GroupRepository
	members *repository.MemberRepository
	matches *repository.MatchRepository
	bonuses *repository.BonusRepository
}

// NewLeaderboardService creates a new LeaderboardService instance.
func NewLeaderboardService(
	groups *repository.GroupRepository,
	members *repository.MemberRepository,
	matches *repository.MatchRepository,
	bonuses *repository.BonusRepository,
) *LeaderboardService {
	return &LeaderboardService{
		groups:  groups,
		members: members,
		matches: matches,
		bonuses: bonuses,
	}
}

// GetLeaderboard aggregates a group's approved matches, folding in
// end-of-league bonuses once the league is finalized. Members without an
// approved result are omitted; positions in the returned slice are the
// displayed ranks.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, groupID int64) ([]leaderboard.Entry, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	// Left members keep their historical results, so the full roster feeds
	// the fold.
	members, err := s.members.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	approved := model.MatchApproved
	matches, err := s.matches.ListByGroup(ctx, groupID, &approved)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved matches: %w", err)
	}

	var bonuses []model.Bonus
	if group.LeagueStatus == model.LeagueFinalized {
		bonuses, err = s.bonuses.ListByGroup(ctx, groupID)
		if err != nil {
			return nil, fmt.Errorf("failed to list bonuses: %w", err)
		}
	}

	return leaderboard.Build(members, matches, bonuses), nil
}
