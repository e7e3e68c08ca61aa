package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"party-score-tracker/internal/leaderboard"
	"party-score-tracker/internal/model"
	"party-score-tracker/internal/pkg/lock"
	"party-score-tracker/internal/repository"
	"party-score-tracker/internal/ruleset"
)

// LeagueService closes a group's league. Finalization is one-shot and
// one-way: it freezes match submission and, under pro_bonus, computes and
// persists the end-of-league bonuses exactly once.
type LeagueService struct {
	pool    *pgxpool.Pool
	groups  *repository.GroupRepository
	members *repository.MemberRepository
	matches *repository.MatchRepository
	bonuses *repository.BonusRepository
	locks   *lock.KeyLock
}

// NewLeagueService creates a new LeagueService instance.
func NewLeagueService(
	pool *pgxpool.Pool,
	groups *repository.GroupRepository,
	members *repository.MemberRepository,
	matches *repository.MatchRepository,
	bonuses *repository.BonusRepository,
) *LeagueService {
	return &LeagueService{
		pool:    pool,
		groups:  groups,
		members: members,
		matches: matches,
		bonuses: bonuses,
		locks:   lock.NewKeyLock(),
	}
}

// FinalizeLeague transitions the group's league to finalized and returns
// the bonuses awarded (empty for classic). Calling it on an already
// finalized league fails with ErrLeagueFinalized.
func (s *LeagueService) FinalizeLeague(ctx context.Context, groupID int64) ([]model.Bonus, error) {
	var awarded []model.Bonus
	err := s.locks.WithLock(groupID, func() error {
		var err error
		awarded, err = s.finalize(ctx, groupID)
		return err
	})
	return awarded, err
}

func (s *LeagueService) finalize(ctx context.Context, groupID int64) ([]model.Bonus, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	groups := s.groups.WithTx(tx)

	group, err := groups.GetForUpdate(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to lock group: %w", err)
	}
	if group.LeagueStatus == model.LeagueFinalized {
		return nil, ErrLeagueFinalized
	}

	if err := groups.SetLeagueStatus(ctx, groupID, model.LeagueFinalized); err != nil {
		return nil, fmt.Errorf("failed to finalize league: %w", err)
	}

	awarded := []model.Bonus{}
	if group.RuleSet == model.RuleSetProBonus {
		members, err := s.members.WithTx(tx).ListByGroup(ctx, groupID)
		if err != nil {
			return nil, fmt.Errorf("failed to list members: %w", err)
		}
		approved := model.MatchApproved
		matches, err := s.matches.WithTx(tx).ListByGroup(ctx, groupID, &approved)
		if err != nil {
			return nil, fmt.Errorf("failed to list approved matches: %w", err)
		}

		totals := leaderboard.Totals(leaderboard.Build(members, matches, nil))
		computed := ruleset.LeagueBonuses(group.RuleSet, groupID, totals)
		if len(computed) > 0 {
			awarded, err = s.bonuses.WithTx(tx).CreateAll(ctx, computed)
			if err != nil {
				return nil, fmt.Errorf("failed to store bonuses: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit finalization: %w", err)
	}
	return awarded, nil
}
