package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"party-score-tracker/internal/approval"
	"party-score-tracker/internal/model"
	"party-score-tracker/internal/pkg/lock"
	"party-score-tracker/internal/repository"
	"party-score-tracker/internal/ruleset"
	"party-score-tracker/internal/standings"
)

// ResultInput is one player's raw metrics as reported at match intake.
// Missing counters default to zero here, once, instead of in every
// consumer.
type ResultInput struct {
	MemberID     int64
	Stars        int
	Coins        int
	MinigamesWon int
	ShowdownWins int
}

// MatchService handles match submission and the vote-driven approval
// lifecycle. Both paths run as a single transaction against the store;
// voting additionally serializes per match so concurrent ballots cannot
// observe a stale status and double-trigger a transition.
type MatchService struct {
	pool      *pgxpool.Pool
	groups    *repository.GroupRepository
	members   *repository.MemberRepository
	matches   *repository.MatchRepository
	approvals *repository.ApprovalRepository
	locks     *lock.KeyLock
}

// NewMatchService creates a new MatchService instance.
func NewMatchService(
	pool *pgxpool.Pool,
	groups *repository.GroupRepository,
	members *repository.MemberRepository,
	matches *repository.MatchRepository,
	approvals *repository.ApprovalRepository,
) *MatchService {
	return &MatchService{
		pool:      pool,
		groups:    groups,
		members:   members,
		matches:   matches,
		approvals: approvals,
		locks:     lock.NewKeyLock(),
	}
}

// SubmitMatch records a played match: it validates the reported rows
// against the group's active roster, computes standings and points, and
// stores the match in pending status. A group with a single active human
// skips consensus entirely; the match is stored approved with the
// submitter's ballot recorded.
func (s *MatchService) SubmitMatch(ctx context.Context, groupID, submitterID, mapID int64, playedAt time.Time, rows []ResultInput) (*model.Match, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	group, err := s.groups.WithTx(tx).GetForUpdate(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to load group: %w", err)
	}
	if group.LeagueStatus == model.LeagueFinalized {
		return nil, ErrLeagueFinalized
	}

	roster, err := s.members.WithTx(tx).ListActiveByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	results, err := buildResults(roster, rows)
	if err != nil {
		return nil, err
	}
	if err := standings.Resolve(results); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	applyPoints(group.RuleSet, results)

	humans := 0
	submitterEligible := false
	for i := range roster {
		if roster[i].IsActiveHuman() {
			humans++
			if roster[i].ID == submitterID {
				submitterEligible = true
			}
		}
	}
	if !submitterEligible {
		return nil, ErrSubmitterNotEligible
	}

	status := model.MatchPending
	if approval.AutoApproved(humans) {
		status = model.MatchApproved
	}

	match, err := s.matches.WithTx(tx).Create(ctx, &model.Match{
		GroupID:     groupID,
		MapID:       mapID,
		PlayedAt:    playedAt,
		Status:      status,
		SubmitterID: submitterID,
		Results:     results,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store match: %w", err)
	}

	if status == model.MatchApproved {
		// Keep the ballot trail consistent for display even though no
		// vote was cast.
		if _, err := s.approvals.WithTx(tx).Upsert(ctx, match.ID, submitterID, model.VoteApprove); err != nil {
			return nil, fmt.Errorf("failed to record submitter approval: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit match: %w", err)
	}
	return match, nil
}

// buildResults maps intake rows onto result records in submission order and
// checks they cover the active roster exactly once each.
func buildResults(roster []model.Member, rows []ResultInput) ([]model.Result, error) {
	active := make(map[int64]bool, len(roster))
	for _, m := range roster {
		active[m.ID] = true
	}

	if len(rows) != len(roster) {
		return nil, ErrResultsMismatch
	}

	results := make([]model.Result, 0, len(rows))
	seen := make(map[int64]bool, len(rows))
	for _, row := range rows {
		if !active[row.MemberID] || seen[row.MemberID] {
			return nil, ErrResultsMismatch
		}
		seen[row.MemberID] = true
		results = append(results, model.Result{
			MemberID:     row.MemberID,
			Stars:        row.Stars,
			Coins:        row.Coins,
			MinigamesWon: row.MinigamesWon,
			ShowdownWins: row.ShowdownWins,
		})
	}
	return results, nil
}

// applyPoints assigns each result its standing points plus, under
// pro_bonus, the per-match minigame bonus.
func applyPoints(rs model.RuleSet, results []model.Result) {
	for i := range results {
		results[i].Points = ruleset.PointsFor(rs, results[i].Standing)
	}
	if bonusMember, ok := ruleset.MatchBonusMember(rs, results); ok {
		for i := range results {
			if results[i].MemberID == bonusMember {
				results[i].Points += ruleset.MatchBonusPoints
			}
		}
	}
}

// CastVote records a member's ballot on a pending match and applies the
// consensus transition rule to the updated tally. Re-voting replaces the
// member's previous ballot. Voting on a decided match fails with
// ErrMatchAlreadyDecided.
func (s *MatchService) CastVote(ctx context.Context, matchID, memberID int64, vote model.Vote) (*model.Match, error) {
	if !vote.Valid() {
		return nil, ErrInvalidVote
	}

	var match *model.Match
	err := s.locks.WithLock(matchID, func() error {
		var err error
		match, err = s.castVote(ctx, matchID, memberID, vote)
		return err
	})
	return match, err
}

func (s *MatchService) castVote(ctx context.Context, matchID, memberID int64, vote model.Vote) (*model.Match, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	matches := s.matches.WithTx(tx)

	match, err := matches.GetForUpdate(ctx, matchID)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to lock match: %w", err)
	}
	if match.Status.Terminal() {
		return nil, ErrMatchAlreadyDecided
	}

	voter, err := s.members.WithTx(tx).GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to load voter: %w", err)
	}
	if voter.GroupID != match.GroupID || !voter.IsActiveHuman() {
		return nil, ErrVoterNotEligible
	}

	approvals := s.approvals.WithTx(tx)
	if _, err := approvals.Upsert(ctx, matchID, memberID, vote); err != nil {
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}

	approves, rejects, err := approvals.Tally(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to tally votes: %w", err)
	}
	humans, err := s.members.WithTx(tx).CountActiveHumans(ctx, match.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to count voters: %w", err)
	}

	next := approval.Evaluate(approval.Tally{Approvals: approves, Rejections: rejects}, humans)
	if next != model.MatchPending {
		if err := matches.UpdateStatus(ctx, matchID, next); err != nil {
			return nil, fmt.Errorf("failed to update match status: %w", err)
		}
	}

	updated, err := matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload match: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit vote: %w", err)
	}
	return updated, nil
}

// GetMatch retrieves a match with its results.
func (s *MatchService) GetMatch(ctx context.Context, matchID int64) (*model.Match, error) {
	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return match, nil
}

// ListMatches retrieves a group's matches with results, oldest first.
func (s *MatchService) ListMatches(ctx context.Context, groupID int64) ([]*model.Match, error) {
	if _, err := s.groups.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	matches, err := s.matches.ListByGroup(ctx, groupID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

// ListVotes retrieves the current ballots for a match in member-id order.
func (s *MatchService) ListVotes(ctx context.Context, matchID int64) ([]model.Approval, error) {
	if _, err := s.GetMatch(ctx, matchID); err != nil {
		return nil, err
	}

	votes, err := s.approvals.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	return votes, nil
}
