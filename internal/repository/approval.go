package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"party-score-tracker/internal/model"
)

// ApprovalRepository handles vote ballot persistence.
type ApprovalRepository struct {
	db DBTX
}

// NewApprovalRepository creates a new ApprovalRepository instance.
func NewApprovalRepository(db DBTX) *ApprovalRepository {
	return &ApprovalRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ApprovalRepository) WithTx(tx pgx.Tx) *ApprovalRepository {
	return &ApprovalRepository{db: tx}
}

// Upsert records a member's ballot on a match. A member voting again
// replaces their previous ballot; last write by commit order wins.
func (r *ApprovalRepository) Upsert(ctx context.Context, matchID, memberID int64, vote model.Vote) (*model.Approval, error) {
	const query = `
		INSERT INTO approvals (match_id, member_id, vote, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (match_id, member_id)
		DO UPDATE SET vote = EXCLUDED.vote, updated_at = NOW()
		RETURNING match_id, member_id, vote, created_at, updated_at
	`

	var a model.Approval
	err := r.db.QueryRow(ctx, query, matchID, memberID, vote).Scan(
		&a.MatchID,
		&a.MemberID,
		&a.Vote,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert approval: %w", err)
	}
	return &a, nil
}

// Tally counts the current approve and reject ballots for a match.
func (r *ApprovalRepository) Tally(ctx context.Context, matchID int64) (approvals, rejections int, err error) {
	const query = `
		SELECT
			COUNT(*) FILTER (WHERE vote = 'approve'),
			COUNT(*) FILTER (WHERE vote = 'reject')
		FROM approvals
		WHERE match_id = $1
	`

	if err := r.db.QueryRow(ctx, query, matchID).Scan(&approvals, &rejections); err != nil {
		return 0, 0, fmt.Errorf("failed to tally approvals: %w", err)
	}
	return approvals, rejections, nil
}

// ListByMatch retrieves all ballots for a match in member-id order.
func (r *ApprovalRepository) ListByMatch(ctx context.Context, matchID int64) ([]model.Approval, error) {
	const query = `
		SELECT match_id, member_id, vote, created_at, updated_at
		FROM approvals
		WHERE match_id = $1
		ORDER BY member_id
	`

	rows, err := r.db.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}
	defer rows.Close()

	var approvals []model.Approval
	for rows.Next() {
		var a model.Approval
		err := rows.Scan(&a.MatchID, &a.MemberID, &a.Vote, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval: %w", err)
		}
		approvals = append(approvals, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating approvals: %w", err)
	}
	return approvals, nil
}
