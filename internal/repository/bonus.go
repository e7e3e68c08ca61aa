package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"party-score-tracker/internal/model"
)

// BonusRepository handles end-of-league bonus persistence.
type BonusRepository struct {
	db DBTX
}

// NewBonusRepository creates a new BonusRepository instance.
func NewBonusRepository(db DBTX) *BonusRepository {
	return &BonusRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *BonusRepository) WithTx(tx pgx.Tx) *BonusRepository {
	return &BonusRepository{db: tx}
}

// CreateAll inserts the given bonuses and returns the stored rows. A unique
// constraint on (group_id, kind) guards against awarding a category twice.
func (r *BonusRepository) CreateAll(ctx context.Context, bonuses []model.Bonus) ([]model.Bonus, error) {
	const query = `
		INSERT INTO bonuses (group_id, member_id, kind, points, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, group_id, member_id, kind, points, created_at
	`

	created := make([]model.Bonus, 0, len(bonuses))
	for _, b := range bonuses {
		var stored model.Bonus
		err := r.db.QueryRow(ctx, query, b.GroupID, b.MemberID, b.Kind, b.Points).Scan(
			&stored.ID,
			&stored.GroupID,
			&stored.MemberID,
			&stored.Kind,
			&stored.Points,
			&stored.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create bonus: %w", err)
		}
		created = append(created, stored)
	}
	return created, nil
}

// ListByGroup retrieves a group's bonuses in creation order.
func (r *BonusRepository) ListByGroup(ctx context.Context, groupID int64) ([]model.Bonus, error) {
	const query = `
		SELECT id, group_id, member_id, kind, points, created_at
		FROM bonuses
		WHERE group_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bonuses: %w", err)
	}
	defer rows.Close()

	var bonuses []model.Bonus
	for rows.Next() {
		var b model.Bonus
		err := rows.Scan(&b.ID, &b.GroupID, &b.MemberID, &b.Kind, &b.Points, &b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bonus: %w", err)
		}
		bonuses = append(bonuses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bonuses: %w", err)
	}
	return bonuses, nil
}
