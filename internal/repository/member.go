package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"party-score-tracker/internal/model"
)

// Common errors for member operations.
var (
	ErrMemberNotFound = errors.New("member not found")
)

// MemberRepository handles member data persistence.
type MemberRepository struct {
	db DBTX
}

// NewMemberRepository creates a new MemberRepository instance.
func NewMemberRepository(db DBTX) *MemberRepository {
	return &MemberRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *MemberRepository) WithTx(tx pgx.Tx) *MemberRepository {
	return &MemberRepository{db: tx}
}

const memberColumns = `id, group_id, kind, display_name, account_id, status, created_at, updated_at`

func scanMember(row pgx.Row) (*model.Member, error) {
	var m model.Member
	err := row.Scan(
		&m.ID,
		&m.GroupID,
		&m.Kind,
		&m.DisplayName,
		&m.AccountID,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create creates a new active member in a group. AccountID is nil for CPU
// placeholders.
func (r *MemberRepository) Create(ctx context.Context, groupID int64, kind model.MemberKind, displayName string, accountID *int64) (*model.Member, error) {
	const query = `
		INSERT INTO members (group_id, kind, display_name, account_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'active', NOW(), NOW())
		RETURNING ` + memberColumns

	m, err := scanMember(r.db.QueryRow(ctx, query, groupID, kind, displayName, accountID))
	if err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	return m, nil
}

// GetByID retrieves a member by id.
// Returns ErrMemberNotFound if the member does not exist.
func (r *MemberRepository) GetByID(ctx context.Context, id int64) (*model.Member, error) {
	const query = `SELECT ` + memberColumns + ` FROM members WHERE id = $1`

	m, err := scanMember(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return m, nil
}

// ListByGroup retrieves all members of a group in ascending id order,
// including members who have left.
func (r *MemberRepository) ListByGroup(ctx context.Context, groupID int64) ([]model.Member, error) {
	const query = `SELECT ` + memberColumns + ` FROM members WHERE group_id = $1 ORDER BY id`

	return r.list(ctx, query, groupID)
}

// ListActiveByGroup retrieves the active members of a group in ascending id
// order.
func (r *MemberRepository) ListActiveByGroup(ctx context.Context, groupID int64) ([]model.Member, error) {
	const query = `SELECT ` + memberColumns + ` FROM members WHERE group_id = $1 AND status = 'active' ORDER BY id`

	return r.list(ctx, query, groupID)
}

func (r *MemberRepository) list(ctx context.Context, query string, args ...any) ([]model.Member, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}
	return members, nil
}

// CountActiveHumans returns the number of active human members in a group,
// the denominator of the vote majority rule.
func (r *MemberRepository) CountActiveHumans(ctx context.Context, groupID int64) (int, error) {
	const query = `
		SELECT COUNT(*)
		FROM members
		WHERE group_id = $1 AND kind = 'human' AND status = 'active'
	`

	var count int
	if err := r.db.QueryRow(ctx, query, groupID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active humans: %w", err)
	}
	return count, nil
}

// MarkLeft flips a member's status to left. Members stay in the table so
// historical results keep a valid reference.
func (r *MemberRepository) MarkLeft(ctx context.Context, id int64) error {
	const query = `
		UPDATE members
		SET status = 'left', updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark member left: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}
