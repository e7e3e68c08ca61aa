package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"party-score-tracker/internal/model"
)

// Common errors for group operations.
var (
	ErrGroupNotFound = errors.New("group not found")
)

// GroupRepository handles group data persistence.
type GroupRepository struct {
	db DBTX
}

// NewGroupRepository creates a new GroupRepository instance.
func NewGroupRepository(db DBTX) *GroupRepository {
	return &GroupRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *GroupRepository) WithTx(tx pgx.Tx) *GroupRepository {
	return &GroupRepository{db: tx}
}

const groupColumns = `id, name, rule_set, league_status, created_at, updated_at`

func scanGroup(row pgx.Row) (*model.Group, error) {
	var g model.Group
	err := row.Scan(
		&g.ID,
		&g.Name,
		&g.RuleSet,
		&g.LeagueStatus,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Create creates a new group with the given name and rule set.
// The league starts in active status.
func (r *GroupRepository) Create(ctx context.Context, name string, ruleSet model.RuleSet) (*model.Group, error) {
	const query = `
		INSERT INTO groups (name, rule_set, league_status, created_at, updated_at)
		VALUES ($1, $2, 'active', NOW(), NOW())
		RETURNING ` + groupColumns

	g, err := scanGroup(r.db.QueryRow(ctx, query, name, ruleSet))
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return g, nil
}

// GetByID retrieves a group by its id.
// Returns ErrGroupNotFound if the group does not exist.
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*model.Group, error) {
	const query = `SELECT ` + groupColumns + ` FROM groups WHERE id = $1`

	g, err := scanGroup(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return g, nil
}

// GetForUpdate retrieves a group and locks its row for the duration of the
// surrounding transaction. Callers must be bound to a transaction.
func (r *GroupRepository) GetForUpdate(ctx context.Context, id int64) (*model.Group, error) {
	const query = `SELECT ` + groupColumns + ` FROM groups WHERE id = $1 FOR UPDATE`

	g, err := scanGroup(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to lock group: %w", err)
	}
	return g, nil
}

// SetLeagueStatus updates the group's league status.
func (r *GroupRepository) SetLeagueStatus(ctx context.Context, id int64, status model.LeagueStatus) error {
	const query = `
		UPDATE groups
		SET league_status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to set league status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrGroupNotFound
	}
	return nil
}
