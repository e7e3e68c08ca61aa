package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"party-score-tracker/internal/model"
)

// Common errors for match operations.
var (
	ErrMatchNotFound = errors.New("match not found")
)

// MatchRepository handles match and result data persistence.
type MatchRepository struct {
	db DBTX
}

// NewMatchRepository creates a new MatchRepository instance.
func NewMatchRepository(db DBTX) *MatchRepository {
	return &MatchRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *MatchRepository) WithTx(tx pgx.Tx) *MatchRepository {
	return &MatchRepository{db: tx}
}

const matchColumns = `id, group_id, map_id, played_at, status, submitter_id, created_at, updated_at`

func scanMatch(row pgx.Row) (*model.Match, error) {
	var m model.Match
	err := row.Scan(
		&m.ID,
		&m.GroupID,
		&m.MapID,
		&m.PlayedAt,
		&m.Status,
		&m.SubmitterID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a match and its results. The match's Results slice must
// already carry computed standings and points; the stored rows are returned
// on the match. Callers must be bound to a transaction so the match and its
// results are written atomically.
func (r *MatchRepository) Create(ctx context.Context, match *model.Match) (*model.Match, error) {
	const query = `
		INSERT INTO matches (group_id, map_id, played_at, status, submitter_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + matchColumns

	created, err := scanMatch(r.db.QueryRow(ctx, query,
		match.GroupID, match.MapID, match.PlayedAt, match.Status, match.SubmitterID))
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	const resultQuery = `
		INSERT INTO results (match_id, member_id, stars, coins, minigames_won, showdown_wins, standing, points)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	created.Results = make([]model.Result, len(match.Results))
	for i, res := range match.Results {
		res.MatchID = created.ID
		err := r.db.QueryRow(ctx, resultQuery,
			res.MatchID, res.MemberID, res.Stars, res.Coins,
			res.MinigamesWon, res.ShowdownWins, res.Standing, res.Points,
		).Scan(&res.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to create result: %w", err)
		}
		created.Results[i] = res
	}

	return created, nil
}

// GetByID retrieves a match with its results.
// Returns ErrMatchNotFound if the match does not exist.
func (r *MatchRepository) GetByID(ctx context.Context, id int64) (*model.Match, error) {
	const query = `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	m, err := scanMatch(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	if err := r.loadResults(ctx, []*model.Match{m}); err != nil {
		return nil, err
	}
	return m, nil
}

// GetForUpdate retrieves a match (without results) and locks its row for the
// duration of the surrounding transaction, serializing concurrent voters on
// the same match. Callers must be bound to a transaction.
func (r *MatchRepository) GetForUpdate(ctx context.Context, id int64) (*model.Match, error) {
	const query = `SELECT ` + matchColumns + ` FROM matches WHERE id = $1 FOR UPDATE`

	m, err := scanMatch(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to lock match: %w", err)
	}
	return m, nil
}

// UpdateStatus sets a match's approval status.
func (r *MatchRepository) UpdateStatus(ctx context.Context, id int64, status model.MatchStatus) error {
	const query = `
		UPDATE matches
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update match status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrMatchNotFound
	}
	return nil
}

// ListByGroup retrieves a group's matches with results, oldest first.
// A non-nil status restricts the listing to matches in that status.
func (r *MatchRepository) ListByGroup(ctx context.Context, groupID int64, status *model.MatchStatus) ([]*model.Match, error) {
	const query = `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE group_id = $1 AND ($2::TEXT IS NULL OR status = $2)
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, groupID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []*model.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matches: %w", err)
	}

	if err := r.loadResults(ctx, matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// loadResults attaches result rows to the given matches in one query.
// Results are ordered by standing within each match.
func (r *MatchRepository) loadResults(ctx context.Context, matches []*model.Match) error {
	if len(matches) == 0 {
		return nil
	}

	byID := make(map[int64]*model.Match, len(matches))
	ids := make([]int64, 0, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
		ids = append(ids, m.ID)
	}

	const query = `
		SELECT id, match_id, member_id, stars, coins, minigames_won, showdown_wins, standing, points
		FROM results
		WHERE match_id = ANY($1)
		ORDER BY match_id, standing
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var res model.Result
		err := rows.Scan(
			&res.ID,
			&res.MatchID,
			&res.MemberID,
			&res.Stars,
			&res.Coins,
			&res.MinigamesWon,
			&res.ShowdownWins,
			&res.Standing,
			&res.Points,
		)
		if err != nil {
			return fmt.Errorf("failed to scan result: %w", err)
		}
		if m := byID[res.MatchID]; m != nil {
			m.Results = append(m.Results, res)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating results: %w", err)
	}
	return nil
}
