package group

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Repository persists groups
type Repository interface {
	// Create inserts a new group. ID and CreatedAt must already be set.
	Create(ctx context.Context, group *Group) error

	// GetByID returns nil, nil when the group does not exist.
	GetByID(ctx context.Context, id string) (*Group, error)

	// GetByName matches the name case-insensitively and returns nil, nil when absent.
	GetByName(ctx context.Context, name string) (*Group, error)

	// List returns every group ordered by creation time.
	List(ctx context.Context) ([]*Group, error)

	Count(ctx context.Context) (int, error)

	// Delete returns ErrGroupNotFound when nothing was deleted.
	Delete(ctx context.Context, id string) error
}

// ExpenseLedger is the part of expense storage the group feature depends on
type ExpenseLedger interface {
	TotalByGroupID(ctx context.Context, groupID string) (decimal.Decimal, error)
	DeleteByGroupID(ctx context.Context, groupID string) error
}

const uniqueViolation = "23505"

var (
	_ Repository = (*PostgresRepository)(nil)
	_ Repository = (*MemoryRepository)(nil)
)

// PostgresRepository handles group data persistence in PostgreSQL
type PostgresRepository struct {
	db *sql.DB
}

// NewRepository creates a new group repository
func NewRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectGroups = `
	SELECT g.id, g.name, g.created_at,
	       COALESCE(array_agg(p.participant_name ORDER BY p.position)
	                FILTER (WHERE p.participant_name IS NOT NULL), '{}')
	FROM groups g
	LEFT JOIN group_participants p ON p.group_id = g.id
`

// Create inserts a new group and its ordered participants in one transaction
func (r *PostgresRepository) Create(ctx context.Context, group *Group) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO groups (id, name, created_at) VALUES ($1, $2, $3)`,
		group.ID, group.Name, group.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrGroupNameTaken
		}
		return fmt.Errorf("failed to create group: %w", err)
	}

	for i, participant := range group.Participants {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO group_participants (group_id, position, participant_name) VALUES ($1, $2, $3)`,
			group.ID, i, participant,
		)
		if err != nil {
			return fmt.Errorf("failed to add participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit group: %w", err)
	}
	return nil
}

// GetByID retrieves a group by its ID
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Group, error) {
	return r.getOne(ctx, selectGroups+` WHERE g.id = $1 GROUP BY g.id`, id)
}

// GetByName retrieves a group by name, ignoring case
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*Group, error) {
	return r.getOne(ctx, selectGroups+` WHERE lower(g.name) = lower($1) GROUP BY g.id`, name)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg string) (*Group, error) {
	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&group.ID,
		&group.Name,
		&group.CreatedAt,
		pq.Array(&group.Participants),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// List retrieves all groups
func (r *PostgresRepository) List(ctx context.Context) ([]*Group, error) {
	rows, err := r.db.QueryContext(ctx, selectGroups+` GROUP BY g.id ORDER BY g.created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		group := &Group{}
		if err := rows.Scan(
			&group.ID,
			&group.Name,
			&group.CreatedAt,
			pq.Array(&group.Participants),
		); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return groups, nil
}

// Count returns the number of stored groups
func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM groups`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count groups: %w", err)
	}
	return n, nil
}

// Delete removes a group; participants and expenses cascade
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrGroupNotFound
	}

	return nil
}
