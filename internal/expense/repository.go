package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/fairsplit/fairsplit/internal/expense/split"
	"github.com/fairsplit/fairsplit/internal/group"
)

// Repository persists expenses and their contributions
type Repository interface {
	Create(ctx context.Context, expense *Expense) error

	// ListByGroupID returns expenses newest date first, ties by creation time.
	ListByGroupID(ctx context.Context, groupID string) ([]*Expense, error)

	group.ExpenseLedger
}

var (
	_ Repository = (*PostgresRepository)(nil)
	_ Repository = (*MemoryRepository)(nil)
)

// PostgresRepository handles expense data persistence in PostgreSQL
type PostgresRepository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an expense and its contributions in one transaction
func (r *PostgresRepository) Create(ctx context.Context, expense *Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO expenses (id, group_id, description, amount, paid_by, expense_date, split_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.ExecContext(ctx, query,
		expense.ID,
		expense.GroupID,
		expense.Description,
		expense.Amount,
		expense.PaidBy,
		expense.Date,
		string(expense.SplitType),
		expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	for participant, amount := range expense.Contributions {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expense_contributions (expense_id, participant, amount) VALUES ($1, $2, $3)`,
			expense.ID, participant, amount,
		)
		if err != nil {
			return fmt.Errorf("failed to create contribution: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit expense: %w", err)
	}
	return nil
}

// ListByGroupID retrieves all expenses of a group with their contributions
func (r *PostgresRepository) ListByGroupID(ctx context.Context, groupID string) ([]*Expense, error) {
	query := `
		SELECT id, group_id, description, amount, paid_by, expense_date, split_type, created_at
		FROM expenses
		WHERE group_id = $1
		ORDER BY expense_date DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	byID := make(map[string]*Expense)
	for rows.Next() {
		e := &Expense{Contributions: make(split.Contributions)}
		var splitType string
		if err := rows.Scan(
			&e.ID,
			&e.GroupID,
			&e.Description,
			&e.Amount,
			&e.PaidBy,
			&e.Date,
			&splitType,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.SplitType = split.SplitType(splitType)
		expenses = append(expenses, e)
		byID[e.ID] = e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	if len(expenses) == 0 {
		return expenses, nil
	}

	ids := make([]string, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ID
	}

	crows, err := r.db.QueryContext(ctx,
		`SELECT expense_id, participant, amount FROM expense_contributions WHERE expense_id = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributions: %w", err)
	}
	defer crows.Close()

	for crows.Next() {
		var expenseID, participant string
		var amount decimal.Decimal
		if err := crows.Scan(&expenseID, &participant, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan contribution: %w", err)
		}
		if e, ok := byID[expenseID]; ok {
			e.Contributions[participant] = amount
		}
	}
	if err := crows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contributions: %w", err)
	}

	return expenses, nil
}

// TotalByGroupID sums the amounts of all expenses in a group
func (r *PostgresRepository) TotalByGroupID(ctx context.Context, groupID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE group_id = $1`,
		groupID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to total expenses: %w", err)
	}
	return total, nil
}

// DeleteByGroupID removes every expense of a group
func (r *PostgresRepository) DeleteByGroupID(ctx context.Context, groupID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE group_id = $1`, groupID); err != nil {
		return fmt.Errorf("failed to delete expenses: %w", err)
	}
	return nil
}
