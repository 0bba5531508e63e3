// Package seed loads a small set of demo groups so a fresh instance has
// something to settle.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fairsplit/fairsplit/internal/expense"
	"github.com/fairsplit/fairsplit/internal/expense/split"
	"github.com/fairsplit/fairsplit/internal/group"
	"github.com/fairsplit/fairsplit/internal/money"
)

type sampleExpense struct {
	description string
	amount      string
	paidBy      string
	daysAgo     int
}

type sampleGroup struct {
	name         string
	participants []string
	expenses     []sampleExpense
}

var samples = []sampleGroup{
	{
		name:         "Weekend Trip",
		participants: []string{"Alice", "Bob", "Charlie"},
		expenses: []sampleExpense{
			{"Hotel", "300.00", "Alice", 5},
			{"Dinner", "90.00", "Bob", 4},
			{"Gas", "45.00", "Charlie", 3},
			{"Breakfast", "36.00", "Alice", 2},
		},
	},
	{
		name:         "Office Lunch",
		participants: []string{"David", "Emma", "Frank", "Grace"},
		expenses: []sampleExpense{
			{"Pizza", "80.00", "David", 7},
			{"Coffee", "24.00", "Emma", 6},
			{"Team Dinner", "160.00", "Frank", 3},
		},
	},
	{
		name:         "Apartment Expenses",
		participants: []string{"Henry", "Iris"},
		expenses: []sampleExpense{
			{"Rent", "2000.00", "Henry", 10},
			{"Utilities", "150.00", "Iris", 8},
			{"Groceries", "120.00", "Henry", 2},
		},
	},
}

// GroupCreator creates groups
type GroupCreator interface {
	Create(ctx context.Context, req *group.CreateGroupRequest) (*group.Group, error)
	FindByName(ctx context.Context, name string) (*group.Group, error)
}

// ExpenseAdder records expenses
type ExpenseAdder interface {
	Add(ctx context.Context, groupID string, req *expense.CreateExpenseRequest) (*expense.Expense, error)
}

// Load creates every sample group that does not exist yet, splitting each
// expense equally. Groups already present by name are left untouched.
func Load(ctx context.Context, groups GroupCreator, expenses ExpenseAdder, now time.Time) error {
	for _, sg := range samples {
		existing, err := groups.FindByName(ctx, sg.name)
		if err != nil {
			return fmt.Errorf("look up sample group %q: %w", sg.name, err)
		}
		if existing != nil {
			slog.DebugContext(ctx, "sample group already present", "group", sg.name)
			continue
		}

		g, err := groups.Create(ctx, &group.CreateGroupRequest{
			Name:         sg.name,
			Participants: sg.participants,
		})
		if err != nil {
			return fmt.Errorf("create sample group %q: %w", sg.name, err)
		}

		for _, se := range sg.expenses {
			amount := money.MustParse(se.amount)
			_, err := expenses.Add(ctx, g.ID, &expense.CreateExpenseRequest{
				Description: se.description,
				Amount:      &amount,
				PaidBy:      se.paidBy,
				Date:        now.AddDate(0, 0, -se.daysAgo).UTC().Format(expense.DateLayout),
			})
			if err != nil {
				return fmt.Errorf("add sample expense %q to %q: %w", se.description, sg.name, err)
			}
		}

		slog.InfoContext(ctx, "sample group loaded",
			"group", sg.name,
			"group_id", g.ID,
			"expenses", len(sg.expenses),
			"split", split.SplitTypeEqual,
		)
	}
	return nil
}
