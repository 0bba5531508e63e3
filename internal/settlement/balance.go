package settlement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fairsplit/fairsplit/internal/expense"
	"github.com/fairsplit/fairsplit/internal/expense/split"
	"github.com/fairsplit/fairsplit/internal/money"
)

// Aggregate folds expenses into a net balance per participant. The payer is
// credited the full amount and every contributor is debited their share;
// results are rounded once, after all expenses are applied.
func Aggregate(expenses []*expense.Expense) (NetBalance, error) {
	exact := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		if err := checkExpense(e); err != nil {
			return nil, err
		}

		exact[e.PaidBy] = exact[e.PaidBy].Add(e.Amount)
		for participant, share := range e.Contributions {
			exact[participant] = exact[participant].Sub(share)
		}
	}

	balances := make(NetBalance, len(exact))
	for participant, v := range exact {
		balances[participant] = money.Round(v)
	}
	return balances, nil
}

// checkExpense rejects records the core cannot fold meaningfully
func checkExpense(e *expense.Expense) error {
	if e.Amount.IsNegative() {
		return fmt.Errorf("expense %s: %w", e.ID, split.ErrNegativeAmount)
	}
	if len(e.Contributions) == 0 {
		return fmt.Errorf("expense %s: %w", e.ID, split.ErrEmptyContributions)
	}
	for participant, share := range e.Contributions {
		if share.IsNegative() {
			return fmt.Errorf("expense %s, participant %s: %w", e.ID, participant, split.ErrNegativeAmount)
		}
	}
	return nil
}
