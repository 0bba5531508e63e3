package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/fairsplit/fairsplit/internal/expense"
	"github.com/fairsplit/fairsplit/internal/money"
)

// BuildReport computes member balances and the settlement plan for one
// group's expenses. Paid and owed totals are accumulated separately from
// the net balances fed to the optimizer; both agree after rounding.
func BuildReport(expenses []*expense.Expense) (*Report, error) {
	paid := make(map[string]decimal.Decimal)
	owed := make(map[string]decimal.Decimal)

	for _, e := range expenses {
		if err := checkExpense(e); err != nil {
			return nil, err
		}

		paid[e.PaidBy] = paid[e.PaidBy].Add(e.Amount)
		for participant, share := range e.Contributions {
			owed[participant] = owed[participant].Add(share)
		}
	}

	members := make(map[string]MemberBalance, len(paid)+len(owed))
	for _, totals := range []map[string]decimal.Decimal{paid, owed} {
		for participant := range totals {
			if _, done := members[participant]; done {
				continue
			}
			members[participant] = MemberBalance{
				TotalPaid:  money.Round(paid[participant]),
				TotalOwed:  money.Round(owed[participant]),
				NetBalance: money.Round(paid[participant].Sub(owed[participant])),
			}
		}
	}

	balances, err := Aggregate(expenses)
	if err != nil {
		return nil, err
	}

	settlements, err := Optimize(balances)
	if err != nil {
		return nil, err
	}

	return &Report{
		Settlements:    settlements,
		MemberBalances: members,
	}, nil
}
