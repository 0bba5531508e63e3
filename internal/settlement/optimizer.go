package settlement

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/fairsplit/fairsplit/internal/expense/split"
	"github.com/fairsplit/fairsplit/internal/money"
)

// ErrUnsettledBalances is returned when matching fails to converge
var ErrUnsettledBalances = fmt.Errorf("%w: balances could not be settled", split.ErrInvalidInput)

// party is one side of the matching; remaining is always positive
type party struct {
	id        string
	remaining decimal.Decimal
}

// Optimize reduces net balances to transfers by repeatedly matching the
// largest creditor with the largest debtor. Ties go to the lexicographically
// smaller participant id. This is a greedy heuristic and does not guarantee
// the minimum number of transfers.
func Optimize(balances NetBalance) ([]Settlement, error) {
	var creditors, debtors []party
	for id, v := range balances {
		v = money.Round(v)
		switch {
		case money.IsSettled(v):
		case v.IsPositive():
			creditors = append(creditors, party{id: id, remaining: v})
		default:
			debtors = append(debtors, party{id: id, remaining: v.Neg()})
		}
	}

	// Every round settles at least one party.
	maxRounds := len(creditors) + len(debtors)
	settlements := make([]Settlement, 0, max(maxRounds-1, 0))

	for len(creditors) > 0 && len(debtors) > 0 {
		if len(settlements) >= maxRounds {
			return nil, ErrUnsettledBalances
		}

		ci := largest(creditors)
		di := largest(debtors)
		creditor, debtor := &creditors[ci], &debtors[di]

		transfer := money.Round(decimal.Min(creditor.remaining, debtor.remaining))
		settlements = append(settlements, Settlement{
			From:   debtor.id,
			To:     creditor.id,
			Amount: transfer,
		})

		creditor.remaining = creditor.remaining.Sub(transfer)
		debtor.remaining = debtor.remaining.Sub(transfer)

		if money.IsSettled(creditor.remaining) {
			creditors = slices.Delete(creditors, ci, ci+1)
		}
		if money.IsSettled(debtor.remaining) {
			debtors = slices.Delete(debtors, di, di+1)
		}
	}

	return settlements, nil
}

// largest returns the index of the party with the biggest remaining amount
func largest(parties []party) int {
	best := 0
	for i := 1; i < len(parties); i++ {
		c := parties[i].remaining.Cmp(parties[best].remaining)
		if c > 0 || (c == 0 && parties[i].id < parties[best].id) {
			best = i
		}
	}
	return best
}
