package settlement

import "github.com/shopspring/decimal"

// NetBalance maps a participant to their signed position in a group.
// Positive means the group owes the participant, negative means the
// participant owes the group.
type NetBalance map[string]decimal.Decimal

// Total returns the exact sum of every balance
func (b NetBalance) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range b {
		total = total.Add(v)
	}
	return total
}

// Settlement is one recommended transfer from a debtor to a creditor
type Settlement struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// MemberBalance summarises one participant's activity in a group
type MemberBalance struct {
	TotalPaid  decimal.Decimal `json:"totalPaid"`
	TotalOwed  decimal.Decimal `json:"totalOwed"`
	NetBalance decimal.Decimal `json:"netBalance"` // TotalPaid - TotalOwed
}

// Report is the full settlement view of a group
type Report struct {
	Settlements    []Settlement             `json:"settlements"`
	MemberBalances map[string]MemberBalance `json:"memberBalances"`
}
