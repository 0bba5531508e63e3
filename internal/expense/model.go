package expense

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fairsplit/fairsplit/internal/expense/split"
)

// DateLayout is the wire and storage format of an expense date
const DateLayout = "2006-01-02"

// Expense is one payment made by a participant on behalf of the group.
// It is immutable once stored.
type Expense struct {
	ID            string
	GroupID       string
	Description   string
	Amount        decimal.Decimal
	PaidBy        string
	Date          time.Time // Calendar day, UTC midnight
	Contributions split.Contributions
	SplitType     split.SplitType
	CreatedAt     time.Time
}

// Clone returns a deep copy of the expense
func (e *Expense) Clone() *Expense {
	c := *e
	c.Contributions = e.Contributions.Clone()
	return &c
}
