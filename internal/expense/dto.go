package expense

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fairsplit/fairsplit/internal/expense/split"
)

// CreateExpenseRequest represents the request to add an expense to a group.
// When Contributions is empty the amount is split equally.
type CreateExpenseRequest struct {
	Description   string              `json:"description" validate:"required"`
	Amount        *decimal.Decimal    `json:"amount" validate:"required"`
	PaidBy        string              `json:"paidBy" validate:"required"`
	Date          string              `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Contributions split.Contributions `json:"contributions,omitempty"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID            string              `json:"expenseId"`
	GroupID       string              `json:"groupId"`
	Description   string              `json:"description"`
	Amount        decimal.Decimal     `json:"amount"`
	PaidBy        string              `json:"paidBy"`
	Date          string              `json:"date"`
	Contributions split.Contributions `json:"contributions"`
	SplitDetails  split.Contributions `json:"splitDetails"`
	SplitType     split.SplitType     `json:"splitType"`
	CreatedAt     string              `json:"createdAt"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:            e.ID,
		GroupID:       e.GroupID,
		Description:   e.Description,
		Amount:        e.Amount,
		PaidBy:        e.PaidBy,
		Date:          e.Date.Format(DateLayout),
		Contributions: e.Contributions,
		SplitDetails:  e.Contributions,
		SplitType:     e.SplitType,
		CreatedAt:     e.CreatedAt.UTC().Format(time.RFC3339),
	}
}
