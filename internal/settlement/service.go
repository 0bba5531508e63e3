package settlement

import (
	"context"
	"log/slog"
	"time"

	"github.com/fairsplit/fairsplit/internal/expense"
	"github.com/fairsplit/fairsplit/internal/metrics"
)

// ExpenseLister returns the expenses of an existing group
type ExpenseLister interface {
	ListByGroup(ctx context.Context, groupID string) ([]*expense.Expense, error)
}

// Service computes settlement reports on demand. Nothing is cached; every
// call rebuilds the report from the stored expenses.
type Service struct {
	expenses ExpenseLister
}

// NewService creates a new settlement service
func NewService(expenses ExpenseLister) *Service {
	return &Service{expenses: expenses}
}

// Calculate builds the settlement report for a group
func (s *Service) Calculate(ctx context.Context, groupID string) (*Report, error) {
	expenses, err := s.expenses.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	report, err := BuildReport(expenses)
	elapsed := time.Since(start)

	if err != nil {
		metrics.ObserveSettlement(elapsed, 0, err)
		return nil, err
	}
	metrics.ObserveSettlement(elapsed, len(report.Settlements), nil)

	slog.DebugContext(ctx, "settlement report built",
		"group_id", groupID,
		"expenses", len(expenses),
		"members", len(report.MemberBalances),
		"settlements", len(report.Settlements),
		"duration", elapsed,
	)
	return report, nil
}
