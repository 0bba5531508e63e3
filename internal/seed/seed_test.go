package seed

import (
	"context"
	"testing"
	"time"

	"github.com/fairsplit/fairsplit/internal/expense"
	"github.com/fairsplit/fairsplit/internal/expense/split"
	"github.com/fairsplit/fairsplit/internal/group"
	"github.com/fairsplit/fairsplit/internal/settlement"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()
	expenseRepo := expense.NewMemoryRepository()
	groups := group.NewService(group.NewMemoryRepository(), expenseRepo, group.DefaultLimits)
	expenses := expense.NewService(expenseRepo, groups, split.NewSplitStrategyFactory())

	now := time.Now()
	if err := Load(ctx, groups, expenses, now); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	// A second run must not duplicate anything.
	if err := Load(ctx, groups, expenses, now); err != nil {
		t.Fatalf("second Load() error = %v", err)
	}

	all, err := groups.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != len(samples) {
		t.Fatalf("loaded %d groups, want %d", len(all), len(samples))
	}

	apartment, err := groups.FindByName(ctx, "apartment expenses")
	if err != nil || apartment == nil {
		t.Fatalf("FindByName() = %v, %v", apartment, err)
	}

	report, err := settlement.NewService(expenses).Calculate(ctx, apartment.ID)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	// Henry paid 2120, Iris 150; each owes 1135.
	if len(report.Settlements) != 1 {
		t.Fatalf("settlements = %+v, want one", report.Settlements)
	}
	s := report.Settlements[0]
	if s.From != "Iris" || s.To != "Henry" || s.Amount.String() != "985" {
		t.Errorf("settlement = %s -> %s %s, want Iris -> Henry 985", s.From, s.To, s.Amount)
	}
}
