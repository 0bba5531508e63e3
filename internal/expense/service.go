package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fairsplit/fairsplit/internal/expense/split"
	"github.com/fairsplit/fairsplit/internal/group"
	"github.com/fairsplit/fairsplit/internal/metrics"
	"github.com/fairsplit/fairsplit/internal/money"
)

// Common errors
var (
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidDate         = errors.New("date must be formatted as YYYY-MM-DD")
	ErrFutureDate          = errors.New("expense date cannot be in the future")
	ErrPayerNotParticipant = errors.New("payer must be a participant in the group")
	ErrUnknownParticipant  = errors.New("contribution names a participant outside the group")
)

// GroupReader looks up the group an expense belongs to
type GroupReader interface {
	GetByID(ctx context.Context, id string) (*group.Group, error)
}

// Service handles expense business logic
type Service struct {
	repo         Repository
	groups       GroupReader
	splitFactory *split.Factory
	now          func() time.Time
}

// NewService creates a new expense service with dependencies injected
func NewService(repo Repository, groups GroupReader, splitFactory *split.Factory) *Service {
	return &Service{
		repo:         repo,
		groups:       groups,
		splitFactory: splitFactory,
		now:          time.Now,
	}
}

// Add validates a new expense against its group, computes the split and stores it
func (s *Service) Add(ctx context.Context, groupID string, req *CreateExpenseRequest) (*Expense, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if req.Amount == nil || !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	amount := money.Round(*req.Amount)
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	date, err := s.expenseDate(req.Date)
	if err != nil {
		return nil, err
	}

	if !g.HasParticipant(req.PaidBy) {
		return nil, fmt.Errorf("%w: %s", ErrPayerNotParticipant, req.PaidBy)
	}
	for participant := range req.Contributions {
		if !g.HasParticipant(participant) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownParticipant, participant)
		}
	}

	strategy := s.splitFactory.ForContributions(req.Contributions)
	contributions, err := strategy.Calculate(amount, g.Participants, req.Contributions)
	if err != nil {
		return nil, err
	}

	expense := &Expense{
		ID:            uuid.NewString(),
		GroupID:       g.ID,
		Description:   req.Description,
		Amount:        amount,
		PaidBy:        req.PaidBy,
		Date:          date,
		Contributions: contributions,
		SplitType:     strategy.Type(),
		CreatedAt:     s.now(),
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, err
	}

	metrics.ExpenseCreated(string(expense.SplitType))
	return expense, nil
}

// expenseDate parses raw, defaulting to today, and rejects future dates
func (s *Service) expenseDate(raw string) (time.Time, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if raw == "" {
		return today, nil
	}

	date, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidDate, raw)
	}
	if date.After(today) {
		return time.Time{}, ErrFutureDate
	}
	return date, nil
}

// ListByGroup retrieves the expenses of an existing group, newest first
func (s *Service) ListByGroup(ctx context.Context, groupID string) ([]*Expense, error) {
	if _, err := s.groups.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	return s.repo.ListByGroupID(ctx, groupID)
}
