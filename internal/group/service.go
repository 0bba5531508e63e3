package group

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/fairsplit/fairsplit/internal/money"
)

// Common errors
var (
	ErrGroupNotFound        = errors.New("group not found")
	ErrGroupLimitReached    = errors.New("maximum group limit reached")
	ErrGroupNameTaken       = errors.New("group name already exists")
	ErrTooManyParticipants  = errors.New("too many participants")
	ErrDuplicateParticipant = errors.New("duplicate participant names are not allowed")
)

// Limits bounds how many groups and participants the service accepts
type Limits struct {
	MaxGroups       int
	MaxParticipants int
}

// DefaultLimits matches the ceilings enforced by the public API
var DefaultLimits = Limits{MaxGroups: 10, MaxParticipants: 10}

// Service handles group business logic
type Service struct {
	repo     Repository
	expenses ExpenseLedger
	limits   Limits
	now      func() time.Time

	// createMu serialises the count/name checks with the insert.
	createMu sync.Mutex
}

// NewService creates a new group service
func NewService(repo Repository, expenses ExpenseLedger, limits Limits) *Service {
	return &Service{
		repo:     repo,
		expenses: expenses,
		limits:   limits,
		now:      time.Now,
	}
}

// Create validates the limits and uniqueness rules and stores a new group
func (s *Service) Create(ctx context.Context, req *CreateGroupRequest) (*Group, error) {
	s.createMu.Lock()
	defer s.createMu.Unlock()

	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count >= s.limits.MaxGroups {
		return nil, fmt.Errorf("%w: maximum group limit of %d reached", ErrGroupLimitReached, s.limits.MaxGroups)
	}

	existing, err := s.repo.GetByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrGroupNameTaken, req.Name)
	}

	if len(req.Participants) > s.limits.MaxParticipants {
		return nil, fmt.Errorf("%w: maximum %d participants allowed per group", ErrTooManyParticipants, s.limits.MaxParticipants)
	}

	seen := make(map[string]struct{}, len(req.Participants))
	for _, p := range req.Participants {
		if _, dup := seen[p]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParticipant, p)
		}
		seen[p] = struct{}{}
	}

	group := &Group{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Participants: append([]string(nil), req.Participants...),
		CreatedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

// GetByID retrieves a group by its ID
func (s *Service) GetByID(ctx context.Context, id string) (*Group, error) {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, id)
	}
	return group, nil
}

// FindByName looks a group up by name, ignoring case. It returns nil when
// no group matches.
func (s *Service) FindByName(ctx context.Context, name string) (*Group, error) {
	return s.repo.GetByName(ctx, name)
}

// GetWithTotal retrieves a group together with the sum of its expenses
func (s *Service) GetWithTotal(ctx context.Context, id string) (*GroupWithTotal, error) {
	group, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	total, err := s.expenses.TotalByGroupID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &GroupWithTotal{Group: group, TotalExpense: money.Round(total)}, nil
}

// List retrieves every group with its expense total
func (s *Service) List(ctx context.Context) ([]*GroupWithTotal, error) {
	groups, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*GroupWithTotal, len(groups))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, group := range groups {
		g.Go(func() error {
			total, err := s.expenses.TotalByGroupID(gctx, group.ID)
			if err != nil {
				return fmt.Errorf("total for group %s: %w", group.ID, err)
			}
			result[i] = &GroupWithTotal{Group: group, TotalExpense: money.Round(total)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

// Delete removes a group and all of its expenses
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.expenses.DeleteByGroupID(ctx, id); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}
