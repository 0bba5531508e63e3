package split

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// SplitType defines the type of split strategy
type SplitType string

const (
	SplitTypeEqual  SplitType = "EQUAL"
	SplitTypeCustom SplitType = "CUSTOM"
)

// Valid reports whether t names a known strategy
func (t SplitType) Valid() bool {
	return t == SplitTypeEqual || t == SplitTypeCustom
}

// Contributions maps a participant to the share of an expense they owe
type Contributions map[string]decimal.Decimal

// Total returns the exact sum of all contribution values
func (c Contributions) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range c {
		total = total.Add(v)
	}
	return total
}

// Clone returns an independent copy of the mapping
func (c Contributions) Clone() Contributions {
	out := make(Contributions, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Strategy is the interface that all split strategies must implement
type Strategy interface {
	// Calculate computes the contribution of every participant
	Calculate(amount decimal.Decimal, participants []string, explicit Contributions) (Contributions, error)

	// Type returns the type identifier for this strategy
	Type() SplitType

	// Validate checks if the inputs are valid for this strategy
	Validate(amount decimal.Decimal, participants []string, explicit Contributions) error
}

// Factory creates split strategies based on the requested type
type Factory struct{}

// NewSplitStrategyFactory creates a new factory instance
func NewSplitStrategyFactory() *Factory {
	return &Factory{}
}

// Create returns the appropriate strategy implementation based on the type
func (f *Factory) Create(splitType SplitType) (Strategy, error) {
	switch splitType {
	case SplitTypeEqual:
		return &EqualStrategy{}, nil
	case SplitTypeCustom:
		return &CustomStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown split type: %s", ErrInvalidInput, splitType)
	}
}

// ForContributions picks CUSTOM when explicit contributions were supplied
// and EQUAL otherwise.
func (f *Factory) ForContributions(explicit Contributions) Strategy {
	if len(explicit) > 0 {
		return &CustomStrategy{}
	}
	return &EqualStrategy{}
}

// ErrInvalidInput is the kind shared by every precondition failure of the
// splitting and settlement core.
var ErrInvalidInput = errors.New("invalid input")

var (
	ErrNoParticipants       = fmt.Errorf("%w: at least one participant is required", ErrInvalidInput)
	ErrNegativeAmount       = fmt.Errorf("%w: amounts cannot be negative", ErrInvalidInput)
	ErrDuplicateParticipant = fmt.Errorf("%w: participants must be unique", ErrInvalidInput)
	ErrEmptyContributions   = fmt.Errorf("%w: at least one contribution is required", ErrInvalidInput)
	ErrBlankParticipant     = fmt.Errorf("%w: participant id cannot be blank", ErrInvalidInput)
)
