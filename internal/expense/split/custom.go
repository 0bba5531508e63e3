package split

import (
	"github.com/shopspring/decimal"

	"github.com/fairsplit/fairsplit/internal/money"
)

// CustomStrategy uses caller-supplied contributions as the split.
// The values are not required to sum to the expense amount.
type CustomStrategy struct{}

// Type returns the split type identifier
func (s *CustomStrategy) Type() SplitType {
	return SplitTypeCustom
}

// Validate checks if the inputs are valid for a custom split
func (s *CustomStrategy) Validate(amount decimal.Decimal, _ []string, explicit Contributions) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if len(explicit) == 0 {
		return ErrEmptyContributions
	}
	for participant, value := range explicit {
		if participant == "" {
			return ErrBlankParticipant
		}
		if value.IsNegative() {
			return ErrNegativeAmount
		}
	}
	return nil
}

// Calculate returns the explicit contributions rounded to two decimals.
func (s *CustomStrategy) Calculate(amount decimal.Decimal, participants []string, explicit Contributions) (Contributions, error) {
	if err := s.Validate(amount, participants, explicit); err != nil {
		return nil, err
	}

	out := make(Contributions, len(explicit))
	for participant, value := range explicit {
		out[participant] = money.Round(value)
	}
	return out, nil
}
