package split

import (
	"github.com/shopspring/decimal"

	"github.com/fairsplit/fairsplit/internal/money"
)

// EqualStrategy implements the Strategy interface for equal splits
type EqualStrategy struct{}

// Type returns the split type identifier
func (s *EqualStrategy) Type() SplitType {
	return SplitTypeEqual
}

// Validate checks if the inputs are valid for an equal split
func (s *EqualStrategy) Validate(amount decimal.Decimal, participants []string, _ Contributions) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if amount.IsNegative() {
		return ErrNegativeAmount
	}

	seen := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		if p == "" {
			return ErrBlankParticipant
		}
		if _, dup := seen[p]; dup {
			return ErrDuplicateParticipant
		}
		seen[p] = struct{}{}
	}
	return nil
}

// Calculate divides the amount equally among all participants.
// Explicit contributions are ignored.
func (s *EqualStrategy) Calculate(amount decimal.Decimal, participants []string, _ Contributions) (Contributions, error) {
	return EqualSplit(amount, participants)
}

// EqualSplit assigns round(amount/n) to every participant but the last, who
// absorbs the rounding residue so the shares always sum to round(amount).
// The result therefore depends on participant order.
func EqualSplit(amount decimal.Decimal, participants []string) (Contributions, error) {
	if err := (&EqualStrategy{}).Validate(amount, participants, nil); err != nil {
		return nil, err
	}

	amount = money.Round(amount)
	share := money.Div(amount, len(participants))

	splits := make(Contributions, len(participants))
	allocated := decimal.Zero
	last := len(participants) - 1
	for _, p := range participants[:last] {
		splits[p] = share
		allocated = allocated.Add(share)
	}
	splits[participants[last]] = money.Round(amount.Sub(allocated))

	return splits, nil
}
