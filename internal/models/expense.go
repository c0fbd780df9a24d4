package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SplitTolerance is the allowed gap between an expense total and the sum of
// its split amounts. One minor currency unit absorbs division remainders.
var SplitTolerance = decimal.New(1, -2)

// Split is one member's owed share of an expense.
type Split struct {
	// MemberID is the member who owes this share.
	MemberID string

	// Amount is the owed share. Non-negative; the payer's own share is
	// allowed and nets to nothing.
	Amount decimal.Decimal
}

// Expense represents an amount paid by one member and divided across a set
// of members. The split set is fixed at creation and never rewritten.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description says what the expense was for.
	Description string

	// Amount is the total expense amount. Strictly positive.
	Amount decimal.Decimal

	// PaidBy is the member who paid the full amount.
	PaidBy string

	// FamilyID is the family this expense belongs to.
	FamilyID string

	// Splits divides Amount across members. The sum of split amounts must
	// equal Amount within SplitTolerance. The payer may or may not appear;
	// if present, that share is the payer's own consumption.
	Splits []Split

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// Validate checks the expense fields before persistence. Family membership
// of the split members is checked separately against the family's member
// set.
func (e *Expense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("%w: expense description must not be empty", ErrValidation)
	}
	if !e.Amount.IsPositive() {
		return fmt.Errorf("%w: expense amount must be positive, got %s", ErrValidation, e.Amount)
	}
	if e.PaidBy == "" {
		return fmt.Errorf("%w: expense must reference a payer", ErrValidation)
	}
	if e.FamilyID == "" {
		return fmt.Errorf("%w: expense must reference a family", ErrValidation)
	}
	if len(e.Splits) == 0 {
		return fmt.Errorf("%w: expense split set must not be empty", ErrValidation)
	}

	sum := decimal.Zero
	seen := make(map[string]bool, len(e.Splits))
	for _, s := range e.Splits {
		if s.MemberID == "" {
			return fmt.Errorf("%w: split must reference a member", ErrValidation)
		}
		if seen[s.MemberID] {
			return fmt.Errorf("%w: member %s appears twice in split set", ErrValidation, s.MemberID)
		}
		seen[s.MemberID] = true
		if s.Amount.IsNegative() {
			return fmt.Errorf("%w: split amount must not be negative, got %s", ErrValidation, s.Amount)
		}
		sum = sum.Add(s.Amount)
	}
	if sum.Sub(e.Amount).Abs().GreaterThan(SplitTolerance) {
		return fmt.Errorf("%w: split amounts sum to %s, expense total is %s", ErrValidation, sum, e.Amount)
	}
	return nil
}

// SplitEqually divides total across the given members at cent precision.
// Leftover cents are assigned one each to the earliest members, so the
// returned shares always sum exactly to total.
func SplitEqually(total decimal.Decimal, memberIDs []string) []Split {
	if len(memberIDs) == 0 {
		return nil
	}
	n := decimal.NewFromInt(int64(len(memberIDs)))
	base := total.Div(n).RoundDown(2)
	remainder := total.Sub(base.Mul(n))
	cent := decimal.New(1, -2)

	splits := make([]Split, 0, len(memberIDs))
	for _, id := range memberIDs {
		amount := base
		if remainder.GreaterThanOrEqual(cent) {
			amount = amount.Add(cent)
			remainder = remainder.Sub(cent)
		}
		splits = append(splits, Split{MemberID: id, Amount: amount})
	}
	return splits
}
