package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the confirmation state of a payment.
//
// Only CONFIRM payments count toward balances: recording a payment claims
// money was sent, confirmation acknowledges it was received. This stops a
// debtor from erasing a debt unilaterally.
type PaymentStatus string

const (
	// PaymentPending is the initial state: claimed by the sender, not yet
	// acknowledged by the recipient.
	PaymentPending PaymentStatus = "PENDING"

	// PaymentConfirmed means the recipient acknowledged the payment. The
	// only state that reduces outstanding debt.
	PaymentConfirmed PaymentStatus = "CONFIRM"

	// PaymentInactive means the payment was voided. Terminal.
	PaymentInactive PaymentStatus = "INACTIVE"
)

// Valid reports whether s is a known status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentConfirmed, PaymentInactive:
		return true
	}
	return false
}

// CanTransition reports whether s may move to next. Allowed moves:
// PENDING→CONFIRM, PENDING→INACTIVE, CONFIRM→INACTIVE. INACTIVE is
// terminal; voiding always goes through INACTIVE so the audit trail
// survives.
func (s PaymentStatus) CanTransition(next PaymentStatus) bool {
	switch s {
	case PaymentPending:
		return next == PaymentConfirmed || next == PaymentInactive
	case PaymentConfirmed:
		return next == PaymentInactive
	}
	return false
}

// Payment represents a directed money transfer between two family members.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// FromMemberID is the member who sent the money.
	FromMemberID string

	// ToMemberID is the member who received it.
	ToMemberID string

	// Amount is the payment amount. Strictly positive.
	Amount decimal.Decimal

	// FamilyID is the family both members belong to.
	FamilyID string

	// Status is the confirmation state. New payments start PENDING.
	Status PaymentStatus

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}

// Validate checks the payment fields before persistence.
func (p *Payment) Validate() error {
	if p.FromMemberID == "" || p.ToMemberID == "" {
		return fmt.Errorf("%w: payment must reference both members", ErrValidation)
	}
	if p.FromMemberID == p.ToMemberID {
		return fmt.Errorf("%w: payment sender and recipient must differ", ErrValidation)
	}
	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: payment amount must be positive, got %s", ErrValidation, p.Amount)
	}
	if p.FamilyID == "" {
		return fmt.Errorf("%w: payment must reference a family", ErrValidation)
	}
	if p.Status != "" && !p.Status.Valid() {
		return fmt.Errorf("%w: unknown payment status %q", ErrValidation, p.Status)
	}
	return nil
}
