package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPaymentStatusCanTransition(t *testing.T) {
	tests := []struct {
		from    PaymentStatus
		to      PaymentStatus
		allowed bool
	}{
		{PaymentPending, PaymentConfirmed, true},
		{PaymentPending, PaymentInactive, true},
		{PaymentConfirmed, PaymentInactive, true},
		{PaymentConfirmed, PaymentPending, false},
		{PaymentInactive, PaymentConfirmed, false},
		{PaymentInactive, PaymentPending, false},
		{PaymentPending, PaymentPending, false},
		{PaymentConfirmed, PaymentConfirmed, false},
		{PaymentInactive, PaymentInactive, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.allowed {
			t.Errorf("CanTransition(%s → %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestPaymentValidate(t *testing.T) {
	valid := Payment{
		FromMemberID: "m1",
		ToMemberID:   "m2",
		Amount:       decimal.NewFromInt(25),
		FamilyID:     "f1",
		Status:       PaymentPending,
	}

	t.Run("valid payment", func(t *testing.T) {
		if err := valid.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("self payment", func(t *testing.T) {
		p := valid
		p.ToMemberID = p.FromMemberID
		if err := p.Validate(); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("zero amount", func(t *testing.T) {
		p := valid
		p.Amount = decimal.Zero
		if err := p.Validate(); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("negative amount", func(t *testing.T) {
		p := valid
		p.Amount = decimal.NewFromInt(-5)
		if err := p.Validate(); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		p := valid
		p.Status = "PAID"
		if err := p.Validate(); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})
}
