package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/famshare/famshare/internal/models"
	"github.com/famshare/famshare/internal/storage"
)

// PaymentService manages the payment ledger and its status lifecycle.
type PaymentService struct {
	store storage.Store
}

// NewPaymentService creates a new PaymentService with the given storage backend.
func NewPaymentService(store storage.Store) *PaymentService {
	return &PaymentService{store: store}
}

// Create records a payment from one member to another, scoped to the
// sender's family. New payments start PENDING: the recipient has not
// acknowledged the money yet, so balances are untouched until confirmation.
func (s *PaymentService) Create(ctx context.Context, fromMemberID, toMemberID string, amount decimal.Decimal) (*models.Payment, error) {
	from, err := s.store.GetMember(ctx, fromMemberID)
	if err != nil {
		return nil, err
	}
	to, err := s.store.GetMember(ctx, toMemberID)
	if err != nil {
		return nil, err
	}
	if from.FamilyID != to.FamilyID {
		return nil, fmt.Errorf("%w: members %s and %s belong to different families",
			models.ErrValidation, fromMemberID, toMemberID)
	}

	payment := &models.Payment{
		FromMemberID: from.ID,
		ToMemberID:   to.ID,
		Amount:       amount,
		FamilyID:     from.FamilyID,
		Status:       models.PaymentPending,
	}
	if err := payment.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "payment recorded",
		"payment_id", payment.ID,
		"family_id", payment.FamilyID,
		"from", payment.FromMemberID,
		"to", payment.ToMemberID,
		"amount", payment.Amount,
	)
	return payment, nil
}

// Get retrieves a payment by ID.
func (s *PaymentService) Get(ctx context.Context, paymentID string) (*models.Payment, error) {
	return s.store.GetPayment(ctx, paymentID)
}

// ListByFamily retrieves the family's payments in creation order.
func (s *PaymentService) ListByFamily(ctx context.Context, familyID string) ([]*models.Payment, error) {
	if _, err := s.store.GetFamily(ctx, familyID); err != nil {
		return nil, err
	}
	return s.store.ListPaymentsByFamily(ctx, familyID)
}

// SetStatus moves a payment through its lifecycle. Legal transitions are
// PENDING→CONFIRM, PENDING→INACTIVE and CONFIRM→INACTIVE; anything else is
// rejected without touching the record.
func (s *PaymentService) SetStatus(ctx context.Context, paymentID string, status models.PaymentStatus) (*models.Payment, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", models.ErrValidation, status)
	}

	payment, err := s.store.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !payment.Status.CanTransition(status) {
		return nil, fmt.Errorf("%w: %s → %s", models.ErrInvalidTransition, payment.Status, status)
	}

	if err := s.store.UpdatePaymentStatus(ctx, paymentID, status); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "payment status changed",
		"payment_id", paymentID,
		"from_status", payment.Status,
		"to_status", status,
	)
	payment.Status = status
	return payment, nil
}

// Delete removes a payment.
func (s *PaymentService) Delete(ctx context.Context, paymentID string) error {
	if err := s.store.DeletePayment(ctx, paymentID); err != nil {
		return err
	}
	slog.InfoContext(ctx, "payment deleted", "payment_id", paymentID)
	return nil
}
