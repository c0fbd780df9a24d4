package service

import (
	"context"
	"fmt"

	"github.com/famshare/famshare/internal/balance"
	"github.com/famshare/famshare/internal/models"
	"github.com/famshare/famshare/internal/storage"
)

// BalanceService derives balance views from the ledgers. It is read-only:
// every call re-reads the family's current expenses and payments, so there
// is no staleness and no recompute step after writes.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a new BalanceService with the given storage backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

func (s *BalanceService) computeSheet(ctx context.Context, familyID string) (*balance.Sheet, error) {
	if _, err := s.store.GetFamily(ctx, familyID); err != nil {
		return nil, err
	}
	members, err := s.store.ListMembersByFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpensesByFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.ListPaymentsByFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	return balance.Compute(members, expenses, payments)
}

// FamilyBalances computes every member's position in the family, zero
// balances included.
func (s *BalanceService) FamilyBalances(ctx context.Context, familyID string) ([]balance.MemberBalance, error) {
	sheet, err := s.computeSheet(ctx, familyID)
	if err != nil {
		return nil, err
	}
	return sheet.Members, nil
}

// MemberBalance computes one member's position within the family.
func (s *BalanceService) MemberBalance(ctx context.Context, familyID, memberID string) (*balance.MemberBalance, error) {
	sheet, err := s.computeSheet(ctx, familyID)
	if err != nil {
		return nil, err
	}
	mb, ok := sheet.Member(memberID)
	if !ok {
		return nil, fmt.Errorf("member %s in family %s: %w", memberID, familyID, models.ErrNotFound)
	}
	return &mb, nil
}

// PairwiseBalances computes the family's non-zero directed debts, shaped
// for a "who owes whom" display.
func (s *BalanceService) PairwiseBalances(ctx context.Context, familyID string) ([]balance.Pair, error) {
	sheet, err := s.computeSheet(ctx, familyID)
	if err != nil {
		return nil, err
	}
	return sheet.Pairs, nil
}

// PendingPayments lists the family's payments awaiting confirmation.
// Pending money never moves a balance, but hiding it entirely would leave
// the creditor unaware a claim exists, so it gets its own view.
func (s *BalanceService) PendingPayments(ctx context.Context, familyID string) ([]*models.Payment, error) {
	if _, err := s.store.GetFamily(ctx, familyID); err != nil {
		return nil, err
	}
	payments, err := s.store.ListPaymentsByFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	pending := make([]*models.Payment, 0)
	for _, p := range payments {
		if p.Status == models.PaymentPending {
			pending = append(pending, p)
		}
	}
	return pending, nil
}
