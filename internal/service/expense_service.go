package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/famshare/famshare/internal/models"
	"github.com/famshare/famshare/internal/storage"
)

// ExpenseService manages the expense ledger.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// Create records a new expense paid by the given member. The expense is
// scoped to the payer's family.
//
// When splits is empty, the amount is divided equally across all current
// family members. Otherwise the split set is used as given and must sum to
// the amount within models.SplitTolerance, with every split member
// belonging to the payer's family. Nothing is persisted on a validation
// failure.
func (s *ExpenseService) Create(ctx context.Context, paidBy, description string, amount decimal.Decimal, splits []models.Split) (*models.Expense, error) {
	payer, err := s.store.GetMember(ctx, paidBy)
	if err != nil {
		return nil, err
	}

	members, err := s.store.ListMembersByFamily(ctx, payer.FamilyID)
	if err != nil {
		return nil, err
	}

	if len(splits) == 0 {
		if !amount.IsPositive() {
			return nil, fmt.Errorf("%w: expense amount must be positive, got %s", models.ErrValidation, amount)
		}
		ids := make([]string, 0, len(members))
		for _, m := range members {
			ids = append(ids, m.ID)
		}
		splits = models.SplitEqually(amount, ids)
	} else {
		inFamily := make(map[string]bool, len(members))
		for _, m := range members {
			inFamily[m.ID] = true
		}
		for _, split := range splits {
			if !inFamily[split.MemberID] {
				return nil, fmt.Errorf("%w: split member %s does not belong to family %s",
					models.ErrValidation, split.MemberID, payer.FamilyID)
			}
		}
	}

	expense := &models.Expense{
		Description: description,
		Amount:      amount,
		PaidBy:      payer.ID,
		FamilyID:    payer.FamilyID,
		Splits:      splits,
	}
	if err := expense.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "expense recorded",
		"expense_id", expense.ID,
		"family_id", expense.FamilyID,
		"paid_by", expense.PaidBy,
		"amount", expense.Amount,
		"splits", len(expense.Splits),
	)
	return expense, nil
}

// Get retrieves an expense by ID.
func (s *ExpenseService) Get(ctx context.Context, expenseID string) (*models.Expense, error) {
	return s.store.GetExpense(ctx, expenseID)
}

// ListByFamily retrieves the family's expenses in creation order.
func (s *ExpenseService) ListByFamily(ctx context.Context, familyID string) ([]*models.Expense, error) {
	if _, err := s.store.GetFamily(ctx, familyID); err != nil {
		return nil, err
	}
	return s.store.ListExpensesByFamily(ctx, familyID)
}

// Delete removes an expense. The next balance read reflects the removal;
// there is no cached state to invalidate.
func (s *ExpenseService) Delete(ctx context.Context, expenseID string) error {
	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		return err
	}
	slog.InfoContext(ctx, "expense deleted", "expense_id", expenseID)
	return nil
}
