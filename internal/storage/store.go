// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/famshare/famshare/internal/models"
)

// Store defines the interface for ledger storage operations. This
// abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Every read returns a complete, consistent snapshot; lookups for missing
// rows return an error wrapping models.ErrNotFound.
type Store interface {
	// CreateFamily persists a new family. ID and CreatedAt are populated
	// by the store when unset.
	CreateFamily(ctx context.Context, family *models.Family) error

	// GetFamily retrieves a family by ID.
	GetFamily(ctx context.Context, familyID string) (*models.Family, error)

	// CreateMember persists a new member. Fails if the platform ID is
	// already registered.
	CreateMember(ctx context.Context, member *models.Member) error

	// GetMember retrieves a member by ID.
	GetMember(ctx context.Context, memberID string) (*models.Member, error)

	// GetMemberByPlatformID retrieves a member by external-platform ID.
	GetMemberByPlatformID(ctx context.Context, platformID string) (*models.Member, error)

	// ListMembersByFamily retrieves all members of a family, oldest first.
	ListMembersByFamily(ctx context.Context, familyID string) ([]*models.Member, error)

	// UpdateMemberLanguage sets a member's language preference.
	UpdateMemberLanguage(ctx context.Context, memberID string, lang models.Language) error

	// DeleteMember removes a member row. Callers must check
	// MemberReferenced first; the store does not cascade.
	DeleteMember(ctx context.Context, memberID string) error

	// MemberReferenced reports whether any expense, split or payment
	// points at the member.
	MemberReferenced(ctx context.Context, memberID string) (bool, error)

	// CreateExpense persists an expense together with its split set in one
	// transaction.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with its split set.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByFamily retrieves all expenses of a family in creation
	// order, splits included.
	ListExpensesByFamily(ctx context.Context, familyID string) ([]*models.Expense, error)

	// DeleteExpense removes an expense and its splits.
	DeleteExpense(ctx context.Context, expenseID string) error

	// CreatePayment persists a payment.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// GetPayment retrieves a payment by ID.
	GetPayment(ctx context.Context, paymentID string) (*models.Payment, error)

	// ListPaymentsByFamily retrieves all payments of a family in creation
	// order.
	ListPaymentsByFamily(ctx context.Context, familyID string) ([]*models.Payment, error)

	// ListPaymentsByMember retrieves payments sent or received by a member.
	ListPaymentsByMember(ctx context.Context, memberID string) ([]*models.Payment, error)

	// UpdatePaymentStatus sets a payment's status. Transition legality is
	// enforced by the service layer.
	UpdatePaymentStatus(ctx context.Context, paymentID string, status models.PaymentStatus) error

	// DeletePayment removes a payment.
	DeletePayment(ctx context.Context, paymentID string) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
