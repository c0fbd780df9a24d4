package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/famshare/famshare/internal/models"
)

// CreatePayment persists a new payment to the database.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}
	if payment.Status == "" {
		payment.Status = models.PaymentPending
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (id, family_id, from_member_id, to_member_id, amount, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.FamilyID, payment.FromMemberID, payment.ToMemberID,
		payment.Amount.String(), string(payment.Status), payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// GetPayment retrieves a payment by ID.
func (s *SQLiteStore) GetPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	payment := &models.Payment{}
	var amount, status string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, family_id, from_member_id, to_member_id, amount, status, created_at
		 FROM payments WHERE id = ?`,
		paymentID,
	).Scan(&payment.ID, &payment.FamilyID, &payment.FromMemberID, &payment.ToMemberID,
		&amount, &status, &payment.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("payment %s: %w", paymentID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	if payment.Amount, err = parseAmount(amount); err != nil {
		return nil, err
	}
	payment.Status = models.PaymentStatus(status)
	return payment, nil
}

// ListPaymentsByFamily retrieves all payments of a family in creation order.
func (s *SQLiteStore) ListPaymentsByFamily(ctx context.Context, familyID string) ([]*models.Payment, error) {
	return s.listPayments(ctx,
		`SELECT id, family_id, from_member_id, to_member_id, amount, status, created_at
		 FROM payments WHERE family_id = ? ORDER BY created_at, id`,
		familyID,
	)
}

// ListPaymentsByMember retrieves payments sent or received by a member.
func (s *SQLiteStore) ListPaymentsByMember(ctx context.Context, memberID string) ([]*models.Payment, error) {
	return s.listPayments(ctx,
		`SELECT id, family_id, from_member_id, to_member_id, amount, status, created_at
		 FROM payments WHERE from_member_id = ? OR to_member_id = ? ORDER BY created_at, id`,
		memberID, memberID,
	)
}

func (s *SQLiteStore) listPayments(ctx context.Context, query string, args ...any) ([]*models.Payment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		var amount, status string
		if err := rows.Scan(&payment.ID, &payment.FamilyID, &payment.FromMemberID, &payment.ToMemberID,
			&amount, &status, &payment.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		if payment.Amount, err = parseAmount(amount); err != nil {
			return nil, err
		}
		payment.Status = models.PaymentStatus(status)
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

// UpdatePaymentStatus sets a payment's status.
func (s *SQLiteStore) UpdatePaymentStatus(ctx context.Context, paymentID string, status models.PaymentStatus) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE payments SET status = ? WHERE id = ?",
		string(status), paymentID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check payment update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("payment %s: %w", paymentID, models.ErrNotFound)
	}
	return nil
}

// DeletePayment removes a payment by ID.
func (s *SQLiteStore) DeletePayment(ctx context.Context, paymentID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM payments WHERE id = ?", paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check payment delete: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("payment %s: %w", paymentID, models.ErrNotFound)
	}
	return nil
}
