package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/famshare/famshare/internal/models"
)

// CreateMember persists a new member to the database. The UNIQUE constraint
// on platform_id rejects a second registration of the same account.
func (s *SQLiteStore) CreateMember(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.CreatedAt == 0 {
		member.CreatedAt = time.Now().Unix()
	}
	if member.Language == "" {
		member.Language = models.LanguageEN
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO members (id, family_id, name, platform_id, language, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		member.ID, member.FamilyID, member.Name, member.PlatformID, string(member.Language), member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// GetMember retrieves a member by ID.
func (s *SQLiteStore) GetMember(ctx context.Context, memberID string) (*models.Member, error) {
	return s.getMember(ctx, "id", memberID)
}

// GetMemberByPlatformID retrieves a member by external-platform ID.
func (s *SQLiteStore) GetMemberByPlatformID(ctx context.Context, platformID string) (*models.Member, error) {
	return s.getMember(ctx, "platform_id", platformID)
}

func (s *SQLiteStore) getMember(ctx context.Context, column, value string) (*models.Member, error) {
	member := &models.Member{}
	var lang string
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT id, family_id, name, platform_id, language, created_at FROM members WHERE %s = ?", column),
		value,
	).Scan(&member.ID, &member.FamilyID, &member.Name, &member.PlatformID, &lang, &member.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("member %s: %w", value, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	member.Language = models.Language(lang)
	return member, nil
}

// ListMembersByFamily retrieves all members of a family, oldest first.
func (s *SQLiteStore) ListMembersByFamily(ctx context.Context, familyID string) ([]*models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, family_id, name, platform_id, language, created_at FROM members WHERE family_id = ? ORDER BY created_at, id",
		familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members by family: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		member := &models.Member{}
		var lang string
		if err := rows.Scan(&member.ID, &member.FamilyID, &member.Name, &member.PlatformID, &lang, &member.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		member.Language = models.Language(lang)
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

// UpdateMemberLanguage sets a member's language preference.
func (s *SQLiteStore) UpdateMemberLanguage(ctx context.Context, memberID string, lang models.Language) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE members SET language = ? WHERE id = ?",
		string(lang), memberID,
	)
	if err != nil {
		return fmt.Errorf("failed to update member language: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check member update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("member %s: %w", memberID, models.ErrNotFound)
	}
	return nil
}

// MemberReferenced reports whether any expense, split or payment points at
// the member.
func (s *SQLiteStore) MemberReferenced(ctx context.Context, memberID string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 WHERE EXISTS (SELECT 1 FROM expenses WHERE paid_by = ?)
		    OR EXISTS (SELECT 1 FROM expense_splits WHERE member_id = ?)
		    OR EXISTS (SELECT 1 FROM payments WHERE from_member_id = ? OR to_member_id = ?)`,
		memberID, memberID, memberID, memberID,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check member references: %w", err)
	}
	return true, nil
}

// DeleteMember removes a member row.
func (s *SQLiteStore) DeleteMember(ctx context.Context, memberID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM members WHERE id = ?", memberID)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check member delete: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("member %s: %w", memberID, models.ErrNotFound)
	}
	return nil
}
