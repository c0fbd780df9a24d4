package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/famshare/famshare/internal/models"
	"github.com/famshare/famshare/internal/storage"
)

// MemberService manages family membership.
type MemberService struct {
	store storage.Store
}

// NewMemberService creates a new MemberService with the given storage backend.
func NewMemberService(store storage.Store) *MemberService {
	return &MemberService{store: store}
}

// Join registers a new member in an existing family.
func (s *MemberService) Join(ctx context.Context, familyID, name, platformID string, lang models.Language) (*models.Member, error) {
	if _, err := s.store.GetFamily(ctx, familyID); err != nil {
		return nil, err
	}

	member := &models.Member{
		FamilyID:   familyID,
		Name:       name,
		PlatformID: platformID,
		Language:   lang,
	}
	if err := member.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.store.GetMemberByPlatformID(ctx, platformID); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: platform id %s already registered", models.ErrConflict, platformID)
	}

	if err := s.store.CreateMember(ctx, member); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "member joined", "member_id", member.ID, "family_id", familyID, "name", name)
	return member, nil
}

// Get retrieves a member by ID.
func (s *MemberService) Get(ctx context.Context, memberID string) (*models.Member, error) {
	return s.store.GetMember(ctx, memberID)
}

// GetByPlatformID retrieves a member by external-platform ID.
func (s *MemberService) GetByPlatformID(ctx context.Context, platformID string) (*models.Member, error) {
	return s.store.GetMemberByPlatformID(ctx, platformID)
}

// UpdateLanguage sets a member's language preference.
func (s *MemberService) UpdateLanguage(ctx context.Context, memberID string, lang models.Language) error {
	if !lang.Valid() {
		return fmt.Errorf("%w: unknown language %q", models.ErrValidation, lang)
	}
	return s.store.UpdateMemberLanguage(ctx, memberID, lang)
}

// Delete removes a member. A member referenced by any expense, split or
// payment is never deleted: cascading would rewrite historical balances,
// so the call fails with a conflict instead.
func (s *MemberService) Delete(ctx context.Context, memberID string) error {
	if _, err := s.store.GetMember(ctx, memberID); err != nil {
		return err
	}
	referenced, err := s.store.MemberReferenced(ctx, memberID)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%w: member %s is referenced by expenses or payments", models.ErrConflict, memberID)
	}
	if err := s.store.DeleteMember(ctx, memberID); err != nil {
		return err
	}
	slog.InfoContext(ctx, "member deleted", "member_id", memberID)
	return nil
}

// ListPayments retrieves payments sent or received by a member.
func (s *MemberService) ListPayments(ctx context.Context, memberID string) ([]*models.Payment, error) {
	if _, err := s.store.GetMember(ctx, memberID); err != nil {
		return nil, err
	}
	return s.store.ListPaymentsByMember(ctx, memberID)
}
