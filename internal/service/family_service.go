// Package service implements the application operations over the storage
// layer: family and member management, the expense and payment ledgers,
// and the balance views derived from them.
package service

import (
	"context"
	"log/slog"

	"github.com/famshare/famshare/internal/models"
	"github.com/famshare/famshare/internal/storage"
)

// FamilyService manages families and their membership listing.
type FamilyService struct {
	store storage.Store
}

// NewFamilyService creates a new FamilyService with the given storage backend.
func NewFamilyService(store storage.Store) *FamilyService {
	return &FamilyService{store: store}
}

// Create records a new family.
func (s *FamilyService) Create(ctx context.Context, name string) (*models.Family, error) {
	family := &models.Family{Name: name}
	if err := family.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.CreateFamily(ctx, family); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "family created", "family_id", family.ID, "name", family.Name)
	return family, nil
}

// Get retrieves a family by ID.
func (s *FamilyService) Get(ctx context.Context, familyID string) (*models.Family, error) {
	return s.store.GetFamily(ctx, familyID)
}

// ListMembers retrieves the family's current members. The family must
// exist; an unknown ID is a not-found error, not an empty list.
func (s *FamilyService) ListMembers(ctx context.Context, familyID string) ([]*models.Member, error) {
	if _, err := s.store.GetFamily(ctx, familyID); err != nil {
		return nil, err
	}
	return s.store.ListMembersByFamily(ctx, familyID)
}
