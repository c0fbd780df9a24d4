package models

import (
	"fmt"
	"strings"
)

// Language is a member's preferred language for messages.
type Language string

const (
	LanguageEN Language = "EN"
	LanguageES Language = "ES"
	LanguageFR Language = "FR"
)

// Valid reports whether l is a known language.
func (l Language) Valid() bool {
	switch l {
	case LanguageEN, LanguageES, LanguageFR:
		return true
	}
	return false
}

// Member represents a person belonging to a family.
//
// Identity is delegated to the messaging platform: PlatformID is the
// external account the member authenticates with, so no password exists.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// Name is the display name of the member.
	Name string

	// PlatformID is the external-platform account ID used for
	// authentication. Unique across members.
	PlatformID string

	// FamilyID is the family this member belongs to.
	FamilyID string

	// Language is the member's preferred language. Defaults to EN.
	Language Language

	// CreatedAt is the Unix timestamp when the member joined.
	CreatedAt int64
}

// Validate checks the member fields before persistence.
func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: member name must not be empty", ErrValidation)
	}
	if strings.TrimSpace(m.PlatformID) == "" {
		return fmt.Errorf("%w: platform id must not be empty", ErrValidation)
	}
	if m.FamilyID == "" {
		return fmt.Errorf("%w: member must reference a family", ErrValidation)
	}
	if m.Language != "" && !m.Language.Valid() {
		return fmt.Errorf("%w: unknown language %q", ErrValidation, m.Language)
	}
	return nil
}
