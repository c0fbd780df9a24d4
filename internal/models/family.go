package models

import (
	"fmt"
	"strings"
)

// Family represents a group of people sharing expenses.
// A family owns its members and, through them, its expenses and payments.
type Family struct {
	// ID is the unique identifier for the family (UUID format).
	ID string

	// Name is the display name of the family.
	Name string

	// CreatedAt is the Unix timestamp when the family was created.
	CreatedAt int64
}

// Validate checks the family fields before persistence.
func (f *Family) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: family name must not be empty", ErrValidation)
	}
	return nil
}
