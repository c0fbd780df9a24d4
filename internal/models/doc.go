// Package models defines the core domain models for FamShare.
//
// # Models
//
//   - Family: a group of members sharing expenses
//   - Member: a person belonging to exactly one family
//   - Expense: an amount paid by one member and split across members
//   - Payment: a directed money transfer between two members with a
//     confirmation lifecycle
//
// # Design Principles
//
//  1. **ID references only**: relationships are ID strings, never pointers,
//     so no cyclic object graph exists. Ownership checks happen in the
//     service layer against the family's current member set.
//  2. **Fixed-point money**: all amounts are decimal.Decimal. Binary floats
//     drift under repeated aggregation and are never used.
//  3. **Validation at the write path**: every model validates itself before
//     persistence; balance computation assumes validated input and only
//     re-checks membership.
package models
