// Package balance computes net pairwise and per-member balances from a
// family's expense and payment ledgers.
//
// The computation is pure and query-only: it never mutates its inputs and
// is re-run from scratch on every call, so there is no derived state to
// keep consistent. Cost is O(expenses + payments + members²) per call.
package balance

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/famshare/famshare/internal/models"
)

// Entry is one side of a collapsed pairwise debt, shaped for display.
type Entry struct {
	// MemberID is the other member of the pair.
	MemberID string

	// Name is that member's display name.
	Name string

	// Amount is the debt amount. Always positive.
	Amount decimal.Decimal
}

// MemberBalance is one member's position within the family.
type MemberBalance struct {
	MemberID string
	Name     string

	// TotalOwed is the sum of what other members owe this member.
	TotalOwed decimal.Decimal

	// TotalDebt is the sum of what this member owes others.
	TotalDebt decimal.Decimal

	// NetBalance is TotalOwed − TotalDebt. Positive means the member is a
	// net creditor.
	NetBalance decimal.Decimal

	// Debts lists who this member owes, non-zero pairs only.
	Debts []Entry

	// Credits lists who owes this member, non-zero pairs only.
	Credits []Entry
}

// Pair is a collapsed directed debt between two members: From owes To
// Amount. Amount is always positive; settled pairs are omitted.
type Pair struct {
	FromMemberID string
	FromName     string
	ToMemberID   string
	ToName       string
	Amount       decimal.Decimal
}

// Sheet is the result of one balance computation over a family's ledgers.
type Sheet struct {
	// Members holds every family member's position, including members with
	// no activity (all-zero balance). Sorted by name, then ID.
	Members []MemberBalance

	// Pairs holds the non-zero collapsed pairwise debts, sorted by debtor
	// name then creditor name.
	Pairs []Pair
}

// Member returns the balance for one member of the sheet.
func (s *Sheet) Member(memberID string) (MemberBalance, bool) {
	for _, mb := range s.Members {
		if mb.MemberID == memberID {
			return mb, true
		}
	}
	return MemberBalance{}, false
}

// Compute derives the balance sheet for a family from its current members
// and complete expense and payment listings.
//
// Per expense, every split share owed by a member other than the payer adds
// to "member owes payer"; the payer's own share is their own consumption
// and transfers nothing. Per CONFIRM payment, the amount is subtracted from
// "sender owes recipient"; overshooting flips the sign of the pair, which
// correctly leaves the recipient owing the sender. PENDING and INACTIVE
// payments contribute nothing.
//
// Expense or payment references to members outside the given set are
// skipped: ledger validation guarantees membership at write time, so a
// stale reference here means the record predates current membership and
// must not invent a balance row.
func Compute(members []*models.Member, expenses []*models.Expense, payments []*models.Payment) (*Sheet, error) {
	if len(members) == 0 {
		return &Sheet{}, nil
	}

	names := make(map[string]string, len(members))
	for _, m := range members {
		if m.ID == "" {
			return nil, fmt.Errorf("%w: member without id", models.ErrValidation)
		}
		names[m.ID] = m.Name
	}

	// owes[debtor][creditor] accumulates raw directed debt.
	owes := make(map[string]map[string]decimal.Decimal, len(members))
	add := func(debtor, creditor string, amount decimal.Decimal) {
		row, ok := owes[debtor]
		if !ok {
			row = make(map[string]decimal.Decimal)
			owes[debtor] = row
		}
		row[creditor] = row[creditor].Add(amount)
	}

	for _, e := range expenses {
		if _, ok := names[e.PaidBy]; !ok {
			continue
		}
		for _, s := range e.Splits {
			if s.MemberID == e.PaidBy {
				continue
			}
			if _, ok := names[s.MemberID]; !ok {
				continue
			}
			add(s.MemberID, e.PaidBy, s.Amount)
		}
	}

	for _, p := range payments {
		if p.Status != models.PaymentConfirmed {
			continue
		}
		if _, ok := names[p.FromMemberID]; !ok {
			continue
		}
		if _, ok := names[p.ToMemberID]; !ok {
			continue
		}
		add(p.FromMemberID, p.ToMemberID, p.Amount.Neg())
	}

	// Deterministic member order: by name, then ID.
	ordered := make([]*models.Member, len(members))
	copy(ordered, members)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Name != ordered[j].Name {
			return ordered[i].Name < ordered[j].Name
		}
		return ordered[i].ID < ordered[j].ID
	})

	balances := make(map[string]*MemberBalance, len(ordered))
	sheet := &Sheet{Members: make([]MemberBalance, 0, len(ordered))}
	for _, m := range ordered {
		balances[m.ID] = &MemberBalance{
			MemberID:   m.ID,
			Name:       m.Name,
			TotalOwed:  decimal.Zero,
			TotalDebt:  decimal.Zero,
			NetBalance: decimal.Zero,
		}
	}

	// Collapse each unordered pair to a single signed value.
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			a, b := ordered[i].ID, ordered[j].ID
			net := owes[a][b].Sub(owes[b][a]) // positive: a owes b
			if net.IsZero() {
				continue
			}
			debtor, creditor := a, b
			amount := net
			if net.IsNegative() {
				debtor, creditor = b, a
				amount = net.Neg()
			}

			sheet.Pairs = append(sheet.Pairs, Pair{
				FromMemberID: debtor,
				FromName:     names[debtor],
				ToMemberID:   creditor,
				ToName:       names[creditor],
				Amount:       amount,
			})
			balances[debtor].TotalDebt = balances[debtor].TotalDebt.Add(amount)
			balances[debtor].Debts = append(balances[debtor].Debts, Entry{
				MemberID: creditor,
				Name:     names[creditor],
				Amount:   amount,
			})
			balances[creditor].TotalOwed = balances[creditor].TotalOwed.Add(amount)
			balances[creditor].Credits = append(balances[creditor].Credits, Entry{
				MemberID: debtor,
				Name:     names[debtor],
				Amount:   amount,
			})
		}
	}

	sort.Slice(sheet.Pairs, func(i, j int) bool {
		if sheet.Pairs[i].FromName != sheet.Pairs[j].FromName {
			return sheet.Pairs[i].FromName < sheet.Pairs[j].FromName
		}
		return sheet.Pairs[i].ToName < sheet.Pairs[j].ToName
	})

	for _, m := range ordered {
		mb := balances[m.ID]
		mb.NetBalance = mb.TotalOwed.Sub(mb.TotalDebt)
		sheet.Members = append(sheet.Members, *mb)
	}
	return sheet, nil
}
