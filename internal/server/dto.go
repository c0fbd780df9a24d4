package server

import (
	"github.com/shopspring/decimal"

	"github.com/famshare/famshare/internal/balance"
	"github.com/famshare/famshare/internal/models"
)

// Response shapes. Amounts serialize as quoted decimal strings, the
// default shopspring encoding, so clients never touch binary floats.

type familyResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

func toFamilyResponse(f *models.Family) familyResponse {
	return familyResponse{ID: f.ID, Name: f.Name, CreatedAt: f.CreatedAt}
}

type memberResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PlatformID string `json:"platform_id"`
	FamilyID   string `json:"family_id"`
	Language   string `json:"language"`
	CreatedAt  int64  `json:"created_at"`
}

func toMemberResponse(m *models.Member) memberResponse {
	return memberResponse{
		ID:         m.ID,
		Name:       m.Name,
		PlatformID: m.PlatformID,
		FamilyID:   m.FamilyID,
		Language:   string(m.Language),
		CreatedAt:  m.CreatedAt,
	}
}

func toMemberResponses(members []*models.Member) []memberResponse {
	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberResponse(m))
	}
	return out
}

type splitResponse struct {
	MemberID string          `json:"member_id"`
	Amount   decimal.Decimal `json:"amount"`
}

type expenseResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	PaidBy      string          `json:"paid_by"`
	FamilyID    string          `json:"family_id"`
	Splits      []splitResponse `json:"splits"`
	CreatedAt   int64           `json:"created_at"`
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	splits := make([]splitResponse, 0, len(e.Splits))
	for _, s := range e.Splits {
		splits = append(splits, splitResponse{MemberID: s.MemberID, Amount: s.Amount})
	}
	return expenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		PaidBy:      e.PaidBy,
		FamilyID:    e.FamilyID,
		Splits:      splits,
		CreatedAt:   e.CreatedAt,
	}
}

func toExpenseResponses(expenses []*models.Expense) []expenseResponse {
	out := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	return out
}

type paymentResponse struct {
	ID           string          `json:"id"`
	FromMemberID string          `json:"from_member_id"`
	ToMemberID   string          `json:"to_member_id"`
	Amount       decimal.Decimal `json:"amount"`
	FamilyID     string          `json:"family_id"`
	Status       string          `json:"status"`
	CreatedAt    int64           `json:"created_at"`
}

func toPaymentResponse(p *models.Payment) paymentResponse {
	return paymentResponse{
		ID:           p.ID,
		FromMemberID: p.FromMemberID,
		ToMemberID:   p.ToMemberID,
		Amount:       p.Amount,
		FamilyID:     p.FamilyID,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
	}
}

func toPaymentResponses(payments []*models.Payment) []paymentResponse {
	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	return out
}

type balanceEntryResponse struct {
	MemberID string          `json:"member_id"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
}

type memberBalanceResponse struct {
	MemberID   string                 `json:"member_id"`
	Name       string                 `json:"name"`
	TotalOwed  decimal.Decimal        `json:"total_owed"`
	TotalDebt  decimal.Decimal        `json:"total_debt"`
	NetBalance decimal.Decimal        `json:"net_balance"`
	Debts      []balanceEntryResponse `json:"debts"`
	Credits    []balanceEntryResponse `json:"credits"`
}

func toMemberBalanceResponse(mb balance.MemberBalance) memberBalanceResponse {
	toEntries := func(entries []balance.Entry) []balanceEntryResponse {
		out := make([]balanceEntryResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, balanceEntryResponse{MemberID: e.MemberID, Name: e.Name, Amount: e.Amount})
		}
		return out
	}
	return memberBalanceResponse{
		MemberID:   mb.MemberID,
		Name:       mb.Name,
		TotalOwed:  mb.TotalOwed,
		TotalDebt:  mb.TotalDebt,
		NetBalance: mb.NetBalance,
		Debts:      toEntries(mb.Debts),
		Credits:    toEntries(mb.Credits),
	}
}

func toMemberBalanceResponses(balances []balance.MemberBalance) []memberBalanceResponse {
	out := make([]memberBalanceResponse, 0, len(balances))
	for _, mb := range balances {
		out = append(out, toMemberBalanceResponse(mb))
	}
	return out
}

type pairResponse struct {
	FromMemberID string          `json:"from_member_id"`
	FromName     string          `json:"from_name"`
	ToMemberID   string          `json:"to_member_id"`
	ToName       string          `json:"to_name"`
	Amount       decimal.Decimal `json:"amount"`
}

func toPairResponses(pairs []balance.Pair) []pairResponse {
	out := make([]pairResponse, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, pairResponse{
			FromMemberID: p.FromMemberID,
			FromName:     p.FromName,
			ToMemberID:   p.ToMemberID,
			ToName:       p.ToName,
			Amount:       p.Amount,
		})
	}
	return out
}
