package server

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/famshare/famshare/internal/middleware"
	"github.com/famshare/famshare/internal/models"
)

type splitRequest struct {
	MemberID string `json:"member_id"`
	Amount   string `json:"amount"`
}

type createExpenseRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	// PaidBy defaults to the caller.
	PaidBy string         `json:"paid_by"`
	Splits []splitRequest `json:"splits"`
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid amount %q", models.ErrValidation, raw)
	}
	return amount, nil
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	paidBy := req.PaidBy
	if paidBy == "" {
		paidBy = middleware.GetMemberID(r.Context())
	}
	payer, err := s.members.Get(r.Context(), paidBy)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := requireFamily(r, payer.FamilyID); err != nil {
		writeError(w, err)
		return
	}

	splits := make([]models.Split, 0, len(req.Splits))
	for _, sr := range req.Splits {
		splitAmount, err := parseAmount(sr.Amount)
		if err != nil {
			writeError(w, err)
			return
		}
		splits = append(splits, models.Split{MemberID: sr.MemberID, Amount: splitAmount})
	}

	expense, err := s.expenses.Create(r.Context(), payer.ID, req.Description, amount, splits)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

// getScopedExpense loads an expense and rejects callers from another family.
func (s *Server) getScopedExpense(w http.ResponseWriter, r *http.Request) *models.Expense {
	expense, err := s.expenses.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return nil
	}
	if err := requireFamily(r, expense.FamilyID); err != nil {
		writeError(w, err)
		return nil
	}
	return expense
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	expense := s.getScopedExpense(w, r)
	if expense == nil {
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponse(expense))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	expense := s.getScopedExpense(w, r)
	if expense == nil {
		return
	}

	if err := s.expenses.Delete(r.Context(), expense.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
