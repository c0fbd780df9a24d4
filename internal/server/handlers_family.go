package server

import "net/http"

type createFamilyRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateFamily(w http.ResponseWriter, r *http.Request) {
	var req createFamilyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	family, err := s.families.Create(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toFamilyResponse(family))
}

func (s *Server) handleGetFamily(w http.ResponseWriter, r *http.Request) {
	familyID := r.PathValue("id")
	if err := requireFamily(r, familyID); err != nil {
		writeError(w, err)
		return
	}

	family, err := s.families.Get(r.Context(), familyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFamilyResponse(family))
}

func (s *Server) handleListFamilyMembers(w http.ResponseWriter, r *http.Request) {
	familyID := r.PathValue("id")
	if err := requireFamily(r, familyID); err != nil {
		writeError(w, err)
		return
	}

	members, err := s.families.ListMembers(r.Context(), familyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponses(members))
}

func (s *Server) handleListFamilyExpenses(w http.ResponseWriter, r *http.Request) {
	familyID := r.PathValue("id")
	if err := requireFamily(r, familyID); err != nil {
		writeError(w, err)
		return
	}

	expenses, err := s.expenses.ListByFamily(r.Context(), familyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponses(expenses))
}

func (s *Server) handleListFamilyPayments(w http.ResponseWriter, r *http.Request) {
	familyID := r.PathValue("id")
	if err := requireFamily(r, familyID); err != nil {
		writeError(w, err)
		return
	}

	payments, err := s.payments.ListByFamily(r.Context(), familyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponses(payments))
}

func (s *Server) handlePendingPayments(w http.ResponseWriter, r *http.Request) {
	familyID := r.PathValue("id")
	if err := requireFamily(r, familyID); err != nil {
		writeError(w, err)
		return
	}

	pending, err := s.balances.PendingPayments(r.Context(), familyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponses(pending))
}

func (s *Server) handleFamilyBalances(w http.ResponseWriter, r *http.Request) {
	familyID := r.PathValue("id")
	if err := requireFamily(r, familyID); err != nil {
		writeError(w, err)
		return
	}

	balances, err := s.balances.FamilyBalances(r.Context(), familyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMemberBalanceResponses(balances))
}

func (s *Server) handlePairwiseBalances(w http.ResponseWriter, r *http.Request) {
	familyID := r.PathValue("id")
	if err := requireFamily(r, familyID); err != nil {
		writeError(w, err)
		return
	}

	pairs, err := s.balances.PairwiseBalances(r.Context(), familyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPairResponses(pairs))
}
