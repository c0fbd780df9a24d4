package server

import (
	"fmt"
	"net/http"

	"github.com/famshare/famshare/internal/middleware"
	"github.com/famshare/famshare/internal/models"
)

type createPaymentRequest struct {
	// FromMemberID defaults to the caller.
	FromMemberID string `json:"from_member_id"`
	ToMemberID   string `json:"to_member_id"`
	Amount       string `json:"amount"`
}

func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	from := req.FromMemberID
	if from == "" {
		from = middleware.GetMemberID(r.Context())
	}
	sender, err := s.members.Get(r.Context(), from)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := requireFamily(r, sender.FamilyID); err != nil {
		writeError(w, err)
		return
	}

	payment, err := s.payments.Create(r.Context(), sender.ID, req.ToMemberID, amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentResponse(payment))
}

// getScopedPayment loads a payment and rejects callers from another family.
func (s *Server) getScopedPayment(w http.ResponseWriter, r *http.Request) *models.Payment {
	payment, err := s.payments.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return nil
	}
	if err := requireFamily(r, payment.FamilyID); err != nil {
		writeError(w, err)
		return nil
	}
	return payment
}

func (s *Server) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	payment := s.getScopedPayment(w, r)
	if payment == nil {
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponse(payment))
}

type setPaymentStatusRequest struct {
	Status string `json:"status"`
}

// handleSetPaymentStatus moves a payment through its lifecycle. Only the
// recipient may confirm: confirmation is the recipient's acknowledgment,
// and letting the sender do it would defeat the gating entirely.
func (s *Server) handleSetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	payment := s.getScopedPayment(w, r)
	if payment == nil {
		return
	}

	var req setPaymentStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	status := models.PaymentStatus(req.Status)
	if status == models.PaymentConfirmed && middleware.GetMemberID(r.Context()) != payment.ToMemberID {
		writeError(w, fmt.Errorf("%w: only the recipient may confirm a payment", errForbidden))
		return
	}

	updated, err := s.payments.SetStatus(r.Context(), payment.ID, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponse(updated))
}

func (s *Server) handleDeletePayment(w http.ResponseWriter, r *http.Request) {
	payment := s.getScopedPayment(w, r)
	if payment == nil {
		return
	}

	if err := s.payments.Delete(r.Context(), payment.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
