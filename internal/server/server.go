// Package server exposes the service layer as a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/famshare/famshare/internal/auth"
	"github.com/famshare/famshare/internal/middleware"
	"github.com/famshare/famshare/internal/models"
	"github.com/famshare/famshare/internal/service"
	"github.com/famshare/famshare/internal/storage"
)

// errForbidden marks access to a resource outside the caller's family.
var errForbidden = errors.New("forbidden")

// Server holds the services and wires them to routes.
type Server struct {
	store    storage.Store
	families *service.FamilyService
	members  *service.MemberService
	expenses *service.ExpenseService
	payments *service.PaymentService
	balances *service.BalanceService
	jwt      *auth.JWTManager
}

// New creates a Server over the given storage backend.
func New(store storage.Store, jwtManager *auth.JWTManager) *Server {
	return &Server{
		store:    store,
		families: service.NewFamilyService(store),
		members:  service.NewMemberService(store),
		expenses: service.NewExpenseService(store),
		payments: service.NewPaymentService(store),
		balances: service.NewBalanceService(store),
		jwt:      jwtManager,
	}
}

// Handler builds the route table.
//
// Bootstrapping endpoints are open: a person has no token before they have
// a member, so family creation, joining and token issuance cannot require
// one. Everything else sits behind bearer auth plus a family-scope check.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /auth/token", s.handleIssueToken)
	mux.HandleFunc("POST /families", s.handleCreateFamily)
	mux.HandleFunc("POST /members", s.handleJoinFamily)

	api := http.NewServeMux()
	api.HandleFunc("GET /families/{id}", s.handleGetFamily)
	api.HandleFunc("GET /families/{id}/members", s.handleListFamilyMembers)
	api.HandleFunc("GET /families/{id}/expenses", s.handleListFamilyExpenses)
	api.HandleFunc("GET /families/{id}/payments", s.handleListFamilyPayments)
	api.HandleFunc("GET /families/{id}/payments/pending", s.handlePendingPayments)
	api.HandleFunc("GET /families/{id}/balances", s.handleFamilyBalances)
	api.HandleFunc("GET /families/{id}/balances/pairwise", s.handlePairwiseBalances)

	api.HandleFunc("GET /members/{id}", s.handleGetMember)
	api.HandleFunc("GET /members/{id}/balance", s.handleMemberBalance)
	api.HandleFunc("GET /members/{id}/payments", s.handleMemberPayments)
	api.HandleFunc("PATCH /members/{id}/language", s.handleUpdateLanguage)
	api.HandleFunc("DELETE /members/{id}", s.handleDeleteMember)

	api.HandleFunc("POST /expenses", s.handleCreateExpense)
	api.HandleFunc("GET /expenses/{id}", s.handleGetExpense)
	api.HandleFunc("DELETE /expenses/{id}", s.handleDeleteExpense)

	api.HandleFunc("POST /payments", s.handleCreatePayment)
	api.HandleFunc("GET /payments/{id}", s.handleGetPayment)
	api.HandleFunc("PATCH /payments/{id}/status", s.handleSetPaymentStatus)
	api.HandleFunc("DELETE /payments/{id}", s.handleDeletePayment)

	mux.Handle("/", middleware.RequireAuth(s.jwt)(api))
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		writeError(w, fmt.Errorf("storage not ready: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// requireFamily rejects callers whose token is scoped to another family.
func requireFamily(r *http.Request, familyID string) error {
	if middleware.GetFamilyID(r.Context()) != familyID {
		return fmt.Errorf("%w: resource belongs to another family", errForbidden)
	}
	return nil
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body", models.ErrValidation)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrConflict), errors.Is(err, models.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, errForbidden):
		status = http.StatusForbidden
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingToken):
		status = http.StatusUnauthorized
	default:
		slog.Error("internal error", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
