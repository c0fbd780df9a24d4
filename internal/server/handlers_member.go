package server

import (
	"net/http"

	"github.com/famshare/famshare/internal/models"
)

type joinFamilyRequest struct {
	FamilyID   string `json:"family_id"`
	Name       string `json:"name"`
	PlatformID string `json:"platform_id"`
	Language   string `json:"language"`
}

func (s *Server) handleJoinFamily(w http.ResponseWriter, r *http.Request) {
	var req joinFamilyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	member, err := s.members.Join(r.Context(), req.FamilyID, req.Name, req.PlatformID, models.Language(req.Language))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMemberResponse(member))
}

// getScopedMember loads a member and rejects callers from another family.
func (s *Server) getScopedMember(w http.ResponseWriter, r *http.Request) *models.Member {
	member, err := s.members.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return nil
	}
	if err := requireFamily(r, member.FamilyID); err != nil {
		writeError(w, err)
		return nil
	}
	return member
}

func (s *Server) handleGetMember(w http.ResponseWriter, r *http.Request) {
	member := s.getScopedMember(w, r)
	if member == nil {
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponse(member))
}

func (s *Server) handleMemberBalance(w http.ResponseWriter, r *http.Request) {
	member := s.getScopedMember(w, r)
	if member == nil {
		return
	}

	mb, err := s.balances.MemberBalance(r.Context(), member.FamilyID, member.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMemberBalanceResponse(*mb))
}

func (s *Server) handleMemberPayments(w http.ResponseWriter, r *http.Request) {
	member := s.getScopedMember(w, r)
	if member == nil {
		return
	}

	payments, err := s.members.ListPayments(r.Context(), member.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponses(payments))
}

type updateLanguageRequest struct {
	Language string `json:"language"`
}

func (s *Server) handleUpdateLanguage(w http.ResponseWriter, r *http.Request) {
	member := s.getScopedMember(w, r)
	if member == nil {
		return
	}

	var req updateLanguageRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := s.members.UpdateLanguage(r.Context(), member.ID, models.Language(req.Language)); err != nil {
		writeError(w, err)
		return
	}
	member.Language = models.Language(req.Language)
	writeJSON(w, http.StatusOK, toMemberResponse(member))
}

// handleDeleteMember removes a member. Members referenced by expenses or
// payments are kept; deleting them would rewrite settled history.
func (s *Server) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	member := s.getScopedMember(w, r)
	if member == nil {
		return
	}

	if err := s.members.Delete(r.Context(), member.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
