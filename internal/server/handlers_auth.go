package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/famshare/famshare/internal/auth"
	"github.com/famshare/famshare/internal/models"
)

type tokenRequest struct {
	PlatformID string `json:"platform_id"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
}

// handleIssueToken exchanges a registered platform ID for a bearer token.
// Identity verification happened on the platform side already; an unknown
// ID is an authentication failure, not a lookup miss.
func (s *Server) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	member, err := s.members.GetByPlatformID(r.Context(), req.PlatformID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, auth.ErrInvalidToken)
			return
		}
		writeError(w, err)
		return
	}

	token, err := s.jwt.Generate(member)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   time.Now().Add(s.jwt.TTL()).Unix(),
	})
}
