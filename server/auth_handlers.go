package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dliriotech/tms-auth-service/auth"
	autherrors "github.com/dliriotech/tms-auth-service/internal/errors"
)

// LoginHandler verifies credentials and returns either a token pair, a
// session token with the company list, or a profile-only response.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, r, autherrors.Validation("malformed request body"))
			return
		}
		if err := req.Validate(); err != nil {
			s.writeError(w, r, err)
			return
		}

		log.Info().Str("user", req.Username).Msg("login requested")
		result, err := s.auth.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// ValidateTokenHandler is the gateway-facing signature and expiry check.
func (s *Server) ValidateTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenStr, ok := bearerToken(r)
		if !ok {
			s.writeError(w, r, autherrors.Validation("Authorization header with bearer token is required"))
			return
		}
		writeJSON(w, http.StatusOK, s.auth.ValidateToken(tokenStr))
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	tokenStr := strings.TrimPrefix(header, "Bearer ")
	if tokenStr == "" || tokenStr == header {
		return "", false
	}
	return tokenStr, true
}
