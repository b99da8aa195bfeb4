package server

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	autherrors "github.com/dliriotech/tms-auth-service/internal/errors"
)

// GenerateTokenHandler exchanges a single-use session token for a token pair
// scoped to the chosen company.
func (s *Server) GenerateTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := intQueryParam(r, "userId")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		companyID, err := intQueryParam(r, "empresaId")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		sessionToken := r.URL.Query().Get("sessionToken")
		if sessionToken == "" {
			s.writeError(w, r, autherrors.Validation("sessionToken is required"))
			return
		}

		log.Info().Int("user_id", userID).Int("empresa_id", companyID).Msg("token generation requested")
		pair, err := s.auth.GenerateToken(r.Context(), userID, companyID, sessionToken)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, pair)
	}
}

// RefreshTokenHandler mints a fresh pair from a bearer refresh token,
// re-checking membership of the requested company.
func (s *Server) RefreshTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refreshToken, ok := bearerToken(r)
		if !ok {
			s.writeError(w, r, autherrors.Validation("Authorization header with bearer token is required"))
			return
		}
		companyID, err := intQueryParam(r, "empresaId")
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		log.Info().Int("empresa_id", companyID).Msg("token refresh requested")
		pair, err := s.auth.RefreshToken(r.Context(), refreshToken, companyID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, pair)
	}
}

func intQueryParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, autherrors.Validation(name + " is required")
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, autherrors.Validation(name + " must be an integer")
	}
	return value, nil
}
