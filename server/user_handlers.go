package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/dliriotech/tms-auth-service/auth"
	autherrors "github.com/dliriotech/tms-auth-service/internal/errors"
)

// RegisterHandler creates a new credential record.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, r, autherrors.Validation("malformed request body"))
			return
		}

		log.Info().Str("user", req.Username).Msg("registration requested")
		user, err := s.auth.Register(r.Context(), req)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, user)
	}
}
