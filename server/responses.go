package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	autherrors "github.com/dliriotech/tms-auth-service/internal/errors"
)

const contentTypeJSON = "application/json; charset=utf-8"

// ErrorResponse is the wire shape of every failed request.
type ErrorResponse struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response body")
	}
}

// writeError maps a domain error to its stable code and status. Anything
// unclassified collapses to SYS-001 with a generic message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	domainErr := autherrors.FromErr(err)
	if domainErr.Kind == autherrors.KindSystem {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	writeJSON(w, domainErr.Status, ErrorResponse{
		Code:      domainErr.Code,
		Message:   domainErr.Message,
		Path:      r.URL.Path,
		Timestamp: time.Now(),
	})
}

func (s *Server) writeSystemError(w http.ResponseWriter, r *http.Request) {
	sysErr := autherrors.System("internal server error")
	writeJSON(w, sysErr.Status, ErrorResponse{
		Code:      sysErr.Code,
		Message:   sysErr.Message,
		Path:      r.URL.Path,
		Timestamp: time.Now(),
	})
}
