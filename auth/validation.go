package auth

import (
	"strings"

	autherrors "github.com/dliriotech/tms-auth-service/internal/errors"
)

const minPasswordLength = 6

// LoginRequest is the login request body.
type LoginRequest struct {
	Username string `json:"userName"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return autherrors.Validation("userName is required")
	}
	if r.Password == "" {
		return autherrors.Validation("password is required")
	}
	return nil
}

// RegisterRequest is the registration request body.
type RegisterRequest struct {
	Username string `json:"userName"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return autherrors.Validation("userName is required")
	}
	if len(r.Password) < minPasswordLength {
		return autherrors.Validation("password must be at least 6 characters long")
	}
	if strings.TrimSpace(r.Role) == "" {
		return autherrors.Validation("role is required")
	}
	return nil
}
