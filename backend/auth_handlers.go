package backend

import (
	"net/http"

	cerrors "github.com/jrsteele09/billing-console/internal/errors"
	"github.com/jrsteele09/billing-console/users"
	"github.com/rs/zerolog/log"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string      `json:"access-token"`
	RefreshToken string      `json:"refresh-token"`
	User         *users.User `json:"user"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh-token"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	tenant := tenantFrom(r.Context())
	result, err := s.deps.Auth.Login(tenant.ID, req.Email, req.Password)
	switch {
	case err == nil:
	case cerrors.Is(err, cerrors.ErrMissingArgument):
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	case cerrors.Is(err, cerrors.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	case cerrors.Is(err, cerrors.ErrUserInactive):
		writeError(w, http.StatusForbidden, "Account deactivated")
		return
	case cerrors.Is(err, cerrors.ErrTenantNotFound):
		writeError(w, http.StatusNotFound, "Unknown assembly")
		return
	default:
		writeDomainError(w, err)
		return
	}

	log.Info().Str("tenant", tenant.ID).Str("user", result.User.ID).Msg("login")
	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User:         result.User,
	})
}

// logout revokes the refresh token. A bearer token, when sent and still valid, is revoked too.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	tenant := tenantFrom(r.Context())
	_, claims, _ := s.deps.Auth.Authenticate(tenant.ID, bearerToken(r))

	err := s.deps.Auth.Logout(req.RefreshToken, claims)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case cerrors.Is(err, cerrors.ErrMissingArgument):
		writeError(w, http.StatusBadRequest, "Refresh token is required")
	case cerrors.Is(err, cerrors.ErrInvalidRefreshToken):
		writeError(w, http.StatusUnauthorized, "Invalid refresh token")
	default:
		writeDomainError(w, err)
	}
}
