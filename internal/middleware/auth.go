package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/horsh321/teem-server/internal/auth"
	"github.com/horsh321/teem-server/internal/model"

	"github.com/rs/zerolog"
)

// TokenVerifier validates a bearer token and returns its identity.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// Authenticate verifies the bearer token and admits identities whose role is
// in roles. A missing or invalid token is answered with 401, a role outside
// roles with 403.
func Authenticate(verifier TokenVerifier, roles []model.Role, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				logger.Warn().Str("path", r.URL.Path).Err(err).Msg("missing bearer token")
				deny(w, err)
				return
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				logger.Warn().Str("path", r.URL.Path).Err(err).Msg("invalid bearer token")
				deny(w, err)
				return
			}

			if identity.Role == "" {
				deny(w, model.ErrNoRole)
				return
			}
			if !auth.Allowed(identity.Role, roles) {
				logger.Warn().
					Str("path", r.URL.Path).
					Str("user_id", identity.UserID.String()).
					Str("role", string(identity.Role)).
					Msg("role not allowed")
				deny(w, model.ErrRoleNotAllowed)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
		})
	}
}

func deny(w http.ResponseWriter, err error) {
	status := http.StatusUnauthorized
	message := model.ErrSessionExpired.Message

	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		message = domainErr.Message
		if domainErr.Kind == model.KindForbidden {
			status = http.StatusForbidden
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: message})
}
