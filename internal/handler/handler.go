package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/horsh321/teem-server/internal/auth"
	"github.com/horsh321/teem-server/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// statusFor maps a domain error kind to its HTTP status.
func statusFor(kind model.ErrorKind) int {
	switch kind {
	case model.KindValidation:
		return http.StatusBadRequest
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindConflict:
		return http.StatusConflict
	case model.KindUnauthorized:
		return http.StatusUnauthorized
	case model.KindForbidden:
		return http.StatusForbidden
	case model.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// respondError is the single place errors become HTTP responses. Domain
// errors carry their own message; anything else is logged and hidden.
func respondError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := statusFor(domainErr.Kind)
		logger.Debug().
			Str("code", domainErr.Code).
			Int("status", status).
			Msg(domainErr.Message)
		writeJSON(w, status, model.ErrorResponse{Error: domainErr.Message})
		return
	}

	logger.Error().Err(err).Int("status", http.StatusInternalServerError).Msg("handler error")
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: "internal server error"})
}

// decodeJSON decodes the request body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.ErrInvalidJSON
	}
	return nil
}

// parsePage reads page and limit from the query string. Missing or invalid
// values fall back to the defaults.
func parsePage(r *http.Request) model.Page {
	page := model.Page{Number: defaultPage, Limit: defaultLimit}

	if n, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && n > 0 {
		page.Number = n
	}
	if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n > 0 {
		page.Limit = min(n, maxLimit)
	}
	return page
}

// identity returns the caller set by the authentication middleware.
func identity(r *http.Request) (auth.Identity, error) {
	id, ok := auth.IdentityFrom(r.Context())
	if !ok {
		return auth.Identity{}, model.ErrUnauthenticated
	}
	return id, nil
}

func pathUUID(r *http.Request, name string, invalid error) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, invalid
	}
	return id, nil
}
