package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phrazzld/remind-api/internal/api/shared"
)

// getUsernameFromContext extracts the authenticated username from the
// request context. The username is placed there by the auth middleware.
func getUsernameFromContext(r *http.Request) (string, bool) {
	username, ok := r.Context().Value(shared.UsernameContextKey).(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}

// requireUsername extracts the authenticated username or writes a 401
// response. Returns false if an error response was written.
func requireUsername(w http.ResponseWriter, r *http.Request) (string, bool) {
	username, ok := getUsernameFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return username, true
}

// requirePathUUID extracts and parses the named path parameter as a UUID,
// or writes a 400 response. Returns false if an error response was written.
func requirePathUUID(w http.ResponseWriter, r *http.Request, paramName string) (uuid.UUID, bool) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing "+paramName+" path parameter")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid "+paramName+" format")
		return uuid.Nil, false
	}

	return id, true
}
