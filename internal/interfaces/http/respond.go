// Package http contains the REST handlers. Handlers decode request bodies,
// pull the verified actor and tenant from the request context, call into the
// domain layer and render results or classified errors as JSON.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"forge/internal/shared/apperror"
	"forge/internal/shared/middleware"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	apperror.WriteJSON(w, err)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperror.Validation("invalid request body")
	}
	return nil
}

// pathID parses the named path segment as a UUID.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	raw := r.PathValue(name)
	if raw == "" {
		return uuid.Nil, apperror.Validation("%s is required", name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.Validation("'%s' is not a valid UUID", raw)
	}
	return id, nil
}

func invalidUUID(raw string) error {
	return apperror.Validation("'%s' is not a valid UUID", raw)
}

// identity extracts the verified actor and tenant ids injected by the auth
// middleware. A missing identity means the route was wired without it.
func identity(r *http.Request) (actorID, tenantID uuid.UUID, ok bool) {
	actorID, ok = middleware.ActorFromContext(r.Context())
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	tenantID, ok = middleware.TenantFromContext(r.Context())
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return actorID, tenantID, true
}

func unauthorized(w http.ResponseWriter) {
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}
