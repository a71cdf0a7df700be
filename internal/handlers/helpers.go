// Package handlers contains the JSON request handlers for the TMS API.
// Handlers resolve the acting user explicitly and delegate all state
// transitions to the service layer.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/diewo77/go-tms/auth"
	"github.com/diewo77/go-tms/gate"
	"github.com/diewo77/go-tms/httpx"
	"github.com/diewo77/go-tms/i18n"
	"github.com/diewo77/go-tms/internal/models"
	"github.com/diewo77/go-tms/internal/services"
)

// ActorResolver resolves a session user id to the acting user record.
type ActorResolver = gate.Resolver[uint, *models.User]

// actorFrom loads the acting user for the request, or writes a 401.
func actorFrom(w http.ResponseWriter, r *http.Request, actors ActorResolver) (*models.User, bool) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, httpx.CodeUnauthorized, nil)
		return nil, false
	}
	actor, err := actors.Resolve(r.Context(), uid)
	if err != nil || actor == nil {
		httpx.JSONError(w, http.StatusUnauthorized, httpx.CodeUnauthorized, nil)
		return nil, false
	}
	return actor, true
}

// pathID parses the {id} path segment, or writes a 400.
func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id64, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id64 == 0 {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeInvalidID, nil)
		return 0, false
	}
	return uint(id64), true
}

// writeServiceError maps business errors to JSON error responses with a
// translated human-readable message. Unknown errors become a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	lang := i18n.FromContext(r.Context())
	code, status := httpx.CodeInternal, http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		code, status = "not_found", http.StatusNotFound
	case errors.Is(err, services.ErrAlreadyRegistered):
		code, status = "already_registered", http.StatusConflict
	case errors.Is(err, services.ErrNotPending):
		code, status = "no_longer_pending", http.StatusConflict
	case errors.Is(err, services.ErrPermissionDenied):
		code, status = httpx.CodeForbidden, http.StatusForbidden
	case errors.Is(err, services.ErrOutsideStructure):
		code, status = "outside_structure", http.StatusUnprocessableEntity
	}
	if code == httpx.CodeInternal {
		httpx.JSONError(w, status, code, nil)
		return
	}
	httpx.JSONError(w, status, code, map[string]any{"message": i18n.T(lang, code)})
}
