package handlers

import (
	"net/http"

	"github.com/diewo77/go-tms/httpx"
	"github.com/diewo77/go-tms/internal/services"
	"gorm.io/gorm"
)

// DirectoryHandler lists users according to the caller's visibility scope:
// staff see everyone, managers their structure, department chiefs their
// department, employees themselves.
type DirectoryHandler struct {
	db     *gorm.DB
	actors ActorResolver
}

func NewDirectoryHandler(db *gorm.DB, actors ActorResolver) *DirectoryHandler {
	return &DirectoryHandler{db: db, actors: actors}
}

func (h *DirectoryHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.actors)
	if !ok {
		return
	}
	users, err := services.VisibleUsers(r.Context(), h.db, actor)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": users, "total": len(users)})
}
