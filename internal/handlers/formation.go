package handlers

import (
	"net/http"

	"github.com/diewo77/go-tms/httpx"
	"github.com/diewo77/go-tms/internal/models"
	"github.com/diewo77/go-tms/internal/services"
	"gorm.io/gorm"
)

// FormationHandler serves the end-user catalog: browsing formations and
// self-service registration.
type FormationHandler struct {
	db          *gorm.DB
	enrollments *services.EnrollmentService
	actors      ActorResolver
}

func NewFormationHandler(db *gorm.DB, enrollments *services.EnrollmentService, actors ActorResolver) *FormationHandler {
	return &FormationHandler{db: db, enrollments: enrollments, actors: actors}
}

// List returns the formations of the caller's structure. Staff see the
// whole catalog; users without a structure see nothing.
func (h *FormationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.actors)
	if !ok {
		return
	}

	q := h.db.WithContext(r.Context()).Order("title")
	switch {
	case actor.IsStaff:
		// full catalog
	case actor.StructureID != nil:
		q = q.Where("structure_id = ?", *actor.StructureID)
	default:
		httpx.JSON(w, http.StatusOK, map[string]any{"items": []models.Formation{}, "total": 0})
		return
	}

	var formations []models.Formation
	if err := q.Find(&formations).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": formations, "total": len(formations)})
}

// View returns one formation.
func (h *FormationHandler) View(w http.ResponseWriter, r *http.Request) {
	if _, ok := actorFrom(w, r, h.actors); !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var formation models.Formation
	if err := h.db.WithContext(r.Context()).Preload("Structure").First(&formation, id).Error; err != nil {
		writeServiceError(w, r, services.ErrNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, formation)
}

// Participate registers the caller for the formation in the path.
func (h *FormationHandler) Participate(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.actors)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	enrollment, err := h.enrollments.Register(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, enrollment)
}

// CancelEnrollment withdraws the caller's pending enrollment.
func (h *FormationHandler) CancelEnrollment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.actors)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	enrollment, err := h.enrollments.Cancel(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, enrollment)
}

// MyEnrollments lists the caller's enrollments.
func (h *FormationHandler) MyEnrollments(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.actors)
	if !ok {
		return
	}
	enrollments, err := h.enrollments.ForUser(r.Context(), actor.ID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": enrollments, "total": len(enrollments)})
}
