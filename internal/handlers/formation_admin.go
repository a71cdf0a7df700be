package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/diewo77/go-tms/httpx"
	"github.com/diewo77/go-tms/internal/models"
	"github.com/diewo77/go-tms/internal/services"
	"github.com/diewo77/go-tms/validation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FormationAdminHandler is the staff CRUD surface for the catalog.
type FormationAdminHandler struct {
	db     *gorm.DB
	actors ActorResolver
}

func NewFormationAdminHandler(db *gorm.DB, actors ActorResolver) *FormationAdminHandler {
	return &FormationAdminHandler{db: db, actors: actors}
}

type formationRequest struct {
	Title          string `json:"title"`
	Ref            string `json:"ref"`
	Level          string `json:"level"`
	Description    string `json:"description"`
	Cost           int    `json:"cost"`
	Country        string `json:"country"`
	DurationDays   int    `json:"duration_days"`
	Prerequisites  string `json:"prerequisites"`
	Program        string `json:"program"`
	TargetAudience string `json:"target_audience"`
	Objective      string `json:"objective"`
	Category       string `json:"category"`
	StructureID    uint   `json:"structure_id"`
}

// newRef generates a short formation reference when the admin left it blank.
func newRef() string {
	return "F-" + strings.ToUpper(uuid.NewString()[:8])
}

func (h *FormationAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	var formations []models.Formation
	if err := h.db.WithContext(r.Context()).Preload("Structure").Order("title").Find(&formations).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": formations, "total": len(formations)})
}

func (h *FormationAdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.actors)
	if !ok {
		return
	}
	var req formationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeInvalidJSON, nil)
		return
	}
	v := make(validation.Violations)
	validation.Required("title", req.Title, v)
	validation.PositiveInt("cost", req.Cost, v)
	if req.StructureID == 0 {
		v["structure_id"] = "required"
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeValidationFailed, v)
		return
	}
	var structure models.Structure
	if err := h.db.WithContext(r.Context()).First(&structure, req.StructureID).Error; err != nil {
		writeServiceError(w, r, services.ErrNotFound)
		return
	}
	if req.Ref == "" {
		req.Ref = newRef()
	}

	formation := models.Formation{
		Title:          req.Title,
		Ref:            req.Ref,
		Level:          req.Level,
		Description:    req.Description,
		Cost:           req.Cost,
		Country:        req.Country,
		DurationDays:   req.DurationDays,
		Prerequisites:  req.Prerequisites,
		Program:        req.Program,
		TargetAudience: req.TargetAudience,
		Objective:      req.Objective,
		Category:       req.Category,
		StructureID:    structure.ID,
		CreatedByID:    &actor.ID,
		UpdatedBy:      actor.Username,
	}
	if err := h.db.WithContext(r.Context()).Create(&formation).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, formation)
}

func (h *FormationAdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.actors)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var formation models.Formation
	if err := h.db.WithContext(r.Context()).First(&formation, id).Error; err != nil {
		writeServiceError(w, r, services.ErrNotFound)
		return
	}
	var req formationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeInvalidJSON, nil)
		return
	}
	if req.Title != "" {
		formation.Title = req.Title
	}
	if req.Ref != "" {
		formation.Ref = req.Ref
	}
	if req.Level != "" {
		formation.Level = req.Level
	}
	if req.Description != "" {
		formation.Description = req.Description
	}
	if req.Cost > 0 {
		formation.Cost = req.Cost
	}
	if req.Country != "" {
		formation.Country = req.Country
	}
	if req.DurationDays > 0 {
		formation.DurationDays = req.DurationDays
	}
	if req.Category != "" {
		formation.Category = req.Category
	}
	if req.StructureID != 0 {
		var structure models.Structure
		if err := h.db.WithContext(r.Context()).First(&structure, req.StructureID).Error; err != nil {
			writeServiceError(w, r, services.ErrNotFound)
			return
		}
		formation.StructureID = structure.ID
	}
	formation.UpdatedBy = actor.Username
	if err := h.db.WithContext(r.Context()).Save(&formation).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, formation)
}

func (h *FormationAdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res := h.db.WithContext(r.Context()).Delete(&models.Formation{}, id)
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, nil)
		return
	}
	if res.RowsAffected == 0 {
		writeServiceError(w, r, services.ErrNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"status": "deleted"})
}
