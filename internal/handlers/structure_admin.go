package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/diewo77/go-tms/httpx"
	"github.com/diewo77/go-tms/internal/models"
	"github.com/diewo77/go-tms/internal/services"
	"github.com/diewo77/go-tms/validation"
	"gorm.io/gorm"
)

// StructureAdminHandler is the staff CRUD surface for structures and
// departments.
type StructureAdminHandler struct {
	db     *gorm.DB
	actors ActorResolver
}

func NewStructureAdminHandler(db *gorm.DB, actors ActorResolver) *StructureAdminHandler {
	return &StructureAdminHandler{db: db, actors: actors}
}

type structureRequest struct {
	Name  string `json:"name"`
	Code  string `json:"code"`
	Level string `json:"level"`
}

func (h *StructureAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	var structures []models.Structure
	if err := h.db.WithContext(r.Context()).Order("name").Find(&structures).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": structures, "total": len(structures)})
}

func (h *StructureAdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.actors)
	if !ok {
		return
	}
	var req structureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeInvalidJSON, nil)
		return
	}
	v := make(validation.Violations)
	validation.Required("name", req.Name, v)
	validation.Required("code", req.Code, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeValidationFailed, v)
		return
	}
	structure := models.Structure{
		Name:      req.Name,
		Code:      strings.ToUpper(strings.TrimSpace(req.Code)),
		Level:     req.Level,
		CreatedBy: actor.Username,
	}
	if err := h.db.WithContext(r.Context()).Create(&structure).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httpx.JSONError(w, http.StatusConflict, "code_already_exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, structure)
}

func (h *StructureAdminHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var structure models.Structure
	if err := h.db.WithContext(r.Context()).Preload("Departments").First(&structure, id).Error; err != nil {
		writeServiceError(w, r, services.ErrNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, structure)
}

func (h *StructureAdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.actors)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var structure models.Structure
	if err := h.db.WithContext(r.Context()).First(&structure, id).Error; err != nil {
		writeServiceError(w, r, services.ErrNotFound)
		return
	}
	var req structureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeInvalidJSON, nil)
		return
	}
	if req.Name != "" {
		structure.Name = req.Name
	}
	if req.Code != "" {
		structure.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	}
	if req.Level != "" {
		structure.Level = req.Level
	}
	structure.UpdatedBy = actor.Username
	if err := h.db.WithContext(r.Context()).Save(&structure).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httpx.JSONError(w, http.StatusConflict, "code_already_exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, structure)
}

// Delete removes a structure. Departments and formations cascade away;
// user references are nulled out by the schema constraints.
func (h *StructureAdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res := h.db.WithContext(r.Context()).Delete(&models.Structure{}, id)
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

type departmentRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	StructureID uint   `json:"structure_id"`
}

func (h *StructureAdminHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	var departments []models.Department
	if err := h.db.WithContext(r.Context()).Preload("Structure").Order("name").Find(&departments).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": departments, "total": len(departments)})
}

func (h *StructureAdminHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.actors)
	if !ok {
		return
	}
	var req departmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeInvalidJSON, nil)
		return
	}
	v := make(validation.Violations)
	validation.Required("name", req.Name, v)
	validation.Required("code", req.Code, v)
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
	department := models.Department{
		Name:        req.Name,
		Code:        strings.ToUpper(strings.TrimSpace(req.Code)),
		StructureID: structure.ID,
		CreatedBy:   actor.Username,
	}
	if err := h.db.WithContext(r.Context()).Create(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httpx.JSONError(w, http.StatusConflict, "code_already_exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, department)
}

func (h *StructureAdminHandler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res := h.db.WithContext(r.Context()).Delete(&models.Department{}, id)
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
