package handlers

import (
	"net/http"

	"github.com/diewo77/go-tms/httpx"
	"github.com/diewo77/go-tms/internal/services"
	"gorm.io/gorm"
)

// ReviewHandler is the back-office surface for reviewers: pending queues
// plus the validate/refuse actions on accounts and enrollments.
type ReviewHandler struct {
	db          *gorm.DB
	accounts    *services.AccountService
	enrollments *services.EnrollmentService
	actors      ActorResolver
}

func NewReviewHandler(db *gorm.DB, accounts *services.AccountService, enrollments *services.EnrollmentService, actors ActorResolver) *ReviewHandler {
	return &ReviewHandler{db: db, accounts: accounts, enrollments: enrollments, actors: actors}
}

// PendingAccounts lists the accounts the caller may review.
func (h *ReviewHandler) PendingAccounts(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.actors)
	if !ok {
		return
	}
	users, err := services.PendingAccounts(r.Context(), h.db, actor)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": users, "total": len(users)})
}

// ApproveAccount validates a pending account.
func (h *ReviewHandler) ApproveAccount(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.actors)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	account, err := h.accounts.Approve(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, account)
}

// RejectAccount refuses a pending account.
func (h *ReviewHandler) RejectAccount(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.actors)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	account, err := h.accounts.Reject(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, account)
}

// PendingEnrollments lists the enrollments the caller may review.
func (h *ReviewHandler) PendingEnrollments(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.actors)
	if !ok {
		return
	}
	enrollments, err := services.PendingEnrollments(r.Context(), h.db, actor)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": enrollments, "total": len(enrollments)})
}

// ValidateEnrollment validates a pending enrollment.
func (h *ReviewHandler) ValidateEnrollment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.actors)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	enrollment, err := h.enrollments.Validate(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, enrollment)
}

// RejectEnrollment refuses a pending enrollment.
func (h *ReviewHandler) RejectEnrollment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.actors)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	enrollment, err := h.enrollments.Reject(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, enrollment)
}
