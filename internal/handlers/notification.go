package handlers

import (
	"net/http"

	"github.com/diewo77/go-tms/httpx"
	"github.com/diewo77/go-tms/internal/services"
)

// NotificationHandler serves the per-user notification sink.
type NotificationHandler struct {
	notifications *services.NotificationService
	actors        ActorResolver
}

func NewNotificationHandler(notifications *services.NotificationService, actors ActorResolver) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, actors: actors}
}

// Unread returns the caller's unread notifications for badge display.
func (h *NotificationHandler) Unread(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.actors)
	if !ok {
		return
	}
	notifications, err := h.notifications.Unread(r.Context(), actor.ID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": notifications, "total": len(notifications)})
}

// MarkRead flips one notification owned by the caller to read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.actors)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.notifications.MarkRead(r.Context(), actor.ID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"status": "read"})
}

// MarkAllRead flips all of the caller's unread notifications.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.actors)
	if !ok {
		return
	}
	if err := h.notifications.MarkAllRead(r.Context(), actor.ID); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"status": "all_read"})
}
