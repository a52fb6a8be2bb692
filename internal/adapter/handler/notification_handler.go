package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/tripnest/server/internal/core/services"
	"github.com/tripnest/server/pkg/apperrors"
)

type NotificationHandler struct {
	svc *services.NotificationService
}

func NewNotificationHandler(svc *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /notifications/unread", h.ListUnread)
	mux.HandleFunc("GET /notifications/unread/count", h.CountUnread)
	mux.HandleFunc("POST /notifications/{id}/read", h.MarkRead)
	mux.HandleFunc("POST /notifications/read-all", h.MarkAllRead)
}

func targetID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.URL.Query().Get("target_id"))
	if err != nil {
		return uuid.Nil, apperrors.InvalidArg("invalid target_id")
	}
	return id, nil
}

func (h *NotificationHandler) ListUnread(w http.ResponseWriter, r *http.Request) {
	target, err := targetID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	notifications, err := h.svc.ListUnread(r.Context(), target)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"notifications": notifications})
}

func (h *NotificationHandler) CountUnread(w http.ResponseWriter, r *http.Request) {
	target, err := targetID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	count, err := h.svc.CountUnread(r.Context(), target)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.svc.MarkRead(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "notification marked as read"})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	target, err := targetID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.svc.MarkAllRead(r.Context(), target); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "all notifications marked as read"})
}
