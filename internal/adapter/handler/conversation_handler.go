package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/tripnest/server/internal/core/services"
	"github.com/tripnest/server/pkg/apperrors"
)

type ConversationHandler struct {
	svc *services.ConversationService
}

func NewConversationHandler(svc *services.ConversationService) *ConversationHandler {
	return &ConversationHandler{svc: svc}
}

func (h *ConversationHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /conversations", h.StartConversation)
	mux.HandleFunc("GET /conversations", h.ListConversations)
	mux.HandleFunc("GET /conversations/{id}/messages", h.ListMessages)
}

type startConversationRequest struct {
	PartyA string `json:"party_a"`
	PartyB string `json:"party_b"`
}

// StartConversation returns the existing conversation for the pair when one
// already exists, so repeated calls are safe.
func (h *ConversationHandler) StartConversation(w http.ResponseWriter, r *http.Request) {
	var req startConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	partyA, err := uuid.Parse(req.PartyA)
	if err != nil {
		writeError(w, apperrors.InvalidArg("invalid party_a"))
		return
	}
	partyB, err := uuid.Parse(req.PartyB)
	if err != nil {
		writeError(w, apperrors.InvalidArg("invalid party_b"))
		return
	}

	conversation, err := h.svc.StartOrGetConversation(r.Context(), partyA, partyB)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, conversation)
}

func (h *ConversationHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	participantID, err := uuid.Parse(r.URL.Query().Get("participant_id"))
	if err != nil {
		writeError(w, apperrors.InvalidArg("invalid participant_id"))
		return
	}

	summaries, err := h.svc.ListConversations(r.Context(), participantID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"conversations": summaries})
}

func (h *ConversationHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	messages, err := h.svc.ListMessages(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}
