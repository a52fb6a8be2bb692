package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/tripnest/server/internal/core/domain"
	"github.com/tripnest/server/internal/core/services"
	"github.com/tripnest/server/pkg/apperrors"
)

type BookingHandler struct {
	svc *services.BookingService
}

func NewBookingHandler(svc *services.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /bookings", h.CreateBooking)
	mux.HandleFunc("GET /bookings/{id}", h.GetBooking)
	mux.HandleFunc("POST /bookings/{id}/approve", h.ApproveBooking)
	mux.HandleFunc("POST /bookings/{id}/reject", h.RejectBooking)
	mux.HandleFunc("POST /bookings/{id}/payment", h.RecordPayment)
	mux.HandleFunc("DELETE /bookings/{id}", h.CancelBooking)
	mux.HandleFunc("GET /destinations/trending", h.TrendingDestinations)
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req services.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	booking, err := h.svc.CreateBooking(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.svc.GetBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) ApproveBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.svc.ApproveBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) RejectBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.svc.RejectBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.svc.CancelBooking(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "booking cancelled"})
}

type recordPaymentRequest struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

func (h *BookingHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	booking, err := h.svc.RecordPayment(r.Context(), id, req.OrderID, domain.PaymentStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) TrendingDestinations(w http.ResponseWriter, r *http.Request) {
	destinations, err := h.svc.TrendingDestinations(r.Context(), intQuery(r, "limit", 10))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"destinations": destinations})
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, apperrors.InvalidArg("invalid id")
	}
	return id, nil
}
