package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/tripnest/server/internal/core/domain"
	"github.com/tripnest/server/internal/core/services"
	"github.com/tripnest/server/pkg/apperrors"
)

type PackageHandler struct {
	svc *services.PackageService
}

func NewPackageHandler(svc *services.PackageService) *PackageHandler {
	return &PackageHandler{svc: svc}
}

func (h *PackageHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /packages", h.CreatePackage)
	mux.HandleFunc("GET /packages/upcoming", h.UpcomingPackages)
	mux.HandleFunc("GET /packages/{id}", h.GetPackage)
	mux.HandleFunc("GET /packages/{id}/slots", h.AvailableSlots)
	mux.HandleFunc("POST /packages/{id}/approve", h.ApprovePackage)
	mux.HandleFunc("POST /packages/{id}/reject", h.RejectPackage)
	mux.HandleFunc("POST /packages/{id}/activate", h.ActivatePackage)
	mux.HandleFunc("POST /packages/{id}/deactivate", h.DeactivatePackage)
	mux.HandleFunc("DELETE /packages/{id}", h.DeletePackage)
	mux.HandleFunc("GET /vendors/{id}/packages", h.ListVendorPackages)
}

func (h *PackageHandler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var req services.CreatePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	pkg, err := h.svc.CreatePackage(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, pkg)
}

func (h *PackageHandler) GetPackage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	pkg, err := h.svc.GetPackage(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pkg)
}

func (h *PackageHandler) AvailableSlots(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	slots, err := h.svc.AvailableSlots(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"available_slots": slots})
}

func (h *PackageHandler) ApprovePackage(w http.ResponseWriter, r *http.Request) {
	h.moderation(w, r, h.svc.ApprovePackage, "package approved")
}

func (h *PackageHandler) RejectPackage(w http.ResponseWriter, r *http.Request) {
	h.moderation(w, r, h.svc.RejectPackage, "package rejected")
}

func (h *PackageHandler) ActivatePackage(w http.ResponseWriter, r *http.Request) {
	h.moderation(w, r, h.svc.ActivatePackage, "package activated")
}

func (h *PackageHandler) DeactivatePackage(w http.ResponseWriter, r *http.Request) {
	h.moderation(w, r, h.svc.DeactivatePackage, "package deactivated")
}

func (h *PackageHandler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	h.moderation(w, r, h.svc.DeletePackage, "package deleted")
}

func (h *PackageHandler) moderation(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id uuid.UUID) error, message string) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := op(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (h *PackageHandler) ListVendorPackages(w http.ResponseWriter, r *http.Request) {
	vendorID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	status := domain.PackageStatus(r.URL.Query().Get("status"))
	if status == "" {
		writeError(w, apperrors.InvalidArg("status query parameter is required"))
		return
	}

	packages, err := h.svc.ListByVendorStatus(r.Context(), vendorID, status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"packages": packages})
}

func (h *PackageHandler) UpcomingPackages(w http.ResponseWriter, r *http.Request) {
	var vendorID *uuid.UUID
	if raw := r.URL.Query().Get("vendor_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, apperrors.InvalidArg("invalid vendor_id"))
			return
		}
		vendorID = &id
	}

	packages, err := h.svc.UpcomingPackages(r.Context(), vendorID, intQuery(r, "page", 1), intQuery(r, "limit", 20))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"packages": packages})
}
