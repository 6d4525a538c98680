package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"vetclinic/internal/auth"
	"vetclinic/internal/entities"
	apperrors "vetclinic/internal/errors"
	"vetclinic/internal/service"
)

type MobileServiceHandler struct {
	Service *service.MobileServiceService
}

func NewMobileServiceHandler(svc *service.MobileServiceService) *MobileServiceHandler {
	return &MobileServiceHandler{Service: svc}
}

func (h *MobileServiceHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerID(r.Context())
	if !ok {
		writeError(w, apperrors.Unauthorized("authentication required"))
		return
	}

	var req entities.CreateMobileServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validation("invalid request body"))
		return
	}

	resp, err := h.Service.CreateRequest(r.Context(), ownerID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *MobileServiceHandler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerID(r.Context())
	if !ok {
		writeError(w, apperrors.Unauthorized("authentication required"))
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, apperrors.Validation("invalid mobile service request id"))
		return
	}

	if err := h.Service.CancelRequest(r.Context(), ownerID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Mobile service request cancelled"})
}

func (h *MobileServiceHandler) ListMyRequests(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerID(r.Context())
	if !ok {
		writeError(w, apperrors.Unauthorized("authentication required"))
		return
	}

	reqs, err := h.Service.ListByOwner(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}
