package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"vetclinic/internal/entities"
	apperrors "vetclinic/internal/errors"
	"vetclinic/internal/service"
)

// AdminHandler serves the back-office screens: appointment overview,
// pharmacy inventory and the manual reminder batch trigger.
type AdminHandler struct {
	Appointments  *service.AppointmentService
	Medicines     *service.MedicineService
	Notifications *service.NotificationService
}

func NewAdminHandler(appts *service.AppointmentService, meds *service.MedicineService, notifs *service.NotificationService) *AdminHandler {
	return &AdminHandler{
		Appointments:  appts,
		Medicines:     meds,
		Notifications: notifs,
	}
}

func (h *AdminHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	status := r.URL.Query().Get("status")

	appts, err := h.Appointments.ListAll(r.Context(), date, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appts)
}

func (h *AdminHandler) ListMedicines(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	lowStock := r.URL.Query().Get("low_stock") == "true"

	meds, err := h.Medicines.List(r.Context(), category, lowStock)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meds)
}

func (h *AdminHandler) CreateMedicine(w http.ResponseWriter, r *http.Request) {
	var req entities.MedicineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validation("invalid request body"))
		return
	}

	resp, err := h.Medicines.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *AdminHandler) UpdateMedicine(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, apperrors.Validation("invalid medicine id"))
		return
	}

	var req entities.MedicineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validation("invalid request body"))
		return
	}

	resp, err := h.Medicines.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) DeleteMedicine(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, apperrors.Validation("invalid medicine id"))
		return
	}

	if err := h.Medicines.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Medicine deleted"})
}

// RunNotifications triggers the reminder batch by hand. Safe to call
// repeatedly; cycles already recorded as sent are skipped.
func (h *AdminHandler) RunNotifications(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Notifications.RunReminderBatch(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
