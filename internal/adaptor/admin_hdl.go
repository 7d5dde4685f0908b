package adaptor

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"prebook/internal/dto/request"
	"prebook/internal/usecase"
	"prebook/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// ListReservations handles GET /api/admin/reservations
func (h *AdminHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListReservationsRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
		Status: query.Get("status"),
	}

	reservations, err := h.service.ListReservations(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list reservations", "Failed to list reservations")
		return
	}

	utils.ResponseSuccess(w, "Reservations retrieved successfully", reservations)
}

// GetReservation handles GET /api/admin/reservations/{id}
func (h *AdminHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	reservation, err := h.service.GetReservation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get reservation", "Failed to get reservation")
		return
	}

	utils.ResponseSuccess(w, "Reservation retrieved successfully", reservation)
}

// ConfirmReservation handles PUT /api/admin/reservations/{id}/confirm
func (h *AdminHandler) ConfirmReservation(w http.ResponseWriter, r *http.Request) {
	var req request.ConfirmReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	reservation, err := h.service.ConfirmReservation(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "confirm reservation", "Failed to confirm reservation")
		return
	}

	staff, _ := utils.GetStaffSubjectFromContext(r.Context())
	h.log.Info("Reservation confirmed by staff", zap.String("staff", staff), zap.String("reservation_id", reservation.ID))
	utils.ResponseSuccess(w, "Reservation confirmed successfully", reservation)
}

// RejectReservation handles PUT /api/admin/reservations/{id}/reject
func (h *AdminHandler) RejectReservation(w http.ResponseWriter, r *http.Request) {
	reservation, err := h.service.RejectReservation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "reject reservation", "Failed to reject reservation")
		return
	}

	staff, _ := utils.GetStaffSubjectFromContext(r.Context())
	h.log.Info("Reservation rejected by staff", zap.String("staff", staff), zap.String("reservation_id", reservation.ID))
	utils.ResponseSuccess(w, "Reservation rejected successfully", reservation)
}

// ExportReservations handles GET /api/admin/reservations/export?status=
func (h *AdminHandler) ExportReservations(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.ExportReservations(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		handleServiceError(w, h.log, err, "export reservations", "Failed to export reservations")
		return
	}

	filename := fmt.Sprintf("reservations_%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.log.Warn("Failed to write export", zap.Error(err))
	}
}
