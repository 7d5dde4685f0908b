package wire

import (
	"prebook/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReservation(r chi.Router, reservationHandler *adaptor.ReservationHandler) {
	// GET /api/services - treatment catalog
	r.Get("/api/services", reservationHandler.GetServices)

	// GET /api/slots/booked?service= - slots already held by other requests
	r.Get("/api/slots/booked", reservationHandler.GetBookedSlots)

	// POST /api/reservations - customer request form
	r.Post("/api/reservations", reservationHandler.Submit)
}
