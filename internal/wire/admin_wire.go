package wire

import (
	"prebook/internal/adaptor"
	"prebook/pkg/middleware"
	"prebook/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// POST /api/admin/login - public, issues the staff token
	r.Post("/api/admin/login", authHandler.Login)

	r.Route("/api/admin/reservations", func(r chi.Router) {
		r.Use(middleware.StaffAuth(config.JWT.Secret, log))

		r.Get("/", adminHandler.ListReservations)
		r.Get("/export", adminHandler.ExportReservations)
		r.Get("/{id}", adminHandler.GetReservation)
		r.Put("/{id}/confirm", adminHandler.ConfirmReservation)
		r.Put("/{id}/reject", adminHandler.RejectReservation)
	})
}
