package wire

import (
	"prebook/internal/adaptor"
	"prebook/pkg/middleware"
	"prebook/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTemplate(
	r chi.Router,
	templateHandler *adaptor.TemplateHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/admin/templates", func(r chi.Router) {
		r.Use(middleware.StaffAuth(config.JWT.Secret, log))

		r.Get("/", templateHandler.ListTemplates)
		r.Get("/{key}", templateHandler.GetTemplate)
		r.Post("/{key}/render", templateHandler.RenderTemplate)
	})
}
