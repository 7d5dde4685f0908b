package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"prebook/internal/dto/request"
	"prebook/internal/usecase"
	"prebook/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TemplateHandler struct {
	service usecase.TemplateService
	log     *zap.Logger
}

func NewTemplateHandler(service usecase.TemplateService, log *zap.Logger) *TemplateHandler {
	return &TemplateHandler{
		service: service,
		log:     log.With(zap.String("handler", "template")),
	}
}

// ListTemplates handles GET /api/admin/templates
func (h *TemplateHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list templates", "Failed to list templates")
		return
	}

	utils.ResponseSuccess(w, "Templates retrieved successfully", templates)
}

// GetTemplate handles GET /api/admin/templates/{key}
func (h *TemplateHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	template, err := h.service.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		handleServiceError(w, h.log, err, "get template", "Failed to get template")
		return
	}

	utils.ResponseSuccess(w, "Template retrieved successfully", template)
}

// RenderTemplate handles POST /api/admin/templates/{key}/render. An empty body renders
// the template with no variables.
func (h *TemplateHandler) RenderTemplate(w http.ResponseWriter, r *http.Request) {
	var req request.RenderTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	rendered, err := h.service.Render(r.Context(), chi.URLParam(r, "key"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "render template", "Failed to render template")
		return
	}

	utils.ResponseSuccess(w, "Template rendered successfully", rendered)
}
