package adaptor

import (
	"errors"
	"net/http"

	"prebook/internal/usecase"
	"prebook/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Reservation *ReservationHandler
	Admin       *AdminHandler
	Template    *TemplateHandler
	Auth        *AuthHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	maxPhotoBytes := int64(config.Upload.MaxPhotoMB) << 20
	return &Handler{
		Reservation: NewReservationHandler(service.Reservation, maxPhotoBytes, log),
		Admin:       NewAdminHandler(service.Admin, log),
		Template:    NewTemplateHandler(service.Template, log),
		Auth:        NewAuthHandler(service.Auth, log),
	}
}

// handleServiceError maps usecase errors to HTTP responses. Anything unrecognised is logged
// and answered with fallback as a 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation, fallback string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrTermsNotAgreed),
		errors.Is(err, usecase.ErrInvalidTransition):
		log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrPendingReservationExists),
		errors.Is(err, usecase.ErrSlotUnavailable),
		errors.Is(err, usecase.ErrSubmissionInProgress):
		log.Info(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrReservationNotFound),
		errors.Is(err, usecase.ErrTemplateNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - unauthorized",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnauthorized(w, err.Error())

	default:
		log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, fallback)
	}
}
