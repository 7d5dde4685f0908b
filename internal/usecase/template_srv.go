package usecase

import (
	"context"
	"fmt"

	"prebook/internal/data/entity"
	"prebook/internal/data/repository"
	"prebook/internal/dto/request"
	"prebook/internal/dto/response"
	"prebook/internal/message"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TemplateService interface {
	List(ctx context.Context) ([]response.TemplateResponse, error)
	Get(ctx context.Context, key string) (*response.TemplateResponse, error)
	// Render fills req.Variables, or the variables derived from req.ReservationID when set.
	Render(ctx context.Context, key string, req *request.RenderTemplateRequest) (*response.RenderedTemplateResponse, error)
	RenderForReservation(ctx context.Context, key, reservationID string) (*response.RenderedTemplateResponse, error)
}

type templateService struct {
	reservations repository.ReservationRepository
	log          *zap.Logger
}

func NewTemplateService(reservations repository.ReservationRepository, log *zap.Logger) TemplateService {
	return &templateService{
		reservations: reservations,
		log:          log.With(zap.String("service", "template")),
	}
}

func (s *templateService) List(ctx context.Context) ([]response.TemplateResponse, error) {
	if err := message.Load(); err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	keys := message.Keys()
	templates := make([]response.TemplateResponse, 0, len(keys))
	for _, key := range keys {
		t, _ := message.Get(key)
		templates = append(templates, templateToResponse(key, t))
	}
	return templates, nil
}

func (s *templateService) Get(ctx context.Context, key string) (*response.TemplateResponse, error) {
	t, ok := message.Get(key)
	if !ok {
		return nil, ErrTemplateNotFound
	}
	resp := templateToResponse(key, t)
	return &resp, nil
}

func (s *templateService) Render(ctx context.Context, key string, req *request.RenderTemplateRequest) (*response.RenderedTemplateResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.ReservationID != "" {
		return s.RenderForReservation(ctx, key, req.ReservationID)
	}

	t, ok := message.Get(key)
	if !ok {
		return nil, ErrTemplateNotFound
	}

	return &response.RenderedTemplateResponse{
		Key:     key,
		Title:   t.Title,
		Message: message.Customize(t, req.Variables),
	}, nil
}

func (s *templateService) RenderForReservation(ctx context.Context, key, reservationID string) (*response.RenderedTemplateResponse, error) {
	t, ok := message.Get(key)
	if !ok {
		return nil, ErrTemplateNotFound
	}

	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid reservation ID %q", ErrValidation, reservationID)
	}

	res, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	if res == nil {
		return nil, ErrReservationNotFound
	}

	variables := map[string]string{
		message.VarCustomerName: res.CustomerName,
	}
	if res.Status == entity.ReservationStatusConfirmed && res.SelectedSlot != nil {
		variables[message.VarAppointmentDate] = res.SelectedSlot.Date
		variables[message.VarAppointmentTime] = res.SelectedSlot.Time
	}

	s.log.Debug("Rendering template for reservation",
		zap.String("template", key),
		zap.String("reservation_id", reservationID),
	)

	return &response.RenderedTemplateResponse{
		Key:     key,
		Title:   t.Title,
		Message: message.Customize(t, variables),
	}, nil
}

func templateToResponse(key string, t message.Template) response.TemplateResponse {
	return response.TemplateResponse{
		Key:                   key,
		Title:                 t.Title,
		Content:               t.Content,
		RequiresCustomization: t.RequiresCustomization,
	}
}
