package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"prebook/internal/data/entity"
	"prebook/internal/data/repository"
	"prebook/internal/dto/request"
	"prebook/internal/dto/response"
	"prebook/pkg/events"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// exportLimit caps one spreadsheet export.
const exportLimit = 5000

const exportSheet = "Reservations"

type AdminService interface {
	ListReservations(ctx context.Context, req *request.ListReservationsRequest) (*response.PaginatedResponse[response.ReservationResponse], error)
	GetReservation(ctx context.Context, id string) (*response.ReservationResponse, error)
	ConfirmReservation(ctx context.Context, id string, req *request.ConfirmReservationRequest) (*response.ReservationResponse, error)
	RejectReservation(ctx context.Context, id string) (*response.ReservationResponse, error)
	// ExportReservations renders the reservations with the given status (all when empty) as an xlsx workbook.
	ExportReservations(ctx context.Context, status string) ([]byte, error)
}

type adminService struct {
	reservations repository.ReservationRepository
	publisher    events.Publisher
	now          func() time.Time
	log          *zap.Logger
}

func NewAdminService(reservations repository.ReservationRepository, publisher events.Publisher, log *zap.Logger) AdminService {
	return &adminService{
		reservations: reservations,
		publisher:    publisher,
		now:          time.Now,
		log:          log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) ListReservations(ctx context.Context, req *request.ListReservationsRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	if err := validate(req); err != nil {
		s.log.Warn("List reservations validation failed", zap.Error(err))
		return nil, err
	}

	status := entity.ReservationStatus(req.Status)
	reservations, err := s.reservations.FindAll(ctx, status, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	total, err := s.reservations.Count(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("count reservations: %w", err)
	}

	items := make([]response.ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		items = append(items, response.ReservationToResponse(r))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *adminService) GetReservation(ctx context.Context, id string) (*response.ReservationResponse, error) {
	res, err := s.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.ReservationToResponse(res)
	return &resp, nil
}

func (s *adminService) ConfirmReservation(ctx context.Context, id string, req *request.ConfirmReservationRequest) (*response.ReservationResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Confirm reservation validation failed", zap.Error(err))
		return nil, err
	}

	res, err := s.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.Status != entity.ReservationStatusPending {
		return nil, ErrInvalidTransition
	}

	selected := entity.Slot{Date: req.Date, Time: req.Time}
	desired := false
	for _, slot := range res.DesiredSlots {
		if slot.Equal(selected) {
			desired = true
			break
		}
	}
	if !desired {
		return nil, fmt.Errorf("%w: %w", ErrValidation, ErrSlotNotDesired)
	}

	if err := s.transition(ctx, res, entity.ReservationStatusConfirmed, &selected); err != nil {
		return nil, err
	}

	s.log.Info("Reservation confirmed",
		zap.String("reservation_id", res.ID.String()),
		zap.String("date", selected.Date),
		zap.String("time", selected.Time),
	)
	s.publish(ctx, events.ReservationConfirmed, res)

	resp := response.ReservationToResponse(res)
	return &resp, nil
}

func (s *adminService) RejectReservation(ctx context.Context, id string) (*response.ReservationResponse, error) {
	res, err := s.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.Status != entity.ReservationStatusPending {
		return nil, ErrInvalidTransition
	}

	if err := s.transition(ctx, res, entity.ReservationStatusRejected, nil); err != nil {
		return nil, err
	}

	s.log.Info("Reservation rejected", zap.String("reservation_id", res.ID.String()))
	s.publish(ctx, events.ReservationRejected, res)

	resp := response.ReservationToResponse(res)
	return &resp, nil
}

func (s *adminService) ExportReservations(ctx context.Context, status string) ([]byte, error) {
	if err := validate(&request.ListReservationsRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 1},
		Status:           status,
	}); err != nil {
		return nil, err
	}

	reservations, err := s.reservations.FindAll(ctx, entity.ReservationStatus(status), exportLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("export reservations: %w", err)
	}

	file := excelize.NewFile()
	defer file.Close()

	if _, err := file.NewSheet(exportSheet); err != nil {
		return nil, fmt.Errorf("create export sheet: %w", err)
	}
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	headers := []any{
		"Created At", "Status", "Name", "Gender", "Age", "Phone", "Service",
		"Desired Slots", "Selected Slot", "Referral", "Prior Experience",
	}
	if err := writeExportRow(file, 1, headers); err != nil {
		return nil, err
	}

	for i, r := range reservations {
		row := i + 2
		slots := make([]string, 0, len(r.DesiredSlots))
		for _, slot := range r.DesiredSlots {
			slots = append(slots, slot.Date+" "+slot.Time)
		}
		selected := ""
		if r.SelectedSlot != nil {
			selected = r.SelectedSlot.Date + " " + r.SelectedSlot.Time
		}

		values := []any{
			r.CreatedAt.Format(time.DateTime),
			string(r.Status),
			r.CustomerName,
			string(r.Gender),
			r.Age,
			r.Phone,
			string(r.DesiredService),
			strings.Join(slots, ", "),
			selected,
			r.ReferralSource,
			r.PriorExperience,
		}
		if err := writeExportRow(file, row, values); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		s.log.Error("Failed to write export workbook", zap.Error(err))
		return nil, fmt.Errorf("write export workbook: %w", err)
	}

	s.log.Info("Reservations exported", zap.Int("rows", len(reservations)), zap.String("status", status))
	return buf.Bytes(), nil
}

// writeExportRow fills row (1-based) of the export sheet from column A.
func writeExportRow(file *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("export row %d: %w", row, err)
	}
	if err := file.SetSheetRow(exportSheet, cell, &values); err != nil {
		return fmt.Errorf("export row %d: %w", row, err)
	}
	return nil
}

func (s *adminService) findReservation(ctx context.Context, id string) (*entity.Reservation, error) {
	reservationID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid reservation ID %q", ErrValidation, id)
	}

	res, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	if res == nil {
		return nil, ErrReservationNotFound
	}
	return res, nil
}

func (s *adminService) transition(ctx context.Context, res *entity.Reservation, to entity.ReservationStatus, selected *entity.Slot) error {
	err := s.reservations.UpdateStatus(ctx, res.ID, entity.ReservationStatusPending, to, selected)
	if errors.Is(err, repository.ErrStatusChanged) {
		return ErrInvalidTransition
	}
	if err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}

	res.Status = to
	if selected != nil {
		res.SelectedSlot = selected
	}
	res.UpdatedAt = s.now()
	return nil
}

func (s *adminService) publish(ctx context.Context, subject string, res *entity.Reservation) {
	event := events.ReservationEvent{
		ReservationID:  res.ID.String(),
		CustomerName:   res.CustomerName,
		Phone:          res.Phone,
		DesiredService: string(res.DesiredService),
		Status:         string(res.Status),
		OccurredAt:     s.now(),
	}
	if err := s.publisher.Publish(ctx, subject, event); err != nil {
		s.log.Warn("Failed to publish reservation event", zap.Error(err), zap.String("subject", subject))
	}
}
