package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prebook/internal/data/entity"
	"prebook/internal/data/repository"
	"prebook/internal/dto/request"
	"prebook/internal/dto/response"
	"prebook/pkg/events"
	"prebook/pkg/storage"
	"prebook/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationService interface {
	// LoadBookedSlots never fails: a read error is logged and yields an empty list.
	LoadBookedSlots(ctx context.Context, service entity.ServiceID) []entity.BookedSlot
	Submit(ctx context.Context, draft *request.ReservationDraft) (*response.ReservationResponse, error)
}

type reservationService struct {
	repo      *repository.Repository
	storage   storage.ObjectStorage
	publisher events.Publisher
	lockTTL   time.Duration
	now       func() time.Time
	log       *zap.Logger
}

func NewReservationService(
	repo *repository.Repository,
	store storage.ObjectStorage,
	publisher events.Publisher,
	lockTTL time.Duration,
	log *zap.Logger,
) ReservationService {
	if lockTTL <= 0 {
		lockTTL = time.Minute
	}
	return &reservationService{
		repo:      repo,
		storage:   store,
		publisher: publisher,
		lockTTL:   lockTTL,
		now:       time.Now,
		log:       log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) LoadBookedSlots(ctx context.Context, service entity.ServiceID) []entity.BookedSlot {
	reservations, err := s.repo.Reservation.FindSlotSources(ctx)
	if err != nil {
		s.log.Error("Failed to load booked slots", zap.Error(err))
		return []entity.BookedSlot{}
	}

	slots := entity.FlattenBookedSlots(reservations)
	if service == "" {
		return slots
	}

	filtered := make([]entity.BookedSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.ServiceType == service {
			filtered = append(filtered, slot)
		}
	}
	return filtered
}

func (s *reservationService) Submit(ctx context.Context, draft *request.ReservationDraft) (*response.ReservationResponse, error) {
	// 1. Terms gate, before anything touches the network
	if !draft.TermsAgreed {
		return nil, ErrTermsNotAgreed
	}

	// 2. Field and slot rules
	if err := s.validateDraft(draft); err != nil {
		s.log.Warn("Submit validation failed", zap.Error(err))
		return nil, err
	}

	// one phone number, however it was typed
	draft.Phone = utils.NormalizePhone(draft.Phone)

	// 3. One submission per phone at a time
	token, acquired, err := s.repo.SubmitLock.Acquire(ctx, draft.Phone, s.lockTTL)
	if err != nil {
		s.log.Warn("Submit lock unavailable, continuing without it", zap.Error(err))
	} else {
		if !acquired {
			return nil, ErrSubmissionInProgress
		}
		defer s.repo.SubmitLock.Release(context.WithoutCancel(ctx), draft.Phone, token)
	}

	// 4. Pending request for the same phone
	pending, err := s.repo.Reservation.FindPendingByPhone(ctx, draft.Phone)
	if err != nil {
		return nil, fmt.Errorf("check pending reservation: %w", err)
	}
	if len(pending) > 0 {
		s.log.Info("Rejected submit, pending reservation exists", zap.String("phone", draft.Phone))
		return nil, ErrPendingReservationExists
	}

	// 5. Slot conflicts against existing reservations
	booked := s.LoadBookedSlots(ctx, "")
	for _, slot := range draft.DesiredSlots {
		for _, b := range booked {
			if b.Blocks(slot) {
				s.log.Info("Rejected submit, slot unavailable",
					zap.String("date", slot.Date),
					zap.String("time", slot.Time),
				)
				return nil, ErrSlotUnavailable
			}
		}
	}

	// 6. Stage both photos, front first
	now := s.now()
	front := utils.GeneratePhotoKeys(now, "front")
	closed := utils.GeneratePhotoKeys(now, "closed")

	var written []string
	cleanup := func() {
		for _, key := range written {
			if err := s.storage.Delete(context.WithoutCancel(ctx), key); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
				s.log.Warn("Failed to delete photo after aborted submit", zap.Error(err), zap.String("key", key))
			}
		}
	}

	uploads := []struct {
		keys  utils.PhotoKeys
		photo *request.Photo
	}{
		{front, draft.FrontPhoto},
		{closed, draft.ClosedPhoto},
	}
	for _, u := range uploads {
		if _, err := s.storage.Upload(ctx, u.keys.Staging, u.photo.ContentType, u.photo.Data); err != nil {
			s.log.Error("Failed to upload photo", zap.Error(err), zap.String("key", u.keys.Staging))
			cleanup()
			return nil, fmt.Errorf("upload photo %s: %w", u.keys.Staging, err)
		}
		written = append(written, u.keys.Staging)
	}

	// 7. Insert, promoting the staged photos before commit
	res := &entity.Reservation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CustomerName:    draft.CustomerName,
		Gender:          draft.Gender,
		Age:             draft.Age,
		Phone:           draft.Phone,
		DesiredService:  draft.DesiredService,
		ReferralSource:  draft.ReferralSource,
		DesiredSlots:    append([]entity.Slot(nil), draft.DesiredSlots...),
		PriorExperience: draft.PriorExperience,
		FrontPhotoURL:   &front.Final,
		ClosedPhotoURL:  &closed.Final,
		Status:          entity.ReservationStatusPending,
	}

	err = s.repo.Reservation.CreatePending(ctx, res, func(ctx context.Context) error {
		for _, u := range uploads {
			if err := s.storage.Promote(ctx, u.keys.Staging, u.keys.Final); err != nil {
				return fmt.Errorf("promote photo %s: %w", u.keys.Staging, err)
			}
			written = append(written, u.keys.Final)
		}
		return nil
	})
	if err != nil {
		cleanup()
		if errors.Is(err, repository.ErrPendingPhoneExists) {
			return nil, ErrPendingReservationExists
		}
		s.log.Error("Failed to create reservation", zap.Error(err), zap.String("reservation_id", res.ID.String()))
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	draft.Submitted = true
	s.log.Info("Reservation submitted",
		zap.String("reservation_id", res.ID.String()),
		zap.String("service_type", string(res.DesiredService)),
		zap.Int("slots", len(res.DesiredSlots)),
	)

	s.publish(ctx, events.ReservationCreated, res)

	resp := response.ReservationToResponse(res)
	return &resp, nil
}

func (s *reservationService) validateDraft(draft *request.ReservationDraft) error {
	if len(draft.DesiredSlots) > entity.MaxDesiredSlots {
		return fmt.Errorf("%w: %w", ErrValidation, request.ErrTooManySlots)
	}
	for i, slot := range draft.DesiredSlots {
		for _, prev := range draft.DesiredSlots[:i] {
			if prev.Equal(slot) {
				return fmt.Errorf("%w: %w", ErrValidation, request.ErrDuplicateSlot)
			}
		}
	}

	if err := validate(draft); err != nil {
		return err
	}

	for _, photo := range []*request.Photo{draft.FrontPhoto, draft.ClosedPhoto} {
		if photo == nil || len(photo.Data) == 0 {
			return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidPhoto)
		}
		contentType, err := utils.InspectPhoto(photo.Data)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidPhoto)
		}
		photo.ContentType = contentType
	}

	return nil
}

func (s *reservationService) publish(ctx context.Context, subject string, res *entity.Reservation) {
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
