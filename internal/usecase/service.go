package usecase

import (
	"time"

	"prebook/internal/data/repository"
	"prebook/pkg/events"
	"prebook/pkg/storage"
	"prebook/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Reservation ReservationService
	Admin       AdminService
	Template    TemplateService
	Auth        AuthService
}

func NewService(
	repo *repository.Repository,
	store storage.ObjectStorage,
	publisher events.Publisher,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Reservation: NewReservationService(repo, store, publisher, time.Duration(config.Redis.SubmitLockSeconds)*time.Second, log),
		Admin:       NewAdminService(repo.Reservation, publisher, log),
		Template:    NewTemplateService(repo.Reservation, log),
		Auth:        NewAuthService(config, log),
	}
}
