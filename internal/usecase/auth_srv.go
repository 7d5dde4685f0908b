package usecase

import (
	"context"
	"time"

	"prebook/internal/dto/request"
	"prebook/internal/dto/response"
	"prebook/pkg/utils"

	"go.uber.org/zap"
)

// staffSubject is the token subject for the shared back-office account.
const staffSubject = "staff"

type AuthService interface {
	Login(ctx context.Context, req *request.StaffLoginRequest) (*response.StaffTokenResponse, error)
}

type authService struct {
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.StaffLoginRequest) (*response.StaffTokenResponse, error) {
	// 1. Validate input
	if err := validate(req); err != nil {
		return nil, err
	}

	// 2. Compare against the configured hash
	if s.config.Staff.PasswordHash == "" || !utils.CheckPasswordHash(req.Password, s.config.Staff.PasswordHash) {
		s.log.Warn("Staff login failed")
		return nil, ErrInvalidCredentials
	}

	// 3. Issue token
	ttl := time.Duration(s.config.JWT.ExpiryHours) * time.Hour
	token, expiresAt, err := utils.NewStaffToken(s.config.JWT.Secret, staffSubject, ttl)
	if err != nil {
		s.log.Error("Failed to sign staff token", zap.Error(err))
		return nil, err
	}

	s.log.Info("Staff logged in", zap.Time("expires_at", expiresAt))
	return &response.StaffTokenResponse{Token: token, ExpiresAt: expiresAt}, nil
}
