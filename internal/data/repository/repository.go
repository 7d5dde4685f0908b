package repository

import (
	"prebook/pkg/database"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Repository struct {
	Reservation ReservationRepository
	SubmitLock  SubmitLockRepository
}

// NewRepository wires every repository. rdb may be nil, which turns the submit lock into a no-op.
func NewRepository(db database.PgxIface, rdb *redis.Client, log *zap.Logger) *Repository {
	return &Repository{
		Reservation: NewReservationRepository(db, log),
		SubmitLock:  NewSubmitLockRepository(rdb, log),
	}
}
