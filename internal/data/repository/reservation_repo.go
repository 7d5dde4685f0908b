package repository

import (
	"context"
	"errors"
	"fmt"

	"prebook/internal/data/entity"
	"prebook/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// pendingPhoneConstraint is the partial unique index on (phone) WHERE status = 'pending'.
const pendingPhoneConstraint = "reservations_pending_phone_key"

var (
	ErrPendingPhoneExists = errors.New("pending reservation already exists for phone")
	ErrStatusChanged      = errors.New("reservation status changed concurrently")
)

type ReservationRepository interface {
	// CreatePending inserts r inside a transaction and runs beforeCommit before committing.
	// An error from beforeCommit rolls the insert back.
	CreatePending(ctx context.Context, r *entity.Reservation, beforeCommit func(ctx context.Context) error) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindPendingByPhone(ctx context.Context, phone string) ([]*entity.Reservation, error)
	// FindSlotSources loads only the columns needed to compute booked slots.
	FindSlotSources(ctx context.Context) ([]*entity.Reservation, error)
	FindAll(ctx context.Context, status entity.ReservationStatus, limit, offset int) ([]*entity.Reservation, error)
	Count(ctx context.Context, status entity.ReservationStatus) (int64, error)
	// UpdateStatus moves a reservation from one status to another; selected may be nil.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.ReservationStatus, selected *entity.Slot) error
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `id, customer_name, gender, age, phone, desired_service, referral_source,
	desired_slots, prior_experience, front_photo_url, closed_photo_url, status, selected_slot,
	created_at, updated_at`

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var r entity.Reservation
	err := row.Scan(
		&r.ID,
		&r.CustomerName,
		&r.Gender,
		&r.Age,
		&r.Phone,
		&r.DesiredService,
		&r.ReferralSource,
		&r.DesiredSlots,
		&r.PriorExperience,
		&r.FrontPhotoURL,
		&r.ClosedPhotoURL,
		&r.Status,
		&r.SelectedSlot,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *reservationRepository) CreatePending(ctx context.Context, res *entity.Reservation, beforeCommit func(ctx context.Context) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create reservation: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO reservations (id, customer_name, gender, age, phone, desired_service, referral_source,
			desired_slots, prior_experience, front_photo_url, closed_photo_url, status, selected_slot,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err = tx.Exec(ctx, query,
		res.ID,
		res.CustomerName,
		res.Gender,
		res.Age,
		res.Phone,
		res.DesiredService,
		res.ReferralSource,
		res.DesiredSlots,
		res.PriorExperience,
		res.FrontPhotoURL,
		res.ClosedPhotoURL,
		res.Status,
		res.SelectedSlot,
		res.CreatedAt,
		res.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err, pendingPhoneConstraint) {
			r.log.Warn("Pending reservation already exists", zap.String("phone", res.Phone))
			return ErrPendingPhoneExists
		}
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("reservation_id", res.ID.String()),
			zap.String("phone", res.Phone),
		)
		return fmt.Errorf("create reservation %s: %w", res.ID.String(), err)
	}

	if beforeCommit != nil {
		if err := beforeCommit(ctx); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit reservation", zap.Error(err), zap.String("reservation_id", res.ID.String()))
		return fmt.Errorf("commit reservation %s: %w", res.ID.String(), err)
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	res, err := scanReservation(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return res, nil
}

func (r *reservationRepository) FindPendingByPhone(ctx context.Context, phone string) ([]*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE phone = $1 AND status = $2`

	rows, err := r.db.Query(ctx, query, phone, entity.ReservationStatusPending)
	if err != nil {
		r.log.Error("Failed to find pending reservations by phone", zap.Error(err), zap.String("phone", phone))
		return nil, fmt.Errorf("find pending reservations by phone: %w", err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, res)
	}

	return reservations, rows.Err()
}

func (r *reservationRepository) FindSlotSources(ctx context.Context) ([]*entity.Reservation, error) {
	query := `SELECT desired_slots, status, selected_slot, desired_service FROM reservations`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to load reservation slots", zap.Error(err))
		return nil, fmt.Errorf("load reservation slots: %w", err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		var res entity.Reservation
		if err := rows.Scan(&res.DesiredSlots, &res.Status, &res.SelectedSlot, &res.DesiredService); err != nil {
			r.log.Error("Failed to scan reservation slots", zap.Error(err))
			return nil, fmt.Errorf("scan reservation slots: %w", err)
		}
		reservations = append(reservations, &res)
	}

	return reservations, rows.Err()
}

func (r *reservationRepository) FindAll(ctx context.Context, status entity.ReservationStatus, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE ($1::text = '' OR status = $1::text)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, string(status), limit, offset)
	if err != nil {
		r.log.Error("Failed to list reservations",
			zap.Error(err),
			zap.String("status", string(status)),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, res)
	}

	return reservations, rows.Err()
}

func (r *reservationRepository) Count(ctx context.Context, status entity.ReservationStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE ($1::text = '' OR status = $1::text)`

	var count int64
	if err := r.db.QueryRow(ctx, query, string(status)).Scan(&count); err != nil {
		r.log.Error("Failed to count reservations", zap.Error(err), zap.String("status", string(status)))
		return 0, fmt.Errorf("count reservations: %w", err)
	}

	return count, nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.ReservationStatus, selected *entity.Slot) error {
	query := `
		UPDATE reservations
		SET status = $3, selected_slot = COALESCE($4, selected_slot), updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.Exec(ctx, query, id, from, to, selected)
	if err != nil {
		r.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
			zap.String("status", string(to)),
		)
		return fmt.Errorf("update reservation %s status to %s: %w", id.String(), string(to), err)
	}

	if result.RowsAffected() == 0 {
		return ErrStatusChanged
	}

	return nil
}
