package usecase

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"
	"sync"
	"testing"
	"time"

	"prebook/internal/data/entity"
	"prebook/internal/dto/request"
	"prebook/pkg/storage"

	"github.com/google/uuid"
)

type mockReservationRepo struct {
	mu sync.Mutex

	pending     []*entity.Reservation
	pendingErr  error
	sources     []*entity.Reservation
	sourcesErr  error
	byID        map[uuid.UUID]*entity.Reservation
	findErr     error
	all         []*entity.Reservation
	total       int64
	insertErr   error
	updateErr   error
	pendingCall int
	pendingPhone string
	insertCalls int
	updateCalls int
	inserted    *entity.Reservation
	lastStatus  entity.ReservationStatus
	lastLimit   int
}

func (m *mockReservationRepo) CreatePending(ctx context.Context, r *entity.Reservation, beforeCommit func(ctx context.Context) error) error {
	m.mu.Lock()
	m.insertCalls++
	m.mu.Unlock()

	if m.insertErr != nil {
		return m.insertErr
	}
	if beforeCommit != nil {
		if err := beforeCommit(ctx); err != nil {
			return err
		}
	}
	m.inserted = r
	return nil
}

func (m *mockReservationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.byID[id], nil
}

func (m *mockReservationRepo) FindPendingByPhone(ctx context.Context, phone string) ([]*entity.Reservation, error) {
	m.pendingCall++
	m.pendingPhone = phone
	return m.pending, m.pendingErr
}

func (m *mockReservationRepo) FindSlotSources(ctx context.Context) ([]*entity.Reservation, error) {
	return m.sources, m.sourcesErr
}

func (m *mockReservationRepo) FindAll(ctx context.Context, status entity.ReservationStatus, limit, offset int) ([]*entity.Reservation, error) {
	m.lastStatus = status
	m.lastLimit = limit
	return m.all, m.findErr
}

func (m *mockReservationRepo) Count(ctx context.Context, status entity.ReservationStatus) (int64, error) {
	return m.total, m.findErr
}

func (m *mockReservationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.ReservationStatus, selected *entity.Slot) error {
	m.updateCalls++
	return m.updateErr
}

type mockSubmitLock struct {
	held          bool
	err           error
	acquired      int
	released      int
	releasedToken string
	phone         string
}

func (m *mockSubmitLock) Acquire(ctx context.Context, phone string, ttl time.Duration) (string, bool, error) {
	m.acquired++
	m.phone = phone
	if m.err != nil {
		return "", false, m.err
	}
	if m.held {
		return "", false, nil
	}
	return fmt.Sprintf("token-%d", m.acquired), true, nil
}

func (m *mockSubmitLock) Release(ctx context.Context, phone, token string) error {
	m.released++
	m.releasedToken = token
	return nil
}

type mockStorage struct {
	uploads    []string
	promotes   []string
	deletes    []string
	uploadErr  map[string]error
	promoteErr error
}

func (m *mockStorage) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	m.uploads = append(m.uploads, key)
	for suffix, err := range m.uploadErr {
		if strings.HasSuffix(key, suffix) {
			return "", err
		}
	}
	return key, nil
}

func (m *mockStorage) Promote(ctx context.Context, from, to string) error {
	if m.promoteErr != nil {
		return m.promoteErr
	}
	m.promotes = append(m.promotes, to)
	return nil
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	m.deletes = append(m.deletes, key)
	return nil
}

func (m *mockStorage) List(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	return nil, nil
}

type mockPublisher struct {
	subjects []string
	err      error
}

func (m *mockPublisher) Publish(ctx context.Context, subject string, data any) error {
	m.subjects = append(m.subjects, subject)
	return m.err
}

func (m *mockPublisher) Close() error { return nil }

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func validDraft(t *testing.T) *request.ReservationDraft {
	t.Helper()
	return &request.ReservationDraft{
		TermsAgreed:    true,
		CustomerName:   "김민지",
		Gender:         entity.GenderFemale,
		Age:            29,
		Phone:          "010-1234-5678",
		DesiredService: entity.ServiceNatural,
		ReferralSource: "instagram",
		DesiredSlots: []entity.Slot{
			{Date: "2025-03-10", Time: "11:00"},
			{Date: "2025-03-11", Time: "14:30"},
		},
		FrontPhoto:  &request.Photo{Filename: "front.png", Data: testPNG(t)},
		ClosedPhoto: &request.Photo{Filename: "closed.png", Data: testPNG(t)},
	}
}
