package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"prebook/internal/data/entity"
	"prebook/internal/data/repository"
	"prebook/internal/dto/request"
	"prebook/pkg/events"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func pendingReservation() *entity.Reservation {
	return &entity.Reservation{
		Base:           entity.Base{ID: uuid.New(), CreatedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)},
		CustomerName:   "김민지",
		Gender:         entity.GenderFemale,
		Age:            29,
		Phone:          "010-1234-5678",
		DesiredService: entity.ServiceCombo,
		DesiredSlots: []entity.Slot{
			{Date: "2025-03-10", Time: "11:00"},
			{Date: "2025-03-11", Time: "14:30"},
		},
		Status: entity.ReservationStatusPending,
	}
}

func newAdminFixture(res ...*entity.Reservation) (*adminService, *mockReservationRepo, *mockPublisher) {
	repo := &mockReservationRepo{byID: map[uuid.UUID]*entity.Reservation{}}
	for _, r := range res {
		repo.byID[r.ID] = r
	}
	pub := &mockPublisher{}
	svc := NewAdminService(repo, pub, zap.NewNop()).(*adminService)
	return svc, repo, pub
}

func TestConfirmReservation(t *testing.T) {
	res := pendingReservation()
	svc, repo, pub := newAdminFixture(res)

	resp, err := svc.ConfirmReservation(context.Background(), res.ID.String(), &request.ConfirmReservationRequest{
		Date: "2025-03-11",
		Time: "14:30",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != entity.ReservationStatusConfirmed {
		t.Errorf("expected confirmed, got %q", resp.Status)
	}
	if resp.SelectedSlot == nil || resp.SelectedSlot.Time != "14:30" {
		t.Errorf("unexpected selected slot: %+v", resp.SelectedSlot)
	}
	if repo.updateCalls != 1 {
		t.Errorf("expected 1 update, got %d", repo.updateCalls)
	}
	if len(pub.subjects) != 1 || pub.subjects[0] != events.ReservationConfirmed {
		t.Errorf("expected confirmed event, got %v", pub.subjects)
	}
}

func TestConfirmReservation_Errors(t *testing.T) {
	confirmed := pendingReservation()
	confirmed.Status = entity.ReservationStatusConfirmed

	tests := []struct {
		name      string
		res       *entity.Reservation
		id        string
		req       request.ConfirmReservationRequest
		updateErr error
		wantErr   error
	}{
		{
			name:    "slot not among desired slots",
			res:     pendingReservation(),
			req:     request.ConfirmReservationRequest{Date: "2025-03-12", Time: "11:00"},
			wantErr: ErrSlotNotDesired,
		},
		{
			name:    "already confirmed",
			res:     confirmed,
			req:     request.ConfirmReservationRequest{Date: "2025-03-10", Time: "11:00"},
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "unknown reservation",
			id:      uuid.NewString(),
			req:     request.ConfirmReservationRequest{Date: "2025-03-10", Time: "11:00"},
			wantErr: ErrReservationNotFound,
		},
		{
			name:    "malformed id",
			id:      "not-a-uuid",
			req:     request.ConfirmReservationRequest{Date: "2025-03-10", Time: "11:00"},
			wantErr: ErrValidation,
		},
		{
			name:    "malformed date",
			res:     pendingReservation(),
			req:     request.ConfirmReservationRequest{Date: "10/03/2025", Time: "11:00"},
			wantErr: ErrValidation,
		},
		{
			name:      "changed by someone else",
			res:       pendingReservation(),
			req:       request.ConfirmReservationRequest{Date: "2025-03-10", Time: "11:00"},
			updateErr: repository.ErrStatusChanged,
			wantErr:   ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var svc *adminService
			var repo *mockReservationRepo
			id := tt.id
			if tt.res != nil {
				svc, repo, _ = newAdminFixture(tt.res)
				id = tt.res.ID.String()
			} else {
				svc, repo, _ = newAdminFixture()
			}
			repo.updateErr = tt.updateErr

			req := tt.req
			_, err := svc.ConfirmReservation(context.Background(), id, &req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRejectReservation(t *testing.T) {
	res := pendingReservation()
	svc, _, pub := newAdminFixture(res)

	resp, err := svc.RejectReservation(context.Background(), res.ID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != entity.ReservationStatusRejected {
		t.Errorf("expected rejected, got %q", resp.Status)
	}
	if len(pub.subjects) != 1 || pub.subjects[0] != events.ReservationRejected {
		t.Errorf("expected rejected event, got %v", pub.subjects)
	}

	if _, err := svc.RejectReservation(context.Background(), res.ID.String()); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("rejecting twice should fail with ErrInvalidTransition, got %v", err)
	}
}

func TestListReservations(t *testing.T) {
	svc, repo, _ := newAdminFixture()
	repo.all = []*entity.Reservation{pendingReservation(), pendingReservation()}
	repo.total = 12

	req := &request.ListReservationsRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 2, PerPage: 5},
		Status:           "pending",
	}
	resp, err := svc.ListReservations(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Errorf("expected 2 items, got %d", len(resp.Data))
	}
	if resp.Pagination.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", resp.Pagination.TotalPages)
	}
	if repo.lastStatus != entity.ReservationStatusPending || repo.lastLimit != 5 {
		t.Errorf("unexpected repository arguments: status=%q limit=%d", repo.lastStatus, repo.lastLimit)
	}

	req.Status = "archived"
	if _, err := svc.ListReservations(context.Background(), req); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for unknown status, got %v", err)
	}
}

func TestExportReservations(t *testing.T) {
	svc, repo, _ := newAdminFixture()
	res := pendingReservation()
	repo.all = []*entity.Reservation{res}

	data, err := svc.ExportReservations(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer file.Close()

	name, err := file.GetCellValue(exportSheet, "C2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if name != res.CustomerName {
		t.Errorf("expected %q in C2, got %q", res.CustomerName, name)
	}

	slots, _ := file.GetCellValue(exportSheet, "H2")
	if slots != "2025-03-10 11:00, 2025-03-11 14:30" {
		t.Errorf("unexpected desired slots cell: %q", slots)
	}
}

func TestWriteExportRow(t *testing.T) {
	file := excelize.NewFile()
	defer file.Close()
	if _, err := file.NewSheet(exportSheet); err != nil {
		t.Fatalf("new sheet: %v", err)
	}

	tests := []struct {
		name    string
		row     int
		wantErr bool
	}{
		{name: "first row", row: 1},
		{name: "data row", row: 2},
		{name: "row zero", row: 0, wantErr: true},
		{name: "past the sheet limit", row: excelize.TotalRows + 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := writeExportRow(file, tt.row, []any{"a", 2})
			if (err != nil) != tt.wantErr {
				t.Fatalf("writeExportRow(row %d) error = %v, wantErr %v", tt.row, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			cell, _ := excelize.CoordinatesToCellName(2, tt.row)
			got, err := file.GetCellValue(exportSheet, cell)
			if err != nil || got != "2" {
				t.Errorf("%s = %q (err %v), want \"2\"", cell, got, err)
			}
		})
	}
}
