package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStorage_UploadPromoteDelete(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	s, err := NewLocalStorage(root, "photos")
	if err != nil {
		t.Fatalf("NewLocalStorage() error = %v", err)
	}

	path, err := s.Upload(ctx, "staging/1_ab_front", "image/png", []byte("png"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if path != "staging/1_ab_front" {
		t.Errorf("Upload() path = %v, want %v", path, "staging/1_ab_front")
	}

	staged, err := s.List(ctx, "staging/")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(staged) != 1 || staged[0].Key != "staging/1_ab_front" || staged[0].Size != 3 {
		t.Errorf("List() = %+v, want one 3 byte staging object", staged)
	}

	if err := s.Promote(ctx, "staging/1_ab_front", "reservation-photos/1_ab_front"); err != nil {
		t.Fatalf("Promote() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "photos", "reservation-photos", "1_ab_front")); err != nil {
		t.Errorf("promoted file missing: %v", err)
	}
	if staged, _ := s.List(ctx, "staging/"); len(staged) != 0 {
		t.Errorf("staging still holds %d objects after promote", len(staged))
	}

	if err := s.Delete(ctx, "reservation-photos/1_ab_front"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	// deleting twice is not an error
	if err := s.Delete(ctx, "reservation-photos/1_ab_front"); err != nil {
		t.Errorf("second Delete() error = %v", err)
	}
}

func TestLocalStorage_PromoteMissing(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "photos")
	if err != nil {
		t.Fatalf("NewLocalStorage() error = %v", err)
	}

	err = s.Promote(context.Background(), "staging/missing", "reservation-photos/missing")
	if !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("Promote() error = %v, want ErrObjectNotFound", err)
	}
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "photos")
	if err != nil {
		t.Fatalf("NewLocalStorage() error = %v", err)
	}

	for _, key := range []string{"../outside", "/etc/passwd", ""} {
		if _, err := s.Upload(context.Background(), key, "image/png", []byte("x")); err == nil {
			t.Errorf("Upload(%q) error = nil, want rejection", key)
		}
	}
}
