package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"prebook/pkg/storage"

	"go.uber.org/zap"
)

type fakeStorage struct {
	objects   []storage.ObjectInfo
	listErr   error
	deleteErr map[string]error
	deleted   []string
}

func (f *fakeStorage) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	return key, nil
}

func (f *fakeStorage) Promote(ctx context.Context, from, to string) error { return nil }

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	if err := f.deleteErr[key]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) List(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	return f.objects, f.listErr
}

func TestStagingSweeper_Sweep(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeStorage{
		objects: []storage.ObjectInfo{
			{Key: "staging/1_old_front", LastModified: now.Add(-2 * time.Hour)},
			{Key: "staging/2_fresh_front", LastModified: now.Add(-5 * time.Minute)},
			{Key: "staging/3_old_closed", LastModified: now.Add(-3 * time.Hour)},
			{Key: "staging/4_locked_closed", LastModified: now.Add(-3 * time.Hour)},
		},
		deleteErr: map[string]error{"staging/4_locked_closed": errors.New("access denied")},
	}

	sweeper := NewStagingSweeper(store, time.Hour, zap.NewNop())
	sweeper.now = func() time.Time { return now }

	removed, err := sweeper.Sweep(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}
	want := []string{"staging/1_old_front", "staging/3_old_closed"}
	if len(store.deleted) != len(want) {
		t.Fatalf("expected %v deleted, got %v", want, store.deleted)
	}
	for i := range want {
		if store.deleted[i] != want[i] {
			t.Errorf("deleted[%d] = %q, want %q", i, store.deleted[i], want[i])
		}
	}
}

func TestStagingSweeper_ListError(t *testing.T) {
	store := &fakeStorage{listErr: errors.New("bucket unavailable")}
	sweeper := NewStagingSweeper(store, time.Hour, zap.NewNop())

	if _, err := sweeper.Sweep(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewStagingSweeper_TTLFloor(t *testing.T) {
	tests := []struct {
		name string
		ttl  time.Duration
		want time.Duration
	}{
		{"zero", 0, MinStagingTTL},
		{"negative", -time.Hour, MinStagingTTL},
		{"below minimum", time.Minute, MinStagingTTL},
		{"at minimum", MinStagingTTL, MinStagingTTL},
		{"above minimum", 2 * time.Hour, 2 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sweeper := NewStagingSweeper(&fakeStorage{}, tt.ttl, zap.NewNop())
			if sweeper.ttl != tt.want {
				t.Errorf("ttl = %v, want %v", sweeper.ttl, tt.want)
			}
		})
	}
}

func TestStagingSweeper_ZeroTTLKeepsInFlightPhotos(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeStorage{
		objects: []storage.ObjectInfo{
			{Key: "staging/1_inflight_front", LastModified: now.Add(-time.Minute)},
			{Key: "staging/2_abandoned_front", LastModified: now.Add(-time.Hour)},
		},
	}

	sweeper := NewStagingSweeper(store, 0, zap.NewNop())
	sweeper.now = func() time.Time { return now }

	removed, err := sweeper.Sweep(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 1 || len(store.deleted) != 1 || store.deleted[0] != "staging/2_abandoned_front" {
		t.Errorf("expected only the abandoned photo deleted, got %v", store.deleted)
	}
}
