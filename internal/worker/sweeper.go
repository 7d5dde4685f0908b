// Package worker runs background maintenance jobs.
package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"prebook/pkg/storage"
	"prebook/pkg/utils"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// StagingSweeper deletes staged photos whose submission never completed, for example
// because the process died between upload and promotion.
type StagingSweeper struct {
	storage storage.ObjectStorage
	ttl     time.Duration
	now     func() time.Time
	log     *zap.Logger
}

// MinStagingTTL is the youngest a staged photo can be when swept. A submit uploads,
// inserts and promotes well inside this window.
const MinStagingTTL = 10 * time.Minute

// NewStagingSweeper raises ttl to MinStagingTTL so a zero or tiny setting cannot
// delete photos of a submit that is still in flight.
func NewStagingSweeper(store storage.ObjectStorage, ttl time.Duration, log *zap.Logger) *StagingSweeper {
	log = log.With(zap.String("worker", "staging_sweeper"))
	if ttl < MinStagingTTL {
		log.Warn("Staging TTL below minimum, using minimum",
			zap.Duration("configured", ttl),
			zap.Duration("minimum", MinStagingTTL),
		)
		ttl = MinStagingTTL
	}
	return &StagingSweeper{
		storage: store,
		ttl:     ttl,
		now:     time.Now,
		log:     log,
	}
}

// Start schedules Sweep every interval. Stop the returned scheduler on shutdown.
func (s *StagingSweeper) Start(interval time.Duration) (*gocron.Scheduler, error) {
	scheduler := gocron.NewScheduler(time.UTC)

	_, err := scheduler.Every(interval).SingletonMode().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()

		removed, err := s.Sweep(ctx)
		if err != nil {
			s.log.Error("Staging sweep failed", zap.Error(err))
			return
		}
		if removed > 0 {
			s.log.Info("Staging sweep removed orphaned photos", zap.Int("removed", removed))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule staging sweep: %w", err)
	}

	scheduler.StartAsync()
	s.log.Info("Staging sweeper started", zap.Duration("interval", interval), zap.Duration("ttl", s.ttl))

	return scheduler, nil
}

// Sweep deletes staged objects older than the TTL and reports how many were removed.
// A failed delete is logged and the sweep continues.
func (s *StagingSweeper) Sweep(ctx context.Context) (int, error) {
	objects, err := s.storage.List(ctx, utils.StagingPrefix)
	if err != nil {
		return 0, fmt.Errorf("list staged photos: %w", err)
	}

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for _, obj := range objects {
		if !strings.HasPrefix(obj.Key, utils.StagingPrefix) || !obj.LastModified.Before(cutoff) {
			continue
		}
		if err := s.storage.Delete(ctx, obj.Key); err != nil {
			s.log.Warn("Failed to delete staged photo", zap.Error(err), zap.String("key", obj.Key))
			continue
		}
		removed++
	}

	return removed, nil
}
