// Package stats aggregates the prediction catalog for the stats page and
// persists periodic snapshots under their own blob key.
package stats

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"winx/internal/catalog"
	"winx/internal/models"
	"winx/internal/storage"
)

type Service struct {
	Catalog *catalog.Store
	Blobs   storage.Store
	Logger  *zap.Logger
}

// Compute aggregates the live catalog.
func (s *Service) Compute() models.StatsSnapshot {
	items := s.Catalog.List()

	snap := models.StatsSnapshot{
		Total:      len(items),
		ByCategory: map[models.Category]int{},
		TakenAt:    time.Now().UTC(),
	}

	confidenceSum := 0
	wins := 0
	for _, p := range items {
		snap.ByCategory[p.Category]++
		if p.Unlocked {
			snap.Unlocked++
		}
		confidenceSum += p.Confidence
		switch p.Result {
		case "win":
			snap.Settled++
			wins++
		case "loss":
			snap.Settled++
		}
	}
	if snap.Total > 0 {
		snap.AvgConfidence = float64(confidenceSum) / float64(snap.Total)
	}
	if snap.Settled > 0 {
		snap.WinRatePct = int(math.Round(float64(wins) / float64(snap.Settled) * 100))
	}
	return snap
}

// Snapshot computes and persists the aggregate.
func (s *Service) Snapshot(ctx context.Context) (models.StatsSnapshot, error) {
	snap := s.Compute()
	raw, err := json.Marshal(snap)
	if err != nil {
		return models.StatsSnapshot{}, err
	}
	if err := s.Blobs.Put(ctx, storage.KeyStats, raw); err != nil {
		return models.StatsSnapshot{}, err
	}
	if s.Logger != nil {
		s.Logger.Info("stats snapshot saved",
			zap.Int("total", snap.Total),
			zap.Int("unlocked", snap.Unlocked),
			zap.Int("win_rate_pct", snap.WinRatePct),
		)
	}
	return snap, nil
}

// Last returns the most recent persisted snapshot, or false when none exists.
func (s *Service) Last(ctx context.Context) (models.StatsSnapshot, bool, error) {
	raw, err := s.Blobs.Get(ctx, storage.KeyStats)
	if errors.Is(err, storage.ErrNotFound) {
		return models.StatsSnapshot{}, false, nil
	}
	if err != nil {
		return models.StatsSnapshot{}, false, err
	}
	var snap models.StatsSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return models.StatsSnapshot{}, false, err
	}
	return snap, true, nil
}
