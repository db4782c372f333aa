// Package catalog owns the prediction collection. It is the only writer of
// the winx_predictions blob: every mutation re-serializes the whole ordered
// collection and overwrites the durable copy.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"winx/internal/models"
	"winx/internal/storage"
)

// ErrNotFound is returned when an operation references an unknown record.
var ErrNotFound = errors.New("catalog: prediction not found")

// Store holds the ordered prediction collection in memory and mirrors it to
// the blob substrate on every mutation. Insertion order is display order.
type Store struct {
	mu     sync.Mutex
	items  []models.Prediction
	blobs  storage.Store
	logger *zap.Logger
}

// New loads the collection from durable storage. When no durable copy
// exists and seed is non-nil, the catalog starts from a generated sample
// set and persists it immediately.
func New(ctx context.Context, blobs storage.Store, seed *Seeder, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{blobs: blobs, logger: logger}

	raw, err := blobs.Get(ctx, storage.KeyPredictions)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		if seed != nil {
			s.items = seed.Generate()
			if err := s.persist(ctx); err != nil {
				return nil, err
			}
			logger.Info("catalog seeded", zap.Int("predictions", len(s.items)))
		}
	case err != nil:
		return nil, err
	default:
		if err := json.Unmarshal(raw, &s.items); err != nil {
			return nil, err
		}
		logger.Info("catalog loaded", zap.Int("predictions", len(s.items)))
	}

	return s, nil
}

// persist writes the full collection. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.items)
	if err != nil {
		return err
	}
	return s.blobs.Put(ctx, storage.KeyPredictions, raw)
}

func (s *Store) nextID() int64 {
	var max int64
	for _, p := range s.items {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

// Create appends a new record. The identifier is assigned here and Unlocked
// is forced to false regardless of what the caller supplied. Field values
// are stored as given; constraining category/bet-type input is the
// presentation layer's job.
func (s *Store) Create(ctx context.Context, p models.Prediction) (models.Prediction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextID()
	p.Unlocked = false
	s.items = append(s.items, p)
	if err := s.persist(ctx); err != nil {
		return models.Prediction{}, err
	}
	s.logger.Debug("prediction created", zap.Int64("id", p.ID))
	return p, nil
}

// Get returns the record with the given id.
func (s *Store) Get(id int64) (models.Prediction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.items {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Prediction{}, ErrNotFound
}

// Update merges the non-nil patch fields onto the existing record.
func (s *Store) Update(ctx context.Context, id int64, patch models.PredictionPatch) (models.Prediction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		applyPatch(&s.items[i], patch)
		if err := s.persist(ctx); err != nil {
			return models.Prediction{}, err
		}
		s.logger.Debug("prediction updated", zap.Int64("id", id))
		return s.items[i], nil
	}
	return models.Prediction{}, ErrNotFound
}

// Delete removes the record if present. Deleting an unknown id is a silent
// no-op; either way the collection is persisted.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, p := range s.items {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.items = kept
	return s.persist(ctx)
}

// List returns the full collection in stored order.
func (s *Store) List() []models.Prediction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Prediction, len(s.items))
	copy(out, s.items)
	return out
}

// Filter returns the records of one category in stored order.
// models.CategoryAll passes everything through.
func (s *Store) Filter(category models.Category) []models.Prediction {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category == models.CategoryAll {
		out := make([]models.Prediction, len(s.items))
		copy(out, s.items)
		return out
	}
	out := make([]models.Prediction, 0)
	for _, p := range s.items {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Unlock marks the record visible. Unlocking an already-unlocked record
// succeeds without change.
func (s *Store) Unlock(ctx context.Context, id int64) (models.Prediction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if s.items[i].Unlocked {
			return s.items[i], nil
		}
		s.items[i].Unlocked = true
		if err := s.persist(ctx); err != nil {
			return models.Prediction{}, err
		}
		s.logger.Debug("prediction unlocked", zap.Int64("id", id))
		return s.items[i], nil
	}
	return models.Prediction{}, ErrNotFound
}

func applyPatch(p *models.Prediction, patch models.PredictionPatch) {
	if patch.TeamA != nil {
		p.TeamA = *patch.TeamA
	}
	if patch.TeamB != nil {
		p.TeamB = *patch.TeamB
	}
	if patch.League != nil {
		p.League = *patch.League
	}
	if patch.Date != nil {
		p.Date = *patch.Date
	}
	if patch.Time != nil {
		p.Time = *patch.Time
	}
	if patch.Confidence != nil {
		p.Confidence = *patch.Confidence
	}
	if patch.Odds != nil {
		p.Odds = *patch.Odds
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.BetType != nil {
		p.BetType = *patch.BetType
	}
	if patch.Outcome != nil {
		p.Outcome = *patch.Outcome
	}
	if patch.Analysis != nil {
		p.Analysis = *patch.Analysis
	}
	if patch.GemCost != nil {
		p.GemCost = *patch.GemCost
	}
	if patch.TeamALogo != nil {
		p.TeamALogo = *patch.TeamALogo
	}
	if patch.TeamBLogo != nil {
		p.TeamBLogo = *patch.TeamBLogo
	}
	if patch.Result != nil {
		p.Result = *patch.Result
	}
}
