// Package prefs persists the ancillary UI blobs (theme flag, team logos,
// profile image, ad-watch counters) through the same substrate as the two
// record stores, one key per concern.
package prefs

import (
	"context"
	"encoding/json"
	"errors"

	"winx/internal/models"
	"winx/internal/storage"
)

// Store reads and writes the preference blobs. Unlike the record stores it
// keeps nothing in memory: each access goes straight to the substrate.
type Store struct {
	blobs storage.Store
}

func New(blobs storage.Store) *Store {
	return &Store{blobs: blobs}
}

// DarkMode defaults to true when no preference was saved yet.
func (s *Store) DarkMode(ctx context.Context) (bool, error) {
	raw, err := s.blobs.Get(ctx, storage.KeyDarkMode)
	if errors.Is(err, storage.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	var dark bool
	if err := json.Unmarshal(raw, &dark); err != nil {
		return false, err
	}
	return dark, nil
}

func (s *Store) SetDarkMode(ctx context.Context, dark bool) error {
	raw, err := json.Marshal(dark)
	if err != nil {
		return err
	}
	return s.blobs.Put(ctx, storage.KeyDarkMode, raw)
}

func (s *Store) TeamLogos(ctx context.Context) (models.TeamLogos, error) {
	raw, err := s.blobs.Get(ctx, storage.KeyTeamLogos)
	if errors.Is(err, storage.ErrNotFound) {
		return models.TeamLogos{}, nil
	}
	if err != nil {
		return nil, err
	}
	var logos models.TeamLogos
	if err := json.Unmarshal(raw, &logos); err != nil {
		return nil, err
	}
	return logos, nil
}

func (s *Store) SetTeamLogos(ctx context.Context, logos models.TeamLogos) error {
	raw, err := json.Marshal(logos)
	if err != nil {
		return err
	}
	return s.blobs.Put(ctx, storage.KeyTeamLogos, raw)
}

// ProfileImage returns the stored data URL, or "" when none was uploaded.
func (s *Store) ProfileImage(ctx context.Context) (string, error) {
	raw, err := s.blobs.Get(ctx, storage.KeyProfileImage)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	var image string
	if err := json.Unmarshal(raw, &image); err != nil {
		return "", err
	}
	return image, nil
}

func (s *Store) SetProfileImage(ctx context.Context, dataURL string) error {
	raw, err := json.Marshal(dataURL)
	if err != nil {
		return err
	}
	return s.blobs.Put(ctx, storage.KeyProfileImage, raw)
}

func (s *Store) AdState(ctx context.Context) (models.AdState, error) {
	raw, err := s.blobs.Get(ctx, storage.KeyAdData)
	if errors.Is(err, storage.ErrNotFound) {
		return models.AdState{}, nil
	}
	if err != nil {
		return models.AdState{}, err
	}
	var state models.AdState
	if err := json.Unmarshal(raw, &state); err != nil {
		return models.AdState{}, err
	}
	return state, nil
}

func (s *Store) SetAdState(ctx context.Context, state models.AdState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.blobs.Put(ctx, storage.KeyAdData, raw)
}
