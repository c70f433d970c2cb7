package preference

import (
	"context"
	"fmt"

	"tldr-summary/internal/domain/entity"
	"tldr-summary/internal/repository"
)

// DBStore reads the preference from the settings table.
type DBStore struct {
	repo repository.SettingsRepository
}

// NewDBStore returns a store over repo.
func NewDBStore(repo repository.SettingsRepository) *DBStore {
	return &DBStore{repo: repo}
}

// Load implements Store.
func (s *DBStore) Load(ctx context.Context) (entity.Preference, error) {
	values, err := s.repo.GetMany(ctx, repository.KeySelectedPlatform, repository.KeySelectedModel)
	if err != nil {
		return entity.Preference{}, fmt.Errorf("load preference: %w", err)
	}
	return normalize(values[repository.KeySelectedPlatform], values[repository.KeySelectedModel]), nil
}

// Save implements Store. An empty field clears the stored value.
func (s *DBStore) Save(ctx context.Context, pref entity.Preference) error {
	if err := s.repo.Set(ctx, repository.KeySelectedPlatform, pref.Provider.String()); err != nil {
		return fmt.Errorf("save preference: %w", err)
	}
	if err := s.repo.Set(ctx, repository.KeySelectedModel, pref.Model); err != nil {
		return fmt.Errorf("save preference: %w", err)
	}
	return nil
}

// Ping checks the underlying connection.
func (s *DBStore) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
