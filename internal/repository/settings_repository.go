package repository

import (
	"context"
)

// Settings keys holding the operator's AI selection.
const (
	KeySelectedPlatform = "selected_ai_platform"
	KeySelectedModel    = "selected_ai_model"
)

// SettingsRepository is a key/value view of the settings table.
type SettingsRepository interface {
	// GetMany returns the stored values for keys. Missing keys are absent from the map.
	GetMany(ctx context.Context, keys ...string) (map[string]string, error)
	// Set upserts one value. An empty value deletes the key.
	Set(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
}
