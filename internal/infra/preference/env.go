package preference

import (
	"context"
	"os"

	"tldr-summary/internal/domain/entity"
)

// Environment variables read by EnvStore.
const (
	EnvPlatform = "TLDR_AI_PLATFORM"
	EnvModel    = "TLDR_AI_MODEL"
)

// EnvStore reads the preference from the environment on every Load.
type EnvStore struct{}

// Load implements Store.
func (EnvStore) Load(context.Context) (entity.Preference, error) {
	return normalize(os.Getenv(EnvPlatform), os.Getenv(EnvModel)), nil
}

// Save implements Store. The environment is not writable.
func (EnvStore) Save(context.Context, entity.Preference) error {
	return ErrReadOnly
}
