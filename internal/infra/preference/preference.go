// Package preference provides the stores the summary service reads the
// operator's platform and model choice from.
package preference

import (
	"context"
	"errors"
	"strings"

	"tldr-summary/internal/domain/entity"
)

// ErrReadOnly is returned by Save on stores that cannot be written.
var ErrReadOnly = errors.New("preference store is read-only")

// Store reads and, where supported, writes the stored preference.
type Store interface {
	Load(ctx context.Context) (entity.Preference, error)
	Save(ctx context.Context, pref entity.Preference) error
}

func normalize(platform, model string) entity.Preference {
	return entity.Preference{
		Provider: entity.ProviderSlug(strings.ToLower(strings.TrimSpace(platform))),
		Model:    strings.TrimSpace(model),
	}
}
