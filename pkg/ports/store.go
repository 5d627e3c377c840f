package ports

import (
	"context"

	"github.com/aretw0/epigraph/pkg/domain"
)

// ModelStore persists compiled models keyed by parameter fingerprint, so that
// solver workers can fetch a model instead of recompiling it.
type ModelStore interface {
	// Save persists the model under key.
	Save(ctx context.Context, key string, model *domain.Model) error

	// Load retrieves the model for key.
	// Returns domain.ErrModelNotFound if the key does not exist.
	Load(ctx context.Context, key string) (*domain.Model, error)

	// Delete removes the model stored under key.
	Delete(ctx context.Context, key string) error

	// List returns the keys of all stored models.
	List(ctx context.Context) ([]string, error)
}
