package repository

import (
	"context"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
)

// SettingsRepository defines the interface for company settings operations
type SettingsRepository interface {
	// Get returns the single settings row, creating it with defaults when
	// missing.
	Get(ctx context.Context) (*entity.CompanySettings, error)
	Update(ctx context.Context, settings *entity.CompanySettings) error
}

// SequenceRepository defines the interface for document reference counters
type SequenceRepository interface {
	// Next atomically increments and returns the named counter.
	Next(ctx context.Context, name string) (int64, error)
}
