package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	domainRepo "github.com/mbayedev/partstore-api/internal/domain/repository"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the single settings row, creating it with defaults when missing.
func (r *settingsRepository) Get(ctx context.Context) (*entity.CompanySettings, error) {
	var settings entity.CompanySettings
	err := r.db.WithContext(ctx).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = entity.CompanySettings{Name: "My Store", Currency: "XOF"}
		if err := r.db.WithContext(ctx).Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	return &settings, err
}

func (r *settingsRepository) Update(ctx context.Context, settings *entity.CompanySettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new sequence repository
func NewSequenceRepository(db *gorm.DB) domainRepo.SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next atomically increments and returns the named counter. The increment
// runs as a single UPDATE so two documents can never share a reference.
func (r *sequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Sequence{}).
			Where("name = ?", name).
			Update("value", gorm.Expr("value + 1"))
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			seq := entity.Sequence{Name: name, Value: 1}
			if err := tx.Create(&seq).Error; err != nil {
				return err
			}
			value = 1
			return nil
		}

		var seq entity.Sequence
		if err := tx.First(&seq, "name = ?", name).Error; err != nil {
			return err
		}
		value = seq.Value
		return nil
	})
	return value, err
}
