package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/compliance-dashboard/internal/models"
)

type SourceRepository interface {
	FindByName(ctx context.Context, name string) (*models.Source, error)
	Upsert(ctx context.Context, name string, content string) error
	ListNames(ctx context.Context) ([]string, error)
}

type sourceRepository struct {
	db *gorm.DB
}

func NewSourceRepository(db *gorm.DB) SourceRepository {
	return &sourceRepository{db: db}
}

// FindByName implements SourceRepository. A missing row wraps
// gorm.ErrRecordNotFound.
func (r *sourceRepository) FindByName(ctx context.Context, name string) (*models.Source, error) {
	var source models.Source
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&source).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("source not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find source: %w", err)
	}

	return &source, nil
}

// Upsert implements SourceRepository.
func (r *sourceRepository) Upsert(ctx context.Context, name string, content string) error {
	now := time.Now()
	source := models.Source{
		ID:        uuid.New(),
		Name:      name,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
	}).Create(&source).Error
	if err != nil {
		return fmt.Errorf("failed to upsert source: %w", err)
	}

	return nil
}

// ListNames implements SourceRepository.
func (r *sourceRepository) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).Model(&models.Source{}).Order("name ASC").Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	return names, nil
}
