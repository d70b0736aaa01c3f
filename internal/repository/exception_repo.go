package repository

import (
	"context"
	"errors"

	"backoffice/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExceptionRepository interface {
	Create(ctx context.Context, record *entity.ExceptionRecord) error
	List(ctx context.Context, limit, offset int) ([]entity.ExceptionRecord, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ExceptionRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type exceptionRepository struct {
	db *gorm.DB
}

func NewExceptionRepository(db *gorm.DB) ExceptionRepository {
	return &exceptionRepository{db: db}
}

func (r *exceptionRepository) Create(ctx context.Context, record *entity.ExceptionRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *exceptionRepository) List(ctx context.Context, limit, offset int) ([]entity.ExceptionRecord, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.ExceptionRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []entity.ExceptionRecord
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *exceptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ExceptionRecord, error) {
	var record entity.ExceptionRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *exceptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.ExceptionRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
