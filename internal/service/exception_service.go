package service

import (
	"context"
	"errors"

	"backoffice/internal/entity"
	"backoffice/internal/metrics"
	"backoffice/internal/repository"

	"github.com/google/uuid"
)

type ExceptionService struct {
	exceptions repository.ExceptionRepository
}

func NewExceptionService(exceptions repository.ExceptionRepository) *ExceptionService {
	return &ExceptionService{exceptions: exceptions}
}

func (s *ExceptionService) Record(ctx context.Context, record *entity.ExceptionRecord) error {
	if err := s.exceptions.Create(ctx, record); err != nil {
		return err
	}
	metrics.RecordedExceptions.Inc()
	return nil
}

func (s *ExceptionService) List(ctx context.Context, limit, offset int) ([]entity.ExceptionRecord, int64, error) {
	return s.exceptions.List(ctx, limit, offset)
}

func (s *ExceptionService) Get(ctx context.Context, id uuid.UUID) (*entity.ExceptionRecord, error) {
	record, err := s.exceptions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrExceptionNotFound
	}
	return record, nil
}

func (s *ExceptionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.exceptions.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExceptionNotFound
		}
		return err
	}
	return nil
}
