package service

import (
	"context"
	"testing"

	"backoffice/internal/entity"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExceptionRepo struct {
	records map[uuid.UUID]*entity.ExceptionRecord
}

func (r *fakeExceptionRepo) Create(_ context.Context, record *entity.ExceptionRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	clone := *record
	r.records[record.ID] = &clone
	return nil
}

func (r *fakeExceptionRepo) List(_ context.Context, _, _ int) ([]entity.ExceptionRecord, int64, error) {
	records := make([]entity.ExceptionRecord, 0, len(r.records))
	for _, record := range r.records {
		records = append(records, *record)
	}
	return records, int64(len(records)), nil
}

func (r *fakeExceptionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.ExceptionRecord, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	clone := *record
	return &clone, nil
}

func (r *fakeExceptionRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.records[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func TestExceptionService(t *testing.T) {
	repo := &fakeExceptionRepo{records: make(map[uuid.UUID]*entity.ExceptionRecord)}
	svc := NewExceptionService(repo)
	ctx := context.Background()

	record := &entity.ExceptionRecord{Type: "*errors.errorString", Message: "boom", Method: "GET", Path: "/admin/settings/users", Status: 500}
	require.NoError(t, svc.Record(ctx, record))
	require.NotEqual(t, uuid.Nil, record.ID)

	records, total, err := svc.List(ctx, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "boom", records[0].Message)

	found, err := svc.Get(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, "/admin/settings/users", found.Path)

	require.NoError(t, svc.Delete(ctx, record.ID))
	_, err = svc.Get(ctx, record.ID)
	assert.ErrorIs(t, err, ErrExceptionNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, record.ID), ErrExceptionNotFound)
}
