package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/social-events-api/internal/domain"
)

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) Create(ctx context.Context, category domain.Category) (domain.Category, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(domain.Category), args.Error(1)
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id uint) (domain.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Category), args.Error(1)
}

func (m *mockCategoryRepo) List(ctx context.Context, query domain.CategoryQuery) ([]domain.Category, int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]domain.Category), args.Get(1).(int64), args.Error(2)
}

func (m *mockCategoryRepo) Update(ctx context.Context, category domain.Category) (domain.Category, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(domain.Category), args.Error(1)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()
	repo := &mockCategoryRepo{}

	creator := uint(3)
	repo.On("Create", ctx, domain.Category{Name: "Music", CreatedByID: &creator}).
		Return(domain.Category{ID: 1, Name: "Music", CreatedByID: &creator}, nil)

	got, err := NewCategoryService(repo).Create(ctx, 3, domain.Category{Name: "Music"})
	require.NoError(t, err)
	assert.True(t, got.IsOwnedBy(3))
}

func TestCategoryService_CreatorOnly(t *testing.T) {
	ctx := context.Background()
	repo := &mockCategoryRepo{}

	creator := uint(3)
	category := domain.Category{ID: 1, Name: "Music", CreatedByID: &creator}
	repo.On("FindByID", ctx, uint(1)).Return(category, nil)
	repo.On("FindByID", ctx, uint(2)).Return(domain.Category{ID: 2, Name: "Orphan"}, nil)
	repo.On("Delete", ctx, uint(1)).Return(nil)

	svc := NewCategoryService(repo)
	name := "Jazz"

	_, err := svc.Update(ctx, 4, 1, domain.CategoryUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrCategoryEditDenied)

	err = svc.Delete(ctx, 4, 1)
	assert.ErrorIs(t, err, ErrCategoryDeleteDenied)

	err = svc.Delete(ctx, 3, 2)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, svc.Delete(ctx, 3, 1))
}

func TestCategoryService_List(t *testing.T) {
	ctx := context.Background()
	repo := &mockCategoryRepo{}

	query := domain.CategoryQuery{Search: "mu", SortBy: "name", Page: domain.Page{Number: 1, Size: 10}}
	repo.On("List", ctx, query).Return([]domain.Category(nil), int64(0), nil)

	got, err := NewCategoryService(repo).List(ctx, query)
	require.NoError(t, err)
	assert.NotNil(t, got.Results)
	assert.Empty(t, got.Results)
}
