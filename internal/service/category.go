package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/social-events-api/internal/domain"
	"github.com/vietanh2810/social-events-api/internal/repository"
)

var (
	ErrCategoryNotFound   = repository.ErrCategoryNotFound
	ErrCategoryNameExists = repository.ErrCategoryNameExists
)

type CategoryRepository interface {
	Create(ctx context.Context, category domain.Category) (domain.Category, error)
	FindByID(ctx context.Context, id uint) (domain.Category, error)
	List(ctx context.Context, query domain.CategoryQuery) ([]domain.Category, int64, error)
	Update(ctx context.Context, category domain.Category) (domain.Category, error)
	Delete(ctx context.Context, id uint) error
}

type CategoryService struct {
	repo CategoryRepository
}

func NewCategoryService(repo CategoryRepository) *CategoryService {
	return &CategoryService{
		repo: repo,
	}
}

func (s *CategoryService) Create(ctx context.Context, creatorID uint, category domain.Category) (domain.Category, error) {
	category.CreatedByID = &creatorID

	created, err := s.repo.Create(ctx, category)
	if err != nil {
		return domain.Category{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *CategoryService) Get(ctx context.Context, id uint) (domain.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return category, nil
}

func (s *CategoryService) List(ctx context.Context, query domain.CategoryQuery) (domain.Paginated[domain.Category], error) {
	categories, count, err := s.repo.List(ctx, query)
	if err != nil {
		return domain.Paginated[domain.Category]{}, fmt.Errorf("s.repo.List -> %w", err)
	}

	return domain.NewPaginated(categories, count, query.Page), nil
}

func (s *CategoryService) Update(ctx context.Context, userID, id uint, upd domain.CategoryUpdate) (domain.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return domain.Category{}, err
	}

	if !category.IsOwnedBy(userID) {
		return domain.Category{}, ErrCategoryEditDenied
	}

	category.Apply(upd)

	updated, err := s.repo.Update(ctx, category)
	if err != nil {
		return domain.Category{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *CategoryService) Delete(ctx context.Context, userID, id uint) error {
	category, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if !category.IsOwnedBy(userID) {
		return ErrCategoryDeleteDenied
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
