package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/vietanh2810/social-events-api/internal/domain"
	"github.com/vietanh2810/social-events-api/internal/repository/dao"
)

var (
	ErrEventNotFound   = dao.ErrEventNotFound
	ErrEventSlugExists = dao.ErrEventSlugExists
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindBySlug(ctx context.Context, slug string) (dao.Event, error)
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	Update(ctx context.Context, event dao.Event) (dao.Event, error)
	UpdateImage(ctx context.Context, id uint, image string) (dao.Event, error)
	Delete(ctx context.Context, id uint) error
	ToggleFavorite(ctx context.Context, eventID, userID uint) (bool, error)
	Search(ctx context.Context, requesterID uint, search dao.EventSearch, offset, limit int) ([]dao.Event, int64, error)
}

type EventRepository struct {
	dao EventDAO
	now func() time.Time
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
		now: time.Now,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, eventDomainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return eventDaoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return eventDaoToDomain(found), nil
}

func (r *EventRepository) FindBySlug(ctx context.Context, slug string) (domain.Event, error) {
	found, err := r.dao.FindBySlug(ctx, slug)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindBySlug -> %w", err)
	}

	return eventDaoToDomain(found), nil
}

// SlugExists reports whether another event than excludeID already uses slug.
func (r *EventRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	exists, err := r.dao.SlugExists(ctx, slug, excludeID)
	if err != nil {
		return false, fmt.Errorf("r.dao.SlugExists -> %w", err)
	}

	return exists, nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := r.dao.Update(ctx, eventDomainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return eventDaoToDomain(updated), nil
}

func (r *EventRepository) UpdateImage(ctx context.Context, id uint, image string) (domain.Event, error) {
	updated, err := r.dao.UpdateImage(ctx, id, image)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.UpdateImage -> %w", err)
	}

	return eventDaoToDomain(updated), nil
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EventRepository) ToggleFavorite(ctx context.Context, eventID, userID uint) (bool, error) {
	added, err := r.dao.ToggleFavorite(ctx, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("r.dao.ToggleFavorite -> %w", err)
	}

	return added, nil
}

// Search expects filter.OrderBy to be valid or empty.
func (r *EventRepository) Search(ctx context.Context, requesterID uint, filter domain.EventFilter, page domain.Page) ([]domain.Event, int64, error) {
	field, desc, ok := domain.ParseEventOrder(filter.OrderBy)
	if !ok {
		field, desc, _ = domain.ParseEventOrder(domain.DefaultEventOrder)
	}

	search := dao.EventSearch{
		Query:         filter.Query,
		CategoryID:    filter.CategoryID,
		DateFrom:      utcPtr(filter.DateFrom),
		DateTo:        utcPtr(filter.DateTo),
		PriceMin:      filter.PriceMin,
		PriceMax:      filter.PriceMax,
		Status:        filter.Status,
		Location:      filter.Location,
		AvailableOnly: filter.AvailableOnly,
		FavoritesOnly: filter.FavoritesOnly,
		OrganizerID:   filter.OrganizerID,
		OrderField:    field,
		OrderDesc:     desc,
		Now:           r.now().UTC(),
	}

	events, count, err := r.dao.Search(ctx, requesterID, search, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.Search -> %w", err)
	}

	result := make([]domain.Event, 0, len(events))
	for _, e := range events {
		result = append(result, eventDaoToDomain(e))
	}

	return result, count, nil
}

func eventDaoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:          e.ID,
		Title:       e.Title,
		Slug:        e.Slug,
		Description: e.Description,
		OrganizerID: e.OrganizerID,
		CategoryID:  e.CategoryID,
		Location:    e.Location,
		Venue:       e.Venue,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Capacity:    e.Capacity,
		Price:       e.Price,
		Image:       e.Image,
		Status:      e.Status,
		IsPrivate:   e.IsPrivate,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func eventDomainToDao(e domain.Event) dao.Event {
	return dao.Event{
		ID:          e.ID,
		Title:       e.Title,
		Slug:        e.Slug,
		Description: e.Description,
		OrganizerID: e.OrganizerID,
		CategoryID:  e.CategoryID,
		Location:    e.Location,
		Venue:       e.Venue,
		StartDate:   e.StartDate.UTC(),
		EndDate:     e.EndDate.UTC(),
		Capacity:    e.Capacity,
		Price:       e.Price,
		Image:       e.Image,
		Status:      e.Status,
		IsPrivate:   e.IsPrivate,
	}
}
