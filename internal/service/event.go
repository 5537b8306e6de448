package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/vietanh2810/social-events-api/internal/domain"
	"github.com/vietanh2810/social-events-api/internal/repository"
)

var (
	ErrEventNotFound = repository.ErrEventNotFound

	errUnknownCategory = domain.NewValidationError("Invalid category: object does not exist.")
)

const eventImageDir = "event_images"

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindBySlug(ctx context.Context, slug string) (domain.Event, error)
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	UpdateImage(ctx context.Context, id uint, image string) (domain.Event, error)
	Delete(ctx context.Context, id uint) error
	ToggleFavorite(ctx context.Context, eventID, userID uint) (bool, error)
	Search(ctx context.Context, requesterID uint, filter domain.EventFilter, page domain.Page) ([]domain.Event, int64, error)
}

type EventCategoryFinder interface {
	FindByID(ctx context.Context, id uint) (domain.Category, error)
}

type EventRegistrationLister interface {
	ListByEvent(ctx context.Context, eventID uint, page domain.Page) ([]domain.Registration, int64, error)
}

type ImageStorage interface {
	Save(ctx context.Context, dir, ext string, r io.Reader) (string, error)
	Delete(ctx context.Context, publicPath string) error
}

// ImageUpload is an uploaded file and its declared size.
type ImageUpload struct {
	File io.ReadSeeker
	Size int64
}

type EventService struct {
	repo          EventRepository
	categories    EventCategoryFinder
	registrations EventRegistrationLister
	storage       ImageStorage
	validator     *EventValidator
}

func NewEventService(
	repo EventRepository,
	categories EventCategoryFinder,
	registrations EventRegistrationLister,
	storage ImageStorage,
	maxImageSize int64,
) *EventService {
	return &EventService{
		repo:          repo,
		categories:    categories,
		registrations: registrations,
		storage:       storage,
		validator:     NewEventValidator(repo, maxImageSize),
	}
}

// Get resolves ref as an id when it is numeric and as a slug otherwise.
// Events the requester may not see are reported as not found.
func (s *EventService) Get(ctx context.Context, requesterID uint, ref string) (domain.Event, error) {
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		return s.GetByID(ctx, requesterID, uint(id))
	}

	event, err := s.repo.FindBySlug(ctx, ref)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindBySlug -> %w", err)
	}

	return visible(event, requesterID)
}

func (s *EventService) GetByID(ctx context.Context, requesterID, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return visible(event, requesterID)
}

func visible(event domain.Event, requesterID uint) (domain.Event, error) {
	if !event.IsVisibleTo(requesterID) {
		return domain.Event{}, ErrEventNotFound
	}

	return event, nil
}

func (s *EventService) Search(ctx context.Context, requesterID uint, filter domain.EventFilter, page domain.Page) (domain.Paginated[domain.Event], error) {
	if _, _, ok := domain.ParseEventOrder(filter.OrderBy); !ok {
		return domain.Paginated[domain.Event]{}, domain.NewValidationError(fmt.Sprintf("Invalid ordering field: %s", filter.OrderBy))
	}

	events, count, err := s.repo.Search(ctx, requesterID, filter, page)
	if err != nil {
		return domain.Paginated[domain.Event]{}, fmt.Errorf("s.repo.Search -> %w", err)
	}

	return domain.NewPaginated(events, count, page), nil
}

func (s *EventService) Create(ctx context.Context, organizerID uint, event domain.Event, image *ImageUpload) (domain.Event, error) {
	if event.Status == "" {
		event.Status = domain.EventStatusDraft
	}

	if err := s.checkCategory(ctx, event.CategoryID); err != nil {
		return domain.Event{}, err
	}

	candidate := candidateOf(event)
	if image != nil {
		candidate.Image = image.File
		candidate.ImageSize = image.Size
	}

	checked, err := s.validator.Validate(ctx, candidate, true)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.validator.Validate -> %w", err)
	}

	event.Slug = checked.Slug
	event.OrganizerID = organizerID

	if image != nil {
		event.Image, err = s.storage.Save(ctx, eventImageDir, checked.ImageExt, image.File)
		if err != nil {
			return domain.Event{}, fmt.Errorf("s.storage.Save -> %w", err)
		}
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		s.removeImage(ctx, event.Image)
		if errors.Is(err, repository.ErrEventSlugExists) {
			return domain.Event{}, errSlugTaken
		}

		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) Update(ctx context.Context, userID uint, ref string, upd domain.EventUpdate) (domain.Event, error) {
	event, err := s.organizedEvent(ctx, userID, ref)
	if err != nil {
		return domain.Event{}, err
	}

	if !upd.ClearCategory {
		if err = s.checkCategory(ctx, upd.CategoryID); err != nil {
			return domain.Event{}, err
		}
	}

	startChanged := upd.StartDate != nil && !upd.StartDate.Equal(event.StartDate)
	event.Apply(upd)

	candidate := candidateOf(event)
	candidate.StartChanged = startChanged

	checked, err := s.validator.Validate(ctx, candidate, false)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.validator.Validate -> %w", err)
	}
	event.Slug = checked.Slug

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		if errors.Is(err, repository.ErrEventSlugExists) {
			return domain.Event{}, errSlugTaken
		}

		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *EventService) Delete(ctx context.Context, userID uint, ref string) error {
	event, err := s.organizedEvent(ctx, userID, ref)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, event.ID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	s.removeImage(ctx, event.Image)

	return nil
}

// UploadImage replaces the image of the event and removes the previous file.
func (s *EventService) UploadImage(ctx context.Context, userID uint, ref string, image ImageUpload) (domain.Event, error) {
	event, err := s.organizedEvent(ctx, userID, ref)
	if err != nil {
		return domain.Event{}, err
	}

	ext, err := s.validator.ValidateImage(image.File, image.Size)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.validator.ValidateImage -> %w", err)
	}

	path, err := s.storage.Save(ctx, eventImageDir, ext, image.File)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.storage.Save -> %w", err)
	}

	updated, err := s.repo.UpdateImage(ctx, event.ID, path)
	if err != nil {
		s.removeImage(ctx, path)
		return domain.Event{}, fmt.Errorf("s.repo.UpdateImage -> %w", err)
	}

	s.removeImage(ctx, event.Image)

	return updated, nil
}

// ToggleFavorite reports whether the event is a favorite of userID afterwards.
func (s *EventService) ToggleFavorite(ctx context.Context, userID uint, ref string) (bool, error) {
	event, err := s.Get(ctx, userID, ref)
	if err != nil {
		return false, err
	}

	added, err := s.repo.ToggleFavorite(ctx, event.ID, userID)
	if err != nil {
		return false, fmt.Errorf("s.repo.ToggleFavorite -> %w", err)
	}

	return added, nil
}

func (s *EventService) Registrations(ctx context.Context, userID uint, ref string, page domain.Page) (domain.Paginated[domain.Registration], error) {
	event, err := s.Get(ctx, userID, ref)
	if err != nil {
		return domain.Paginated[domain.Registration]{}, err
	}

	if !event.IsOrganizedBy(userID) {
		return domain.Paginated[domain.Registration]{}, ErrRegistrationsReserved
	}

	regs, count, err := s.registrations.ListByEvent(ctx, event.ID, page)
	if err != nil {
		return domain.Paginated[domain.Registration]{}, fmt.Errorf("s.registrations.ListByEvent -> %w", err)
	}

	return domain.NewPaginated(regs, count, page), nil
}

func (s *EventService) organizedEvent(ctx context.Context, userID uint, ref string) (domain.Event, error) {
	event, err := s.Get(ctx, userID, ref)
	if err != nil {
		return domain.Event{}, err
	}

	if !event.IsOrganizedBy(userID) {
		return domain.Event{}, ErrNotEventOrganizer
	}

	return event, nil
}

func (s *EventService) checkCategory(ctx context.Context, categoryID *uint) error {
	if categoryID == nil {
		return nil
	}

	if _, err := s.categories.FindByID(ctx, *categoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return errUnknownCategory
		}

		return fmt.Errorf("s.categories.FindByID -> %w", err)
	}

	return nil
}

func (s *EventService) removeImage(ctx context.Context, path string) {
	if path == "" {
		return
	}

	if err := s.storage.Delete(ctx, path); err != nil {
		zap.L().Warn("failed to remove event image", zap.String("path", path), zap.Error(err))
	}
}

func candidateOf(event domain.Event) EventCandidate {
	return EventCandidate{
		ID:        event.ID,
		Title:     event.Title,
		StartDate: event.StartDate,
		EndDate:   event.EndDate,
		Status:    event.Status,
		Capacity:  event.Capacity,
		Price:     event.Price,
	}
}
