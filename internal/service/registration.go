package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"

	"github.com/vietanh2810/social-events-api/internal/domain"
	"github.com/vietanh2810/social-events-api/internal/repository"
)

var (
	ErrRegistrationNotFound = repository.ErrRegistrationNotFound

	errRegistrationChanged = domain.NewValidationError("Registration was modified by another request, please retry.")
)

const qrCodeSize = 256

type RegistrationRepository interface {
	Create(ctx context.Context, reg domain.Registration) (domain.Registration, error)
	Transition(ctx context.Context, reg domain.Registration, from string, checkSeat bool) (domain.Registration, error)
	FindByID(ctx context.Context, id uint) (domain.Registration, error)
	ListByAttendee(ctx context.Context, attendeeID uint, page domain.Page) ([]domain.Registration, int64, error)
}

type EventFinder interface {
	GetByID(ctx context.Context, requesterID, id uint) (domain.Event, error)
}

type RegistrationService struct {
	repo    RegistrationRepository
	events  EventFinder
	baseURL string
	now     func() time.Time
}

func NewRegistrationService(repo RegistrationRepository, events EventFinder, baseURL string) *RegistrationService {
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}

	return &RegistrationService{
		repo:    repo,
		events:  events,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		now:     time.Now,
	}
}

// Register creates a pending registration of userID for the event.
func (s *RegistrationService) Register(ctx context.Context, userID, eventID uint, notes string) (domain.Registration, error) {
	if _, err := s.events.GetByID(ctx, userID, eventID); err != nil {
		return domain.Registration{}, fmt.Errorf("s.events.GetByID -> %w", err)
	}

	reg := domain.NewRegistration(eventID, userID, notes, s.now().UTC())

	created, err := s.repo.Create(ctx, reg)
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationDuplicate) {
			return domain.Registration{}, domain.ErrRegistrationExists
		}

		return domain.Registration{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Get returns the registration to its attendee or to the organizer of its event.
func (s *RegistrationService) Get(ctx context.Context, userID, id uint) (domain.Registration, error) {
	reg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if reg.IsOwnedBy(userID) {
		return reg, nil
	}

	event, err := s.events.GetByID(ctx, userID, reg.EventID)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return domain.Registration{}, ErrNotRegistrationActor
		}

		return domain.Registration{}, fmt.Errorf("s.events.GetByID -> %w", err)
	}

	if !event.IsOrganizedBy(userID) {
		return domain.Registration{}, ErrNotRegistrationActor
	}

	return reg, nil
}

func (s *RegistrationService) Mine(ctx context.Context, userID uint, page domain.Page) (domain.Paginated[domain.Registration], error) {
	regs, count, err := s.repo.ListByAttendee(ctx, userID, page)
	if err != nil {
		return domain.Paginated[domain.Registration]{}, fmt.Errorf("s.repo.ListByAttendee -> %w", err)
	}

	return domain.NewPaginated(regs, count, page), nil
}

func (s *RegistrationService) Confirm(ctx context.Context, userID, id uint) (domain.Registration, error) {
	return s.transition(ctx, userID, id, false, func(reg *domain.Registration) error {
		return reg.Confirm()
	})
}

func (s *RegistrationService) Cancel(ctx context.Context, userID, id uint) (domain.Registration, error) {
	return s.transition(ctx, userID, id, false, func(reg *domain.Registration) error {
		return reg.Cancel(s.now().UTC())
	})
}

// Restore brings a cancelled registration back to pending when a seat is still free.
func (s *RegistrationService) Restore(ctx context.Context, userID, id uint) (domain.Registration, error) {
	return s.transition(ctx, userID, id, true, func(reg *domain.Registration) error {
		return reg.Restore()
	})
}

// transition applies change to the attendee's registration and stores it only if
// nobody changed the registration in between.
func (s *RegistrationService) transition(
	ctx context.Context,
	userID, id uint,
	checkSeat bool,
	change func(reg *domain.Registration) error,
) (domain.Registration, error) {
	reg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !reg.IsOwnedBy(userID) {
		return domain.Registration{}, ErrNotRegistrationActor
	}

	from := reg.Status
	if err = change(&reg); err != nil {
		return domain.Registration{}, err
	}

	updated, err := s.repo.Transition(ctx, reg, from, checkSeat)
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationStale) {
			return domain.Registration{}, errRegistrationChanged
		}

		return domain.Registration{}, fmt.Errorf("s.repo.Transition -> %w", err)
	}

	return updated, nil
}

// QRCode renders a PNG check-in ticket pointing at the registration.
func (s *RegistrationService) QRCode(ctx context.Context, userID, id uint) ([]byte, error) {
	reg, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(s.TicketURL(reg.ID), qrcode.Medium, qrCodeSize)
	if err != nil {
		return nil, fmt.Errorf("qrcode.Encode -> %w", err)
	}

	return png, nil
}

func (s *RegistrationService) TicketURL(id uint) string {
	return fmt.Sprintf("%s/api/v1/registrations/%d", s.baseURL, id)
}
