package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/social-events-api/internal/domain"
	"github.com/vietanh2810/social-events-api/internal/repository/dao"
)

var (
	ErrRegistrationNotFound  = dao.ErrRegistrationNotFound
	ErrRegistrationDuplicate = dao.ErrRegistrationDuplicate
	ErrRegistrationStale     = dao.ErrRegistrationStale
)

type RegistrationDAO interface {
	InsertGuarded(ctx context.Context, reg dao.Registration, guard dao.CreateGuard) (dao.Registration, error)
	Transition(ctx context.Context, reg dao.Registration, from string, guard dao.SeatGuard) (dao.Registration, error)
	FindByID(ctx context.Context, id uint) (dao.Registration, error)
	ListByAttendee(ctx context.Context, attendeeID uint, offset, limit int) ([]dao.Registration, int64, error)
	ListByEvent(ctx context.Context, eventID uint, offset, limit int) ([]dao.Registration, int64, error)
	CountActive(ctx context.Context, eventID uint) (int64, error)
}

type RegistrationRepository struct {
	dao RegistrationDAO
}

func NewRegistrationRepository(dao RegistrationDAO) *RegistrationRepository {
	return &RegistrationRepository{
		dao: dao,
	}
}

// Create inserts reg once domain.CheckRegistration passes against the locked event.
func (r *RegistrationRepository) Create(ctx context.Context, reg domain.Registration) (domain.Registration, error) {
	guard := func(event dao.Event, alreadyRegistered bool, active int64) error {
		return domain.CheckRegistration(eventDaoToDomain(event), alreadyRegistered, active)
	}

	created, err := r.dao.InsertGuarded(ctx, r.domainToDao(reg), guard)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.InsertGuarded -> %w", err)
	}

	return r.daoToDomain(created), nil
}

// Transition persists reg's new state provided the stored state is still from.
// With checkSeat the event is locked and domain.CheckSeat must pass first.
func (r *RegistrationRepository) Transition(ctx context.Context, reg domain.Registration, from string, checkSeat bool) (domain.Registration, error) {
	var guard dao.SeatGuard
	if checkSeat {
		guard = func(event dao.Event, active int64) error {
			return domain.CheckSeat(eventDaoToDomain(event), active)
		}
	}

	updated, err := r.dao.Transition(ctx, r.domainToDao(reg), from, guard)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.Transition -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id uint) (domain.Registration, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RegistrationRepository) ListByAttendee(ctx context.Context, attendeeID uint, page domain.Page) ([]domain.Registration, int64, error) {
	regs, count, err := r.dao.ListByAttendee(ctx, attendeeID, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.ListByAttendee -> %w", err)
	}

	return r.daosToDomain(regs), count, nil
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID uint, page domain.Page) ([]domain.Registration, int64, error) {
	regs, count, err := r.dao.ListByEvent(ctx, eventID, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.ListByEvent -> %w", err)
	}

	return r.daosToDomain(regs), count, nil
}

func (r *RegistrationRepository) CountActive(ctx context.Context, eventID uint) (int64, error) {
	count, err := r.dao.CountActive(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountActive -> %w", err)
	}

	return count, nil
}

func (r *RegistrationRepository) daoToDomain(reg dao.Registration) domain.Registration {
	return domain.Registration{
		ID:               reg.ID,
		EventID:          reg.EventID,
		AttendeeID:       reg.AttendeeID,
		Status:           reg.Status,
		RegistrationDate: reg.RegistrationDate,
		CancelledDate:    reg.CancelledDate,
		Notes:            reg.Notes,
	}
}

func (r *RegistrationRepository) daosToDomain(regs []dao.Registration) []domain.Registration {
	result := make([]domain.Registration, 0, len(regs))
	for _, reg := range regs {
		result = append(result, r.daoToDomain(reg))
	}

	return result
}

func (r *RegistrationRepository) domainToDao(reg domain.Registration) dao.Registration {
	return dao.Registration{
		ID:               reg.ID,
		EventID:          reg.EventID,
		AttendeeID:       reg.AttendeeID,
		Status:           reg.Status,
		RegistrationDate: reg.RegistrationDate.UTC(),
		CancelledDate:    utcPtr(reg.CancelledDate),
		Notes:            reg.Notes,
	}
}
