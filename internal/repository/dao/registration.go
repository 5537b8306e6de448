package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Registration struct {
	ID               uint      `gorm:"primaryKey"`
	EventID          uint      `gorm:"not null;uniqueIndex:idx_registrations_event_attendee,priority:1"`
	Event            Event     `gorm:"constraint:OnDelete:CASCADE"`
	AttendeeID       uint      `gorm:"not null;uniqueIndex:idx_registrations_event_attendee,priority:2;index"`
	Attendee         User      `gorm:"foreignKey:AttendeeID;constraint:OnDelete:CASCADE"`
	Status           string    `gorm:"size:20;not null"`
	RegistrationDate time.Time `gorm:"not null"`
	CancelledDate    *time.Time
	Notes            string `gorm:"not null"`
}

// activeStatuses are the registration states that hold a seat.
var activeStatuses = []string{"pending", "confirmed"}

// CreateGuard decides, while the event row is locked, whether a registration may be created.
type CreateGuard func(event Event, alreadyRegistered bool, active int64) error

// SeatGuard decides, while the event row is locked, whether a seat can be taken.
type SeatGuard func(event Event, active int64) error

type RegistrationDAO struct {
	db *gorm.DB
}

func NewRegistrationDAO(db *gorm.DB) *RegistrationDAO {
	return &RegistrationDAO{
		db: db,
	}
}

// lockEvent loads the event with a row lock held until tx ends, and counts its active registrations.
func lockEvent(tx *gorm.DB, eventID uint) (Event, int64, error) {
	var event Event
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Event{}, 0, ErrEventNotFound
		}

		return Event{}, 0, err
	}

	var active int64
	err := tx.Model(&Registration{}).
		Where("event_id = ? AND status IN ?", eventID, activeStatuses).
		Count(&active).Error
	if err != nil {
		return Event{}, 0, err
	}

	return event, active, nil
}

// InsertGuarded checks guard and inserts reg in a single transaction, serialized per event.
func (d *RegistrationDAO) InsertGuarded(ctx context.Context, reg Registration, guard CreateGuard) (Registration, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, active, err := lockEvent(tx, reg.EventID)
		if err != nil {
			return err
		}

		var existing int64
		err = tx.Model(&Registration{}).
			Where("event_id = ? AND attendee_id = ?", reg.EventID, reg.AttendeeID).
			Count(&existing).Error
		if err != nil {
			return err
		}

		if err = guard(event, existing > 0, active); err != nil {
			return err
		}

		if err = tx.Omit(clause.Associations).Create(&reg).Error; err != nil {
			if _, ok := uniqueViolation(err); ok {
				return ErrRegistrationDuplicate
			}

			return err
		}

		return nil
	})
	if err != nil {
		return Registration{}, err
	}

	return reg, nil
}

// Transition persists reg's new status and cancelled date, provided the stored status is
// still from. When guard is not nil it runs first with the event row locked.
func (d *RegistrationDAO) Transition(ctx context.Context, reg Registration, from string, guard SeatGuard) (Registration, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if guard != nil {
			event, active, err := lockEvent(tx, reg.EventID)
			if err != nil {
				return err
			}

			if err = guard(event, active); err != nil {
				return err
			}
		}

		var cancelled *time.Time
		if reg.CancelledDate != nil {
			utc := reg.CancelledDate.UTC()
			cancelled = &utc
		}

		result := tx.Model(&Registration{}).
			Where("id = ? AND status = ?", reg.ID, from).
			Updates(map[string]any{
				"status":         reg.Status,
				"cancelled_date": cancelled,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRegistrationStale
		}

		return nil
	})
	if err != nil {
		return Registration{}, err
	}

	return d.FindByID(ctx, reg.ID)
}

func (d *RegistrationDAO) FindByID(ctx context.Context, id uint) (Registration, error) {
	var reg Registration

	result := d.db.WithContext(ctx).First(&reg, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Registration{}, ErrRegistrationNotFound
		}

		return Registration{}, result.Error
	}

	return reg, nil
}

func (d *RegistrationDAO) ListByAttendee(ctx context.Context, attendeeID uint, offset, limit int) ([]Registration, int64, error) {
	return d.list(ctx, "attendee_id = ?", attendeeID, offset, limit)
}

func (d *RegistrationDAO) ListByEvent(ctx context.Context, eventID uint, offset, limit int) ([]Registration, int64, error) {
	return d.list(ctx, "event_id = ?", eventID, offset, limit)
}

func (d *RegistrationDAO) list(ctx context.Context, where string, arg uint, offset, limit int) ([]Registration, int64, error) {
	query := d.db.WithContext(ctx).Model(&Registration{}).Where(where, arg).Session(&gorm.Session{})

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var regs []Registration
	err := query.Order("registration_date DESC").Order("id DESC").Offset(offset).Limit(limit).Find(&regs).Error
	if err != nil {
		return nil, 0, err
	}

	return regs, count, nil
}

func (d *RegistrationDAO) CountActive(ctx context.Context, eventID uint) (int64, error) {
	var count int64

	err := d.db.WithContext(ctx).Model(&Registration{}).
		Where("event_id = ? AND status IN ?", eventID, activeStatuses).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
