package domain

import "time"

const (
	RegistrationPending   = "pending"
	RegistrationConfirmed = "confirmed"
	RegistrationCancelled = "cancelled"
)

var (
	ErrRegistrationExists     = NewValidationError("Registration already exists")
	ErrEventCancelled         = NewValidationError("Can't make registration of a cancelled event")
	ErrEventFull              = NewValidationError("The event has reached its maximum capacity.")
	ErrOnlyPendingConfirmable = NewValidationError("Only pending registrations can be confirmed")
	ErrAlreadyCancelled       = NewValidationError("Registration is already cancelled")
	ErrNotCancelled           = NewValidationError("Only cancelled registrations can be restored")
)

// Registration moves through pending -> confirmed, pending|confirmed -> cancelled
// and cancelled -> pending (restore). No other transition exists.
type Registration struct {
	ID               uint       `json:"id"`
	EventID          uint       `json:"event"`
	AttendeeID       uint       `json:"attendee"`
	Status           string     `json:"status"`
	RegistrationDate time.Time  `json:"registration_date"`
	CancelledDate    *time.Time `json:"cancelled_date"`
	Notes            string     `json:"notes"`
}

func NewRegistration(eventID, attendeeID uint, notes string, now time.Time) Registration {
	return Registration{
		EventID:          eventID,
		AttendeeID:       attendeeID,
		Status:           RegistrationPending,
		RegistrationDate: now,
		Notes:            notes,
	}
}

// IsActive reports whether the registration holds a seat.
func (r Registration) IsActive() bool {
	return r.Status == RegistrationPending || r.Status == RegistrationConfirmed
}

func (r Registration) IsOwnedBy(userID uint) bool {
	return r.AttendeeID == userID
}

func (r *Registration) Confirm() error {
	if r.Status != RegistrationPending {
		return ErrOnlyPendingConfirmable
	}

	r.Status = RegistrationConfirmed

	return nil
}

func (r *Registration) Cancel(now time.Time) error {
	if r.Status == RegistrationCancelled {
		return ErrAlreadyCancelled
	}

	r.Status = RegistrationCancelled
	r.CancelledDate = &now

	return nil
}

// Restore undoes a cancellation. Seat availability is checked separately with CheckSeat.
func (r *Registration) Restore() error {
	if r.Status != RegistrationCancelled {
		return ErrNotCancelled
	}

	r.Status = RegistrationPending
	r.CancelledDate = nil

	return nil
}

// CheckRegistration decides whether a new registration may be created for event,
// given whether the attendee already holds one and the number of active registrations.
func CheckRegistration(event Event, alreadyRegistered bool, active int64) error {
	if alreadyRegistered {
		return ErrRegistrationExists
	}

	return CheckSeat(event, active)
}

// CheckSeat fails when the event is cancelled or every seat is taken by an active registration.
func CheckSeat(event Event, active int64) error {
	if event.Status == EventStatusCancelled {
		return ErrEventCancelled
	}

	if active >= int64(event.Capacity) {
		return ErrEventFull
	}

	return nil
}
