package service

import (
	"errors"

	"github.com/vietanh2810/social-events-api/internal/domain"
)

// ValidationError is a business-rule failure whose Reason can be shown to clients.
type ValidationError = domain.ValidationError

var ErrPermissionDenied = errors.New("permission denied")

// PermissionError matches ErrPermissionDenied and carries a client-facing reason.
type PermissionError struct {
	Reason string
}

func (e *PermissionError) Error() string {
	return e.Reason
}

func (e *PermissionError) Is(target error) bool {
	return target == ErrPermissionDenied
}

var (
	ErrNotEventOrganizer     = &PermissionError{Reason: "You do not have permission to edit or delete this event."}
	ErrCategoryEditDenied    = &PermissionError{Reason: "You do not have permission to edit this category."}
	ErrCategoryDeleteDenied  = &PermissionError{Reason: "You do not have permission to delete this category."}
	ErrNotCommentAuthor      = &PermissionError{Reason: "You do not have permission to edit this comment."}
	ErrNotRegistrationActor  = &PermissionError{Reason: "Not allowed to make this action"}
	ErrRegistrationsReserved = &PermissionError{Reason: "Only the organizer can see the registrations of this event."}
)

// AsValidationError unwraps err to a *ValidationError when it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}

	return nil, false
}
