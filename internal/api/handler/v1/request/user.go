package request

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/vietanh2810/social-events-api/internal/domain"
)

const dateLayout = "2006-01-02"

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	phonePattern    = regexp.MustCompile(`^\+?[0-9]{6,14}$`)
)

type UpdateProfileRequest struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
	DateOfBirth    *string `json:"date_of_birth" example:"1990-04-21"`
	PhoneNumber    *string `json:"phone_number"`
	Location       *string `json:"location"`
}

func (req *UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FirstName, validation.Length(0, 150)),
		validation.Field(&req.LastName, validation.Length(0, 150)),
		validation.Field(&req.ProfilePicture, is.URL),
		validation.Field(&req.DateOfBirth, validation.Date(dateLayout)),
		validation.Field(&req.PhoneNumber, validation.Length(0, 15), validation.Match(phonePattern)),
		validation.Field(&req.Location, validation.Length(0, 100)),
	)
}

// ToDomain expects Validate to have passed.
func (req *UpdateProfileRequest) ToDomain() domain.UserUpdate {
	upd := domain.UserUpdate{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
		PhoneNumber:    req.PhoneNumber,
		Location:       req.Location,
	}

	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		if dob, err := time.Parse(dateLayout, *req.DateOfBirth); err == nil {
			upd.DateOfBirth = &dob
		}
	}

	return upd
}

type UpdatePreferencesRequest struct {
	NotificationPreference *string `json:"notification_preference" enums:"all,important,none"`
	EmailNotifications     *bool   `json:"email_notifications"`
	PushNotifications      *bool   `json:"push_notifications"`
	PrivateProfile         *bool   `json:"private_profile"`
}

func (req *UpdatePreferencesRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.NotificationPreference, validation.In(domain.NotifyAll, domain.NotifyImportant, domain.NotifyNone)),
	)
}

func (req *UpdatePreferencesRequest) ToDomain() domain.PreferencesUpdate {
	return domain.PreferencesUpdate{
		NotificationPreference: req.NotificationPreference,
		EmailNotifications:     req.EmailNotifications,
		PushNotifications:      req.PushNotifications,
		PrivateProfile:         req.PrivateProfile,
	}
}
