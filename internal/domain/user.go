package domain

import "time"

type User struct {
	ID             uint       `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	Password       string     `json:"-"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Bio            string     `json:"bio"`
	ProfilePicture string     `json:"profile_picture"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	PhoneNumber    string     `json:"phone_number"`
	Location       string     `json:"location"`
	IsActive       bool       `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// UserProfile is a user as seen by others, with follow counters.
type UserProfile struct {
	User
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
}

// UserUpdate carries a partial profile update; nil fields are left untouched.
type UserUpdate struct {
	FirstName      *string
	LastName       *string
	Bio            *string
	ProfilePicture *string
	DateOfBirth    *time.Time
	PhoneNumber    *string
	Location       *string
}

func (u *User) Apply(upd UserUpdate) {
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
	if upd.ProfilePicture != nil {
		u.ProfilePicture = *upd.ProfilePicture
	}
	if upd.DateOfBirth != nil {
		u.DateOfBirth = upd.DateOfBirth
	}
	if upd.PhoneNumber != nil {
		u.PhoneNumber = *upd.PhoneNumber
	}
	if upd.Location != nil {
		u.Location = *upd.Location
	}
}

const (
	NotifyAll       = "all"
	NotifyImportant = "important"
	NotifyNone      = "none"
)

type Preferences struct {
	ID                     uint   `json:"id"`
	UserID                 uint   `json:"user_id"`
	NotificationPreference string `json:"notification_preference"`
	EmailNotifications     bool   `json:"email_notifications"`
	PushNotifications      bool   `json:"push_notifications"`
	PrivateProfile         bool   `json:"private_profile"`
}

func DefaultPreferences(userID uint) Preferences {
	return Preferences{
		UserID:                 userID,
		NotificationPreference: NotifyAll,
		EmailNotifications:     true,
		PushNotifications:      true,
	}
}

type PreferencesUpdate struct {
	NotificationPreference *string
	EmailNotifications     *bool
	PushNotifications      *bool
	PrivateProfile         *bool
}

func (p *Preferences) Apply(upd PreferencesUpdate) {
	if upd.NotificationPreference != nil {
		p.NotificationPreference = *upd.NotificationPreference
	}
	if upd.EmailNotifications != nil {
		p.EmailNotifications = *upd.EmailNotifications
	}
	if upd.PushNotifications != nil {
		p.PushNotifications = *upd.PushNotifications
	}
	if upd.PrivateProfile != nil {
		p.PrivateProfile = *upd.PrivateProfile
	}
}
