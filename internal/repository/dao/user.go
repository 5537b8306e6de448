package dao

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Username string `gorm:"size:150;unique;not null"`
	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	FirstName      string `gorm:"size:150;not null"`
	LastName       string `gorm:"size:150;not null"`
	Bio            string `gorm:"not null"`
	ProfilePicture string `gorm:"not null"`
	DateOfBirth    *time.Time
	PhoneNumber    string `gorm:"size:15;not null"`
	Location       string `gorm:"size:100;not null"`
	IsActive       bool   `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserFollow struct {
	FollowerID  uint      `gorm:"primaryKey;autoIncrement:false"`
	FollowingID uint      `gorm:"primaryKey;autoIncrement:false;index"`
	Follower    User      `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	Following   User      `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `gorm:"not null"`
}

type Preferences struct {
	ID                     uint   `gorm:"primaryKey"`
	UserID                 uint   `gorm:"uniqueIndex;not null"`
	User                   User   `gorm:"constraint:OnDelete:CASCADE"`
	NotificationPreference string `gorm:"size:20;not null"`
	EmailNotifications     bool   `gorm:"not null"`
	PushNotifications      bool   `gorm:"not null"`
	PrivateProfile         bool   `gorm:"not null"`
}

func (Preferences) TableName() string {
	return "user_preferences"
}

// profileColumns are the columns a user may change on their own profile.
var profileColumns = []string{
	"first_name", "last_name", "bio", "profile_picture", "date_of_birth", "phone_number", "location", "updated_at",
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func userUniqueErr(err error) error {
	desc, ok := uniqueViolation(err)
	if !ok {
		return err
	}

	switch {
	case strings.Contains(desc, "username"):
		return ErrUsernameExists
	case strings.Contains(desc, "email"):
		return ErrUserEmailExists
	default:
		return err
	}
}

// normalizeEmail makes emails compare case-insensitively, matching the
// unique index on LOWER(email).
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Insert creates the user and its preferences in one transaction.
func (d *UserDAO) Insert(ctx context.Context, user User, prefs Preferences) (User, Preferences, error) {
	user.Email = normalizeEmail(user.Email)

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&user).Error; err != nil {
			return userUniqueErr(err)
		}

		prefs.UserID = user.ID
		if err := tx.Omit(clause.Associations).Create(&prefs).Error; err != nil {
			return fmt.Errorf("create preferences -> %w", err)
		}

		return nil
	})
	if err != nil {
		return User{}, Preferences{}, err
	}

	return user, prefs, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByUsername(ctx context.Context, username string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&User{}).Where("email = ?", normalizeEmail(email)).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (d *UserDAO) UpdateProfile(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Model(&User{ID: user.ID}).Select(profileColumns).Updates(&user)
	if result.Error != nil {
		return User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return User{}, ErrUserNotFound
	}

	return d.FindByID(ctx, user.ID)
}

func (d *UserDAO) CountFollows(ctx context.Context, userID uint) (followers int64, following int64, err error) {
	db := d.db.WithContext(ctx)

	if err = db.Model(&UserFollow{}).Where("following_id = ?", userID).Count(&followers).Error; err != nil {
		return 0, 0, err
	}
	if err = db.Model(&UserFollow{}).Where("follower_id = ?", userID).Count(&following).Error; err != nil {
		return 0, 0, err
	}

	return followers, following, nil
}

// ToggleFollow removes the follow if it exists and creates it otherwise.
// It returns true when the follow now exists.
func (d *UserDAO) ToggleFollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	followed := false

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&UserFollow{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		followed = true
		follow := UserFollow{FollowerID: followerID, FollowingID: followingID}

		return tx.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(&follow).Error
	})
	if err != nil {
		return false, err
	}

	return followed, nil
}

// ListFollowers returns the users following userID, most recent first.
func (d *UserDAO) ListFollowers(ctx context.Context, userID uint, offset, limit int) ([]User, int64, error) {
	return d.listFollows(ctx, "user_follows.follower_id = users.id", "user_follows.following_id = ?", userID, offset, limit)
}

// ListFollowing returns the users userID follows, most recent first.
func (d *UserDAO) ListFollowing(ctx context.Context, userID uint, offset, limit int) ([]User, int64, error) {
	return d.listFollows(ctx, "user_follows.following_id = users.id", "user_follows.follower_id = ?", userID, offset, limit)
}

func (d *UserDAO) listFollows(ctx context.Context, join, where string, userID uint, offset, limit int) ([]User, int64, error) {
	query := d.db.WithContext(ctx).Model(&User{}).
		Joins("JOIN user_follows ON "+join).
		Where(where, userID).
		Session(&gorm.Session{})

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	err := query.Order("user_follows.created_at DESC").Order("users.id").Offset(offset).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, count, nil
}

// FindOrCreatePreferences returns the user's preferences, creating defaults when missing.
func (d *UserDAO) FindOrCreatePreferences(ctx context.Context, defaults Preferences) (Preferences, error) {
	var prefs Preferences

	result := d.db.WithContext(ctx).
		Where(Preferences{UserID: defaults.UserID}).
		Attrs(defaults).
		Omit(clause.Associations).
		FirstOrCreate(&prefs)
	if result.Error != nil {
		if _, ok := uniqueViolation(result.Error); ok {
			return d.FindPreferences(ctx, defaults.UserID)
		}

		return Preferences{}, result.Error
	}

	return prefs, nil
}

func (d *UserDAO) FindPreferences(ctx context.Context, userID uint) (Preferences, error) {
	var prefs Preferences

	result := d.db.WithContext(ctx).First(&prefs, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Preferences{}, ErrPreferencesNotFound
		}

		return Preferences{}, result.Error
	}

	return prefs, nil
}

func (d *UserDAO) UpdatePreferences(ctx context.Context, prefs Preferences) (Preferences, error) {
	result := d.db.WithContext(ctx).Model(&Preferences{ID: prefs.ID}).
		Select("notification_preference", "email_notifications", "push_notifications", "private_profile").
		Updates(&prefs)
	if result.Error != nil {
		return Preferences{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Preferences{}, ErrPreferencesNotFound
	}

	return prefs, nil
}
