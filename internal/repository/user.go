package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/social-events-api/internal/domain"
	"github.com/vietanh2810/social-events-api/internal/repository/dao"
)

var (
	ErrUserNotFound        = dao.ErrUserNotFound
	ErrUsernameExists      = dao.ErrUsernameExists
	ErrUserEmailExists     = dao.ErrUserEmailExists
	ErrPreferencesNotFound = dao.ErrPreferencesNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User, prefs dao.Preferences) (dao.User, dao.Preferences, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByUsername(ctx context.Context, username string) (dao.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, user dao.User) (dao.User, error)
	CountFollows(ctx context.Context, userID uint) (int64, int64, error)
	ToggleFollow(ctx context.Context, followerID, followingID uint) (bool, error)
	ListFollowers(ctx context.Context, userID uint, offset, limit int) ([]dao.User, int64, error)
	ListFollowing(ctx context.Context, userID uint, offset, limit int) ([]dao.User, int64, error)
	FindOrCreatePreferences(ctx context.Context, defaults dao.Preferences) (dao.Preferences, error)
	UpdatePreferences(ctx context.Context, prefs dao.Preferences) (dao.Preferences, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

// Create stores the user together with its preferences.
func (r *UserRepository) Create(ctx context.Context, user domain.User, prefs domain.Preferences) (domain.User, error) {
	created, _, err := r.dao.Insert(ctx, r.domainToDao(user), preferencesDomainToDao(prefs))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	found, err := r.dao.FindByUsername(ctx, username)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByUsername -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	exists, err := r.dao.ExistsByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("r.dao.ExistsByEmail -> %w", err)
	}

	return exists, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, user domain.User) (domain.User, error) {
	updated, err := r.dao.UpdateProfile(ctx, r.domainToDao(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.UpdateProfile -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) FindProfile(ctx context.Context, id uint) (domain.UserProfile, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return domain.UserProfile{}, err
	}

	followers, following, err := r.dao.CountFollows(ctx, id)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("r.dao.CountFollows -> %w", err)
	}

	return domain.UserProfile{
		User:           user,
		FollowersCount: followers,
		FollowingCount: following,
	}, nil
}

func (r *UserRepository) ToggleFollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	followed, err := r.dao.ToggleFollow(ctx, followerID, followingID)
	if err != nil {
		return false, fmt.Errorf("r.dao.ToggleFollow -> %w", err)
	}

	return followed, nil
}

func (r *UserRepository) ListFollowers(ctx context.Context, userID uint, page domain.Page) ([]domain.User, int64, error) {
	users, count, err := r.dao.ListFollowers(ctx, userID, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.ListFollowers -> %w", err)
	}

	return r.daosToDomain(users), count, nil
}

func (r *UserRepository) ListFollowing(ctx context.Context, userID uint, page domain.Page) ([]domain.User, int64, error) {
	users, count, err := r.dao.ListFollowing(ctx, userID, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.ListFollowing -> %w", err)
	}

	return r.daosToDomain(users), count, nil
}

func (r *UserRepository) GetOrCreatePreferences(ctx context.Context, userID uint) (domain.Preferences, error) {
	prefs, err := r.dao.FindOrCreatePreferences(ctx, preferencesDomainToDao(domain.DefaultPreferences(userID)))
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("r.dao.FindOrCreatePreferences -> %w", err)
	}

	return preferencesDaoToDomain(prefs), nil
}

func (r *UserRepository) UpdatePreferences(ctx context.Context, prefs domain.Preferences) (domain.Preferences, error) {
	updated, err := r.dao.UpdatePreferences(ctx, preferencesDomainToDao(prefs))
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("r.dao.UpdatePreferences -> %w", err)
	}

	return preferencesDaoToDomain(updated), nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Password:       u.Password,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		DateOfBirth:    u.DateOfBirth,
		PhoneNumber:    u.PhoneNumber,
		Location:       u.Location,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (r *UserRepository) daosToDomain(users []dao.User) []domain.User {
	result := make([]domain.User, 0, len(users))
	for _, u := range users {
		result = append(result, r.daoToDomain(u))
	}

	return result
}

func (r *UserRepository) domainToDao(u domain.User) dao.User {
	return dao.User{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Password:       u.Password,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		DateOfBirth:    utcPtr(u.DateOfBirth),
		PhoneNumber:    u.PhoneNumber,
		Location:       u.Location,
		IsActive:       u.IsActive,
	}
}

func preferencesDaoToDomain(p dao.Preferences) domain.Preferences {
	return domain.Preferences{
		ID:                     p.ID,
		UserID:                 p.UserID,
		NotificationPreference: p.NotificationPreference,
		EmailNotifications:     p.EmailNotifications,
		PushNotifications:      p.PushNotifications,
		PrivateProfile:         p.PrivateProfile,
	}
}

func preferencesDomainToDao(p domain.Preferences) dao.Preferences {
	return dao.Preferences{
		ID:                     p.ID,
		UserID:                 p.UserID,
		NotificationPreference: p.NotificationPreference,
		EmailNotifications:     p.EmailNotifications,
		PushNotifications:      p.PushNotifications,
		PrivateProfile:         p.PrivateProfile,
	}
}
