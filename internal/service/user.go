package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/social-events-api/internal/domain"
	"github.com/vietanh2810/social-events-api/internal/repository"
)

var (
	ErrUserNotFound = repository.ErrUserNotFound

	errSelfFollow = domain.NewValidationError("You cannot follow yourself")
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindProfile(ctx context.Context, id uint) (domain.UserProfile, error)
	UpdateProfile(ctx context.Context, user domain.User) (domain.User, error)
	ToggleFollow(ctx context.Context, followerID, followingID uint) (bool, error)
	ListFollowers(ctx context.Context, userID uint, page domain.Page) ([]domain.User, int64, error)
	ListFollowing(ctx context.Context, userID uint, page domain.Page) ([]domain.User, int64, error)
	GetOrCreatePreferences(ctx context.Context, userID uint) (domain.Preferences, error)
	UpdatePreferences(ctx context.Context, prefs domain.Preferences) (domain.Preferences, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetProfile(ctx context.Context, id uint) (domain.UserProfile, error) {
	profile, err := s.repo.FindProfile(ctx, id)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("s.repo.FindProfile -> %w", err)
	}

	return profile, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uint, upd domain.UserUpdate) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	user.Apply(upd)

	updated, err := s.repo.UpdateProfile(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.UpdateProfile -> %w", err)
	}

	return updated, nil
}

// ToggleFollow follows followingID, or unfollows when already following.
// It reports whether followerID follows followingID afterwards.
func (s *UserService) ToggleFollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	if followerID == followingID {
		return false, errSelfFollow
	}

	if _, err := s.repo.FindByID(ctx, followingID); err != nil {
		return false, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	followed, err := s.repo.ToggleFollow(ctx, followerID, followingID)
	if err != nil {
		return false, fmt.Errorf("s.repo.ToggleFollow -> %w", err)
	}

	return followed, nil
}

func (s *UserService) Followers(ctx context.Context, userID uint, page domain.Page) (domain.Paginated[domain.User], error) {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return domain.Paginated[domain.User]{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	users, count, err := s.repo.ListFollowers(ctx, userID, page)
	if err != nil {
		return domain.Paginated[domain.User]{}, fmt.Errorf("s.repo.ListFollowers -> %w", err)
	}

	return domain.NewPaginated(users, count, page), nil
}

func (s *UserService) Following(ctx context.Context, userID uint, page domain.Page) (domain.Paginated[domain.User], error) {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return domain.Paginated[domain.User]{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	users, count, err := s.repo.ListFollowing(ctx, userID, page)
	if err != nil {
		return domain.Paginated[domain.User]{}, fmt.Errorf("s.repo.ListFollowing -> %w", err)
	}

	return domain.NewPaginated(users, count, page), nil
}

func (s *UserService) GetPreferences(ctx context.Context, userID uint) (domain.Preferences, error) {
	prefs, err := s.repo.GetOrCreatePreferences(ctx, userID)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("s.repo.GetOrCreatePreferences -> %w", err)
	}

	return prefs, nil
}

func (s *UserService) UpdatePreferences(ctx context.Context, userID uint, upd domain.PreferencesUpdate) (domain.Preferences, error) {
	prefs, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return domain.Preferences{}, err
	}

	prefs.Apply(upd)

	updated, err := s.repo.UpdatePreferences(ctx, prefs)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("s.repo.UpdatePreferences -> %w", err)
	}

	return updated, nil
}
