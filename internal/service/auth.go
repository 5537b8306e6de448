package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vietanh2810/social-events-api/internal/domain"
	"github.com/vietanh2810/social-events-api/internal/pkg/jwthelper"
	"github.com/vietanh2810/social-events-api/internal/repository"
)

var (
	ErrUserEmailExists  = repository.ErrUserEmailExists
	ErrUsernameExists   = repository.ErrUsernameExists
	ErrWrongCredentials = errors.New("Unable to log in with provided credentials.")
	ErrUserInactive     = errors.New("User account is disabled.")
	ErrInvalidToken     = errors.New("Token is invalid or expired")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User, prefs domain.Preferences) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type TokenManager interface {
	GeneratePair(userID uint) (jwthelper.TokenPair, error)
	GenerateAccessToken(userID uint) (string, error)
	Parse(tokenString, wantType string) (*jwthelper.Claims, error)
}

type TokenBlacklist interface {
	Add(ctx context.Context, jti string, ttl time.Duration) error
	Contains(ctx context.Context, jti string) (bool, error)
}

type AuthService struct {
	repo      AuthUserRepository
	tokens    TokenManager
	blacklist TokenBlacklist
	validator *UserValidator
	now       func() time.Time
}

func NewAuthService(repo AuthUserRepository, tokens TokenManager, blacklist TokenBlacklist) *AuthService {
	return &AuthService{
		repo:      repo,
		tokens:    tokens,
		blacklist: blacklist,
		validator: NewUserValidator(repo),
		now:       time.Now,
	}
}

// Signup creates an active user with default preferences and logs them in.
func (s *AuthService) Signup(ctx context.Context, user domain.User) (domain.User, jwthelper.TokenPair, error) {
	if err := s.validator.Validate(ctx, user.Email, user.Password); err != nil {
		return domain.User{}, jwthelper.TokenPair{}, fmt.Errorf("s.validator.Validate -> %w", err)
	}

	hash, err := hashPassword(user.Password)
	if err != nil {
		return domain.User{}, jwthelper.TokenPair{}, err
	}
	user.Password = hash
	user.IsActive = true

	created, err := s.repo.Create(ctx, user, domain.DefaultPreferences(0))
	if err != nil {
		return domain.User{}, jwthelper.TokenPair{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	pair, err := s.tokens.GeneratePair(created.ID)
	if err != nil {
		return domain.User{}, jwthelper.TokenPair{}, fmt.Errorf("s.tokens.GeneratePair -> %w", err)
	}

	return created, pair, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, jwthelper.TokenPair, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, jwthelper.TokenPair{}, ErrWrongCredentials
		}

		return domain.User{}, jwthelper.TokenPair{}, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, jwthelper.TokenPair{}, ErrWrongCredentials
	}

	if !user.IsActive {
		return domain.User{}, jwthelper.TokenPair{}, ErrUserInactive
	}

	pair, err := s.tokens.GeneratePair(user.ID)
	if err != nil {
		return domain.User{}, jwthelper.TokenPair{}, fmt.Errorf("s.tokens.GeneratePair -> %w", err)
	}

	return user, pair, nil
}

// Refresh exchanges a refresh token that has not been logged out for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.parseRefresh(ctx, refreshToken)
	if err != nil {
		return "", err
	}

	userID, err := claims.UserID()
	if err != nil {
		return "", ErrInvalidToken
	}

	access, err := s.tokens.GenerateAccessToken(userID)
	if err != nil {
		return "", fmt.Errorf("s.tokens.GenerateAccessToken -> %w", err)
	}

	return access, nil
}

// Logout blacklists the refresh token of userID until it expires.
func (s *AuthService) Logout(ctx context.Context, userID uint, refreshToken string) error {
	claims, err := s.parseRefresh(ctx, refreshToken)
	if err != nil {
		return err
	}

	owner, err := claims.UserID()
	if err != nil || owner != userID {
		return ErrInvalidToken
	}

	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(s.now())
	}

	if err = s.blacklist.Add(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("s.blacklist.Add -> %w", err)
	}

	return nil
}

func (s *AuthService) parseRefresh(ctx context.Context, refreshToken string) (*jwthelper.Claims, error) {
	claims, err := s.tokens.Parse(refreshToken, jwthelper.TypeRefresh)
	if err != nil {
		return nil, ErrInvalidToken
	}

	revoked, err := s.blacklist.Contains(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("s.blacklist.Contains -> %w", err)
	}
	if revoked {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	return string(hash), nil
}
