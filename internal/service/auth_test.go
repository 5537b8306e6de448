package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vietanh2810/social-events-api/internal/domain"
	"github.com/vietanh2810/social-events-api/internal/pkg/jwthelper"
	"github.com/vietanh2810/social-events-api/internal/repository"
)

func newTestAuthService() (*AuthService, *mockAuthRepo, *mockBlacklist, *jwthelper.Manager) {
	repo := &mockAuthRepo{}
	blacklist := &mockBlacklist{}
	tokens := jwthelper.NewManager("test-signing-key", 5*time.Minute, time.Hour)

	return NewAuthService(repo, tokens, blacklist), repo, blacklist, tokens
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, tokens := newTestAuthService()

	repo.On("EmailExists", ctx, "jane@example.com").Return(false, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "jane" &&
			u.IsActive &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("Password1!")) == nil
	}), domain.DefaultPreferences(0)).Return(domain.User{ID: 12, Username: "jane"}, nil)

	user, pair, err := svc.Signup(ctx, domain.User{Username: "jane", Email: "jane@example.com", Password: "Password1!"})
	require.NoError(t, err)
	assert.Equal(t, uint(12), user.ID)

	claims, err := tokens.Parse(pair.Access, jwthelper.TypeAccess)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(12), id)

	_, err = tokens.Parse(pair.Refresh, jwthelper.TypeRefresh)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAuthService_SignupEmailTaken(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, _ := newTestAuthService()

	repo.On("EmailExists", ctx, "jane@example.com").Return(true, nil)

	_, _, err := svc.Signup(ctx, domain.User{Username: "jane", Email: "jane@example.com", Password: "Password1!"})
	vErr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Email Already Taken", vErr.Reason)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("Password1!"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		found    domain.User
		findErr  error
		wantErr  error
	}{
		{
			name:     "success",
			username: "jane",
			password: "Password1!",
			found:    domain.User{ID: 1, Username: "jane", Password: string(hash), IsActive: true},
		},
		{
			name:     "unknown user",
			username: "ghost",
			password: "Password1!",
			findErr:  repository.ErrUserNotFound,
			wantErr:  ErrWrongCredentials,
		},
		{
			name:     "wrong password",
			username: "jane",
			password: "nope",
			found:    domain.User{ID: 1, Username: "jane", Password: string(hash), IsActive: true},
			wantErr:  ErrWrongCredentials,
		},
		{
			name:     "inactive account",
			username: "jane",
			password: "Password1!",
			found:    domain.User{ID: 1, Username: "jane", Password: string(hash)},
			wantErr:  ErrUserInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, _ := newTestAuthService()
			repo.On("FindByUsername", ctx, tt.username).Return(tt.found, tt.findErr)

			user, pair, err := svc.Login(ctx, tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.found.ID, user.ID)
			assert.NotEmpty(t, pair.Access)
			assert.NotEmpty(t, pair.Refresh)
		})
	}
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	ctx := context.Background()
	svc, _, blacklist, tokens := newTestAuthService()

	pair, err := tokens.GeneratePair(5)
	require.NoError(t, err)
	claims, err := tokens.Parse(pair.Refresh, jwthelper.TypeRefresh)
	require.NoError(t, err)

	blacklist.On("Contains", ctx, claims.ID).Return(false, nil).Times(2)
	blacklist.On("Add", ctx, claims.ID, mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 0 && ttl <= time.Hour
	})).Return(nil)

	access, err := svc.Refresh(ctx, pair.Refresh)
	require.NoError(t, err)
	_, err = tokens.Parse(access, jwthelper.TypeAccess)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, 5, pair.Refresh))

	blacklist.On("Contains", ctx, claims.ID).Return(true, nil)
	_, err = svc.Refresh(ctx, pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
	blacklist.AssertExpectations(t)
}

func TestAuthService_RefreshRejectsAccessToken(t *testing.T) {
	svc, _, _, tokens := newTestAuthService()

	access, err := tokens.GenerateAccessToken(5)
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_LogoutOtherUsersToken(t *testing.T) {
	ctx := context.Background()
	svc, _, blacklist, tokens := newTestAuthService()

	refresh, err := tokens.GenerateRefreshToken(5)
	require.NoError(t, err)
	blacklist.On("Contains", ctx, mock.Anything).Return(false, nil)

	err = svc.Logout(ctx, 6, refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
	blacklist.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}
