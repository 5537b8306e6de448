package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/social-events-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/social-events-api/internal/domain"
	"github.com/vietanh2810/social-events-api/internal/pkg/jwthelper"
	"github.com/vietanh2810/social-events-api/internal/service"
)

func newAuthRouter(userID uint) (*gin.Engine, *mockAuthService) {
	svc := &mockAuthService{}
	h := NewAuthHandler(svc, keyTranslator{})

	r := newTestRouter(userID)
	r.POST("/auth/signup", h.HandleSignup)
	r.POST("/auth/login", h.HandleLogin)
	r.POST("/auth/token/refresh", h.HandleRefresh)
	r.POST("/auth/logout", h.HandleLogout)

	return r, svc
}

func TestAuthHandler_HandleSignup(t *testing.T) {
	const body = `{"username":"jane","email":"jane@example.com","password":"Password1!"}`
	newUser := domain.User{Username: "jane", Email: "jane@example.com", Password: "Password1!"}

	tests := []struct {
		name       string
		body       string
		setup      func(svc *mockAuthService)
		wantStatus int
		wantError  string
	}{
		{
			name: "created",
			body: body,
			setup: func(svc *mockAuthService) {
				svc.On("Signup", mock.Anything, newUser).
					Return(domain.User{ID: 1, Username: "jane"}, jwthelper.TokenPair{Access: "a", Refresh: "r"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid email",
			body:       `{"username":"jane","email":"jane","password":"Password1!"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			body:       `{"username":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "email taken",
			body: body,
			setup: func(svc *mockAuthService) {
				svc.On("Signup", mock.Anything, newUser).
					Return(domain.User{}, jwthelper.TokenPair{}, domain.NewValidationError("Email Already Taken"))
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Email Already Taken",
		},
		{
			name: "username taken",
			body: body,
			setup: func(svc *mockAuthService) {
				svc.On("Signup", mock.Anything, newUser).
					Return(domain.User{}, jwthelper.TokenPair{}, service.ErrUsernameExists)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "store failure",
			body: body,
			setup: func(svc *mockAuthService) {
				svc.On("Signup", mock.Anything, newUser).
					Return(domain.User{}, jwthelper.TokenPair{}, errors.New("connection reset"))
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "The server encountered a problem and could not process your request.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, svc := newAuthRouter(0)
			if tt.setup != nil {
				tt.setup(svc)
			}

			w := serve(r, http.MethodPost, "/auth/signup", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantError != "" {
				var got response.Err
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.Equal(t, tt.wantError, got.ErrorText)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_HandleSignup_Body(t *testing.T) {
	r, svc := newAuthRouter(0)
	svc.On("Signup", mock.Anything, mock.Anything).
		Return(domain.User{ID: 1, Username: "jane"}, jwthelper.TokenPair{Access: "a", Refresh: "r"}, nil)

	w := serve(r, http.MethodPost, "/auth/signup", `{"username":"jane","email":"jane@example.com","password":"Password1!"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var got response.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "a", got.Tokens.Access)
	assert.Equal(t, "r", got.Tokens.Refresh)
	assert.Equal(t, "jane", got.User.Username)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestAuthHandler_HandleLogin(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "ok", wantStatus: http.StatusOK},
		{name: "wrong credentials", err: service.ErrWrongCredentials, wantStatus: http.StatusUnauthorized},
		{name: "inactive", err: service.ErrUserInactive, wantStatus: http.StatusUnauthorized},
		{name: "failure", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, svc := newAuthRouter(0)
			svc.On("Login", mock.Anything, "jane", "secret").
				Return(domain.User{ID: 1}, jwthelper.TokenPair{Access: "a", Refresh: "r"}, tt.err)

			w := serve(r, http.MethodPost, "/auth/login", `{"username":"jane","password":"secret"}`)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuthHandler_HandleLogin_MissingPassword(t *testing.T) {
	r, svc := newAuthRouter(0)

	w := serve(r, http.MethodPost, "/auth/login", `{"username":"jane"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthHandler_HandleRefresh(t *testing.T) {
	r, svc := newAuthRouter(0)
	svc.On("Refresh", mock.Anything, "good").Return("new-access", nil)
	svc.On("Refresh", mock.Anything, "revoked").Return("", service.ErrInvalidToken)

	w := serve(r, http.MethodPost, "/auth/token/refresh", `{"refresh":"good"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"access":"new-access"}`, w.Body.String())

	w = serve(r, http.MethodPost, "/auth/token/refresh", `{"refresh":"revoked"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_HandleLogout(t *testing.T) {
	r, svc := newAuthRouter(7)
	svc.On("Logout", mock.Anything, uint(7), "mine").Return(nil)
	svc.On("Logout", mock.Anything, uint(7), "other").Return(service.ErrInvalidToken)

	w := serve(r, http.MethodPost, "/auth/logout", `{"refresh":"mine"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"detail":"LoggedOut"}`, w.Body.String())

	w = serve(r, http.MethodPost, "/auth/logout", `{"refresh":"other"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
