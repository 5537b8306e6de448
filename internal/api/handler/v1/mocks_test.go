package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/vietanh2810/social-events-api/internal/api/middleware"
	"github.com/vietanh2810/social-events-api/internal/config"
	"github.com/vietanh2810/social-events-api/internal/domain"
	"github.com/vietanh2810/social-events-api/internal/pkg/jwthelper"
	"github.com/vietanh2810/social-events-api/internal/service"
)

var testPagination = &config.PaginationConfig{DefaultPageSize: 10, MaxPageSize: 50}

// keyTranslator returns message keys untranslated.
type keyTranslator struct{}

func (keyTranslator) T(_, key string, _ map[string]any) string {
	return key
}

// newTestRouter authenticates every request as userID; zero means anonymous.
func newTestRouter(userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(ctx *gin.Context) {
		if userID != 0 {
			ctx.Set(middleware.ContextKeyUserID, userID)
		}
		ctx.Next()
	})

	return r
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Signup(ctx context.Context, user domain.User) (domain.User, jwthelper.TokenPair, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Get(1).(jwthelper.TokenPair), args.Error(2)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (domain.User, jwthelper.TokenPair, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(domain.User), args.Get(1).(jwthelper.TokenPair), args.Error(2)
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, userID uint, refreshToken string) error {
	args := m.Called(ctx, userID, refreshToken)
	return args.Error(0)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) GetProfile(ctx context.Context, id uint) (domain.UserProfile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.UserProfile), args.Error(1)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, id uint, upd domain.UserUpdate) (domain.User, error) {
	args := m.Called(ctx, id, upd)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserService) ToggleFollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserService) Followers(ctx context.Context, userID uint, page domain.Page) (domain.Paginated[domain.User], error) {
	args := m.Called(ctx, userID, page)
	return args.Get(0).(domain.Paginated[domain.User]), args.Error(1)
}

func (m *mockUserService) Following(ctx context.Context, userID uint, page domain.Page) (domain.Paginated[domain.User], error) {
	args := m.Called(ctx, userID, page)
	return args.Get(0).(domain.Paginated[domain.User]), args.Error(1)
}

func (m *mockUserService) GetPreferences(ctx context.Context, userID uint) (domain.Preferences, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Preferences), args.Error(1)
}

func (m *mockUserService) UpdatePreferences(ctx context.Context, userID uint, upd domain.PreferencesUpdate) (domain.Preferences, error) {
	args := m.Called(ctx, userID, upd)
	return args.Get(0).(domain.Preferences), args.Error(1)
}

type mockCategoryService struct {
	mock.Mock
}

func (m *mockCategoryService) Create(ctx context.Context, creatorID uint, category domain.Category) (domain.Category, error) {
	args := m.Called(ctx, creatorID, category)
	return args.Get(0).(domain.Category), args.Error(1)
}

func (m *mockCategoryService) Get(ctx context.Context, id uint) (domain.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Category), args.Error(1)
}

func (m *mockCategoryService) List(ctx context.Context, query domain.CategoryQuery) (domain.Paginated[domain.Category], error) {
	args := m.Called(ctx, query)
	return args.Get(0).(domain.Paginated[domain.Category]), args.Error(1)
}

func (m *mockCategoryService) Update(ctx context.Context, userID, id uint, upd domain.CategoryUpdate) (domain.Category, error) {
	args := m.Called(ctx, userID, id, upd)
	return args.Get(0).(domain.Category), args.Error(1)
}

func (m *mockCategoryService) Delete(ctx context.Context, userID, id uint) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type mockEventService struct {
	mock.Mock
}

func (m *mockEventService) Get(ctx context.Context, requesterID uint, ref string) (domain.Event, error) {
	args := m.Called(ctx, requesterID, ref)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventService) Search(ctx context.Context, requesterID uint, filter domain.EventFilter, page domain.Page) (domain.Paginated[domain.Event], error) {
	args := m.Called(ctx, requesterID, filter, page)
	return args.Get(0).(domain.Paginated[domain.Event]), args.Error(1)
}

func (m *mockEventService) Create(ctx context.Context, organizerID uint, event domain.Event, image *service.ImageUpload) (domain.Event, error) {
	args := m.Called(ctx, organizerID, event, image)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventService) Update(ctx context.Context, userID uint, ref string, upd domain.EventUpdate) (domain.Event, error) {
	args := m.Called(ctx, userID, ref, upd)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventService) Delete(ctx context.Context, userID uint, ref string) error {
	args := m.Called(ctx, userID, ref)
	return args.Error(0)
}

func (m *mockEventService) UploadImage(ctx context.Context, userID uint, ref string, image service.ImageUpload) (domain.Event, error) {
	args := m.Called(ctx, userID, ref, image)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventService) ToggleFavorite(ctx context.Context, userID uint, ref string) (bool, error) {
	args := m.Called(ctx, userID, ref)
	return args.Bool(0), args.Error(1)
}

func (m *mockEventService) Registrations(ctx context.Context, userID uint, ref string, page domain.Page) (domain.Paginated[domain.Registration], error) {
	args := m.Called(ctx, userID, ref, page)
	return args.Get(0).(domain.Paginated[domain.Registration]), args.Error(1)
}

type mockRegistrationService struct {
	mock.Mock
}

func (m *mockRegistrationService) Register(ctx context.Context, userID, eventID uint, notes string) (domain.Registration, error) {
	args := m.Called(ctx, userID, eventID, notes)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockRegistrationService) Get(ctx context.Context, userID, id uint) (domain.Registration, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockRegistrationService) Mine(ctx context.Context, userID uint, page domain.Page) (domain.Paginated[domain.Registration], error) {
	args := m.Called(ctx, userID, page)
	return args.Get(0).(domain.Paginated[domain.Registration]), args.Error(1)
}

func (m *mockRegistrationService) Confirm(ctx context.Context, userID, id uint) (domain.Registration, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockRegistrationService) Cancel(ctx context.Context, userID, id uint) (domain.Registration, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockRegistrationService) Restore(ctx context.Context, userID, id uint) (domain.Registration, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockRegistrationService) QRCode(ctx context.Context, userID, id uint) ([]byte, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).([]byte), args.Error(1)
}

type mockCommentService struct {
	mock.Mock
}

func (m *mockCommentService) Create(ctx context.Context, authorID, eventID uint, parentID *uint, content string) (domain.Comment, error) {
	args := m.Called(ctx, authorID, eventID, parentID, content)
	return args.Get(0).(domain.Comment), args.Error(1)
}

func (m *mockCommentService) Update(ctx context.Context, userID, id uint, content string) (domain.Comment, error) {
	args := m.Called(ctx, userID, id, content)
	return args.Get(0).(domain.Comment), args.Error(1)
}

func (m *mockCommentService) Delete(ctx context.Context, userID, id uint) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *mockCommentService) ToggleLike(ctx context.Context, userID, id uint) (domain.LikeResult, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(domain.LikeResult), args.Error(1)
}

func (m *mockCommentService) ListByEvent(ctx context.Context, requesterID uint, eventRef string, page domain.Page) (domain.Paginated[domain.Comment], error) {
	args := m.Called(ctx, requesterID, eventRef, page)
	return args.Get(0).(domain.Paginated[domain.Comment]), args.Error(1)
}

func (m *mockCommentService) Replies(ctx context.Context, requesterID, id uint, page domain.Page) (domain.Paginated[domain.Comment], error) {
	args := m.Called(ctx, requesterID, id, page)
	return args.Get(0).(domain.Paginated[domain.Comment]), args.Error(1)
}
