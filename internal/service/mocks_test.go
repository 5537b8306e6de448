package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/vietanh2810/social-events-api/internal/domain"
)

type mockSlugChecker struct {
	mock.Mock
}

func (m *mockSlugChecker) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

type mockAuthRepo struct {
	mock.Mock
}

func (m *mockAuthRepo) Create(ctx context.Context, user domain.User, prefs domain.Preferences) (domain.User, error) {
	args := m.Called(ctx, user, prefs)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuthRepo) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuthRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockBlacklist struct {
	mock.Mock
}

func (m *mockBlacklist) Add(ctx context.Context, jti string, ttl time.Duration) error {
	args := m.Called(ctx, jti, ttl)
	return args.Error(0)
}

func (m *mockBlacklist) Contains(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventRepo) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventRepo) FindBySlug(ctx context.Context, slug string) (domain.Event, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventRepo) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockEventRepo) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventRepo) UpdateImage(ctx context.Context, id uint, image string) (domain.Event, error) {
	args := m.Called(ctx, id, image)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockEventRepo) ToggleFavorite(ctx context.Context, eventID, userID uint) (bool, error) {
	args := m.Called(ctx, eventID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockEventRepo) Search(ctx context.Context, requesterID uint, filter domain.EventFilter, page domain.Page) ([]domain.Event, int64, error) {
	args := m.Called(ctx, requesterID, filter, page)
	return args.Get(0).([]domain.Event), args.Get(1).(int64), args.Error(2)
}

type mockCategoryFinder struct {
	mock.Mock
}

func (m *mockCategoryFinder) FindByID(ctx context.Context, id uint) (domain.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Category), args.Error(1)
}

type mockRegistrationLister struct {
	mock.Mock
}

func (m *mockRegistrationLister) ListByEvent(ctx context.Context, eventID uint, page domain.Page) ([]domain.Registration, int64, error) {
	args := m.Called(ctx, eventID, page)
	return args.Get(0).([]domain.Registration), args.Get(1).(int64), args.Error(2)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Save(ctx context.Context, dir, ext string, r io.Reader) (string, error) {
	args := m.Called(ctx, dir, ext, r)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) Delete(ctx context.Context, publicPath string) error {
	args := m.Called(ctx, publicPath)
	return args.Error(0)
}

type mockRegistrationRepo struct {
	mock.Mock
}

func (m *mockRegistrationRepo) Create(ctx context.Context, reg domain.Registration) (domain.Registration, error) {
	args := m.Called(ctx, reg)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockRegistrationRepo) Transition(ctx context.Context, reg domain.Registration, from string, checkSeat bool) (domain.Registration, error) {
	args := m.Called(ctx, reg, from, checkSeat)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockRegistrationRepo) FindByID(ctx context.Context, id uint) (domain.Registration, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockRegistrationRepo) ListByAttendee(ctx context.Context, attendeeID uint, page domain.Page) ([]domain.Registration, int64, error) {
	args := m.Called(ctx, attendeeID, page)
	return args.Get(0).([]domain.Registration), args.Get(1).(int64), args.Error(2)
}

type mockEventFinder struct {
	mock.Mock
}

func (m *mockEventFinder) Get(ctx context.Context, requesterID uint, ref string) (domain.Event, error) {
	args := m.Called(ctx, requesterID, ref)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventFinder) GetByID(ctx context.Context, requesterID, id uint) (domain.Event, error) {
	args := m.Called(ctx, requesterID, id)
	return args.Get(0).(domain.Event), args.Error(1)
}

type mockCommentRepo struct {
	mock.Mock
}

func (m *mockCommentRepo) Create(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	args := m.Called(ctx, comment)
	return args.Get(0).(domain.Comment), args.Error(1)
}

func (m *mockCommentRepo) FindByID(ctx context.Context, id uint) (domain.Comment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Comment), args.Error(1)
}

func (m *mockCommentRepo) ListByEvent(ctx context.Context, eventID uint, page domain.Page) ([]domain.Comment, int64, error) {
	args := m.Called(ctx, eventID, page)
	return args.Get(0).([]domain.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *mockCommentRepo) ListReplies(ctx context.Context, parentID uint, page domain.Page) ([]domain.Comment, int64, error) {
	args := m.Called(ctx, parentID, page)
	return args.Get(0).([]domain.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *mockCommentRepo) UpdateContent(ctx context.Context, id uint, content string) (domain.Comment, error) {
	args := m.Called(ctx, id, content)
	return args.Get(0).(domain.Comment), args.Error(1)
}

func (m *mockCommentRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCommentRepo) ToggleLike(ctx context.Context, commentID, userID uint) (domain.LikeResult, error) {
	args := m.Called(ctx, commentID, userID)
	return args.Get(0).(domain.LikeResult), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(comment domain.Comment) {
	m.Called(comment)
}
