package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/social-events-api/internal/domain"
	"github.com/vietanh2810/social-events-api/internal/repository"
)

func newTestRegistrationService() (*RegistrationService, *mockRegistrationRepo, *mockEventFinder) {
	repo := &mockRegistrationRepo{}
	events := &mockEventFinder{}

	svc := NewRegistrationService(repo, events, "localhost:8080")
	svc.now = func() time.Time { return time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC) }

	return svc, repo, events
}

func TestRegistrationService_Register(t *testing.T) {
	ctx := context.Background()
	svc, repo, events := newTestRegistrationService()

	events.On("GetByID", ctx, uint(5), uint(1)).Return(futureEvent(1, 10), nil)
	repo.On("Create", ctx, domain.Registration{
		EventID:          1,
		AttendeeID:       5,
		Status:           domain.RegistrationPending,
		RegistrationDate: svc.now(),
		Notes:            "vegan",
	}).Return(domain.Registration{ID: 3, EventID: 1, AttendeeID: 5, Status: domain.RegistrationPending}, nil)

	reg, err := svc.Register(ctx, 5, 1, "vegan")
	require.NoError(t, err)
	assert.Equal(t, uint(3), reg.ID)
	repo.AssertExpectations(t)
}

func TestRegistrationService_RegisterErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{"duplicate caught by unique index", repository.ErrRegistrationDuplicate, domain.ErrRegistrationExists},
		{"duplicate caught by guard", fmt.Errorf("r.dao.InsertGuarded -> %w", domain.ErrRegistrationExists), domain.ErrRegistrationExists},
		{"event full", fmt.Errorf("r.dao.InsertGuarded -> %w", domain.ErrEventFull), domain.ErrEventFull},
		{"event cancelled", fmt.Errorf("r.dao.InsertGuarded -> %w", domain.ErrEventCancelled), domain.ErrEventCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, events := newTestRegistrationService()
			events.On("GetByID", ctx, uint(5), uint(1)).Return(futureEvent(1, 10), nil)
			repo.On("Create", ctx, mock.Anything).Return(domain.Registration{}, tt.repoErr)

			_, err := svc.Register(ctx, 5, 1, "")
			assert.ErrorIs(t, err, tt.wantErr)

			_, ok := AsValidationError(err)
			assert.True(t, ok)
		})
	}
}

func TestRegistrationService_RegisterInvisibleEvent(t *testing.T) {
	ctx := context.Background()
	svc, repo, events := newTestRegistrationService()

	events.On("GetByID", ctx, uint(5), uint(1)).Return(domain.Event{}, ErrEventNotFound)

	_, err := svc.Register(ctx, 5, 1, "")
	assert.ErrorIs(t, err, ErrEventNotFound)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegistrationService_Transitions(t *testing.T) {
	ctx := context.Background()

	pending := domain.Registration{ID: 3, EventID: 1, AttendeeID: 5, Status: domain.RegistrationPending}
	confirmed := domain.Registration{ID: 3, EventID: 1, AttendeeID: 5, Status: domain.RegistrationConfirmed}
	cancelledAt := time.Date(2029, 12, 1, 0, 0, 0, 0, time.UTC)
	cancelled := domain.Registration{ID: 3, EventID: 1, AttendeeID: 5, Status: domain.RegistrationCancelled, CancelledDate: &cancelledAt}

	t.Run("confirm pending", func(t *testing.T) {
		svc, repo, _ := newTestRegistrationService()
		repo.On("FindByID", ctx, uint(3)).Return(pending, nil)
		repo.On("Transition", ctx, confirmed, domain.RegistrationPending, false).Return(confirmed, nil)

		got, err := svc.Confirm(ctx, 5, 3)
		require.NoError(t, err)
		assert.Equal(t, domain.RegistrationConfirmed, got.Status)
	})

	t.Run("confirm confirmed", func(t *testing.T) {
		svc, repo, _ := newTestRegistrationService()
		repo.On("FindByID", ctx, uint(3)).Return(confirmed, nil)

		_, err := svc.Confirm(ctx, 5, 3)
		assert.ErrorIs(t, err, domain.ErrOnlyPendingConfirmable)
	})

	t.Run("cancel confirmed stamps the date", func(t *testing.T) {
		svc, repo, _ := newTestRegistrationService()
		now := svc.now()
		repo.On("FindByID", ctx, uint(3)).Return(confirmed, nil)
		repo.On("Transition", ctx, mock.MatchedBy(func(r domain.Registration) bool {
			return r.Status == domain.RegistrationCancelled && r.CancelledDate != nil && r.CancelledDate.Equal(now)
		}), domain.RegistrationConfirmed, false).Return(cancelled, nil)

		got, err := svc.Cancel(ctx, 5, 3)
		require.NoError(t, err)
		assert.Equal(t, domain.RegistrationCancelled, got.Status)
	})

	t.Run("cancel cancelled", func(t *testing.T) {
		svc, repo, _ := newTestRegistrationService()
		repo.On("FindByID", ctx, uint(3)).Return(cancelled, nil)

		_, err := svc.Cancel(ctx, 5, 3)
		assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
	})

	t.Run("restore checks the seat", func(t *testing.T) {
		svc, repo, _ := newTestRegistrationService()
		repo.On("FindByID", ctx, uint(3)).Return(cancelled, nil)
		repo.On("Transition", ctx, pending, domain.RegistrationCancelled, true).Return(pending, nil)

		got, err := svc.Restore(ctx, 5, 3)
		require.NoError(t, err)
		assert.Equal(t, domain.RegistrationPending, got.Status)
		assert.Nil(t, got.CancelledDate)
	})

	t.Run("restore pending", func(t *testing.T) {
		svc, repo, _ := newTestRegistrationService()
		repo.On("FindByID", ctx, uint(3)).Return(pending, nil)

		_, err := svc.Restore(ctx, 5, 3)
		assert.ErrorIs(t, err, domain.ErrNotCancelled)
	})

	t.Run("restore on a full event", func(t *testing.T) {
		svc, repo, _ := newTestRegistrationService()
		repo.On("FindByID", ctx, uint(3)).Return(cancelled, nil)
		repo.On("Transition", ctx, pending, domain.RegistrationCancelled, true).
			Return(domain.Registration{}, fmt.Errorf("r.dao.Transition -> %w", domain.ErrEventFull))

		_, err := svc.Restore(ctx, 5, 3)
		assert.ErrorIs(t, err, domain.ErrEventFull)
	})

	t.Run("only the attendee", func(t *testing.T) {
		svc, repo, _ := newTestRegistrationService()
		repo.On("FindByID", ctx, uint(3)).Return(pending, nil)

		_, err := svc.Confirm(ctx, 10, 3)
		assert.ErrorIs(t, err, ErrNotRegistrationActor)
		repo.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("concurrent change", func(t *testing.T) {
		svc, repo, _ := newTestRegistrationService()
		repo.On("FindByID", ctx, uint(3)).Return(pending, nil)
		repo.On("Transition", ctx, confirmed, domain.RegistrationPending, false).
			Return(domain.Registration{}, repository.ErrRegistrationStale)

		_, err := svc.Confirm(ctx, 5, 3)
		assert.ErrorIs(t, err, errRegistrationChanged)
	})
}

func TestRegistrationService_Get(t *testing.T) {
	ctx := context.Background()
	svc, repo, events := newTestRegistrationService()

	reg := domain.Registration{ID: 3, EventID: 1, AttendeeID: 5, Status: domain.RegistrationPending}
	repo.On("FindByID", ctx, uint(3)).Return(reg, nil)
	events.On("GetByID", ctx, uint(10), uint(1)).Return(futureEvent(1, 10), nil)
	events.On("GetByID", ctx, uint(11), uint(1)).Return(futureEvent(1, 10), nil)

	_, err := svc.Get(ctx, 5, 3)
	require.NoError(t, err)

	_, err = svc.Get(ctx, 10, 3)
	require.NoError(t, err)

	_, err = svc.Get(ctx, 11, 3)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestRegistrationService_QRCode(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestRegistrationService()

	repo.On("FindByID", ctx, uint(3)).Return(domain.Registration{ID: 3, EventID: 1, AttendeeID: 5}, nil)

	png, err := svc.QRCode(ctx, 5, 3)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
	assert.Equal(t, "http://localhost:8080/api/v1/registrations/3", svc.TicketURL(3))
}
