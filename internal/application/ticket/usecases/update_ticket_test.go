package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deskflow/internal/domain/shared/events"
	"deskflow/internal/domain/ticket"
	vo "deskflow/internal/domain/ticket/valueobjects"
	"deskflow/internal/shared/constants"
	"deskflow/internal/shared/errors"
)

func newUpdateUseCase(
	ticketRepo *mockTicketRepository,
	trackingRepo *mockTrackingRepository,
	access *mockAccessChecker,
	settings *mockSettingsProvider,
	dispatcher *mockEventDispatcher,
) *UpdateTicketUseCase {
	if trackingRepo == nil {
		trackingRepo = &mockTrackingRepository{}
	}
	if access == nil {
		access = &mockAccessChecker{}
	}
	if settings == nil {
		settings = &mockSettingsProvider{}
	}
	if dispatcher == nil {
		dispatcher = &mockEventDispatcher{}
	}
	return NewUpdateTicketUseCase(
		ticketRepo,
		trackingRepo,
		&mockContactRepository{},
		&mockTxRunner{},
		dispatcher,
		access,
		settings,
		&mockMessageGateway{},
		&mockDedupCache{},
		&mockRealtimePublisher{},
		&mockLogger{},
	)
}

func statusPtr(s vo.TicketStatus) *vo.TicketStatus { return &s }

func TestUpdateTicketUseCase_Execute_AcceptPendingToOpen(t *testing.T) {
	existing := reconstructTicket(t, 1, vo.StatusPending, uintPtr(2), nil)

	var updatedTracking *ticket.Tracking
	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id, companyID uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}
	trackingRepo := &mockTrackingRepository{
		UpdateFunc: func(ctx context.Context, tr *ticket.Tracking) error {
			updatedTracking = tr
			return nil
		},
	}

	uc := newUpdateUseCase(ticketRepo, trackingRepo, nil, nil, nil)

	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:     1,
		CompanyID:    1,
		ActingUserID: 5,
		Status:       statusPtr(vo.StatusOpen),
		UserID:       uintPtr(5),
	})

	require.NoError(t, err)
	assert.Equal(t, vo.StatusPending.String(), result.OldStatus)
	assert.Equal(t, vo.StatusOpen.String(), result.NewStatus)
	require.NotNil(t, existing.UserID())
	assert.Equal(t, uint(5), *existing.UserID())
	require.NotNil(t, updatedTracking)
	require.NotNil(t, updatedTracking.UserID())
	assert.Equal(t, uint(5), *updatedTracking.UserID())
}

func TestUpdateTicketUseCase_Execute_CloseFinishesTrackingAndRequestsRating(t *testing.T) {
	existing := reconstructTicket(t, 1, vo.StatusOpen, uintPtr(2), uintPtr(5))

	var updatedTracking *ticket.Tracking
	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id, companyID uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}
	trackingRepo := &mockTrackingRepository{
		UpdateFunc: func(ctx context.Context, tr *ticket.Tracking) error {
			updatedTracking = tr
			return nil
		},
	}

	uc := newUpdateUseCase(ticketRepo, trackingRepo, nil, nil, nil)

	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:     1,
		CompanyID:    1,
		ActingUserID: 5,
		Status:       statusPtr(vo.StatusClosed),
	})

	require.NoError(t, err)
	assert.Equal(t, vo.StatusClosed.String(), result.NewStatus)
	assert.True(t, existing.Status().IsClosed())
	assert.NotNil(t, existing.ClosedAt())
	require.NotNil(t, updatedTracking)
	assert.NotNil(t, updatedTracking.FinishedAt())
	assert.NotNil(t, updatedTracking.RatingAt())
}

func TestUpdateTicketUseCase_Execute_ReopenClearsQueueAndUser(t *testing.T) {
	existing := reconstructTicket(t, 1, vo.StatusClosed, uintPtr(2), uintPtr(5))

	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id, companyID uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}

	dispatched := []string{}
	dispatcher := &mockEventDispatcher{
		PublishFunc: func(evt events.DomainEvent) error {
			dispatched = append(dispatched, evt.GetEventType())
			return nil
		},
	}

	uc := newUpdateUseCase(ticketRepo, nil, nil, nil, dispatcher)

	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:     1,
		CompanyID:    1,
		ActingUserID: 5,
		Status:       statusPtr(vo.StatusPending),
	})

	require.NoError(t, err)
	assert.Equal(t, vo.StatusPending.String(), result.NewStatus)
	assert.Nil(t, existing.QueueID())
	assert.Nil(t, existing.UserID())
	assert.Contains(t, dispatched, ticket.EventTicketReopened)
}

func finishedTracking(t *testing.T, userID *uint, ratingRequested bool) *ticket.Tracking {
	t.Helper()
	started := time.Now().Add(-time.Hour)
	finished := time.Now().Add(-10 * time.Minute)
	var ratingAt *time.Time
	if ratingRequested {
		ratingAt = &finished
	}
	tr, err := ticket.ReconstructTracking(
		9, 1, 1, 20, uintPtr(2), userID,
		started, nil, &finished, ratingAt, false, started, finished,
	)
	require.NoError(t, err)
	return tr
}

func TestUpdateTicketUseCase_Execute_ReopenForcedRetriageIgnoresQueueTarget(t *testing.T) {
	existing := reconstructTicket(t, 1, vo.StatusClosed, uintPtr(2), uintPtr(5))

	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id, companyID uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}
	// A rating request went out while agent 5 owned the interval: the
	// reopen must land in triage, ignoring the caller's queue target.
	trackingRepo := &mockTrackingRepository{
		FindLastFinishedByTicketFunc: func(ctx context.Context, ticketID, companyID uint) (*ticket.Tracking, error) {
			return finishedTracking(t, uintPtr(5), true), nil
		},
	}

	uc := newUpdateUseCase(ticketRepo, trackingRepo, nil, nil, nil)

	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:     1,
		CompanyID:    1,
		ActingUserID: 5,
		Status:       statusPtr(vo.StatusPending),
		QueueID:      uintPtr(9),
	})

	require.NoError(t, err)
	assert.Equal(t, vo.StatusPending.String(), result.NewStatus)
	assert.Nil(t, existing.QueueID())
	assert.Nil(t, existing.UserID())
}

func TestUpdateTicketUseCase_Execute_ReopenWithoutRetriagePreassignsQueue(t *testing.T) {
	existing := reconstructTicket(t, 1, vo.StatusClosed, uintPtr(2), uintPtr(5))

	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id, companyID uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}
	trackingRepo := &mockTrackingRepository{
		FindLastFinishedByTicketFunc: func(ctx context.Context, ticketID, companyID uint) (*ticket.Tracking, error) {
			return finishedTracking(t, uintPtr(5), false), nil
		},
	}

	uc := newUpdateUseCase(ticketRepo, trackingRepo, nil, nil, nil)

	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:     1,
		CompanyID:    1,
		ActingUserID: 5,
		Status:       statusPtr(vo.StatusPending),
		QueueID:      uintPtr(9),
	})

	require.NoError(t, err)
	assert.Equal(t, vo.StatusPending.String(), result.NewStatus)
	require.NotNil(t, existing.QueueID())
	assert.Equal(t, uint(9), *existing.QueueID())
	assert.Nil(t, existing.UserID())
}

func TestUpdateTicketUseCase_Execute_QueueMembershipRequired(t *testing.T) {
	existing := reconstructTicket(t, 1, vo.StatusPending, uintPtr(2), nil)

	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id, companyID uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}
	settings := settingsMap(map[string]string{
		constants.SettingRequireQueueOnAccept: "enabled",
	})
	access := &mockAccessChecker{
		UserHasQueueAccessFunc: func(ctx context.Context, userID, queueID uint) (bool, error) {
			return false, nil
		},
	}

	uc := newUpdateUseCase(ticketRepo, nil, access, settings, nil)

	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:     1,
		CompanyID:    1,
		ActingUserID: 5,
		Status:       statusPtr(vo.StatusOpen),
		UserID:       uintPtr(5),
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsForbiddenError(err))
	assert.True(t, existing.Status().IsPending())
}

func TestUpdateTicketUseCase_Execute_AdminBypassesQueueMembership(t *testing.T) {
	existing := reconstructTicket(t, 1, vo.StatusPending, uintPtr(2), nil)

	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id, companyID uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}
	settings := settingsMap(map[string]string{
		constants.SettingRequireQueueOnAccept: "enabled",
	})
	access := &mockAccessChecker{
		IsAdminFunc: func(ctx context.Context, userID uint) (bool, error) {
			return true, nil
		},
		UserHasQueueAccessFunc: func(ctx context.Context, userID, queueID uint) (bool, error) {
			t.Fatal("queue access must not be checked for admins")
			return false, nil
		},
	}

	uc := newUpdateUseCase(ticketRepo, nil, access, settings, nil)

	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:     1,
		CompanyID:    1,
		ActingUserID: 9,
		Status:       statusPtr(vo.StatusOpen),
		UserID:       uintPtr(9),
	})

	require.NoError(t, err)
	assert.Equal(t, vo.StatusOpen.String(), result.NewStatus)
}

func TestUpdateTicketUseCase_Execute_ConflictingTransferRejected(t *testing.T) {
	existing := reconstructTicket(t, 1, vo.StatusOpen, uintPtr(2), uintPtr(5))
	other := reconstructTicket(t, 2, vo.StatusOpen, uintPtr(3), uintPtr(7))

	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id, companyID uint) (*ticket.Ticket, error) {
			return existing, nil
		},
		FindActiveByContactChannelExcludingFunc: func(ctx context.Context, contactID, channelID, companyID, excludeTicketID uint) (*ticket.Ticket, error) {
			assert.Equal(t, uint(1), excludeTicketID)
			return other, nil
		},
	}

	uc := newUpdateUseCase(ticketRepo, nil, nil, nil, nil)

	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:     1,
		CompanyID:    1,
		ActingUserID: 5,
		QueueID:      uintPtr(4),
		Transfer:     true,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsConflictError(err))
	assert.True(t, errors.HasReason(err, errors.ReasonConflictingTicket))
}

func TestUpdateTicketUseCase_Execute_ConflictingTransferSeesOlderTicket(t *testing.T) {
	// The ticket being transferred is the newest active row for the
	// contact/channel; the guard must still surface the older open ticket
	// instead of matching itself.
	older := reconstructTicket(t, 1, vo.StatusOpen, uintPtr(2), uintPtr(11))
	newest := reconstructTicket(t, 2, vo.StatusPending, uintPtr(3), nil)

	actives := []*ticket.Ticket{newest, older}
	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id, companyID uint) (*ticket.Ticket, error) {
			return newest, nil
		},
		FindActiveByContactChannelExcludingFunc: func(ctx context.Context, contactID, channelID, companyID, excludeTicketID uint) (*ticket.Ticket, error) {
			for _, tk := range actives {
				if tk.ID() != excludeTicketID {
					return tk, nil
				}
			}
			return nil, nil
		},
	}

	uc := newUpdateUseCase(ticketRepo, nil, nil, nil, nil)

	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:     2,
		CompanyID:    1,
		ActingUserID: 22,
		UserID:       uintPtr(22),
		Transfer:     true,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsConflictError(err))
	assert.True(t, errors.HasReason(err, errors.ReasonConflictingTicket))
	assert.True(t, newest.Status().IsPending())
}

func TestUpdateTicketUseCase_Execute_ConflictAllowedForOwningAgent(t *testing.T) {
	existing := reconstructTicket(t, 1, vo.StatusOpen, uintPtr(2), uintPtr(5))
	other := reconstructTicket(t, 2, vo.StatusOpen, uintPtr(3), uintPtr(5))

	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id, companyID uint) (*ticket.Ticket, error) {
			return existing, nil
		},
		FindActiveByContactChannelExcludingFunc: func(ctx context.Context, contactID, channelID, companyID, excludeTicketID uint) (*ticket.Ticket, error) {
			return other, nil
		},
	}

	uc := newUpdateUseCase(ticketRepo, nil, nil, nil, nil)

	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:     1,
		CompanyID:    1,
		ActingUserID: 5,
		QueueID:      uintPtr(4),
		Transfer:     true,
	})

	require.NoError(t, err)
	require.NotNil(t, result.QueueID)
	assert.Equal(t, uint(4), *result.QueueID)
}

func TestUpdateTicketUseCase_Execute_TransferPolicyClosesAndOpensNewTicket(t *testing.T) {
	existing := reconstructTicket(t, 1, vo.StatusOpen, uintPtr(2), uintPtr(5))

	var savedNew *ticket.Ticket
	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id, companyID uint) (*ticket.Ticket, error) {
			return existing, nil
		},
		SaveFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			require.NoError(t, tk.SetID(99))
			savedNew = tk
			return nil
		},
	}
	settings := settingsMap(map[string]string{
		constants.SettingNewTicketOnTransferQueue: "4,8",
	})

	dispatched := []string{}
	dispatcher := &mockEventDispatcher{
		PublishFunc: func(evt events.DomainEvent) error {
			dispatched = append(dispatched, evt.GetEventType())
			return nil
		},
	}

	uc := newUpdateUseCase(ticketRepo, nil, nil, settings, dispatcher)

	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:     1,
		CompanyID:    1,
		ActingUserID: 5,
		QueueID:      uintPtr(4),
		Transfer:     true,
	})

	require.NoError(t, err)
	assert.True(t, existing.Status().IsClosed())
	require.NotNil(t, result.NewTicketID)
	assert.Equal(t, uint(99), *result.NewTicketID)
	require.NotNil(t, savedNew)
	assert.True(t, savedNew.Status().IsPending())
	require.NotNil(t, savedNew.QueueID())
	assert.Equal(t, uint(4), *savedNew.QueueID())
	assert.Contains(t, dispatched, ticket.EventTicketClosed)
	assert.Contains(t, dispatched, ticket.EventTicketCreated)
}

func TestUpdateTicketUseCase_Execute_TicketNotFound(t *testing.T) {
	uc := newUpdateUseCase(&mockTicketRepository{}, nil, nil, nil, nil)

	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:     77,
		CompanyID:    1,
		ActingUserID: 5,
		Status:       statusPtr(vo.StatusClosed),
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestUpdateTicketUseCase_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		cmd  UpdateTicketCommand
	}{
		{name: "missing ticket id", cmd: UpdateTicketCommand{CompanyID: 1, ActingUserID: 5}},
		{name: "missing company id", cmd: UpdateTicketCommand{TicketID: 1, ActingUserID: 5}},
		{name: "missing acting user", cmd: UpdateTicketCommand{TicketID: 1, CompanyID: 1}},
		{name: "transfer without target", cmd: UpdateTicketCommand{TicketID: 1, CompanyID: 1, ActingUserID: 5, Transfer: true}},
	}

	uc := newUpdateUseCase(&mockTicketRepository{}, nil, nil, nil, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := uc.Execute(context.Background(), tt.cmd)
			assert.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}
