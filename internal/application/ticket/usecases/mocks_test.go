package usecases

import (
	"context"
	"time"

	"deskflow/internal/domain/contact"
	"deskflow/internal/domain/shared/events"
	"deskflow/internal/domain/ticket"
	"deskflow/internal/shared/logger"
)

type mockTicketRepository struct {
	SaveFunc                       func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc                     func(ctx context.Context, t *ticket.Ticket) error
	GetByIDFunc                    func(ctx context.Context, id, companyID uint) (*ticket.Ticket, error)
	FindActiveByContactChannelFunc func(ctx context.Context, contactID, channelID, companyID uint) (*ticket.Ticket, error)

	FindActiveByContactChannelExcludingFunc func(ctx context.Context, contactID, channelID, companyID, excludeTicketID uint) (*ticket.Ticket, error)

	ListFunc func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id, companyID uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id, companyID)
	}
	return nil, nil
}

func (m *mockTicketRepository) FindActiveByContactChannel(ctx context.Context, contactID, channelID, companyID uint) (*ticket.Ticket, error) {
	if m.FindActiveByContactChannelFunc != nil {
		return m.FindActiveByContactChannelFunc(ctx, contactID, channelID, companyID)
	}
	return nil, nil
}

func (m *mockTicketRepository) FindActiveByContactChannelExcluding(ctx context.Context, contactID, channelID, companyID, excludeTicketID uint) (*ticket.Ticket, error) {
	if m.FindActiveByContactChannelExcludingFunc != nil {
		return m.FindActiveByContactChannelExcludingFunc(ctx, contactID, channelID, companyID, excludeTicketID)
	}
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockTrackingRepository struct {
	SaveFunc                     func(ctx context.Context, tr *ticket.Tracking) error
	UpdateFunc                   func(ctx context.Context, tr *ticket.Tracking) error
	FindOpenByTicketFunc         func(ctx context.Context, ticketID, companyID uint) (*ticket.Tracking, error)
	FindOrCreateOpenFunc         func(ctx context.Context, ticketID, companyID, channelID uint, userID *uint) (*ticket.Tracking, error)
	FindLastFinishedByTicketFunc func(ctx context.Context, ticketID, companyID uint) (*ticket.Tracking, error)
}

func (m *mockTrackingRepository) Save(ctx context.Context, tr *ticket.Tracking) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tr)
	}
	return nil
}

func (m *mockTrackingRepository) Update(ctx context.Context, tr *ticket.Tracking) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tr)
	}
	return nil
}

func (m *mockTrackingRepository) FindOpenByTicket(ctx context.Context, ticketID, companyID uint) (*ticket.Tracking, error) {
	if m.FindOpenByTicketFunc != nil {
		return m.FindOpenByTicketFunc(ctx, ticketID, companyID)
	}
	return nil, nil
}

func (m *mockTrackingRepository) FindOrCreateOpen(ctx context.Context, ticketID, companyID, channelID uint, userID *uint) (*ticket.Tracking, error) {
	if m.FindOrCreateOpenFunc != nil {
		return m.FindOrCreateOpenFunc(ctx, ticketID, companyID, channelID, userID)
	}
	tr, _ := ticket.NewTracking(ticketID, companyID, channelID, userID)
	return tr, nil
}

func (m *mockTrackingRepository) FindLastFinishedByTicket(ctx context.Context, ticketID, companyID uint) (*ticket.Tracking, error) {
	if m.FindLastFinishedByTicketFunc != nil {
		return m.FindLastFinishedByTicketFunc(ctx, ticketID, companyID)
	}
	return nil, nil
}

type mockContactRepository struct {
	GetByIDFunc func(ctx context.Context, id, companyID uint) (*contact.Contact, error)
}

func (m *mockContactRepository) GetByID(ctx context.Context, id, companyID uint) (*contact.Contact, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id, companyID)
	}
	return nil, nil
}

// mockTxRunner executes the function inline, so anything the usecase does
// "inside the transaction" runs synchronously against the mocks.
type mockTxRunner struct {
	RunInTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTransactionFunc != nil {
		return m.RunInTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockEventDispatcher struct {
	PublishFunc    func(event events.DomainEvent) error
	PublishAllFunc func(evts []events.DomainEvent) error
}

func (m *mockEventDispatcher) Publish(event events.DomainEvent) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(event)
	}
	return nil
}

func (m *mockEventDispatcher) PublishAll(evts []events.DomainEvent) error {
	if m.PublishAllFunc != nil {
		return m.PublishAllFunc(evts)
	}
	return nil
}

type mockAccessChecker struct {
	UserHasQueueAccessFunc func(ctx context.Context, userID, queueID uint) (bool, error)
	IsAdminFunc            func(ctx context.Context, userID uint) (bool, error)
}

func (m *mockAccessChecker) UserHasQueueAccess(ctx context.Context, userID, queueID uint) (bool, error) {
	if m.UserHasQueueAccessFunc != nil {
		return m.UserHasQueueAccessFunc(ctx, userID, queueID)
	}
	return true, nil
}

func (m *mockAccessChecker) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	if m.IsAdminFunc != nil {
		return m.IsAdminFunc(ctx, userID)
	}
	return false, nil
}

type mockSettingsProvider struct {
	GetSettingFunc func(ctx context.Context, companyID uint, key string) (string, error)
}

func (m *mockSettingsProvider) GetSetting(ctx context.Context, companyID uint, key string) (string, error) {
	if m.GetSettingFunc != nil {
		return m.GetSettingFunc(ctx, companyID, key)
	}
	return "", nil
}

// settingsMap is a convenience for tests that need several keys.
func settingsMap(values map[string]string) *mockSettingsProvider {
	return &mockSettingsProvider{
		GetSettingFunc: func(ctx context.Context, companyID uint, key string) (string, error) {
			return values[key], nil
		},
	}
}

type mockMessageGateway struct {
	SendMessageFunc func(ctx context.Context, channelID uint, contactAddress, body string) error
}

func (m *mockMessageGateway) SendMessage(ctx context.Context, channelID uint, contactAddress, body string) error {
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(ctx, channelID, contactAddress, body)
	}
	return nil
}

type mockDedupCache struct {
	MarkSentFunc func(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ClearFunc    func(ctx context.Context, key string) error
}

func (m *mockDedupCache) MarkSent(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if m.MarkSentFunc != nil {
		return m.MarkSentFunc(ctx, key, ttl)
	}
	return false, nil
}

func (m *mockDedupCache) Clear(ctx context.Context, key string) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx, key)
	}
	return nil
}

type mockRealtimePublisher struct {
	PublishFunc func(ctx context.Context, topic string, payload interface{}) error
}

func (m *mockRealtimePublisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, payload)
	}
	return nil
}

type mockLogger struct {
	InfowFunc  func(msg string, keysAndValues ...interface{})
	WarnwFunc  func(msg string, keysAndValues ...interface{})
	ErrorwFunc func(msg string, keysAndValues ...interface{})
}

func (m *mockLogger) Debug(msg string, args ...any) {}
func (m *mockLogger) Info(msg string, args ...any)  {}
func (m *mockLogger) Warn(msg string, args ...any)  {}
func (m *mockLogger) Error(msg string, args ...any) {}

func (m *mockLogger) With(args ...any) logger.Interface  { return m }
func (m *mockLogger) Named(name string) logger.Interface { return m }

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}

func (m *mockLogger) Infow(msg string, keysAndValues ...interface{}) {
	if m.InfowFunc != nil {
		m.InfowFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{}) {
	if m.WarnwFunc != nil {
		m.WarnwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {
	if m.ErrorwFunc != nil {
		m.ErrorwFunc(msg, keysAndValues...)
	}
}
