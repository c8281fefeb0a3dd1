package sync

import (
	"context"

	kanbanusecases "deskflow/internal/application/kanban/usecases"
	ticketusecases "deskflow/internal/application/ticket/usecases"

	"deskflow/internal/domain/kanban"
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

type mockCardRepository struct {
	SaveFunc               func(ctx context.Context, c *kanban.Card) error
	UpdateFunc             func(ctx context.Context, c *kanban.Card) error
	DeleteFunc             func(ctx context.Context, id uint) error
	GetByIDFunc            func(ctx context.Context, id, companyID uint) (*kanban.Card, error)
	FindActiveByTicketFunc func(ctx context.Context, ticketID, companyID uint) (*kanban.Card, error)
	ListByLaneFunc         func(ctx context.Context, laneID uint) ([]*kanban.Card, error)
	CountActiveByLaneFunc  func(ctx context.Context, laneID uint) (int64, error)
}

func (m *mockCardRepository) Save(ctx context.Context, c *kanban.Card) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, c)
	}
	return nil
}

func (m *mockCardRepository) Update(ctx context.Context, c *kanban.Card) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	return nil
}

func (m *mockCardRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockCardRepository) GetByID(ctx context.Context, id, companyID uint) (*kanban.Card, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id, companyID)
	}
	return nil, nil
}

func (m *mockCardRepository) FindActiveByTicket(ctx context.Context, ticketID, companyID uint) (*kanban.Card, error) {
	if m.FindActiveByTicketFunc != nil {
		return m.FindActiveByTicketFunc(ctx, ticketID, companyID)
	}
	return nil, nil
}

func (m *mockCardRepository) ListByLane(ctx context.Context, laneID uint) ([]*kanban.Card, error) {
	if m.ListByLaneFunc != nil {
		return m.ListByLaneFunc(ctx, laneID)
	}
	return nil, nil
}

func (m *mockCardRepository) CountActiveByLane(ctx context.Context, laneID uint) (int64, error) {
	if m.CountActiveByLaneFunc != nil {
		return m.CountActiveByLaneFunc(ctx, laneID)
	}
	return 0, nil
}

type mockLaneRepository struct {
	SaveFunc           func(ctx context.Context, l *kanban.Lane) error
	UpdateFunc         func(ctx context.Context, l *kanban.Lane) error
	DeleteFunc         func(ctx context.Context, id uint) error
	GetByIDFunc        func(ctx context.Context, id, companyID uint) (*kanban.Lane, error)
	GetByPositionFunc  func(ctx context.Context, boardID uint, position int) (*kanban.Lane, error)
	ListByBoardFunc    func(ctx context.Context, boardID uint, forUpdate bool) ([]*kanban.Lane, error)
	CountByBoardFunc   func(ctx context.Context, boardID uint) (int64, error)
	ApplyShiftFunc     func(ctx context.Context, boardID uint, shift kanban.Shift) error
	ApplyPositionsFunc func(ctx context.Context, boardID uint, assignments []kanban.PositionAssignment) error
}

func (m *mockLaneRepository) Save(ctx context.Context, l *kanban.Lane) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, l)
	}
	return nil
}

func (m *mockLaneRepository) Update(ctx context.Context, l *kanban.Lane) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, l)
	}
	return nil
}

func (m *mockLaneRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockLaneRepository) GetByID(ctx context.Context, id, companyID uint) (*kanban.Lane, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id, companyID)
	}
	return nil, nil
}

func (m *mockLaneRepository) GetByPosition(ctx context.Context, boardID uint, position int) (*kanban.Lane, error) {
	if m.GetByPositionFunc != nil {
		return m.GetByPositionFunc(ctx, boardID, position)
	}
	return nil, nil
}

func (m *mockLaneRepository) ListByBoard(ctx context.Context, boardID uint, forUpdate bool) ([]*kanban.Lane, error) {
	if m.ListByBoardFunc != nil {
		return m.ListByBoardFunc(ctx, boardID, forUpdate)
	}
	return nil, nil
}

func (m *mockLaneRepository) CountByBoard(ctx context.Context, boardID uint) (int64, error) {
	if m.CountByBoardFunc != nil {
		return m.CountByBoardFunc(ctx, boardID)
	}
	return 0, nil
}

func (m *mockLaneRepository) ApplyShift(ctx context.Context, boardID uint, shift kanban.Shift) error {
	if m.ApplyShiftFunc != nil {
		return m.ApplyShiftFunc(ctx, boardID, shift)
	}
	return nil
}

func (m *mockLaneRepository) ApplyPositions(ctx context.Context, boardID uint, assignments []kanban.PositionAssignment) error {
	if m.ApplyPositionsFunc != nil {
		return m.ApplyPositionsFunc(ctx, boardID, assignments)
	}
	return nil
}

type mockBoardRepository struct {
	SaveFunc           func(ctx context.Context, b *kanban.Board) error
	UpdateFunc         func(ctx context.Context, b *kanban.Board) error
	DeleteFunc         func(ctx context.Context, id, companyID uint) error
	GetByIDFunc        func(ctx context.Context, id, companyID uint) (*kanban.Board, error)
	GetDefaultFunc     func(ctx context.Context, companyID uint) (*kanban.Board, error)
	ListByCompanyFunc  func(ctx context.Context, companyID uint) ([]*kanban.Board, error)
	CountActiveFunc    func(ctx context.Context, companyID uint) (int64, error)
	DemoteDefaultsFunc func(ctx context.Context, companyID uint) error
}

func (m *mockBoardRepository) Save(ctx context.Context, b *kanban.Board) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, b)
	}
	return nil
}

func (m *mockBoardRepository) Update(ctx context.Context, b *kanban.Board) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, b)
	}
	return nil
}

func (m *mockBoardRepository) Delete(ctx context.Context, id, companyID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, companyID)
	}
	return nil
}

func (m *mockBoardRepository) GetByID(ctx context.Context, id, companyID uint) (*kanban.Board, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id, companyID)
	}
	return nil, nil
}

func (m *mockBoardRepository) GetDefault(ctx context.Context, companyID uint) (*kanban.Board, error) {
	if m.GetDefaultFunc != nil {
		return m.GetDefaultFunc(ctx, companyID)
	}
	return nil, nil
}

func (m *mockBoardRepository) ListByCompany(ctx context.Context, companyID uint) ([]*kanban.Board, error) {
	if m.ListByCompanyFunc != nil {
		return m.ListByCompanyFunc(ctx, companyID)
	}
	return nil, nil
}

func (m *mockBoardRepository) CountActive(ctx context.Context, companyID uint) (int64, error) {
	if m.CountActiveFunc != nil {
		return m.CountActiveFunc(ctx, companyID)
	}
	return 0, nil
}

func (m *mockBoardRepository) DemoteDefaults(ctx context.Context, companyID uint) error {
	if m.DemoteDefaultsFunc != nil {
		return m.DemoteDefaultsFunc(ctx, companyID)
	}
	return nil
}

type mockCreateCardExecutor struct {
	ExecuteFunc func(ctx context.Context, cmd kanbanusecases.CreateCardCommand) (*kanbanusecases.CreateCardResult, error)
}

func (m *mockCreateCardExecutor) Execute(ctx context.Context, cmd kanbanusecases.CreateCardCommand) (*kanbanusecases.CreateCardResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &kanbanusecases.CreateCardResult{Created: true}, nil
}

type mockUpdateTicketExecutor struct {
	ExecuteFunc func(ctx context.Context, cmd ticketusecases.UpdateTicketCommand) (*ticketusecases.UpdateTicketResult, error)
}

func (m *mockUpdateTicketExecutor) Execute(ctx context.Context, cmd ticketusecases.UpdateTicketCommand) (*ticketusecases.UpdateTicketResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &ticketusecases.UpdateTicketResult{}, nil
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

func settingsMap(values map[string]string) *mockSettingsProvider {
	return &mockSettingsProvider{
		GetSettingFunc: func(ctx context.Context, companyID uint, key string) (string, error) {
			return values[key], nil
		},
	}
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any) {}
func (m *mockLogger) Info(msg string, args ...any)  {}
func (m *mockLogger) Warn(msg string, args ...any)  {}
func (m *mockLogger) Error(msg string, args ...any) {}

func (m *mockLogger) With(args ...any) logger.Interface  { return m }
func (m *mockLogger) Named(name string) logger.Interface { return m }

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
