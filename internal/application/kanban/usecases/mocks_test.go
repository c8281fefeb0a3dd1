package usecases

import (
	"context"
	"time"

	"deskflow/internal/domain/contact"
	"deskflow/internal/domain/kanban"
	"deskflow/internal/domain/shared/events"
	"deskflow/internal/shared/logger"
)

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

type mockChecklistRepository struct {
	GetTemplateFunc        func(ctx context.Context, id, companyID uint) (*kanban.ChecklistTemplate, error)
	SaveTemplateFunc       func(ctx context.Context, t *kanban.ChecklistTemplate) error
	SaveItemFunc           func(ctx context.Context, item *kanban.ChecklistItem) error
	UpdateItemFunc         func(ctx context.Context, item *kanban.ChecklistItem) error
	DeleteItemFunc         func(ctx context.Context, id uint) error
	GetItemFunc            func(ctx context.Context, id uint) (*kanban.ChecklistItem, error)
	ListItemsByCardFunc    func(ctx context.Context, cardID uint, forUpdate bool) ([]*kanban.ChecklistItem, error)
	ApplyItemShiftFunc     func(ctx context.Context, cardID uint, shift kanban.Shift) error
	ApplyItemPositionsFunc func(ctx context.Context, cardID uint, assignments []kanban.PositionAssignment) error
}

func (m *mockChecklistRepository) GetTemplate(ctx context.Context, id, companyID uint) (*kanban.ChecklistTemplate, error) {
	if m.GetTemplateFunc != nil {
		return m.GetTemplateFunc(ctx, id, companyID)
	}
	return nil, nil
}

func (m *mockChecklistRepository) SaveTemplate(ctx context.Context, t *kanban.ChecklistTemplate) error {
	if m.SaveTemplateFunc != nil {
		return m.SaveTemplateFunc(ctx, t)
	}
	return nil
}

func (m *mockChecklistRepository) SaveItem(ctx context.Context, item *kanban.ChecklistItem) error {
	if m.SaveItemFunc != nil {
		return m.SaveItemFunc(ctx, item)
	}
	return nil
}

func (m *mockChecklistRepository) UpdateItem(ctx context.Context, item *kanban.ChecklistItem) error {
	if m.UpdateItemFunc != nil {
		return m.UpdateItemFunc(ctx, item)
	}
	return nil
}

func (m *mockChecklistRepository) DeleteItem(ctx context.Context, id uint) error {
	if m.DeleteItemFunc != nil {
		return m.DeleteItemFunc(ctx, id)
	}
	return nil
}

func (m *mockChecklistRepository) GetItem(ctx context.Context, id uint) (*kanban.ChecklistItem, error) {
	if m.GetItemFunc != nil {
		return m.GetItemFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockChecklistRepository) ListItemsByCard(ctx context.Context, cardID uint, forUpdate bool) ([]*kanban.ChecklistItem, error) {
	if m.ListItemsByCardFunc != nil {
		return m.ListItemsByCardFunc(ctx, cardID, forUpdate)
	}
	return nil, nil
}

func (m *mockChecklistRepository) ApplyItemShift(ctx context.Context, cardID uint, shift kanban.Shift) error {
	if m.ApplyItemShiftFunc != nil {
		return m.ApplyItemShiftFunc(ctx, cardID, shift)
	}
	return nil
}

func (m *mockChecklistRepository) ApplyItemPositions(ctx context.Context, cardID uint, assignments []kanban.PositionAssignment) error {
	if m.ApplyItemPositionsFunc != nil {
		return m.ApplyItemPositionsFunc(ctx, cardID, assignments)
	}
	return nil
}

type mockMetricRepository struct {
	AppendFunc func(ctx context.Context, m *kanban.Metric) error
}

func (m *mockMetricRepository) Append(ctx context.Context, metric *kanban.Metric) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, metric)
	}
	return nil
}

type mockStatsQuery struct {
	AvgTimeInLaneFunc      func(ctx context.Context, boardID, companyID uint, from, to time.Time) ([]kanban.LaneDwell, error)
	ThroughputByDayFunc    func(ctx context.Context, boardID, companyID uint, from, to time.Time) ([]kanban.DayThroughput, error)
	LeadTimeHoursFunc      func(ctx context.Context, boardID, companyID uint, from, to time.Time) (float64, error)
	ProductivityByUserFunc func(ctx context.Context, boardID, companyID uint, from, to time.Time) ([]kanban.UserProductivity, error)
	CardDistributionFunc   func(ctx context.Context, boardID, companyID uint) ([]kanban.LaneDistribution, error)
	CameFromLaneCountsFunc func(ctx context.Context, laneID, companyID uint) (int64, int64, error)
}

func (m *mockStatsQuery) AvgTimeInLane(ctx context.Context, boardID, companyID uint, from, to time.Time) ([]kanban.LaneDwell, error) {
	if m.AvgTimeInLaneFunc != nil {
		return m.AvgTimeInLaneFunc(ctx, boardID, companyID, from, to)
	}
	return nil, nil
}

func (m *mockStatsQuery) ThroughputByDay(ctx context.Context, boardID, companyID uint, from, to time.Time) ([]kanban.DayThroughput, error) {
	if m.ThroughputByDayFunc != nil {
		return m.ThroughputByDayFunc(ctx, boardID, companyID, from, to)
	}
	return nil, nil
}

func (m *mockStatsQuery) LeadTimeHours(ctx context.Context, boardID, companyID uint, from, to time.Time) (float64, error) {
	if m.LeadTimeHoursFunc != nil {
		return m.LeadTimeHoursFunc(ctx, boardID, companyID, from, to)
	}
	return 0, nil
}

func (m *mockStatsQuery) ProductivityByUser(ctx context.Context, boardID, companyID uint, from, to time.Time) ([]kanban.UserProductivity, error) {
	if m.ProductivityByUserFunc != nil {
		return m.ProductivityByUserFunc(ctx, boardID, companyID, from, to)
	}
	return nil, nil
}

func (m *mockStatsQuery) CardDistribution(ctx context.Context, boardID, companyID uint) ([]kanban.LaneDistribution, error) {
	if m.CardDistributionFunc != nil {
		return m.CardDistributionFunc(ctx, boardID, companyID)
	}
	return nil, nil
}

func (m *mockStatsQuery) CameFromLaneCounts(ctx context.Context, laneID, companyID uint) (int64, int64, error) {
	if m.CameFromLaneCountsFunc != nil {
		return m.CameFromLaneCountsFunc(ctx, laneID, companyID)
	}
	return 0, 0, nil
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

type mockRealtimePublisher struct {
	PublishFunc func(ctx context.Context, topic string, payload interface{}) error
}

func (m *mockRealtimePublisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, payload)
	}
	return nil
}

type mockMovementRecorder struct {
	ExecuteFunc func(ctx context.Context, cmd RecordCardMovementCommand)
}

func (m *mockMovementRecorder) Execute(ctx context.Context, cmd RecordCardMovementCommand) {
	if m.ExecuteFunc != nil {
		m.ExecuteFunc(ctx, cmd)
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
