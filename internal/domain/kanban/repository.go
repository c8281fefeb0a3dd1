package kanban

import (
	"context"
	"time"
)

// BoardRepository persists boards. All lookups are tenant-scoped.
type BoardRepository interface {
	Save(ctx context.Context, b *Board) error
	Update(ctx context.Context, b *Board) error
	Delete(ctx context.Context, id, companyID uint) error
	GetByID(ctx context.Context, id, companyID uint) (*Board, error)

	// GetDefault returns the company's default board, or nil when none is
	// marked default.
	GetDefault(ctx context.Context, companyID uint) (*Board, error)

	ListByCompany(ctx context.Context, companyID uint) ([]*Board, error)
	CountActive(ctx context.Context, companyID uint) (int64, error)

	// DemoteDefaults clears the default flag on every board of the company.
	// Run inside the same transaction as the subsequent promotion.
	DemoteDefaults(ctx context.Context, companyID uint) error
}

// LaneRepository persists lanes and applies the position planner's shifts.
// Shift and bulk-position writes require an open transaction; ListByBoard
// with forUpdate locks the sibling set for the duration of a reorder.
type LaneRepository interface {
	Save(ctx context.Context, l *Lane) error
	Update(ctx context.Context, l *Lane) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id, companyID uint) (*Lane, error)
	GetByPosition(ctx context.Context, boardID uint, position int) (*Lane, error)
	ListByBoard(ctx context.Context, boardID uint, forUpdate bool) ([]*Lane, error)
	CountByBoard(ctx context.Context, boardID uint) (int64, error)

	// ApplyShift moves every lane of the board whose position falls in the
	// shift range by the shift delta.
	ApplyShift(ctx context.Context, boardID uint, shift Shift) error

	// ApplyPositions writes a validated bulk reorder verbatim.
	ApplyPositions(ctx context.Context, boardID uint, assignments []PositionAssignment) error
}

// CardRepository persists cards. Lookups join through lane and board so the
// company scope is enforced on every access.
type CardRepository interface {
	Save(ctx context.Context, c *Card) error
	Update(ctx context.Context, c *Card) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id, companyID uint) (*Card, error)

	// FindActiveByTicket returns the single non-archived card mirroring a
	// ticket, or nil. The sync bridge guards every create with this lookup.
	FindActiveByTicket(ctx context.Context, ticketID, companyID uint) (*Card, error)

	ListByLane(ctx context.Context, laneID uint) ([]*Card, error)
	CountActiveByLane(ctx context.Context, laneID uint) (int64, error)
}

// ChecklistRepository persists templates and per-card checklist items.
type ChecklistRepository interface {
	GetTemplate(ctx context.Context, id, companyID uint) (*ChecklistTemplate, error)
	SaveTemplate(ctx context.Context, t *ChecklistTemplate) error

	SaveItem(ctx context.Context, item *ChecklistItem) error
	UpdateItem(ctx context.Context, item *ChecklistItem) error
	DeleteItem(ctx context.Context, id uint) error
	GetItem(ctx context.Context, id uint) (*ChecklistItem, error)
	ListItemsByCard(ctx context.Context, cardID uint, forUpdate bool) ([]*ChecklistItem, error)

	ApplyItemShift(ctx context.Context, cardID uint, shift Shift) error
	ApplyItemPositions(ctx context.Context, cardID uint, assignments []PositionAssignment) error
}

// MetricRepository appends metric fact rows.
type MetricRepository interface {
	Append(ctx context.Context, m *Metric) error
}

// LaneDwell is the average recorded dwell for one lane.
type LaneDwell struct {
	LaneID      uint
	LaneName    string
	AvgSeconds  float64
	SampleCount int64
}

// DayThroughput counts completions for one business day.
type DayThroughput struct {
	Day   string
	Count int64
}

// UserProductivity summarizes one user's card work in a window.
type UserProductivity struct {
	UserID             uint
	AssignedCount      int64
	CompletedCount     int64
	AvgCompletionHours float64
}

// LaneDistribution counts the non-archived cards currently in one lane.
type LaneDistribution struct {
	LaneID   uint
	LaneName string
	Count    int64
}

// StatsQuery is the read side of the metrics aggregator: derived numbers
// computed from persisted card and metric history.
type StatsQuery interface {
	AvgTimeInLane(ctx context.Context, boardID, companyID uint, from, to time.Time) ([]LaneDwell, error)
	ThroughputByDay(ctx context.Context, boardID, companyID uint, from, to time.Time) ([]DayThroughput, error)
	LeadTimeHours(ctx context.Context, boardID, companyID uint, from, to time.Time) (float64, error)
	ProductivityByUser(ctx context.Context, boardID, companyID uint, from, to time.Time) ([]UserProductivity, error)
	CardDistribution(ctx context.Context, boardID, companyID uint) ([]LaneDistribution, error)

	// CameFromLaneCounts returns how many cards carry the came-from marker
	// for the lane and how many of those completed; feeds conversion rate.
	CameFromLaneCounts(ctx context.Context, laneID, companyID uint) (total int64, completed int64, err error)
}
