package models

import (
	"time"

	"gorm.io/datatypes"

	"deskflow/internal/shared/constants"
)

type KanbanBoardModel struct {
	ID          uint   `gorm:"primarykey"`
	CompanyID   uint   `gorm:"not null;index:idx_boards_company"`
	Name        string `gorm:"not null;size:100"`
	IsDefault   bool   `gorm:"not null;default:false;index:idx_boards_company_default"`
	DefaultView string `gorm:"not null;default:kanban;size:20"`
	Active      bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (KanbanBoardModel) TableName() string {
	return constants.TableKanbanBoards
}

// KanbanLaneModel carries the dense position within its board: positions
// are 0..N-1 with no gaps, maintained by arithmetic shifts under row locks.
type KanbanLaneModel struct {
	ID        uint   `gorm:"primarykey"`
	BoardID   uint   `gorm:"not null;index:idx_lanes_board_position"`
	Name      string `gorm:"not null;size:100"`
	Position  int    `gorm:"not null;index:idx_lanes_board_position"`
	CardLimit int    `gorm:"not null;default:0"`
	QueueID   *uint  `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (KanbanLaneModel) TableName() string {
	return constants.TableKanbanLanes
}

type KanbanCardModel struct {
	ID             uint   `gorm:"primarykey"`
	LaneID         uint   `gorm:"not null;index:idx_cards_lane_archived"`
	Title          string `gorm:"not null;size:200"`
	Description    string `gorm:"type:text"`
	Priority       int    `gorm:"not null;default:0"`
	DueDate        *time.Time
	Value          float64 `gorm:"not null;default:0"`
	SKU            string  `gorm:"size:100"`
	AssignedUserID *uint   `gorm:"index"`
	ContactID      *uint   `gorm:"index"`
	TicketID       *uint   `gorm:"index:idx_cards_ticket"`
	StartedAt      *time.Time
	TimeInLane     int64 `gorm:"not null;default:0"`
	Metadata       datatypes.JSON
	IsArchived     bool `gorm:"not null;default:false;index:idx_cards_lane_archived"`
	IsBlocked      bool `gorm:"not null;default:false"`
	CompletedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (KanbanCardModel) TableName() string {
	return constants.TableKanbanCards
}

// ChecklistTemplateModel stores the ordered template items as a JSON array
// of {description, position} objects; they are immutable once applied.
type ChecklistTemplateModel struct {
	ID        uint   `gorm:"primarykey"`
	CompanyID uint   `gorm:"not null;index"`
	Name      string `gorm:"not null;size:100"`
	Items     datatypes.JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ChecklistTemplateModel) TableName() string {
	return constants.TableChecklistTemplates
}

type ChecklistItemModel struct {
	ID          uint   `gorm:"primarykey"`
	CardID      uint   `gorm:"not null;index:idx_checklist_items_card_position"`
	Description string `gorm:"not null;size:255"`
	Position    int    `gorm:"not null;index:idx_checklist_items_card_position"`
	CheckedAt   *time.Time
	CheckedBy   *uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ChecklistItemModel) TableName() string {
	return constants.TableChecklistItems
}

// KanbanMetricModel is an append-only fact row; never updated in place.
type KanbanMetricModel struct {
	ID          uint    `gorm:"primarykey"`
	CompanyID   uint    `gorm:"not null;index:idx_metrics_company_board"`
	BoardID     uint    `gorm:"not null;index:idx_metrics_company_board"`
	LaneID      *uint   `gorm:"index"`
	CardID      *uint   `gorm:"index"`
	MetricType  string  `gorm:"not null;size:50;index"`
	Value       float64 `gorm:"not null;default:0"`
	MetricData  datatypes.JSON
	WindowStart *time.Time
	WindowEnd   *time.Time
	CreatedAt   time.Time `gorm:"index"`
}

func (KanbanMetricModel) TableName() string {
	return constants.TableKanbanMetrics
}
