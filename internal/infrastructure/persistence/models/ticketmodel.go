package models

import (
	"time"

	"deskflow/internal/shared/constants"
)

// TicketModel represents the database persistence model for tickets.
// This is the anti-corruption layer between domain and database.
type TicketModel struct {
	ID             uint    `gorm:"primarykey"`
	CompanyID      uint    `gorm:"not null;index:idx_tickets_company"`
	ContactID      uint    `gorm:"not null;index:idx_tickets_contact_channel"`
	ChannelID      uint    `gorm:"not null;index:idx_tickets_contact_channel"`
	QueueID        *uint   `gorm:"index"`
	UserID         *uint   `gorm:"index"`
	Status         string  `gorm:"not null;size:20;index:idx_tickets_company_status"`
	UnreadMessages int     `gorm:"not null;default:0"`
	Value          float64 `gorm:"not null;default:0"`
	SKU            string  `gorm:"size:100"`
	IsGroup        bool    `gorm:"not null;default:false"`
	Chatbot        bool    `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ClosedAt       *time.Time

	// Note: no foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return constants.TableTickets
}

// TicketTrackingModel is one occupancy interval of a ticket. At most one
// row per ticket has a NULL finished_at; the repository's find-or-create
// enforces that inside the caller's transaction.
type TicketTrackingModel struct {
	ID         uint  `gorm:"primarykey"`
	TicketID   uint  `gorm:"not null;index:idx_trackings_ticket_open"`
	CompanyID  uint  `gorm:"not null;index"`
	ChannelID  uint  `gorm:"not null"`
	QueueID    *uint `gorm:"index"`
	UserID     *uint `gorm:"index"`
	StartedAt  time.Time
	QueuedAt   *time.Time
	FinishedAt *time.Time `gorm:"index:idx_trackings_ticket_open"`
	RatingAt   *time.Time
	Rated      bool `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (TicketTrackingModel) TableName() string {
	return constants.TableTicketTrackings
}
