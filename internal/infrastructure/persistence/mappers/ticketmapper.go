package mappers

import (
	"deskflow/internal/domain/ticket"
	vo "deskflow/internal/domain/ticket/valueobjects"
	"deskflow/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between ticket domain entities and
// persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)

	TrackingToModel(tr *ticket.Tracking) *models.TicketTrackingModel
	TrackingToDomain(model *models.TicketTrackingModel) (*ticket.Tracking, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:             t.ID(),
		CompanyID:      t.CompanyID(),
		ContactID:      t.ContactID(),
		ChannelID:      t.ChannelID(),
		QueueID:        t.QueueID(),
		UserID:         t.UserID(),
		Status:         t.Status().String(),
		UnreadMessages: t.UnreadMessages(),
		Value:          t.Value(),
		SKU:            t.SKU(),
		IsGroup:        t.IsGroup(),
		Chatbot:        t.Chatbot(),
		CreatedAt:      t.CreatedAt(),
		UpdatedAt:      t.UpdatedAt(),
		ClosedAt:       t.ClosedAt(),
	}
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	return ticket.ReconstructTicket(
		model.ID,
		model.CompanyID,
		model.ContactID,
		model.ChannelID,
		model.QueueID,
		model.UserID,
		vo.TicketStatus(model.Status),
		model.UnreadMessages,
		model.Value,
		model.SKU,
		model.IsGroup,
		model.Chatbot,
		model.CreatedAt,
		model.UpdatedAt,
		model.ClosedAt,
	)
}

func (m *TicketMapperImpl) TrackingToModel(tr *ticket.Tracking) *models.TicketTrackingModel {
	return &models.TicketTrackingModel{
		ID:         tr.ID(),
		TicketID:   tr.TicketID(),
		CompanyID:  tr.CompanyID(),
		ChannelID:  tr.ChannelID(),
		QueueID:    tr.QueueID(),
		UserID:     tr.UserID(),
		StartedAt:  tr.StartedAt(),
		QueuedAt:   tr.QueuedAt(),
		FinishedAt: tr.FinishedAt(),
		RatingAt:   tr.RatingAt(),
		Rated:      tr.Rated(),
		CreatedAt:  tr.CreatedAt(),
		UpdatedAt:  tr.UpdatedAt(),
	}
}

func (m *TicketMapperImpl) TrackingToDomain(model *models.TicketTrackingModel) (*ticket.Tracking, error) {
	return ticket.ReconstructTracking(
		model.ID,
		model.TicketID,
		model.CompanyID,
		model.ChannelID,
		model.QueueID,
		model.UserID,
		model.StartedAt,
		model.QueuedAt,
		model.FinishedAt,
		model.RatingAt,
		model.Rated,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
