package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"deskflow/internal/domain/ticket"
	"deskflow/internal/infrastructure/persistence/mappers"
	"deskflow/internal/infrastructure/persistence/models"
	"deskflow/internal/shared/db"
	"deskflow/internal/shared/query"
)

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(gormDB *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     gormDB,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}

	return t.SetID(model.ID)
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	// Select("*") so cleared nullable columns (queue_id, user_id) are
	// written back as NULL instead of being skipped as zero values.
	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ? AND company_id = ?", model.ID, model.CompanyID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id, companyID uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Scopes(db.CompanyScope(companyID)).
		First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) FindActiveByContactChannel(ctx context.Context, contactID, channelID, companyID uint) (*ticket.Ticket, error) {
	return r.findActive(ctx, contactID, channelID, companyID, 0)
}

func (r *TicketRepository) FindActiveByContactChannelExcluding(ctx context.Context, contactID, channelID, companyID, excludeTicketID uint) (*ticket.Ticket, error) {
	return r.findActive(ctx, contactID, channelID, companyID, excludeTicketID)
}

func (r *TicketRepository) findActive(ctx context.Context, contactID, channelID, companyID, excludeTicketID uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	q := tx.
		Scopes(db.CompanyScope(companyID)).
		Where("contact_id = ? AND channel_id = ?", contactID, channelID).
		Where("status IN ?", []string{"pending", "open"})
	if excludeTicketID != 0 {
		q = q.Where("id <> ?", excludeTicketID)
	}

	err := q.Order("id DESC").First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.Model(&models.TicketModel{}).Scopes(db.CompanyScope(filter.CompanyID))

	if filter.Status != nil {
		q = q.Where("status = ?", filter.Status.String())
	}
	if filter.QueueID != nil {
		q = q.Where("queue_id = ?", *filter.QueueID)
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.CreatedAfter != nil {
		q = q.Where("created_at >= ?", *filter.CreatedAfter)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		page := query.PageFilter{Page: filter.Page, PageSize: filter.PageSize}
		q = q.Offset(page.Offset()).Limit(page.Limit())
	}

	var rows []models.TicketModel
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, 0, len(rows))
	for i := range rows {
		t, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, t)
	}

	return tickets, total, nil
}
