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
)

type TrackingRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTrackingRepository(gormDB *gorm.DB) *TrackingRepository {
	return &TrackingRepository{
		db:     gormDB,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TrackingRepository) Save(ctx context.Context, tr *ticket.Tracking) error {
	model := r.mapper.TrackingToModel(tr)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save tracking: %w", err)
	}

	return tr.SetID(model.ID)
}

func (r *TrackingRepository) Update(ctx context.Context, tr *ticket.Tracking) error {
	model := r.mapper.TrackingToModel(tr)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.TicketTrackingModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update tracking: %w", result.Error)
	}

	return nil
}

func (r *TrackingRepository) FindOpenByTicket(ctx context.Context, ticketID, companyID uint) (*ticket.Tracking, error) {
	var model models.TicketTrackingModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Scopes(db.CompanyScope(companyID)).
		Where("ticket_id = ? AND finished_at IS NULL", ticketID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find open tracking: %w", err)
	}

	return r.mapper.TrackingToDomain(&model)
}

// FindOrCreateOpen returns the ticket's current interval, creating one
// inside the caller's transaction when none exists. The open row is locked
// so concurrent transitions on the same ticket serialize here and cannot
// insert duplicate open intervals.
func (r *TrackingRepository) FindOrCreateOpen(ctx context.Context, ticketID, companyID, channelID uint, userID *uint) (*ticket.Tracking, error) {
	if !db.InTransaction(ctx) {
		return nil, fmt.Errorf("tracking find-or-create requires an open transaction")
	}
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.TicketTrackingModel
	err := tx.
		Scopes(db.CompanyScope(companyID), db.ForUpdate()).
		Where("ticket_id = ? AND finished_at IS NULL", ticketID).
		First(&model).Error
	if err == nil {
		return r.mapper.TrackingToDomain(&model)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find open tracking: %w", err)
	}

	tr, err := ticket.NewTracking(ticketID, companyID, channelID, userID)
	if err != nil {
		return nil, err
	}
	if err := r.Save(ctx, tr); err != nil {
		return nil, err
	}

	return tr, nil
}

func (r *TrackingRepository) FindLastFinishedByTicket(ctx context.Context, ticketID, companyID uint) (*ticket.Tracking, error) {
	var model models.TicketTrackingModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Scopes(db.CompanyScope(companyID)).
		Where("ticket_id = ? AND finished_at IS NOT NULL", ticketID).
		Order("finished_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find finished tracking: %w", err)
	}

	return r.mapper.TrackingToDomain(&model)
}
