package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"deskflow/internal/domain/kanban"
	"deskflow/internal/infrastructure/persistence/mappers"
	"deskflow/internal/infrastructure/persistence/models"
	"deskflow/internal/shared/db"
)

type CardRepository struct {
	db     *gorm.DB
	mapper mappers.KanbanMapper
}

func NewCardRepository(gormDB *gorm.DB) *CardRepository {
	return &CardRepository{
		db:     gormDB,
		mapper: mappers.NewKanbanMapper(),
	}
}

func (r *CardRepository) Save(ctx context.Context, c *kanban.Card) error {
	model, err := r.mapper.CardToModel(c)
	if err != nil {
		return err
	}
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save card: %w", err)
	}

	return c.SetID(model.ID)
}

func (r *CardRepository) Update(ctx context.Context, c *kanban.Card) error {
	model, err := r.mapper.CardToModel(c)
	if err != nil {
		return err
	}
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.KanbanCardModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update card: %w", result.Error)
	}

	return nil
}

func (r *CardRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.KanbanCardModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete card: %w", result.Error)
	}

	return nil
}

// GetByID scopes through lane and board so a card ID from another company
// resolves to not-found.
func (r *CardRepository) GetByID(ctx context.Context, id, companyID uint) (*kanban.Card, error) {
	var model models.KanbanCardModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Joins("JOIN kanban_lanes l ON l.id = kanban_cards.lane_id").
		Joins("JOIN kanban_boards b ON b.id = l.board_id").
		Where("b.company_id = ? AND kanban_cards.id = ?", companyID, id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find card: %w", err)
	}

	return r.mapper.CardToDomain(&model)
}

func (r *CardRepository) FindActiveByTicket(ctx context.Context, ticketID, companyID uint) (*kanban.Card, error) {
	var model models.KanbanCardModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Joins("JOIN kanban_lanes l ON l.id = kanban_cards.lane_id").
		Joins("JOIN kanban_boards b ON b.id = l.board_id").
		Where("b.company_id = ? AND kanban_cards.ticket_id = ? AND kanban_cards.is_archived = ?", companyID, ticketID, false).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find card by ticket: %w", err)
	}

	return r.mapper.CardToDomain(&model)
}

func (r *CardRepository) ListByLane(ctx context.Context, laneID uint) ([]*kanban.Card, error) {
	var rows []models.KanbanCardModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Scopes(db.NotArchived()).
		Where("lane_id = ?", laneID).
		Order("priority DESC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	cards := make([]*kanban.Card, 0, len(rows))
	for i := range rows {
		c, err := r.mapper.CardToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}

	return cards, nil
}

func (r *CardRepository) CountActiveByLane(ctx context.Context, laneID uint) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Model(&models.KanbanCardModel{}).
		Scopes(db.NotArchived()).
		Where("lane_id = ?", laneID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}

	return count, nil
}
