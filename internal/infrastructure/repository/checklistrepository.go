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

type ChecklistRepository struct {
	db     *gorm.DB
	mapper mappers.KanbanMapper
}

func NewChecklistRepository(gormDB *gorm.DB) *ChecklistRepository {
	return &ChecklistRepository{
		db:     gormDB,
		mapper: mappers.NewKanbanMapper(),
	}
}

func (r *ChecklistRepository) GetTemplate(ctx context.Context, id, companyID uint) (*kanban.ChecklistTemplate, error) {
	var model models.ChecklistTemplateModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Scopes(db.CompanyScope(companyID)).
		First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find checklist template: %w", err)
	}

	return r.mapper.TemplateToDomain(&model)
}

func (r *ChecklistRepository) SaveTemplate(ctx context.Context, t *kanban.ChecklistTemplate) error {
	model, err := r.mapper.TemplateToModel(t)
	if err != nil {
		return err
	}
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save checklist template: %w", err)
	}

	return t.SetID(model.ID)
}

func (r *ChecklistRepository) SaveItem(ctx context.Context, item *kanban.ChecklistItem) error {
	model := r.mapper.ItemToModel(item)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save checklist item: %w", err)
	}

	return item.SetID(model.ID)
}

func (r *ChecklistRepository) UpdateItem(ctx context.Context, item *kanban.ChecklistItem) error {
	model := r.mapper.ItemToModel(item)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.ChecklistItemModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update checklist item: %w", result.Error)
	}

	return nil
}

func (r *ChecklistRepository) DeleteItem(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.ChecklistItemModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete checklist item: %w", result.Error)
	}

	return nil
}

func (r *ChecklistRepository) GetItem(ctx context.Context, id uint) (*kanban.ChecklistItem, error) {
	var model models.ChecklistItemModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find checklist item: %w", err)
	}

	return r.mapper.ItemToDomain(&model)
}

func (r *ChecklistRepository) ListItemsByCard(ctx context.Context, cardID uint, forUpdate bool) ([]*kanban.ChecklistItem, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Where("card_id = ?", cardID).Order("position ASC")

	if forUpdate {
		if !db.InTransaction(ctx) {
			return nil, fmt.Errorf("locked item listing requires an open transaction")
		}
		query = query.Scopes(db.ForUpdate())
	}

	var rows []models.ChecklistItemModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list checklist items: %w", err)
	}

	items := make([]*kanban.ChecklistItem, 0, len(rows))
	for i := range rows {
		item, err := r.mapper.ItemToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// ApplyItemShift mirrors the lane position shift for per-card checklist
// item positions.
func (r *ChecklistRepository) ApplyItemShift(ctx context.Context, cardID uint, shift kanban.Shift) error {
	if !db.InTransaction(ctx) {
		return fmt.Errorf("position shift requires an open transaction")
	}
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.
		Model(&models.ChecklistItemModel{}).
		Where("card_id = ? AND position >= ?", cardID, shift.MinPos)
	if shift.MaxPos != kanban.Unbounded {
		query = query.Where("position <= ?", shift.MaxPos)
	}

	if err := query.UpdateColumn("position", gorm.Expr("position + ?", shift.Delta)).Error; err != nil {
		return fmt.Errorf("failed to shift item positions: %w", err)
	}

	return nil
}

func (r *ChecklistRepository) ApplyItemPositions(ctx context.Context, cardID uint, assignments []kanban.PositionAssignment) error {
	if !db.InTransaction(ctx) {
		return fmt.Errorf("bulk reorder requires an open transaction")
	}
	tx := db.GetTxFromContext(ctx, r.db)

	for _, a := range assignments {
		err := tx.
			Model(&models.ChecklistItemModel{}).
			Where("id = ? AND card_id = ?", a.ID, cardID).
			UpdateColumn("position", a.Position).Error
		if err != nil {
			return fmt.Errorf("failed to apply item position: %w", err)
		}
	}

	return nil
}
