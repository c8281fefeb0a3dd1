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

type BoardRepository struct {
	db     *gorm.DB
	mapper mappers.KanbanMapper
}

func NewBoardRepository(gormDB *gorm.DB) *BoardRepository {
	return &BoardRepository{
		db:     gormDB,
		mapper: mappers.NewKanbanMapper(),
	}
}

func (r *BoardRepository) Save(ctx context.Context, b *kanban.Board) error {
	model := r.mapper.BoardToModel(b)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save board: %w", err)
	}

	return b.SetID(model.ID)
}

func (r *BoardRepository) Update(ctx context.Context, b *kanban.Board) error {
	model := r.mapper.BoardToModel(b)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.KanbanBoardModel{}).
		Where("id = ? AND company_id = ?", model.ID, model.CompanyID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update board: %w", result.Error)
	}

	return nil
}

func (r *BoardRepository) Delete(ctx context.Context, id, companyID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Scopes(db.CompanyScope(companyID)).
		Delete(&models.KanbanBoardModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete board: %w", result.Error)
	}

	return nil
}

func (r *BoardRepository) GetByID(ctx context.Context, id, companyID uint) (*kanban.Board, error) {
	var model models.KanbanBoardModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Scopes(db.CompanyScope(companyID)).
		First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	return r.mapper.BoardToDomain(&model)
}

func (r *BoardRepository) GetDefault(ctx context.Context, companyID uint) (*kanban.Board, error) {
	var model models.KanbanBoardModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Scopes(db.CompanyScope(companyID)).
		Where("is_default = ? AND active = ?", true, true).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find default board: %w", err)
	}

	return r.mapper.BoardToDomain(&model)
}

func (r *BoardRepository) ListByCompany(ctx context.Context, companyID uint) ([]*kanban.Board, error) {
	var rows []models.KanbanBoardModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Scopes(db.CompanyScope(companyID)).
		Where("active = ?", true).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}

	boards := make([]*kanban.Board, 0, len(rows))
	for i := range rows {
		b, err := r.mapper.BoardToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}

	return boards, nil
}

func (r *BoardRepository) CountActive(ctx context.Context, companyID uint) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Model(&models.KanbanBoardModel{}).
		Scopes(db.CompanyScope(companyID)).
		Where("active = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count boards: %w", err)
	}

	return count, nil
}

func (r *BoardRepository) DemoteDefaults(ctx context.Context, companyID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Model(&models.KanbanBoardModel{}).
		Scopes(db.CompanyScope(companyID)).
		Where("is_default = ?", true).
		Update("is_default", false).Error
	if err != nil {
		return fmt.Errorf("failed to demote default boards: %w", err)
	}

	return nil
}
