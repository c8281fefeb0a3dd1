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

type LaneRepository struct {
	db     *gorm.DB
	mapper mappers.KanbanMapper
}

func NewLaneRepository(gormDB *gorm.DB) *LaneRepository {
	return &LaneRepository{
		db:     gormDB,
		mapper: mappers.NewKanbanMapper(),
	}
}

func (r *LaneRepository) Save(ctx context.Context, l *kanban.Lane) error {
	model := r.mapper.LaneToModel(l)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save lane: %w", err)
	}

	return l.SetID(model.ID)
}

func (r *LaneRepository) Update(ctx context.Context, l *kanban.Lane) error {
	model := r.mapper.LaneToModel(l)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.KanbanLaneModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update lane: %w", result.Error)
	}

	return nil
}

func (r *LaneRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.KanbanLaneModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete lane: %w", result.Error)
	}

	return nil
}

// GetByID scopes through the owning board so a lane ID from another
// company resolves to not-found.
func (r *LaneRepository) GetByID(ctx context.Context, id, companyID uint) (*kanban.Lane, error) {
	var model models.KanbanLaneModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Joins("JOIN kanban_boards b ON b.id = kanban_lanes.board_id").
		Where("b.company_id = ? AND kanban_lanes.id = ?", companyID, id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find lane: %w", err)
	}

	return r.mapper.LaneToDomain(&model)
}

func (r *LaneRepository) GetByPosition(ctx context.Context, boardID uint, position int) (*kanban.Lane, error) {
	var model models.KanbanLaneModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("board_id = ? AND position = ?", boardID, position).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find lane at position: %w", err)
	}

	return r.mapper.LaneToDomain(&model)
}

func (r *LaneRepository) ListByBoard(ctx context.Context, boardID uint, forUpdate bool) ([]*kanban.Lane, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Where("board_id = ?", boardID).Order("position ASC")

	if forUpdate {
		if !db.InTransaction(ctx) {
			return nil, fmt.Errorf("locked lane listing requires an open transaction")
		}
		query = query.Scopes(db.ForUpdate())
	}

	var rows []models.KanbanLaneModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list lanes: %w", err)
	}

	lanes := make([]*kanban.Lane, 0, len(rows))
	for i := range rows {
		l, err := r.mapper.LaneToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		lanes = append(lanes, l)
	}

	return lanes, nil
}

func (r *LaneRepository) CountByBoard(ctx context.Context, boardID uint) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Model(&models.KanbanLaneModel{}).
		Where("board_id = ?", boardID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count lanes: %w", err)
	}

	return count, nil
}

// ApplyShift moves a contiguous position range by the shift delta in a
// single UPDATE. Must run inside the transaction that holds the sibling
// locks; otherwise concurrent shifts could interleave and break the dense
// 0..N-1 invariant.
func (r *LaneRepository) ApplyShift(ctx context.Context, boardID uint, shift kanban.Shift) error {
	if !db.InTransaction(ctx) {
		return fmt.Errorf("position shift requires an open transaction")
	}
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.
		Model(&models.KanbanLaneModel{}).
		Where("board_id = ? AND position >= ?", boardID, shift.MinPos)
	if shift.MaxPos != kanban.Unbounded {
		query = query.Where("position <= ?", shift.MaxPos)
	}

	if err := query.UpdateColumn("position", gorm.Expr("position + ?", shift.Delta)).Error; err != nil {
		return fmt.Errorf("failed to shift lane positions: %w", err)
	}

	return nil
}

// ApplyPositions writes a validated reorder verbatim, one UPDATE per lane.
func (r *LaneRepository) ApplyPositions(ctx context.Context, boardID uint, assignments []kanban.PositionAssignment) error {
	if !db.InTransaction(ctx) {
		return fmt.Errorf("bulk reorder requires an open transaction")
	}
	tx := db.GetTxFromContext(ctx, r.db)

	for _, a := range assignments {
		err := tx.
			Model(&models.KanbanLaneModel{}).
			Where("id = ? AND board_id = ?", a.ID, boardID).
			UpdateColumn("position", a.Position).Error
		if err != nil {
			return fmt.Errorf("failed to apply lane position: %w", err)
		}
	}

	return nil
}
