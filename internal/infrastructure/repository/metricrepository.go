package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"deskflow/internal/domain/kanban"
	"deskflow/internal/infrastructure/persistence/mappers"
	"deskflow/internal/shared/db"
)

// MetricRepository appends metric fact rows. There is no update path: the
// table is an append-only log read back by the aggregation queries.
type MetricRepository struct {
	db     *gorm.DB
	mapper mappers.KanbanMapper
}

func NewMetricRepository(gormDB *gorm.DB) *MetricRepository {
	return &MetricRepository{
		db:     gormDB,
		mapper: mappers.NewKanbanMapper(),
	}
}

func (r *MetricRepository) Append(ctx context.Context, m *kanban.Metric) error {
	model, err := r.mapper.MetricToModel(m)
	if err != nil {
		return err
	}
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append metric: %w", err)
	}

	return m.SetID(model.ID)
}
