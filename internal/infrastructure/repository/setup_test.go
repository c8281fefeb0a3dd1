package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"deskflow/internal/domain/kanban"
	"deskflow/internal/infrastructure/persistence/models"
)

func uintPtr(v uint) *uint { return &v }

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, gormDB.AutoMigrate(
		&models.TicketModel{},
		&models.TicketTrackingModel{},
		&models.ContactModel{},
		&models.KanbanBoardModel{},
		&models.KanbanLaneModel{},
		&models.KanbanCardModel{},
		&models.ChecklistTemplateModel{},
		&models.ChecklistItemModel{},
		&models.KanbanMetricModel{},
	))

	return gormDB
}

func seedBoard(t *testing.T, gormDB *gorm.DB, companyID uint) *kanban.Board {
	t.Helper()

	board, err := kanban.NewBoard(companyID, "Pipeline", true, "kanban")
	require.NoError(t, err)
	require.NoError(t, NewBoardRepository(gormDB).Save(context.Background(), board))
	return board
}

func seedLane(t *testing.T, gormDB *gorm.DB, boardID uint, name string, position int) *kanban.Lane {
	t.Helper()

	lane, err := kanban.NewLane(boardID, name, position, 0, nil)
	require.NoError(t, err)
	require.NoError(t, NewLaneRepository(gormDB).Save(context.Background(), lane))
	return lane
}
