package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deskflow/internal/domain/kanban"
)

func intPtr(v int) *int    { return &v }
func uintPtr(v uint) *uint { return &v }

func TestCreateBoardUseCase_Execute_SeedsLanes(t *testing.T) {
	var savedLanes []*kanban.Lane

	boardRepo := &mockBoardRepository{
		CountActiveFunc: func(ctx context.Context, companyID uint) (int64, error) {
			return 2, nil
		},
		SaveFunc: func(ctx context.Context, b *kanban.Board) error {
			return b.SetID(10)
		},
	}
	laneRepo := &mockLaneRepository{
		SaveFunc: func(ctx context.Context, l *kanban.Lane) error {
			require.NoError(t, l.SetID(uint(100+len(savedLanes))))
			savedLanes = append(savedLanes, l)
			return nil
		},
	}

	uc := NewCreateBoardUseCase(boardRepo, laneRepo, &mockTxRunner{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), CreateBoardCommand{CompanyID: 1, Name: "Vendas"})

	require.NoError(t, err)
	assert.Equal(t, uint(10), result.BoardID)
	assert.False(t, result.IsDefault)
	require.Len(t, savedLanes, len(kanban.SeedLaneNames))
	for i, lane := range savedLanes {
		assert.Equal(t, kanban.SeedLaneNames[i], lane.Name())
		assert.Equal(t, i, lane.Position())
		assert.Equal(t, uint(10), lane.BoardID())
	}
}

func TestCreateBoardUseCase_Execute_FirstBoardBecomesDefault(t *testing.T) {
	demoted := false
	boardRepo := &mockBoardRepository{
		CountActiveFunc: func(ctx context.Context, companyID uint) (int64, error) {
			return 0, nil
		},
		DemoteDefaultsFunc: func(ctx context.Context, companyID uint) error {
			demoted = true
			return nil
		},
		SaveFunc: func(ctx context.Context, b *kanban.Board) error {
			return b.SetID(1)
		},
	}

	uc := NewCreateBoardUseCase(boardRepo, &mockLaneRepository{}, &mockTxRunner{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), CreateBoardCommand{CompanyID: 1, Name: "Principal"})

	require.NoError(t, err)
	assert.True(t, result.IsDefault)
	assert.True(t, demoted)
}

func TestCreateBoardUseCase_Execute_ExplicitDefaultDemotesOthers(t *testing.T) {
	var calls []string
	boardRepo := &mockBoardRepository{
		CountActiveFunc: func(ctx context.Context, companyID uint) (int64, error) {
			return 1, nil
		},
		DemoteDefaultsFunc: func(ctx context.Context, companyID uint) error {
			calls = append(calls, "demote")
			return nil
		},
		SaveFunc: func(ctx context.Context, b *kanban.Board) error {
			calls = append(calls, "save")
			return b.SetID(2)
		},
	}

	uc := NewCreateBoardUseCase(boardRepo, &mockLaneRepository{}, &mockTxRunner{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), CreateBoardCommand{CompanyID: 1, Name: "B2", IsDefault: true})

	require.NoError(t, err)
	assert.True(t, result.IsDefault)
	assert.Equal(t, []string{"demote", "save"}, calls)
}

func TestCreateBoardUseCase_Execute_ValidationErrors(t *testing.T) {
	uc := NewCreateBoardUseCase(&mockBoardRepository{}, &mockLaneRepository{}, &mockTxRunner{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), CreateBoardCommand{Name: "x"})
	assert.Error(t, err)

	_, err = uc.Execute(context.Background(), CreateBoardCommand{CompanyID: 1})
	assert.Error(t, err)
}
