package usecases

import (
	"context"

	"deskflow/internal/application/common"
	"deskflow/internal/domain/kanban"
	"deskflow/internal/shared/errors"
	"deskflow/internal/shared/logger"
)

type CreateBoardCommand struct {
	CompanyID   uint
	Name        string
	IsDefault   bool
	DefaultView string
}

type CreateBoardResult struct {
	BoardID   uint
	IsDefault bool
	LaneIDs   []uint
}

// CreateBoardUseCase creates a board with its seed lanes. The first active
// board of a company always becomes the default; an explicit default
// demotes every other board first so exactly one default survives.
type CreateBoardUseCase struct {
	boardRepo kanban.BoardRepository
	laneRepo  kanban.LaneRepository
	tx        common.TxRunner
	logger    logger.Interface
}

func NewCreateBoardUseCase(
	boardRepo kanban.BoardRepository,
	laneRepo kanban.LaneRepository,
	tx common.TxRunner,
	log logger.Interface,
) *CreateBoardUseCase {
	return &CreateBoardUseCase{
		boardRepo: boardRepo,
		laneRepo:  laneRepo,
		tx:        tx,
		logger:    log,
	}
}

func (uc *CreateBoardUseCase) Execute(ctx context.Context, cmd CreateBoardCommand) (*CreateBoardResult, error) {
	if cmd.CompanyID == 0 {
		return nil, errors.NewValidationError("company ID is required")
	}
	if cmd.Name == "" {
		return nil, errors.NewValidationError("board name is required")
	}

	var (
		board   *kanban.Board
		laneIDs []uint
	)

	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		active, err := uc.boardRepo.CountActive(txCtx, cmd.CompanyID)
		if err != nil {
			return err
		}

		makeDefault := cmd.IsDefault || active == 0

		board, err = kanban.NewBoard(cmd.CompanyID, cmd.Name, makeDefault, cmd.DefaultView)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}

		if makeDefault {
			if err := uc.boardRepo.DemoteDefaults(txCtx, cmd.CompanyID); err != nil {
				return err
			}
		}
		if err := uc.boardRepo.Save(txCtx, board); err != nil {
			return err
		}

		for i, name := range kanban.SeedLaneNames {
			lane, err := kanban.NewLane(board.ID(), name, i, 0, nil)
			if err != nil {
				return err
			}
			if err := uc.laneRepo.Save(txCtx, lane); err != nil {
				return err
			}
			laneIDs = append(laneIDs, lane.ID())
		}
		return nil
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to create board", "company_id", cmd.CompanyID, "name", cmd.Name, "error", err)
		return nil, errors.NewInternalError("failed to create board")
	}

	uc.logger.Infow("board created",
		"board_id", board.ID(), "company_id", cmd.CompanyID, "is_default", board.IsDefault())

	return &CreateBoardResult{
		BoardID:   board.ID(),
		IsDefault: board.IsDefault(),
		LaneIDs:   laneIDs,
	}, nil
}
