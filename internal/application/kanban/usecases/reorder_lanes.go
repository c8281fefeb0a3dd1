package usecases

import (
	"context"
	"fmt"

	"deskflow/internal/application/common"
	"deskflow/internal/domain/kanban"
	"deskflow/internal/shared/errors"
	"deskflow/internal/shared/logger"
)

type ReorderLanesCommand struct {
	BoardID     uint
	CompanyID   uint
	Assignments []kanban.PositionAssignment
}

// ReorderLanesUseCase applies a full board reorder in one transaction. The
// assignment set must cover exactly the board's lanes; a failed validation
// leaves every position untouched.
type ReorderLanesUseCase struct {
	boardRepo kanban.BoardRepository
	laneRepo  kanban.LaneRepository
	tx        common.TxRunner
	logger    logger.Interface
}

func NewReorderLanesUseCase(
	boardRepo kanban.BoardRepository,
	laneRepo kanban.LaneRepository,
	tx common.TxRunner,
	log logger.Interface,
) *ReorderLanesUseCase {
	return &ReorderLanesUseCase{boardRepo: boardRepo, laneRepo: laneRepo, tx: tx, logger: log}
}

func (uc *ReorderLanesUseCase) Execute(ctx context.Context, cmd ReorderLanesCommand) error {
	if cmd.BoardID == 0 {
		return errors.NewValidationError("board ID is required")
	}
	if cmd.CompanyID == 0 {
		return errors.NewValidationError("company ID is required")
	}
	if len(cmd.Assignments) == 0 {
		return errors.NewValidationError("assignments are required")
	}

	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		board, err := uc.boardRepo.GetByID(txCtx, cmd.BoardID, cmd.CompanyID)
		if err != nil {
			return err
		}
		if board == nil {
			return errors.NewNotFoundError(fmt.Sprintf("board %d not found", cmd.BoardID))
		}

		siblings, err := uc.laneRepo.ListByBoard(txCtx, cmd.BoardID, true)
		if err != nil {
			return err
		}
		existingIDs := make([]uint, len(siblings))
		for i, l := range siblings {
			existingIDs[i] = l.ID()
		}

		if err := kanban.ValidateReorder(existingIDs, cmd.Assignments); err != nil {
			return positionError(err)
		}
		return uc.laneRepo.ApplyPositions(txCtx, cmd.BoardID, cmd.Assignments)
	})
	if err != nil {
		if errors.IsAppError(err) {
			return err
		}
		uc.logger.Errorw("failed to reorder lanes", "board_id", cmd.BoardID, "error", err)
		return errors.NewInternalError("failed to reorder lanes")
	}

	uc.logger.Infow("lanes reordered", "board_id", cmd.BoardID, "count", len(cmd.Assignments))
	return nil
}
