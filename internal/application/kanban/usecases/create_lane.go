package usecases

import (
	"context"
	"fmt"

	"deskflow/internal/application/common"
	"deskflow/internal/domain/kanban"
	"deskflow/internal/shared/errors"
	"deskflow/internal/shared/logger"
)

type CreateLaneCommand struct {
	BoardID   uint
	CompanyID uint
	Name      string
	Position  *int
	CardLimit int
	QueueID   *uint
}

type CreateLaneResult struct {
	LaneID   uint
	Position int
}

// CreateLaneUseCase inserts a lane at the requested position, defaulting to
// append. Sibling lanes are locked for the duration of the shift so the
// dense ordering holds under concurrent inserts.
type CreateLaneUseCase struct {
	boardRepo kanban.BoardRepository
	laneRepo  kanban.LaneRepository
	tx        common.TxRunner
	logger    logger.Interface
}

func NewCreateLaneUseCase(
	boardRepo kanban.BoardRepository,
	laneRepo kanban.LaneRepository,
	tx common.TxRunner,
	log logger.Interface,
) *CreateLaneUseCase {
	return &CreateLaneUseCase{boardRepo: boardRepo, laneRepo: laneRepo, tx: tx, logger: log}
}

func (uc *CreateLaneUseCase) Execute(ctx context.Context, cmd CreateLaneCommand) (*CreateLaneResult, error) {
	if cmd.BoardID == 0 {
		return nil, errors.NewValidationError("board ID is required")
	}
	if cmd.CompanyID == 0 {
		return nil, errors.NewValidationError("company ID is required")
	}
	if cmd.Name == "" {
		return nil, errors.NewValidationError("lane name is required")
	}
	if cmd.CardLimit < 0 {
		return nil, errors.NewValidationError("card limit cannot be negative")
	}

	var lane *kanban.Lane

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

		pos, shifts, err := kanban.PlanInsert(len(siblings), cmd.Position)
		if err != nil {
			return positionError(err)
		}
		for _, shift := range shifts {
			if err := uc.laneRepo.ApplyShift(txCtx, cmd.BoardID, shift); err != nil {
				return err
			}
		}

		lane, err = kanban.NewLane(cmd.BoardID, cmd.Name, pos, cmd.CardLimit, cmd.QueueID)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		return uc.laneRepo.Save(txCtx, lane)
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to create lane", "board_id", cmd.BoardID, "name", cmd.Name, "error", err)
		return nil, errors.NewInternalError("failed to create lane")
	}

	uc.logger.Infow("lane created", "lane_id", lane.ID(), "board_id", cmd.BoardID, "position", lane.Position())
	return &CreateLaneResult{LaneID: lane.ID(), Position: lane.Position()}, nil
}
