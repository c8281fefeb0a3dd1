package usecases

import (
	"context"
	"fmt"

	"deskflow/internal/application/common"
	"deskflow/internal/domain/kanban"
	"deskflow/internal/shared/errors"
	"deskflow/internal/shared/logger"
)

type MoveLaneCommand struct {
	LaneID    uint
	CompanyID uint
	Position  int
}

// MoveLaneUseCase moves a lane to a new position, shifting the crossed
// range in the opposite direction. The full sibling set is locked so the
// positions stay dense throughout.
type MoveLaneUseCase struct {
	laneRepo kanban.LaneRepository
	tx       common.TxRunner
	logger   logger.Interface
}

func NewMoveLaneUseCase(laneRepo kanban.LaneRepository, tx common.TxRunner, log logger.Interface) *MoveLaneUseCase {
	return &MoveLaneUseCase{laneRepo: laneRepo, tx: tx, logger: log}
}

func (uc *MoveLaneUseCase) Execute(ctx context.Context, cmd MoveLaneCommand) error {
	if cmd.LaneID == 0 {
		return errors.NewValidationError("lane ID is required")
	}
	if cmd.CompanyID == 0 {
		return errors.NewValidationError("company ID is required")
	}

	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		lane, err := uc.laneRepo.GetByID(txCtx, cmd.LaneID, cmd.CompanyID)
		if err != nil {
			return err
		}
		if lane == nil {
			return errors.NewNotFoundError(fmt.Sprintf("lane %d not found", cmd.LaneID))
		}
		if lane.Position() == cmd.Position {
			return nil
		}

		siblings, err := uc.laneRepo.ListByBoard(txCtx, lane.BoardID(), true)
		if err != nil {
			return err
		}

		shifts, err := kanban.PlanMove(len(siblings), lane.Position(), cmd.Position)
		if err != nil {
			return positionError(err)
		}
		for _, shift := range shifts {
			if err := uc.laneRepo.ApplyShift(txCtx, lane.BoardID(), shift); err != nil {
				return err
			}
		}

		if err := lane.SetPosition(cmd.Position); err != nil {
			return errors.NewValidationError(err.Error())
		}
		return uc.laneRepo.Update(txCtx, lane)
	})
	if err != nil {
		if errors.IsAppError(err) {
			return err
		}
		uc.logger.Errorw("failed to move lane", "lane_id", cmd.LaneID, "position", cmd.Position, "error", err)
		return errors.NewInternalError("failed to move lane")
	}
	return nil
}
