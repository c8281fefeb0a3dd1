package usecases

import (
	"context"
	"fmt"
	"time"

	"deskflow/internal/application/common"
	"deskflow/internal/domain/kanban"
	"deskflow/internal/shared/errors"
	"deskflow/internal/shared/logger"
)

type DeleteLaneCommand struct {
	LaneID    uint
	CompanyID uint
}

// DeleteLaneUseCase removes a lane, relocating its active cards to the
// first remaining lane of the board and closing the position gap. The last
// lane of a board cannot be deleted.
type DeleteLaneUseCase struct {
	laneRepo kanban.LaneRepository
	cardRepo kanban.CardRepository
	tx       common.TxRunner
	logger   logger.Interface
}

func NewDeleteLaneUseCase(
	laneRepo kanban.LaneRepository,
	cardRepo kanban.CardRepository,
	tx common.TxRunner,
	log logger.Interface,
) *DeleteLaneUseCase {
	return &DeleteLaneUseCase{laneRepo: laneRepo, cardRepo: cardRepo, tx: tx, logger: log}
}

func (uc *DeleteLaneUseCase) Execute(ctx context.Context, cmd DeleteLaneCommand) error {
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

		siblings, err := uc.laneRepo.ListByBoard(txCtx, lane.BoardID(), true)
		if err != nil {
			return err
		}
		if len(siblings) <= 1 {
			return errors.NewValidationError("cannot delete the last lane of a board")
		}

		var fallback *kanban.Lane
		for _, s := range siblings {
			if s.ID() != lane.ID() {
				fallback = s
				break
			}
		}

		cards, err := uc.cardRepo.ListByLane(txCtx, lane.ID())
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		for _, c := range cards {
			if _, err := c.MoveToLane(fallback.ID(), now); err != nil {
				return err
			}
			if err := uc.cardRepo.Update(txCtx, c); err != nil {
				return err
			}
		}

		if err := uc.laneRepo.Delete(txCtx, lane.ID()); err != nil {
			return err
		}
		for _, shift := range kanban.PlanRemove(lane.Position()) {
			if err := uc.laneRepo.ApplyShift(txCtx, lane.BoardID(), shift); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.IsAppError(err) {
			return err
		}
		uc.logger.Errorw("failed to delete lane", "lane_id", cmd.LaneID, "error", err)
		return errors.NewInternalError("failed to delete lane")
	}

	uc.logger.Infow("lane deleted", "lane_id", cmd.LaneID, "company_id", cmd.CompanyID)
	return nil
}
