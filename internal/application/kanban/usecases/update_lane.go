package usecases

import (
	"context"
	"fmt"

	"deskflow/internal/domain/kanban"
	"deskflow/internal/shared/errors"
	"deskflow/internal/shared/logger"
)

type UpdateLaneCommand struct {
	LaneID    uint
	CompanyID uint
	Name      *string
	CardLimit *int
	QueueID   *uint
	SetQueue  bool
}

type UpdateLaneUseCase struct {
	laneRepo kanban.LaneRepository
	logger   logger.Interface
}

func NewUpdateLaneUseCase(laneRepo kanban.LaneRepository, log logger.Interface) *UpdateLaneUseCase {
	return &UpdateLaneUseCase{laneRepo: laneRepo, logger: log}
}

func (uc *UpdateLaneUseCase) Execute(ctx context.Context, cmd UpdateLaneCommand) error {
	if cmd.LaneID == 0 {
		return errors.NewValidationError("lane ID is required")
	}
	if cmd.CompanyID == 0 {
		return errors.NewValidationError("company ID is required")
	}
	if cmd.Name == nil && cmd.CardLimit == nil && !cmd.SetQueue {
		return errors.NewValidationError("at least one field must be provided for update")
	}

	lane, err := uc.laneRepo.GetByID(ctx, cmd.LaneID, cmd.CompanyID)
	if err != nil {
		uc.logger.Errorw("failed to load lane", "lane_id", cmd.LaneID, "error", err)
		return errors.NewInternalError("failed to load lane")
	}
	if lane == nil {
		return errors.NewNotFoundError(fmt.Sprintf("lane %d not found", cmd.LaneID))
	}

	if cmd.Name != nil {
		if err := lane.Rename(*cmd.Name); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}
	if cmd.CardLimit != nil {
		if err := lane.SetCardLimit(*cmd.CardLimit); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}
	if cmd.SetQueue {
		lane.LinkQueue(cmd.QueueID)
	}

	if err := uc.laneRepo.Update(ctx, lane); err != nil {
		uc.logger.Errorw("failed to update lane", "lane_id", cmd.LaneID, "error", err)
		return errors.NewInternalError("failed to update lane")
	}
	return nil
}
