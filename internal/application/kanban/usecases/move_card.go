package usecases

import (
	"context"
	"fmt"
	"time"

	"deskflow/internal/application/common"
	"deskflow/internal/domain/kanban"
	"deskflow/internal/domain/shared/events"
	"deskflow/internal/shared/constants"
	"deskflow/internal/shared/errors"
	"deskflow/internal/shared/goroutine"
	"deskflow/internal/shared/logger"
)

type MoveCardCommand struct {
	CardID       uint
	CompanyID    uint
	TargetLaneID uint
	MovedBy      uint
}

type MoveCardResult struct {
	CardID     uint
	FromLaneID uint
	ToLaneID   uint
	TimeInLane int64
	Moved      bool
}

// MoveCardUseCase moves a card between lanes of the same board in one
// transaction: capacity check, dwell computation, startedAt reset. After
// commit it emits the card-moved event and records metric facts; both are
// best-effort and cannot undo the move.
type MoveCardUseCase struct {
	laneRepo   kanban.LaneRepository
	cardRepo   kanban.CardRepository
	tx         common.TxRunner
	dispatcher events.EventPublisher
	recorder   RecordCardMovementExecutor
	realtime   common.RealtimePublisher
	logger     logger.Interface
}

func NewMoveCardUseCase(
	laneRepo kanban.LaneRepository,
	cardRepo kanban.CardRepository,
	tx common.TxRunner,
	dispatcher events.EventPublisher,
	recorder RecordCardMovementExecutor,
	realtime common.RealtimePublisher,
	log logger.Interface,
) *MoveCardUseCase {
	return &MoveCardUseCase{
		laneRepo:   laneRepo,
		cardRepo:   cardRepo,
		tx:         tx,
		dispatcher: dispatcher,
		recorder:   recorder,
		realtime:   realtime,
		logger:     log,
	}
}

func (uc *MoveCardUseCase) Execute(ctx context.Context, cmd MoveCardCommand) (*MoveCardResult, error) {
	if cmd.CardID == 0 {
		return nil, errors.NewValidationError("card ID is required")
	}
	if cmd.CompanyID == 0 {
		return nil, errors.NewValidationError("company ID is required")
	}
	if cmd.TargetLaneID == 0 {
		return nil, errors.NewValidationError("target lane ID is required")
	}

	var (
		card       *kanban.Card
		fromLane   *kanban.Lane
		targetLane *kanban.Lane
		dwell      int64
	)

	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		card, err = uc.cardRepo.GetByID(txCtx, cmd.CardID, cmd.CompanyID)
		if err != nil {
			return err
		}
		if card == nil {
			return errors.NewNotFoundError(fmt.Sprintf("card %d not found", cmd.CardID))
		}
		if card.IsArchived() {
			return errors.NewValidationError(fmt.Sprintf("card %d is archived and cannot be moved", cmd.CardID))
		}
		if card.LaneID() == cmd.TargetLaneID {
			return nil
		}

		fromLane, err = uc.laneRepo.GetByID(txCtx, card.LaneID(), cmd.CompanyID)
		if err != nil {
			return err
		}
		targetLane, err = uc.laneRepo.GetByID(txCtx, cmd.TargetLaneID, cmd.CompanyID)
		if err != nil {
			return err
		}
		if targetLane == nil {
			return errors.NewNotFoundError(fmt.Sprintf("lane %d not found", cmd.TargetLaneID))
		}
		if fromLane != nil && fromLane.BoardID() != targetLane.BoardID() {
			return errors.NewValidationError("target lane belongs to a different board")
		}

		count, err := uc.cardRepo.CountActiveByLane(txCtx, targetLane.ID())
		if err != nil {
			return err
		}
		if !targetLane.HasCapacity(count) {
			return errors.NewConflictError(
				fmt.Sprintf("lane %q is at its card limit of %d", targetLane.Name(), targetLane.CardLimit())).
				WithReason(errors.ReasonLimitReached)
		}

		dwell, err = card.MoveToLane(targetLane.ID(), time.Now().UTC())
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		return uc.cardRepo.Update(txCtx, card)
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to move card",
			"card_id", cmd.CardID, "target_lane_id", cmd.TargetLaneID, "error", err)
		return nil, errors.NewInternalError("failed to move card")
	}

	if fromLane == nil || targetLane == nil {
		return &MoveCardResult{CardID: card.ID(), FromLaneID: card.LaneID(), ToLaneID: card.LaneID()}, nil
	}

	uc.logger.Infow("card moved",
		"card_id", card.ID(),
		"from_lane_id", fromLane.ID(),
		"to_lane_id", targetLane.ID(),
		"time_in_lane", dwell,
	)

	evt := kanban.NewCardMovedEvent(cmd.CompanyID, card, targetLane.BoardID(), fromLane.ID(), targetLane.Name(), dwell, cmd.MovedBy)
	if err := uc.dispatcher.Publish(evt); err != nil {
		uc.logger.Warnw("failed to publish card moved event", "card_id", card.ID(), "error", err)
	}

	uc.recorder.Execute(ctx, RecordCardMovementCommand{
		CompanyID:  cmd.CompanyID,
		BoardID:    targetLane.BoardID(),
		FromLaneID: fromLane.ID(),
		ToLaneID:   targetLane.ID(),
		CardID:     card.ID(),
		TimeInLane: dwell,
	})

	cardID := card.ID()
	fromID := fromLane.ID()
	toID := targetLane.ID()
	goroutine.SafeGo(uc.logger, "kanban.realtime", func() {
		topic := fmt.Sprintf(constants.TopicCompanyKanban, cmd.CompanyID)
		payload := map[string]interface{}{
			"action":     "card_moved",
			"cardId":     cardID,
			"fromLaneId": fromID,
			"toLaneId":   toID,
		}
		if err := uc.realtime.Publish(context.Background(), topic, payload); err != nil {
			uc.logger.Warnw("failed to publish realtime card move", "card_id", cardID, "error", err)
		}
	})

	return &MoveCardResult{
		CardID:     card.ID(),
		FromLaneID: fromLane.ID(),
		ToLaneID:   targetLane.ID(),
		TimeInLane: dwell,
		Moved:      true,
	}, nil
}
