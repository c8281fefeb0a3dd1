package usecases

import (
	"context"

	"deskflow/internal/domain/kanban"
	"deskflow/internal/shared/logger"
)

type RecordCardMovementCommand struct {
	CompanyID  uint
	BoardID    uint
	FromLaneID uint
	ToLaneID   uint
	CardID     uint
	TimeInLane int64
}

// RecordCardMovementUseCase appends the metric facts for one card move: a
// time_in_lane sample attributed to the outgoing lane and a refreshed
// conversion_rate for it. Failures are logged and swallowed so metric
// recording can never break the move that triggered it.
type RecordCardMovementUseCase struct {
	metricRepo kanban.MetricRepository
	stats      kanban.StatsQuery
	logger     logger.Interface
}

func NewRecordCardMovementUseCase(
	metricRepo kanban.MetricRepository,
	stats kanban.StatsQuery,
	log logger.Interface,
) *RecordCardMovementUseCase {
	return &RecordCardMovementUseCase{metricRepo: metricRepo, stats: stats, logger: log}
}

func (uc *RecordCardMovementUseCase) Execute(ctx context.Context, cmd RecordCardMovementCommand) {
	if cmd.CompanyID == 0 || cmd.BoardID == 0 || cmd.FromLaneID == 0 {
		return
	}

	dwell, err := kanban.NewMetric(cmd.CompanyID, cmd.BoardID, kanban.MetricTimeInLane, float64(cmd.TimeInLane))
	if err == nil {
		dwell.AttachLane(cmd.FromLaneID)
		dwell.AttachCard(cmd.CardID)
		dwell.PutData("toLaneId", cmd.ToLaneID)
		err = uc.metricRepo.Append(ctx, dwell)
	}
	if err != nil {
		uc.logger.Warnw("failed to record time in lane metric",
			"card_id", cmd.CardID, "lane_id", cmd.FromLaneID, "error", err)
	}

	total, completed, err := uc.stats.CameFromLaneCounts(ctx, cmd.FromLaneID, cmd.CompanyID)
	if err != nil {
		uc.logger.Warnw("failed to compute conversion rate",
			"lane_id", cmd.FromLaneID, "error", err)
		return
	}
	if total == 0 {
		return
	}

	rate, err := kanban.NewMetric(cmd.CompanyID, cmd.BoardID, kanban.MetricConversionRate, float64(completed)/float64(total))
	if err == nil {
		rate.AttachLane(cmd.FromLaneID)
		rate.PutData("total", total)
		rate.PutData("completed", completed)
		err = uc.metricRepo.Append(ctx, rate)
	}
	if err != nil {
		uc.logger.Warnw("failed to record conversion rate metric",
			"lane_id", cmd.FromLaneID, "error", err)
	}
}
