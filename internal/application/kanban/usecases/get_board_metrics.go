package usecases

import (
	"context"
	"fmt"
	"time"

	"deskflow/internal/domain/kanban"
	"deskflow/internal/shared/biztime"
	"deskflow/internal/shared/errors"
	"deskflow/internal/shared/logger"
)

type GetBoardMetricsQuery struct {
	BoardID   uint
	CompanyID uint
	From      time.Time
	To        time.Time
}

// BoardMetrics is the aggregated read model for one board and date range.
type BoardMetrics struct {
	BoardID       uint
	From          time.Time
	To            time.Time
	LaneDwell     []kanban.LaneDwell
	Throughput    []kanban.DayThroughput
	LeadTimeHours float64
	Productivity  []kanban.UserProductivity
	Distribution  []kanban.LaneDistribution
}

// GetBoardMetricsUseCase is the read-only aggregator: everything is derived
// from persisted card and metric history, nothing is mutated.
type GetBoardMetricsUseCase struct {
	boardRepo kanban.BoardRepository
	stats     kanban.StatsQuery
	logger    logger.Interface
}

func NewGetBoardMetricsUseCase(
	boardRepo kanban.BoardRepository,
	stats kanban.StatsQuery,
	log logger.Interface,
) *GetBoardMetricsUseCase {
	return &GetBoardMetricsUseCase{boardRepo: boardRepo, stats: stats, logger: log}
}

func (uc *GetBoardMetricsUseCase) Execute(ctx context.Context, query GetBoardMetricsQuery) (*BoardMetrics, error) {
	if query.BoardID == 0 {
		return nil, errors.NewValidationError("board ID is required")
	}
	if query.CompanyID == 0 {
		return nil, errors.NewValidationError("company ID is required")
	}

	from := query.From
	to := query.To
	if from.IsZero() {
		from = biztime.StartOfDay(time.Now().AddDate(0, 0, -30))
	}
	if to.IsZero() {
		to = biztime.EndOfDay(time.Now())
	}
	if to.Before(from) {
		return nil, errors.NewValidationError("date range end precedes start")
	}

	board, err := uc.boardRepo.GetByID(ctx, query.BoardID, query.CompanyID)
	if err != nil {
		uc.logger.Errorw("failed to load board", "board_id", query.BoardID, "error", err)
		return nil, errors.NewInternalError("failed to load board")
	}
	if board == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("board %d not found", query.BoardID))
	}

	metrics := &BoardMetrics{BoardID: board.ID(), From: from, To: to}

	if metrics.LaneDwell, err = uc.stats.AvgTimeInLane(ctx, board.ID(), query.CompanyID, from, to); err != nil {
		uc.logger.Errorw("failed to compute lane dwell", "board_id", board.ID(), "error", err)
		return nil, errors.NewInternalError("failed to compute board metrics")
	}
	if metrics.Throughput, err = uc.stats.ThroughputByDay(ctx, board.ID(), query.CompanyID, from, to); err != nil {
		uc.logger.Errorw("failed to compute throughput", "board_id", board.ID(), "error", err)
		return nil, errors.NewInternalError("failed to compute board metrics")
	}
	if metrics.LeadTimeHours, err = uc.stats.LeadTimeHours(ctx, board.ID(), query.CompanyID, from, to); err != nil {
		uc.logger.Errorw("failed to compute lead time", "board_id", board.ID(), "error", err)
		return nil, errors.NewInternalError("failed to compute board metrics")
	}
	if metrics.Productivity, err = uc.stats.ProductivityByUser(ctx, board.ID(), query.CompanyID, from, to); err != nil {
		uc.logger.Errorw("failed to compute productivity", "board_id", board.ID(), "error", err)
		return nil, errors.NewInternalError("failed to compute board metrics")
	}
	if metrics.Distribution, err = uc.stats.CardDistribution(ctx, board.ID(), query.CompanyID); err != nil {
		uc.logger.Errorw("failed to compute card distribution", "board_id", board.ID(), "error", err)
		return nil, errors.NewInternalError("failed to compute board metrics")
	}

	return metrics, nil
}
